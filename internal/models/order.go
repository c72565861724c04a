package models

import "time"

// OrderStatus enumerates the order lifecycle states.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// Valid reports whether the status is a known order state.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// OrderItem is a purchased line within an order. Price is the unit
// price at purchase time, so later catalog edits never change history.
type OrderItem struct {
	ProductID string  `bson:"product_id" json:"product_id"`
	Name      string  `bson:"name" json:"name"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	Price     float64 `bson:"price" json:"price"`
}

// ShippingAddress is the delivery address embedded in an order.
type ShippingAddress struct {
	Street     string `bson:"street" json:"street"`
	City       string `bson:"city" json:"city"`
	State      string `bson:"state" json:"state"`
	PostalCode string `bson:"postal_code" json:"postal_code"`
	Country    string `bson:"country" json:"country"`
}

// Order represents a customer order. Items and the shipping address are
// owned sub-records; everything else is referenced by id.
type Order struct {
	ID              string          `bson:"_id" json:"id"`
	UserID          string          `bson:"user_id" json:"user_id"`
	Items           []OrderItem     `bson:"items" json:"items"`
	Status          OrderStatus     `bson:"status" json:"status"`
	ShippingAddress ShippingAddress `bson:"shipping_address" json:"shipping_address"`
	Total           float64         `bson:"total" json:"total"`
	CreatedAt       time.Time       `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `bson:"updated_at" json:"updated_at"`
}

package models

import "time"

// Product represents a catalog product document.
type Product struct {
	ID              string    `bson:"_id" json:"id"`
	Slug            string    `bson:"slug" json:"slug"`
	Name            string    `bson:"name" json:"name"`
	Description     string    `bson:"description" json:"description"`
	Tags            []string  `bson:"tags,omitempty" json:"tags,omitempty"`
	CategoryID      string    `bson:"category_id,omitempty" json:"category_id,omitempty"`
	BasePrice       float64   `bson:"base_price" json:"base_price"`
	DiscountPercent float64   `bson:"discount_percent" json:"discount_percent"`
	StockQuantity   int       `bson:"stock_quantity" json:"stock_quantity"`
	ImageURL        string    `bson:"image_url" json:"image_url"`
	IsFeatured      bool      `bson:"is_featured" json:"is_featured"`
	IsNewArrival    bool      `bson:"is_new_arrival" json:"is_new_arrival"`
	IsHotDeal       bool      `bson:"is_hot_deal" json:"is_hot_deal"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updated_at"`
}

// SalePrice returns the effective unit price after the discount percentage.
func (p *Product) SalePrice() float64 {
	if p.DiscountPercent <= 0 {
		return p.BasePrice
	}
	return p.BasePrice * (100 - p.DiscountPercent) / 100
}

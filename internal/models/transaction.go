package models

import "time"

// TransactionStatus enumerates payment states.
type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "pending"
	TransactionCompleted TransactionStatus = "completed"
	TransactionFailed    TransactionStatus = "failed"
	TransactionRefunded  TransactionStatus = "refunded"
)

// Valid reports whether the status is a known payment state.
func (s TransactionStatus) Valid() bool {
	switch s {
	case TransactionPending, TransactionCompleted, TransactionFailed, TransactionRefunded:
		return true
	}
	return false
}

// Transaction records a payment attempt for an order.
type Transaction struct {
	ID        string            `bson:"_id" json:"id"`
	OrderID   string            `bson:"order_id" json:"order_id"`
	Amount    float64           `bson:"amount" json:"amount"`
	Status    TransactionStatus `bson:"status" json:"status"`
	CreatedAt time.Time         `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time         `bson:"updated_at" json:"updated_at"`
}

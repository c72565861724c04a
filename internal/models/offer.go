package models

import "time"

// DiscountType enumerates how an offer discount is applied.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// Valid reports whether the discount type is known.
func (t DiscountType) Valid() bool {
	return t == DiscountPercentage || t == DiscountFixed
}

// Offer represents a time-bounded promotional discount.
type Offer struct {
	ID            string       `bson:"_id" json:"id"`
	Code          string       `bson:"code" json:"code"`
	Description   string       `bson:"description" json:"description"`
	DiscountType  DiscountType `bson:"discount_type" json:"discount_type"`
	DiscountValue float64      `bson:"discount_value" json:"discount_value"`
	ValidFrom     time.Time    `bson:"valid_from" json:"valid_from"`
	ValidUntil    time.Time    `bson:"valid_until" json:"valid_until"`
	UsageLimit    int          `bson:"usage_limit" json:"usage_limit"`
	UsageCount    int          `bson:"usage_count" json:"usage_count"`
	IsActive      bool         `bson:"is_active" json:"is_active"`
	CreatedAt     time.Time    `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time    `bson:"updated_at" json:"updated_at"`
}

// ValidAt reports whether the offer can be applied at the given time.
func (o *Offer) ValidAt(t time.Time) bool {
	if !o.IsActive {
		return false
	}
	if t.Before(o.ValidFrom) || t.After(o.ValidUntil) {
		return false
	}
	if o.UsageLimit > 0 && o.UsageCount >= o.UsageLimit {
		return false
	}
	return true
}

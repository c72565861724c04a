package models

import "time"

// ReviewStatus enumerates moderation states for product reviews.
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "Pending"
	ReviewApproved ReviewStatus = "Approved"
	ReviewFlagged  ReviewStatus = "Flagged"
)

// Valid reports whether the status is a known moderation state.
func (s ReviewStatus) Valid() bool {
	switch s {
	case ReviewPending, ReviewApproved, ReviewFlagged:
		return true
	}
	return false
}

// Review is a user rating of a product. Only Approved reviews are shown
// on catalog pages.
type Review struct {
	ID        string       `bson:"_id" json:"id"`
	ProductID string       `bson:"product_id" json:"product_id"`
	UserID    string       `bson:"user_id" json:"user_id"`
	Rating    int          `bson:"rating" json:"rating"`
	Comment   string       `bson:"comment" json:"comment"`
	Status    ReviewStatus `bson:"status" json:"status"`
	CreatedAt time.Time    `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time    `bson:"updated_at" json:"updated_at"`
}

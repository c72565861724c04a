package models

import "time"

// Category represents a catalog category. Categories form a tree via
// ParentID; an empty ParentID marks a root category.
type Category struct {
	ID           string    `bson:"_id" json:"id"`
	Slug         string    `bson:"slug" json:"slug"`
	Name         string    `bson:"name" json:"name"`
	ParentID     string    `bson:"parent_id,omitempty" json:"parent_id,omitempty"`
	DisplayOrder int       `bson:"display_order" json:"display_order"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

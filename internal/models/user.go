package models

import "time"

// User represents a storefront account. The password hash is never
// serialized to JSON.
type User struct {
	ID           string    `bson:"_id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	FullName     string    `bson:"full_name" json:"full_name"`
	AvatarURL    string    `bson:"avatar_url" json:"avatar_url"`
	Phone        string    `bson:"phone" json:"phone"`
	IsAdmin      bool      `bson:"is_admin" json:"is_admin"`
	IsActive     bool      `bson:"is_active" json:"is_active"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

// PublicUser is the subset of User safe to return to API callers.
type PublicUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	AvatarURL string `json:"avatar_url"`
	Phone     string `json:"phone"`
	IsAdmin   bool   `json:"is_admin"`
}

// Public projects the user onto its API-safe fields.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		AvatarURL: u.AvatarURL,
		Phone:     u.Phone,
		IsAdmin:   u.IsAdmin,
	}
}

package utils

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// NewID generates a prefixed unique document identifier.
// Format: prefix_uuidhex
// Example: user_7f3c9a1e4b2d4c8e9f0a1b2c3d4e5f60
func NewID(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, strings.ReplaceAll(uuid.New().String(), "-", ""))
}

// NewUserID generates a user identifier: user_xxx
func NewUserID() string { return NewID("user") }

// NewOrderID generates an order identifier: ord_xxx
func NewOrderID() string { return NewID("ord") }

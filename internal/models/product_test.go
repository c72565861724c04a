package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSalePrice(t *testing.T) {
	tests := []struct {
		name     string
		base     float64
		discount float64
		want     float64
	}{
		{"no discount", 100, 0, 100},
		{"twenty percent off", 100, 20, 80},
		{"full discount", 100, 100, 0},
		{"fractional", 19.99, 10, 17.991},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Product{BasePrice: tt.base, DiscountPercent: tt.discount}
			assert.InDelta(t, tt.want, p.SalePrice(), 0.0001)
		})
	}
}

func TestUserJSONNeverContainsPasswordHash(t *testing.T) {
	u := User{ID: "user_1", Email: "ada@example.com", PasswordHash: "bcrypt-material"}

	raw, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "bcrypt-material")
	assert.NotContains(t, string(raw), "password")

	raw, err = json.Marshal(u.Public())
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")
}

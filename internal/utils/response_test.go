package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		totalItems int64
		wantPages  int64
	}{
		{"exact fit", 1, 10, 30, 3},
		{"partial last page", 1, 10, 31, 4},
		{"empty", 1, 10, 0, 0},
		{"defaults applied", 0, 0, 120, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.page, tt.limit, tt.totalItems)
			assert.Equal(t, tt.wantPages, p.TotalPages)
			assert.Equal(t, tt.totalItems, p.TotalItems)
			assert.GreaterOrEqual(t, p.Page, 1)
			assert.GreaterOrEqual(t, p.Limit, 1)
		})
	}
}

package utils

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Error writes an error response as {"error": message}.
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}

// Fail maps a service error to its HTTP status and writes the error
// response. Internal failures are logged with full detail server-side
// and returned to the caller with a generic message only.
func Fail(c *gin.Context, err error) {
	code := StatusFor(err)
	if code == 500 {
		log.Error().
			Err(err).
			Str("request_id", c.GetString("request_id")).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
		Error(c, 500, "Internal server error")
		return
	}
	Error(c, code, err.Error())
}

// Pagination holds pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalItems int64 `json:"total_items"`
	TotalPages int64 `json:"total_pages"`
}

// NewPagination computes pagination metadata with safety defaults.
func NewPagination(page, limit int, totalItems int64) Pagination {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 50
	}
	totalPages := (totalItems + int64(limit) - 1) / int64(limit)
	return Pagination{Page: page, Limit: limit, TotalItems: totalItems, TotalPages: totalPages}
}

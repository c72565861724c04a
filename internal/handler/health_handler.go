package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/veloralabs/storefront_api/internal/cache"
	"github.com/veloralabs/storefront_api/internal/database"
)

var startTime = time.Now()

// HealthHandler provides the health endpoint.
type HealthHandler struct {
	db    *database.Mongo
	redis *cache.RedisClient
}

// NewHealthHandler creates a new HealthHandler. redis may be nil when
// the cache is disabled.
func NewHealthHandler(db *database.Mongo, redis *cache.RedisClient) *HealthHandler {
	return &HealthHandler{db: db, redis: redis}
}

// GetHealth responds with service, database and cache status.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	ctx := c.Request.Context()

	overall := "healthy"
	dbStatus := "connected"
	status := 200
	if err := h.db.Ping(ctx); err != nil {
		overall = "degraded"
		dbStatus = "disconnected"
		status = 503
	}

	cacheStatus := "disabled"
	if h.redis != nil {
		cacheStatus = "connected"
		if err := h.redis.Ping(ctx); err != nil {
			cacheStatus = "disconnected"
		}
	}

	c.JSON(status, gin.H{
		"status":   overall,
		"version":  "1.0.0",
		"uptime":   int(time.Since(startTime).Seconds()),
		"database": dbStatus,
		"cache":    cacheStatus,
	})
}

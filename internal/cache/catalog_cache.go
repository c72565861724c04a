package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/veloralabs/storefront_api/internal/models"
)

// cachedList is the serialized form of a product listing result.
type cachedList struct {
	Products []models.Product `json:"products"`
	Total    int64            `json:"total"`
	CachedAt time.Time        `json:"cachedAt"`
}

// CatalogCache caches product listing results per filter combination.
//
// Keys embed a generation counter so invalidation is a single INCR:
// every admin write bumps the generation and all older entries simply
// expire by TTL without being readable again.
type CatalogCache struct {
	redis *RedisClient
	ttl   time.Duration
}

// NewCatalogCache creates a new CatalogCache.
func NewCatalogCache(redis *RedisClient, ttl time.Duration) *CatalogCache {
	return &CatalogCache{redis: redis, ttl: ttl}
}

const generationKey = "catalog:gen"

func (c *CatalogCache) generation(ctx context.Context) string {
	gen, err := c.redis.Get(ctx, generationKey)
	if err != nil {
		return "0"
	}
	return gen
}

func (c *CatalogCache) key(ctx context.Context, filterKey string) string {
	return fmt.Sprintf("catalog:products:%s:%s", c.generation(ctx), filterKey)
}

// GetProducts returns a cached listing for the filter key, or ok=false.
func (c *CatalogCache) GetProducts(ctx context.Context, filterKey string) ([]models.Product, int64, bool) {
	raw, err := c.redis.Get(ctx, c.key(ctx, filterKey))
	if err != nil {
		return nil, 0, false
	}
	var entry cachedList
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return nil, 0, false
	}
	return entry.Products, entry.Total, true
}

// SetProducts stores a listing result for the filter key.
func (c *CatalogCache) SetProducts(ctx context.Context, filterKey string, products []models.Product, total int64) {
	raw, err := json.Marshal(cachedList{Products: products, Total: total, CachedAt: time.Now()})
	if err != nil {
		return
	}
	// Cache errors are not worth failing a read for.
	_ = c.redis.Set(ctx, c.key(ctx, filterKey), string(raw), c.ttl)
}

// Invalidate drops every cached listing by bumping the generation.
func (c *CatalogCache) Invalidate(ctx context.Context) {
	if _, err := c.redis.Incr(ctx, generationKey); err == nil {
		return
	}
	// INCR only fails when Redis is down; entries will age out by TTL.
}

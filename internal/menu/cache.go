package menu

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

const menuCacheKey = "menu:v1"

// CachedRepository adds a Redis cache-aside layer on the full-menu read.
// Admin writes invalidate the cached menu. A nil client degrades to a
// straight pass-through so the service runs without Redis.
type CachedRepository struct {
	Repository

	rdb    *redis.Client
	ttl    time.Duration
	logger *log.Logger
}

func NewCachedRepository(repo Repository, rdb *redis.Client, ttl time.Duration, logger *log.Logger) *CachedRepository {
	return &CachedRepository{Repository: repo, rdb: rdb, ttl: ttl, logger: logger}
}

func (c *CachedRepository) ListMenu(ctx context.Context) ([]Section, error) {
	if c.rdb == nil {
		return c.Repository.ListMenu(ctx)
	}

	value, err := c.rdb.Get(ctx, menuCacheKey).Result()
	if err == nil {
		var sections []Section
		if err := json.Unmarshal([]byte(value), &sections); err == nil {
			return sections, nil
		}
		// Corrupt entry: fall through and overwrite it.
	} else if err != redis.Nil {
		c.logger.Printf("menu cache get: %v", err)
	}

	sections, err := c.Repository.ListMenu(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(sections)
	if err == nil {
		if err := c.rdb.Set(ctx, menuCacheKey, payload, c.ttl).Err(); err != nil {
			c.logger.Printf("menu cache set: %v", err)
		}
	}

	return sections, nil
}

func (c *CachedRepository) CreateItem(ctx context.Context, it *Item) error {
	return c.invalidateAfter(ctx, c.Repository.CreateItem(ctx, it))
}

func (c *CachedRepository) SetAvailable(ctx context.Context, itemID string, available bool) error {
	return c.invalidateAfter(ctx, c.Repository.SetAvailable(ctx, itemID, available))
}

func (c *CachedRepository) SetPrice(ctx context.Context, itemID string, priceCents int64) error {
	return c.invalidateAfter(ctx, c.Repository.SetPrice(ctx, itemID, priceCents))
}

func (c *CachedRepository) MoveItem(ctx context.Context, itemID, categoryID string) error {
	return c.invalidateAfter(ctx, c.Repository.MoveItem(ctx, itemID, categoryID))
}

func (c *CachedRepository) ReorderItem(ctx context.Context, itemID string, position int) error {
	return c.invalidateAfter(ctx, c.Repository.ReorderItem(ctx, itemID, position))
}

func (c *CachedRepository) invalidateAfter(ctx context.Context, err error) error {
	if err != nil {
		return err
	}
	if c.rdb != nil {
		if err := c.rdb.Del(ctx, menuCacheKey).Err(); err != nil {
			c.logger.Printf("menu cache invalidate: %v", err)
		}
	}
	return nil
}

package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/TorqueWorks01/garage-scheduler/internal/config"
)

// Cache is a thin redis wrapper. A nil *Cache is valid and means
// caching is disabled (no REDIS_ADDR configured).
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(cfg *config.Config) *Cache {
	if cfg.RedisAddr == "" {
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	return &Cache{rdb: rdb, ttl: cfg.CatalogCacheTTL}
}

func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return b, true
}

func (c *Cache) Set(ctx context.Context, key string, value []byte) {
	if c == nil {
		return
	}
	// Best effort: a failed write just means a miss next time.
	_ = c.rdb.Set(ctx, key, value, c.ttl).Err()
}

func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}
	_ = c.rdb.Del(ctx, keys...).Err()
}

package stats

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const adminStatsKey = "stats:admin"

// Cache keeps the admin aggregate in Redis so dashboard polls do not fan
// out to the store every time. A nil client degrades to the loader.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache instantiates the cache helper.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Fetch loads the cached aggregate or populates it using the loader.
func (c *Cache) Fetch(ctx context.Context, loader func(context.Context) (*AdminStats, error)) (*AdminStats, error) {
	if loader == nil {
		return nil, errors.New("stats cache: loader required")
	}
	if c == nil || c.client == nil {
		return loader(ctx)
	}
	payload, err := c.client.Get(ctx, adminStatsKey).Bytes()
	if err == nil {
		var cached AdminStats
		if err := json.Unmarshal(payload, &cached); err == nil {
			return &cached, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		return nil, err
	}
	return c.refresh(ctx, loader)
}

// Refresh recomputes and stores the aggregate, used by the warmup job.
func (c *Cache) Refresh(ctx context.Context, loader func(context.Context) (*AdminStats, error)) (*AdminStats, error) {
	if c == nil || c.client == nil {
		return loader(ctx)
	}
	return c.refresh(ctx, loader)
}

func (c *Cache) refresh(ctx context.Context, loader func(context.Context) (*AdminStats, error)) (*AdminStats, error) {
	fresh, err := loader(ctx)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(fresh)
	if err != nil {
		return nil, err
	}
	if err := c.client.Set(ctx, adminStatsKey, raw, c.ttl).Err(); err != nil {
		return nil, err
	}
	return fresh, nil
}

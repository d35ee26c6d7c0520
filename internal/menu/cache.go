package menu

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const listCacheKey = "menu:list"

// Cache wraps Redis based caching for the menu list. A nil client degrades
// to calling the loader directly, so the cache is strictly optional.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache instantiates the cache helper.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// FetchList loads the cached menu or populates it using the loader.
func (c *Cache) FetchList(ctx context.Context, loader func(context.Context) ([]Item, error)) ([]Item, error) {
	if loader == nil {
		return nil, errors.New("menu cache: loader required")
	}
	if c == nil || c.client == nil {
		return loader(ctx)
	}
	payload, err := c.client.Get(ctx, listCacheKey).Bytes()
	if err == nil {
		var items []Item
		if err := json.Unmarshal(payload, &items); err == nil {
			return items, nil
		}
		// Corrupt entry: fall through and rebuild.
	} else if !errors.Is(err, redis.Nil) {
		return nil, err
	}
	items, err := loader(ctx)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	if err := c.client.Set(ctx, listCacheKey, raw, c.ttl).Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Invalidate drops the cached list after a menu write.
func (c *Cache) Invalidate(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Del(ctx, listCacheKey).Err()
}

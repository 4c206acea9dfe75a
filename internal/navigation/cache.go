package navigation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const cacheKey = "navigation:route_permissions"

// Cache holds the full override map so menus render without a database round trip.
type Cache interface {
	Get(ctx context.Context) (Overrides, bool, error)
	Set(ctx context.Context, overrides Overrides) error
	Invalidate(ctx context.Context) error
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context) (Overrides, bool, error) {
	data, err := c.client.Get(ctx, cacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read route permission cache: %w", err)
	}

	var overrides Overrides
	if err := json.Unmarshal(data, &overrides); err != nil {
		return nil, false, fmt.Errorf("failed to decode route permission cache: %w", err)
	}
	return overrides, true, nil
}

func (c *RedisCache) Set(ctx context.Context, overrides Overrides) error {
	data, err := json.Marshal(overrides)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cacheKey, data, c.ttl).Err()
}

func (c *RedisCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, cacheKey).Err()
}

// NoopCache is used when Redis is disabled; every read misses.
type NoopCache struct{}

func (NoopCache) Get(context.Context) (Overrides, bool, error) { return nil, false, nil }
func (NoopCache) Set(context.Context, Overrides) error { return nil }
func (NoopCache) Invalidate(context.Context) error { return nil }

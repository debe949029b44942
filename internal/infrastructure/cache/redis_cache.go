// Package cache implements the TTL cache port on Redis. It fronts dashboard
// payloads and integration status reads.
package cache

import (
	"context"
	"time"

	"pulseboard-analytics-core/internal/ports"

	"github.com/redis/go-redis/v9"
)

// RedisCache implements ports.Cache on a Redis connection
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a cache backed by the given Redis client
func NewRedisCache(client *redis.Client) ports.Cache {
	return &RedisCache{client: client}
}

// Get returns the cached value, or (nil, nil) on a miss
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Set stores a value with a TTL
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

// Delete removes keys; missing keys are not an error
func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

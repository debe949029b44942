package ports

import (
	"context"
	"time"
)

// Cache is a small TTL cache used for dashboard payloads and integration
// status. A miss returns (nil, nil).
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

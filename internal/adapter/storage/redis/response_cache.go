package redis

import (
	"context"
	"fmt"
	"time"

	"glin-wallet/internal/core/ports"

	goredis "github.com/redis/go-redis/v9"
)

var _ ports.ResponseCache = (*ResponseCache)(nil)

// ResponseCache remembers SEND_TRANSACTION responses by request id.
type ResponseCache struct {
	client goredis.Cmdable
	prefix string
}

// NewResponseCache creates a new Redis-backed response cache.
func NewResponseCache(client goredis.Cmdable, prefix string) *ResponseCache {
	return &ResponseCache{client: client, prefix: keyspace(prefix, "response")}
}

// Get retrieves a cached response. Returns nil, nil if the key does not exist.
func (c *ResponseCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis response get: %w", err)
	}
	return val, nil
}

func (c *ResponseCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis response set: %w", err)
	}
	return nil
}

package redis

import (
	"context"
	"fmt"
	"time"

	"glin-wallet/internal/core/ports"

	goredis "github.com/redis/go-redis/v9"
)

var _ ports.RateLimiter = (*RateLimitStore)(nil)

// RateLimitStore counts dapp requests per origin in fixed windows.
type RateLimitStore struct {
	client goredis.Cmdable
	prefix string
}

// NewRateLimitStore creates a new Redis-backed rate limit store.
func NewRateLimitStore(client goredis.Cmdable, prefix string) *RateLimitStore {
	return &RateLimitStore{client: client, prefix: keyspace(prefix, "ratelimit")}
}

// Allow increments the counter for key in the current window. The window
// id is unix time divided by the window length.
func (s *RateLimitStore) Allow(ctx context.Context, key string, limit int64, window time.Duration) (*ports.RateLimitResult, error) {
	seconds := int64(window.Seconds())
	if seconds <= 0 {
		seconds = 1
	}
	windowID := time.Now().Unix() / seconds
	redisKey := fmt.Sprintf("%s%s:%d", s.prefix, key, windowID)

	count, err := s.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return nil, fmt.Errorf("redis rate limit incr: %w", err)
	}
	// First hit opens the window; one extra second covers clock skew.
	if count == 1 {
		s.client.Expire(ctx, redisKey, time.Duration(seconds+1)*time.Second)
	}

	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}
	return &ports.RateLimitResult{
		Allowed:   count <= limit,
		Limit:     limit,
		Remaining: remaining,
		ResetAt:   (windowID + 1) * seconds,
	}, nil
}

package redis

import (
	"context"
	"fmt"
	"time"

	"glin-wallet/internal/core/ports"

	goredis "github.com/redis/go-redis/v9"
)

var _ ports.ReplayGuard = (*ReplayGuard)(nil)

// ReplayGuard implements ports.ReplayGuard using Redis SET NX.
type ReplayGuard struct {
	client goredis.Cmdable
	prefix string
}

// NewReplayGuard creates a new Redis-backed replay guard.
func NewReplayGuard(client goredis.Cmdable, prefix string) *ReplayGuard {
	return &ReplayGuard{client: client, prefix: keyspace(prefix, "request")}
}

// CheckAndSet returns true if requestID is new within scope, false if it
// was seen inside the ttl window.
func (g *ReplayGuard) CheckAndSet(ctx context.Context, scope string, requestID string, ttl time.Duration) (bool, error) {
	key := g.prefix + scope + ":" + requestID
	result, err := g.client.SetArgs(ctx, key, 1, goredis.SetArgs{
		Mode: "NX",
		TTL:  ttl,
	}).Result()
	if err != nil {
		if err == goredis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("redis replay check: %w", err)
	}
	return result == "OK", nil
}

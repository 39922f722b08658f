package ports

//go:generate mockgen -source=stores.go -destination=mocks/mock_stores.go -package=mocks

import (
	"context"
	"time"

	"glin-wallet/internal/core/domain"
)

// Setting keys held by SettingsStore.
const (
	SettingNetwork        = "network"
	SettingCustomEndpoint = "custom_endpoint"
	SettingTheme          = "theme"
)

// ConnectedSiteStore persists dapp authorizations. Entries survive lock.
type ConnectedSiteStore interface {
	Save(ctx context.Context, site domain.ConnectedSite) error
	Get(ctx context.Context, origin string) (*domain.ConnectedSite, error)
	Delete(ctx context.Context, origin string) (bool, error)
	List(ctx context.Context) ([]domain.ConnectedSite, error)
}

// SettingsStore is the small preference key-value area.
// Get returns "" for a key that was never set.
type SettingsStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// ResponseCache remembers the response to a request id so a retried
// SEND_TRANSACTION never submits twice.
type ResponseCache interface {
	Get(ctx context.Context, key string) ([]byte, error) // Returns cached response JSON or nil
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// ReplayGuard enforces request-id uniqueness within a window.
type ReplayGuard interface {
	// CheckAndSet atomically records requestID under scope.
	// Returns true if the id is new, false if it was already seen.
	CheckAndSet(ctx context.Context, scope string, requestID string, ttl time.Duration) (bool, error)
}

// RateLimiter counts requests per key in fixed windows.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (*RateLimitResult, error)
}

// RateLimitResult holds the outcome of a rate limit check.
type RateLimitResult struct {
	Allowed   bool
	Limit     int64
	Remaining int64
	ResetAt   int64 // Unix timestamp
}

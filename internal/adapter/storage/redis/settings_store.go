package redis

import (
	"context"
	"fmt"

	"glin-wallet/internal/core/ports"

	goredis "github.com/redis/go-redis/v9"
)

var _ ports.SettingsStore = (*SettingsStore)(nil)

// SettingsStore holds preferences (network, custom endpoint, theme) in a
// single hash.
type SettingsStore struct {
	client goredis.Cmdable
	key    string
}

// NewSettingsStore creates a Redis-backed settings store.
func NewSettingsStore(client goredis.Cmdable, prefix string) *SettingsStore {
	return &SettingsStore{client: client, key: keyspace(prefix, "settings") + "values"}
}

func (s *SettingsStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.HGet(ctx, s.key, key).Result()
	if err != nil {
		if err == goredis.Nil {
			return "", nil
		}
		return "", fmt.Errorf("redis settings get: %w", err)
	}
	return val, nil
}

func (s *SettingsStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.HSet(ctx, s.key, key, value).Err(); err != nil {
		return fmt.Errorf("redis settings set: %w", err)
	}
	return nil
}

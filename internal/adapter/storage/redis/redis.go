package redis

import (
	"context"
	"fmt"

	"glin-wallet/config"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// NewClient creates a Redis client and verifies connectivity.
func NewClient(ctx context.Context, cfg config.RedisConfig, log zerolog.Logger) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	log.Info().
		Str("addr", cfg.Addr()).
		Int("db", cfg.DB).
		Str("key_prefix", cfg.KeyPrefix).
		Msg("Redis connection established")

	return client, nil
}

// StartEmbedded runs an in-process Redis for single-user installs that do
// not operate a server. Everything it holds is lost when walletd exits.
func StartEmbedded(log zerolog.Logger) (*miniredis.Miniredis, *goredis.Client, error) {
	srv, err := miniredis.Run()
	if err != nil {
		return nil, nil, fmt.Errorf("starting embedded redis: %w", err)
	}
	log.Warn().Str("addr", srv.Addr()).Msg("using embedded redis; sites and settings will not survive a restart")
	return srv, goredis.NewClient(&goredis.Options{Addr: srv.Addr()}), nil
}

// keyspace joins the configured prefix and a store-specific suffix.
func keyspace(prefix, name string) string {
	if prefix == "" {
		return name + ":"
	}
	return prefix + ":" + name + ":"
}

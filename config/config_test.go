package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 7788, cfg.Server.Port)
	assert.Equal(t, "127.0.0.1:7788", cfg.Server.Addr())

	assert.Equal(t, "glin_wallet", cfg.Database.DBName)
	assert.Equal(t, int32(10), cfg.Database.MaxConns)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.False(t, cfg.Redis.Embedded)

	assert.Equal(t, "glw", cfg.Redis.KeyPrefix)

	assert.Equal(t, "testnet", cfg.Chain.DefaultNetwork)
	assert.Equal(t, "wss://glin-rpc.up.railway.app", cfg.Chain.Networks["mainnet"].Endpoint)
	assert.Equal(t, "ws://localhost:9944", cfg.Chain.Networks["localhost"].Endpoint)
	assert.Equal(t, uint16(42), cfg.Chain.SS58Prefix)
	assert.True(t, cfg.Chain.CheckMetadataHash)

	assert.Equal(t, 5*time.Minute, cfg.Session.PendingRequestTimeout)
	assert.Equal(t, 30*time.Second, cfg.Session.RequestTimeout)
	assert.Equal(t, 60*time.Second, cfg.Session.PageRequestTimeout)
	assert.Equal(t, 50, cfg.Session.HistoryLimit)

	assert.Equal(t, time.Hour, cfg.Backend.TokenLifetime)
	assert.Equal(t, 5*time.Second, cfg.Backend.ReconnectWait)

	assert.Equal(t, uint32(3), cfg.Security.Argon2Time)
	assert.Equal(t, uint32(64*1024), cfg.Security.Argon2MemoryKiB)
	assert.Equal(t, 128, cfg.Security.MnemonicEntropy)

	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_FromYAMLFile(t *testing.T) {
	content := []byte(`
server:
  port: 9090
  mode: "release"
chain:
  default_network: "custom"
  networks:
    custom:
      name: "Dev"
      endpoint: "ws://10.0.0.5:9944"
  ss58_prefix: 2
  transfer_call_index: "0x0a00"
security:
  argon2_time: 1
  argon2_memory_kib: 1024
  argon2_threads: 1
  extension_token: "tok"
log:
  level: "debug"
  pretty: true
`)
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, content, 0644))

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, "ws://10.0.0.5:9944", cfg.Chain.Networks["custom"].Endpoint)
	assert.Equal(t, uint16(2), cfg.Chain.SS58Prefix)

	idx, err := cfg.Chain.CallIndex()
	require.NoError(t, err)
	assert.Equal(t, [2]byte{0x0a, 0x00}, idx)

	assert.Equal(t, "tok", cfg.Security.ExtensionToken)
	assert.Equal(t, uint32(1024), cfg.Security.Argon2MemoryKiB)
	assert.True(t, cfg.Log.Pretty)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("GLW_SERVER_PORT", "3001")
	t.Setenv("GLW_CHAIN_DEFAULT_NETWORK", "mainnet")
	t.Setenv("GLW_SECURITY_EXTENSION_TOKEN", "env-token")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 3001, cfg.Server.Port)
	assert.Equal(t, "mainnet", cfg.Chain.DefaultNetwork)
	assert.Equal(t, "env-token", cfg.Security.ExtensionToken)
}

func TestLoad_StandaloneMode(t *testing.T) {
	t.Setenv("GLW_DATABASE_DRIVER", "memory")
	t.Setenv("GLW_REDIS_EMBEDDED", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Database.Driver)
	assert.True(t, cfg.Redis.Embedded)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := Load("")
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Server.Port = 70000 }},
		{"zero argon2 time", func(c *Config) { c.Security.Argon2Time = 0 }},
		{"bad entropy", func(c *Config) { c.Security.MnemonicEntropy = 160 }},
		{"bad call index", func(c *Config) { c.Chain.TransferCallIndex = "0x05" }},
		{"non-hex call index", func(c *Config) { c.Chain.TransferCallIndex = "zz00" }},
		{"unknown default network", func(c *Config) { c.Chain.DefaultNetwork = "nowhere" }},
		{"unknown database driver", func(c *Config) { c.Database.Driver = "sqlite" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	dbCfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "wallet",
		Password: "pw",
		DBName:   "glin_wallet",
		SSLMode:  "disable",
	}

	assert.Equal(t, "postgres://wallet:pw@localhost:5432/glin_wallet?sslmode=disable", dbCfg.DSN())
}

func TestRedisConfig_Addr(t *testing.T) {
	assert.Equal(t, "redis.local:6380", RedisConfig{Host: "redis.local", Port: 6380}.Addr())
}

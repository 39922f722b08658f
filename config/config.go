package config

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all daemon configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Chain    ChainConfig    `mapstructure:"chain"`
	Backend  BackendConfig  `mapstructure:"backend"`
	Session  SessionConfig  `mapstructure:"session"`
	Security SecurityConfig `mapstructure:"security"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // debug, release, test
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"` // postgres, memory
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
	Embedded  bool   `mapstructure:"embedded"` // run an in-process server instead of dialing Addr
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// NetworkConfig describes one selectable chain endpoint.
type NetworkConfig struct {
	Name     string `mapstructure:"name"`
	Endpoint string `mapstructure:"endpoint"`
}

type ChainConfig struct {
	DefaultNetwork    string                   `mapstructure:"default_network"`
	Networks          map[string]NetworkConfig `mapstructure:"networks"`
	SS58Prefix        uint16                   `mapstructure:"ss58_prefix"`
	TransferCallIndex string                   `mapstructure:"transfer_call_index"` // hex, pallet index then call index
	CheckMetadataHash bool                     `mapstructure:"check_metadata_hash"`
	ConnectTimeout    time.Duration            `mapstructure:"connect_timeout"`
	RequestTimeout    time.Duration            `mapstructure:"request_timeout"`
}

// CallIndex decodes TransferCallIndex into its two bytes.
func (c ChainConfig) CallIndex() ([2]byte, error) {
	var idx [2]byte
	raw, err := hex.DecodeString(strings.TrimPrefix(c.TransferCallIndex, "0x"))
	if err != nil {
		return idx, fmt.Errorf("decoding transfer call index: %w", err)
	}
	if len(raw) != 2 {
		return idx, fmt.Errorf("transfer call index must be 2 bytes, got %d", len(raw))
	}
	copy(idx[:], raw)
	return idx, nil
}

type BackendConfig struct {
	BaseURL       string        `mapstructure:"base_url"`
	WebSocketURL  string        `mapstructure:"ws_url"`
	Timeout       time.Duration `mapstructure:"timeout"`
	TokenLifetime time.Duration `mapstructure:"token_lifetime"`
	ReconnectWait time.Duration `mapstructure:"reconnect_wait"`
}

type SessionConfig struct {
	PendingRequestTimeout time.Duration `mapstructure:"pending_request_timeout"`
	RequestTimeout        time.Duration `mapstructure:"request_timeout"`
	PageRequestTimeout    time.Duration `mapstructure:"page_request_timeout"`
	ResponseCacheTTL      time.Duration `mapstructure:"response_cache_ttl"`
	ReplayWindow          time.Duration `mapstructure:"replay_window"`
	HistoryLimit          int           `mapstructure:"history_limit"`
}

type SecurityConfig struct {
	Argon2Time        uint32 `mapstructure:"argon2_time"`
	Argon2MemoryKiB   uint32 `mapstructure:"argon2_memory_kib"`
	Argon2Threads     uint8  `mapstructure:"argon2_threads"`
	ExtensionToken    string `mapstructure:"extension_token"`
	DappRateLimit     int    `mapstructure:"dapp_rate_limit"` // requests per minute per origin
	MnemonicEntropy   int    `mapstructure:"mnemonic_entropy"`
	AllowInsecureDapp bool   `mapstructure:"allow_insecure_dapp"` // accept http:// origins other than localhost
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: GLW_ (GLIN Wallet).
// Nested keys use underscore: GLW_CHAIN_DEFAULT_NETWORK, GLW_SECURITY_EXTENSION_TOKEN, etc.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("GLW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 7788)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "6m")
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "glin_wallet")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.key_prefix", "glw")
	v.SetDefault("redis.embedded", false)

	v.SetDefault("chain.default_network", "testnet")
	v.SetDefault("chain.networks.mainnet.name", "GLIN Mainnet")
	v.SetDefault("chain.networks.mainnet.endpoint", "wss://glin-rpc.up.railway.app")
	v.SetDefault("chain.networks.testnet.name", "GLIN Testnet")
	v.SetDefault("chain.networks.testnet.endpoint", "wss://glin-rpc-testnet.up.railway.app")
	v.SetDefault("chain.networks.localhost.name", "Local Node")
	v.SetDefault("chain.networks.localhost.endpoint", "ws://localhost:9944")
	v.SetDefault("chain.ss58_prefix", 42)
	v.SetDefault("chain.transfer_call_index", "0x0503")
	v.SetDefault("chain.check_metadata_hash", true)
	v.SetDefault("chain.connect_timeout", "10s")
	v.SetDefault("chain.request_timeout", "30s")

	v.SetDefault("backend.base_url", "http://localhost:3000")
	v.SetDefault("backend.ws_url", "ws://localhost:3000/ws")
	v.SetDefault("backend.timeout", "15s")
	v.SetDefault("backend.token_lifetime", "1h")
	v.SetDefault("backend.reconnect_wait", "5s")

	v.SetDefault("session.pending_request_timeout", "5m")
	v.SetDefault("session.request_timeout", "30s")
	v.SetDefault("session.page_request_timeout", "60s")
	v.SetDefault("session.response_cache_ttl", "24h")
	v.SetDefault("session.replay_window", "10m")
	v.SetDefault("session.history_limit", 50)

	v.SetDefault("security.argon2_time", 3)
	v.SetDefault("security.argon2_memory_kib", 64*1024)
	v.SetDefault("security.argon2_threads", 2)
	v.SetDefault("security.extension_token", "")
	v.SetDefault("security.dapp_rate_limit", 60)
	v.SetDefault("security.mnemonic_entropy", 128)
	v.SetDefault("security.allow_insecure_dapp", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
}

// Validate checks the values Load cannot express as defaults.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Database.Driver != "postgres" && c.Database.Driver != "memory" {
		return fmt.Errorf("database.driver must be postgres or memory, got %q", c.Database.Driver)
	}
	if c.Security.Argon2Time == 0 || c.Security.Argon2MemoryKiB == 0 || c.Security.Argon2Threads == 0 {
		return fmt.Errorf("argon2 parameters must be positive")
	}
	if c.Security.MnemonicEntropy != 128 && c.Security.MnemonicEntropy != 256 {
		return fmt.Errorf("security.mnemonic_entropy must be 128 or 256, got %d", c.Security.MnemonicEntropy)
	}
	if _, err := c.Chain.CallIndex(); err != nil {
		return err
	}
	if _, ok := c.Chain.Networks[c.Chain.DefaultNetwork]; !ok {
		return fmt.Errorf("chain.default_network %q has no endpoint", c.Chain.DefaultNetwork)
	}
	return nil
}

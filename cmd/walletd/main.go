package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"glin-wallet/config"
	"glin-wallet/internal/adapter/backend"
	"glin-wallet/internal/adapter/chain"
	"glin-wallet/internal/adapter/events"
	httpHandler "glin-wallet/internal/adapter/http/handler"
	redisStorage "glin-wallet/internal/adapter/storage/redis"
	"glin-wallet/internal/core/domain"
	"glin-wallet/internal/core/ports"
	"glin-wallet/internal/service"
	"glin-wallet/pkg/logger"
	"glin-wallet/pkg/metrics"

	"github.com/jessevdk/go-flags"
	goredis "github.com/redis/go-redis/v9"
)

type options struct {
	ConfigFile string `short:"c" long:"config" description:"Path to the YAML config file"`
	RPC        string `long:"rpc" description:"Chain RPC endpoint overriding the stored network"`
	TokenFile  string `long:"tokenfile" default:"walletd.token" description:"File holding the extension token when none is configured"`
}

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	// Load configuration
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Str("network", cfg.Chain.DefaultNetwork).
		Msg("Starting GLIN wallet daemon")

	ctx := context.Background()

	// Relational store: PostgreSQL or in-process
	store, err := openStore(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open wallet store")
	}
	defer store.close()
	log.Info().Str("driver", cfg.Database.Driver).Msg("Wallet store ready")

	// Initialize Redis client
	var rdb *goredis.Client
	if cfg.Redis.Embedded {
		srv, client, err := redisStorage.StartEmbedded(log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to start embedded Redis")
		}
		defer srv.Close()
		rdb = client
	} else {
		rdb, err = redisStorage.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize Redis stores
	prefix := cfg.Redis.KeyPrefix
	siteStore := redisStorage.NewSiteStore(rdb, prefix)
	settingsStore := redisStorage.NewSettingsStore(rdb, prefix)
	replayGuard := redisStorage.NewReplayGuard(rdb, prefix)
	responseCache := redisStorage.NewResponseCache(rdb, prefix)
	rateLimitStore := redisStorage.NewRateLimitStore(rdb, prefix)

	extensionToken, err := loadExtensionToken(cfg.Security.ExtensionToken, opts.TokenFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load extension token")
	}
	if cfg.Security.ExtensionToken == "" {
		log.Info().Str("file", opts.TokenFile).Msg("Extension token read from token file")
	}

	// Chain and backend adapters
	chainOpts, err := chain.OptionsFromConfig(cfg.Chain)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid chain configuration")
	}
	dialer := chain.NewDialer(chainOpts, log)
	backendClient := backend.NewClient(cfg.Backend, cfg.Chain.SS58Prefix, nil, log)

	// Initialize core services
	kdf := service.KDFParams{
		Time:      cfg.Security.Argon2Time,
		MemoryKiB: cfg.Security.Argon2MemoryKiB,
		Threads:   cfg.Security.Argon2Threads,
	}
	encSvc := service.NewSecretboxEncryptionService(kdf)
	keyring := service.NewKeyring(cfg.Chain.SS58Prefix, cfg.Security.MnemonicEntropy)
	sigSvc := service.NewHMACSignatureService()
	tokenSvc := service.NewJWTTokenService(cfg.Backend.TokenLifetime)
	m := metrics.New()

	// Initialize business services
	auditSvc := service.NewAuditService(store.audit, log)
	authSvc := service.NewBackendAuthService(backendClient, tokenSvc, log)
	txSvc := service.NewTransactionService(store.transactions, backendClient, log)
	hub := events.NewHub(log)

	coordinator := service.NewCoordinator(service.CoordinatorDeps{
		Manager: service.WalletManagerDeps{
			Wallets:        store.wallets,
			Accounts:       store.accounts,
			Transactions:   store.transactions,
			Transactor:     store.transactor,
			Encryption:     encSvc,
			Keyring:        keyring,
			History:        txSvc,
			Audit:          auditSvc,
			Events:         hub,
			Metrics:        m,
			ConnectTimeout: cfg.Chain.ConnectTimeout,
			RequestTimeout: cfg.Chain.RequestTimeout,
		},
		Dial:           dialer,
		Networks:       presetNetworks(cfg.Chain),
		DefaultNetwork: cfg.Chain.DefaultNetwork,
		Sites:          siteStore,
		Settings:       settingsStore,
		Windows:        hub,
		Events:         hub,
		History:        txSvc,
		Auth:           authSvc,
		Audit:          auditSvc,
		Metrics:        m,
		PendingTimeout: cfg.Session.PendingRequestTimeout,
	}, log)

	hub.OnWindowClosed(func(windowID string) {
		if err := coordinator.ApprovalWindowClosed(context.Background(), windowID); err != nil {
			log.Warn().Err(err).Str("window_id", windowID).Msg("approval window close not applied")
		}
	})

	if err := coordinator.Init(ctx, opts.RPC); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize wallet session")
	}

	// Initialize health checkers
	healthCheckers := []ports.HealthChecker{store.health, redisStorage.NewHealthCheck(rdb)}

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		Coordinator:       coordinator,
		Events:            hub,
		SigSvc:            sigSvc,
		ExtensionToken:    extensionToken,
		Replay:            replayGuard,
		Responses:         responseCache,
		RateLimiter:       rateLimitStore,
		AuditSvc:          auditSvc,
		Metrics:           m,
		HealthCheckers:    healthCheckers,
		DappRateLimit:     cfg.Security.DappRateLimit,
		AllowInsecureDapp: cfg.Security.AllowInsecureDapp,
		ReplayWindow:      cfg.Session.ReplayWindow,
		ResponseCacheTTL:  cfg.Session.ResponseCacheTTL,
		Mode:              cfg.Server.Mode,
		Logger:            log,
	})

	// HTTP Server with graceful shutdown
	addr := cfg.Server.Addr()
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout, // upgraded event sockets clear their deadlines
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	hub.Shutdown()
	coordinator.Close()
	txSvc.Wait()

	log.Info().Msg("Server exited")
}

// presetNetworks keys the configured endpoints by network id.
func presetNetworks(cfg config.ChainConfig) map[string]domain.Network {
	out := make(map[string]domain.Network, len(cfg.Networks))
	for id, n := range cfg.Networks {
		name := n.Name
		if name == "" {
			name = id
		}
		out[id] = domain.Network{ID: id, Name: name, Endpoint: n.Endpoint}
	}
	return out
}

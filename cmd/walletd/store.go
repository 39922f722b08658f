package main

import (
	"context"
	"fmt"

	"glin-wallet/config"
	"glin-wallet/internal/adapter/storage/memory"
	pgStorage "glin-wallet/internal/adapter/storage/postgres"
	"glin-wallet/internal/core/ports"

	"github.com/rs/zerolog"
)

// walletStore bundles the relational repositories of one driver.
type walletStore struct {
	wallets      ports.WalletRepository
	accounts     ports.AccountRepository
	transactions ports.TransactionRepository
	audit        ports.AuditLogRepository
	transactor   ports.DBTransactor
	health       ports.HealthChecker
	close        func()
}

func openStore(ctx context.Context, cfg config.DatabaseConfig, log zerolog.Logger) (*walletStore, error) {
	switch cfg.Driver {
	case "memory":
		log.Warn().Msg("using in-memory wallet store; wallets will not survive a restart")
		return memoryStore(memory.NewStore()), nil

	case "postgres":
		pool, err := pgStorage.NewPool(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		if cfg.AutoMigrate {
			if err := pgStorage.Migrate(ctx, pool, log); err != nil {
				pool.Close()
				return nil, fmt.Errorf("migrating database: %w", err)
			}
		}
		return &walletStore{
			wallets:      pgStorage.NewWalletRepo(pool),
			accounts:     pgStorage.NewAccountRepo(pool),
			transactions: pgStorage.NewTransactionRepo(pool),
			audit:        pgStorage.NewAuditRepo(pool),
			transactor:   pgStorage.NewTransactor(pool),
			health:       pgStorage.NewHealthCheck(pool),
			close:        pool.Close,
		}, nil
	}
	return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
}

func memoryStore(s *memory.Store) *walletStore {
	return &walletStore{
		wallets:      s.Wallets(),
		accounts:     s.Accounts(),
		transactions: s.Transactions(),
		audit:        s.AuditLogs(),
		transactor:   s.Transactor(),
		health:       s,
		close:        func() {},
	}
}

package ports

//go:generate mockgen -source=repositories.go -destination=mocks/mock_repositories.go -package=mocks

import (
	"context"

	"glin-wallet/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Repository methods that accept a pgx.Tx run inside the caller's
// transaction; a nil tx runs the statement on the pool directly.
// Lookups return nil, nil when the row does not exist.

// WalletRepository defines persistence operations for wallets.
type WalletRepository interface {
	Create(ctx context.Context, tx pgx.Tx, wallet *domain.Wallet) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error)
	GetActive(ctx context.Context) (*domain.Wallet, error)
	List(ctx context.Context) ([]domain.Wallet, error)
	Count(ctx context.Context) (int, error)
	// DeactivateAll and SetActive are always paired inside one transaction.
	DeactivateAll(ctx context.Context, tx pgx.Tx) error
	SetActive(ctx context.Context, tx pgx.Tx, id uuid.UUID) error
	// UpdateSelection persists the selected account and last-used time.
	UpdateSelection(ctx context.Context, wallet *domain.Wallet) error
	UpdateEncryptedSeed(ctx context.Context, id uuid.UUID, seed domain.EncryptedSeed) error
	Delete(ctx context.Context, tx pgx.Tx, id uuid.UUID) error
}

// AccountRepository defines persistence operations for accounts.
type AccountRepository interface {
	// Create returns apperror.ErrAccountExists on a duplicate index or address.
	Create(ctx context.Context, tx pgx.Tx, account *domain.Account) error
	ListByWallet(ctx context.Context, walletID uuid.UUID) ([]domain.Account, error)
	GetByAddress(ctx context.Context, walletID uuid.UUID, address string) (*domain.Account, error)
	GetByIndex(ctx context.Context, walletID uuid.UUID, index int) (*domain.Account, error)
	Rename(ctx context.Context, walletID uuid.UUID, address, name string) error
	DeleteByWallet(ctx context.Context, tx pgx.Tx, walletID uuid.UUID) error
}

// TransactionRepository defines persistence operations for transaction records.
type TransactionRepository interface {
	Create(ctx context.Context, transaction *domain.Transaction) error
	// Upsert inserts or refreshes a record keyed by its hash.
	Upsert(ctx context.Context, transaction *domain.Transaction) error
	ApplyUpdate(ctx context.Context, id uuid.UUID, update domain.TransactionUpdate) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	GetByHash(ctx context.Context, hash string) (*domain.Transaction, error)
	ListByAddress(ctx context.Context, params TransactionListParams) ([]domain.Transaction, int64, error)
}

// TransactionListParams holds filter + pagination for listing transactions.
// Address matches either side of the transfer.
type TransactionListParams struct {
	Address string
	Status  *domain.TransactionStatus
	Limit   int
	Offset  int
}

// AuditLogRepository persists audit entries.
type AuditLogRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	ListByWallet(ctx context.Context, walletID uuid.UUID, limit int) ([]domain.AuditLog, error)
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

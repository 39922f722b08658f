package postgres

import (
	"context"
	"errors"
	"fmt"

	"glin-wallet/internal/core/domain"
	"glin-wallet/internal/core/ports"
	"glin-wallet/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const accountColumns = `wallet_id, account_index, name, address, public_key, derivation_path, created_at`

var _ ports.AccountRepository = (*AccountRepo)(nil)

// AccountRepo implements ports.AccountRepository.
type AccountRepo struct {
	pool Pool
}

// NewAccountRepo creates a new AccountRepo.
func NewAccountRepo(pool Pool) *AccountRepo {
	return &AccountRepo{pool: pool}
}

// Create inserts an account. The primary key and the (wallet_id, address)
// constraint both surface as ErrAccountExists.
func (r *AccountRepo) Create(ctx context.Context, tx pgx.Tx, a *domain.Account) error {
	query := `INSERT INTO accounts (` + accountColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := on(r.pool, tx).Exec(ctx, query,
		a.WalletID, a.Index, a.Name, a.Address, a.PublicKey, a.DerivationPath, a.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return apperror.ErrAccountExists()
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// ListByWallet returns a wallet's accounts ordered by index.
func (r *AccountRepo) ListByWallet(ctx context.Context, walletID uuid.UUID) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE wallet_id = $1 ORDER BY account_index ASC`

	rows, err := r.pool.Query(ctx, query, walletID)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(&a.WalletID, &a.Index, &a.Name, &a.Address, &a.PublicKey, &a.DerivationPath, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan account row: %w", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate account rows: %w", err)
	}
	return accounts, nil
}

func (r *AccountRepo) GetByAddress(ctx context.Context, walletID uuid.UUID, address string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE wallet_id = $1 AND address = $2`
	a, err := scanAccount(r.pool.QueryRow(ctx, query, walletID, address))
	if err != nil {
		return nil, fmt.Errorf("get account by address: %w", err)
	}
	return a, nil
}

func (r *AccountRepo) GetByIndex(ctx context.Context, walletID uuid.UUID, index int) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE wallet_id = $1 AND account_index = $2`
	a, err := scanAccount(r.pool.QueryRow(ctx, query, walletID, index))
	if err != nil {
		return nil, fmt.Errorf("get account by index: %w", err)
	}
	return a, nil
}

func (r *AccountRepo) Rename(ctx context.Context, walletID uuid.UUID, address, name string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE accounts SET name = $1 WHERE wallet_id = $2 AND address = $3`,
		name, walletID, address,
	)
	if err != nil {
		return fmt.Errorf("rename account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.ErrAccountNotFound()
	}
	return nil
}

func (r *AccountRepo) DeleteByWallet(ctx context.Context, tx pgx.Tx, walletID uuid.UUID) error {
	if _, err := on(r.pool, tx).Exec(ctx, `DELETE FROM accounts WHERE wallet_id = $1`, walletID); err != nil {
		return fmt.Errorf("delete accounts: %w", err)
	}
	return nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	a := &domain.Account{}
	err := row.Scan(&a.WalletID, &a.Index, &a.Name, &a.Address, &a.PublicKey, &a.DerivationPath, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return a, nil
}

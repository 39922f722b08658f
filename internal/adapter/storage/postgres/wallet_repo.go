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

const uniqueViolation = "23505"

const walletColumns = `id, name, address, public_key, seed_ciphertext, seed_nonce, seed_salt,
	first_account_derivation, current_account_index, is_active, created_at, last_used`

var _ ports.WalletRepository = (*WalletRepo)(nil)

// WalletRepo implements ports.WalletRepository.
type WalletRepo struct {
	pool Pool
}

// NewWalletRepo creates a new WalletRepo.
func NewWalletRepo(pool Pool) *WalletRepo {
	return &WalletRepo{pool: pool}
}

// Create inserts a new wallet.
func (r *WalletRepo) Create(ctx context.Context, tx pgx.Tx, w *domain.Wallet) error {
	query := `INSERT INTO wallets (` + walletColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := on(r.pool, tx).Exec(ctx, query,
		w.ID, w.Name, w.Address, w.PublicKey,
		w.EncryptedSeed.Ciphertext, w.EncryptedSeed.Nonce, w.EncryptedSeed.Salt,
		w.FirstAccountDerivation, w.CurrentAccountIndex, w.IsActive,
		w.CreatedAt, w.LastUsed,
	)
	if err != nil {
		return fmt.Errorf("insert wallet: %w", err)
	}
	return nil
}

// GetByID fetches a wallet by its UUID.
func (r *WalletRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE id = $1`
	w, err := scanWallet(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get wallet by id: %w", err)
	}
	return w, nil
}

// GetActive fetches the active wallet, if any.
func (r *WalletRepo) GetActive(ctx context.Context) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE is_active`
	w, err := scanWallet(r.pool.QueryRow(ctx, query))
	if err != nil {
		return nil, fmt.Errorf("get active wallet: %w", err)
	}
	return w, nil
}

// List returns every wallet, oldest first.
func (r *WalletRepo) List(ctx context.Context) ([]domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list wallets: %w", err)
	}
	defer rows.Close()

	var wallets []domain.Wallet
	for rows.Next() {
		w, err := scanWallet(rows)
		if err != nil {
			return nil, fmt.Errorf("scan wallet row: %w", err)
		}
		wallets = append(wallets, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wallet rows: %w", err)
	}
	return wallets, nil
}

func (r *WalletRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM wallets`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count wallets: %w", err)
	}
	return n, nil
}

// DeactivateAll clears the active flag everywhere.
func (r *WalletRepo) DeactivateAll(ctx context.Context, tx pgx.Tx) error {
	if _, err := on(r.pool, tx).Exec(ctx, `UPDATE wallets SET is_active = FALSE WHERE is_active`); err != nil {
		return fmt.Errorf("deactivate wallets: %w", err)
	}
	return nil
}

// SetActive marks one wallet active. The partial unique index on is_active
// rejects the write if another wallet is still active.
func (r *WalletRepo) SetActive(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	tag, err := on(r.pool, tx).Exec(ctx, `UPDATE wallets SET is_active = TRUE WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return apperror.ErrDatabaseError(errors.New("another wallet is already active"))
		}
		return fmt.Errorf("activate wallet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.ErrWalletNotFound()
	}
	return nil
}

// UpdateSelection persists the selected account and last-used time.
func (r *WalletRepo) UpdateSelection(ctx context.Context, w *domain.Wallet) error {
	query := `UPDATE wallets SET current_account_index = $1, address = $2, public_key = $3, last_used = $4
		WHERE id = $5`

	tag, err := r.pool.Exec(ctx, query, w.CurrentAccountIndex, w.Address, w.PublicKey, w.LastUsed, w.ID)
	if err != nil {
		return fmt.Errorf("update wallet selection: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.ErrWalletNotFound()
	}
	return nil
}

func (r *WalletRepo) UpdateEncryptedSeed(ctx context.Context, id uuid.UUID, seed domain.EncryptedSeed) error {
	query := `UPDATE wallets SET seed_ciphertext = $1, seed_nonce = $2, seed_salt = $3 WHERE id = $4`

	tag, err := r.pool.Exec(ctx, query, seed.Ciphertext, seed.Nonce, seed.Salt, id)
	if err != nil {
		return fmt.Errorf("update wallet seed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.ErrWalletNotFound()
	}
	return nil
}

// Delete removes a wallet. Deleting a missing wallet is not an error.
func (r *WalletRepo) Delete(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	if _, err := on(r.pool, tx).Exec(ctx, `DELETE FROM wallets WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete wallet: %w", err)
	}
	return nil
}

func scanWallet(row pgx.Row) (*domain.Wallet, error) {
	w := &domain.Wallet{}
	err := row.Scan(
		&w.ID, &w.Name, &w.Address, &w.PublicKey,
		&w.EncryptedSeed.Ciphertext, &w.EncryptedSeed.Nonce, &w.EncryptedSeed.Salt,
		&w.FirstAccountDerivation, &w.CurrentAccountIndex, &w.IsActive,
		&w.CreatedAt, &w.LastUsed,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return w, nil
}

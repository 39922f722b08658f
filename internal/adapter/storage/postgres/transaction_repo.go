package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"glin-wallet/internal/core/domain"
	"glin-wallet/internal/core/ports"
	"glin-wallet/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const transactionColumns = `id, hash, from_address, to_address, amount, fee, status,
	block_number, tx_timestamp, tx_type, metadata`

var _ ports.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implements ports.TransactionRepository.
type TransactionRepo struct {
	pool Pool
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(pool Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

// Create inserts a locally submitted transaction.
func (r *TransactionRepo) Create(ctx context.Context, t *domain.Transaction) error {
	meta, err := encodeMetadata(t.Metadata)
	if err != nil {
		return err
	}

	query := `INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err = r.pool.Exec(ctx, query,
		t.ID, t.Hash, t.From, t.To, t.Amount, t.Fee, t.Status,
		t.BlockNumber, t.Timestamp, t.Type, meta,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// Upsert inserts a record or refreshes the one with the same hash, keeping
// its id. t.ID is set to the stored id.
func (r *TransactionRepo) Upsert(ctx context.Context, t *domain.Transaction) error {
	meta, err := encodeMetadata(t.Metadata)
	if err != nil {
		return err
	}

	query := `INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (hash) WHERE hash <> '' DO UPDATE SET
			status = EXCLUDED.status,
			fee = EXCLUDED.fee,
			block_number = COALESCE(EXCLUDED.block_number, transactions.block_number),
			metadata = COALESCE(EXCLUDED.metadata, transactions.metadata)
		RETURNING id`

	var id uuid.UUID
	err = r.pool.QueryRow(ctx, query,
		t.ID, t.Hash, t.From, t.To, t.Amount, t.Fee, t.Status,
		t.BlockNumber, t.Timestamp, t.Type, meta,
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("upsert transaction: %w", err)
	}
	t.ID = id
	return nil
}

// ApplyUpdate folds a chain status callback into the stored record. Empty
// fields leave the stored value alone.
func (r *TransactionRepo) ApplyUpdate(ctx context.Context, id uuid.UUID, u domain.TransactionUpdate) error {
	var patch []byte
	if u.BlockHash != "" || u.Err != nil {
		p := domain.TransactionMetadata{BlockHash: u.BlockHash}
		if u.Err != nil {
			p.ErrorMessage = u.Err.Error()
		}
		var err error
		if patch, err = json.Marshal(p); err != nil {
			return apperror.InternalError(fmt.Errorf("encode metadata patch: %w", err))
		}
	}

	query := `UPDATE transactions SET
		status = COALESCE(NULLIF($1, ''), status),
		hash = COALESCE(NULLIF($2, ''), hash),
		block_number = COALESCE($3, block_number),
		metadata = CASE WHEN $4::jsonb IS NULL THEN metadata
			ELSE COALESCE(metadata, '{}'::jsonb) || $4::jsonb END
		WHERE id = $5`

	tag, err := r.pool.Exec(ctx, query, string(u.Status), u.Hash, u.BlockNumber, patch, id)
	if err != nil {
		return fmt.Errorf("apply transaction update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.ErrNotFound("Transaction")
	}
	return nil
}

func (r *TransactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`
	t, err := scanTransaction(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get transaction by id: %w", err)
	}
	return t, nil
}

func (r *TransactionRepo) GetByHash(ctx context.Context, hash string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE hash = $1`
	t, err := scanTransaction(r.pool.QueryRow(ctx, query, hash))
	if err != nil {
		return nil, fmt.Errorf("get transaction by hash: %w", err)
	}
	return t, nil
}

// ListByAddress returns transactions touching an address, newest first,
// plus the unpaginated total.
func (r *TransactionRepo) ListByAddress(ctx context.Context, params ports.TransactionListParams) ([]domain.Transaction, int64, error) {
	conditions := []string{"(from_address = $1 OR to_address = $1)"}
	args := []any{params.Address}
	argIdx := 2

	if params.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *params.Status)
		argIdx++
	}

	where := "WHERE " + strings.Join(conditions, " AND ")

	var total int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM transactions "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	// LIMIT NULL means no limit.
	var limit *int
	if params.Limit > 0 {
		limit = &params.Limit
	}
	dataQuery := fmt.Sprintf(`SELECT %s FROM transactions %s
		ORDER BY tx_timestamp DESC LIMIT $%d OFFSET $%d`, transactionColumns, where, argIdx, argIdx+1)
	args = append(args, limit, params.Offset)

	rows, err := r.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan transaction row: %w", err)
		}
		txns = append(txns, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate transaction rows: %w", err)
	}
	return txns, total, nil
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	t := &domain.Transaction{}
	var meta []byte
	err := row.Scan(
		&t.ID, &t.Hash, &t.From, &t.To, &t.Amount, &t.Fee, &t.Status,
		&t.BlockNumber, &t.Timestamp, &t.Type, &meta,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if len(meta) > 0 {
		t.Metadata = &domain.TransactionMetadata{}
		if err := json.Unmarshal(meta, t.Metadata); err != nil {
			return nil, fmt.Errorf("decode metadata: %w", err)
		}
	}
	return t, nil
}

func encodeMetadata(m *domain.TransactionMetadata) ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("encode metadata: %w", err))
	}
	return raw, nil
}

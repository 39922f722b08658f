package postgres

import (
	"context"

	"glin-wallet/internal/core/ports"

	"github.com/jackc/pgx/v5"
)

var _ ports.DBTransactor = (*Transactor)(nil)

// Transactor implements ports.DBTransactor. The wallet manager uses it to
// pair DeactivateAll with SetActive and to cascade a wallet delete.
type Transactor struct {
	pool Pool
}

// NewTransactor creates a new Transactor wrapping the connection pool.
func NewTransactor(pool Pool) *Transactor {
	return &Transactor{pool: pool}
}

// Begin starts a read-committed transaction.
func (t *Transactor) Begin(ctx context.Context) (pgx.Tx, error) {
	return t.pool.Begin(ctx)
}

package postgres

import (
	"context"

	"glin-wallet/internal/core/ports"
)

var _ ports.HealthChecker = (*HealthCheck)(nil)

// HealthCheck implements ports.HealthChecker for PostgreSQL.
type HealthCheck struct {
	pool Pool
}

// NewHealthCheck creates a PostgreSQL health checker.
func NewHealthCheck(pool Pool) *HealthCheck {
	return &HealthCheck{pool: pool}
}

// Ping checks that the wallets table is reachable, which also catches a
// database that was never migrated.
func (h *HealthCheck) Ping(ctx context.Context) error {
	_, err := h.pool.Exec(ctx, "SELECT 1 FROM wallets LIMIT 1")
	return err
}

func (h *HealthCheck) Name() string {
	return "postgresql"
}

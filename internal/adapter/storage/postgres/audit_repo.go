package postgres

import (
	"context"
	"fmt"

	"glin-wallet/internal/core/domain"
	"glin-wallet/internal/core/ports"

	"github.com/google/uuid"
)

var _ ports.AuditLogRepository = (*AuditRepo)(nil)

// AuditRepo implements ports.AuditLogRepository.
type AuditRepo struct {
	pool Pool
}

// NewAuditRepo creates a PostgreSQL-backed audit repository.
func NewAuditRepo(pool Pool) *AuditRepo {
	return &AuditRepo{pool: pool}
}

func (r *AuditRepo) Create(ctx context.Context, log *domain.AuditLog) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO audit_logs (id, wallet_id, action, resource_type, resource_id, details, origin, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		log.ID, log.WalletID, string(log.Action), log.ResourceType,
		log.ResourceID, log.Details, log.Origin, log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

// ListByWallet returns the newest entries for a wallet first.
func (r *AuditRepo) ListByWallet(ctx context.Context, walletID uuid.UUID, limit int) ([]domain.AuditLog, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx,
		`SELECT id, wallet_id, action, resource_type, resource_id, details, origin, created_at
		 FROM audit_logs WHERE wallet_id = $1 ORDER BY created_at DESC LIMIT $2`,
		walletID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()

	var logs []domain.AuditLog
	for rows.Next() {
		var l domain.AuditLog
		if err := rows.Scan(&l.ID, &l.WalletID, &l.Action, &l.ResourceType, &l.ResourceID, &l.Details, &l.Origin, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit row: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit rows: %w", err)
	}
	return logs, nil
}

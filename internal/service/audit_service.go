package service

import (
	"context"
	"sync"
	"time"

	"glin-wallet/internal/core/domain"
	"glin-wallet/internal/core/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AuditTrail implements ports.AuditService. Entries are written in the
// background so a slow database never delays an unlock or export.
type AuditTrail struct {
	repo ports.AuditLogRepository
	log  zerolog.Logger
	wg   sync.WaitGroup
}

// NewAuditService creates a new audit service.
// If repo is nil, audit logs are only written to the logger.
func NewAuditService(repo ports.AuditLogRepository, log zerolog.Logger) *AuditTrail {
	return &AuditTrail{repo: repo, log: log}
}

// Log records an audit entry asynchronously (fire-and-forget).
func (s *AuditTrail) Log(ctx context.Context, entry *domain.AuditLog) {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		event := s.log.Info().
			Str("action", string(entry.Action)).
			Str("resource_type", entry.ResourceType).
			Str("resource_id", entry.ResourceID)
		if entry.WalletID != nil {
			event = event.Str("wallet_id", entry.WalletID.String())
		}
		if entry.Origin != "" {
			event = event.Str("origin", entry.Origin)
		}
		event.Msg("audit")

		if s.repo != nil {
			if err := s.repo.Create(context.WithoutCancel(ctx), entry); err != nil {
				s.log.Warn().Err(err).Str("action", string(entry.Action)).Msg("failed to persist audit log")
			}
		}
	}()
}

// Flush waits for queued entries to be written.
func (s *AuditTrail) Flush() {
	s.wg.Wait()
}

func walletAudit(action domain.AuditAction, walletID uuid.UUID, resourceType, resourceID string) *domain.AuditLog {
	id := walletID
	return &domain.AuditLog{
		WalletID:     &id,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
}

package postgres

import (
	"context"
	"testing"
	"time"

	"glin-wallet/internal/core/domain"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAuditRepo(mock)
	walletID := uuid.New()
	entry := &domain.AuditLog{
		ID:           uuid.New(),
		WalletID:     &walletID,
		Action:       domain.AuditActionUnlockFailed,
		ResourceType: "wallet",
		ResourceID:   walletID.String(),
		CreatedAt:    time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO audit_logs").
		WithArgs(entry.ID, entry.WalletID, "UNLOCK_FAILED", "wallet", walletID.String(), "", "", entry.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	assert.NoError(t, repo.Create(context.Background(), entry))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditRepo_ListByWallet_DefaultLimit(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAuditRepo(mock)
	walletID := uuid.New()
	now := time.Now().UTC()

	rows := pgxmock.NewRows([]string{"id", "wallet_id", "action", "resource_type", "resource_id", "details", "origin", "created_at"}).
		AddRow(uuid.New(), &walletID, domain.AuditActionExportSeed, "wallet", walletID.String(), "", "", now).
		AddRow(uuid.New(), &walletID, domain.AuditActionUnlock, "wallet", walletID.String(), "", "", now.Add(-time.Minute))

	mock.ExpectQuery("SELECT .+ FROM audit_logs WHERE wallet_id").
		WithArgs(walletID, 100).
		WillReturnRows(rows)

	logs, err := repo.ListByWallet(context.Background(), walletID, 0)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, domain.AuditActionExportSeed, logs[0].Action)
	assert.NoError(t, mock.ExpectationsWereMet())
}

package service

import (
	"context"
	"errors"
	"testing"

	"glin-wallet/internal/core/domain"
	"glin-wallet/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestAuditService_Log_PersistsToRepo(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockAuditLogRepository(ctrl)
	svc := NewAuditService(mockRepo, newTestLogger())

	var got *domain.AuditLog
	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, log *domain.AuditLog) error {
			got = log
			return nil
		},
	)

	walletID := uuid.New()
	svc.Log(context.Background(), walletAudit(domain.AuditActionUnlock, walletID, "wallet", walletID.String()))
	svc.Flush()

	if assert.NotNil(t, got) {
		assert.Equal(t, domain.AuditActionUnlock, got.Action)
		assert.Equal(t, walletID, *got.WalletID)
		assert.NotEqual(t, uuid.Nil, got.ID)
		assert.False(t, got.CreatedAt.IsZero())
	}
}

func TestAuditService_Log_SurvivesCancelledContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockAuditLogRepository(ctrl)
	svc := NewAuditService(mockRepo, newTestLogger())

	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, log *domain.AuditLog) error {
			assert.NoError(t, ctx.Err())
			return nil
		},
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc.Log(ctx, &domain.AuditLog{Action: domain.AuditActionDisconnectSite, ResourceType: "site", Origin: "https://example.com"})
	svc.Flush()
}

func TestAuditService_Log_RepoErrorIsSwallowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockAuditLogRepository(ctrl)
	svc := NewAuditService(mockRepo, newTestLogger())

	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

	svc.Log(context.Background(), &domain.AuditLog{Action: domain.AuditActionExportSeed, ResourceType: "wallet"})
	svc.Flush()
}

func TestAuditService_Log_NilRepo(t *testing.T) {
	svc := NewAuditService(nil, newTestLogger())

	walletID := uuid.New()
	// Should not panic
	svc.Log(context.Background(), walletAudit(domain.AuditActionCreateWallet, walletID, "wallet", walletID.String()))
	svc.Flush()
}

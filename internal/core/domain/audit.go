package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the type of audited action.
type AuditAction string

const (
	AuditActionCreateWallet      AuditAction = "CREATE_WALLET"
	AuditActionImportWallet      AuditAction = "IMPORT_WALLET"
	AuditActionUnlock            AuditAction = "UNLOCK"
	AuditActionUnlockFailed      AuditAction = "UNLOCK_FAILED"
	AuditActionIntegrityFault    AuditAction = "INTEGRITY_FAULT"
	AuditActionDeleteWallet      AuditAction = "DELETE_WALLET"
	AuditActionExportSeed        AuditAction = "EXPORT_SEED"
	AuditActionExportAccount     AuditAction = "EXPORT_ACCOUNT"
	AuditActionChangePassword    AuditAction = "CHANGE_PASSWORD"
	AuditActionApproveConnection AuditAction = "APPROVE_CONNECTION"
	AuditActionRejectConnection  AuditAction = "REJECT_CONNECTION"
	AuditActionDisconnectSite    AuditAction = "DISCONNECT_SITE"
	AuditActionDappDenied        AuditAction = "DAPP_DENIED"
)

// AuditLog records a single security-relevant action. Details never hold
// passwords, phrases or key material.
type AuditLog struct {
	ID           uuid.UUID   `json:"id"`
	WalletID     *uuid.UUID  `json:"walletId,omitempty"`
	Action       AuditAction `json:"action"`
	ResourceType string      `json:"resourceType"`
	ResourceID   string      `json:"resourceId,omitempty"`
	Details      string      `json:"details,omitempty"` // JSON string
	Origin       string      `json:"origin,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
}

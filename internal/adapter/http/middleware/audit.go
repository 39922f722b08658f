package middleware

import (
	"encoding/json"
	"time"

	"glin-wallet/internal/core/domain"
	"glin-wallet/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Denial describes a dapp request refused by policy. The message handler
// stores one under CtxDenied.
type Denial struct {
	MessageType string
	Code        string
}

// AuditDenied records dapp requests that the message policy refused. Other
// security-relevant actions are audited by the services themselves.
func AuditDenied(auditSvc ports.AuditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		v, exists := c.Get(CtxDenied)
		if !exists {
			return
		}
		denial, ok := v.(Denial)
		if !ok {
			return
		}

		origin := c.GetString(CtxOrigin)
		details, _ := json.Marshal(map[string]interface{}{
			"type":   denial.MessageType,
			"code":   denial.Code,
			"status": c.Writer.Status(),
		})

		auditSvc.Log(c.Request.Context(), &domain.AuditLog{
			ID:           uuid.New(),
			Action:       domain.AuditActionDappDenied,
			ResourceType: "message",
			ResourceID:   denial.MessageType,
			Origin:       origin,
			Details:      string(details),
			CreatedAt:    time.Now().UTC(),
		})
	}
}

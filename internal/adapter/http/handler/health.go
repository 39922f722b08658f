package handler

import (
	"net/http"

	"glin-wallet/internal/core/ports"

	"github.com/gin-gonic/gin"
)

// HealthCheck handles GET /health. It pings every dependency and reports the
// session state without touching the chain.
func HealthCheck(coord ports.SessionCoordinator, checkers ...ports.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		type depStatus struct {
			Status string `json:"status"`
			Error  string `json:"error,omitempty"`
		}

		deps := make(map[string]depStatus)
		allHealthy := true

		for _, checker := range checkers {
			if err := checker.Ping(c.Request.Context()); err != nil {
				deps[checker.Name()] = depStatus{Status: "unhealthy", Error: err.Error()}
				allHealthy = false
			} else {
				deps[checker.Name()] = depStatus{Status: "healthy"}
			}
		}

		session := gin.H{"initialized": false}
		if coord != nil && coord.IsInitialized() {
			session["initialized"] = true
			if manager, err := coord.Manager(); err == nil {
				status, _ := manager.ConnectionStatus()
				session["locked"] = manager.IsLocked()
				session["chain"] = status
			}
		}

		status := "healthy"
		httpCode := http.StatusOK
		if !allHealthy {
			status = "degraded"
			httpCode = http.StatusServiceUnavailable
		}

		c.JSON(httpCode, gin.H{
			"status":       status,
			"session":      session,
			"dependencies": deps,
		})
	}
}

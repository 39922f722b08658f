package handler

import (
	"time"

	"glin-wallet/internal/adapter/http/middleware"
	"glin-wallet/internal/core/ports"
	"glin-wallet/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	Coordinator ports.SessionCoordinator
	Events      EventStream // nil = event sockets disabled

	SigSvc         ports.SignatureService
	ExtensionToken string
	Replay         ports.ReplayGuard
	Responses      ports.ResponseCache
	RateLimiter    ports.RateLimiter // nil = rate limiting disabled
	AuditSvc       ports.AuditService // nil = denial auditing disabled
	Metrics        *metrics.Metrics   // nil = /metrics disabled
	HealthCheckers []ports.HealthChecker

	DappRateLimit     int
	AllowInsecureDapp bool
	ReplayWindow      time.Duration
	ResponseCacheTTL  time.Duration
	Mode              string // gin mode; defaults to release

	Logger zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	mode := deps.Mode
	if mode == "" {
		mode = gin.ReleaseMode
	}
	gin.SetMode(mode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	r.GET("/health", HealthCheck(deps.Coordinator, deps.HealthCheckers...))
	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	rules := middleware.DefaultRateLimitRules(deps.DappRateLimit)

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimiter == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimiter, group, rule, deps.Metrics, deps.Logger)
	}

	messages := NewMessageHandler(MessageHandlerDeps{
		Coordinator:      deps.Coordinator,
		Replay:           deps.Replay,
		Responses:        deps.Responses,
		Metrics:          deps.Metrics,
		ReplayWindow:     deps.ReplayWindow,
		ResponseCacheTTL: deps.ResponseCacheTTL,
	}, deps.Logger)

	v1 := r.Group("/api/v1")

	// --- Extension surfaces (popup, approval window, walletctl) ---
	extAuth := middleware.ExtensionAuth(deps.ExtensionToken, deps.SigSvc, deps.Replay, deps.Logger)
	v1.POST("/messages", middleware.RequireJSON(), extAuth, messages.HandleExtension)

	// --- Page provider ---
	dapp := v1.Group("/dapp", middleware.DappOrigin(deps.AllowInsecureDapp))
	if deps.AuditSvc != nil {
		dapp.Use(middleware.AuditDenied(deps.AuditSvc))
	}
	dapp.POST("/messages", middleware.RequireJSON(), rl("dapp_messages"), messages.HandleDapp)

	// --- Event sockets ---
	if deps.Events != nil {
		eventsHandler := NewEventsHandler(deps.Events, deps.Coordinator, deps.Logger)
		v1.GET("/events", extAuth, eventsHandler.Extension)
		dapp.GET("/events", rl("dapp_events"), eventsHandler.Dapp)
	}

	return r
}

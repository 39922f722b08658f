package middleware

import (
	"fmt"
	"strconv"
	"time"

	"glin-wallet/internal/core/ports"
	"glin-wallet/pkg/apperror"
	"glin-wallet/pkg/metrics"
	"glin-wallet/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RateLimitRule defines a rate limit for an endpoint group.
type RateLimitRule struct {
	Limit  int64
	Window time.Duration
}

// DefaultRateLimitRules returns the limits per endpoint group. perMinute
// overrides the dapp message limit when positive.
func DefaultRateLimitRules(perMinute int) map[string]RateLimitRule {
	dapp := int64(60)
	if perMinute > 0 {
		dapp = int64(perMinute)
	}
	return map[string]RateLimitRule{
		"dapp_messages": {Limit: dapp, Window: time.Minute},
		"dapp_events":   {Limit: 10, Window: time.Minute},
	}
}

// RateLimiter creates a rate-limiting middleware for a given endpoint group.
// Dapp requests are counted per origin, anything else per client IP.
func RateLimiter(store ports.RateLimiter, group string, rule RateLimitRule, m *metrics.Metrics, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identifier := extractIdentifier(c)
		key := fmt.Sprintf("%s:%s", identifier, group)

		result, err := store.Allow(c.Request.Context(), key, rule.Limit, rule.Window)
		if err != nil {
			log.Warn().Err(err).Str("group", group).Msg("rate limit check failed, allowing request (degraded mode)")
			c.Next()
			return
		}

		// Always set rate limit headers
		c.Header("X-RateLimit-Limit", strconv.FormatInt(result.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt, 10))

		if !result.Allowed {
			retryAfter := result.ResetAt - time.Now().Unix()
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.FormatInt(retryAfter, 10))
			m.RateLimited()
			log.Warn().Str("group", group).Str("key", identifier).Msg("rate limit exceeded")
			response.AbortWithError(c, "", apperror.ErrRateLimitExceeded())
			return
		}

		c.Next()
	}
}

// extractIdentifier determines the rate limit key source.
func extractIdentifier(c *gin.Context) string {
	if origin := c.GetString(CtxOrigin); origin != "" {
		return origin
	}
	return c.ClientIP()
}

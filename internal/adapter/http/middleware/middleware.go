package middleware

import (
	"bytes"
	"io"
	"math"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"glin-wallet/internal/core/ports"
	"glin-wallet/pkg/apperror"
	"glin-wallet/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	// Header names for extension request signing
	HeaderTimestamp = "X-GLW-Timestamp"
	HeaderNonce     = "X-GLW-Nonce"
	HeaderSignature = "X-GLW-Signature"

	// Max timestamp drift allowed (60 seconds)
	maxTimestampDrift = 60 * time.Second

	// Nonce TTL (120 seconds)
	nonceTTL   = 120 * time.Second
	nonceScope = "ext-nonce"

	// Context keys
	CtxSurface     = "surface"
	CtxOrigin      = "origin"
	CtxMessageID   = "message_id"
	CtxMessageType = "message_type"
	CtxDenied      = "dapp_denied"

	SurfaceExtension = "extension"
	SurfaceDapp      = "dapp"
)

// ExtensionAuth verifies that a request comes from an extension surface
// holding the shared token. Pipeline: check timestamp -> check nonce ->
// verify HMAC-SHA256 over the canonical string.
func ExtensionAuth(
	token string,
	sigSvc ports.SignatureService,
	nonces ports.ReplayGuard,
	log zerolog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		signature := c.GetHeader(HeaderSignature)
		timestampStr := c.GetHeader(HeaderTimestamp)
		nonce := c.GetHeader(HeaderNonce)

		if token == "" || signature == "" || timestampStr == "" || nonce == "" {
			response.AbortWithError(c, "", apperror.ErrInvalidExtensionToken())
			return
		}

		// Step 1: Timestamp check
		timestamp, err := strconv.ParseInt(timestampStr, 10, 64)
		if err != nil {
			response.AbortWithError(c, "", apperror.ErrInvalidExtensionToken())
			return
		}
		now := time.Now().Unix()
		if math.Abs(float64(now-timestamp)) > maxTimestampDrift.Seconds() {
			response.AbortWithError(c, "", apperror.ErrInvalidExtensionToken())
			return
		}

		// Step 2: Nonce check
		if nonces != nil {
			isNew, err := nonces.CheckAndSet(c.Request.Context(), nonceScope, nonce, nonceTTL)
			if err != nil {
				log.Warn().Err(err).Msg("nonce store error, allowing request")
			} else if !isNew {
				response.AbortWithError(c, "", apperror.ErrRequestReplayed())
				return
			}
		}

		// Step 3: Signature verification
		bodyBytes, err := io.ReadAll(c.Request.Body)
		if err != nil {
			response.AbortWithError(c, "", apperror.ValidationError("cannot read request body"))
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		canonical := sigSvc.BuildCanonicalString(
			c.Request.Method,
			c.Request.URL.Path,
			timestamp,
			nonce,
			string(bodyBytes),
		)
		if !sigSvc.Verify(token, canonical, signature) {
			log.Warn().Str("path", c.Request.URL.Path).Str("client_ip", c.ClientIP()).Msg("extension signature rejected")
			response.AbortWithError(c, "", apperror.ErrInvalidExtensionToken())
			return
		}

		c.Set(CtxSurface, SurfaceExtension)
		c.Next()
	}
}

// DappOrigin tags the request with the calling page's origin, taken from
// the Origin header. Pages must be served over https unless they are on a
// loopback host or allowInsecure is set.
func DappOrigin(allowInsecure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin, ok := normalizeOrigin(c.GetHeader("Origin"), allowInsecure)
		if !ok {
			response.AbortWithError(c, "", apperror.ValidationError("Missing or invalid Origin header"))
			return
		}
		c.Set(CtxSurface, SurfaceDapp)
		c.Set(CtxOrigin, origin)
		c.Next()
	}
}

// normalizeOrigin reduces raw to scheme://host[:port].
func normalizeOrigin(raw string, allowInsecure bool) (string, bool) {
	if raw == "" || raw == "null" {
		return "", false
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || u.User != nil {
		return "", false
	}
	scheme := strings.ToLower(u.Scheme)
	switch scheme {
	case "https":
	case "http":
		if !allowInsecure && !isLoopback(u.Hostname()) {
			return "", false
		}
	default:
		return "", false
	}
	return scheme + "://" + strings.ToLower(u.Host), true
}

func isLoopback(host string) bool {
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

// RequestLogger creates a middleware that logs every HTTP request.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		event := log.Info()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		} else if status >= http.StatusBadRequest {
			event = log.Warn()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", latency).
			Str("client_ip", c.ClientIP()).
			Str("surface", c.GetString(CtxSurface)).
			Str("origin", c.GetString(CtxOrigin)).
			Str("message_id", c.GetString(CtxMessageID)).
			Str("message_type", c.GetString(CtxMessageType)).
			Msg("http request")
	}
}

// Recovery creates a panic recovery middleware that answers with an
// internal ERROR envelope.
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Str("path", c.Request.URL.Path).Msg("panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					response.Failure(c.GetString(CtxMessageID), apperror.InternalError(nil)))
			}
		}()
		c.Next()
	}
}

package service

import (
	"time"

	"glin-wallet/internal/core/ports"

	"github.com/golang-jwt/jwt/v5"
)

// refreshSkew treats a token as expired slightly before its exp claim so a
// request in flight does not race the backend's own check.
const refreshSkew = 30 * time.Second

// JWTTokenService implements ports.TokenService for backend-issued JWTs.
// The daemon cannot verify the backend's signature; it only reads claims
// to schedule refreshes.
type JWTTokenService struct {
	fallback time.Duration
	now      func() time.Time
}

// NewJWTTokenService creates a token inspector. fallback is the lifetime
// assumed for tokens that are opaque or carry no exp claim.
func NewJWTTokenService(fallback time.Duration) *JWTTokenService {
	if fallback <= 0 {
		fallback = time.Hour
	}
	return &JWTTokenService{fallback: fallback, now: time.Now}
}

// ExpiresAt returns the exp claim of token.
func (s *JWTTokenService) ExpiresAt(token string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return s.now().Add(s.fallback)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return s.now().Add(s.fallback)
	}
	return exp.Time
}

// Expired reports whether session needs a refresh.
func (s *JWTTokenService) Expired(session *ports.AuthSession) bool {
	if session == nil || session.AccessToken == "" {
		return true
	}
	return !s.now().Add(refreshSkew).Before(session.ExpiresAt)
}

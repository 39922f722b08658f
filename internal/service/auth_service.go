package service

import (
	"context"
	"fmt"
	"sync"

	"glin-wallet/internal/core/ports"
	"glin-wallet/pkg/apperror"

	"github.com/rs/zerolog"
)

// BackendAuthService implements ports.BackendAuthenticator: the three-step
// wallet login against the GLIN backend (nonce, signature, login).
type BackendAuthService struct {
	backend  ports.BackendClient
	tokenSvc ports.TokenService
	log      zerolog.Logger

	mu      sync.Mutex
	session *ports.AuthSession
}

// NewBackendAuthService creates a new BackendAuthService.
func NewBackendAuthService(
	backend ports.BackendClient,
	tokenSvc ports.TokenService,
	log zerolog.Logger,
) *BackendAuthService {
	return &BackendAuthService{
		backend:  backend,
		tokenSvc: tokenSvc,
		log:      log,
	}
}

// Authenticate logs address in. sign receives the backend's challenge text
// and returns a 0x-hex signature over it. A still-valid session for the same
// address is reused without a new challenge.
func (s *BackendAuthService) Authenticate(ctx context.Context, address string, sign func(message string) (string, error)) (*ports.AuthSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session != nil && s.session.User.WalletAddress == address && !s.tokenSvc.Expired(s.session) {
		out := *s.session
		return &out, nil
	}

	nonce, err := s.backend.RequestNonce(ctx, address)
	if err != nil {
		return nil, apperror.ErrBackendAuthFailed(fmt.Errorf("request nonce: %w", err))
	}

	signature, err := sign(nonce.Message)
	if err != nil {
		return nil, err
	}

	session, err := s.backend.LoginWithWallet(ctx, address, signature, nonce.Nonce)
	if err != nil {
		return nil, apperror.ErrBackendAuthFailed(fmt.Errorf("login: %w", err))
	}
	if session.User.WalletAddress == "" {
		session.User.WalletAddress = address
	}
	session.ExpiresAt = s.tokenSvc.ExpiresAt(session.AccessToken)

	s.session = session
	s.backend.SetAccessToken(session.AccessToken)

	s.log.Info().
		Str("address", address).
		Str("user_id", session.User.ID).
		Time("expires_at", session.ExpiresAt).
		Msg("backend session established")

	out := *session
	return &out, nil
}

// Refresh renews the access token if it has expired. A fresh session is
// returned as is.
func (s *BackendAuthService) Refresh(ctx context.Context) (*ports.AuthSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return nil, apperror.ErrBackendAuthFailed(fmt.Errorf("no backend session"))
	}
	if !s.tokenSvc.Expired(s.session) {
		out := *s.session
		return &out, nil
	}

	refreshed, err := s.backend.RefreshToken(ctx, s.session.RefreshToken)
	if err != nil {
		s.session = nil
		s.backend.SetAccessToken("")
		return nil, apperror.ErrBackendAuthFailed(fmt.Errorf("refresh: %w", err))
	}
	if refreshed.RefreshToken == "" {
		refreshed.RefreshToken = s.session.RefreshToken
	}
	if refreshed.User.WalletAddress == "" {
		refreshed.User = s.session.User
	}
	refreshed.ExpiresAt = s.tokenSvc.ExpiresAt(refreshed.AccessToken)

	s.session = refreshed
	s.backend.SetAccessToken(refreshed.AccessToken)
	s.log.Debug().Str("user_id", refreshed.User.ID).Msg("backend token refreshed")

	out := *refreshed
	return &out, nil
}

// Session returns a copy of the current session, or nil.
func (s *BackendAuthService) Session() *ports.AuthSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil
	}
	out := *s.session
	return &out
}

// Clear forgets the session and drops the bearer token.
func (s *BackendAuthService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	s.backend.SetAccessToken("")
}

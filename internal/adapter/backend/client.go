// Package backend is the typed client for the GLIN backend REST API and its
// transaction push socket.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"glin-wallet/config"
	"glin-wallet/internal/core/domain"
	"glin-wallet/internal/core/ports"
	"glin-wallet/pkg/apperror"
	"glin-wallet/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// maxResponseBody caps how much of a backend reply is read.
const maxResponseBody = 1 << 20

var _ ports.BackendClient = (*Client)(nil)

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client implements ports.BackendClient.
type Client struct {
	baseURL       string
	wsURL         string
	httpClient    HTTPClient
	wsDialer      *websocket.Dialer
	reconnectWait time.Duration
	ss58Prefix    uint16
	log           zerolog.Logger

	mu          sync.RWMutex
	accessToken string
}

// NewClient creates a backend client. httpClient may be nil, in which case
// a client with cfg.Timeout is used.
func NewClient(cfg config.BackendConfig, ss58Prefix uint16, httpClient HTTPClient, log zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	wait := cfg.ReconnectWait
	if wait <= 0 {
		wait = 5 * time.Second
	}
	return &Client{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		wsURL:         cfg.WebSocketURL,
		httpClient:    httpClient,
		wsDialer:      &websocket.Dialer{HandshakeTimeout: cfg.Timeout},
		reconnectWait: wait,
		ss58Prefix:    ss58Prefix,
		log:           logger.Component(log, "backend"),
	}
}

// SetAccessToken sets the bearer token sent with every request. An empty
// token clears it.
func (c *Client) SetAccessToken(token string) {
	c.mu.Lock()
	c.accessToken = token
	c.mu.Unlock()
}

func (c *Client) token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

func (c *Client) RequestNonce(ctx context.Context, address string) (*ports.AuthNonce, error) {
	var out ports.AuthNonce
	body := map[string]string{"wallet_address": address}
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/nonce", body, &out); err != nil {
		return nil, err
	}
	if out.Nonce == "" || out.Message == "" {
		return nil, apperror.ErrBackendRequest("Backend returned an empty challenge", nil)
	}
	return &out, nil
}

// tokenResponse is the login and refresh reply.
type tokenResponse struct {
	AccessToken  string            `json:"access_token"`
	RefreshToken string            `json:"refresh_token"`
	User         ports.BackendUser `json:"user"`
}

// LoginWithWallet exchanges a signed challenge for tokens and starts using
// the access token.
func (c *Client) LoginWithWallet(ctx context.Context, address, signature, nonce string) (*ports.AuthSession, error) {
	body := map[string]string{
		"wallet_address": address,
		"signature":      signature,
		"nonce":          nonce,
	}
	var out tokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/login/wallet", body, &out); err != nil {
		return nil, err
	}
	if out.AccessToken == "" {
		return nil, apperror.ErrBackendRequest("Backend returned no access token", nil)
	}
	c.SetAccessToken(out.AccessToken)
	return &ports.AuthSession{
		AccessToken:  out.AccessToken,
		RefreshToken: out.RefreshToken,
		User:         out.User,
	}, nil
}

// RefreshToken trades a refresh token for a new pair. The reply carries no
// user, so User is left empty.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (*ports.AuthSession, error) {
	if refreshToken == "" {
		return nil, apperror.ErrBackendRequest("No refresh token available", nil)
	}
	var out tokenResponse
	body := map[string]string{"refresh_token": refreshToken}
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/refresh", body, &out); err != nil {
		return nil, err
	}
	if out.AccessToken == "" {
		return nil, apperror.ErrBackendRequest("Backend returned no access token", nil)
	}
	c.SetAccessToken(out.AccessToken)
	return &ports.AuthSession{
		AccessToken:  out.AccessToken,
		RefreshToken: out.RefreshToken,
		User:         out.User,
	}, nil
}

type transactionsResponse struct {
	Transactions []remoteTransaction `json:"transactions"`
	Total        int                 `json:"total"`
}

// GetTransactions fetches one page of the backend's indexed history for
// address.
func (c *Client) GetTransactions(ctx context.Context, address string, limit, offset int) ([]domain.Transaction, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}
	path := "/api/v1/transactions/" + url.PathEscape(address)
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out transactionsResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}

	txs := make([]domain.Transaction, 0, len(out.Transactions))
	for _, rt := range out.Transactions {
		txs = append(txs, rt.toDomain(address, c.ss58Prefix))
	}
	return txs, nil
}

// errorBody covers both error shapes the backend produces.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return apperror.InternalError(fmt.Errorf("encode request: %w", err))
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return apperror.ErrBackendRequest("Backend request timed out", err)
		}
		return apperror.ErrBackendRequest("Backend unreachable", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return apperror.ErrBackendRequest("Failed to read backend response", err)
	}

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("backend request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var eb errorBody
		_ = json.Unmarshal(raw, &eb)
		msg := eb.Message
		if msg == "" {
			msg = eb.Error
		}
		if msg == "" {
			msg = fmt.Sprintf("HTTP %d", resp.StatusCode)
		}
		return apperror.ErrBackendRequest(msg, fmt.Errorf("%s %s: HTTP %d", method, path, resp.StatusCode))
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return apperror.ErrBackendRequest("Malformed backend response", err)
	}
	return nil
}

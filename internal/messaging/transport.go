package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"glin-wallet/internal/adapter/http/middleware"
	"glin-wallet/internal/core/ports"

	"github.com/google/uuid"
)

// Daemon message endpoints.
const (
	ExtensionPath = "/api/v1/messages"
	DappPath      = "/api/v1/dapp/messages"
)

const maxResponseBody = 1 << 20

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPTransportConfig selects the surface a transport speaks for. Setting
// Token signs every request as an extension surface; setting Origin sends it
// as that page.
type HTTPTransportConfig struct {
	BaseURL string
	Path    string
	Token   string
	Signer  ports.SignatureService
	Origin  string
	Client  HTTPClient
}

// HTTPTransport posts envelopes to the daemon.
type HTTPTransport struct {
	cfg HTTPTransportConfig
	url string
}

// NewHTTPTransport creates a transport. Path defaults to ExtensionPath when a
// token is set and to DappPath otherwise.
func NewHTTPTransport(cfg HTTPTransportConfig) *HTTPTransport {
	if cfg.Path == "" {
		cfg.Path = DappPath
		if cfg.Token != "" {
			cfg.Path = ExtensionPath
		}
	}
	if cfg.Client == nil {
		cfg.Client = &http.Client{Timeout: PageTimeout + 5*time.Second}
	}
	return &HTTPTransport{cfg: cfg, url: strings.TrimRight(cfg.BaseURL, "/") + cfg.Path}
}

// RoundTrip implements Transport. ERROR envelopes arrive with non-2xx
// statuses and are returned as responses, not errors.
func (t *HTTPTransport) RoundTrip(ctx context.Context, req Request) (*Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if t.cfg.Origin != "" {
		httpReq.Header.Set("Origin", t.cfg.Origin)
	}
	if t.cfg.Token != "" && t.cfg.Signer != nil {
		t.sign(httpReq, body)
	}

	resp, err := t.cfg.Client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", req.Type, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", req.Type, err)
	}

	var out Response
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("daemon answered %s with status %d and no envelope", req.Type, resp.StatusCode)
	}
	return &out, nil
}

func (t *HTTPTransport) sign(req *http.Request, body []byte) {
	ts := time.Now().Unix()
	nonce := uuid.NewString()
	canonical := t.cfg.Signer.BuildCanonicalString(req.Method, req.URL.Path, ts, nonce, string(body))

	req.Header.Set(middleware.HeaderTimestamp, strconv.FormatInt(ts, 10))
	req.Header.Set(middleware.HeaderNonce, nonce)
	req.Header.Set(middleware.HeaderSignature, t.cfg.Signer.Sign(t.cfg.Token, canonical))
}

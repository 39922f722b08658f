// Package provider is the page-side wallet API: what a web page gets when
// it talks to the daemon. Requests go through the dapp surface with the
// page's origin, and events arrive over the dapp event socket.
package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"glin-wallet/internal/core/domain"
	"glin-wallet/internal/core/ports"
	"glin-wallet/internal/messaging"
	"glin-wallet/pkg/apperror"
	"glin-wallet/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// EventsPath is the dapp event socket.
const EventsPath = "/api/v1/dapp/events"

// ErrNotConnected is returned by calls that need an approved connection.
var ErrNotConnected = errors.New("not connected: call Enable first")

// Sender sends one message and decodes its response. *messaging.Bridge
// implements it.
type Sender interface {
	Send(ctx context.Context, msgType string, payload, out interface{}) error
}

// Config describes the page.
type Config struct {
	BaseURL string
	Origin  string
	AppName string
	AppIcon string
	Timeout time.Duration
	Client  messaging.HTTPClient
	Dialer  *websocket.Dialer
}

// Event is one notification delivered to listeners.
type Event struct {
	Name string
	Data json.RawMessage
}

// ListenerID identifies a registered handler for RemoveListener.
type ListenerID uint64

type listener struct {
	id ListenerID
	fn func(Event)
}

// Provider is the page's handle on the wallet.
type Provider struct {
	cfg    Config
	sender Sender
	log    zerolog.Logger

	mu        sync.RWMutex
	connected bool
	accounts  []domain.AccountSummary
	listeners map[string][]listener
	nextID    atomic.Uint64
}

// New creates a provider that reaches the daemon over HTTP with a 60 second
// page timeout unless cfg.Timeout says otherwise.
func New(cfg Config, log zerolog.Logger) *Provider {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = messaging.PageTimeout
	}
	transport := messaging.NewHTTPTransport(messaging.HTTPTransportConfig{
		BaseURL: cfg.BaseURL,
		Path:    messaging.DappPath,
		Origin:  cfg.Origin,
		Client:  cfg.Client,
	})
	return NewWithSender(cfg, messaging.NewBridge(transport, timeout, log), log)
}

// NewWithSender creates a provider on top of an existing sender.
func NewWithSender(cfg Config, sender Sender, log zerolog.Logger) *Provider {
	return &Provider{
		cfg:       cfg,
		sender:    sender,
		log:       logger.Component(log, "provider").With().Str("origin", cfg.Origin).Logger(),
		listeners: make(map[string][]listener),
	}
}

// Enable asks the user to connect this page and returns the shared
// accounts. Once connected it returns the cached accounts without asking
// again.
func (p *Provider) Enable(ctx context.Context) ([]domain.AccountSummary, error) {
	p.mu.RLock()
	if p.connected && len(p.accounts) > 0 {
		accounts := cloneAccounts(p.accounts)
		p.mu.RUnlock()
		return accounts, nil
	}
	p.mu.RUnlock()

	payload := map[string]string{"appName": p.cfg.AppName}
	if p.cfg.AppIcon != "" {
		payload["appIcon"] = p.cfg.AppIcon
	}
	var result domain.ConnectionResult
	if err := p.sender.Send(ctx, "REQUEST_CONNECTION", payload, &result); err != nil {
		return nil, err
	}
	if !result.Approved {
		return nil, apperror.ErrUserRejected("User rejected connection request")
	}

	p.mu.Lock()
	p.connected = true
	p.accounts = cloneAccounts(result.Accounts)
	p.mu.Unlock()
	return cloneAccounts(result.Accounts), nil
}

// GetAccounts returns the accounts shared with this page, or none before
// Enable.
func (p *Provider) GetAccounts(ctx context.Context) ([]domain.AccountSummary, error) {
	if !p.IsConnected() {
		return []domain.AccountSummary{}, nil
	}
	var accounts []domain.AccountSummary
	if err := p.sender.Send(ctx, "GET_ACCOUNTS", nil, &accounts); err != nil {
		return nil, err
	}
	if accounts == nil {
		accounts = []domain.AccountSummary{}
	}
	p.mu.Lock()
	p.accounts = cloneAccounts(accounts)
	p.mu.Unlock()
	return accounts, nil
}

// IsConnected reports whether Enable succeeded and no disconnect arrived since.
func (p *Provider) IsConnected() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.connected
}

// SignMessage signs message with the current account. The daemon wraps it
// in <Bytes>...</Bytes> before signing.
func (p *Provider) SignMessage(ctx context.Context, message string) (*ports.SignedMessage, error) {
	if !p.IsConnected() {
		return nil, ErrNotConnected
	}
	var out ports.SignedMessage
	if err := p.sender.Send(ctx, "SIGN_MESSAGE", map[string]string{"message": message}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SignRaw is SignMessage.
func (p *Provider) SignRaw(ctx context.Context, message string) (*ports.SignedMessage, error) {
	return p.SignMessage(ctx, message)
}

// AuthenticateWithBackend logs the current account into the backend.
func (p *Provider) AuthenticateWithBackend(ctx context.Context) (*ports.AuthSession, error) {
	if !p.IsConnected() {
		return nil, ErrNotConnected
	}
	var out ports.AuthSession
	if err := p.sender.Send(ctx, "AUTHENTICATE_BACKEND", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// On registers fn for event and returns an id for RemoveListener.
func (p *Provider) On(event string, fn func(Event)) ListenerID {
	id := ListenerID(p.nextID.Add(1))
	p.mu.Lock()
	p.listeners[event] = append(p.listeners[event], listener{id: id, fn: fn})
	p.mu.Unlock()
	return id
}

// RemoveListener unregisters a handler. It reports whether one was removed.
func (p *Provider) RemoveListener(event string, id ListenerID) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	list := p.listeners[event]
	for i, l := range list {
		if l.id == id {
			p.listeners[event] = append(list[:i:i], list[i+1:]...)
			return true
		}
	}
	return false
}

// Listen streams daemon events to the registered listeners until ctx ends
// or the socket closes.
func (p *Provider) Listen(ctx context.Context) error {
	wsURL, err := eventsURL(p.cfg.BaseURL)
	if err != nil {
		return err
	}
	dialer := p.cfg.Dialer
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}
	header := http.Header{}
	header.Set("Origin", p.cfg.Origin)

	conn, resp, err := dialer.DialContext(ctx, wsURL, header)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("open event socket: %s", resp.Status)
		}
		return fmt.Errorf("open event socket: %w", err)
	}
	defer conn.Close()

	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	for {
		var ev struct {
			Name string          `json:"event"`
			Data json.RawMessage `json:"data"`
		}
		if err := conn.ReadJSON(&ev); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("read event: %w", err)
		}
		p.handleEvent(Event{Name: ev.Name, Data: ev.Data})
	}
}

func (p *Provider) handleEvent(ev Event) {
	switch ev.Name {
	case domain.EventAccountsChanged:
		var accounts []domain.AccountSummary
		if len(ev.Data) > 0 {
			if err := json.Unmarshal(ev.Data, &accounts); err != nil {
				p.log.Warn().Err(err).Msg("malformed accountsChanged event")
			}
		}
		p.mu.Lock()
		p.accounts = accounts
		p.mu.Unlock()
	case domain.EventDisconnect:
		p.mu.Lock()
		p.connected = false
		p.accounts = nil
		p.mu.Unlock()
	}
	p.emit(ev)
}

func (p *Provider) emit(ev Event) {
	p.mu.RLock()
	list := append([]listener(nil), p.listeners[ev.Name]...)
	p.mu.RUnlock()

	for _, l := range list {
		func() {
			defer func() {
				if r := recover(); r != nil {
					p.log.Error().Interface("panic", r).Str("event", ev.Name).Msg("event handler panicked")
				}
			}()
			l.fn(ev)
		}()
	}
}

func eventsURL(base string) (string, error) {
	u, err := url.Parse(strings.TrimRight(base, "/"))
	if err != nil {
		return "", fmt.Errorf("parse daemon url: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("unsupported daemon url scheme %q", u.Scheme)
	}
	u.Path += EventsPath
	return u.String(), nil
}

func cloneAccounts(in []domain.AccountSummary) []domain.AccountSummary {
	out := make([]domain.AccountSummary, len(in))
	copy(out, in)
	return out
}

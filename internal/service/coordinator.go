package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"glin-wallet/internal/core/domain"
	"glin-wallet/internal/core/ports"
	"glin-wallet/pkg/apperror"
	"glin-wallet/pkg/metrics"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	defaultPendingTimeout = 5 * time.Minute
	windowClosedReason    = "Approval window closed"
)

// CoordinatorDeps wires the Coordinator.
type CoordinatorDeps struct {
	Manager WalletManagerDeps
	Dial    ports.ChainDialer

	// Networks are the preset endpoints keyed by network id.
	Networks       map[string]domain.Network
	DefaultNetwork string

	Sites    ports.ConnectedSiteStore
	Settings ports.SettingsStore
	Windows  ports.WindowManager        // optional
	Events   ports.EventPublisher       // optional
	History  ports.TransactionHistory   // optional
	Auth     ports.BackendAuthenticator // optional
	Audit    ports.AuditService         // optional
	Metrics  *metrics.Metrics           // optional

	PendingTimeout time.Duration
}

var _ ports.SessionCoordinator = (*Coordinator)(nil)

// Coordinator implements ports.SessionCoordinator. It is the single owner
// of the live WalletManager and of the dapp bookkeeping around it.
type Coordinator struct {
	deps CoordinatorDeps
	log  zerolog.Logger

	mu      sync.RWMutex
	manager *WalletManager
	network domain.Network

	pendingMu sync.Mutex
	pending   map[uuid.UUID]*pendingRequest

	subsMu sync.Mutex
	subs   map[string]func()
}

type connectionOutcome struct {
	accounts []domain.AccountSummary
	err      error
}

// pendingRequest resolves exactly once: by approval, rejection, window
// close or timeout.
type pendingRequest struct {
	info   domain.PendingRequestInfo
	result chan connectionOutcome
	once   sync.Once
	timer  *time.Timer
}

func (p *pendingRequest) resolve(out connectionOutcome) bool {
	resolved := false
	p.once.Do(func() {
		if p.timer != nil {
			p.timer.Stop()
		}
		p.result <- out
		resolved = true
	})
	return resolved
}

// NewCoordinator creates an uninitialized coordinator.
func NewCoordinator(deps CoordinatorDeps, log zerolog.Logger) *Coordinator {
	if deps.PendingTimeout <= 0 {
		deps.PendingTimeout = defaultPendingTimeout
	}
	if deps.Manager.Events == nil {
		deps.Manager.Events = deps.Events
	}
	if deps.Manager.History == nil {
		deps.Manager.History = deps.History
	}
	if deps.Manager.Audit == nil {
		deps.Manager.Audit = deps.Audit
	}
	if deps.Manager.Metrics == nil {
		deps.Manager.Metrics = deps.Metrics
	}
	return &Coordinator{
		deps:    deps,
		log:     log,
		pending: make(map[uuid.UUID]*pendingRequest),
		subs:    make(map[string]func()),
	}
}

// Init builds the WalletManager. rpcEndpoint overrides the persisted
// network selection when non-empty. A second call is a no-op.
func (c *Coordinator) Init(ctx context.Context, rpcEndpoint string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.manager != nil {
		return nil
	}

	network, err := c.storedNetwork(ctx)
	if err != nil {
		return err
	}
	if rpcEndpoint != "" && rpcEndpoint != network.Endpoint {
		network = domain.Network{ID: domain.NetworkCustom, Name: "Custom", Endpoint: rpcEndpoint}
	}

	c.manager = NewWalletManager(c.deps.Manager, c.deps.Dial(network.Endpoint), c.log)
	c.network = network

	c.log.Info().
		Str("network", network.ID).
		Str("endpoint", network.Endpoint).
		Msg("session coordinator initialized")
	return nil
}

// Manager returns the live WalletManager.
func (c *Coordinator) Manager() (ports.WalletManager, error) {
	m, err := c.liveManager()
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (c *Coordinator) liveManager() (*WalletManager, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.manager == nil {
		return nil, apperror.ErrNotInitialized()
	}
	return c.manager, nil
}

// IsInitialized reports whether Init has run.
func (c *Coordinator) IsInitialized() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.manager != nil
}

// Lock locks the session and stops its subscriptions and backend login.
func (c *Coordinator) Lock(ctx context.Context) {
	if m, err := c.liveManager(); err == nil {
		m.LockWallet()
	}
	c.cancelSubscriptions()
	if c.deps.Auth != nil {
		c.deps.Auth.Clear()
	}
}

// GetState builds the state snapshot without any network call.
func (c *Coordinator) GetState(ctx context.Context) (*domain.WalletState, error) {
	sites, err := c.ConnectedSites(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.RLock()
	m := c.manager
	network := c.network
	c.mu.RUnlock()

	state := &domain.WalletState{
		Locked:           true,
		ConnectionStatus: domain.ConnectionDisconnected,
		ConnectedSites:   sites,
		Network:          network.ID,
	}
	if m == nil {
		return state, nil
	}

	state.Initialized = true
	state.Locked = m.IsLocked()
	state.ConnectionStatus, state.LastConnectionError = m.ConnectionStatus()
	state.CurrentAccount = m.CurrentAccount()
	return state, nil
}

// ---- Dapp connections ----

// RequestConnection asks the user to authorize origin and waits for the
// answer. An already-connected origin gets its accounts immediately.
func (c *Coordinator) RequestConnection(ctx context.Context, origin, appName, appIcon string) (*domain.ConnectionResult, error) {
	if origin == "" {
		return nil, apperror.ValidationError("Origin is required")
	}
	m, err := c.liveManager()
	if err != nil {
		return nil, err
	}

	status, err := m.GetWalletStatus(ctx)
	if err != nil {
		return nil, err
	}
	if !status.HasWallet {
		return nil, apperror.ErrNoWalletFound()
	}
	if status.IsLocked {
		return nil, apperror.ErrWalletLocked()
	}

	connected, err := c.IsSiteConnected(ctx, origin)
	if err != nil {
		return nil, err
	}
	if connected {
		accounts, err := c.accountSummaries(ctx, m)
		if err != nil {
			return nil, err
		}
		return &domain.ConnectionResult{Approved: true, Accounts: accounts}, nil
	}

	req := c.addPendingRequest(domain.PendingRequestInfo{
		ID:        uuid.New(),
		Origin:    origin,
		AppName:   appName,
		AppIcon:   appIcon,
		Timestamp: time.Now().UTC(),
	})

	if c.deps.Windows != nil {
		windowID, err := c.deps.Windows.OpenApproval(ctx, req.info)
		if err != nil {
			c.log.Warn().Err(err).Str("request_id", req.info.ID.String()).Msg("failed to open approval window")
		} else {
			c.pendingMu.Lock()
			req.info.WindowID = windowID
			c.pendingMu.Unlock()
		}
	}
	c.publish(domain.Event{Name: domain.EventApprovalRequested, Data: c.snapshot(req)})

	select {
	case out := <-req.result:
		if out.err != nil {
			return nil, out.err
		}
		return &domain.ConnectionResult{Approved: true, Accounts: out.accounts}, nil
	case <-ctx.Done():
		// The request stays pending until it is answered or expires.
		return nil, apperror.ErrTimeout("REQUEST_CONNECTION")
	}
}

// addPendingRequest registers info and arms its expiry timer.
func (c *Coordinator) addPendingRequest(info domain.PendingRequestInfo) *pendingRequest {
	req := &pendingRequest{
		info:   info,
		result: make(chan connectionOutcome, 1),
	}

	c.pendingMu.Lock()
	c.pending[info.ID] = req
	req.timer = time.AfterFunc(c.deps.PendingTimeout, func() { c.expire(info.ID) })
	n := len(c.pending)
	c.pendingMu.Unlock()

	c.deps.Metrics.SetPendingRequests(n)
	c.log.Info().
		Str("request_id", info.ID.String()).
		Str("origin", info.Origin).
		Msg("connection request pending")
	return req
}

// takePending removes and returns id, or nil when it is already gone.
func (c *Coordinator) takePending(id uuid.UUID) *pendingRequest {
	c.pendingMu.Lock()
	req, ok := c.pending[id]
	if ok {
		delete(c.pending, id)
	}
	n := len(c.pending)
	c.pendingMu.Unlock()

	if !ok {
		return nil
	}
	c.deps.Metrics.SetPendingRequests(n)
	return req
}

func (c *Coordinator) expire(id uuid.UUID) {
	req := c.takePending(id)
	if req == nil {
		return
	}
	req.resolve(connectionOutcome{err: apperror.ErrRequestExpired()})
	c.closeWindow(req)
	c.log.Info().Str("request_id", id.String()).Str("origin", req.info.Origin).Msg("connection request expired")
}

// ApprovePendingRequest connects the request's origin and resolves it with
// the wallet's accounts. An unknown id is ignored.
func (c *Coordinator) ApprovePendingRequest(ctx context.Context, id uuid.UUID) error {
	req := c.takePending(id)
	if req == nil {
		c.log.Warn().Str("request_id", id.String()).Msg("approve for unknown or resolved request")
		return nil
	}

	m, err := c.liveManager()
	if err != nil {
		req.resolve(connectionOutcome{err: err})
		c.closeWindow(req)
		return err
	}
	accounts, err := c.accountSummaries(ctx, m)
	if err != nil {
		req.resolve(connectionOutcome{err: err})
		c.closeWindow(req)
		return err
	}

	site := domain.ConnectedSite{
		Origin:      req.info.Origin,
		AppName:     req.info.AppName,
		AppIcon:     req.info.AppIcon,
		ConnectedAt: time.Now().UTC(),
	}
	if err := c.deps.Sites.Save(ctx, site); err != nil {
		appErr := apperror.InternalError(fmt.Errorf("save connected site: %w", err))
		req.resolve(connectionOutcome{err: appErr})
		c.closeWindow(req)
		return appErr
	}

	req.resolve(connectionOutcome{accounts: accounts})
	c.closeWindow(req)

	c.audit(ctx, domain.AuditActionApproveConnection, site.Origin)
	c.publish(domain.Event{Name: domain.EventAccountsChanged, Origin: site.Origin, Data: accounts})
	c.log.Info().Str("request_id", id.String()).Str("origin", site.Origin).Msg("connection approved")
	return nil
}

// RejectPendingRequest rejects id with reason ("User rejected" when
// empty). An unknown id is ignored.
func (c *Coordinator) RejectPendingRequest(ctx context.Context, id uuid.UUID, reason string) error {
	req := c.takePending(id)
	if req == nil {
		c.log.Warn().Str("request_id", id.String()).Msg("reject for unknown or resolved request")
		return nil
	}

	req.resolve(connectionOutcome{err: apperror.ErrUserRejected(reason)})
	c.closeWindow(req)

	c.audit(ctx, domain.AuditActionRejectConnection, req.info.Origin)
	c.log.Info().Str("request_id", id.String()).Str("origin", req.info.Origin).Msg("connection rejected")
	return nil
}

// ApprovalWindowClosed rejects the request whose approval window the user
// closed.
func (c *Coordinator) ApprovalWindowClosed(ctx context.Context, windowID string) error {
	if windowID == "" {
		return nil
	}

	c.pendingMu.Lock()
	var id uuid.UUID
	for reqID, req := range c.pending {
		if req.info.WindowID == windowID {
			id = reqID
			break
		}
	}
	c.pendingMu.Unlock()

	if id == uuid.Nil {
		return nil
	}
	req := c.takePending(id)
	if req == nil {
		return nil
	}
	req.resolve(connectionOutcome{err: apperror.ErrUserRejected(windowClosedReason)})
	c.publish(domain.Event{Name: domain.EventApprovalClosed, Data: map[string]string{"requestId": id.String()}})
	c.audit(ctx, domain.AuditActionRejectConnection, req.info.Origin)
	return nil
}

// GetPendingRequest returns the public part of a pending request.
func (c *Coordinator) GetPendingRequest(id uuid.UUID) (*domain.PendingRequestInfo, error) {
	c.pendingMu.Lock()
	defer c.pendingMu.Unlock()
	req, ok := c.pending[id]
	if !ok {
		return nil, apperror.ErrRequestNotFound()
	}
	info := req.info
	return &info, nil
}

func (c *Coordinator) snapshot(req *pendingRequest) domain.PendingRequestInfo {
	c.pendingMu.Lock()
	defer c.pendingMu.Unlock()
	return req.info
}

func (c *Coordinator) closeWindow(req *pendingRequest) {
	c.pendingMu.Lock()
	windowID := req.info.WindowID
	c.pendingMu.Unlock()

	if windowID != "" && c.deps.Windows != nil {
		if err := c.deps.Windows.Close(context.Background(), windowID); err != nil {
			c.log.Debug().Err(err).Str("window_id", windowID).Msg("failed to close approval window")
		}
	}
	c.publish(domain.Event{Name: domain.EventApprovalClosed, Data: map[string]string{"requestId": req.info.ID.String()}})
}

// IsSiteConnected reports whether origin is authorized.
func (c *Coordinator) IsSiteConnected(ctx context.Context, origin string) (bool, error) {
	site, err := c.deps.Sites.Get(ctx, origin)
	if err != nil {
		return false, apperror.InternalError(fmt.Errorf("get connected site: %w", err))
	}
	return site != nil, nil
}

// DisconnectSite revokes origin. Revoking an unknown origin is not an error.
func (c *Coordinator) DisconnectSite(ctx context.Context, origin string) error {
	removed, err := c.deps.Sites.Delete(ctx, origin)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("delete connected site: %w", err))
	}
	if removed {
		c.audit(ctx, domain.AuditActionDisconnectSite, origin)
		c.publish(domain.Event{Name: domain.EventDisconnect, Origin: origin})
		c.log.Info().Str("origin", origin).Msg("site disconnected")
	}
	return nil
}

// ConnectedSites lists authorized origins.
func (c *Coordinator) ConnectedSites(ctx context.Context) ([]domain.ConnectedSite, error) {
	sites, err := c.deps.Sites.List(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list connected sites: %w", err))
	}
	if sites == nil {
		sites = []domain.ConnectedSite{}
	}
	return sites, nil
}

func (c *Coordinator) accountSummaries(ctx context.Context, m *WalletManager) ([]domain.AccountSummary, error) {
	accounts, err := m.GetAccounts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.AccountSummary, 0, len(accounts))
	for i := range accounts {
		out = append(out, accounts[i].Summary())
	}
	return out, nil
}

// ---- Networks and settings ----

// SwitchNetwork persists the selection, tears the current manager down
// and builds a new, locked one bound to the new endpoint.
func (c *Coordinator) SwitchNetwork(ctx context.Context, networkID, customEndpoint string) (*domain.Network, error) {
	network, err := c.resolveNetwork(networkID, customEndpoint)
	if err != nil {
		return nil, err
	}

	if err := c.deps.Settings.Set(ctx, ports.SettingNetwork, network.ID); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("save network: %w", err))
	}
	if network.ID == domain.NetworkCustom {
		if err := c.deps.Settings.Set(ctx, ports.SettingCustomEndpoint, network.Endpoint); err != nil {
			return nil, apperror.InternalError(fmt.Errorf("save custom endpoint: %w", err))
		}
	}

	c.cancelSubscriptions()
	if c.deps.Auth != nil {
		c.deps.Auth.Clear()
	}

	c.mu.Lock()
	old := c.manager
	c.manager = nil
	if old != nil {
		old.Close()
	}
	c.manager = NewWalletManager(c.deps.Manager, c.deps.Dial(network.Endpoint), c.log)
	c.network = network
	c.mu.Unlock()

	c.publish(domain.Event{Name: domain.EventChainChanged, Data: network})
	c.log.Info().Str("network", network.ID).Str("endpoint", network.Endpoint).Msg("network switched")

	out := network
	return &out, nil
}

// CurrentNetwork returns the network the live manager is bound to, or the
// stored selection before Init.
func (c *Coordinator) CurrentNetwork(ctx context.Context) (*domain.Network, error) {
	c.mu.RLock()
	network, live := c.network, c.manager != nil
	c.mu.RUnlock()
	if live {
		return &network, nil
	}

	stored, err := c.storedNetwork(ctx)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (c *Coordinator) storedNetwork(ctx context.Context) (domain.Network, error) {
	id, err := c.deps.Settings.Get(ctx, ports.SettingNetwork)
	if err != nil {
		return domain.Network{}, apperror.InternalError(fmt.Errorf("load network: %w", err))
	}
	var custom string
	if id == domain.NetworkCustom {
		custom, err = c.deps.Settings.Get(ctx, ports.SettingCustomEndpoint)
		if err != nil {
			return domain.Network{}, apperror.InternalError(fmt.Errorf("load custom endpoint: %w", err))
		}
	}
	if network, err := c.resolveNetwork(id, custom); err == nil {
		return network, nil
	}
	if id != "" {
		c.log.Warn().Str("network", id).Msg("stored network is unusable, falling back to default")
	}
	return c.resolveNetwork(c.deps.DefaultNetwork, "")
}

func (c *Coordinator) resolveNetwork(networkID, customEndpoint string) (domain.Network, error) {
	if networkID == domain.NetworkCustom {
		if !strings.HasPrefix(customEndpoint, "ws://") && !strings.HasPrefix(customEndpoint, "wss://") {
			return domain.Network{}, apperror.ValidationError("Custom endpoint must be a ws:// or wss:// URL")
		}
		return domain.Network{ID: domain.NetworkCustom, Name: "Custom", Endpoint: customEndpoint}, nil
	}
	network, ok := c.deps.Networks[networkID]
	if !ok {
		return domain.Network{}, apperror.ErrUnknownNetwork(networkID)
	}
	return network, nil
}

// SetTheme stores the UI theme.
func (c *Coordinator) SetTheme(ctx context.Context, theme domain.Theme) error {
	if !theme.Valid() {
		return apperror.ValidationError(fmt.Sprintf("Unknown theme: %s", theme))
	}
	if err := c.deps.Settings.Set(ctx, ports.SettingTheme, string(theme)); err != nil {
		return apperror.InternalError(fmt.Errorf("save theme: %w", err))
	}
	return nil
}

// GetTheme returns the stored theme, dark by default.
func (c *Coordinator) GetTheme(ctx context.Context) (domain.Theme, error) {
	raw, err := c.deps.Settings.Get(ctx, ports.SettingTheme)
	if err != nil {
		return "", apperror.InternalError(fmt.Errorf("load theme: %w", err))
	}
	theme := domain.Theme(raw)
	if !theme.Valid() {
		return domain.DefaultTheme, nil
	}
	return theme, nil
}

// ---- Subscriptions and backend ----

// SubscribeTransactions streams backend updates for address (default: the
// current account) as transactionUpdated events until lock or network
// switch. It returns a subscription id.
func (c *Coordinator) SubscribeTransactions(ctx context.Context, address string) (string, error) {
	m, err := c.liveManager()
	if err != nil {
		return "", err
	}
	if c.deps.History == nil {
		return "", apperror.ErrBackendRequest("Transaction history is not configured", nil)
	}
	address, err = m.resolveAddress(ctx, address)
	if err != nil {
		return "", err
	}

	cancel, err := c.deps.History.Subscribe(context.WithoutCancel(ctx), address, func(tx domain.Transaction) {
		c.publish(domain.Event{Name: domain.EventTransactionUpdated, Data: tx})
	})
	if err != nil {
		return "", passThrough(err, "subscribe transactions")
	}

	id := uuid.NewString()
	c.subsMu.Lock()
	c.subs[id] = cancel
	c.subsMu.Unlock()

	c.log.Debug().Str("subscription_id", id).Str("address", address).Msg("transaction subscription started")
	return id, nil
}

func (c *Coordinator) cancelSubscriptions() {
	c.subsMu.Lock()
	subs := c.subs
	c.subs = make(map[string]func())
	c.subsMu.Unlock()

	for _, cancel := range subs {
		cancel()
	}
}

// AuthenticateBackend logs the current account in to the backend,
// refreshing an existing session when possible.
func (c *Coordinator) AuthenticateBackend(ctx context.Context) (*ports.AuthSession, error) {
	if c.deps.Auth == nil {
		return nil, apperror.ErrBackendAuthFailed(fmt.Errorf("backend is not configured"))
	}
	m, err := c.liveManager()
	if err != nil {
		return nil, err
	}
	account := m.CurrentAccount()
	if account == nil {
		return nil, apperror.ErrWalletLocked()
	}

	if existing := c.deps.Auth.Session(); existing != nil && existing.User.WalletAddress == account.Address {
		if refreshed, err := c.deps.Auth.Refresh(ctx); err == nil {
			return refreshed, nil
		}
	}

	return c.deps.Auth.Authenticate(ctx, account.Address, func(message string) (string, error) {
		signed, err := m.SignMessage(ctx, message)
		if err != nil {
			return "", err
		}
		return signed.Signature, nil
	})
}

// Close rejects outstanding requests, stops subscriptions and shuts the
// manager down.
func (c *Coordinator) Close() {
	c.pendingMu.Lock()
	ids := make([]uuid.UUID, 0, len(c.pending))
	for id := range c.pending {
		ids = append(ids, id)
	}
	c.pendingMu.Unlock()
	for _, id := range ids {
		if req := c.takePending(id); req != nil {
			req.resolve(connectionOutcome{err: apperror.ErrUserRejected("Wallet service stopped")})
		}
	}

	c.cancelSubscriptions()

	c.mu.Lock()
	if c.manager != nil {
		c.manager.Close()
		c.manager = nil
	}
	c.mu.Unlock()
}

func (c *Coordinator) publish(event domain.Event) {
	if c.deps.Events != nil {
		c.deps.Events.Publish(event)
	}
}

func (c *Coordinator) audit(ctx context.Context, action domain.AuditAction, origin string) {
	if c.deps.Audit == nil {
		return
	}
	c.deps.Audit.Log(ctx, &domain.AuditLog{
		Action:       action,
		ResourceType: "site",
		ResourceID:   origin,
		Origin:       origin,
	})
}

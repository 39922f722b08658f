package service

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"glin-wallet/internal/core/domain"
	"glin-wallet/internal/core/ports"
	"glin-wallet/internal/core/ports/mocks"
	"glin-wallet/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const dappOrigin = "https://example.com"

// siteMap is a ConnectedSiteStore over a map.
type siteMap struct {
	mu    sync.Mutex
	sites map[string]domain.ConnectedSite
}

func newSiteMap() *siteMap {
	return &siteMap{sites: make(map[string]domain.ConnectedSite)}
}

func (s *siteMap) Save(ctx context.Context, site domain.ConnectedSite) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sites[site.Origin] = site
	return nil
}

func (s *siteMap) Get(ctx context.Context, origin string) (*domain.ConnectedSite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	site, ok := s.sites[origin]
	if !ok {
		return nil, nil
	}
	return &site, nil
}

func (s *siteMap) Delete(ctx context.Context, origin string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sites[origin]
	delete(s.sites, origin)
	return ok, nil
}

func (s *siteMap) List(ctx context.Context) ([]domain.ConnectedSite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ConnectedSite, 0, len(s.sites))
	for _, site := range s.sites {
		out = append(out, site)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Origin < out[j].Origin })
	return out, nil
}

type coordFixture struct {
	*managerFixture
	settings *mocks.MockSettingsStore
	windows  *mocks.MockWindowManager
	sites    *siteMap
	coord    *Coordinator
	dialed   []string
}

func testNetworks() map[string]domain.Network {
	return map[string]domain.Network{
		domain.NetworkTestnet:   {ID: domain.NetworkTestnet, Name: "GLIN Testnet", Endpoint: "wss://testnet.glin.example"},
		domain.NetworkLocalhost: {ID: domain.NetworkLocalhost, Name: "Localhost", Endpoint: "ws://127.0.0.1:9944"},
	}
}

func newCoordFixture(t *testing.T, pendingTimeout time.Duration) *coordFixture {
	t.Helper()
	mf := newManagerFixture(t)
	f := &coordFixture{
		managerFixture: mf,
		settings:       mocks.NewMockSettingsStore(mf.ctrl),
		windows:        mocks.NewMockWindowManager(mf.ctrl),
		sites:          newSiteMap(),
	}
	f.coord = NewCoordinator(CoordinatorDeps{
		Manager: mf.deps,
		Dial: func(endpoint string) ports.ChainClient {
			f.dialed = append(f.dialed, endpoint)
			return mf.chain
		},
		Networks:       testNetworks(),
		DefaultNetwork: domain.NetworkTestnet,
		Sites:          f.sites,
		Settings:       f.settings,
		Windows:        f.windows,
		Events:         mf.events,
		PendingTimeout: pendingTimeout,
	}, newTestLogger())
	return f
}

// initUnlocked initializes the coordinator on the default network and
// creates an unlocked wallet.
func (f *coordFixture) initUnlocked(t *testing.T) (*WalletManager, *domain.CreatedWallet) {
	t.Helper()
	f.settings.EXPECT().Get(gomock.Any(), ports.SettingNetwork).Return("", nil)
	require.NoError(t, f.coord.Init(context.Background(), ""))

	m, err := f.coord.liveManager()
	require.NoError(t, err)
	created, err := m.CreateWallet(context.Background(), "Main", testPassword, "", false)
	require.NoError(t, err)
	return m, created
}

// awaitPending waits for the approvalRequested event and returns its request.
func (f *coordFixture) awaitPending(t *testing.T) domain.PendingRequestInfo {
	t.Helper()
	var info domain.PendingRequestInfo
	require.Eventually(t, func() bool {
		ev, ok := f.events.last(domain.EventApprovalRequested)
		if !ok {
			return false
		}
		info = ev.Data.(domain.PendingRequestInfo)
		return true
	}, time.Second, 5*time.Millisecond)
	return info
}

type connectionCall struct {
	result *domain.ConnectionResult
	err    error
}

func (f *coordFixture) requestAsync(ctx context.Context) <-chan connectionCall {
	out := make(chan connectionCall, 1)
	go func() {
		res, err := f.coord.RequestConnection(ctx, dappOrigin, "Example", "https://example.com/icon.png")
		out <- connectionCall{res, err}
	}()
	return out
}

func waitCall(t *testing.T, ch <-chan connectionCall) connectionCall {
	t.Helper()
	select {
	case c := <-ch:
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("RequestConnection did not return")
		return connectionCall{}
	}
}

func TestCoordinator_ManagerBeforeInit(t *testing.T) {
	f := newCoordFixture(t, 0)

	assert.False(t, f.coord.IsInitialized())
	m, err := f.coord.Manager()
	assert.Nil(t, m)
	assert.ErrorIs(t, err, apperror.ErrNotInitialized())

	_, err = f.coord.RequestConnection(context.Background(), dappOrigin, "Example", "")
	assert.ErrorIs(t, err, apperror.ErrNotInitialized())
}

func TestCoordinator_InitIsIdempotent(t *testing.T) {
	f := newCoordFixture(t, 0)
	ctx := context.Background()

	f.settings.EXPECT().Get(gomock.Any(), ports.SettingNetwork).Return("", nil).Times(1)

	require.NoError(t, f.coord.Init(ctx, ""))
	first, err := f.coord.Manager()
	require.NoError(t, err)

	require.NoError(t, f.coord.Init(ctx, ""))
	second, err := f.coord.Manager()
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, []string{"wss://testnet.glin.example"}, f.dialed)
	assert.True(t, f.coord.IsInitialized())
}

func TestCoordinator_InitUsesStoredNetwork(t *testing.T) {
	f := newCoordFixture(t, 0)

	f.settings.EXPECT().Get(gomock.Any(), ports.SettingNetwork).Return(domain.NetworkCustom, nil)
	f.settings.EXPECT().Get(gomock.Any(), ports.SettingCustomEndpoint).Return("ws://10.0.0.5:9944", nil)

	require.NoError(t, f.coord.Init(context.Background(), ""))

	network, err := f.coord.CurrentNetwork(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.NetworkCustom, network.ID)
	assert.Equal(t, []string{"ws://10.0.0.5:9944"}, f.dialed)
}

func TestCoordinator_InitEndpointOverride(t *testing.T) {
	f := newCoordFixture(t, 0)

	f.settings.EXPECT().Get(gomock.Any(), ports.SettingNetwork).Return("", nil)

	require.NoError(t, f.coord.Init(context.Background(), "ws://override:9944"))
	assert.Equal(t, []string{"ws://override:9944"}, f.dialed)
}

func TestCoordinator_RequestConnection_Preconditions(t *testing.T) {
	f := newCoordFixture(t, 0)
	ctx := context.Background()

	f.settings.EXPECT().Get(gomock.Any(), ports.SettingNetwork).Return("", nil)
	require.NoError(t, f.coord.Init(ctx, ""))

	_, err := f.coord.RequestConnection(ctx, dappOrigin, "Example", "")
	assert.ErrorIs(t, err, apperror.ErrNoWalletFound())

	m, _ := f.coord.liveManager()
	_, err = m.CreateWallet(ctx, "Main", testPassword, "", false)
	require.NoError(t, err)
	m.LockWallet()

	_, err = f.coord.RequestConnection(ctx, dappOrigin, "Example", "")
	require.Error(t, err)
	assert.Equal(t, "Wallet is locked. Please unlock wallet first.", err.(*apperror.AppError).Message)
}

func TestCoordinator_ApproveConnection(t *testing.T) {
	f := newCoordFixture(t, time.Minute)
	ctx := context.Background()
	_, created := f.initUnlocked(t)

	f.windows.EXPECT().OpenApproval(gomock.Any(), gomock.Any()).Return("win-1", nil)
	f.windows.EXPECT().Close(gomock.Any(), "win-1").Return(nil)

	call := f.requestAsync(ctx)
	info := f.awaitPending(t)
	assert.Equal(t, dappOrigin, info.Origin)
	assert.Equal(t, "win-1", info.WindowID)

	pending, err := f.coord.GetPendingRequest(info.ID)
	require.NoError(t, err)
	assert.Equal(t, "Example", pending.AppName)

	require.NoError(t, f.coord.ApprovePendingRequest(ctx, info.ID))

	res := waitCall(t, call)
	require.NoError(t, res.err)
	assert.True(t, res.result.Approved)
	require.Len(t, res.result.Accounts, 1)
	assert.Equal(t, created.Address, res.result.Accounts[0].Address)

	connected, err := f.coord.IsSiteConnected(ctx, dappOrigin)
	require.NoError(t, err)
	assert.True(t, connected)

	// A second resolution is a no-op.
	require.NoError(t, f.coord.ApprovePendingRequest(ctx, info.ID))
	require.NoError(t, f.coord.RejectPendingRequest(ctx, info.ID, ""))
	_, err = f.coord.GetPendingRequest(info.ID)
	assert.ErrorIs(t, err, apperror.ErrRequestNotFound())

	// Connected origins skip the approval window.
	again, err := f.coord.RequestConnection(ctx, dappOrigin, "Example", "")
	require.NoError(t, err)
	assert.True(t, again.Approved)
}

func TestCoordinator_RejectConnection(t *testing.T) {
	f := newCoordFixture(t, time.Minute)
	ctx := context.Background()
	f.initUnlocked(t)

	f.windows.EXPECT().OpenApproval(gomock.Any(), gomock.Any()).Return("win-1", nil)
	f.windows.EXPECT().Close(gomock.Any(), "win-1").Return(nil)

	call := f.requestAsync(ctx)
	info := f.awaitPending(t)

	require.NoError(t, f.coord.RejectPendingRequest(ctx, info.ID, ""))

	res := waitCall(t, call)
	require.Error(t, res.err)
	assert.Equal(t, "User rejected", res.err.(*apperror.AppError).Message)

	connected, err := f.coord.IsSiteConnected(ctx, dappOrigin)
	require.NoError(t, err)
	assert.False(t, connected)
}

func TestCoordinator_RequestTimesOut(t *testing.T) {
	f := newCoordFixture(t, 30*time.Millisecond)
	ctx := context.Background()
	f.initUnlocked(t)

	f.windows.EXPECT().OpenApproval(gomock.Any(), gomock.Any()).Return("win-1", nil)
	f.windows.EXPECT().Close(gomock.Any(), "win-1").Return(nil)

	call := f.requestAsync(ctx)
	info := f.awaitPending(t)

	res := waitCall(t, call)
	assert.ErrorIs(t, res.err, apperror.ErrUserRejected(""))
	assert.NotErrorIs(t, res.err, apperror.ErrTimeout("REQUEST_CONNECTION"))
	appErr := res.err.(*apperror.AppError)
	assert.Equal(t, "DAPP_003", appErr.Code)
	assert.Equal(t, "Connection request expired", appErr.Message)

	_, err := f.coord.GetPendingRequest(info.ID)
	assert.ErrorIs(t, err, apperror.ErrRequestNotFound())

	// Approving after expiry changes nothing.
	require.NoError(t, f.coord.ApprovePendingRequest(ctx, info.ID))
	connected, err := f.coord.IsSiteConnected(ctx, dappOrigin)
	require.NoError(t, err)
	assert.False(t, connected)
}

func TestCoordinator_ApprovalWindowClosed(t *testing.T) {
	f := newCoordFixture(t, time.Minute)
	ctx := context.Background()
	f.initUnlocked(t)

	f.windows.EXPECT().OpenApproval(gomock.Any(), gomock.Any()).Return("win-7", nil)

	call := f.requestAsync(ctx)
	f.awaitPending(t)

	require.NoError(t, f.coord.ApprovalWindowClosed(ctx, "win-7"))
	require.NoError(t, f.coord.ApprovalWindowClosed(ctx, "win-7"))

	res := waitCall(t, call)
	require.Error(t, res.err)
	assert.Equal(t, "Approval window closed", res.err.(*apperror.AppError).Message)
	assert.Contains(t, f.events.names(), domain.EventApprovalClosed)
}

func TestCoordinator_PendingRequestResolvesOnce(t *testing.T) {
	f := newCoordFixture(t, 20*time.Millisecond)
	ctx := context.Background()
	f.initUnlocked(t)

	f.windows.EXPECT().OpenApproval(gomock.Any(), gomock.Any()).Return("win-1", nil)
	var closes atomic.Int32
	f.windows.EXPECT().Close(gomock.Any(), "win-1").DoAndReturn(func(ctx context.Context, id string) error {
		closes.Add(1)
		return nil
	}).AnyTimes()

	call := f.requestAsync(ctx)
	info := f.awaitPending(t)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = f.coord.ApprovePendingRequest(ctx, info.ID)
		}()
		go func() {
			defer wg.Done()
			_ = f.coord.RejectPendingRequest(ctx, info.ID, "")
		}()
	}
	go func() { _ = f.coord.ApprovalWindowClosed(ctx, "win-1") }()
	wg.Wait()

	res := waitCall(t, call)
	connected, err := f.coord.IsSiteConnected(ctx, dappOrigin)
	require.NoError(t, err)
	if res.err == nil {
		assert.True(t, connected)
	} else {
		assert.False(t, connected)
	}

	time.Sleep(50 * time.Millisecond)
	assert.LessOrEqual(t, closes.Load(), int32(1))
}

func TestCoordinator_CallerGivesUp(t *testing.T) {
	f := newCoordFixture(t, time.Minute)
	f.initUnlocked(t)

	f.windows.EXPECT().OpenApproval(gomock.Any(), gomock.Any()).Return("", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := f.coord.RequestConnection(ctx, dappOrigin, "Example", "")
	assert.ErrorIs(t, err, apperror.ErrTimeout("REQUEST_CONNECTION"))
}

func TestCoordinator_DisconnectSite(t *testing.T) {
	f := newCoordFixture(t, 0)
	ctx := context.Background()

	require.NoError(t, f.sites.Save(ctx, domain.ConnectedSite{Origin: dappOrigin, AppName: "Example", ConnectedAt: time.Now()}))

	sites, err := f.coord.ConnectedSites(ctx)
	require.NoError(t, err)
	require.Len(t, sites, 1)

	require.NoError(t, f.coord.DisconnectSite(ctx, dappOrigin))
	require.NoError(t, f.coord.DisconnectSite(ctx, dappOrigin))

	sites, err = f.coord.ConnectedSites(ctx)
	require.NoError(t, err)
	assert.Empty(t, sites)

	ev, ok := f.events.last(domain.EventDisconnect)
	require.True(t, ok)
	assert.Equal(t, dappOrigin, ev.Origin)
}

func TestCoordinator_SwitchNetworkForcesUnlock(t *testing.T) {
	f := newCoordFixture(t, 0)
	ctx := context.Background()
	old, _ := f.initUnlocked(t)

	f.settings.EXPECT().Set(gomock.Any(), ports.SettingNetwork, domain.NetworkLocalhost).Return(nil)
	f.chain.EXPECT().Disconnect().Return(nil)

	network, err := f.coord.SwitchNetwork(ctx, domain.NetworkLocalhost, "")
	require.NoError(t, err)
	assert.Equal(t, "ws://127.0.0.1:9944", network.Endpoint)

	assert.True(t, old.IsLocked(), "old session is released")
	current, err := f.coord.liveManager()
	require.NoError(t, err)
	assert.NotSame(t, old, current)
	assert.True(t, current.IsLocked())

	got, err := f.coord.CurrentNetwork(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.NetworkLocalhost, got.ID)
	assert.Equal(t, []string{"wss://testnet.glin.example", "ws://127.0.0.1:9944"}, f.dialed)
	assert.Contains(t, f.events.names(), domain.EventChainChanged)
}

func TestCoordinator_SwitchNetwork_Custom(t *testing.T) {
	f := newCoordFixture(t, 0)
	ctx := context.Background()

	_, err := f.coord.SwitchNetwork(ctx, domain.NetworkCustom, "http://not-a-socket")
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	_, err = f.coord.SwitchNetwork(ctx, "moonbase", "")
	assert.ErrorIs(t, err, apperror.ErrUnknownNetwork("moonbase"))

	f.settings.EXPECT().Set(gomock.Any(), ports.SettingNetwork, domain.NetworkCustom).Return(nil)
	f.settings.EXPECT().Set(gomock.Any(), ports.SettingCustomEndpoint, "wss://rpc.example.org").Return(nil)

	network, err := f.coord.SwitchNetwork(ctx, domain.NetworkCustom, "wss://rpc.example.org")
	require.NoError(t, err)
	assert.Equal(t, "wss://rpc.example.org", network.Endpoint)
	assert.True(t, f.coord.IsInitialized())
}

func TestCoordinator_GetState(t *testing.T) {
	f := newCoordFixture(t, 0)
	ctx := context.Background()

	state, err := f.coord.GetState(ctx)
	require.NoError(t, err)
	assert.False(t, state.Initialized)
	assert.True(t, state.Locked)
	assert.Empty(t, state.ConnectedSites)

	_, created := f.initUnlocked(t)
	require.NoError(t, f.sites.Save(ctx, domain.ConnectedSite{Origin: dappOrigin, AppName: "Example"}))

	// No chain expectations are set: building state must stay offline.
	state, err = f.coord.GetState(ctx)
	require.NoError(t, err)
	assert.True(t, state.Initialized)
	assert.False(t, state.Locked)
	assert.Equal(t, domain.ConnectionDisconnected, state.ConnectionStatus)
	assert.Equal(t, created.Address, state.CurrentAccount.Address)
	assert.Equal(t, domain.NetworkTestnet, state.Network)
	require.Len(t, state.ConnectedSites, 1)
}

func TestCoordinator_Theme(t *testing.T) {
	f := newCoordFixture(t, 0)
	ctx := context.Background()

	f.settings.EXPECT().Get(gomock.Any(), ports.SettingTheme).Return("", nil)
	theme, err := f.coord.GetTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeDark, theme)

	err = f.coord.SetTheme(ctx, domain.Theme("neon"))
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	f.settings.EXPECT().Set(gomock.Any(), ports.SettingTheme, "light").Return(nil)
	require.NoError(t, f.coord.SetTheme(ctx, domain.ThemeLight))
}

func TestCoordinator_LockCancelsSubscriptions(t *testing.T) {
	mf := newManagerFixture(t)
	history := mocks.NewMockTransactionHistory(mf.ctrl)
	auth := mocks.NewMockBackendAuthenticator(mf.ctrl)
	settings := mocks.NewMockSettingsStore(mf.ctrl)

	coord := NewCoordinator(CoordinatorDeps{
		Manager:        mf.deps,
		Dial:           func(string) ports.ChainClient { return mf.chain },
		Networks:       testNetworks(),
		DefaultNetwork: domain.NetworkTestnet,
		Sites:          newSiteMap(),
		Settings:       settings,
		Events:         mf.events,
		History:        history,
		Auth:           auth,
	}, newTestLogger())

	ctx := context.Background()
	settings.EXPECT().Get(gomock.Any(), ports.SettingNetwork).Return("", nil)
	require.NoError(t, coord.Init(ctx, ""))
	m, _ := coord.liveManager()
	created, err := m.CreateWallet(ctx, "Main", testPassword, "", false)
	require.NoError(t, err)

	var cancelled atomic.Bool
	history.EXPECT().Subscribe(gomock.Any(), created.Address, gomock.Any()).
		DoAndReturn(func(ctx context.Context, address string, handler func(domain.Transaction)) (func(), error) {
			handler(domain.Transaction{Hash: "0x01"})
			return func() { cancelled.Store(true) }, nil
		})

	subID, err := coord.SubscribeTransactions(ctx, "")
	require.NoError(t, err)
	_, err = uuid.Parse(subID)
	assert.NoError(t, err)
	assert.Contains(t, mf.events.names(), domain.EventTransactionUpdated)

	auth.EXPECT().Clear()
	coord.Lock(ctx)

	assert.True(t, cancelled.Load())
	assert.True(t, m.IsLocked())
}

func TestCoordinator_AuthenticateBackend(t *testing.T) {
	mf := newManagerFixture(t)
	auth := mocks.NewMockBackendAuthenticator(mf.ctrl)
	settings := mocks.NewMockSettingsStore(mf.ctrl)

	coord := NewCoordinator(CoordinatorDeps{
		Manager:        mf.deps,
		Dial:           func(string) ports.ChainClient { return mf.chain },
		Networks:       testNetworks(),
		DefaultNetwork: domain.NetworkTestnet,
		Sites:          newSiteMap(),
		Settings:       settings,
		Auth:           auth,
	}, newTestLogger())

	ctx := context.Background()
	settings.EXPECT().Get(gomock.Any(), ports.SettingNetwork).Return("", nil)
	require.NoError(t, coord.Init(ctx, ""))
	m, _ := coord.liveManager()

	m.LockWallet()
	_, err := coord.AuthenticateBackend(ctx)
	assert.ErrorIs(t, err, apperror.ErrWalletLocked())

	created, err := m.CreateWallet(ctx, "Main", testPassword, "", false)
	require.NoError(t, err)

	auth.EXPECT().Session().Return(nil)
	auth.EXPECT().Authenticate(gomock.Any(), created.Address, gomock.Any()).
		DoAndReturn(func(ctx context.Context, address string, sign func(string) (string, error)) (*ports.AuthSession, error) {
			sig, err := sign("Sign in to GLIN")
			require.NoError(t, err)

			raw, err := DecodeHex(sig)
			require.NoError(t, err)
			ok, err := newTestKeyring().Verify(address, WrapBytes("Sign in to GLIN"), raw)
			require.NoError(t, err)
			assert.True(t, ok)

			return &ports.AuthSession{AccessToken: "access", User: ports.BackendUser{WalletAddress: address}}, nil
		})

	session, err := coord.AuthenticateBackend(ctx)
	require.NoError(t, err)
	assert.Equal(t, "access", session.AccessToken)

	// An existing session for the same address is refreshed instead.
	auth.EXPECT().Session().Return(&ports.AuthSession{User: ports.BackendUser{WalletAddress: created.Address}})
	auth.EXPECT().Refresh(gomock.Any()).Return(&ports.AuthSession{AccessToken: "refreshed"}, nil)

	session, err = coord.AuthenticateBackend(ctx)
	require.NoError(t, err)
	assert.Equal(t, "refreshed", session.AccessToken)
}

func TestCoordinator_Close(t *testing.T) {
	f := newCoordFixture(t, time.Minute)
	f.initUnlocked(t)

	f.windows.EXPECT().OpenApproval(gomock.Any(), gomock.Any()).Return("", nil)
	call := f.requestAsync(context.Background())
	f.awaitPending(t)

	f.chain.EXPECT().Disconnect().Return(nil)
	f.coord.Close()

	res := waitCall(t, call)
	assert.Error(t, res.err)
	assert.False(t, f.coord.IsInitialized())
}

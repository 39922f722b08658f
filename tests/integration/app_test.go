package integration

import (
	"context"
	"fmt"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"glin-wallet/internal/adapter/events"
	httpHandler "glin-wallet/internal/adapter/http/handler"
	"glin-wallet/internal/adapter/http/middleware"
	"glin-wallet/internal/adapter/storage/memory"
	redisStorage "glin-wallet/internal/adapter/storage/redis"
	"glin-wallet/internal/core/domain"
	"glin-wallet/internal/core/ports"
	"glin-wallet/internal/messaging"
	"glin-wallet/internal/provider"
	"glin-wallet/internal/service"
	"glin-wallet/pkg/logger"
	"glin-wallet/pkg/metrics"
	"glin-wallet/pkg/ss58"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

const (
	testToken    = "integration-extension-token"
	testPassword = "correct horse battery"
	dappOrigin   = "https://dapp.example"
)

// fakeChain stands in for a node: balances are fixed and every transfer
// gets a fresh hash.
type fakeChain struct {
	endpoint  string
	connected atomic.Bool
	transfers *atomic.Int64
	free      *big.Int
}

var _ ports.ChainClient = (*fakeChain)(nil)

func (c *fakeChain) Connect(ctx context.Context) error { c.connected.Store(true); return nil }
func (c *fakeChain) Disconnect() error                 { c.connected.Store(false); return nil }
func (c *fakeChain) IsConnected() bool                 { return c.connected.Load() }
func (c *fakeChain) Endpoint() string                  { return c.endpoint }

func (c *fakeChain) GetBalance(ctx context.Context, address string) (domain.Balance, error) {
	b := domain.ZeroBalance()
	b.Free = new(big.Int).Set(c.free)
	return b, nil
}

func (c *fakeChain) EstimateFee(ctx context.Context, from, to string, amount *big.Int) (*big.Int, error) {
	return big.NewInt(125_000_000), nil
}

func (c *fakeChain) Transfer(ctx context.Context, signer ports.Signer, to string, amount *big.Int, onStatus func(domain.TransactionUpdate)) (string, error) {
	n := c.transfers.Add(1)
	return fmt.Sprintf("0x%064x", n), nil
}

type testApp struct {
	server    *httptest.Server
	redis     *miniredis.Miniredis
	store     *memory.Store
	hub       *events.Hub
	transfers *atomic.Int64
	coord     *service.Coordinator
	ext       *messaging.Bridge
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	log := logger.New("error", false)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})

	store := memory.NewStore()
	hub := events.NewHub(log)
	transfers := new(atomic.Int64)
	free := new(big.Int).Mul(big.NewInt(5), big.NewInt(1_000_000_000_000_000_000))

	// Cheap KDF settings keep unlocks fast in tests.
	kdf := service.KDFParams{Time: 1, MemoryKiB: 8 * 1024, Threads: 1}
	m := metrics.New()
	auditSvc := service.NewAuditService(store.AuditLogs(), log)
	txSvc := service.NewTransactionService(store.Transactions(), nil, log)

	coord := service.NewCoordinator(service.CoordinatorDeps{
		Manager: service.WalletManagerDeps{
			Wallets:        store.Wallets(),
			Accounts:       store.Accounts(),
			Transactions:   store.Transactions(),
			Transactor:     store.Transactor(),
			Encryption:     service.NewSecretboxEncryptionService(kdf),
			Keyring:        service.NewKeyring(42, 128),
			History:        txSvc,
			Audit:          auditSvc,
			Events:         hub,
			Metrics:        m,
			ConnectTimeout: time.Second,
		},
		Dial: func(endpoint string) ports.ChainClient {
			return &fakeChain{endpoint: endpoint, transfers: transfers, free: free}
		},
		Networks: map[string]domain.Network{
			"testnet": {ID: "testnet", Name: "GLIN Testnet", Endpoint: "ws://testnet.invalid"},
			"mainnet": {ID: "mainnet", Name: "GLIN Mainnet", Endpoint: "ws://mainnet.invalid"},
		},
		DefaultNetwork: "testnet",
		Sites:          redisStorage.NewSiteStore(rdb, "glw"),
		Settings:       redisStorage.NewSettingsStore(rdb, "glw"),
		Windows:        hub,
		Events:         hub,
		History:        txSvc,
		Audit:          auditSvc,
		Metrics:        m,
		PendingTimeout: 5 * time.Second,
	}, log)
	hub.OnWindowClosed(func(windowID string) {
		_ = coord.ApprovalWindowClosed(context.Background(), windowID)
	})
	require.NoError(t, coord.Init(context.Background(), ""))

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		Coordinator:    coord,
		Events:         hub,
		SigSvc:         service.NewHMACSignatureService(),
		ExtensionToken: testToken,
		Replay:         redisStorage.NewReplayGuard(rdb, "glw"),
		Responses:      redisStorage.NewResponseCache(rdb, "glw"),
		RateLimiter:    redisStorage.NewRateLimitStore(rdb, "glw"),
		AuditSvc:       auditSvc,
		Metrics:        m,
		HealthCheckers: []ports.HealthChecker{store, redisStorage.NewHealthCheck(rdb)},
		DappRateLimit:  600,
		Mode:           "test",
		Logger:         log,
	})
	server := httptest.NewServer(router)

	app := &testApp{
		server:    server,
		redis:     mr,
		store:     store,
		hub:       hub,
		transfers: transfers,
		coord:     coord,
	}
	app.ext = messaging.NewBridge(app.extensionTransport(), 10*time.Second, log)

	t.Cleanup(func() {
		server.Close()
		hub.Shutdown()
		coord.Close()
		txSvc.Wait()
		_ = rdb.Close()
		mr.Close()
	})
	return app
}

func (a *testApp) extensionTransport() *messaging.HTTPTransport {
	return messaging.NewHTTPTransport(messaging.HTTPTransportConfig{
		BaseURL: a.server.URL,
		Token:   testToken,
		Signer:  service.NewHMACSignatureService(),
	})
}

func (a *testApp) dappProvider(origin string) *provider.Provider {
	return provider.New(provider.Config{
		BaseURL: a.server.URL,
		Origin:  origin,
		AppName: "Example Dapp",
		Timeout: 10 * time.Second,
	}, logger.New("error", false))
}

// createWallet creates and unlocks a wallet through the message surface.
func (a *testApp) createWallet(t *testing.T, name string) domain.CreatedWallet {
	t.Helper()
	var created domain.CreatedWallet
	err := a.ext.Send(context.Background(), "CREATE_WALLET", map[string]string{
		"name":     name,
		"password": testPassword,
	}, &created)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.WalletID)
	return created
}

// extensionEvents opens the signed extension event socket.
func (a *testApp) extensionEvents(t *testing.T) *websocket.Conn {
	t.Helper()
	sig := service.NewHMACSignatureService()
	ts := time.Now().Unix()
	nonce := uuid.NewString()
	canonical := sig.BuildCanonicalString(http.MethodGet, "/api/v1/events", ts, nonce, "")

	header := http.Header{}
	header.Set(middleware.HeaderTimestamp, strconv.FormatInt(ts, 10))
	header.Set(middleware.HeaderNonce, nonce)
	header.Set(middleware.HeaderSignature, sig.Sign(testToken, canonical))

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(a.server.URL)+"/api/v1/events", header)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.Eventually(t, func() bool {
		ext, _, _ := a.hub.Stats()
		return ext > 0
	}, 2*time.Second, 10*time.Millisecond)
	return conn
}

func wsURL(httpURL string) string {
	return "ws" + strings.TrimPrefix(httpURL, "http")
}

// testAddress returns a valid generic-prefix address for seed.
func testAddress(seed byte) string {
	pub := make([]byte, 32)
	pub[0] = 0xd4
	pub[31] = seed
	return ss58.Encode(pub, 42)
}

// collector gathers provider events for assertions.
type collector struct {
	mu     sync.Mutex
	events []provider.Event
}

func (c *collector) add(ev provider.Event) {
	c.mu.Lock()
	c.events = append(c.events, ev)
	c.mu.Unlock()
}

func (c *collector) names() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.events))
	for _, ev := range c.events {
		out = append(out, ev.Name)
	}
	return out
}

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"glin-wallet/internal/adapter/events"
	"glin-wallet/internal/adapter/http/dto"
	"glin-wallet/internal/adapter/http/middleware"
	"glin-wallet/internal/core/domain"
	"glin-wallet/internal/core/ports"
	"glin-wallet/internal/core/ports/mocks"
	"glin-wallet/pkg/apperror"
	"glin-wallet/pkg/response"
	"glin-wallet/pkg/ss58"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const dappOrigin = "https://dapp.example"

func init() {
	gin.SetMode(gin.TestMode)
}

func testAddress(seed byte) string {
	pub := make([]byte, 32)
	pub[31] = seed
	return ss58.Encode(pub, 42)
}

type handlerMocks struct {
	coord     *mocks.MockSessionCoordinator
	manager   *mocks.MockWalletManager
	replay    *mocks.MockReplayGuard
	responses *mocks.MockResponseCache
}

func newTestHandler(t *testing.T) (*MessageHandler, handlerMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := handlerMocks{
		coord:     mocks.NewMockSessionCoordinator(ctrl),
		manager:   mocks.NewMockWalletManager(ctrl),
		replay:    mocks.NewMockReplayGuard(ctrl),
		responses: mocks.NewMockResponseCache(ctrl),
	}
	h := NewMessageHandler(MessageHandlerDeps{
		Coordinator: m.coord,
		Replay:      m.replay,
		Responses:   m.responses,
	}, zerolog.Nop())
	return h, m
}

func envelopeBody(t *testing.T, id, msgType string, payload interface{}) []byte {
	t.Helper()
	env := map[string]interface{}{"id": id, "type": msgType, "timestamp": time.Now().UnixMilli()}
	if payload != nil {
		env["payload"] = payload
	}
	body, err := json.Marshal(env)
	require.NoError(t, err)
	return body
}

func callExtension(h *MessageHandler, body []byte) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/messages", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h.HandleExtension(c)
	return w
}

func callDapp(h *MessageHandler, body []byte) (*httptest.ResponseRecorder, *gin.Context) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/dapp/messages", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.CtxOrigin, dappOrigin)
	h.HandleDapp(c)
	return w, c
}

func decode(t *testing.T, w *httptest.ResponseRecorder) (response.Message, map[string]interface{}) {
	t.Helper()
	var msg response.Message
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &msg))
	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	return msg, raw
}

func allowID(m handlerMocks) {
	m.replay.EXPECT().CheckAndSet(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
}

// --- Envelope handling ---

func TestHandleExtension_GetState(t *testing.T) {
	h, m := newTestHandler(t)
	allowID(m)
	m.coord.EXPECT().GetState(gomock.Any()).Return(&domain.WalletState{
		Initialized: true, Locked: true, ConnectionStatus: domain.ConnectionConnected, Network: "testnet",
	}, nil)

	w := callExtension(h, envelopeBody(t, "req-1", "GET_STATE", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	msg, raw := decode(t, w)
	assert.Equal(t, response.TypeResponse, msg.Type)
	assert.Equal(t, "req-1", msg.RequestID)
	assert.True(t, msg.Success)
	data := raw["data"].(map[string]interface{})
	assert.Equal(t, true, data["locked"])
	assert.Equal(t, "testnet", data["network"])
}

func TestHandleExtension_MalformedEnvelope(t *testing.T) {
	h, _ := newTestHandler(t)

	w := callExtension(h, []byte(`{"type":`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	msg, _ := decode(t, w)
	assert.Equal(t, response.TypeError, msg.Type)
	assert.Equal(t, "VAL_001", msg.Code)
}

func TestHandleExtension_UnknownType(t *testing.T) {
	h, _ := newTestHandler(t)

	w := callExtension(h, envelopeBody(t, "req-2", "MINE_BITCOIN", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	msg, _ := decode(t, w)
	assert.Equal(t, "req-2", msg.RequestID)
	assert.Equal(t, "VAL_006", msg.Code)
}

func TestHandleExtension_ReplayedID(t *testing.T) {
	h, m := newTestHandler(t)
	m.replay.EXPECT().CheckAndSet(gomock.Any(), middleware.SurfaceExtension, "req-3", defaultReplayWindow).Return(false, nil)

	w := callExtension(h, envelopeBody(t, "req-3", "GET_THEME", nil))

	assert.Equal(t, http.StatusConflict, w.Code)
	msg, _ := decode(t, w)
	assert.Equal(t, "DAPP_004", msg.Code)
}

func TestHandleExtension_ReplayStoreDownAllows(t *testing.T) {
	h, m := newTestHandler(t)
	m.replay.EXPECT().CheckAndSet(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, errors.New("redis down"))
	m.coord.EXPECT().GetTheme(gomock.Any()).Return(domain.ThemeLight, nil)

	w := callExtension(h, envelopeBody(t, "req-4", "GET_THEME", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	_, raw := decode(t, w)
	assert.Equal(t, "light", raw["data"].(map[string]interface{})["theme"])
}

func TestHandleExtension_ServiceErrorKeepsStatus(t *testing.T) {
	h, m := newTestHandler(t)
	allowID(m)
	m.coord.EXPECT().Manager().Return(nil, apperror.ErrNotInitialized())

	w := callExtension(h, envelopeBody(t, "req-5", "GET_WALLETS", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	msg, _ := decode(t, w)
	assert.False(t, msg.Success)
	assert.Equal(t, "Wallet manager not initialized", msg.Error)
}

// --- Wallet messages ---

func TestHandleExtension_UnlockWallet(t *testing.T) {
	h, m := newTestHandler(t)
	allowID(m)
	walletID := uuid.New()
	m.coord.EXPECT().Manager().Return(m.manager, nil)
	m.manager.EXPECT().UnlockWallet(gomock.Any(), walletID, "hunter2hunter2").Return(false, nil)

	w := callExtension(h, envelopeBody(t, "req-6", "UNLOCK_WALLET", map[string]string{
		"walletId": walletID.String(), "password": "hunter2hunter2",
	}))

	assert.Equal(t, http.StatusOK, w.Code)
	_, raw := decode(t, w)
	assert.Equal(t, false, raw["data"].(map[string]interface{})["success"])
}

func TestHandleExtension_CreateAccountDefaultsToNextIndex(t *testing.T) {
	h, m := newTestHandler(t)
	allowID(m)
	m.coord.EXPECT().Manager().Return(m.manager, nil)
	m.manager.EXPECT().CreateAccount(gomock.Any(), uuid.Nil, -1, "Savings").Return(&domain.Account{
		Index: 1, Name: "Savings", Address: testAddress(1),
	}, nil)

	w := callExtension(h, envelopeBody(t, "req-7", "CREATE_ACCOUNT", map[string]string{"name": "Savings"}))

	assert.Equal(t, http.StatusOK, w.Code)
	_, raw := decode(t, w)
	account := raw["data"].(map[string]interface{})["account"].(map[string]interface{})
	assert.Equal(t, "Savings", account["name"])
}

func TestHandleExtension_EstimateFee(t *testing.T) {
	h, m := newTestHandler(t)
	allowID(m)
	to := testAddress(2)
	m.coord.EXPECT().Manager().Return(m.manager, nil)
	m.manager.EXPECT().EstimateFee(gomock.Any(), to, big.NewInt(1_000_000)).Return(big.NewInt(125_000_000), nil)

	w := callExtension(h, envelopeBody(t, "req-8", "ESTIMATE_FEE", map[string]string{"to": to, "amount": "1000000"}))

	assert.Equal(t, http.StatusOK, w.Code)
	_, raw := decode(t, w)
	assert.Equal(t, "125000000", raw["data"].(map[string]interface{})["fee"])
}

func TestHandleExtension_InvalidAddress(t *testing.T) {
	h, _ := newTestHandler(t)

	w := callExtension(h, envelopeBody(t, "req-9", "SEND_TRANSACTION", map[string]string{"to": "not-an-address", "amount": "1"}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	msg, _ := decode(t, w)
	assert.Equal(t, "VAL_003", msg.Code)
}

func TestHandleExtension_GetBalanceDefaultsToCurrentAccount(t *testing.T) {
	h, m := newTestHandler(t)
	allowID(m)
	addr := testAddress(3)
	m.coord.EXPECT().Manager().Return(m.manager, nil)
	m.manager.EXPECT().CurrentAccount().Return(&domain.AccountSummary{Address: addr, Name: "Main"})
	m.manager.EXPECT().GetBalance(gomock.Any(), addr).Return(domain.Balance{Free: big.NewInt(10), Reserved: big.NewInt(5)}, nil)

	w := callExtension(h, envelopeBody(t, "req-10", "GET_BALANCE", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	_, raw := decode(t, w)
	data := raw["data"].(map[string]interface{})
	assert.Equal(t, addr, data["address"])
	assert.Equal(t, "15", data["balance"].(map[string]interface{})["total"])
}

func TestHandleExtension_ChangeNetwork(t *testing.T) {
	h, m := newTestHandler(t)
	allowID(m)
	m.coord.EXPECT().SwitchNetwork(gomock.Any(), "custom", "wss://node.example:9944").Return(&domain.Network{
		ID: "custom", Name: "Custom", Endpoint: "wss://node.example:9944",
	}, nil)

	w := callExtension(h, envelopeBody(t, "req-11", "CHANGE_NETWORK", map[string]string{
		"networkId": "custom", "endpoint": "wss://node.example:9944",
	}))

	assert.Equal(t, http.StatusOK, w.Code)
	_, raw := decode(t, w)
	data := raw["data"].(map[string]interface{})
	assert.Equal(t, true, data["success"])
	assert.Equal(t, "custom", data["network"])
}

func TestHandleExtension_RequestConnectionNeedsOrigin(t *testing.T) {
	h, m := newTestHandler(t)
	allowID(m)

	w := callExtension(h, envelopeBody(t, "req-12", "REQUEST_CONNECTION", map[string]string{"appName": "Test"}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// --- SEND_TRANSACTION idempotency ---

func TestHandleExtension_SendTransactionIsIdempotent(t *testing.T) {
	h, m := newTestHandler(t)
	to := testAddress(4)
	scope := sendScope + ":" + middleware.SurfaceExtension
	key := scope + ":req-13"

	var cached []byte
	gomock.InOrder(
		m.replay.EXPECT().CheckAndSet(gomock.Any(), scope, "req-13", defaultResponseCacheTTL).Return(true, nil),
		m.replay.EXPECT().CheckAndSet(gomock.Any(), scope, "req-13", defaultResponseCacheTTL).Return(false, nil),
	)
	m.coord.EXPECT().Manager().Return(m.manager, nil)
	m.manager.EXPECT().SendTransaction(gomock.Any(), to, big.NewInt(42)).Return("0xabc", nil).Times(1)
	m.responses.EXPECT().Set(gomock.Any(), key, gomock.Any(), defaultResponseCacheTTL).DoAndReturn(
		func(_ context.Context, _ string, raw []byte, _ time.Duration) error {
			cached = raw
			return nil
		},
	)
	m.responses.EXPECT().Get(gomock.Any(), key).DoAndReturn(
		func(context.Context, string) ([]byte, error) { return cached, nil },
	)

	body := envelopeBody(t, "req-13", "SEND_TRANSACTION", map[string]string{"to": to, "amount": "42"})
	first := callExtension(h, body)
	second := callExtension(h, body)

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.JSONEq(t, first.Body.String(), second.Body.String())
	_, raw := decode(t, second)
	assert.Equal(t, "0xabc", raw["data"].(map[string]interface{})["hash"])
}

func TestHandleExtension_SendTransactionInFlightRetry(t *testing.T) {
	h, m := newTestHandler(t)
	m.replay.EXPECT().CheckAndSet(gomock.Any(), gomock.Any(), "req-14", gomock.Any()).Return(false, nil)
	m.responses.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, nil)

	w := callExtension(h, envelopeBody(t, "req-14", "SEND_TRANSACTION", map[string]string{"to": testAddress(5), "amount": "1"}))

	assert.Equal(t, http.StatusConflict, w.Code)
	msg, _ := decode(t, w)
	assert.Equal(t, "DAPP_004", msg.Code)
}

func TestHandleExtension_SendTransactionClaimFailureDoesNotSubmit(t *testing.T) {
	h, m := newTestHandler(t)
	m.replay.EXPECT().CheckAndSet(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, errors.New("redis down"))
	// No manager expectations: a submission would fail the test.

	w := callExtension(h, envelopeBody(t, "req-15", "SEND_TRANSACTION", map[string]string{"to": testAddress(6), "amount": "1"}))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestCachedEnvelope_FailureAnswersConflict(t *testing.T) {
	raw, err := json.Marshal(response.Failure("req-16", apperror.ErrWalletLocked()))
	require.NoError(t, err)

	env := cachedEnvelope(raw)
	assert.Equal(t, http.StatusConflict, env.status)
	assert.Equal(t, "cached", outcome(env))
}

// --- Dapp surface ---

func TestHandleDapp_ForbiddenTypeIsDenied(t *testing.T) {
	h, _ := newTestHandler(t)

	w, c := callDapp(h, envelopeBody(t, "req-20", "EXPORT_SEED", map[string]string{"password": "whatever1"}))

	assert.Equal(t, http.StatusForbidden, w.Code)
	msg, _ := decode(t, w)
	assert.Equal(t, "DAPP_001", msg.Code)
	denial, ok := c.Get(middleware.CtxDenied)
	require.True(t, ok)
	assert.Equal(t, middleware.Denial{MessageType: "EXPORT_SEED", Code: "DAPP_001"}, denial)
}

func TestHandleDapp_RequiresConnectedSite(t *testing.T) {
	h, m := newTestHandler(t)
	m.coord.EXPECT().IsSiteConnected(gomock.Any(), dappOrigin).Return(false, nil)

	w, _ := callDapp(h, envelopeBody(t, "req-21", "GET_ACCOUNTS", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
	msg, _ := decode(t, w)
	assert.Equal(t, "DAPP_002", msg.Code)
}

func TestHandleDapp_GetAccountsWhileLocked(t *testing.T) {
	h, m := newTestHandler(t)
	m.coord.EXPECT().IsSiteConnected(gomock.Any(), dappOrigin).Return(true, nil)
	m.replay.EXPECT().CheckAndSet(gomock.Any(), "dapp:"+dappOrigin, "req-22", gomock.Any()).Return(true, nil)
	m.coord.EXPECT().Manager().Return(m.manager, nil)
	m.manager.EXPECT().IsLocked().Return(true)

	w, _ := callDapp(h, envelopeBody(t, "req-22", "GET_ACCOUNTS", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	_, raw := decode(t, w)
	assert.Equal(t, []interface{}{}, raw["data"])
}

func TestHandleDapp_GetAccountsReturnsSummaries(t *testing.T) {
	h, m := newTestHandler(t)
	m.coord.EXPECT().IsSiteConnected(gomock.Any(), dappOrigin).Return(true, nil)
	allowID(m)
	m.coord.EXPECT().Manager().Return(m.manager, nil)
	m.manager.EXPECT().IsLocked().Return(false)
	m.manager.EXPECT().GetAccounts(gomock.Any()).Return([]domain.Account{
		{Index: 0, Name: "Main", Address: testAddress(7), PublicKey: "0x07", DerivationPath: "//0"},
	}, nil)

	w, _ := callDapp(h, envelopeBody(t, "req-23", "GET_ACCOUNTS", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "derivationPath")
	_, raw := decode(t, w)
	accounts := raw["data"].([]interface{})
	require.Len(t, accounts, 1)
	assert.Equal(t, "Main", accounts[0].(map[string]interface{})["name"])
}

func TestHandleDapp_RequestConnectionUsesTransportOrigin(t *testing.T) {
	h, m := newTestHandler(t)
	allowID(m)
	m.coord.EXPECT().RequestConnection(gomock.Any(), dappOrigin, "Test App", "").Return(&domain.ConnectionResult{
		Approved: true, Accounts: []domain.AccountSummary{{Address: testAddress(8), Name: "Main"}},
	}, nil)

	w, _ := callDapp(h, envelopeBody(t, "req-24", "REQUEST_CONNECTION", map[string]string{
		"origin": "https://spoofed.example", "appName": "Test App",
	}))

	assert.Equal(t, http.StatusOK, w.Code)
	_, raw := decode(t, w)
	assert.Equal(t, true, raw["data"].(map[string]interface{})["approved"])
}

func TestHandleDapp_RequestConnectionRejected(t *testing.T) {
	h, m := newTestHandler(t)
	allowID(m)
	m.coord.EXPECT().RequestConnection(gomock.Any(), dappOrigin, "", "").Return(nil, apperror.ErrUserRejected(""))

	w, c := callDapp(h, envelopeBody(t, "req-25", "REQUEST_CONNECTION", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
	msg, _ := decode(t, w)
	assert.Equal(t, "DAPP_003", msg.Code)
	_, denied := c.Get(middleware.CtxDenied)
	assert.False(t, denied)
}

func TestHandleDapp_SignMessage(t *testing.T) {
	h, m := newTestHandler(t)
	m.coord.EXPECT().IsSiteConnected(gomock.Any(), dappOrigin).Return(true, nil)
	allowID(m)
	m.coord.EXPECT().Manager().Return(m.manager, nil)
	m.manager.EXPECT().SignMessage(gomock.Any(), "hello").Return(&ports.SignedMessage{Signature: "0xsig", PublicKey: "0xpub"}, nil)

	w, _ := callDapp(h, envelopeBody(t, "req-26", "SIGN_MESSAGE", map[string]string{"message": "hello"}))

	assert.Equal(t, http.StatusOK, w.Code)
	_, raw := decode(t, w)
	assert.Equal(t, "0xsig", raw["data"].(map[string]interface{})["signature"])
}

func TestDappPolicyAllowlist(t *testing.T) {
	assert.Len(t, dappAllowed, 6)
	assert.False(t, dappAllowed["REQUEST_CONNECTION"])
	for _, forbidden := range []string{"SEND_TRANSACTION", "EXPORT_SEED", "EXPORT_ACCOUNT", "CHANGE_NETWORK", "APPROVE_CONNECTION"} {
		_, ok := dappAllowed[dto.MessageType(forbidden)]
		assert.False(t, ok, forbidden)
	}
}

// --- Events ---

type fakeStream struct {
	subs []events.Subscriber
}

func (f *fakeStream) Serve(w http.ResponseWriter, _ *http.Request, sub events.Subscriber) error {
	f.subs = append(f.subs, sub)
	w.WriteHeader(http.StatusSwitchingProtocols)
	return nil
}

func TestEventsHandler_DappRequiresConnection(t *testing.T) {
	ctrl := gomock.NewController(t)
	coord := mocks.NewMockSessionCoordinator(ctrl)
	coord.EXPECT().IsSiteConnected(gomock.Any(), dappOrigin).Return(false, nil)
	stream := &fakeStream{}
	h := NewEventsHandler(stream, coord, zerolog.Nop())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/dapp/events", nil)
	c.Set(middleware.CtxOrigin, dappOrigin)
	h.Dapp(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, stream.subs)
}

func TestEventsHandler_Subscribers(t *testing.T) {
	ctrl := gomock.NewController(t)
	coord := mocks.NewMockSessionCoordinator(ctrl)
	coord.EXPECT().IsSiteConnected(gomock.Any(), dappOrigin).Return(true, nil)
	stream := &fakeStream{}
	h := NewEventsHandler(stream, coord, zerolog.Nop())

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/dapp/events", nil)
	c.Set(middleware.CtxOrigin, dappOrigin)
	h.Dapp(c)

	c, _ = gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/events", nil)
	h.Extension(c)

	require.Len(t, stream.subs, 2)
	assert.Equal(t, events.Subscriber{Origin: dappOrigin}, stream.subs[0])
	assert.Equal(t, events.Subscriber{Extension: true}, stream.subs[1])
}

// --- Health ---

type stubChecker struct {
	name string
	err  error
}

func (s stubChecker) Ping(context.Context) error { return s.err }
func (s stubChecker) Name() string               { return s.name }

func TestHealthCheck(t *testing.T) {
	ctrl := gomock.NewController(t)
	coord := mocks.NewMockSessionCoordinator(ctrl)
	coord.EXPECT().IsInitialized().Return(false)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	HealthCheck(coord, stubChecker{name: "redis"})(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
	assert.Equal(t, false, resp["session"].(map[string]interface{})["initialized"])
}

func TestHealthCheck_Degraded(t *testing.T) {
	ctrl := gomock.NewController(t)
	coord := mocks.NewMockSessionCoordinator(ctrl)
	manager := mocks.NewMockWalletManager(ctrl)
	coord.EXPECT().IsInitialized().Return(true)
	coord.EXPECT().Manager().Return(manager, nil)
	manager.EXPECT().ConnectionStatus().Return(domain.ConnectionError, "dial failed")
	manager.EXPECT().IsLocked().Return(true)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	HealthCheck(coord, stubChecker{name: "postgres", err: errors.New("connection refused")})(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "degraded", resp["status"])
	session := resp["session"].(map[string]interface{})
	assert.Equal(t, "error", session["chain"])
	deps := resp["dependencies"].(map[string]interface{})
	assert.Equal(t, "unhealthy", deps["postgres"].(map[string]interface{})["status"])
}

// --- Router ---

func TestSetupRouter_DappRejectsMissingOrigin(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := SetupRouter(RouterDeps{
		Coordinator: mocks.NewMockSessionCoordinator(ctrl),
		Mode:        gin.TestMode,
		Logger:      zerolog.Nop(),
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/dapp/messages", bytes.NewReader(envelopeBody(t, "r", "GET_NETWORK", nil)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSetupRouter_ExtensionRequiresSignature(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := SetupRouter(RouterDeps{
		Coordinator:    mocks.NewMockSessionCoordinator(ctrl),
		ExtensionToken: "token",
		Mode:           gin.TestMode,
		Logger:         zerolog.Nop(),
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/messages", bytes.NewReader(envelopeBody(t, "r", "GET_STATE", nil)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

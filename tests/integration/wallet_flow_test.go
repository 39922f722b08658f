package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"glin-wallet/internal/core/domain"
	"glin-wallet/internal/messaging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	resp, err := http.Get(app.server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
}

func TestWalletLifecycle(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	// Fresh install: initialized but locked, no current account.
	var state domain.WalletState
	require.NoError(t, app.ext.Send(ctx, "GET_STATE", nil, &state))
	assert.True(t, state.Initialized)
	assert.True(t, state.Locked)
	assert.Nil(t, state.CurrentAccount)
	assert.Equal(t, "testnet", state.Network)

	created := app.createWallet(t, "Main")
	assert.NotEmpty(t, created.Mnemonic)

	require.NoError(t, app.ext.Send(ctx, "GET_STATE", nil, &state))
	assert.False(t, state.Locked)
	require.NotNil(t, state.CurrentAccount)
	assert.Equal(t, created.Address, state.CurrentAccount.Address)

	// Lock drops the session.
	require.NoError(t, app.ext.Send(ctx, "LOCK_WALLET", nil, nil))
	require.NoError(t, app.ext.Send(ctx, "GET_STATE", nil, &state))
	assert.True(t, state.Locked)

	_, err := app.ext.Call(ctx, "GET_BALANCE", nil)
	var respErr *messaging.ResponseError
	require.ErrorAs(t, err, &respErr)
	assert.Equal(t, "PRE_002", respErr.Code)

	// A wrong password answers success=false without an error.
	var unlocked struct {
		Success bool `json:"success"`
	}
	require.NoError(t, app.ext.Send(ctx, "UNLOCK_WALLET", map[string]string{
		"walletId": created.WalletID.String(),
		"password": "not the password",
	}, &unlocked))
	assert.False(t, unlocked.Success)

	require.NoError(t, app.ext.Send(ctx, "UNLOCK_WALLET", map[string]string{
		"walletId": created.WalletID.String(),
		"password": testPassword,
	}, &unlocked))
	assert.True(t, unlocked.Success)

	// The seed survives the round trip through the encrypted store.
	var seed struct {
		SeedPhrase string `json:"seedPhrase"`
	}
	require.NoError(t, app.ext.Send(ctx, "EXPORT_SEED", map[string]string{"password": testPassword}, &seed))
	assert.Equal(t, created.Mnemonic, seed.SeedPhrase)
}

func TestAccountsAndBalance(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()
	created := app.createWallet(t, "Main")

	var added struct {
		Account domain.Account `json:"account"`
	}
	require.NoError(t, app.ext.Send(ctx, "CREATE_ACCOUNT", map[string]interface{}{
		"walletId": created.WalletID.String(),
		"name":     "Savings",
	}, &added))
	assert.Equal(t, 1, added.Account.Index)
	assert.NotEqual(t, created.Address, added.Account.Address)

	var accounts []domain.Account
	require.NoError(t, app.ext.Send(ctx, "GET_ACCOUNTS", nil, &accounts))
	assert.Len(t, accounts, 2)

	require.NoError(t, app.ext.Send(ctx, "SWITCH_ACCOUNT", map[string]string{"address": added.Account.Address}, nil))

	var balance struct {
		Address string            `json:"address"`
		Balance map[string]string `json:"balance"`
	}
	require.NoError(t, app.ext.Send(ctx, "GET_BALANCE", nil, &balance))
	assert.Equal(t, added.Account.Address, balance.Address)
	assert.Equal(t, "5000000000000000000", balance.Balance["free"])
	assert.Equal(t, "5000000000000000000", balance.Balance["transferable"])

	var fee struct {
		Fee string `json:"fee"`
	}
	require.NoError(t, app.ext.Send(ctx, "ESTIMATE_FEE", map[string]string{
		"to":     testAddress(1),
		"amount": "1000000000000000000",
	}, &fee))
	assert.Equal(t, "125000000", fee.Fee)
}

func TestSendTransaction_IdempotentPerRequestID(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()
	app.createWallet(t, "Main")

	transport := app.extensionTransport()
	payload, err := json.Marshal(map[string]string{"to": testAddress(2), "amount": "1000"})
	require.NoError(t, err)
	req := messaging.Request{
		ID:        "msg_send_1",
		Type:      "SEND_TRANSACTION",
		Payload:   payload,
		Timestamp: time.Now().UnixMilli(),
	}

	first, err := transport.RoundTrip(ctx, req)
	require.NoError(t, err)
	require.True(t, first.Success, first.Error)

	retry, err := transport.RoundTrip(ctx, req)
	require.NoError(t, err)
	assert.True(t, retry.Success)
	assert.JSONEq(t, string(first.Data), string(retry.Data))
	assert.Equal(t, int64(1), app.transfers.Load())

	// A new id is a new transfer.
	var sent struct {
		Hash string `json:"hash"`
	}
	require.NoError(t, app.ext.Send(ctx, "SEND_TRANSACTION", map[string]string{
		"to":     testAddress(2),
		"amount": "1000",
	}, &sent))
	assert.NotEmpty(t, sent.Hash)
	assert.Equal(t, int64(2), app.transfers.Load())

	var history struct {
		Transactions []domain.Transaction `json:"transactions"`
	}
	require.NoError(t, app.ext.Send(ctx, "GET_TRANSACTION_HISTORY", map[string]interface{}{}, &history))
	assert.Len(t, history.Transactions, 2)
}

func TestReplayedRequestID(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()
	transport := app.extensionTransport()

	req := messaging.Request{ID: "msg_replay_1", Type: "GET_THEME", Timestamp: time.Now().UnixMilli()}
	first, err := transport.RoundTrip(ctx, req)
	require.NoError(t, err)
	assert.True(t, first.Success)

	second, err := transport.RoundTrip(ctx, req)
	require.NoError(t, err)
	assert.False(t, second.Success)
	assert.Equal(t, "DAPP_004", second.Code)
	assert.Equal(t, "msg_replay_1", second.RequestID)
}

func TestNetworkAndTheme(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	var network struct {
		Success  bool   `json:"success"`
		Network  string `json:"network"`
		Endpoint string `json:"endpoint"`
	}
	require.NoError(t, app.ext.Send(ctx, "CHANGE_NETWORK", map[string]string{"networkId": "mainnet"}, &network))
	assert.True(t, network.Success)
	assert.Equal(t, "mainnet", network.Network)
	assert.Equal(t, "ws://mainnet.invalid", network.Endpoint)

	require.NoError(t, app.ext.Send(ctx, "GET_NETWORK", nil, &network))
	assert.Equal(t, "mainnet", network.Network)

	var theme struct {
		Theme string `json:"theme"`
	}
	require.NoError(t, app.ext.Send(ctx, "SET_THEME", map[string]string{"theme": "light"}, nil))
	require.NoError(t, app.ext.Send(ctx, "GET_THEME", nil, &theme))
	assert.Equal(t, "light", theme.Theme)
}

func TestUnknownMessageType(t *testing.T) {
	app := newTestApp(t)

	_, err := app.ext.Call(context.Background(), "FORMAT_DISK", nil)
	var respErr *messaging.ResponseError
	require.ErrorAs(t, err, &respErr)
	assert.Equal(t, "VAL_006", respErr.Code)
}

package dto

import (
	"encoding/json"
	"errors"
	"testing"

	"glin-wallet/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func request(t MessageType, payload string) Request {
	req := Request{ID: "msg_1_1", Type: t}
	if payload != "" {
		req.Payload = json.RawMessage(payload)
	}
	return req
}

func TestEveryTypeDecodesToItself(t *testing.T) {
	for _, mt := range AllTypes() {
		p := payloadFactories[mt]()
		assert.Equal(t, mt, p.MessageType(), "factory for %s", mt)
	}
	assert.Len(t, AllTypes(), 34)
}

func TestDecodePayload_UnknownType(t *testing.T) {
	_, err := DecodePayload(request("SIGN_TRANSACTION", ""))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrUnknownMessageType("")))
	assert.Contains(t, err.Error(), "SIGN_TRANSACTION")
}

func TestDecodePayload_EmptyBodies(t *testing.T) {
	for _, mt := range []MessageType{LockWallet, GetState, GetWallets, GetTheme, AuthenticateBackend} {
		p, err := DecodePayload(request(mt, ""))
		require.NoError(t, err, mt)
		assert.Equal(t, mt, p.MessageType())

		_, err = DecodePayload(request(mt, "null"))
		require.NoError(t, err, mt)
	}
}

func TestDecodePayload_Typed(t *testing.T) {
	id := uuid.New()
	p, err := DecodePayload(request(UnlockWallet, `{"walletId":"`+id.String()+`","password":"correct-horse-1"}`))
	require.NoError(t, err)

	unlock, ok := p.(*UnlockWalletPayload)
	require.True(t, ok)
	assert.Equal(t, id, ParseID(unlock.WalletID))
	assert.Equal(t, "correct-horse-1", unlock.Password)
}

func TestDecodePayload_Errors(t *testing.T) {
	addr := testAddress()
	tests := []struct {
		name    string
		req     Request
		code    string
		message string
	}{
		{
			name:    "missing field",
			req:     request(CreateWallet, `{"name":"Main"}`),
			code:    "VAL_001",
			message: "password is required",
		},
		{
			name: "malformed json",
			req:  request(CreateWallet, `{"name":`),
			code: "VAL_001",
		},
		{
			name: "unknown field",
			req:  request(LockWallet, `{"force":true}`),
			code: "VAL_001",
		},
		{
			name: "bad address",
			req:  request(SendTransaction, `{"to":"5bad","amount":"1"}`),
			code: apperror.ErrInvalidAddress().Code,
		},
		{
			name: "bad amount",
			req:  request(SendTransaction, `{"to":"`+addr+`","amount":"1.5"}`),
			code: apperror.ErrInvalidAmount().Code,
		},
		{
			name: "unknown network",
			req:  request(ChangeNetwork, `{"networkId":"devnet"}`),
			code: apperror.ErrUnknownNetwork("").Code,
		},
		{
			name: "short password",
			req:  request(CreateWallet, `{"name":"Main","password":"short"}`),
			code: "VAL_001",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodePayload(tt.req)
			require.Error(t, err)
			appErr, ok := apperror.As(err)
			require.True(t, ok)
			assert.Equal(t, tt.code, appErr.Code)
			if tt.message != "" {
				assert.Equal(t, tt.message, appErr.Message)
			}
		})
	}
}

func TestParseAmount(t *testing.T) {
	v, err := ParseAmount("1000000000000000000")
	require.NoError(t, err)
	assert.Equal(t, "1000000000000000000", v.String())

	_, err = ParseAmount("0")
	assert.Error(t, err)
	_, err = ParseAmount("abc")
	assert.Error(t, err)
}

func TestParseID(t *testing.T) {
	assert.Equal(t, uuid.Nil, ParseID(""))
	assert.Equal(t, uuid.Nil, ParseID("nope"))
	id := uuid.New()
	assert.Equal(t, id, ParseID(id.String()))
}

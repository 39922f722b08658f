package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"glin-wallet/internal/messaging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConcurrentSends_DistinctIDs fires many transfers at once; each
// request id must produce exactly one submission.
func TestConcurrentSends_DistinctIDs(t *testing.T) {
	app := newTestApp(t)
	app.createWallet(t, "Main")

	const concurrency = 20
	hashes := make([]string, concurrency)
	errs := make([]error, concurrency)

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var sent struct {
				Hash string `json:"hash"`
			}
			errs[i] = app.ext.Send(context.Background(), "SEND_TRANSACTION", map[string]string{
				"to":     testAddress(byte(i)),
				"amount": fmt.Sprintf("%d", 1000+i),
			}, &sent)
			hashes[i] = sent.Hash
		}(i)
	}
	wg.Wait()

	unique := make(map[string]struct{}, concurrency)
	for i := 0; i < concurrency; i++ {
		require.NoError(t, errs[i], "send %d", i)
		unique[hashes[i]] = struct{}{}
	}
	assert.Len(t, unique, concurrency)
	assert.Equal(t, int64(concurrency), app.transfers.Load())
}

// TestConcurrentSends_SameID retries one request id from many goroutines.
// Only one transfer may be submitted; every success carries its hash.
func TestConcurrentSends_SameID(t *testing.T) {
	app := newTestApp(t)
	app.createWallet(t, "Main")

	payload, err := json.Marshal(map[string]string{"to": testAddress(9), "amount": "42"})
	require.NoError(t, err)
	req := messaging.Request{
		ID:        "msg_same_send",
		Type:      "SEND_TRANSACTION",
		Payload:   payload,
		Timestamp: time.Now().UnixMilli(),
	}

	const concurrency = 20
	responses := make([]*messaging.Response, concurrency)
	errs := make([]error, concurrency)

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			responses[i], errs[i] = app.extensionTransport().RoundTrip(context.Background(), req)
		}(i)
	}
	wg.Wait()

	var firstData string
	successes := 0
	for i := 0; i < concurrency; i++ {
		require.NoError(t, errs[i])
		resp := responses[i]
		if !resp.Success {
			// Retries that arrive while the first is in flight are refused.
			assert.Equal(t, "DAPP_004", resp.Code)
			continue
		}
		successes++
		if firstData == "" {
			firstData = string(resp.Data)
			continue
		}
		assert.JSONEq(t, firstData, string(resp.Data))
	}
	assert.GreaterOrEqual(t, successes, 1)
	assert.Equal(t, int64(1), app.transfers.Load())
}

// TestConcurrentLockAndSign races signing against lock/unlock. Every answer
// must be either a signature or the locked error.
func TestConcurrentLockAndSign(t *testing.T) {
	app := newTestApp(t)
	created := app.createWallet(t, "Main")
	ctx := context.Background()

	const rounds = 10
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			assert.NoError(t, app.ext.Send(ctx, "LOCK_WALLET", nil, nil))
			assert.NoError(t, app.ext.Send(ctx, "UNLOCK_WALLET", map[string]string{
				"walletId": created.WalletID.String(),
				"password": testPassword,
			}, nil))
		}
	}()

	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				var signed struct {
					Signature string `json:"signature"`
				}
				err := app.ext.Send(ctx, "SIGN_MESSAGE", map[string]string{"message": "ping"}, &signed)
				if err != nil {
					var respErr *messaging.ResponseError
					if assert.ErrorAs(t, err, &respErr) {
						assert.Equal(t, "PRE_002", respErr.Code)
					}
					continue
				}
				assert.NotEmpty(t, signed.Signature)
			}
		}()
	}
	wg.Wait()

	// The last step of the toggler was an unlock.
	var signed struct {
		Signature string `json:"signature"`
	}
	require.NoError(t, app.ext.Send(ctx, "SIGN_MESSAGE", map[string]string{"message": "final"}, &signed))
	assert.NotEmpty(t, signed.Signature)
}

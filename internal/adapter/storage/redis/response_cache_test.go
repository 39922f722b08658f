package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseCache_SetGet(t *testing.T) {
	_, client := newTestClient(t)
	cache := NewResponseCache(client, "glw")
	ctx := context.Background()

	body := []byte(`{"id":"msg_1_1","type":"SEND_TRANSACTION","success":true,"data":{"hash":"0xabc"}}`)
	require.NoError(t, cache.Set(ctx, "msg_1_1", body, time.Hour))

	got, err := cache.Get(ctx, "msg_1_1")
	require.NoError(t, err)
	assert.Equal(t, body, got)
}

func TestResponseCache_Miss(t *testing.T) {
	_, client := newTestClient(t)
	got, err := NewResponseCache(client, "glw").Get(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestResponseCache_Expires(t *testing.T) {
	mr, client := newTestClient(t)
	cache := NewResponseCache(client, "glw")
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "msg_2_1", []byte("{}"), time.Minute))
	mr.FastForward(2 * time.Minute)

	got, err := cache.Get(ctx, "msg_2_1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

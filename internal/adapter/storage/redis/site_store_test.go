package redis

import (
	"context"
	"testing"
	"time"

	"glin-wallet/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSiteStore_SaveGetDelete(t *testing.T) {
	mr, client := newTestClient(t)
	store := NewSiteStore(client, "glw")
	ctx := context.Background()

	site := domain.ConnectedSite{
		Origin:      "https://app.glin.example",
		AppName:     "GLIN Swap",
		ConnectedAt: time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, store.Save(ctx, site))
	assert.True(t, mr.Exists("glw:sites:connected"))

	got, err := store.Get(ctx, site.Origin)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "GLIN Swap", got.AppName)
	assert.True(t, site.ConnectedAt.Equal(got.ConnectedAt))

	removed, err := store.Delete(ctx, site.Origin)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = store.Delete(ctx, site.Origin)
	require.NoError(t, err)
	assert.False(t, removed, "second delete finds nothing")

	got, err = store.Get(ctx, site.Origin)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSiteStore_List_OldestFirst(t *testing.T) {
	_, client := newTestClient(t)
	store := NewSiteStore(client, "glw")
	ctx := context.Background()

	now := time.Now().UTC()
	require.NoError(t, store.Save(ctx, domain.ConnectedSite{Origin: "https://b.example", ConnectedAt: now}))
	require.NoError(t, store.Save(ctx, domain.ConnectedSite{Origin: "https://a.example", ConnectedAt: now.Add(-time.Hour)}))

	sites, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, sites, 2)
	assert.Equal(t, "https://a.example", sites[0].Origin)
	assert.Equal(t, "https://b.example", sites[1].Origin)
}

func TestSiteStore_List_Empty(t *testing.T) {
	_, client := newTestClient(t)
	sites, err := NewSiteStore(client, "glw").List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, sites)
	assert.Empty(t, sites)
}

func TestSiteStore_CorruptEntry(t *testing.T) {
	mr, client := newTestClient(t)
	store := NewSiteStore(client, "glw")
	mr.HSet("glw:sites:connected", "https://bad.example", "{not json")

	_, err := store.Get(context.Background(), "https://bad.example")
	assert.Error(t, err)
}

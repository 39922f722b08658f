package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"glin-wallet/internal/core/domain"
	"glin-wallet/internal/core/ports"

	goredis "github.com/redis/go-redis/v9"
)

var _ ports.ConnectedSiteStore = (*SiteStore)(nil)

// SiteStore keeps connected dapp origins in one hash: field = origin,
// value = JSON ConnectedSite.
type SiteStore struct {
	client goredis.Cmdable
	key    string
}

// NewSiteStore creates a Redis-backed connected-site store.
func NewSiteStore(client goredis.Cmdable, prefix string) *SiteStore {
	return &SiteStore{client: client, key: keyspace(prefix, "sites") + "connected"}
}

// Save records or refreshes an origin's authorization.
func (s *SiteStore) Save(ctx context.Context, site domain.ConnectedSite) error {
	raw, err := json.Marshal(site)
	if err != nil {
		return fmt.Errorf("encode connected site: %w", err)
	}
	if err := s.client.HSet(ctx, s.key, site.Origin, raw).Err(); err != nil {
		return fmt.Errorf("redis site save: %w", err)
	}
	return nil
}

// Get returns nil, nil for an origin that was never connected.
func (s *SiteStore) Get(ctx context.Context, origin string) (*domain.ConnectedSite, error) {
	raw, err := s.client.HGet(ctx, s.key, origin).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis site get: %w", err)
	}
	var site domain.ConnectedSite
	if err := json.Unmarshal(raw, &site); err != nil {
		return nil, fmt.Errorf("decode connected site: %w", err)
	}
	return &site, nil
}

// Delete reports whether the origin was connected.
func (s *SiteStore) Delete(ctx context.Context, origin string) (bool, error) {
	n, err := s.client.HDel(ctx, s.key, origin).Result()
	if err != nil {
		return false, fmt.Errorf("redis site delete: %w", err)
	}
	return n > 0, nil
}

// List returns every connected site, oldest connection first.
func (s *SiteStore) List(ctx context.Context) ([]domain.ConnectedSite, error) {
	all, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("redis site list: %w", err)
	}
	sites := make([]domain.ConnectedSite, 0, len(all))
	for origin, raw := range all {
		var site domain.ConnectedSite
		if err := json.Unmarshal([]byte(raw), &site); err != nil {
			return nil, fmt.Errorf("decode connected site %s: %w", origin, err)
		}
		sites = append(sites, site)
	}
	sort.Slice(sites, func(i, j int) bool {
		if sites[i].ConnectedAt.Equal(sites[j].ConnectedAt) {
			return sites[i].Origin < sites[j].Origin
		}
		return sites[i].ConnectedAt.Before(sites[j].ConnectedAt)
	})
	return sites, nil
}

package service

import (
	"context"
	"io"
	"sync"
	"testing"

	"glin-wallet/internal/adapter/storage/memory"
	"glin-wallet/internal/core/domain"
	"glin-wallet/internal/core/ports/mocks"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testPassword  = "correct-horse-1"
	wrongPassword = "wrong-horse"
)

func newTestLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

// eventRecorder is an EventPublisher that keeps everything it sees.
type eventRecorder struct {
	mu     sync.Mutex
	events []domain.Event
}

func (r *eventRecorder) Publish(event domain.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *eventRecorder) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Name)
	}
	return out
}

func (r *eventRecorder) last(name string) (domain.Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].Name == name {
			return r.events[i], true
		}
	}
	return domain.Event{}, false
}

type managerFixture struct {
	ctrl   *gomock.Controller
	store  *memory.Store
	chain  *mocks.MockChainClient
	events *eventRecorder
	deps   WalletManagerDeps
	mgr    *WalletManager
}

// newManagerFixture wires a WalletManager over the in-memory store, real
// crypto and a mocked chain client.
func newManagerFixture(t *testing.T) *managerFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	store := memory.NewStore()
	events := &eventRecorder{}

	deps := WalletManagerDeps{
		Wallets:      store.Wallets(),
		Accounts:     store.Accounts(),
		Transactions: store.Transactions(),
		Transactor:   store.Transactor(),
		Encryption:   newTestEncryption(),
		Keyring:      newTestKeyring(),
		Events:       events,
	}
	chain := mocks.NewMockChainClient(ctrl)

	return &managerFixture{
		ctrl:   ctrl,
		store:  store,
		chain:  chain,
		events: events,
		deps:   deps,
		mgr:    NewWalletManager(deps, chain, newTestLogger()),
	}
}

// restart builds a fresh, locked manager over the same store.
func (f *managerFixture) restart() *WalletManager {
	f.mgr = NewWalletManager(f.deps, f.chain, newTestLogger())
	return f.mgr
}

func (f *managerFixture) createWallet(t *testing.T, name string) *domain.CreatedWallet {
	t.Helper()
	created, err := f.mgr.CreateWallet(context.Background(), name, testPassword, "", false)
	require.NoError(t, err)
	return created
}

func (f *managerFixture) activeCount(t *testing.T) int {
	t.Helper()
	wallets, err := f.store.Wallets().List(context.Background())
	require.NoError(t, err)
	n := 0
	for _, w := range wallets {
		if w.IsActive {
			n++
		}
	}
	return n
}

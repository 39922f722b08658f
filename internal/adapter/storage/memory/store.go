// Package memory is a process-local implementation of the relational
// repositories. walletd falls back to it when no database DSN is set, and
// tests use it in place of Postgres.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"glin-wallet/internal/core/domain"
	"glin-wallet/internal/core/ports"
	"glin-wallet/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var errTxDone = errors.New("memory: transaction already closed")

// Store holds every table behind one mutex.
type Store struct {
	mu           sync.RWMutex
	wallets      map[uuid.UUID]domain.Wallet
	accounts     map[uuid.UUID][]domain.Account
	transactions map[uuid.UUID]domain.Transaction
	audit        []domain.AuditLog
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		wallets:      make(map[uuid.UUID]domain.Wallet),
		accounts:     make(map[uuid.UUID][]domain.Account),
		transactions: make(map[uuid.UUID]domain.Transaction),
	}
}

// Wallets returns the wallet repository view.
func (s *Store) Wallets() *WalletRepo { return &WalletRepo{s: s} }

// Accounts returns the account repository view.
func (s *Store) Accounts() *AccountRepo { return &AccountRepo{s: s} }

// Transactions returns the transaction repository view.
func (s *Store) Transactions() *TransactionRepo { return &TransactionRepo{s: s} }

// AuditLogs returns the audit repository view.
func (s *Store) AuditLogs() *AuditRepo { return &AuditRepo{s: s} }

// Transactor returns a DBTransactor. A transaction holds the store's write
// lock from Begin until Commit or Rollback, so readers see either none or
// all of its writes.
func (s *Store) Transactor() *Transactor { return &Transactor{s: s} }

// Ping always succeeds.
func (s *Store) Ping(ctx context.Context) error { return nil }

func (s *Store) Name() string { return "memory" }

// --- Transactions (pgx.Tx) ---

// Transactor implements ports.DBTransactor.
type Transactor struct{ s *Store }

func (t *Transactor) Begin(ctx context.Context) (pgx.Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.s.mu.Lock()
	return &Tx{s: t.s}, nil
}

// Tx journals undo steps for the writes made through it. It satisfies
// pgx.Tx so it can flow through the same repository signatures as a real
// database transaction; the SQL methods are inert. Only writes may be made
// through an open Tx: plain reads from the same goroutine would block on
// the lock it holds.
type Tx struct {
	s    *Store
	mu   sync.Mutex
	undo []func()
	done bool
}

func (t *Tx) record(undo func()) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.undo = append(t.undo, undo)
}

func (t *Tx) open() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.done
}

func (t *Tx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }

func (t *Tx) Commit(ctx context.Context) error {
	t.mu.Lock()
	if t.done {
		t.mu.Unlock()
		return errTxDone
	}
	t.done = true
	t.undo = nil
	t.mu.Unlock()

	t.s.mu.Unlock()
	return nil
}

func (t *Tx) Rollback(ctx context.Context) error {
	t.mu.Lock()
	if t.done {
		t.mu.Unlock()
		return nil
	}
	t.done = true
	undo := t.undo
	t.undo = nil
	t.mu.Unlock()

	// The store lock is still held; undo steps touch the maps directly.
	for i := len(undo) - 1; i >= 0; i-- {
		undo[i]()
	}
	t.s.mu.Unlock()
	return nil
}

func (t *Tx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *Tx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *Tx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *Tx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *Tx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (t *Tx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) { return nil, nil }
func (t *Tx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row     { return nil }
func (t *Tx) Conn() *pgx.Conn                                                   { return nil }

// write takes the store lock for one write. When tx is an open transaction
// of this store the lock is already held and the returned Tx journals the
// write; otherwise the returned Tx is nil and recording is a no-op.
func (s *Store) write(tx pgx.Tx) (*Tx, func()) {
	if mt, ok := tx.(*Tx); ok && mt.s == s && mt.open() {
		return mt, func() {}
	}
	s.mu.Lock()
	return nil, s.mu.Unlock
}

// --- Wallets ---

// WalletRepo implements ports.WalletRepository.
type WalletRepo struct{ s *Store }

func (r *WalletRepo) Create(ctx context.Context, tx pgx.Tx, wallet *domain.Wallet) error {
	journal, unlock := r.s.write(tx)
	defer unlock()
	if _, ok := r.s.wallets[wallet.ID]; ok {
		return apperror.ErrDatabaseError(errors.New("wallet already exists"))
	}
	if wallet.IsActive && r.s.hasActiveOtherThan(wallet.ID) {
		return apperror.ErrDatabaseError(errors.New("another wallet is already active"))
	}
	r.s.wallets[wallet.ID] = *wallet
	id := wallet.ID
	journal.record(func() { delete(r.s.wallets, id) })
	return nil
}

func (r *WalletRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	w, ok := r.s.wallets[id]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (r *WalletRepo) GetActive(ctx context.Context) (*domain.Wallet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, w := range r.s.wallets {
		if w.IsActive {
			out := w
			return &out, nil
		}
	}
	return nil, nil
}

func (r *WalletRepo) List(ctx context.Context) ([]domain.Wallet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]domain.Wallet, 0, len(r.s.wallets))
	for _, w := range r.s.wallets {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *WalletRepo) Count(ctx context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.wallets), nil
}

func (r *WalletRepo) DeactivateAll(ctx context.Context, tx pgx.Tx) error {
	journal, unlock := r.s.write(tx)
	defer unlock()
	var prev []uuid.UUID
	for id, w := range r.s.wallets {
		if w.IsActive {
			w.IsActive = false
			r.s.wallets[id] = w
			prev = append(prev, id)
		}
	}
	journal.record(func() { r.s.setActiveFlags(prev, true) })
	return nil
}

func (r *WalletRepo) SetActive(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	journal, unlock := r.s.write(tx)
	defer unlock()
	w, ok := r.s.wallets[id]
	if !ok {
		return apperror.ErrWalletNotFound()
	}
	if r.s.hasActiveOtherThan(id) {
		return apperror.ErrDatabaseError(errors.New("another wallet is already active"))
	}
	w.IsActive = true
	r.s.wallets[id] = w
	journal.record(func() { r.s.setActiveFlags([]uuid.UUID{id}, false) })
	return nil
}

// hasActiveOtherThan mirrors the partial unique index on is_active. The
// caller holds the write lock.
func (s *Store) hasActiveOtherThan(id uuid.UUID) bool {
	for otherID, other := range s.wallets {
		if other.IsActive && otherID != id {
			return true
		}
	}
	return false
}

// setActiveFlags runs under the write lock.
func (s *Store) setActiveFlags(ids []uuid.UUID, active bool) {
	for _, id := range ids {
		if w, ok := s.wallets[id]; ok {
			w.IsActive = active
			s.wallets[id] = w
		}
	}
}

func (r *WalletRepo) UpdateSelection(ctx context.Context, wallet *domain.Wallet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	w, ok := r.s.wallets[wallet.ID]
	if !ok {
		return apperror.ErrWalletNotFound()
	}
	w.CurrentAccountIndex = wallet.CurrentAccountIndex
	w.Address = wallet.Address
	w.PublicKey = wallet.PublicKey
	w.LastUsed = wallet.LastUsed
	r.s.wallets[wallet.ID] = w
	return nil
}

func (r *WalletRepo) UpdateEncryptedSeed(ctx context.Context, id uuid.UUID, seed domain.EncryptedSeed) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	w, ok := r.s.wallets[id]
	if !ok {
		return apperror.ErrWalletNotFound()
	}
	w.EncryptedSeed = seed
	r.s.wallets[id] = w
	return nil
}

func (r *WalletRepo) Delete(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	journal, unlock := r.s.write(tx)
	defer unlock()
	w, ok := r.s.wallets[id]
	if !ok {
		return nil
	}
	delete(r.s.wallets, id)
	journal.record(func() { r.s.wallets[id] = w })
	return nil
}

// --- Accounts ---

// AccountRepo implements ports.AccountRepository.
type AccountRepo struct{ s *Store }

func (r *AccountRepo) Create(ctx context.Context, tx pgx.Tx, account *domain.Account) error {
	journal, unlock := r.s.write(tx)
	defer unlock()
	for _, a := range r.s.accounts[account.WalletID] {
		if a.Index == account.Index || a.Address == account.Address {
			return apperror.ErrAccountExists()
		}
	}
	r.s.accounts[account.WalletID] = append(r.s.accounts[account.WalletID], *account)
	walletID, address := account.WalletID, account.Address
	journal.record(func() {
		kept := r.s.accounts[walletID][:0]
		for _, a := range r.s.accounts[walletID] {
			if a.Address != address {
				kept = append(kept, a)
			}
		}
		r.s.accounts[walletID] = kept
	})
	return nil
}

func (r *AccountRepo) ListByWallet(ctx context.Context, walletID uuid.UUID) ([]domain.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := append([]domain.Account(nil), r.s.accounts[walletID]...)
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out, nil
}

func (r *AccountRepo) GetByAddress(ctx context.Context, walletID uuid.UUID, address string) (*domain.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, a := range r.s.accounts[walletID] {
		if a.Address == address {
			out := a
			return &out, nil
		}
	}
	return nil, nil
}

func (r *AccountRepo) GetByIndex(ctx context.Context, walletID uuid.UUID, index int) (*domain.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, a := range r.s.accounts[walletID] {
		if a.Index == index {
			out := a
			return &out, nil
		}
	}
	return nil, nil
}

func (r *AccountRepo) Rename(ctx context.Context, walletID uuid.UUID, address, name string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	accounts := r.s.accounts[walletID]
	for i := range accounts {
		if accounts[i].Address == address {
			accounts[i].Name = name
			return nil
		}
	}
	return apperror.ErrAccountNotFound()
}

func (r *AccountRepo) DeleteByWallet(ctx context.Context, tx pgx.Tx, walletID uuid.UUID) error {
	journal, unlock := r.s.write(tx)
	defer unlock()
	prev, ok := r.s.accounts[walletID]
	delete(r.s.accounts, walletID)
	if ok {
		journal.record(func() { r.s.accounts[walletID] = prev })
	}
	return nil
}

// --- Transactions ---

// TransactionRepo implements ports.TransactionRepository.
type TransactionRepo struct{ s *Store }

func (r *TransactionRepo) Create(ctx context.Context, t *domain.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if t.Hash != "" {
		for _, existing := range r.s.transactions {
			if existing.Hash == t.Hash {
				return apperror.ErrDatabaseError(errors.New("duplicate transaction hash"))
			}
		}
	}
	r.s.transactions[t.ID] = *t
	return nil
}

func (r *TransactionRepo) Upsert(ctx context.Context, t *domain.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, existing := range r.s.transactions {
		if t.Hash != "" && existing.Hash == t.Hash {
			existing.Status = t.Status
			existing.Fee = t.Fee
			if t.BlockNumber != nil {
				existing.BlockNumber = t.BlockNumber
			}
			if t.Metadata != nil {
				existing.Metadata = t.Metadata
			}
			r.s.transactions[id] = existing
			t.ID = id
			return nil
		}
	}
	r.s.transactions[t.ID] = *t
	return nil
}

func (r *TransactionRepo) ApplyUpdate(ctx context.Context, id uuid.UUID, update domain.TransactionUpdate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.transactions[id]
	if !ok {
		return apperror.ErrNotFound("Transaction")
	}
	if update.Status != "" {
		t.Status = update.Status
	}
	if update.Hash != "" {
		t.Hash = update.Hash
	}
	if update.BlockNumber != nil {
		t.BlockNumber = update.BlockNumber
	}
	if update.BlockHash != "" || update.Err != nil {
		meta := domain.TransactionMetadata{}
		if t.Metadata != nil {
			meta = *t.Metadata
		}
		if update.BlockHash != "" {
			meta.BlockHash = update.BlockHash
		}
		if update.Err != nil {
			meta.ErrorMessage = update.Err.Error()
		}
		t.Metadata = &meta
	}
	r.s.transactions[id] = t
	return nil
}

func (r *TransactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.transactions[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (r *TransactionRepo) GetByHash(ctx context.Context, hash string) (*domain.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, t := range r.s.transactions {
		if t.Hash == hash {
			out := t
			return &out, nil
		}
	}
	return nil, nil
}

func (r *TransactionRepo) ListByAddress(ctx context.Context, params ports.TransactionListParams) ([]domain.Transaction, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var matched []domain.Transaction
	for _, t := range r.s.transactions {
		if t.From != params.Address && t.To != params.Address {
			continue
		}
		if params.Status != nil && t.Status != *params.Status {
			continue
		}
		matched = append(matched, t)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Timestamp.After(matched[j].Timestamp) })

	total := int64(len(matched))
	start := params.Offset
	if start > len(matched) {
		start = len(matched)
	}
	end := len(matched)
	if params.Limit > 0 && start+params.Limit < end {
		end = start + params.Limit
	}
	return append([]domain.Transaction{}, matched[start:end]...), total, nil
}

// --- Audit ---

// AuditRepo implements ports.AuditLogRepository.
type AuditRepo struct{ s *Store }

func (r *AuditRepo) Create(ctx context.Context, log *domain.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.audit = append(r.s.audit, *log)
	return nil
}

func (r *AuditRepo) ListByWallet(ctx context.Context, walletID uuid.UUID, limit int) ([]domain.AuditLog, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []domain.AuditLog
	for i := len(r.s.audit) - 1; i >= 0; i-- {
		entry := r.s.audit[i]
		if entry.WalletID != nil && *entry.WalletID == walletID {
			out = append(out, entry)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

var (
	_ ports.WalletRepository      = (*WalletRepo)(nil)
	_ ports.AccountRepository     = (*AccountRepo)(nil)
	_ ports.TransactionRepository = (*TransactionRepo)(nil)
	_ ports.AuditLogRepository    = (*AuditRepo)(nil)
	_ ports.DBTransactor          = (*Transactor)(nil)
	_ ports.HealthChecker         = (*Store)(nil)
)

package service

import (
	"context"
	"fmt"
	"math/big"
	"sort"
	"sync"
	"time"

	"glin-wallet/internal/core/domain"
	"glin-wallet/internal/core/ports"
	"glin-wallet/pkg/apperror"
	"glin-wallet/pkg/metrics"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

const (
	defaultConnectTimeout = 15 * time.Second
	defaultRequestTimeout = 30 * time.Second
	statusUpdateTimeout   = 10 * time.Second
	defaultHistoryLimit   = 50
)

// WalletManagerDeps are the collaborators shared by every WalletManager the
// coordinator builds. Only the chain client differs between networks.
type WalletManagerDeps struct {
	Wallets      ports.WalletRepository
	Accounts     ports.AccountRepository
	Transactions ports.TransactionRepository
	Transactor   ports.DBTransactor
	Encryption   ports.EncryptionService
	Keyring      ports.KeyringService
	History      ports.TransactionHistory // optional
	Audit        ports.AuditService       // optional
	Events       ports.EventPublisher     // optional
	Metrics      *metrics.Metrics         // optional

	ConnectTimeout time.Duration
	// RequestTimeout bounds a submission once it has started. It is not
	// shortened by the caller going away.
	RequestTimeout time.Duration
}

var _ ports.WalletManager = (*WalletManager)(nil)

// WalletManager implements ports.WalletManager: the lock/unlock state
// machine over the wallet store plus delegation to the chain client.
type WalletManager struct {
	deps  WalletManagerDeps
	chain ports.ChainClient
	log   zerolog.Logger

	// opMu serializes operations that replace the session or move the
	// active-wallet pointer.
	opMu sync.Mutex

	mu      sync.RWMutex
	sess    session
	current *domain.Wallet

	connMu     sync.RWMutex
	connStatus domain.ConnectionStatus
	connErr    string
	connect    singleflight.Group
}

// NewWalletManager creates a locked manager bound to chain. It does not
// touch the network or the store.
func NewWalletManager(deps WalletManagerDeps, chain ports.ChainClient, log zerolog.Logger) *WalletManager {
	if deps.ConnectTimeout <= 0 {
		deps.ConnectTimeout = defaultConnectTimeout
	}
	if deps.RequestTimeout <= 0 {
		deps.RequestTimeout = defaultRequestTimeout
	}
	return &WalletManager{
		deps:       deps,
		chain:      chain,
		log:        log,
		sess:       lockedSession{},
		connStatus: domain.ConnectionDisconnected,
	}
}

// ---- Wallet lifecycle ----

// CreateWallet stores a new wallet and leaves it unlocked. A blank mnemonic
// is generated for fresh wallets; imports must supply one.
func (m *WalletManager) CreateWallet(ctx context.Context, name, password, mnemonic string, isImport bool) (*domain.CreatedWallet, error) {
	if name == "" {
		return nil, apperror.ValidationError("Wallet name is required")
	}
	if password == "" {
		return nil, apperror.ValidationError("Password is required")
	}

	phrase := NormalizeMnemonic(mnemonic)
	switch {
	case phrase == "" && isImport:
		return nil, apperror.ErrInvalidMnemonic()
	case phrase == "":
		generated, err := m.deps.Keyring.Generate()
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("generate mnemonic: %w", err))
		}
		phrase = generated
	case !m.deps.Keyring.Validate(phrase):
		return nil, apperror.ErrInvalidMnemonic()
	}

	path := domain.DefaultDerivationPath
	if isImport {
		path = domain.ImportDerivationPath
	}

	kp, err := m.deps.Keyring.CreateFromMnemonic(phrase, path)
	if err != nil {
		return nil, passThrough(err, "derive first account")
	}

	encrypted, err := m.deps.Encryption.Encrypt(phrase, password)
	if err != nil {
		kp.Wipe()
		return nil, apperror.ErrEncryptionFailure(err)
	}

	now := time.Now().UTC()
	wallet := &domain.Wallet{
		ID:                     uuid.New(),
		Name:                   name,
		Address:                kp.Address(),
		PublicKey:              kp.PublicKeyHex(),
		EncryptedSeed:          encrypted,
		CreatedAt:              now,
		LastUsed:               now,
		IsActive:               true,
		CurrentAccountIndex:    0,
		FirstAccountDerivation: path,
	}
	account := domain.Account{
		WalletID:       wallet.ID,
		Index:          0,
		Name:           domain.DefaultAccountName,
		Address:        kp.Address(),
		PublicKey:      kp.PublicKeyHex(),
		DerivationPath: path,
		CreatedAt:      now,
	}

	m.opMu.Lock()
	defer m.opMu.Unlock()

	if err := m.persistNewWallet(ctx, wallet, &account); err != nil {
		kp.Wipe()
		return nil, err
	}

	m.install(wallet, newUnlockedSession(wallet.ID, account, phrase, kp))

	action := domain.AuditActionCreateWallet
	if isImport {
		action = domain.AuditActionImportWallet
	}
	m.record(ctx, walletAudit(action, wallet.ID, "wallet", wallet.ID.String()))
	m.publishAccounts(account)

	m.log.Info().
		Str("wallet_id", wallet.ID.String()).
		Str("address", wallet.Address).
		Bool("import", isImport).
		Msg("wallet created")

	created := &domain.CreatedWallet{WalletID: wallet.ID, Address: wallet.Address}
	if !isImport {
		created.Mnemonic = phrase
	}
	return created, nil
}

func (m *WalletManager) persistNewWallet(ctx context.Context, wallet *domain.Wallet, account *domain.Account) error {
	dbTx, err := m.deps.Transactor.Begin(ctx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := m.deps.Wallets.DeactivateAll(ctx, dbTx); err != nil {
		return apperror.InternalError(fmt.Errorf("deactivate wallets: %w", err))
	}
	if err := m.deps.Wallets.Create(ctx, dbTx, wallet); err != nil {
		return apperror.InternalError(fmt.Errorf("create wallet: %w", err))
	}
	if err := m.deps.Accounts.Create(ctx, dbTx, account); err != nil {
		return passThrough(err, "create account")
	}
	if err := dbTx.Commit(ctx); err != nil {
		return apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	return nil
}

// ImportWallet is CreateWallet for an existing phrase. The first account
// uses the bare keypair so the address matches other tools.
func (m *WalletManager) ImportWallet(ctx context.Context, name, mnemonic, password string) (*domain.CreatedWallet, error) {
	if !m.deps.Keyring.Validate(mnemonic) {
		return nil, apperror.ErrInvalidMnemonic()
	}
	return m.CreateWallet(ctx, name, password, mnemonic, true)
}

// UnlockWallet decrypts walletID's phrase. A wrong password returns false
// and changes nothing.
func (m *WalletManager) UnlockWallet(ctx context.Context, walletID uuid.UUID, password string) (bool, error) {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	wallet, err := m.loadWallet(ctx, walletID)
	if err != nil {
		return false, err
	}

	phrase, ok := m.deps.Encryption.Decrypt(wallet.EncryptedSeed, password)
	if !ok {
		m.deps.Metrics.UnlockFailed()
		m.record(ctx, walletAudit(domain.AuditActionUnlockFailed, wallet.ID, "wallet", wallet.ID.String()))
		m.log.Warn().Str("wallet_id", wallet.ID.String()).Msg("unlock rejected")
		return false, nil
	}

	account, kp, err := m.openAccount(ctx, wallet, phrase)
	if err != nil {
		return false, err
	}

	if !wallet.IsActive {
		if err := m.activate(ctx, wallet.ID); err != nil {
			kp.Wipe()
			return false, err
		}
		wallet.IsActive = true
	}
	m.saveSelection(ctx, wallet, account)

	m.install(wallet, newUnlockedSession(wallet.ID, account, phrase, kp))
	m.record(ctx, walletAudit(domain.AuditActionUnlock, wallet.ID, "wallet", wallet.ID.String()))
	m.publishAccounts(account)

	m.log.Info().
		Str("wallet_id", wallet.ID.String()).
		Str("address", account.Address).
		Msg("wallet unlocked")
	return true, nil
}

// openAccount picks the wallet's selected account (or its first), derives
// its keypair from phrase and checks the derived address.
func (m *WalletManager) openAccount(ctx context.Context, wallet *domain.Wallet, phrase string) (domain.Account, ports.KeyPair, error) {
	accounts, err := m.deps.Accounts.ListByWallet(ctx, wallet.ID)
	if err != nil {
		return domain.Account{}, nil, apperror.InternalError(fmt.Errorf("list accounts: %w", err))
	}
	if len(accounts) == 0 {
		return domain.Account{}, nil, apperror.ErrNoAccounts()
	}

	account := accounts[0]
	for _, a := range accounts {
		if a.Index == wallet.CurrentAccountIndex {
			account = a
			break
		}
	}

	kp, err := m.derive(ctx, wallet.ID, phrase, account)
	if err != nil {
		return domain.Account{}, nil, err
	}
	return account, kp, nil
}

// derive re-derives account's keypair and asserts it still produces the
// stored address.
func (m *WalletManager) derive(ctx context.Context, walletID uuid.UUID, phrase string, account domain.Account) (ports.KeyPair, error) {
	kp, err := m.deps.Keyring.CreateFromMnemonic(phrase, account.DerivationPath)
	if err != nil {
		return nil, passThrough(err, "derive account")
	}
	if kp.Address() != account.Address {
		derived := kp.Address()
		kp.Wipe()
		m.deps.Metrics.IntegrityFault()
		m.record(ctx, walletAudit(domain.AuditActionIntegrityFault, walletID, "account", account.Address))
		m.log.Error().
			Str("wallet_id", walletID.String()).
			Int("account_index", account.Index).
			Str("expected", account.Address).
			Str("derived", derived).
			Msg("derived address does not match stored account")
		return nil, apperror.ErrIntegrity(account.Address, derived)
	}
	return kp, nil
}

// LockWallet drops the session. Safe to call repeatedly.
func (m *WalletManager) LockWallet() {
	m.mu.Lock()
	prev := m.sess
	m.sess = lockedSession{}
	m.mu.Unlock()

	if u, ok := prev.(*unlockedSession); ok {
		u.release()
		m.publish(domain.Event{Name: domain.EventLocked})
		m.log.Info().Str("wallet_id", u.walletID.String()).Msg("wallet locked")
	}
}

// IsLocked reports whether no session is held.
func (m *WalletManager) IsLocked() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, unlocked := m.sess.(*unlockedSession)
	return !unlocked
}

// DeleteWallet removes walletID and its accounts after password proof.
// Transactions are kept. A wrong password returns false.
func (m *WalletManager) DeleteWallet(ctx context.Context, walletID uuid.UUID, password string) (bool, error) {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	wallet, err := m.loadWallet(ctx, walletID)
	if err != nil {
		return false, err
	}
	if _, ok := m.deps.Encryption.Decrypt(wallet.EncryptedSeed, password); !ok {
		return false, nil
	}

	remaining, err := m.deps.Wallets.List(ctx)
	if err != nil {
		return false, apperror.InternalError(fmt.Errorf("list wallets: %w", err))
	}
	var successor *domain.Wallet
	if wallet.IsActive {
		successor = mostRecent(remaining, walletID)
	}

	dbTx, err := m.deps.Transactor.Begin(ctx)
	if err != nil {
		return false, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := m.deps.Accounts.DeleteByWallet(ctx, dbTx, walletID); err != nil {
		return false, apperror.InternalError(fmt.Errorf("delete accounts: %w", err))
	}
	if err := m.deps.Wallets.Delete(ctx, dbTx, walletID); err != nil {
		return false, apperror.InternalError(fmt.Errorf("delete wallet: %w", err))
	}
	if successor != nil {
		if err := m.deps.Wallets.SetActive(ctx, dbTx, successor.ID); err != nil {
			return false, apperror.InternalError(fmt.Errorf("activate successor: %w", err))
		}
		successor.IsActive = true
	}
	if err := dbTx.Commit(ctx); err != nil {
		return false, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	m.mu.Lock()
	var released session
	if u, ok := m.sess.(*unlockedSession); ok && u.walletID == walletID {
		released = m.sess
		m.sess = lockedSession{}
	}
	if m.current != nil && m.current.ID == walletID {
		m.current = successor
	}
	m.mu.Unlock()

	if released != nil {
		releaseSession(released)
		m.publish(domain.Event{Name: domain.EventLocked})
	}

	m.record(ctx, walletAudit(domain.AuditActionDeleteWallet, walletID, "wallet", walletID.String()))
	m.log.Info().Str("wallet_id", walletID.String()).Msg("wallet deleted")
	return true, nil
}

// SwitchWallet makes walletID the active, unlocked wallet. The password
// proves ownership of the target.
func (m *WalletManager) SwitchWallet(ctx context.Context, walletID uuid.UUID, password string) error {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	wallet, err := m.loadWallet(ctx, walletID)
	if err != nil {
		return err
	}

	phrase, ok := m.deps.Encryption.Decrypt(wallet.EncryptedSeed, password)
	if !ok {
		m.deps.Metrics.UnlockFailed()
		m.record(ctx, walletAudit(domain.AuditActionUnlockFailed, wallet.ID, "wallet", wallet.ID.String()))
		return apperror.ErrIncorrectPassword()
	}

	account, kp, err := m.openAccount(ctx, wallet, phrase)
	if err != nil {
		return err
	}

	if err := m.activate(ctx, wallet.ID); err != nil {
		kp.Wipe()
		return err
	}
	wallet.IsActive = true
	m.saveSelection(ctx, wallet, account)

	m.install(wallet, newUnlockedSession(wallet.ID, account, phrase, kp))
	m.record(ctx, walletAudit(domain.AuditActionUnlock, wallet.ID, "wallet", wallet.ID.String()))
	m.publishAccounts(account)

	m.log.Info().Str("wallet_id", wallet.ID.String()).Msg("switched wallet")
	return nil
}

// activate moves the active flag to id in one transaction.
func (m *WalletManager) activate(ctx context.Context, id uuid.UUID) error {
	dbTx, err := m.deps.Transactor.Begin(ctx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := m.deps.Wallets.DeactivateAll(ctx, dbTx); err != nil {
		return apperror.InternalError(fmt.Errorf("deactivate wallets: %w", err))
	}
	if err := m.deps.Wallets.SetActive(ctx, dbTx, id); err != nil {
		return apperror.InternalError(fmt.Errorf("activate wallet: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	return nil
}

// ExportSeedPhrase decrypts the selected wallet's phrase. The session cache
// is never consulted.
func (m *WalletManager) ExportSeedPhrase(ctx context.Context, password string) (string, error) {
	wallet, err := m.selectedWallet(ctx)
	if err != nil {
		return "", err
	}
	phrase, ok := m.deps.Encryption.Decrypt(wallet.EncryptedSeed, password)
	if !ok {
		return "", apperror.ErrIncorrectPassword()
	}
	m.record(ctx, walletAudit(domain.AuditActionExportSeed, wallet.ID, "wallet", wallet.ID.String()))
	return phrase, nil
}

// ChangePassword re-encrypts the selected wallet's phrase under newPassword.
func (m *WalletManager) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	if newPassword == "" {
		return apperror.ValidationError("New password is required")
	}

	m.opMu.Lock()
	defer m.opMu.Unlock()

	wallet, err := m.selectedWallet(ctx)
	if err != nil {
		return err
	}
	phrase, ok := m.deps.Encryption.Decrypt(wallet.EncryptedSeed, currentPassword)
	if !ok {
		return apperror.ErrIncorrectPassword()
	}

	encrypted, err := m.deps.Encryption.Encrypt(phrase, newPassword)
	if err != nil {
		return apperror.ErrEncryptionFailure(err)
	}
	if err := m.deps.Wallets.UpdateEncryptedSeed(ctx, wallet.ID, encrypted); err != nil {
		return apperror.InternalError(fmt.Errorf("update encrypted seed: %w", err))
	}

	m.mu.Lock()
	if m.current != nil && m.current.ID == wallet.ID {
		m.current.EncryptedSeed = encrypted
	}
	m.mu.Unlock()

	m.record(ctx, walletAudit(domain.AuditActionChangePassword, wallet.ID, "wallet", wallet.ID.String()))
	return nil
}

// GetWallets lists every stored wallet.
func (m *WalletManager) GetWallets(ctx context.Context) ([]domain.WalletSummary, error) {
	wallets, err := m.deps.Wallets.List(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list wallets: %w", err))
	}
	out := make([]domain.WalletSummary, 0, len(wallets))
	for i := range wallets {
		out = append(out, wallets[i].Summary())
	}
	return out, nil
}

// CurrentWallet returns a copy of the selected wallet, or nil.
func (m *WalletManager) CurrentWallet() *domain.Wallet {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return nil
	}
	w := *m.current
	return &w
}

// GetWalletStatus answers whether any wallet exists and whether it is locked.
func (m *WalletManager) GetWalletStatus(ctx context.Context) (*domain.WalletStatus, error) {
	count, err := m.deps.Wallets.Count(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("count wallets: %w", err))
	}
	status := &domain.WalletStatus{HasWallet: count > 0, IsLocked: m.IsLocked()}
	if acc := m.CurrentAccount(); acc != nil {
		status.Address = acc.Address
	} else if count > 0 {
		if w, err := m.selectedWallet(ctx); err == nil {
			status.Address = w.Address
		}
	}
	return status, nil
}

// ---- Accounts ----

// GetAccounts lists the selected wallet's accounts ordered by index.
func (m *WalletManager) GetAccounts(ctx context.Context) ([]domain.Account, error) {
	wallet, err := m.selectedWallet(ctx)
	if err != nil {
		return nil, err
	}
	accounts, err := m.deps.Accounts.ListByWallet(ctx, wallet.ID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list accounts: %w", err))
	}
	return accounts, nil
}

// CreateAccount derives and stores account index of the unlocked wallet
// from the cached phrase. A negative index picks the next free one and an
// empty name becomes "Account N".
func (m *WalletManager) CreateAccount(ctx context.Context, walletID uuid.UUID, index int, name string) (*domain.Account, error) {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	var account *domain.Account
	err := m.withSession(func(s *unlockedSession) error {
		if walletID != uuid.Nil && walletID != s.walletID {
			return apperror.ErrNoWalletUnlocked()
		}
		wallet := m.current

		if index < 0 {
			next, err := m.nextAccountIndex(ctx, s.walletID)
			if err != nil {
				return err
			}
			index = next
		}
		if name == "" {
			name = fmt.Sprintf("Account %d", index+1)
		}

		existing, err := m.deps.Accounts.GetByIndex(ctx, s.walletID, index)
		if err != nil {
			return apperror.InternalError(fmt.Errorf("get account by index: %w", err))
		}
		if existing != nil {
			return apperror.ErrAccountExists()
		}

		path := wallet.AccountPath(index)
		kp, err := m.deps.Keyring.CreateFromMnemonic(s.phrase(), path)
		if err != nil {
			return passThrough(err, "derive account")
		}
		defer kp.Wipe()

		dup, err := m.deps.Accounts.GetByAddress(ctx, s.walletID, kp.Address())
		if err != nil {
			return apperror.InternalError(fmt.Errorf("get account by address: %w", err))
		}
		if dup != nil {
			return apperror.ErrAccountExists()
		}

		account = &domain.Account{
			WalletID:       s.walletID,
			Index:          index,
			Name:           name,
			Address:        kp.Address(),
			PublicKey:      kp.PublicKeyHex(),
			DerivationPath: path,
			CreatedAt:      time.Now().UTC(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := m.deps.Accounts.Create(ctx, nil, account); err != nil {
		return nil, passThrough(err, "create account")
	}

	m.log.Info().
		Str("wallet_id", account.WalletID.String()).
		Int("index", account.Index).
		Str("address", account.Address).
		Msg("account created")
	return account, nil
}

func (m *WalletManager) nextAccountIndex(ctx context.Context, walletID uuid.UUID) (int, error) {
	accounts, err := m.deps.Accounts.ListByWallet(ctx, walletID)
	if err != nil {
		return 0, apperror.InternalError(fmt.Errorf("list accounts: %w", err))
	}
	next := 0
	for _, a := range accounts {
		if a.Index >= next {
			next = a.Index + 1
		}
	}
	return next, nil
}

// SwitchAccount makes address the active account of the unlocked wallet.
func (m *WalletManager) SwitchAccount(ctx context.Context, address string) error {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	walletID, err := m.sessionWalletID()
	if err != nil {
		return err
	}

	account, err := m.deps.Accounts.GetByAddress(ctx, walletID, address)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("get account: %w", err))
	}
	if account == nil {
		return apperror.ErrAccountNotFound()
	}

	var wallet *domain.Wallet
	err = m.withSessionWrite(func(s *unlockedSession) error {
		if s.walletID != walletID {
			return apperror.ErrNoWalletUnlocked()
		}
		kp, err := m.derive(ctx, walletID, s.phrase(), *account)
		if err != nil {
			return err
		}
		s.swapKeypair(*account, kp)

		m.current.CurrentAccountIndex = account.Index
		m.current.Address = account.Address
		m.current.PublicKey = account.PublicKey
		m.current.LastUsed = time.Now().UTC()
		w := *m.current
		wallet = &w
		return nil
	})
	if err != nil {
		return err
	}

	if err := m.deps.Wallets.UpdateSelection(ctx, wallet); err != nil {
		m.log.Warn().Err(err).Str("wallet_id", wallet.ID.String()).Msg("failed to persist account selection")
	}
	m.publishAccounts(*account)
	return nil
}

// RenameAccount changes an account's display name. It needs an unlocked
// session but no password.
func (m *WalletManager) RenameAccount(ctx context.Context, address, name string) error {
	if name == "" {
		return apperror.ValidationError("Account name is required")
	}
	walletID, err := m.sessionWalletID()
	if err != nil {
		return err
	}

	account, err := m.deps.Accounts.GetByAddress(ctx, walletID, address)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("get account: %w", err))
	}
	if account == nil {
		return apperror.ErrAccountNotFound()
	}
	if err := m.deps.Accounts.Rename(ctx, walletID, address, name); err != nil {
		return passThrough(err, "rename account")
	}

	m.mu.Lock()
	if u, ok := m.sess.(*unlockedSession); ok && u.account.Address == address {
		u.account.Name = name
	}
	m.mu.Unlock()
	return nil
}

// ExportAccount returns the raw private key of address after password
// proof. The password is checked before the account is looked up.
func (m *WalletManager) ExportAccount(ctx context.Context, address, password string) (*domain.ExportedAccount, error) {
	wallet, err := m.selectedWallet(ctx)
	if err != nil {
		return nil, err
	}
	phrase, ok := m.deps.Encryption.Decrypt(wallet.EncryptedSeed, password)
	if !ok {
		return nil, apperror.ErrIncorrectPassword()
	}

	account, err := m.deps.Accounts.GetByAddress(ctx, wallet.ID, address)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get account: %w", err))
	}
	if account == nil {
		return nil, apperror.ErrAccountNotFound()
	}

	kp, err := m.derive(ctx, wallet.ID, phrase, *account)
	if err != nil {
		return nil, err
	}
	defer kp.Wipe()

	m.record(ctx, walletAudit(domain.AuditActionExportAccount, wallet.ID, "account", address))
	return &domain.ExportedAccount{
		Address:    kp.Address(),
		PublicKey:  kp.PublicKeyHex(),
		PrivateKey: kp.PrivateKeyHex(),
	}, nil
}

// CurrentAccount returns the unlocked session's account, or nil.
func (m *WalletManager) CurrentAccount() *domain.AccountSummary {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if u, ok := m.sess.(*unlockedSession); ok {
		summary := u.account.Summary()
		return &summary
	}
	return nil
}

// SignMessage signs <Bytes>message</Bytes> with the active keypair.
func (m *WalletManager) SignMessage(ctx context.Context, message string) (*ports.SignedMessage, error) {
	var out *ports.SignedMessage
	err := m.withSession(func(s *unlockedSession) error {
		sig, err := s.keypair.Sign(WrapBytes(message))
		if err != nil {
			return apperror.InternalError(fmt.Errorf("sign message: %w", err))
		}
		out = &ports.SignedMessage{
			Signature: EncodeHex(sig),
			PublicKey: s.keypair.PublicKeyHex(),
		}
		return nil
	})
	return out, err
}

// ---- Chain delegation ----

// GetBalance queries address, or the current account when address is
// empty. Connects lazily.
func (m *WalletManager) GetBalance(ctx context.Context, address string) (domain.Balance, error) {
	address, err := m.resolveAddress(ctx, address)
	if err != nil {
		return domain.Balance{}, err
	}
	if err := m.EnsureConnected(ctx); err != nil {
		return domain.Balance{}, err
	}

	balance, err := m.chain.GetBalance(ctx, address)
	if err != nil {
		return domain.Balance{}, m.chainError(err)
	}
	return balance, nil
}

// SendTransaction transfers amount planck to to from the active account.
// A pending record is written first and updated as the chain reports
// progress, including after this call returns.
func (m *WalletManager) SendTransaction(ctx context.Context, to string, amount *big.Int) (string, error) {
	if !m.deps.Keyring.ValidateAddress(to) {
		return "", apperror.ErrInvalidAddress()
	}
	if amount == nil || amount.Sign() <= 0 {
		return "", apperror.ErrInvalidAmount()
	}

	// The chain client gets its own keypair so a concurrent lock can wipe
	// the session without racing the signer.
	var signer ports.KeyPair
	err := m.withSession(func(s *unlockedSession) error {
		kp, err := m.deps.Keyring.CreateFromMnemonic(s.phrase(), s.account.DerivationPath)
		if err != nil {
			return passThrough(err, "derive signer")
		}
		signer = kp
		return nil
	})
	if err != nil {
		return "", err
	}
	defer signer.Wipe()

	if err := m.EnsureConnected(ctx); err != nil {
		return "", err
	}

	record := &domain.Transaction{
		ID:        uuid.New(),
		From:      signer.Address(),
		To:        to,
		Amount:    amount.String(),
		Fee:       "0",
		Status:    domain.TransactionStatusPending,
		Timestamp: time.Now().UTC(),
		Type:      domain.TransactionTypeSend,
	}
	if err := m.deps.Transactions.Create(ctx, record); err != nil {
		return "", apperror.InternalError(fmt.Errorf("create pending transaction: %w", err))
	}

	onStatus := func(update domain.TransactionUpdate) {
		m.applyUpdate(record.ID, update)
		m.publish(domain.Event{Name: domain.EventTransactionUpdated, Data: update})
	}

	// Once the pending row exists the submission runs to completion even if
	// the caller gives up; the chain client reports the hash before it sends.
	sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.deps.RequestTimeout)
	defer cancel()

	hash, err := m.chain.Transfer(sctx, signer, to, amount, onStatus)
	if err != nil {
		m.applyUpdate(record.ID, domain.TransactionUpdate{Status: domain.TransactionStatusFailed, Err: err})
		return "", m.chainError(err)
	}

	m.applyUpdate(record.ID, domain.TransactionUpdate{Hash: hash})

	m.log.Info().
		Str("tx_id", record.ID.String()).
		Str("hash", hash).
		Str("from", record.From).
		Str("to", to).
		Str("amount", record.Amount).
		Msg("transfer submitted")
	return hash, nil
}

// applyUpdate outlives the request that started the transfer.
func (m *WalletManager) applyUpdate(id uuid.UUID, update domain.TransactionUpdate) {
	ctx, cancel := context.WithTimeout(context.Background(), statusUpdateTimeout)
	defer cancel()
	if err := m.deps.Transactions.ApplyUpdate(ctx, id, update); err != nil {
		m.log.Warn().Err(err).Str("tx_id", id.String()).Str("status", string(update.Status)).Msg("failed to record transaction update")
	}
}

// EstimateFee quotes a transfer from the current account.
func (m *WalletManager) EstimateFee(ctx context.Context, to string, amount *big.Int) (*big.Int, error) {
	if !m.deps.Keyring.ValidateAddress(to) {
		return nil, apperror.ErrInvalidAddress()
	}
	if amount == nil || amount.Sign() <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}
	from, err := m.resolveAddress(ctx, "")
	if err != nil {
		return nil, err
	}
	if err := m.EnsureConnected(ctx); err != nil {
		return nil, err
	}
	fee, err := m.chain.EstimateFee(ctx, from, to, amount)
	if err != nil {
		return nil, m.chainError(err)
	}
	return fee, nil
}

// GetTransactionHistory lists records for address (default: current
// account), newest first.
func (m *WalletManager) GetTransactionHistory(ctx context.Context, address string, limit, offset int) ([]domain.Transaction, error) {
	address, err := m.resolveAddress(ctx, address)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}

	if m.deps.History != nil {
		return m.deps.History.GetTransactions(ctx, address, limit, offset)
	}
	txs, _, err := m.deps.Transactions.ListByAddress(ctx, ports.TransactionListParams{
		Address: address,
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list transactions: %w", err))
	}
	return txs, nil
}

// ---- Connection ----

// EnsureConnected opens the chain connection once. Concurrent callers
// share the in-flight attempt; a caller whose ctx ends stops waiting
// without cancelling it.
func (m *WalletManager) EnsureConnected(ctx context.Context) error {
	if m.chain.IsConnected() {
		m.setConnStatus(domain.ConnectionConnected, "")
		return nil
	}

	ch := m.connect.DoChan("connect", func() (interface{}, error) {
		if m.chain.IsConnected() {
			return nil, nil
		}
		m.setConnStatus(domain.ConnectionConnecting, "")

		cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.deps.ConnectTimeout)
		defer cancel()

		if err := m.chain.Connect(cctx); err != nil {
			m.setConnStatus(domain.ConnectionError, err.Error())
			m.log.Warn().Err(err).Str("endpoint", m.chain.Endpoint()).Msg("chain connection failed")
			return nil, err
		}
		m.setConnStatus(domain.ConnectionConnected, "")
		m.log.Info().Str("endpoint", m.chain.Endpoint()).Msg("chain connected")
		return nil, nil
	})

	select {
	case <-ctx.Done():
		return apperror.ErrNetworkUnavailable(ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return apperror.ErrNetworkUnavailable(res.Err)
		}
		return nil
	}
}

// ConnectionStatus returns the chain connection state and last error.
func (m *WalletManager) ConnectionStatus() (domain.ConnectionStatus, string) {
	m.connMu.RLock()
	defer m.connMu.RUnlock()
	return m.connStatus, m.connErr
}

// Endpoint is the chain endpoint this manager is bound to.
func (m *WalletManager) Endpoint() string {
	return m.chain.Endpoint()
}

// Close locks and disconnects. The manager must not be used afterwards.
func (m *WalletManager) Close() {
	m.LockWallet()
	if err := m.chain.Disconnect(); err != nil {
		m.log.Warn().Err(err).Msg("chain disconnect failed")
	}
	m.setConnStatus(domain.ConnectionDisconnected, "")
}

func (m *WalletManager) setConnStatus(status domain.ConnectionStatus, errMsg string) {
	m.connMu.Lock()
	m.connStatus = status
	m.connErr = errMsg
	m.connMu.Unlock()
	m.deps.Metrics.SetChainConnected(status == domain.ConnectionConnected)
}

// chainError keeps AppErrors from the chain client and marks the
// connection as failed when the transport dropped.
func (m *WalletManager) chainError(err error) error {
	if !m.chain.IsConnected() {
		m.setConnStatus(domain.ConnectionError, err.Error())
	}
	if appErr, ok := apperror.As(err); ok {
		return appErr
	}
	return apperror.ErrChainRequest(err)
}

// ---- Helpers ----

func (m *WalletManager) loadWallet(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	wallet, err := m.deps.Wallets.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrWalletNotFound()
	}
	return wallet, nil
}

// selectedWallet is the in-memory selection, else the store's active
// wallet. The stored copy is always re-read so secrets are current.
func (m *WalletManager) selectedWallet(ctx context.Context) (*domain.Wallet, error) {
	m.mu.RLock()
	var id uuid.UUID
	if m.current != nil {
		id = m.current.ID
	}
	m.mu.RUnlock()

	if id != uuid.Nil {
		wallet, err := m.deps.Wallets.GetByID(ctx, id)
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("get wallet: %w", err))
		}
		if wallet != nil {
			return wallet, nil
		}
	}

	wallet, err := m.deps.Wallets.GetActive(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get active wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrNoWalletSelected()
	}

	m.mu.Lock()
	if m.current == nil {
		w := *wallet
		m.current = &w
	}
	m.mu.Unlock()
	return wallet, nil
}

// resolveAddress validates address or falls back to the current account,
// then to the selected wallet's address.
func (m *WalletManager) resolveAddress(ctx context.Context, address string) (string, error) {
	if address != "" {
		if !m.deps.Keyring.ValidateAddress(address) {
			return "", apperror.ErrInvalidAddress()
		}
		return address, nil
	}
	if acc := m.CurrentAccount(); acc != nil {
		return acc.Address, nil
	}
	wallet, err := m.selectedWallet(ctx)
	if err != nil {
		return "", err
	}
	return wallet.Address, nil
}

func (m *WalletManager) sessionWalletID() (uuid.UUID, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if u, ok := m.sess.(*unlockedSession); ok {
		return u.walletID, nil
	}
	return uuid.Nil, apperror.ErrWalletLocked()
}

// withSession runs fn with the unlocked session under the read lock.
func (m *WalletManager) withSession(fn func(s *unlockedSession) error) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.sess.(*unlockedSession)
	if !ok {
		return apperror.ErrWalletLocked()
	}
	return fn(u)
}

func (m *WalletManager) withSessionWrite(fn func(s *unlockedSession) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.sess.(*unlockedSession)
	if !ok {
		return apperror.ErrWalletLocked()
	}
	return fn(u)
}

// install replaces the session and selection, wiping the previous secrets.
func (m *WalletManager) install(wallet *domain.Wallet, next *unlockedSession) {
	w := *wallet
	m.mu.Lock()
	prev := m.sess
	m.sess = next
	m.current = &w
	m.mu.Unlock()
	releaseSession(prev)
}

// saveSelection records the chosen account on wallet and persists it.
// Failure to persist is logged; the unlock itself still succeeds.
func (m *WalletManager) saveSelection(ctx context.Context, wallet *domain.Wallet, account domain.Account) {
	wallet.CurrentAccountIndex = account.Index
	wallet.Address = account.Address
	wallet.PublicKey = account.PublicKey
	wallet.LastUsed = time.Now().UTC()
	if err := m.deps.Wallets.UpdateSelection(ctx, wallet); err != nil {
		m.log.Warn().Err(err).Str("wallet_id", wallet.ID.String()).Msg("failed to persist wallet selection")
	}
}

func (m *WalletManager) record(ctx context.Context, entry *domain.AuditLog) {
	if m.deps.Audit != nil {
		m.deps.Audit.Log(ctx, entry)
	}
}

func (m *WalletManager) publish(event domain.Event) {
	if m.deps.Events != nil {
		m.deps.Events.Publish(event)
	}
}

func (m *WalletManager) publishAccounts(account domain.Account) {
	m.publish(domain.Event{
		Name: domain.EventAccountsChanged,
		Data: []domain.AccountSummary{account.Summary()},
	})
}

// mostRecent returns the most recently used wallet other than exclude.
func mostRecent(wallets []domain.Wallet, exclude uuid.UUID) *domain.Wallet {
	candidates := make([]domain.Wallet, 0, len(wallets))
	for _, w := range wallets {
		if w.ID != exclude {
			candidates = append(candidates, w)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].LastUsed.After(candidates[j].LastUsed)
	})
	w := candidates[0]
	return &w
}

// passThrough keeps AppErrors and wraps anything else as internal.
func passThrough(err error, op string) error {
	if appErr, ok := apperror.As(err); ok {
		return appErr
	}
	return apperror.InternalError(fmt.Errorf("%s: %w", op, err))
}

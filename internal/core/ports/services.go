package ports

//go:generate mockgen -source=services.go -destination=mocks/mock_services.go -package=mocks

import (
	"context"
	"math/big"
	"time"

	"glin-wallet/internal/core/domain"

	"github.com/google/uuid"
)

// --- Crypto ports ---

// EncryptionService derives password keys and seals secrets.
type EncryptionService interface {
	DeriveKey(password string, salt []byte) (key []byte, usedSalt []byte, err error)
	Encrypt(plaintext, password string) (domain.EncryptedSeed, error)
	// Decrypt reports ok=false for a wrong password or tampered blob.
	Decrypt(encrypted domain.EncryptedSeed, password string) (plaintext string, ok bool)
	CreateVault(data interface{}, password string) (*Vault, error)
	OpenVault(vault *Vault, password string, out interface{}) error
}

// Vault wraps arbitrary structured data with an integrity checksum.
type Vault struct {
	Vault    string `json:"vault"`
	Checksum string `json:"checksum"`
}

// HashService handles password hashing (Argon2id) for non-secret-gated checks.
type HashService interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) (bool, error)
}

// Signer is the public face of a keypair handed to the chain client.
type Signer interface {
	Address() string
	PublicKey() []byte
	Sign(message []byte) ([]byte, error)
}

// KeyPair is a derived keypair. Wipe zeroes its private material.
type KeyPair interface {
	Signer
	PublicKeyHex() string
	PrivateKeyHex() string
	Wipe()
}

// KeyringService generates and validates phrases and derives keypairs.
type KeyringService interface {
	Generate() (string, error)
	Validate(phrase string) bool
	CreateFromMnemonic(phrase, derivationPath string) (KeyPair, error)
	ValidateAddress(address string) bool
	Verify(address string, message, signature []byte) (bool, error)
}

// SignatureService authenticates extension-surface requests with HMAC-SHA256.
type SignatureService interface {
	Sign(secretKey string, payload string) string
	Verify(secretKey string, payload string, signature string) bool
	BuildCanonicalString(method, path string, timestamp int64, nonce string, body string) string
}

// TokenService inspects backend-issued access tokens.
type TokenService interface {
	// ExpiresAt returns the token's exp claim, or now plus the fallback
	// lifetime when the token carries none.
	ExpiresAt(token string) time.Time
	Expired(session *AuthSession) bool
}

// --- Collaborator ports ---

// ChainClient is the network collaborator for balances, fees and transfers.
type ChainClient interface {
	Connect(ctx context.Context) error
	Disconnect() error
	IsConnected() bool
	Endpoint() string
	GetBalance(ctx context.Context, address string) (domain.Balance, error)
	EstimateFee(ctx context.Context, from, to string, amount *big.Int) (*big.Int, error)
	// Transfer signs and submits; onStatus may be called after Transfer returns.
	Transfer(ctx context.Context, signer Signer, to string, amount *big.Int, onStatus func(domain.TransactionUpdate)) (string, error)
}

// ChainDialer builds an unconnected ChainClient bound to endpoint.
type ChainDialer func(endpoint string) ChainClient

// AuthNonce is the backend login challenge.
type AuthNonce struct {
	Nonce     string `json:"nonce"`
	Message   string `json:"message"`
	ExpiresAt string `json:"expiresAt"`
}

// BackendUser is the account record the backend returns on login.
type BackendUser struct {
	ID            string `json:"id"`
	WalletAddress string `json:"walletAddress"`
	CreatedAt     string `json:"createdAt"`
}

// AuthSession is a backend login result.
type AuthSession struct {
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	User         BackendUser `json:"user"`
	ExpiresAt    time.Time   `json:"expiresAt"`
}

// BackendClient is the typed client for the GLIN backend.
type BackendClient interface {
	RequestNonce(ctx context.Context, address string) (*AuthNonce, error)
	LoginWithWallet(ctx context.Context, address, signature, nonce string) (*AuthSession, error)
	RefreshToken(ctx context.Context, refreshToken string) (*AuthSession, error)
	SetAccessToken(token string)
	GetTransactions(ctx context.Context, address string, limit, offset int) ([]domain.Transaction, error)
	// SubscribeTransactions blocks, delivering pushed records until ctx ends.
	SubscribeTransactions(ctx context.Context, address string, handler func(domain.Transaction)) error
}

// WindowManager opens and closes the approval UI.
type WindowManager interface {
	OpenApproval(ctx context.Context, request domain.PendingRequestInfo) (windowID string, err error)
	Close(ctx context.Context, windowID string) error
}

// EventPublisher fans events out to UI and provider subscribers.
type EventPublisher interface {
	Publish(event domain.Event)
}

// AuditService records security-relevant actions.
type AuditService interface {
	Log(ctx context.Context, entry *domain.AuditLog)
}

// --- Service ports (business logic) ---

// SignedMessage is the result of SIGN_MESSAGE.
type SignedMessage struct {
	Signature string `json:"signature"`
	PublicKey string `json:"publicKey"`
}

// TransactionHistory is the history cache/sync service.
type TransactionHistory interface {
	GetTransactions(ctx context.Context, address string, limit, offset int) ([]domain.Transaction, error)
	Sync(ctx context.Context, address string) (int, error)
	// Subscribe streams backend updates for address until the returned cancel is called.
	Subscribe(ctx context.Context, address string, handler func(domain.Transaction)) (cancel func(), err error)
}

// WalletManager is the session and key-custody state machine.
type WalletManager interface {
	CreateWallet(ctx context.Context, name, password, mnemonic string, isImport bool) (*domain.CreatedWallet, error)
	ImportWallet(ctx context.Context, name, mnemonic, password string) (*domain.CreatedWallet, error)
	UnlockWallet(ctx context.Context, walletID uuid.UUID, password string) (bool, error)
	LockWallet()
	IsLocked() bool
	DeleteWallet(ctx context.Context, walletID uuid.UUID, password string) (bool, error)
	SwitchWallet(ctx context.Context, walletID uuid.UUID, password string) error
	ExportSeedPhrase(ctx context.Context, password string) (string, error)
	ChangePassword(ctx context.Context, currentPassword, newPassword string) error
	GetWallets(ctx context.Context) ([]domain.WalletSummary, error)
	CurrentWallet() *domain.Wallet
	GetWalletStatus(ctx context.Context) (*domain.WalletStatus, error)

	GetAccounts(ctx context.Context) ([]domain.Account, error)
	CreateAccount(ctx context.Context, walletID uuid.UUID, index int, name string) (*domain.Account, error)
	SwitchAccount(ctx context.Context, address string) error
	RenameAccount(ctx context.Context, address, name string) error
	ExportAccount(ctx context.Context, address, password string) (*domain.ExportedAccount, error)
	CurrentAccount() *domain.AccountSummary
	SignMessage(ctx context.Context, message string) (*SignedMessage, error)

	GetBalance(ctx context.Context, address string) (domain.Balance, error)
	SendTransaction(ctx context.Context, to string, amount *big.Int) (string, error)
	EstimateFee(ctx context.Context, to string, amount *big.Int) (*big.Int, error)
	GetTransactionHistory(ctx context.Context, address string, limit, offset int) ([]domain.Transaction, error)

	EnsureConnected(ctx context.Context) error
	ConnectionStatus() (domain.ConnectionStatus, string)
	Endpoint() string
	Close()
}

// BackendAuthenticator performs the wallet challenge login.
type BackendAuthenticator interface {
	Authenticate(ctx context.Context, address string, sign func(message string) (string, error)) (*AuthSession, error)
	// Refresh exchanges the refresh token when the access token has expired.
	Refresh(ctx context.Context) (*AuthSession, error)
	Session() *AuthSession
	Clear()
}

// SessionCoordinator owns the live WalletManager and dapp bookkeeping.
type SessionCoordinator interface {
	Manager() (WalletManager, error)
	IsInitialized() bool
	Lock(ctx context.Context)
	GetState(ctx context.Context) (*domain.WalletState, error)

	RequestConnection(ctx context.Context, origin, appName, appIcon string) (*domain.ConnectionResult, error)
	ApprovePendingRequest(ctx context.Context, id uuid.UUID) error
	RejectPendingRequest(ctx context.Context, id uuid.UUID, reason string) error
	ApprovalWindowClosed(ctx context.Context, windowID string) error
	GetPendingRequest(id uuid.UUID) (*domain.PendingRequestInfo, error)
	IsSiteConnected(ctx context.Context, origin string) (bool, error)
	DisconnectSite(ctx context.Context, origin string) error
	ConnectedSites(ctx context.Context) ([]domain.ConnectedSite, error)

	SwitchNetwork(ctx context.Context, networkID, customEndpoint string) (*domain.Network, error)
	CurrentNetwork(ctx context.Context) (*domain.Network, error)
	SetTheme(ctx context.Context, theme domain.Theme) error
	GetTheme(ctx context.Context) (domain.Theme, error)

	SubscribeTransactions(ctx context.Context, address string) (string, error)
	AuthenticateBackend(ctx context.Context) (*AuthSession, error)
}

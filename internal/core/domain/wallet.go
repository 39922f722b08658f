package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultDerivationPath is the first-account path for freshly generated wallets.
	DefaultDerivationPath = "//0//0"
	// ImportDerivationPath derives the bare keypair so imported phrases keep
	// the address other tools produce for them.
	ImportDerivationPath = ""
	// DefaultAccountName names account 0 of every new wallet.
	DefaultAccountName = "Main Account"
)

// EncryptedSeed is the only persisted form of a wallet's mnemonic.
// All fields are base64.
type EncryptedSeed struct {
	Ciphertext string `json:"encrypted"`
	Nonce      string `json:"nonce"`
	Salt       string `json:"salt"`
}

// IsZero reports whether no ciphertext is present.
func (e EncryptedSeed) IsZero() bool {
	return e.Ciphertext == "" || e.Nonce == "" || e.Salt == ""
}

// Wallet is one seed-derived identity.
type Wallet struct {
	ID                     uuid.UUID     `json:"id"`
	Name                   string        `json:"name"`
	Address                string        `json:"address"`   // of the selected account
	PublicKey              string        `json:"publicKey"` // of the selected account
	EncryptedSeed          EncryptedSeed `json:"-"`
	CreatedAt              time.Time     `json:"createdAt"`
	LastUsed               time.Time     `json:"lastUsed"`
	IsActive               bool          `json:"isActive"`
	CurrentAccountIndex    int           `json:"currentAccountIndex"`
	FirstAccountDerivation string        `json:"-"`
}

// AccountPath returns the derivation path for the account at index.
// Index 0 reuses the path fixed at wallet creation.
func (w *Wallet) AccountPath(index int) string {
	if index == 0 {
		return w.FirstAccountDerivation
	}
	return fmt.Sprintf("//0//%d", index)
}

// Summary returns the public view listed by GET_WALLETS.
func (w *Wallet) Summary() WalletSummary {
	return WalletSummary{
		ID:        w.ID,
		Name:      w.Name,
		Address:   w.Address,
		IsActive:  w.IsActive,
		CreatedAt: w.CreatedAt,
		LastUsed:  w.LastUsed,
	}
}

// WalletSummary is the non-secret projection of a Wallet.
type WalletSummary struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	LastUsed  time.Time `json:"lastUsed"`
}

// Account is one derived keypair belonging to a Wallet.
type Account struct {
	WalletID       uuid.UUID `json:"walletId"`
	Index          int       `json:"index"`
	Name           string    `json:"name"`
	Address        string    `json:"address"`
	PublicKey      string    `json:"publicKey"`
	DerivationPath string    `json:"derivationPath"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Summary returns the address/name/public-key triple safe to share with dapps.
func (a *Account) Summary() AccountSummary {
	return AccountSummary{
		Address:   a.Address,
		Name:      a.Name,
		PublicKey: a.PublicKey,
	}
}

// AccountSummary is what leaves the daemon when an account is described.
type AccountSummary struct {
	Address   string `json:"address"`
	Name      string `json:"name"`
	PublicKey string `json:"publicKey"`
}

// WalletStatus answers GET_WALLET_STATUS.
type WalletStatus struct {
	HasWallet bool   `json:"hasWallet"`
	IsLocked  bool   `json:"isLocked"`
	Address   string `json:"address,omitempty"`
}

// CreatedWallet is returned once, at creation. Mnemonic is empty for imports.
type CreatedWallet struct {
	WalletID uuid.UUID `json:"walletId"`
	Address  string    `json:"address"`
	Mnemonic string    `json:"mnemonic,omitempty"`
}

// ExportedAccount carries raw private key material for EXPORT_ACCOUNT.
type ExportedAccount struct {
	Address    string `json:"address"`
	PublicKey  string `json:"publicKey"`
	PrivateKey string `json:"privateKey"`
}

package service

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"glin-wallet/internal/core/ports"
	"glin-wallet/pkg/apperror"
	"glin-wallet/pkg/ss58"

	"github.com/tyler-smith/go-bip39"
	subkey "github.com/vedhavyas/go-subkey/v2"
	"github.com/vedhavyas/go-subkey/v2/sr25519"
)

var errKeypairWiped = errors.New("keypair has been wiped")

// Keyring implements ports.KeyringService for Substrate sr25519 accounts
// derived from BIP39 phrases.
type Keyring struct {
	ss58Prefix  uint16
	entropyBits int
	scheme      subkey.Scheme
}

// NewKeyring creates a keyring that renders addresses with ss58Prefix and
// generates phrases of entropyBits (128 for 12 words, 256 for 24).
func NewKeyring(ss58Prefix uint16, entropyBits int) *Keyring {
	return &Keyring{
		ss58Prefix:  ss58Prefix,
		entropyBits: entropyBits,
		scheme:      sr25519.Scheme{},
	}
}

// Generate produces a fresh random phrase.
func (k *Keyring) Generate() (string, error) {
	entropy, err := bip39.NewEntropy(k.entropyBits)
	if err != nil {
		return "", fmt.Errorf("generating entropy: %w", err)
	}
	defer wipe(entropy)

	phrase, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("encoding mnemonic: %w", err)
	}
	return phrase, nil
}

// Validate checks word list membership, length and checksum.
func (k *Keyring) Validate(phrase string) bool {
	return bip39.IsMnemonicValid(NormalizeMnemonic(phrase))
}

// NormalizeMnemonic lowercases a phrase and collapses its whitespace.
func NormalizeMnemonic(phrase string) string {
	return strings.Join(strings.Fields(strings.ToLower(phrase)), " ")
}

// CreateFromMnemonic derives the sr25519 keypair for phrase at
// derivationPath. An empty path yields the bare keypair of the phrase.
func (k *Keyring) CreateFromMnemonic(phrase, derivationPath string) (ports.KeyPair, error) {
	phrase = NormalizeMnemonic(phrase)
	if !bip39.IsMnemonicValid(phrase) {
		return nil, apperror.ErrInvalidMnemonic()
	}
	if err := validateDerivationPath(derivationPath); err != nil {
		return nil, err
	}

	kr, err := subkey.DeriveKeyPair(k.scheme, phrase+derivationPath)
	if err != nil {
		return nil, apperror.ErrInvalidDerivationPath(derivationPath)
	}

	return &Keypair{
		kr:      kr,
		seed:    append([]byte(nil), kr.Seed()...),
		pub:     append([]byte(nil), kr.Public()...),
		address: ss58.Encode(kr.Public(), k.ss58Prefix),
	}, nil
}

// ValidateAddress reports whether address is a well-formed SS58 account id.
func (k *Keyring) ValidateAddress(address string) bool {
	_, _, err := ss58.Decode(address)
	return err == nil
}

// Verify checks an sr25519 signature made by address's key.
func (k *Keyring) Verify(address string, message, signature []byte) (bool, error) {
	pub, _, err := ss58.Decode(address)
	if err != nil {
		return false, apperror.ErrInvalidAddress()
	}
	if len(signature) != 64 {
		return false, nil
	}
	key, err := k.scheme.FromPublicKey(pub)
	if err != nil {
		return false, apperror.ErrInvalidAddress()
	}
	return key.Verify(message, signature), nil
}

// validateDerivationPath accepts a path such as //0//1 made only of hard
// junctions. Soft junctions and password suffixes are rejected so every
// account keeps an exportable mini-secret.
func validateDerivationPath(path string) error {
	rest := path
	for rest != "" {
		if strings.HasPrefix(rest, "///") || !strings.HasPrefix(rest, "//") {
			return apperror.ErrInvalidDerivationPath(path)
		}
		rest = rest[2:]
		end := strings.IndexByte(rest, '/')
		if end < 0 {
			end = len(rest)
		}
		if rest[:end] == "" {
			return apperror.ErrInvalidDerivationPath(path)
		}
		rest = rest[end:]
	}
	return nil
}

// Keypair is an sr25519 keypair with its SS58 address.
type Keypair struct {
	kr      subkey.KeyPair
	seed    []byte
	pub     []byte
	address string
}

func (p *Keypair) Address() string   { return p.address }
func (p *Keypair) PublicKey() []byte { return append([]byte(nil), p.pub...) }

// PublicKeyHex returns the 0x-prefixed public key.
func (p *Keypair) PublicKeyHex() string {
	return "0x" + hex.EncodeToString(p.pub)
}

// PrivateKeyHex returns the 0x-prefixed 32-byte mini-secret.
func (p *Keypair) PrivateKeyHex() string {
	return "0x" + hex.EncodeToString(p.seed)
}

// Sign produces a 64-byte sr25519 signature in the "substrate" context.
// Signatures are randomized, so two calls over the same message differ.
func (p *Keypair) Sign(message []byte) ([]byte, error) {
	if p.kr == nil {
		return nil, errKeypairWiped
	}
	return p.kr.Sign(message)
}

// Wipe zeroes the mini-secret and drops the expanded key. The keypair must
// not be used afterwards.
func (p *Keypair) Wipe() {
	wipe(p.seed)
	p.kr = nil
}

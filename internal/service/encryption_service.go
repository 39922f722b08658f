package service

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"glin-wallet/internal/core/domain"
	"glin-wallet/internal/core/ports"
	"glin-wallet/pkg/apperror"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/nacl/secretbox"
)

const (
	kdfKeyLen  = 32
	kdfSaltLen = 32
	nonceLen   = 24
)

// KDFParams are the Argon2id cost parameters shared by the vault KDF and
// the password hash.
type KDFParams struct {
	Time      uint32
	MemoryKiB uint32
	Threads   uint8
}

// DefaultKDFParams suits interactive unlocks on a desktop machine.
func DefaultKDFParams() KDFParams {
	return KDFParams{Time: 3, MemoryKiB: 64 * 1024, Threads: 2}
}

// SecretboxEncryptionService implements ports.EncryptionService with an
// Argon2id password KDF and XSalsa20-Poly1305 sealing.
type SecretboxEncryptionService struct {
	params KDFParams
	rand   io.Reader
}

// NewSecretboxEncryptionService creates the vault encryption service.
func NewSecretboxEncryptionService(params KDFParams) *SecretboxEncryptionService {
	return &SecretboxEncryptionService{params: params, rand: rand.Reader}
}

// DeriveKey stretches password with salt. A nil salt is replaced with 32
// fresh random bytes, returned as usedSalt.
func (s *SecretboxEncryptionService) DeriveKey(password string, salt []byte) ([]byte, []byte, error) {
	if salt == nil {
		salt = make([]byte, kdfSaltLen)
		if _, err := io.ReadFull(s.rand, salt); err != nil {
			return nil, nil, fmt.Errorf("generating salt: %w", err)
		}
	}
	key := argon2.IDKey([]byte(password), salt, s.params.Time, s.params.MemoryKiB, s.params.Threads, kdfKeyLen)
	return key, salt, nil
}

// Encrypt seals plaintext under a key derived from password. Salt and
// nonce are fresh for every call.
func (s *SecretboxEncryptionService) Encrypt(plaintext, password string) (domain.EncryptedSeed, error) {
	key, salt, err := s.DeriveKey(password, nil)
	if err != nil {
		return domain.EncryptedSeed{}, err
	}
	defer wipe(key)

	var nonce [nonceLen]byte
	if _, err := io.ReadFull(s.rand, nonce[:]); err != nil {
		return domain.EncryptedSeed{}, fmt.Errorf("generating nonce: %w", err)
	}

	var k [kdfKeyLen]byte
	copy(k[:], key)
	defer wipe(k[:])

	sealed := secretbox.Seal(nil, []byte(plaintext), &nonce, &k)

	return domain.EncryptedSeed{
		Ciphertext: base64.StdEncoding.EncodeToString(sealed),
		Nonce:      base64.StdEncoding.EncodeToString(nonce[:]),
		Salt:       base64.StdEncoding.EncodeToString(salt),
	}, nil
}

// Decrypt opens an encrypted blob. Any decoding problem, tampering or
// wrong password yields ok=false.
func (s *SecretboxEncryptionService) Decrypt(encrypted domain.EncryptedSeed, password string) (string, bool) {
	sealed, err := base64.StdEncoding.DecodeString(encrypted.Ciphertext)
	if err != nil || len(sealed) < secretbox.Overhead {
		return "", false
	}
	rawNonce, err := base64.StdEncoding.DecodeString(encrypted.Nonce)
	if err != nil || len(rawNonce) != nonceLen {
		return "", false
	}
	salt, err := base64.StdEncoding.DecodeString(encrypted.Salt)
	if err != nil || len(salt) == 0 {
		return "", false
	}

	key, _, err := s.DeriveKey(password, salt)
	if err != nil {
		return "", false
	}
	defer wipe(key)

	var nonce [nonceLen]byte
	copy(nonce[:], rawNonce)
	var k [kdfKeyLen]byte
	copy(k[:], key)
	defer wipe(k[:])

	plain, ok := secretbox.Open(nil, sealed, &nonce, &k)
	if !ok {
		return "", false
	}
	return string(plain), true
}

// CreateVault serializes data, encrypts it, and records a blake2b-128
// checksum of the serialized form.
func (s *SecretboxEncryptionService) CreateVault(data interface{}, password string) (*ports.Vault, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshaling vault data: %w", err)
	}

	sealed, err := s.Encrypt(string(raw), password)
	if err != nil {
		return nil, apperror.ErrEncryptionFailure(err)
	}
	envelope, err := json.Marshal(sealed)
	if err != nil {
		return nil, fmt.Errorf("marshaling vault envelope: %w", err)
	}

	return &ports.Vault{
		Vault:    base64.StdEncoding.EncodeToString(envelope),
		Checksum: vaultChecksum(raw),
	}, nil
}

// OpenVault decrypts a vault into out after checking its checksum.
func (s *SecretboxEncryptionService) OpenVault(vault *ports.Vault, password string, out interface{}) error {
	envelope, err := base64.StdEncoding.DecodeString(vault.Vault)
	if err != nil {
		return apperror.ValidationError("Malformed vault")
	}
	var sealed domain.EncryptedSeed
	if err := json.Unmarshal(envelope, &sealed); err != nil {
		return apperror.ValidationError("Malformed vault")
	}

	plain, ok := s.Decrypt(sealed, password)
	if !ok {
		return apperror.ErrIncorrectPassword()
	}
	if vaultChecksum([]byte(plain)) != vault.Checksum {
		return apperror.ErrVaultChecksum()
	}
	if err := json.Unmarshal([]byte(plain), out); err != nil {
		return fmt.Errorf("unmarshaling vault data: %w", err)
	}
	return nil
}

func vaultChecksum(raw []byte) string {
	h, _ := blake2b.New(16, nil)
	h.Write(raw)
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

package service

import (
	"encoding/base64"
	"testing"

	"glin-wallet/internal/core/domain"
	"glin-wallet/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// testKDF keeps argon2 cheap enough for property tests.
var testKDF = KDFParams{Time: 1, MemoryKiB: 64, Threads: 1}

func newTestEncryption() *SecretboxEncryptionService {
	return NewSecretboxEncryptionService(testKDF)
}

func TestEncryption_RoundTrip(t *testing.T) {
	svc := newTestEncryption()

	enc, err := svc.Encrypt("sensitive data", "pw")
	require.NoError(t, err)

	plain, ok := svc.Decrypt(enc, "pw")
	require.True(t, ok)
	assert.Equal(t, "sensitive data", plain)
}

func TestEncryption_Freshness(t *testing.T) {
	svc := newTestEncryption()

	a, err := svc.Encrypt("sensitive data", "pw")
	require.NoError(t, err)
	b, err := svc.Encrypt("sensitive data", "pw")
	require.NoError(t, err)

	assert.NotEqual(t, a.Ciphertext, b.Ciphertext)
	assert.NotEqual(t, a.Nonce, b.Nonce)
	assert.NotEqual(t, a.Salt, b.Salt)

	for _, enc := range []domain.EncryptedSeed{a, b} {
		plain, ok := svc.Decrypt(enc, "pw")
		require.True(t, ok)
		assert.Equal(t, "sensitive data", plain)
	}
}

func TestEncryption_WrongPassword(t *testing.T) {
	svc := newTestEncryption()

	enc, err := svc.Encrypt("sensitive data", "correct-horse-1")
	require.NoError(t, err)

	plain, ok := svc.Decrypt(enc, "wrong-horse")
	assert.False(t, ok)
	assert.Empty(t, plain)
}

func TestEncryption_TamperedCiphertext(t *testing.T) {
	svc := newTestEncryption()

	enc, err := svc.Encrypt("sensitive data", "pw")
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(enc.Ciphertext)
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0x01
	enc.Ciphertext = base64.StdEncoding.EncodeToString(raw)

	_, ok := svc.Decrypt(enc, "pw")
	assert.False(t, ok)
}

func TestEncryption_MalformedBlob(t *testing.T) {
	svc := newTestEncryption()

	tests := []struct {
		name string
		enc  domain.EncryptedSeed
	}{
		{"empty", domain.EncryptedSeed{}},
		{"not base64", domain.EncryptedSeed{Ciphertext: "!!", Nonce: "!!", Salt: "!!"}},
		{"short nonce", domain.EncryptedSeed{
			Ciphertext: base64.StdEncoding.EncodeToString(make([]byte, 32)),
			Nonce:      base64.StdEncoding.EncodeToString(make([]byte, 8)),
			Salt:       base64.StdEncoding.EncodeToString(make([]byte, 32)),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := svc.Decrypt(tt.enc, "pw")
			assert.False(t, ok)
		})
	}
}

func TestEncryption_DeriveKey(t *testing.T) {
	svc := newTestEncryption()

	salt := make([]byte, 32)
	k1, s1, err := svc.DeriveKey("pw", salt)
	require.NoError(t, err)
	k2, _, err := svc.DeriveKey("pw", salt)
	require.NoError(t, err)
	assert.Equal(t, k1, k2)
	assert.Equal(t, salt, s1)
	assert.Len(t, k1, 32)

	otherSalt := make([]byte, 32)
	otherSalt[0] = 1
	k3, _, err := svc.DeriveKey("pw", otherSalt)
	require.NoError(t, err)
	assert.NotEqual(t, k1, k3)

	_, fresh, err := svc.DeriveKey("pw", nil)
	require.NoError(t, err)
	assert.Len(t, fresh, 32)
}

func TestEncryption_Vault(t *testing.T) {
	svc := newTestEncryption()

	type payload struct {
		Name  string   `json:"name"`
		Words []string `json:"words"`
	}
	in := payload{Name: "backup", Words: []string{"a", "b"}}

	vault, err := svc.CreateVault(in, "pw")
	require.NoError(t, err)
	assert.NotEmpty(t, vault.Checksum)

	var out payload
	require.NoError(t, svc.OpenVault(vault, "pw", &out))
	assert.Equal(t, in, out)

	err = svc.OpenVault(vault, "nope", &out)
	assert.ErrorIs(t, err, apperror.ErrIncorrectPassword())

	vault.Checksum = "AAAAAAAAAAAAAAAAAAAAAA=="
	err = svc.OpenVault(vault, "pw", &out)
	assert.ErrorIs(t, err, apperror.ErrVaultChecksum())
}

func TestEncryption_Properties(t *testing.T) {
	svc := newTestEncryption()

	rapid.Check(t, func(t *rapid.T) {
		plaintext := rapid.String().Draw(t, "plaintext")
		pw1 := rapid.StringN(1, 32, -1).Draw(t, "pw1")
		pw2 := rapid.StringN(1, 32, -1).Filter(func(s string) bool { return s != pw1 }).Draw(t, "pw2")

		enc, err := svc.Encrypt(plaintext, pw1)
		if err != nil {
			t.Fatalf("encrypt: %v", err)
		}

		got, ok := svc.Decrypt(enc, pw1)
		if !ok || got != plaintext {
			t.Fatalf("round trip failed")
		}

		if _, ok := svc.Decrypt(enc, pw2); ok {
			t.Fatalf("decrypt succeeded with a different password")
		}
	})
}

package service

import (
	"strconv"
	"strings"
	"testing"

	"glin-wallet/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

const devPhrase = "bottom drive obey lake curtain smoke basket hold race lonely fit walk"

func newTestKeyring() *Keyring {
	return NewKeyring(42, 128)
}

func TestKeyring_GenerateAndValidate(t *testing.T) {
	k := newTestKeyring()

	phrase, err := k.Generate()
	require.NoError(t, err)
	assert.Len(t, strings.Fields(phrase), 12)
	assert.True(t, k.Validate(phrase))

	long, err := NewKeyring(42, 256).Generate()
	require.NoError(t, err)
	assert.Len(t, strings.Fields(long), 24)
	assert.True(t, k.Validate(long))
}

func TestKeyring_ValidateRejects(t *testing.T) {
	k := newTestKeyring()

	tests := []struct {
		name   string
		phrase string
	}{
		{"empty", ""},
		{"not words", "hello world"},
		{"bad checksum", "bottom drive obey lake curtain smoke basket hold race lonely fit fit"},
		{"eleven words", "bottom drive obey lake curtain smoke basket hold race lonely fit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, k.Validate(tt.phrase))
		})
	}

	assert.True(t, k.Validate("  Bottom DRIVE obey lake curtain smoke basket hold race lonely fit walk "))
}

func TestKeyring_KnownDerivation(t *testing.T) {
	k := newTestKeyring()

	alice, err := k.CreateFromMnemonic(devPhrase, "//Alice")
	require.NoError(t, err)
	assert.Equal(t, "0xd43593c715fdd31c61141abd04a99fd6822c8558854ccde39a5684e7a56da27d", alice.PublicKeyHex())
	assert.Equal(t, "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY", alice.Address())

	bare, err := k.CreateFromMnemonic(devPhrase, "")
	require.NoError(t, err)
	assert.Equal(t, "0x46ebddef8cd9bb167dc30878d7113b7e168e6f0646beffd77d69d39bad76b47a", bare.PublicKeyHex())
	assert.Equal(t, "5DfhGyQdFobKM8NsWvEeAKk5EQQgYe9AydgJ7rMB6E1EqRzV", bare.Address())
}

func TestKeyring_Determinism(t *testing.T) {
	k := newTestKeyring()

	a, err := k.CreateFromMnemonic(devPhrase, "//0//1")
	require.NoError(t, err)
	b, err := k.CreateFromMnemonic(devPhrase, "//0//1")
	require.NoError(t, err)
	assert.Equal(t, a.Address(), b.Address())
	assert.Equal(t, a.PrivateKeyHex(), b.PrivateKeyHex())

	bare, err := k.CreateFromMnemonic(devPhrase, "")
	require.NoError(t, err)
	first, err := k.CreateFromMnemonic(devPhrase, "//0//0")
	require.NoError(t, err)

	addrs := map[string]bool{a.Address(): true, bare.Address(): true, first.Address(): true}
	assert.Len(t, addrs, 3, "bare, //0//0 and //0//1 must all differ")
}

func TestKeyring_MalformedPath(t *testing.T) {
	k := newTestKeyring()

	for _, path := range []string{"/0", "//0/1", "//", "////0", "0//1", "//0///secret"} {
		_, err := k.CreateFromMnemonic(devPhrase, path)
		require.Error(t, err, path)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err), path)
	}
}

func TestKeyring_InvalidMnemonic(t *testing.T) {
	_, err := newTestKeyring().CreateFromMnemonic("not a real phrase", "")
	assert.ErrorIs(t, err, apperror.ErrInvalidMnemonic())
}

func TestKeyring_SignAndVerify(t *testing.T) {
	k := newTestKeyring()

	pair, err := k.CreateFromMnemonic(devPhrase, "//0//0")
	require.NoError(t, err)

	msg := WrapBytes("hello")
	sig, err := pair.Sign(msg)
	require.NoError(t, err)
	assert.Len(t, sig, 64)

	ok, err := k.Verify(pair.Address(), msg, sig)
	require.NoError(t, err)
	assert.True(t, ok)

	// sr25519 signing is randomized; both signatures must verify.
	again, err := pair.Sign(msg)
	require.NoError(t, err)
	assert.NotEqual(t, sig, again)
	ok, err = k.Verify(pair.Address(), msg, again)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = k.Verify(pair.Address(), WrapBytes("hellO"), sig)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = k.Verify(pair.Address(), msg, sig[:63])
	require.NoError(t, err)
	assert.False(t, ok)

	other, err := k.CreateFromMnemonic(devPhrase, "//0//1")
	require.NoError(t, err)
	ok, err = k.Verify(other.Address(), msg, sig)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = k.Verify("garbage", msg, sig)
	assert.Error(t, err)
}

func TestKeypair_Wipe(t *testing.T) {
	pair, err := newTestKeyring().CreateFromMnemonic(devPhrase, "")
	require.NoError(t, err)

	require.Len(t, pair.PrivateKeyHex(), 2+64)
	pair.Wipe()
	assert.Equal(t, "0x"+strings.Repeat("0", 64), pair.PrivateKeyHex())

	_, err = pair.Sign([]byte("after wipe"))
	assert.ErrorIs(t, err, errKeypairWiped)
}

func TestKeyring_DerivationProperties(t *testing.T) {
	k := newTestKeyring()

	rapid.Check(t, func(t *rapid.T) {
		i := rapid.IntRange(0, 1000).Draw(t, "i")
		j := rapid.IntRange(0, 1000).Filter(func(v int) bool { return v != i }).Draw(t, "j")

		w := func(n int) string { return "//0//" + strconv.Itoa(n) }

		a1, err := k.CreateFromMnemonic(devPhrase, w(i))
		if err != nil {
			t.Fatalf("derive: %v", err)
		}
		a2, _ := k.CreateFromMnemonic(devPhrase, w(i))
		b, _ := k.CreateFromMnemonic(devPhrase, w(j))

		if a1.Address() != a2.Address() {
			t.Fatalf("derivation not deterministic for %d", i)
		}
		if a1.Address() == b.Address() {
			t.Fatalf("paths %d and %d collide", i, j)
		}
	})
}

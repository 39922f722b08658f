package dto

import (
	"testing"

	"glin-wallet/pkg/ss58"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

func testAddress() string {
	pub := make([]byte, 32)
	pub[31] = 7
	return ss58.Encode(pub, 42)
}

// --- SanitizeStruct tests ---

func TestSanitizeStruct_TrimsAndEscapesTaggedFields(t *testing.T) {
	p := CreateWalletPayload{
		Name:     "  My <b>Wallet</b> ",
		Password: "  keep spaces <> ",
	}
	SanitizeStruct(&p)

	assert.Equal(t, "My &lt;b&gt;Wallet&lt;/b&gt;", p.Name)
	assert.Equal(t, "  keep spaces <> ", p.Password, "untagged secrets are untouched")
}

func TestSanitizeStruct_LeavesMnemonicAlone(t *testing.T) {
	p := ImportWalletPayload{Name: " a ", Mnemonic: " word word ", Password: "x"}
	SanitizeStruct(&p)

	assert.Equal(t, "a", p.Name)
	assert.Equal(t, " word word ", p.Mnemonic)
}

func TestSanitizeStruct_NonPointerIsNoOp(t *testing.T) {
	s := "hello"
	SanitizeStruct(s) // should not panic
	SanitizeStruct(&s)
}

// --- Custom validator tests ---

func TestValidator_SS58(t *testing.T) {
	assert.NoError(t, binding.Validator.ValidateStruct(&SwitchAccountPayload{Address: testAddress()}))

	for _, bad := range []string{"", "not-an-address", "0x1234", testAddress() + "x"} {
		assert.Error(t, binding.Validator.ValidateStruct(&SwitchAccountPayload{Address: bad}), bad)
	}
}

func TestValidator_Planck(t *testing.T) {
	valid := []string{"1", "1000000000000000000", "340282366920938463463374607431768211455"}
	for _, v := range valid {
		assert.NoError(t, binding.Validator.ValidateStruct(&EstimateFeePayload{To: testAddress(), Amount: v}), v)
	}

	invalid := []string{
		"",
		"-1",
		"1.5",
		"1e18",
		" 10",
		"0x10",
		"340282366920938463463374607431768211456", // u128 max + 1
	}
	for _, v := range invalid {
		assert.Error(t, binding.Validator.ValidateStruct(&EstimateFeePayload{To: testAddress(), Amount: v}), v)
	}
}

func TestValidator_NetworkAndEndpoint(t *testing.T) {
	assert.NoError(t, binding.Validator.ValidateStruct(&ChangeNetworkPayload{NetworkID: "testnet"}))
	assert.NoError(t, binding.Validator.ValidateStruct(&ChangeNetworkPayload{NetworkID: "custom", Endpoint: "wss://node.example:443"}))

	assert.Error(t, binding.Validator.ValidateStruct(&ChangeNetworkPayload{NetworkID: "devnet"}))
	assert.Error(t, binding.Validator.ValidateStruct(&ChangeNetworkPayload{NetworkID: "custom"}), "custom needs an endpoint")
	assert.Error(t, binding.Validator.ValidateStruct(&ChangeNetworkPayload{NetworkID: "custom", Endpoint: "https://node.example"}))
}

func TestValidator_Theme(t *testing.T) {
	assert.NoError(t, binding.Validator.ValidateStruct(&SetThemePayload{Theme: "light"}))
	assert.NoError(t, binding.Validator.ValidateStruct(&SetThemePayload{Theme: "dark"}))
	assert.Error(t, binding.Validator.ValidateStruct(&SetThemePayload{Theme: "solarized"}))
}

func TestValidator_SafeURL(t *testing.T) {
	cases := map[string]bool{
		"":                              true,
		"https://dapp.example/icon.png": true,
		"http://localhost:3000/i.svg":   true,
		"data:image/png;base64,AAAA":    true,
		"javascript:alert(1)":           false,
		"ftp://files.example/icon.png":  false,
	}
	for icon, ok := range cases {
		err := binding.Validator.ValidateStruct(&RequestConnectionPayload{AppIcon: icon})
		if ok {
			assert.NoError(t, err, icon)
		} else {
			assert.Error(t, err, icon)
		}
	}
}

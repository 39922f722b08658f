package domain

// Network ids understood by CHANGE_NETWORK.
const (
	NetworkMainnet   = "mainnet"
	NetworkTestnet   = "testnet"
	NetworkLocalhost = "localhost"
	NetworkCustom    = "custom"
)

// Network is a selectable chain endpoint.
type Network struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Endpoint string `json:"endpoint"`
}

// Theme is the UI colour scheme preference.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// DefaultTheme applies when no preference was stored.
const DefaultTheme = ThemeDark

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool {
	return t == ThemeDark || t == ThemeLight
}

// Event names published to UI and provider subscribers.
const (
	EventAccountsChanged    = "accountsChanged"
	EventChainChanged       = "chainChanged"
	EventDisconnect         = "disconnect"
	EventLocked             = "locked"
	EventApprovalRequested  = "approvalRequested"
	EventApprovalClosed     = "approvalClosed"
	EventTransactionUpdated = "transactionUpdated"
)

// Event is one notification fanned out to subscribers. An empty Origin
// addresses every subscriber; otherwise only that dapp origin receives it.
type Event struct {
	Name   string      `json:"event"`
	Origin string      `json:"origin,omitempty"`
	Data   interface{} `json:"data,omitempty"`
}

package domain

import (
	"encoding/json"
	"math/big"
	"time"

	"github.com/google/uuid"
)

// ConnectionStatus of the chain client.
type ConnectionStatus string

const (
	ConnectionDisconnected ConnectionStatus = "disconnected"
	ConnectionConnecting   ConnectionStatus = "connecting"
	ConnectionConnected    ConnectionStatus = "connected"
	ConnectionError        ConnectionStatus = "error"
)

// ConnectedSite is a dapp origin the user has authorized.
type ConnectedSite struct {
	Origin      string    `json:"origin"`
	AppName     string    `json:"appName"`
	AppIcon     string    `json:"appIcon,omitempty"`
	ConnectedAt time.Time `json:"connectedAt"`
}

// PendingRequestInfo is the public part of an outstanding connection approval.
type PendingRequestInfo struct {
	ID        uuid.UUID `json:"id"`
	Origin    string    `json:"origin"`
	AppName   string    `json:"appName"`
	AppIcon   string    `json:"appIcon,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	WindowID  string    `json:"windowId,omitempty"`
}

// ConnectionResult resolves REQUEST_CONNECTION.
type ConnectionResult struct {
	Approved bool             `json:"approved"`
	Accounts []AccountSummary `json:"accounts"`
}

// WalletState is the GET_STATE snapshot. It never contains a balance so
// building it never touches the network.
type WalletState struct {
	Initialized         bool             `json:"initialized"`
	Locked              bool             `json:"locked"`
	ConnectionStatus    ConnectionStatus `json:"connectionStatus"`
	LastConnectionError string           `json:"lastConnectionError,omitempty"`
	CurrentAccount      *AccountSummary  `json:"currentAccount,omitempty"`
	ConnectedSites      []ConnectedSite  `json:"connectedSites"`
	Network             string           `json:"network"`
}

// Balance of an account in planck.
type Balance struct {
	Free     *big.Int
	Reserved *big.Int
	Frozen   *big.Int
}

// ZeroBalance is the balance of an account with no on-chain record.
func ZeroBalance() Balance {
	return Balance{Free: new(big.Int), Reserved: new(big.Int), Frozen: new(big.Int)}
}

// Total is free plus reserved.
func (b Balance) Total() *big.Int {
	return new(big.Int).Add(orZero(b.Free), orZero(b.Reserved))
}

// Transferable is free minus frozen, floored at zero.
func (b Balance) Transferable() *big.Int {
	t := new(big.Int).Sub(orZero(b.Free), orZero(b.Frozen))
	if t.Sign() < 0 {
		return new(big.Int)
	}
	return t
}

func (b Balance) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{
		"free":         orZero(b.Free).String(),
		"reserved":     orZero(b.Reserved).String(),
		"frozen":       orZero(b.Frozen).String(),
		"total":        b.Total().String(),
		"transferable": b.Transferable().String(),
	})
}

func orZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}

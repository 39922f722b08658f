package dto

import (
	"encoding/json"
	"sort"
)

// MessageType names one operation carried by the message channel.
type MessageType string

// Wallet lifecycle.
const (
	CreateWallet    MessageType = "CREATE_WALLET"
	ImportWallet    MessageType = "IMPORT_WALLET"
	UnlockWallet    MessageType = "UNLOCK_WALLET"
	LockWallet      MessageType = "LOCK_WALLET"
	DeleteWallet    MessageType = "DELETE_WALLET"
	ExportSeed      MessageType = "EXPORT_SEED"
	GetWallets      MessageType = "GET_WALLETS"
	SwitchWallet    MessageType = "SWITCH_WALLET"
	GetWalletStatus MessageType = "GET_WALLET_STATUS"
	ChangePassword  MessageType = "CHANGE_PASSWORD"
)

// Accounts and signing.
const (
	GetAccounts   MessageType = "GET_ACCOUNTS"
	CreateAccount MessageType = "CREATE_ACCOUNT"
	SwitchAccount MessageType = "SWITCH_ACCOUNT"
	RenameAccount MessageType = "RENAME_ACCOUNT"
	ExportAccount MessageType = "EXPORT_ACCOUNT"
	SignMessage   MessageType = "SIGN_MESSAGE"
)

// Transactions.
const (
	GetBalance            MessageType = "GET_BALANCE"
	SendTransaction       MessageType = "SEND_TRANSACTION"
	EstimateFee           MessageType = "ESTIMATE_FEE"
	GetTransactionHistory MessageType = "GET_TRANSACTION_HISTORY"
	SubscribeTransactions MessageType = "SUBSCRIBE_TRANSACTIONS"
	AuthenticateBackend   MessageType = "AUTHENTICATE_BACKEND"
)

// Dapp connections.
const (
	RequestConnection    MessageType = "REQUEST_CONNECTION"
	ApproveConnection    MessageType = "APPROVE_CONNECTION"
	RejectConnection     MessageType = "REJECT_CONNECTION"
	GetPendingRequest    MessageType = "GET_PENDING_REQUEST"
	ApprovalWindowClosed MessageType = "APPROVAL_WINDOW_CLOSED"
	DisconnectSite       MessageType = "DISCONNECT_SITE"
	GetConnectedSites    MessageType = "GET_CONNECTED_SITES"
)

// Settings and state.
const (
	ChangeNetwork MessageType = "CHANGE_NETWORK"
	GetNetwork    MessageType = "GET_NETWORK"
	SetTheme      MessageType = "SET_THEME"
	GetTheme      MessageType = "GET_THEME"
	GetState      MessageType = "GET_STATE"
)

// Request is the envelope every caller posts. Payload is decoded into the
// typed body registered for Type by DecodePayload.
type Request struct {
	ID        string          `json:"id" binding:"required,max=128"`
	Type      MessageType     `json:"type" binding:"required"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"timestamp"`
	Origin    string          `json:"origin,omitempty"`
}

// AllTypes lists every message type with a registered payload, sorted.
func AllTypes() []MessageType {
	types := make([]MessageType, 0, len(payloadFactories))
	for t := range payloadFactories {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// Known reports whether t is a registered message type.
func Known(t MessageType) bool {
	_, ok := payloadFactories[t]
	return ok
}

// ---- Response bodies ----

type SuccessResponse struct {
	Success bool `json:"success"`
}

type SeedPhraseResponse struct {
	SeedPhrase string `json:"seedPhrase"`
}

type AccountResponse struct {
	Account interface{} `json:"account"`
}

type BalanceResponse struct {
	Address string      `json:"address"`
	Balance interface{} `json:"balance"`
}

type HashResponse struct {
	Hash string `json:"hash"`
}

type FeeResponse struct {
	Fee string `json:"fee"`
}

type TransactionsResponse struct {
	Transactions interface{} `json:"transactions"`
}

type SitesResponse struct {
	Sites interface{} `json:"sites"`
}

type NetworkResponse struct {
	Success  bool   `json:"success,omitempty"`
	Network  string `json:"network"`
	Name     string `json:"name"`
	Endpoint string `json:"endpoint"`
}

type ThemeResponse struct {
	Success bool   `json:"success,omitempty"`
	Theme   string `json:"theme"`
}

type SubscriptionResponse struct {
	SubscriptionID string `json:"subscriptionId"`
	Address        string `json:"address,omitempty"`
}

package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"

	"glin-wallet/pkg/apperror"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Payload is implemented by every typed request body. Dispatch switches on
// the concrete type.
type Payload interface {
	MessageType() MessageType
}

type CreateWalletPayload struct {
	Name     string `json:"name" binding:"required,max=64" sanitize:"html"`
	Password string `json:"password" binding:"required,min=8,max=256"`
}

type ImportWalletPayload struct {
	Name     string `json:"name" binding:"required,max=64" sanitize:"html"`
	Mnemonic string `json:"mnemonic" binding:"required,max=512"`
	Password string `json:"password" binding:"required,min=8,max=256"`
}

type UnlockWalletPayload struct {
	WalletID string `json:"walletId" binding:"required,uuid"`
	Password string `json:"password" binding:"required,max=256"`
}

type LockWalletPayload struct{}

type DeleteWalletPayload struct {
	WalletID string `json:"walletId" binding:"required,uuid"`
	Password string `json:"password" binding:"required,max=256"`
}

type ExportSeedPayload struct {
	Password string `json:"password" binding:"required,max=256"`
}

type GetWalletsPayload struct{}

type SwitchWalletPayload struct {
	WalletID string `json:"walletId" binding:"required,uuid"`
	Password string `json:"password" binding:"required,max=256"`
}

type GetWalletStatusPayload struct{}

type ChangePasswordPayload struct {
	CurrentPassword string `json:"currentPassword" binding:"required,max=256"`
	NewPassword     string `json:"newPassword" binding:"required,min=8,max=256"`
}

type GetAccountsPayload struct{}

// CreateAccountPayload derives a new account. A nil Index picks the next
// free one; an empty WalletID means the unlocked wallet.
type CreateAccountPayload struct {
	WalletID string `json:"walletId,omitempty" binding:"omitempty,uuid"`
	Index    *int   `json:"index,omitempty" binding:"omitempty,min=0,max=2147483647"`
	Name     string `json:"name,omitempty" binding:"max=64" sanitize:"html"`
}

type SwitchAccountPayload struct {
	Address string `json:"address" binding:"required,ss58"`
}

type RenameAccountPayload struct {
	Address string `json:"address" binding:"required,ss58"`
	Name    string `json:"name" binding:"required,max=64" sanitize:"html"`
}

type ExportAccountPayload struct {
	Address  string `json:"address" binding:"required,ss58"`
	Password string `json:"password" binding:"required,max=256"`
}

type SignMessagePayload struct {
	Message string `json:"message" binding:"required,max=65536"`
}

type GetBalancePayload struct {
	Address string `json:"address,omitempty" binding:"omitempty,ss58"`
}

type SendTransactionPayload struct {
	To     string `json:"to" binding:"required,ss58"`
	Amount string `json:"amount" binding:"required,planck"`
}

type EstimateFeePayload struct {
	To     string `json:"to" binding:"required,ss58"`
	Amount string `json:"amount" binding:"required,planck"`
}

type GetTransactionHistoryPayload struct {
	Address string `json:"address,omitempty" binding:"omitempty,ss58"`
	Limit   int    `json:"limit,omitempty" binding:"min=0,max=500"`
	Offset  int    `json:"offset,omitempty" binding:"min=0"`
}

type SubscribeTransactionsPayload struct {
	Address string `json:"address,omitempty" binding:"omitempty,ss58"`
}

type AuthenticateBackendPayload struct{}

// RequestConnectionPayload carries the page's self-description. Origin is
// only honoured on the extension surface; dapp requests use the transport
// origin.
type RequestConnectionPayload struct {
	Origin  string `json:"origin,omitempty" binding:"omitempty,max=256"`
	AppName string `json:"appName,omitempty" binding:"max=128" sanitize:"html"`
	AppIcon string `json:"appIcon,omitempty" binding:"omitempty,max=4096,safe_url"`
}

type ApproveConnectionPayload struct {
	RequestID string `json:"requestId" binding:"required,uuid"`
}

type RejectConnectionPayload struct {
	RequestID string `json:"requestId" binding:"required,uuid"`
	Reason    string `json:"reason,omitempty" binding:"max=256" sanitize:"html"`
}

type GetPendingRequestPayload struct {
	RequestID string `json:"requestId" binding:"required,uuid"`
}

type ApprovalWindowClosedPayload struct {
	WindowID string `json:"windowId" binding:"required,max=128"`
}

type DisconnectSitePayload struct {
	Origin string `json:"origin" binding:"required,max=256"`
}

type GetConnectedSitesPayload struct{}

type ChangeNetworkPayload struct {
	NetworkID string `json:"networkId" binding:"required,network_id"`
	Endpoint  string `json:"endpoint,omitempty" binding:"required_if=NetworkID custom,omitempty,ws_url"`
}

type GetNetworkPayload struct{}

type SetThemePayload struct {
	Theme string `json:"theme" binding:"required,theme"`
}

type GetThemePayload struct{}

type GetStatePayload struct{}

func (*CreateWalletPayload) MessageType() MessageType          { return CreateWallet }
func (*ImportWalletPayload) MessageType() MessageType          { return ImportWallet }
func (*UnlockWalletPayload) MessageType() MessageType          { return UnlockWallet }
func (*LockWalletPayload) MessageType() MessageType            { return LockWallet }
func (*DeleteWalletPayload) MessageType() MessageType          { return DeleteWallet }
func (*ExportSeedPayload) MessageType() MessageType            { return ExportSeed }
func (*GetWalletsPayload) MessageType() MessageType            { return GetWallets }
func (*SwitchWalletPayload) MessageType() MessageType          { return SwitchWallet }
func (*GetWalletStatusPayload) MessageType() MessageType       { return GetWalletStatus }
func (*ChangePasswordPayload) MessageType() MessageType        { return ChangePassword }
func (*GetAccountsPayload) MessageType() MessageType           { return GetAccounts }
func (*CreateAccountPayload) MessageType() MessageType         { return CreateAccount }
func (*SwitchAccountPayload) MessageType() MessageType         { return SwitchAccount }
func (*RenameAccountPayload) MessageType() MessageType         { return RenameAccount }
func (*ExportAccountPayload) MessageType() MessageType         { return ExportAccount }
func (*SignMessagePayload) MessageType() MessageType           { return SignMessage }
func (*GetBalancePayload) MessageType() MessageType            { return GetBalance }
func (*SendTransactionPayload) MessageType() MessageType       { return SendTransaction }
func (*EstimateFeePayload) MessageType() MessageType           { return EstimateFee }
func (*GetTransactionHistoryPayload) MessageType() MessageType { return GetTransactionHistory }
func (*SubscribeTransactionsPayload) MessageType() MessageType { return SubscribeTransactions }
func (*AuthenticateBackendPayload) MessageType() MessageType   { return AuthenticateBackend }
func (*RequestConnectionPayload) MessageType() MessageType     { return RequestConnection }
func (*ApproveConnectionPayload) MessageType() MessageType     { return ApproveConnection }
func (*RejectConnectionPayload) MessageType() MessageType      { return RejectConnection }
func (*GetPendingRequestPayload) MessageType() MessageType     { return GetPendingRequest }
func (*ApprovalWindowClosedPayload) MessageType() MessageType  { return ApprovalWindowClosed }
func (*DisconnectSitePayload) MessageType() MessageType        { return DisconnectSite }
func (*GetConnectedSitesPayload) MessageType() MessageType     { return GetConnectedSites }
func (*ChangeNetworkPayload) MessageType() MessageType         { return ChangeNetwork }
func (*GetNetworkPayload) MessageType() MessageType            { return GetNetwork }
func (*SetThemePayload) MessageType() MessageType              { return SetTheme }
func (*GetThemePayload) MessageType() MessageType              { return GetTheme }
func (*GetStatePayload) MessageType() MessageType              { return GetState }

var payloadFactories = map[MessageType]func() Payload{
	CreateWallet:          func() Payload { return &CreateWalletPayload{} },
	ImportWallet:          func() Payload { return &ImportWalletPayload{} },
	UnlockWallet:          func() Payload { return &UnlockWalletPayload{} },
	LockWallet:            func() Payload { return &LockWalletPayload{} },
	DeleteWallet:          func() Payload { return &DeleteWalletPayload{} },
	ExportSeed:            func() Payload { return &ExportSeedPayload{} },
	GetWallets:            func() Payload { return &GetWalletsPayload{} },
	SwitchWallet:          func() Payload { return &SwitchWalletPayload{} },
	GetWalletStatus:       func() Payload { return &GetWalletStatusPayload{} },
	ChangePassword:        func() Payload { return &ChangePasswordPayload{} },
	GetAccounts:           func() Payload { return &GetAccountsPayload{} },
	CreateAccount:         func() Payload { return &CreateAccountPayload{} },
	SwitchAccount:         func() Payload { return &SwitchAccountPayload{} },
	RenameAccount:         func() Payload { return &RenameAccountPayload{} },
	ExportAccount:         func() Payload { return &ExportAccountPayload{} },
	SignMessage:           func() Payload { return &SignMessagePayload{} },
	GetBalance:            func() Payload { return &GetBalancePayload{} },
	SendTransaction:       func() Payload { return &SendTransactionPayload{} },
	EstimateFee:           func() Payload { return &EstimateFeePayload{} },
	GetTransactionHistory: func() Payload { return &GetTransactionHistoryPayload{} },
	SubscribeTransactions: func() Payload { return &SubscribeTransactionsPayload{} },
	AuthenticateBackend:   func() Payload { return &AuthenticateBackendPayload{} },
	RequestConnection:     func() Payload { return &RequestConnectionPayload{} },
	ApproveConnection:     func() Payload { return &ApproveConnectionPayload{} },
	RejectConnection:      func() Payload { return &RejectConnectionPayload{} },
	GetPendingRequest:     func() Payload { return &GetPendingRequestPayload{} },
	ApprovalWindowClosed:  func() Payload { return &ApprovalWindowClosedPayload{} },
	DisconnectSite:        func() Payload { return &DisconnectSitePayload{} },
	GetConnectedSites:     func() Payload { return &GetConnectedSitesPayload{} },
	ChangeNetwork:         func() Payload { return &ChangeNetworkPayload{} },
	GetNetwork:            func() Payload { return &GetNetworkPayload{} },
	SetTheme:              func() Payload { return &SetThemePayload{} },
	GetTheme:              func() Payload { return &GetThemePayload{} },
	GetState:              func() Payload { return &GetStatePayload{} },
}

// DecodePayload decodes and validates the body of req into its typed
// payload. Unknown fields are rejected.
func DecodePayload(req Request) (Payload, error) {
	factory, ok := payloadFactories[req.Type]
	if !ok {
		return nil, apperror.ErrUnknownMessageType(string(req.Type))
	}
	p := factory()

	raw := bytes.TrimSpace(req.Payload)
	if len(raw) > 0 && !bytes.Equal(raw, []byte("null")) {
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		if err := dec.Decode(p); err != nil {
			return nil, apperror.ValidationError(fmt.Sprintf("Malformed %s payload", req.Type))
		}
	}

	if err := binding.Validator.ValidateStruct(p); err != nil {
		return nil, describeValidation(err)
	}
	SanitizeStruct(p)
	return p, nil
}

// describeValidation maps the first failed rule to a caller-facing error.
func describeValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperror.ValidationError("Invalid payload")
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "ss58":
		return apperror.ErrInvalidAddress()
	case "planck":
		return apperror.ErrInvalidAmount()
	case "network_id":
		return apperror.ErrUnknownNetwork(fmt.Sprint(fe.Value()))
	case "required", "required_if":
		return apperror.ValidationError(fmt.Sprintf("%s is required", fe.Field()))
	}
	return apperror.ValidationError(fmt.Sprintf("Invalid %s", fe.Field()))
}

// ParseAmount converts a validated planck string.
func ParseAmount(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok || v.Sign() <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}
	return v, nil
}

// ParseID converts a validated uuid field; empty yields uuid.Nil.
func ParseID(s string) uuid.UUID {
	if s == "" {
		return uuid.Nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil
	}
	return id
}

package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an AppError so callers can tell a wrong password from
// corrupted data or an unreachable node without parsing messages.
type Kind string

const (
	KindValidation     Kind = "validation"
	KindAuthentication Kind = "authentication"
	KindIntegrity      Kind = "integrity"
	KindPrecondition   Kind = "precondition"
	KindNotFound       Kind = "not_found"
	KindForbidden      Kind = "forbidden"
	KindNetwork        Kind = "network"
	KindTimeout        Kind = "timeout"
	KindRateLimited    Kind = "rate_limited"
	KindInternal       Kind = "internal"
)

// AppError is a structured error that crosses the message boundary.
// Only Code and Message are ever shown to a caller.
type AppError struct {
	Code       string `json:"code"`
	Kind       Kind   `json:"kind"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches on Code so sentinel-style comparisons work with errors.Is.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// New creates a new AppError.
func New(code string, kind Kind, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Kind:       kind,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, kind Kind, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Kind:       kind,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// As returns the AppError inside err, if any.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// KindOf reports the Kind of err, treating foreign errors as internal.
func KindOf(err error) Kind {
	if appErr, ok := As(err); ok {
		return appErr.Kind
	}
	return KindInternal
}

// ---- Validation (VAL) ----

func ValidationError(message string) *AppError {
	return New("VAL_001", KindValidation, message, http.StatusBadRequest)
}

func ErrInvalidMnemonic() *AppError {
	return New("VAL_002", KindValidation, "Invalid mnemonic phrase", http.StatusBadRequest)
}

func ErrInvalidAddress() *AppError {
	return New("VAL_003", KindValidation, "Invalid address", http.StatusBadRequest)
}

func ErrInvalidAmount() *AppError {
	return New("VAL_004", KindValidation, "Invalid amount", http.StatusBadRequest)
}

func ErrInvalidDerivationPath(path string) *AppError {
	return New("VAL_005", KindValidation, fmt.Sprintf("Invalid derivation path %q", path), http.StatusBadRequest)
}

func ErrUnknownMessageType(t string) *AppError {
	return New("VAL_006", KindValidation, fmt.Sprintf("Unknown message type: %s", t), http.StatusBadRequest)
}

func ErrUnknownNetwork(id string) *AppError {
	return New("VAL_007", KindValidation, fmt.Sprintf("Unknown network: %s", id), http.StatusBadRequest)
}

// ---- Authentication (AUTH) ----

func ErrIncorrectPassword() *AppError {
	return New("AUTH_001", KindAuthentication, "Incorrect password", http.StatusUnauthorized)
}

func ErrBackendAuthFailed(err error) *AppError {
	return Wrap("AUTH_002", KindAuthentication, "Backend authentication failed", http.StatusUnauthorized, err)
}

func ErrInvalidExtensionToken() *AppError {
	return New("AUTH_003", KindAuthentication, "Invalid extension token", http.StatusUnauthorized)
}

// ---- Integrity (INT) ----

// ErrIntegrity reports a re-derived address that differs from the stored one.
func ErrIntegrity(expected, derived string) *AppError {
	return New("INT_001", KindIntegrity,
		fmt.Sprintf("Derived address %s does not match stored address %s", derived, expected),
		http.StatusConflict)
}

func ErrVaultChecksum() *AppError {
	return New("INT_002", KindIntegrity, "Vault checksum mismatch", http.StatusConflict)
}

// ---- Preconditions (PRE) ----

func ErrNotInitialized() *AppError {
	return New("PRE_001", KindPrecondition, "Wallet manager not initialized", http.StatusServiceUnavailable)
}

func ErrWalletLocked() *AppError {
	return New("PRE_002", KindPrecondition, "Wallet is locked. Please unlock wallet first.", http.StatusPreconditionFailed)
}

func ErrNoWalletSelected() *AppError {
	return New("PRE_003", KindPrecondition, "No wallet selected", http.StatusPreconditionFailed)
}

func ErrNoWalletUnlocked() *AppError {
	return New("PRE_004", KindPrecondition, "No wallet unlocked", http.StatusPreconditionFailed)
}

func ErrNoWalletFound() *AppError {
	return New("PRE_005", KindPrecondition, "No wallet found", http.StatusPreconditionFailed)
}

func ErrNoAccounts() *AppError {
	return New("PRE_006", KindPrecondition, "No accounts found for wallet", http.StatusPreconditionFailed)
}

func ErrAccountExists() *AppError {
	return New("PRE_007", KindPrecondition, "Account already exists", http.StatusConflict)
}

// ---- Not found (NF) ----

func ErrWalletNotFound() *AppError {
	return New("NF_001", KindNotFound, "Wallet not found", http.StatusNotFound)
}

func ErrAccountNotFound() *AppError {
	return New("NF_002", KindNotFound, "Account not found", http.StatusNotFound)
}

func ErrRequestNotFound() *AppError {
	return New("NF_003", KindNotFound, "Request not found", http.StatusNotFound)
}

func ErrNotFound(entity string) *AppError {
	return New("NF_004", KindNotFound, fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

// ---- Dapp policy (DAPP) ----

func ErrForbiddenForDapp(t string) *AppError {
	return New("DAPP_001", KindForbidden, fmt.Sprintf("Message type %s is not available to dapps", t), http.StatusForbidden)
}

func ErrSiteNotConnected() *AppError {
	return New("DAPP_002", KindForbidden, "Site is not connected", http.StatusForbidden)
}

func ErrUserRejected(reason string) *AppError {
	if reason == "" {
		reason = "User rejected"
	}
	return New("DAPP_003", KindForbidden, reason, http.StatusForbidden)
}

// ErrRequestExpired answers a connection request nobody approved in time.
// It is a rejection, not a transport timeout.
func ErrRequestExpired() *AppError {
	return ErrUserRejected("Connection request expired")
}

func ErrRequestReplayed() *AppError {
	return New("DAPP_004", KindForbidden, "Request id has already been used", http.StatusConflict)
}

// ---- Network (NET) ----

func ErrNetworkUnavailable(err error) *AppError {
	msg := "Network connection failed"
	if err != nil {
		msg = fmt.Sprintf("Network connection failed: %v", err)
	}
	return Wrap("NET_001", KindNetwork, msg, http.StatusServiceUnavailable, err)
}

func ErrChainRequest(err error) *AppError {
	return Wrap("NET_002", KindNetwork, fmt.Sprintf("Chain request failed: %v", err), http.StatusBadGateway, err)
}

func ErrBackendRequest(message string, err error) *AppError {
	return Wrap("NET_003", KindNetwork, message, http.StatusBadGateway, err)
}

// ---- Timeout (TIME) ----

func ErrTimeout(messageType string) *AppError {
	return New("TIME_001", KindTimeout, fmt.Sprintf("Request timeout: %s", messageType), http.StatusGatewayTimeout)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", KindRateLimited, "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", KindInternal, "Internal database error", http.StatusInternalServerError, err)
}

func ErrEncryptionFailure(err error) *AppError {
	return Wrap("SYS_002", KindInternal, "Encryption service failure", http.StatusInternalServerError, err)
}

// InternalError wraps an internal error as a SYS_000 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_000", KindInternal, "Internal error", http.StatusInternalServerError, err)
}

package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	bytesOpen  = "<Bytes>"
	bytesClose = "</Bytes>"
)

// HMACSignatureService implements ports.SignatureService using HMAC-SHA256.
// The extension popup and walletctl sign every request with the shared
// extension token.
type HMACSignatureService struct{}

// NewHMACSignatureService creates a new HMAC-SHA256 signature service.
func NewHMACSignatureService() *HMACSignatureService {
	return &HMACSignatureService{}
}

// Sign computes HMAC-SHA256 of payload using secretKey.
// Returns lowercase hex-encoded signature.
func (s *HMACSignatureService) Sign(secretKey string, payload string) string {
	mac := hmac.New(sha256.New, []byte(secretKey))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify checks if signature matches HMAC-SHA256(secretKey, payload) in
// constant time.
func (s *HMACSignatureService) Verify(secretKey string, payload string, signature string) bool {
	if secretKey == "" {
		return false
	}
	expected := s.Sign(secretKey, payload)
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(signature)))
}

// BuildCanonicalString constructs the canonical payload for signing.
// Format: METHOD|PATH|TIMESTAMP|NONCE|BODY
func (s *HMACSignatureService) BuildCanonicalString(method, path string, timestamp int64, nonce string, body string) string {
	return fmt.Sprintf("%s|%s|%d|%s|%s", strings.ToUpper(method), path, timestamp, nonce, body)
}

// WrapBytes frames message in the <Bytes>...</Bytes> envelope that
// Substrate tooling expects around signed text. Already wrapped input is
// returned unchanged.
func WrapBytes(message string) []byte {
	if IsWrapped(message) {
		return []byte(message)
	}
	return []byte(bytesOpen + message + bytesClose)
}

// UnwrapBytes strips one <Bytes> envelope if present.
func UnwrapBytes(message string) string {
	if IsWrapped(message) {
		return message[len(bytesOpen) : len(message)-len(bytesClose)]
	}
	return message
}

// IsWrapped reports whether message already carries the envelope.
func IsWrapped(message string) bool {
	return strings.HasPrefix(message, bytesOpen) && strings.HasSuffix(message, bytesClose) &&
		len(message) >= len(bytesOpen)+len(bytesClose)
}

// EncodeHex renders b as 0x-prefixed lowercase hex.
func EncodeHex(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}

// DecodeHex parses hex with or without a 0x prefix.
func DecodeHex(s string) ([]byte, error) {
	return hex.DecodeString(strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X"))
}

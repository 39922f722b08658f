// Package ss58 encodes and decodes Substrate SS58 account addresses.
package ss58

import (
	"errors"
	"fmt"

	subkey "github.com/vedhavyas/go-subkey/v2"
)

// ErrInvalid is wrapped by every Decode failure.
var ErrInvalid = errors.New("invalid ss58 address")

// Encode renders a 32-byte public key as an SS58 address.
func Encode(pub []byte, prefix uint16) string {
	return subkey.SS58Encode(pub, prefix)
}

// Decode returns the public key and network prefix of an address.
// Only 32-byte account ids are accepted.
func Decode(address string) ([]byte, uint16, error) {
	if address == "" {
		return nil, 0, ErrInvalid
	}
	prefix, pub, err := subkey.SS58Decode(address)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if len(pub) != 32 {
		return nil, 0, fmt.Errorf("%w: unexpected length %d", ErrInvalid, len(pub))
	}
	return append([]byte(nil), pub...), prefix, nil
}

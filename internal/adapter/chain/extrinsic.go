package chain

import (
	"fmt"
	"math/big"

	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"golang.org/x/crypto/blake2b"
)

const (
	extrinsicVersionSigned = 0x84 // version 4, signed bit set
	multiSignatureSr25519  = 0x01
	metadataHashDisabled   = 0x00
	optionNone             = 0x00

	// Signing payloads longer than this are hashed before signing.
	maxUnhashedPayload = 256
)

// runtimeInfo is the chain state every signed extrinsic commits to.
type runtimeInfo struct {
	genesisHash        [32]byte
	specVersion        uint32
	transactionVersion uint32
}

func accountAddress(pub []byte) (types.MultiAddress, error) {
	addr, err := types.NewMultiAddressFromAccountID(pub)
	if err != nil {
		return types.MultiAddress{}, fmt.Errorf("account id: %w", err)
	}
	return addr, nil
}

// transferCall encodes Balances.transfer_keep_alive(dest, value).
func transferCall(callIndex [2]byte, dest []byte, amount *big.Int) ([]byte, error) {
	addr, err := accountAddress(dest)
	if err != nil {
		return nil, err
	}
	var buf scaleBuf
	buf.raw(callIndex[:])
	buf.put(addr)
	buf.put(compact(amount))
	return buf.bytes()
}

// signedExtensions are the extra fields carried in the extrinsic body:
// era, nonce, tip and optionally the metadata-hash mode.
type signedExtensions struct {
	nonce             uint64
	checkMetadataHash bool
}

func (s signedExtensions) extra() ([]byte, error) {
	var buf scaleBuf
	buf.put(types.ExtrinsicEra{IsImmortalEra: true})
	buf.put(compactUint(s.nonce))
	buf.put(compactUint(0)) // tip
	if s.checkMetadataHash {
		buf.raw([]byte{metadataHashDisabled})
	}
	return buf.bytes()
}

// additionalSigned is signed over but not transmitted. An immortal era
// checkpoints at genesis.
func (s signedExtensions) additionalSigned(rt runtimeInfo) ([]byte, error) {
	var buf scaleBuf
	buf.put(types.NewU32(rt.specVersion))
	buf.put(types.NewU32(rt.transactionVersion))
	buf.put(types.NewHash(rt.genesisHash[:]))
	buf.put(types.NewHash(rt.genesisHash[:]))
	if s.checkMetadataHash {
		buf.raw([]byte{optionNone})
	}
	return buf.bytes()
}

// signingPayload is what the account key signs.
func signingPayload(call []byte, ext signedExtensions, rt runtimeInfo) ([]byte, error) {
	extra, err := ext.extra()
	if err != nil {
		return nil, err
	}
	additional, err := ext.additionalSigned(rt)
	if err != nil {
		return nil, err
	}
	payload := make([]byte, 0, len(call)+len(extra)+len(additional))
	payload = append(payload, call...)
	payload = append(payload, extra...)
	payload = append(payload, additional...)
	if len(payload) > maxUnhashedPayload {
		sum := blake2b.Sum256(payload)
		return sum[:], nil
	}
	return payload, nil
}

// encodeExtrinsic assembles a length-prefixed signed extrinsic carrying an
// sr25519 signature.
func encodeExtrinsic(signer, signature, call []byte, ext signedExtensions) ([]byte, error) {
	addr, err := accountAddress(signer)
	if err != nil {
		return nil, err
	}
	extra, err := ext.extra()
	if err != nil {
		return nil, err
	}

	var body scaleBuf
	body.raw([]byte{extrinsicVersionSigned})
	body.put(addr)
	body.put(types.MultiSignature{IsSr25519: true, AsSr25519: types.NewSignature(signature)})
	body.raw(extra)
	body.raw(call)
	encoded, err := body.bytes()
	if err != nil {
		return nil, err
	}

	var out scaleBuf
	out.put(compactUint(uint64(len(encoded))))
	out.raw(encoded)
	return out.bytes()
}

// extrinsicHash is the hash the node reports for a submitted extrinsic.
func extrinsicHash(extrinsic []byte) [32]byte {
	return blake2b.Sum256(extrinsic)
}

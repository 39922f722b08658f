package chain

import (
	"encoding/binary"
	"math/big"

	"glin-wallet/internal/core/domain"

	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types/codec"
	"github.com/cespare/xxhash/v2"
	"golang.org/x/crypto/blake2b"
)

// twox128 is the 128-bit xxHash used for pallet and item prefixes: two
// XXH64 digests with seeds 0 and 1, each little-endian.
func twox128(data []byte) []byte {
	out := make([]byte, 16)
	for seed := uint64(0); seed < 2; seed++ {
		d := xxhash.NewWithSeed(seed)
		_, _ = d.Write(data)
		binary.LittleEndian.PutUint64(out[seed*8:], d.Sum64())
	}
	return out
}

func blake2b128(data []byte) []byte {
	h, _ := blake2b.New(16, nil)
	_, _ = h.Write(data)
	return h.Sum(nil)
}

func blake2b128Concat(data []byte) []byte {
	return append(blake2b128(data), data...)
}

// systemAccountKey is the storage key of System.Account for an account id.
func systemAccountKey(accountID []byte) []byte {
	key := make([]byte, 0, 32+16+len(accountID))
	key = append(key, twox128([]byte("System"))...)
	key = append(key, twox128([]byte("Account"))...)
	return append(key, blake2b128Concat(accountID)...)
}

// decodeAccountBalance reads free, reserved and frozen from an encoded
// AccountInfo. A nil value means the account does not exist yet.
func decodeAccountBalance(raw []byte) (domain.Balance, error) {
	if raw == nil {
		return domain.Balance{Free: new(big.Int), Reserved: new(big.Int), Frozen: new(big.Int)}, nil
	}
	var info types.AccountInfo
	if err := codec.Decode(raw, &info); err != nil {
		return domain.Balance{}, err
	}
	return domain.Balance{
		Free:     u128(info.Data.Free),
		Reserved: u128(info.Data.Reserved),
		Frozen:   u128(info.Data.MiscFrozen),
	}, nil
}

func u128(v types.U128) *big.Int {
	if v.Int == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(v.Int)
}

package chain

import (
	"math/big"

	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types/codec"
)

// scaleBuf appends SCALE encodings and keeps the first error.
type scaleBuf struct {
	b   []byte
	err error
}

func (s *scaleBuf) put(v interface{}) {
	if s.err != nil {
		return
	}
	enc, err := codec.Encode(v)
	if err != nil {
		s.err = err
		return
	}
	s.b = append(s.b, enc...)
}

func (s *scaleBuf) raw(b []byte) {
	s.b = append(s.b, b...)
}

func (s *scaleBuf) bytes() ([]byte, error) {
	return s.b, s.err
}

// compact is the SCALE compact form of a non-negative integer.
func compact(v *big.Int) types.UCompact {
	return types.NewUCompact(v)
}

func compactUint(v uint64) types.UCompact {
	return types.NewUCompactFromUInt(v)
}

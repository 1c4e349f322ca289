package database

import (
	"bytes"

	"github.com/ardanlabs/ledger/foundation/blockchain/objecthash"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Hash represents a digest produced by the objecthash package. It is
// displayed and serialized as a 0x prefixed hex string.
type Hash []byte

// ZeroHash returns the sentinel used as the previous hash of the first
// block in a chain. A new slice is returned on every call so callers can't
// mutate a shared value.
func ZeroHash() Hash {
	return make(Hash, objecthash.Size)
}

// String implements the fmt.Stringer interface.
func (h Hash) String() string {
	return hexutil.Encode(h)
}

// Equal reports whether both hashes hold the same bytes.
func (h Hash) Equal(other Hash) bool {
	return bytes.Equal(h, other)
}

// IsZero reports whether this is the genesis sentinel.
func (h Hash) IsZero() bool {
	return h.Equal(ZeroHash())
}

// MarshalText implements the encoding.TextMarshaler interface.
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(hexutil.Encode(h)), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (h *Hash) UnmarshalText(input []byte) error {
	b, err := hexutil.Decode(string(input))
	if err != nil {
		return err
	}

	*h = b
	return nil
}

// Package felt implements the 32-byte Starknet field element used
// throughout the gateway as hashes, addresses, and commitment roots.
package felt

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/stark-curve/fp"
)

// Felt is a value modulo the Starknet prime, encoded big-endian in 32 bytes
// on the wire.
type Felt struct {
	impl fp.Element
}

// Zero is the additive identity.
var Zero = Felt{}

// bitLen is the maximum bit length of a storage key: keys must be below
// 2^251. (The prime itself is 252 bits long.)
const bitLen = 251

// New builds a Felt from a big.Int, reducing modulo the field prime.
func New(v *big.Int) *Felt {
	f := new(Felt)
	f.impl.SetBigInt(v)
	return f
}

// SetBytes interprets b as a big-endian integer modulo the field prime.
// It never fails: values are reduced, so an out-of-range input is not
// reported. Range-checked parsing goes through Wide and NewStorageKey.
func (f *Felt) SetBytes(b []byte) *Felt {
	f.impl.SetBytes(b)
	return f
}

// SetString parses a hex string ("0x..." or bare hex), reducing modulo the
// field prime. Returns an error if the string is not valid hex.
func (f *Felt) SetString(s string) (*Felt, error) {
	s = strings.TrimPrefix(s, "0x")
	if s == "" {
		s = "0"
	}
	if len(s)%2 == 1 {
		s = "0" + s
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("felt: invalid hex string %q: %w", s, err)
	}
	return f.SetBytes(b), nil
}

// SetUint64 sets f to v.
func (f *Felt) SetUint64(v uint64) *Felt {
	f.impl.SetUint64(v)
	return f
}

// Bytes returns the big-endian 32-byte encoding of f.
func (f *Felt) Bytes() [32]byte {
	return f.impl.Bytes()
}

// Marshal is an alias of Bytes returning a slice, convenient for the wire
// codec which works in terms of []byte.
func (f *Felt) Marshal() []byte {
	b := f.impl.Bytes()
	return b[:]
}

// BigInt returns f as a big.Int.
func (f *Felt) BigInt(out *big.Int) *big.Int {
	return f.impl.BigInt(out)
}

// Cmp compares f and other as unsigned integers.
func (f *Felt) Cmp(other *Felt) int {
	return f.impl.Cmp(&other.impl)
}

// Equal reports whether f and other represent the same value.
func (f *Felt) Equal(other *Felt) bool {
	if other == nil {
		return false
	}
	return f.impl.Equal(&other.impl)
}

// IsZero reports whether f is the additive identity.
func (f *Felt) IsZero() bool {
	return f.impl.IsZero()
}

// String renders f as a "0x"-prefixed hex string with no leading zeros
// (except for the zero value itself, which renders as "0x0").
func (f *Felt) String() string {
	b := f.impl.Bytes()
	s := hex.EncodeToString(b[:])
	s = strings.TrimLeft(s, "0")
	if s == "" {
		s = "0"
	}
	return "0x" + s
}

// MarshalJSON renders f as a quoted hex string, matching the block-reference
// serialization convention described in the RPC spec (hashes are hex
// strings on the wire).
func (f Felt) MarshalJSON() ([]byte, error) {
	return []byte(`"` + f.String() + `"`), nil
}

// UnmarshalJSON accepts a quoted hex string.
func (f *Felt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	_, err := f.SetString(s)
	return err
}

// MarshalBinary renders the raw 32-byte encoding, used by the CBOR-backed
// storage codec (db.Encode) so stored felts round-trip without a hex
// string detour on the hot read path.
func (f Felt) MarshalBinary() ([]byte, error) {
	b := f.impl.Bytes()
	return b[:], nil
}

// UnmarshalBinary is the counterpart of MarshalBinary.
func (f *Felt) UnmarshalBinary(data []byte) error {
	f.impl.SetBytes(data)
	return nil
}

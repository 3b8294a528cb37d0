package felt

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
)

// Wide is a 256-bit big-endian integer that has not yet been checked to fit
// the Starknet field. The RPC dispatcher parses storage keys into Wide
// first, then narrows to Felt with an explicit range check — see NewStorageKey.
// This two-step "parse wide, then range-check" shape is required because a
// Felt's own parser silently reduces modulo the prime, which would hide an
// out-of-range key instead of reporting it with the semantic error code.
type Wide struct {
	v big.Int
}

// prime is the Starknet field prime, 2^251 + 17*2^192 + 1.
var prime = func() *big.Int {
	p, ok := new(big.Int).SetString("800000000000011000000000000000000000000000000000000000000000001", 16)
	if !ok {
		panic("felt: invalid prime literal")
	}
	return p
}()

// ParseWide parses a hex string ("0x..." or bare hex) of up to 256 bits
// without any range check against the field prime.
func ParseWide(s string) (*Wide, error) {
	s = strings.TrimPrefix(s, "0x")
	if s == "" {
		s = "0"
	}
	b, err := hex.DecodeString(pad(s))
	if err != nil {
		return nil, fmt.Errorf("felt: invalid hex string %q: %w", s, err)
	}
	if len(b) > 32 {
		return nil, fmt.Errorf("felt: value %q exceeds 256 bits", s)
	}
	w := new(Wide)
	w.v.SetBytes(b)
	return w, nil
}

func pad(s string) string {
	if len(s)%2 == 1 {
		return "0" + s
	}
	return s
}

// FitsField reports whether the value is strictly less than the field prime.
func (w *Wide) FitsField() bool {
	return w.v.Cmp(prime) < 0
}

// String renders the wide value as a hex string, for error messages.
func (w *Wide) String() string {
	return "0x" + w.v.Text(16)
}

// UnmarshalJSON accepts a quoted hex string, performing the "wide" half of
// the parse-wide-then-range-check pattern: no overflow is rejected here.
func (w *Wide) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseWide(s)
	if err != nil {
		return err
	}
	w.v = parsed.v
	return nil
}

// NewStorageKey narrows a Wide value to a Felt, returning an error when the
// value does not fit in bitLen (251) bits, i.e. is 2^251 or more — every
// accepted key is therefore also below the field prime. The caller is
// expected to map that error to the "invalid storage key" RPC error code (23).
func NewStorageKey(w *Wide) (*Felt, error) {
	if w.v.BitLen() > bitLen {
		return nil, fmt.Errorf("felt: storage key %s is out of range", w.String())
	}
	return New(&w.v), nil
}

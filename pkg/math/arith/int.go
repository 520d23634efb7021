package arith

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/cronokirby/saferith"
)

// NatFromBig converts a non-negative big.Int.
func NatFromBig(x *big.Int) (*saferith.Nat, error) {
	if x == nil || x.Sign() < 0 {
		return nil, fmt.Errorf("arith: %v is not a natural number", x)
	}
	return new(saferith.Nat).SetBig(x, x.BitLen()), nil
}

// ParseNat reads a natural number written in base 10, or in base 16 with a 0x prefix.
func ParseNat(s string) (*saferith.Nat, error) {
	s = strings.TrimSpace(s)
	x, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return nil, fmt.Errorf("arith: failed to parse %q", s)
	}
	return NatFromBig(x)
}

// MustParseNat is ParseNat for constants.
func MustParseNat(s string) *saferith.Nat {
	x, err := ParseNat(s)
	if err != nil {
		panic(err)
	}
	return x
}

// Bit returns the i-th bit of x, where bit 0 is the least significant.
func Bit(x *saferith.Nat, i int) uint {
	buf := x.Bytes()
	j := len(buf) - 1 - i/8
	if j < 0 {
		return 0
	}
	return uint(buf[j]>>(uint(i)%8)) & 1
}

// BitLen returns the number of significant bits of x.
func BitLen(x *saferith.Nat) int {
	return x.TrueLen()
}

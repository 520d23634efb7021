package sample

import (
	"errors"
	"fmt"
	"io"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/ec-threshold/internal/params"
	"github.com/taurusgroup/ec-threshold/pkg/math/arith"
)

// ErrMaxIterations is returned when rejection sampling did not terminate.
var ErrMaxIterations = fmt.Errorf("sample: failed to generate after %d iterations", params.MaxIterations)

func readBits(rand io.Reader, buf []byte) error {
	var err error
	for i := 0; i < params.MaxIterations; i++ {
		if _, err = io.ReadFull(rand, buf); err == nil {
			return nil
		}
		// an exhausted reader will not produce more bytes
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			break
		}
	}
	return fmt.Errorf("sample: read randomness: %w", err)
}

// ModN samples an element of ℤₙ uniformly.
func ModN(rand io.Reader, n *saferith.Modulus) (*saferith.Nat, error) {
	bits := n.BitLen()
	buf := make([]byte, (bits+7)/8)
	// mask off the excess bits of the leading byte so that rejection is at most 1/2
	mask := byte(0xff)
	if excess := len(buf)*8 - bits; excess > 0 {
		mask >>= uint(excess)
	}
	out := new(saferith.Nat)
	for i := 0; i < params.MaxIterations; i++ {
		if err := readBits(rand, buf); err != nil {
			return nil, err
		}
		buf[0] &= mask
		out.SetBytes(buf)
		if _, _, lt := out.CmpMod(n); lt == 1 {
			return out, nil
		}
	}
	return nil, ErrMaxIterations
}

// UnitModN returns a u ∈ ℤₙˣ.
func UnitModN(rand io.Reader, n *saferith.Modulus) (*saferith.Nat, error) {
	for i := 0; i < params.MaxIterations; i++ {
		u, err := ModN(rand, n)
		if err != nil {
			return nil, err
		}
		if u.EqZero() != 1 && u.IsUnit(n) == 1 {
			return u, nil
		}
	}
	return nil, ErrMaxIterations
}

// Interval samples uniformly from [lo, hi).
func Interval(rand io.Reader, lo, hi *saferith.Nat) (*saferith.Nat, error) {
	if gt, _, _ := hi.Cmp(lo); gt != 1 {
		return nil, errors.New("sample: empty interval")
	}
	width := saferith.ModulusFromNat(new(saferith.Nat).Sub(hi, lo, hi.AnnouncedLen()))
	offset, err := ModN(rand, width)
	if err != nil {
		return nil, err
	}
	return new(saferith.Nat).Add(lo, offset, -1), nil
}

// Nonce samples an ephemeral scalar k ∈ [1, p - 1).
func Nonce(rand io.Reader, p *arith.Modulus) (*saferith.Nat, error) {
	one := new(saferith.Nat).SetUint64(1)
	pMinusOne := new(saferith.Nat).Sub(p.Nat(), one, -1)
	return Interval(rand, one, pMinusOne)
}

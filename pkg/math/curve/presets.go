package curve

import (
	"sync"

	"github.com/cronokirby/saferith"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/taurusgroup/ec-threshold/pkg/math/arith"
)

// Toy23 returns y² = x³ + x + 1 over 𝔽₂₃, with base point G = (3, 10) of order 28.
// The whole group has 28 elements, so G generates it.
func Toy23() *Curve {
	p := arith.ModulusFromUint64(23)
	c, err := NewCurve("toy23", p.Uint64(1), p.Uint64(1), p)
	if err != nil {
		panic(err)
	}
	c, err = c.WithBase(p.Uint64(3), p.Uint64(10), new(saferith.Nat).SetUint64(28))
	if err != nil {
		panic(err)
	}
	return c
}

var (
	secp256k1Once  sync.Once
	secp256k1Curve *Curve
)

// Secp256k1 returns y² = x³ + 7 with the parameters used by Bitcoin.
func Secp256k1() *Curve {
	secp256k1Once.Do(func() {
		secp256k1Curve = newSecp256k1()
	})
	return secp256k1Curve
}

func newSecp256k1() *Curve {
	params := secp256k1.S256().Params()
	p, err := arith.ModulusFromBig(params.P)
	if err != nil {
		panic(err)
	}
	c, err := NewCurve("secp256k1", p.Uint64(0), p.Reduce(mustNat(params.B.Bytes())), p)
	if err != nil {
		panic(err)
	}
	c, err = c.WithBase(mustNat(params.Gx.Bytes()), mustNat(params.Gy.Bytes()), mustNat(params.N.Bytes()))
	if err != nil {
		panic(err)
	}
	return c
}

func mustNat(b []byte) *saferith.Nat {
	return new(saferith.Nat).SetBytes(b)
}

// Package test contains helpers shared by the protocol tests.
package test

import (
	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/ec-threshold/pkg/math/curve"
	"github.com/taurusgroup/ec-threshold/pkg/math/group"
)

// Nat returns x as a saferith.Nat.
func Nat(x uint64) *saferith.Nat {
	return new(saferith.Nat).SetUint64(x)
}

// Toy returns the points of y² = x³ + x + 1 (mod 23) with G = (3, 10) of order 28.
func Toy() group.Group {
	return group.EllipticCurve(curve.Toy23())
}

// ToySubgroup returns the subgroup of order 7 of the toy curve, generated by (17, 3).
// Its prime order makes it usable for Lagrange interpolation.
func ToySubgroup() group.Group {
	c, err := curve.Toy23().WithBase(Nat(17), Nat(3), Nat(7))
	if err != nil {
		panic(err)
	}
	return group.EllipticCurve(c)
}

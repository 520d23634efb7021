package curve

import (
	"fmt"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/ec-threshold/pkg/math/arith"
)

// Point is an affine point on a Curve, or the point at infinity.
//
// The zero value is the identity. Points are immutable values and may be copied freely.
type Point struct {
	// x, y are reduced mod p. x is nil for the identity.
	x, y *saferith.Nat
}

// Identity returns the point at infinity.
func Identity() Point { return Point{} }

// IsIdentity returns true if the point is ∞.
func (v Point) IsIdentity() bool { return v.x == nil }

// X returns a copy of the x coordinate, or nil for the identity.
func (v Point) X() *saferith.Nat {
	if v.IsIdentity() {
		return nil
	}
	return new(saferith.Nat).SetNat(v.x)
}

// Y returns a copy of the y coordinate, or nil for the identity.
func (v Point) Y() *saferith.Nat {
	if v.IsIdentity() {
		return nil
	}
	return new(saferith.Nat).SetNat(v.y)
}

// Equal returns true if v and u are the same point.
func (v Point) Equal(u Point) bool {
	if v.IsIdentity() || u.IsIdentity() {
		return v.IsIdentity() == u.IsIdentity()
	}
	return v.x.Eq(u.x) == 1 && v.y.Eq(u.y) == 1
}

// String implements fmt.Stringer.
func (v Point) String() string {
	if v.IsIdentity() {
		return "Point{Identity}"
	}
	return fmt.Sprintf("Point{X: %v, Y: %v}", v.x.Big(), v.y.Big())
}

// Add returns p₁ + p₂.
//
//   - ∞ is the neutral element;
//   - p₁ = p₂ is a doubling with λ = (3x₁² + a)⋅(2y₁)⁻¹, and the result is ∞ when y₁ = 0;
//   - x₁ = x₂ with y₁ ≠ y₂ is a vertical pair, the result is ∞;
//   - otherwise λ = (y₂ - y₁)⋅(x₂ - x₁)⁻¹.
//
// Then x₃ = λ² - x₁ - x₂ and y₃ = λ⋅(x₁ - x₃) - y₁.
// An error wrapping arith.ErrNoInverse is returned only if p is not prime.
func (c *Curve) Add(p1, p2 Point) (Point, error) {
	if p1.IsIdentity() {
		return p2, nil
	}
	if p2.IsIdentity() {
		return p1, nil
	}

	f := c.field
	var lambda *saferith.Nat
	switch {
	case p1.Equal(p2):
		if f.IsZero(p1.y) {
			return Identity(), nil
		}
		// 3x₁² + a
		numerator := f.Add(f.Mul(f.Uint64(3), f.Mul(p1.x, p1.x)), c.a)
		// (2y₁)⁻¹
		denominator, err := f.Inv(f.Add(p1.y, p1.y))
		if err != nil {
			return Point{}, fmt.Errorf("curve: double %v: %w", p1, err)
		}
		lambda = f.Mul(numerator, denominator)
	case p1.x.Eq(p2.x) == 1:
		return Identity(), nil
	default:
		numerator := f.Sub(p2.y, p1.y)
		denominator, err := f.Inv(f.Sub(p2.x, p1.x))
		if err != nil {
			return Point{}, fmt.Errorf("curve: add %v and %v: %w", p1, p2, err)
		}
		lambda = f.Mul(numerator, denominator)
	}

	x3 := f.Sub(f.Sub(f.Mul(lambda, lambda), p1.x), p2.x)
	y3 := f.Sub(f.Mul(lambda, f.Sub(p1.x, x3)), p1.y)
	return Point{x: x3, y: y3}, nil
}

// Double returns 2⋅p.
func (c *Curve) Double(p Point) (Point, error) {
	return c.Add(p, p)
}

// Negate returns -p = (x, -y).
func (c *Curve) Negate(p Point) Point {
	if p.IsIdentity() {
		return p
	}
	return Point{x: p.x, y: c.field.Neg(p.y)}
}

// Sub returns p₁ - p₂.
func (c *Curve) Sub(p1, p2 Point) (Point, error) {
	return c.Add(p1, c.Negate(p2))
}

// ScalarMul returns k⋅p using double-and-add.
//
// The bits of k are scanned from least to most significant. The running power 2ⁱ⋅p is added to the
// accumulator whenever bit i is set, and doubled until the top bit of k is reached.
// This is not constant time.
func (c *Curve) ScalarMul(k *saferith.Nat, p Point) (Point, error) {
	result := Identity()
	if p.IsIdentity() {
		return result, nil
	}
	addend := p
	bits := arith.BitLen(k)
	var err error
	for i := 0; i < bits; i++ {
		if arith.Bit(k, i) == 1 {
			if result, err = c.Add(result, addend); err != nil {
				return Point{}, fmt.Errorf("curve: scalar multiplication: %w", err)
			}
		}
		if i+1 < bits {
			if addend, err = c.Double(addend); err != nil {
				return Point{}, fmt.Errorf("curve: scalar multiplication: %w", err)
			}
		}
	}
	return result, nil
}

// ScalarBaseMul returns k⋅G.
func (c *Curve) ScalarBaseMul(k *saferith.Nat) (Point, error) {
	if c.base.IsIdentity() {
		return Point{}, fmt.Errorf("curve: %s has no base point", c)
	}
	return c.ScalarMul(k, c.base)
}

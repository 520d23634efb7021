package curve

import (
	"errors"
	"fmt"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/ec-threshold/pkg/math/arith"
)

var (
	// ErrInvalidPoint is returned when a point fails the curve-membership check.
	ErrInvalidPoint = errors.New("curve: point is not on the curve")
	// ErrSingularCurve is returned for parameters with 4a³ + 27b² ≡ 0 (mod p).
	ErrSingularCurve = errors.New("curve: curve is singular")
)

// Curve is a short Weierstrass curve y² = x³ + a⋅x + b over 𝔽ₚ.
//
// A Curve is immutable once constructed. It owns no points but implements the group law on them.
// The base point and its order are optional; they are only required to sample keys and to
// interpolate shares in the exponent.
type Curve struct {
	name  string
	a, b  *saferith.Nat
	field *arith.Modulus

	base  Point
	order *saferith.Modulus
}

// NewCurve returns the curve y² = x³ + a⋅x + b (mod p).
func NewCurve(name string, a, b *saferith.Nat, p *arith.Modulus) (*Curve, error) {
	if p == nil || a == nil || b == nil {
		return nil, errors.New("curve: missing parameter")
	}
	c := &Curve{
		name:  name,
		a:     p.Reduce(a),
		b:     p.Reduce(b),
		field: p,
	}
	// Δ = 4a³ + 27b²
	a3 := p.Mul(c.a, p.Mul(c.a, c.a))
	b2 := p.Mul(c.b, c.b)
	discriminant := p.Add(p.Mul(p.Uint64(4), a3), p.Mul(p.Uint64(27), b2))
	if p.IsZero(discriminant) {
		return nil, fmt.Errorf("%w: a = %v, b = %v, p = %v", ErrSingularCurve, c.a.Big(), c.b.Big(), p.Big())
	}
	return c, nil
}

// WithBase returns a copy of c with the base point G = (x, y) of the given order.
// order may be nil when it is unknown.
func (c *Curve) WithBase(x, y, order *saferith.Nat) (*Curve, error) {
	g, err := c.NewPoint(x, y)
	if err != nil {
		return nil, fmt.Errorf("curve: base point: %w", err)
	}
	out := *c
	out.base = g
	out.order = nil
	if order != nil {
		if order.EqZero() == 1 {
			return nil, errors.New("curve: base point order is 0")
		}
		n := saferith.ModulusFromNat(order)
		nG, err := c.ScalarMul(n.Nat(), g)
		if err != nil {
			return nil, fmt.Errorf("curve: base point order: %w", err)
		}
		if !nG.IsIdentity() {
			return nil, fmt.Errorf("curve: %v⋅G is not the identity", order.Big())
		}
		out.order = n
	}
	return &out, nil
}

// Name returns a human readable identifier.
func (c *Curve) Name() string { return c.name }

// A returns the coefficient a.
func (c *Curve) A() *saferith.Nat { return new(saferith.Nat).SetNat(c.a) }

// B returns the coefficient b.
func (c *Curve) B() *saferith.Nat { return new(saferith.Nat).SetNat(c.b) }

// Field returns the modulus p.
func (c *Curve) Field() *arith.Modulus { return c.field }

// Base returns the base point, or the identity if none was set.
func (c *Curve) Base() Point { return c.base }

// Order returns the order of the base point, or nil if it is unknown.
func (c *Curve) Order() *saferith.Modulus { return c.order }

// Point returns (x, y) reduced mod p, without checking that it lies on the curve.
func (c *Curve) Point(x, y *saferith.Nat) Point {
	return Point{x: c.field.Reduce(x), y: c.field.Reduce(y)}
}

// NewPoint returns (x, y) and ErrInvalidPoint if it does not satisfy the curve equation.
// The coordinates must already be reduced mod p.
func (c *Curve) NewPoint(x, y *saferith.Nat) (Point, error) {
	if x == nil || y == nil {
		return Point{}, fmt.Errorf("%w: missing coordinate", ErrInvalidPoint)
	}
	if !c.field.Contains(x) || !c.field.Contains(y) {
		return Point{}, fmt.Errorf("%w: coordinate not reduced mod %v", ErrInvalidPoint, c.field.Big())
	}
	p := c.Point(x, y)
	if err := c.Validate(p); err != nil {
		return Point{}, err
	}
	return p, nil
}

// IsOnCurve returns true if p is the identity or y² ≡ x³ + a⋅x + b (mod p).
func (c *Curve) IsOnCurve(p Point) bool {
	if p.IsIdentity() {
		return true
	}
	f := c.field
	left := f.Mul(p.y, p.y)
	right := f.Add(f.Add(f.Mul(p.x, f.Mul(p.x, p.x)), f.Mul(c.a, p.x)), c.b)
	return left.Eq(right) == 1
}

// Validate returns ErrInvalidPoint if p is not on the curve.
func (c *Curve) Validate(p Point) error {
	if !c.IsOnCurve(p) {
		return fmt.Errorf("%w: %v on %s", ErrInvalidPoint, p, c)
	}
	return nil
}

// Equal returns true if c and other have the same equation, field, and base point.
func (c *Curve) Equal(other *Curve) bool {
	if c == other {
		return true
	}
	if c == nil || other == nil {
		return false
	}
	return c.field.Nat().Eq(other.field.Nat()) == 1 &&
		c.a.Eq(other.a) == 1 && c.b.Eq(other.b) == 1 &&
		c.base.Equal(other.base)
}

// String implements fmt.Stringer.
func (c *Curve) String() string {
	if c.name != "" {
		return c.name
	}
	return fmt.Sprintf("y² = x³ + %v⋅x + %v (mod %v)", c.a.Big(), c.b.Big(), c.field.Big())
}

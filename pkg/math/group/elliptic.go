package group

import (
	"fmt"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/ec-threshold/pkg/math/arith"
	"github.com/taurusgroup/ec-threshold/pkg/math/curve"
)

type ellipticCurve struct {
	c *curve.Curve
}

// EllipticCurve returns the group of points of c.
func EllipticCurve(c *curve.Curve) Group {
	return ellipticCurve{c: c}
}

// CurveOf returns the underlying curve if g was created with EllipticCurve.
func CurveOf(g Group) (*curve.Curve, bool) {
	ec, ok := g.(ellipticCurve)
	if !ok {
		return nil, false
	}
	return ec.c, true
}

func (g ellipticCurve) Name() string                { return "ec/" + g.c.String() }
func (g ellipticCurve) Field() *arith.Modulus       { return g.c.Field() }
func (g ellipticCurve) Identity() Element           { return g.element(curve.Identity()) }
func (g ellipticCurve) Generator() Element          { return g.element(g.c.Base()) }
func (g ellipticCurve) Order() *saferith.Modulus    { return g.c.Order() }
func (g ellipticCurve) element(p curve.Point) point { return point{c: g.c, p: p} }

func (g ellipticCurve) Unmarshal(data []byte) (Element, error) {
	p, err := g.c.UnmarshalPoint(data)
	if err != nil {
		return nil, err
	}
	return g.element(p), nil
}

// NewPoint wraps a point of c, after checking that it lies on the curve.
func NewPoint(c *curve.Curve, p curve.Point) (Element, error) {
	if err := c.Validate(p); err != nil {
		return nil, err
	}
	return point{c: c, p: p}, nil
}

// PointOf returns the curve point underlying e.
func PointOf(e Element) (curve.Point, bool) {
	p, ok := e.(point)
	if !ok {
		return curve.Point{}, false
	}
	return p.p, true
}

type point struct {
	c *curve.Curve
	p curve.Point
}

func (e point) Group() Group { return ellipticCurve{c: e.c} }

func (e point) cast(other Element) (point, error) {
	o, ok := other.(point)
	if !ok || !o.c.Equal(e.c) {
		return point{}, fmt.Errorf("%w: %v is not a point of %s", ErrWrongGroup, other, e.c)
	}
	return o, nil
}

func (e point) Add(other Element) (Element, error) {
	o, err := e.cast(other)
	if err != nil {
		return nil, err
	}
	sum, err := e.c.Add(e.p, o.p)
	if err != nil {
		return nil, err
	}
	return point{c: e.c, p: sum}, nil
}

func (e point) ScalarMul(k *saferith.Nat) (Element, error) {
	q, err := e.c.ScalarMul(k, e.p)
	if err != nil {
		return nil, err
	}
	return point{c: e.c, p: q}, nil
}

func (e point) Negate() Element { return point{c: e.c, p: e.c.Negate(e.p)} }

func (e point) Equal(other Element) bool {
	o, err := e.cast(other)
	return err == nil && e.p.Equal(o.p)
}

func (e point) IsIdentity() bool { return e.p.IsIdentity() }

// Mask returns the x-coordinate.
func (e point) Mask() (*saferith.Nat, error) {
	if e.p.IsIdentity() {
		return nil, fmt.Errorf("%w: the point at infinity has no x-coordinate", arith.ErrNoInverse)
	}
	return e.p.X(), nil
}

func (e point) MarshalBinary() ([]byte, error) { return e.c.MarshalPoint(e.p), nil }

func (e point) String() string { return e.p.String() }

package group

import (
	"fmt"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/ec-threshold/pkg/math/arith"
)

type fieldElements struct {
	p *arith.Modulus
	g *saferith.Nat
}

// FieldElements returns the additive group ℤₚ with generator g.
// Here k⋅e is a modular multiplication and every element is its own mask.
// Discrete logarithms are trivial in this group: it only serves to exercise the protocols.
func FieldElements(p *arith.Modulus, g *saferith.Nat) Group {
	return fieldElements{p: p, g: p.Reduce(g)}
}

func (g fieldElements) Name() string             { return fmt.Sprintf("field/%v", g.p.Big()) }
func (g fieldElements) Field() *arith.Modulus    { return g.p }
func (g fieldElements) Identity() Element        { return fieldElement{group: g, v: g.p.Zero()} }
func (g fieldElements) Generator() Element       { return fieldElement{group: g, v: g.g} }
func (g fieldElements) Order() *saferith.Modulus { return g.p.Modulus }

// Element returns v (mod p) as an element of g.
func (g fieldElements) Element(v *saferith.Nat) Element {
	return fieldElement{group: g, v: g.p.Reduce(v)}
}

func (g fieldElements) Unmarshal(data []byte) (Element, error) {
	size := (g.p.BitLen() + 7) / 8
	if len(data) != size {
		return nil, fmt.Errorf("group: field element should be %d bytes, got %d", size, len(data))
	}
	v := new(saferith.Nat).SetBytes(data)
	if !g.p.Contains(v) {
		return nil, fmt.Errorf("group: field element not reduced mod %v", g.p.Big())
	}
	return g.Element(v), nil
}

type fieldElement struct {
	group fieldElements
	v     *saferith.Nat
}

func (e fieldElement) Group() Group { return e.group }

func (e fieldElement) cast(other Element) (fieldElement, error) {
	o, ok := other.(fieldElement)
	if !ok || o.group.p.Nat().Eq(e.group.p.Nat()) != 1 {
		return fieldElement{}, fmt.Errorf("%w: %v is not an element of %s", ErrWrongGroup, other, e.group.Name())
	}
	return o, nil
}

func (e fieldElement) Add(other Element) (Element, error) {
	o, err := e.cast(other)
	if err != nil {
		return nil, err
	}
	return fieldElement{group: e.group, v: e.group.p.Add(e.v, o.v)}, nil
}

func (e fieldElement) ScalarMul(k *saferith.Nat) (Element, error) {
	return fieldElement{group: e.group, v: e.group.p.Mul(k, e.v)}, nil
}

func (e fieldElement) Negate() Element {
	return fieldElement{group: e.group, v: e.group.p.Neg(e.v)}
}

func (e fieldElement) Equal(other Element) bool {
	o, err := e.cast(other)
	return err == nil && e.v.Eq(o.v) == 1
}

func (e fieldElement) IsIdentity() bool { return e.v.EqZero() == 1 }

// Mask returns the element itself.
func (e fieldElement) Mask() (*saferith.Nat, error) {
	if e.IsIdentity() {
		return nil, fmt.Errorf("%w: 0 cannot be used as a mask", arith.ErrNoInverse)
	}
	return new(saferith.Nat).SetNat(e.v), nil
}

func (e fieldElement) MarshalBinary() ([]byte, error) {
	size := (e.group.p.BitLen() + 7) / 8
	return e.v.Big().FillBytes(make([]byte, size)), nil
}

func (e fieldElement) String() string { return e.v.Big().String() }

// Package group abstracts over the groups the encryption scheme and the threshold protocol can run in.
//
// Two variants are provided: EllipticCurve, where elements are points and the mask is the
// x-coordinate, and FieldElements, the additive group ℤₚ where an element is its own mask.
package group

import (
	"encoding"
	"errors"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/ec-threshold/pkg/math/arith"
)

// ErrWrongGroup is returned when elements of different groups are combined.
var ErrWrongGroup = errors.New("group: element belongs to a different group")

// Group is a cyclic group with a distinguished generator, whose elements can be projected to 𝔽ₚ.
type Group interface {
	// Name identifies the group, and is used for domain separation.
	Name() string
	// Field is the field 𝔽ₚ in which masks and plaintexts live.
	Field() *arith.Modulus
	// Identity returns the neutral element.
	Identity() Element
	// Generator returns the base element G, or the identity if none is defined.
	Generator() Element
	// Order returns the order of the generator, or nil if it is unknown.
	Order() *saferith.Modulus
	// Unmarshal decodes an element produced by Element.MarshalBinary.
	Unmarshal(data []byte) (Element, error)
}

// Element is an immutable element of a Group.
type Element interface {
	encoding.BinaryMarshaler
	Group() Group
	// Add returns e + other.
	Add(other Element) (Element, error)
	// ScalarMul returns k⋅e.
	ScalarMul(k *saferith.Nat) (Element, error)
	// Negate returns -e.
	Negate() Element
	Equal(other Element) bool
	IsIdentity() bool
	// Mask returns the field element used to blind plaintexts.
	// For the identity, arith.ErrNoInverse is returned since it cannot blind anything.
	Mask() (*saferith.Nat, error)
	String() string
}

// Sum returns e₁ + … + eₙ, and the identity for an empty list.
func Sum(g Group, elements ...Element) (Element, error) {
	acc := g.Identity()
	var err error
	for _, e := range elements {
		if acc, err = acc.Add(e); err != nil {
			return nil, err
		}
	}
	return acc, nil
}

// ScalarBaseMul returns k⋅G.
func ScalarBaseMul(g Group, k *saferith.Nat) (Element, error) {
	gen := g.Generator()
	if gen.IsIdentity() {
		return nil, errors.New("group: no generator")
	}
	return gen.ScalarMul(k)
}

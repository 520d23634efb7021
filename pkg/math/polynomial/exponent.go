package polynomial

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/cronokirby/saferith"
	"github.com/fxamacker/cbor/v2"
	"github.com/taurusgroup/ec-threshold/pkg/math/group"
)

// Exponent represents a polynomial whose coefficients are elements of a group,
// F(X) = [a₀ + a₁⋅X + … + aₜ⋅Xᵗ]⋅G. Its coefficients are Feldman commitments to f.
type Exponent struct {
	group        group.Group
	coefficients []group.Element
}

// NewPolynomialExponent generates an Exponent polynomial F(X) = [secret + a₁⋅X + … + aₜ⋅Xᵗ]⋅G,
// with coefficients in G, and degree t.
func NewPolynomialExponent(g group.Group, polynomial *Polynomial) (*Exponent, error) {
	p := &Exponent{
		group:        g,
		coefficients: make([]group.Element, polynomial.Degree()+1),
	}
	for i, c := range polynomial.coefficients {
		e, err := group.ScalarBaseMul(g, c)
		if err != nil {
			return nil, fmt.Errorf("polynomial: commit to coefficient %d: %w", i, err)
		}
		p.coefficients[i] = e
	}
	return p, nil
}

// Evaluate returns F(index) using Horner's method.
func (p *Exponent) Evaluate(index *saferith.Nat) (group.Element, error) {
	result := p.group.Identity()
	var err error
	for i := len(p.coefficients) - 1; i >= 0; i-- {
		// B_n-1 = [x]B_n  + A_n-1
		if result, err = result.ScalarMul(index); err != nil {
			return nil, err
		}
		if result, err = result.Add(p.coefficients[i]); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// Degree is the highest power of the polynomial.
func (p *Exponent) Degree() int {
	return len(p.coefficients) - 1
}

// Constant returns the constant coefficient of the polynomial 'in the exponent', i.e. the public key.
func (p *Exponent) Constant() group.Element {
	return p.coefficients[0]
}

// Group returns the group the coefficients belong to.
func (p *Exponent) Group() group.Group {
	return p.group
}

// Sum creates a new polynomial in the exponent, by summing a slice of existing ones.
func Sum(polynomials []*Exponent) (*Exponent, error) {
	if len(polynomials) == 0 {
		return nil, errors.New("polynomial: nothing to sum")
	}
	summed := polynomials[0].copy()
	for _, q := range polynomials[1:] {
		if len(q.coefficients) != len(summed.coefficients) {
			return nil, errors.New("polynomial: exponents have different degrees")
		}
		for i := range summed.coefficients {
			c, err := summed.coefficients[i].Add(q.coefficients[i])
			if err != nil {
				return nil, err
			}
			summed.coefficients[i] = c
		}
	}
	return summed, nil
}

func (p *Exponent) copy() *Exponent {
	q := &Exponent{group: p.group, coefficients: make([]group.Element, len(p.coefficients))}
	copy(q.coefficients, p.coefficients)
	return q
}

// Equal returns true if both polynomials have the same coefficients.
func (p *Exponent) Equal(other *Exponent) bool {
	if len(p.coefficients) != len(other.coefficients) {
		return false
	}
	for i := range p.coefficients {
		if !p.coefficients[i].Equal(other.coefficients[i]) {
			return false
		}
	}
	return true
}

// WriteTo implements io.WriterTo and should be used within the hash.Hash function.
func (p *Exponent) WriteTo(w io.Writer) (int64, error) {
	// write the number of coefficients
	if err := binary.Write(w, binary.BigEndian, uint32(len(p.coefficients))); err != nil {
		return 0, err
	}
	nAll := int64(4)
	for _, c := range p.coefficients {
		data, err := c.MarshalBinary()
		if err != nil {
			return nAll, err
		}
		n, err := w.Write(data)
		nAll += int64(n)
		if err != nil {
			return nAll, err
		}
	}
	return nAll, nil
}

// Domain implements hash.WriterToWithDomain.
func (*Exponent) Domain() string {
	return "Exponent"
}

// MarshalBinary encodes the coefficients as a cbor array.
func (p *Exponent) MarshalBinary() ([]byte, error) {
	encoded := make([][]byte, len(p.coefficients))
	for i, c := range p.coefficients {
		data, err := c.MarshalBinary()
		if err != nil {
			return nil, err
		}
		encoded[i] = data
	}
	return cbor.Marshal(encoded)
}

// UnmarshalExponent decodes the output of Exponent.MarshalBinary, with coefficients in g.
func UnmarshalExponent(g group.Group, data []byte) (*Exponent, error) {
	var encoded [][]byte
	if err := cbor.Unmarshal(data, &encoded); err != nil {
		return nil, fmt.Errorf("polynomial: %w", err)
	}
	if len(encoded) == 0 {
		return nil, errors.New("polynomial: no coefficients")
	}
	p := &Exponent{group: g, coefficients: make([]group.Element, len(encoded))}
	for i, c := range encoded {
		e, err := g.Unmarshal(c)
		if err != nil {
			return nil, fmt.Errorf("polynomial: coefficient %d: %w", i, err)
		}
		p.coefficients[i] = e
	}
	return p, nil
}

package polynomial

import (
	"errors"
	"io"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/ec-threshold/pkg/math/sample"
)

// Polynomial represents f(X) = a₀ + a₁⋅X + … + aₜ⋅Xᵗ with coefficients in ℤₙ.
type Polynomial struct {
	order        *saferith.Modulus
	coefficients []*saferith.Nat
}

// NewPolynomial generates a Polynomial f(X) = secret + a₁⋅X + … + aₜ⋅Xᵗ,
// with coefficients in ℤₙ sampled from rand, and degree t.
func NewPolynomial(rand io.Reader, order *saferith.Modulus, degree int, constant *saferith.Nat) (*Polynomial, error) {
	if degree < 0 {
		return nil, errors.New("polynomial: negative degree")
	}
	polynomial := &Polynomial{
		order:        order,
		coefficients: make([]*saferith.Nat, degree+1),
	}

	// if the constant is nil, we interpret it as 0.
	if constant == nil {
		constant = new(saferith.Nat).SetUint64(0)
	}
	polynomial.coefficients[0] = new(saferith.Nat).Mod(constant, order)

	for i := 1; i <= degree; i++ {
		c, err := sample.ModN(rand, order)
		if err != nil {
			return nil, err
		}
		polynomial.coefficients[i] = c
	}
	return polynomial, nil
}

// Evaluate evaluates a polynomial in a given variable index
// We use Horner's method: https://en.wikipedia.org/wiki/Horner%27s_method
func (p *Polynomial) Evaluate(index *saferith.Nat) *saferith.Nat {
	x := new(saferith.Nat).Mod(index, p.order)
	if x.EqZero() == 1 {
		panic("attempt to leak secret")
	}

	result := new(saferith.Nat).SetUint64(0)
	// reverse order
	for i := len(p.coefficients) - 1; i >= 0; i-- {
		// bₙ₋₁ = bₙ * x + aₙ₋₁
		result.ModMul(result, x, p.order)
		result.ModAdd(result, p.coefficients[i], p.order)
	}
	return result
}

// Constant returns a copy of the constant coefficient of the polynomial.
func (p *Polynomial) Constant() *saferith.Nat {
	return new(saferith.Nat).SetNat(p.coefficients[0])
}

// Degree is the highest power of the Polynomial.
func (p *Polynomial) Degree() int {
	return len(p.coefficients) - 1
}

// Order is the modulus n of the coefficients.
func (p *Polynomial) Order() *saferith.Modulus {
	return p.order
}

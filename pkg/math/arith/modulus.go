package arith

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/cronokirby/saferith"
)

// ErrNoInverse is returned when an element has no inverse modulo p, i.e. gcd(a, p) ≠ 1.
var ErrNoInverse = errors.New("arith: element is not invertible")

// Modulus wraps a saferith.Modulus representing the prime p of a field 𝔽ₚ.
//
// Primality is assumed and never verified. All results are reduced to [0, p).
type Modulus struct {
	// represents modulus p
	*saferith.Modulus
}

// NewModulus returns the field modulus p.
// p must be odd and greater than 2.
func NewModulus(p *saferith.Nat) (*Modulus, error) {
	if p == nil {
		return nil, errors.New("arith: modulus is nil")
	}
	if p.Big().Cmp(big.NewInt(2)) <= 0 {
		return nil, fmt.Errorf("arith: modulus %v must be > 2", p.Big())
	}
	if p.Big().Bit(0) == 0 {
		return nil, fmt.Errorf("arith: modulus %v must be odd", p.Big())
	}
	return &Modulus{Modulus: saferith.ModulusFromNat(p)}, nil
}

// ModulusFromUint64 is like NewModulus but panics on invalid input.
// It is meant for constants.
func ModulusFromUint64(p uint64) *Modulus {
	m, err := NewModulus(new(saferith.Nat).SetUint64(p))
	if err != nil {
		panic(err)
	}
	return m
}

// ModulusFromBig returns the field modulus p given as a big.Int.
func ModulusFromBig(p *big.Int) (*Modulus, error) {
	if p == nil || p.Sign() <= 0 {
		return nil, errors.New("arith: modulus must be positive")
	}
	return NewModulus(new(saferith.Nat).SetBig(p, p.BitLen()))
}

// Reduce returns a (mod p).
func (m *Modulus) Reduce(a *saferith.Nat) *saferith.Nat {
	return new(saferith.Nat).Mod(a, m.Modulus)
}

// Uint64 returns x (mod p).
func (m *Modulus) Uint64(x uint64) *saferith.Nat {
	return m.Reduce(new(saferith.Nat).SetUint64(x))
}

// Zero returns 0 with the announced length of p.
func (m *Modulus) Zero() *saferith.Nat {
	return m.Uint64(0)
}

// Add returns a + b (mod p).
func (m *Modulus) Add(a, b *saferith.Nat) *saferith.Nat {
	return new(saferith.Nat).ModAdd(m.Reduce(a), m.Reduce(b), m.Modulus)
}

// Sub returns a - b (mod p).
func (m *Modulus) Sub(a, b *saferith.Nat) *saferith.Nat {
	return new(saferith.Nat).ModSub(m.Reduce(a), m.Reduce(b), m.Modulus)
}

// Mul returns a ⋅ b (mod p).
func (m *Modulus) Mul(a, b *saferith.Nat) *saferith.Nat {
	return new(saferith.Nat).ModMul(m.Reduce(a), m.Reduce(b), m.Modulus)
}

// Neg returns -a (mod p).
func (m *Modulus) Neg(a *saferith.Nat) *saferith.Nat {
	return new(saferith.Nat).ModNeg(m.Reduce(a), m.Modulus)
}

// Inv returns the unique x ∈ [0, p) such that a⋅x ≡ 1 (mod p).
// ErrNoInverse is returned when gcd(a, p) ≠ 1, which includes a ≡ 0.
func (m *Modulus) Inv(a *saferith.Nat) (*saferith.Nat, error) {
	return Invert(a, m.Modulus)
}

// Invert returns a⁻¹ (mod n) for any modulus n, which need not be prime or odd.
func Invert(a *saferith.Nat, n *saferith.Modulus) (*saferith.Nat, error) {
	aModN := new(saferith.Nat).Mod(a, n)
	if aModN.EqZero() == 1 || aModN.IsUnit(n) != 1 {
		return nil, fmt.Errorf("%w: %v (mod %v)", ErrNoInverse, aModN.Big(), n.Big())
	}
	return new(saferith.Nat).ModInverse(aModN, n), nil
}

// InvFermat returns a⁻¹ = aᵖ⁻² (mod p).
// The result is only meaningful when p is prime.
func (m *Modulus) InvFermat(a *saferith.Nat) (*saferith.Nat, error) {
	aModP := m.Reduce(a)
	if aModP.EqZero() == 1 {
		return nil, fmt.Errorf("%w: 0 (mod %v)", ErrNoInverse, m.Big())
	}
	// e = p - 2
	e := new(saferith.Nat).Sub(m.Nat(), new(saferith.Nat).SetUint64(2), -1)
	return m.Exp(aModP, e), nil
}

// Exp returns xᵉ (mod p).
func (m *Modulus) Exp(x, e *saferith.Nat) *saferith.Nat {
	return new(saferith.Nat).Exp(m.Reduce(x), e, m.Modulus)
}

// IsZero returns true if a ≡ 0 (mod p).
func (m *Modulus) IsZero(a *saferith.Nat) bool {
	return m.Reduce(a).EqZero() == 1
}

// Equal returns true if a ≡ b (mod p).
func (m *Modulus) Equal(a, b *saferith.Nat) bool {
	return m.Reduce(a).Eq(m.Reduce(b)) == 1
}

// Contains returns true if 0 ≤ a < p, i.e. a is already a canonical field element.
func (m *Modulus) Contains(a *saferith.Nat) bool {
	_, _, lt := a.CmpMod(m.Modulus)
	return lt == 1
}

// MulMod returns a ⋅ b (mod p).
func MulMod(a, b *saferith.Nat, p *Modulus) *saferith.Nat { return p.Mul(a, b) }

// SubMod returns a - b (mod p).
func SubMod(a, b *saferith.Nat, p *Modulus) *saferith.Nat { return p.Sub(a, b) }

// AddMod returns a + b (mod p).
func AddMod(a, b *saferith.Nat, p *Modulus) *saferith.Nat { return p.Add(a, b) }

// InvMod returns a⁻¹ (mod p), or ErrNoInverse.
func InvMod(a *saferith.Nat, p *Modulus) (*saferith.Nat, error) { return p.Inv(a) }

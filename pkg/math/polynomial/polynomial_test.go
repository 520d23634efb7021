package polynomial

import (
	"math/big"
	mrand "math/rand"
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taurusgroup/ec-threshold/pkg/math/curve"
)

func TestPolynomial_Constant(t *testing.T) {
	r := mrand.New(mrand.NewSource(0))
	order := curve.Secp256k1().Order()
	secret := new(saferith.Nat).SetUint64(1234)
	poly, err := NewPolynomial(r, order, 10, secret)
	require.NoError(t, err)
	assert.Equal(t, 10, poly.Degree())
	assert.Equal(t, saferith.Choice(1), poly.Constant().Eq(secret))
}

func TestPolynomial_Evaluate(t *testing.T) {
	r := mrand.New(mrand.NewSource(1))
	order := curve.Secp256k1().Order()
	// f(X) = 1 + X²
	one := new(saferith.Nat).SetUint64(1)
	zero := new(saferith.Nat).SetUint64(0)
	polynomial := &Polynomial{order: order, coefficients: []*saferith.Nat{one, zero, one}}

	for index := 0; index < 100; index++ {
		x := r.Uint32() | 1
		result := big.NewInt(int64(x))
		result.Mul(result, result)
		result.Add(result, big.NewInt(1))
		computedResult := polynomial.Evaluate(new(saferith.Nat).SetUint64(uint64(x)))
		assert.Equal(t, 0, result.Cmp(computedResult.Big()))
	}
}

func TestPolynomial_EvaluateZero(t *testing.T) {
	order := saferith.ModulusFromUint64(7)
	polynomial := &Polynomial{order: order, coefficients: []*saferith.Nat{new(saferith.Nat).SetUint64(3)}}
	assert.Panics(t, func() { polynomial.Evaluate(new(saferith.Nat).SetUint64(7)) })
}

package polynomial

import (
	mrand "math/rand"
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taurusgroup/ec-threshold/pkg/math/arith"
	"github.com/taurusgroup/ec-threshold/pkg/math/curve"
	"github.com/taurusgroup/ec-threshold/pkg/party"
)

func TestLagrange(t *testing.T) {
	order := curve.Secp256k1().Order()
	N := 10
	allIDs := party.Range(N)
	coefsEven, err := Lagrange(order, allIDs)
	require.NoError(t, err)
	coefsOdd, err := Lagrange(order, allIDs[:N-1])
	require.NoError(t, err)
	sumEven := new(saferith.Nat).SetUint64(0)
	sumOdd := new(saferith.Nat).SetUint64(0)
	for _, c := range coefsEven {
		sumEven.ModAdd(sumEven, c, order)
	}
	for _, c := range coefsOdd {
		sumOdd.ModAdd(sumOdd, c, order)
	}
	one := new(saferith.Nat).SetUint64(1)
	assert.Equal(t, saferith.Choice(1), sumEven.Eq(one))
	assert.Equal(t, saferith.Choice(1), sumOdd.Eq(one))
}

func TestLagrange_Interpolate(t *testing.T) {
	r := mrand.New(mrand.NewSource(2))
	order := saferith.ModulusFromUint64(7)
	secret := new(saferith.Nat).SetUint64(5)
	poly, err := NewPolynomial(r, order, 2, secret)
	require.NoError(t, err)

	for _, subset := range []party.IDSlice{{1, 2, 3}, {2, 4, 5}, {1, 3, 5}} {
		coefs, err := Lagrange(order, subset)
		require.NoError(t, err)
		recovered := new(saferith.Nat).SetUint64(0)
		for _, id := range subset {
			term := new(saferith.Nat).ModMul(coefs[id], poly.Evaluate(id.Nat()), order)
			recovered.ModAdd(recovered, term, order)
		}
		assert.Equal(t, saferith.Choice(1), recovered.Eq(secret), "subset %v", subset)
	}
}

func TestLagrange_NotInvertible(t *testing.T) {
	// 3 - 1 = 2 has no inverse mod 28
	_, err := Lagrange(saferith.ModulusFromUint64(28), party.IDSlice{1, 3})
	assert.ErrorIs(t, err, arith.ErrNoInverse)

	_, err = LagrangeFor(saferith.ModulusFromUint64(7), party.IDSlice{1, 2}, 3)
	assert.Error(t, err)
}

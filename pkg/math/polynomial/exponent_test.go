package polynomial

import (
	mrand "math/rand"
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taurusgroup/ec-threshold/pkg/math/curve"
	"github.com/taurusgroup/ec-threshold/pkg/math/group"
)

// subgroup7 is the subgroup of order 7 of y² = x³ + x + 1 (mod 23), generated by (17, 3).
func subgroup7(t *testing.T) group.Group {
	c, err := curve.Toy23().WithBase(
		new(saferith.Nat).SetUint64(17),
		new(saferith.Nat).SetUint64(3),
		new(saferith.Nat).SetUint64(7))
	require.NoError(t, err)
	return group.EllipticCurve(c)
}

func TestExponent_Evaluate(t *testing.T) {
	r := mrand.New(mrand.NewSource(3))
	g := subgroup7(t)
	for x := 0; x < 5; x++ {
		poly, err := NewPolynomial(r, g.Order(), 3, new(saferith.Nat).SetUint64(uint64(x)))
		require.NoError(t, err)
		polyExp, err := NewPolynomialExponent(g, poly)
		require.NoError(t, err)

		for index := uint64(1); index < 7; index++ {
			i := new(saferith.Nat).SetUint64(index)
			lhs, err := group.ScalarBaseMul(g, poly.Evaluate(i))
			require.NoError(t, err)
			rhs, err := polyExp.Evaluate(i)
			require.NoError(t, err)
			assert.True(t, lhs.Equal(rhs), "x = %d, index = %d", x, index)
		}
	}
}

func TestSum(t *testing.T) {
	r := mrand.New(mrand.NewSource(4))
	g := subgroup7(t)
	N, deg := 5, 2
	index := new(saferith.Nat).SetUint64(3)

	sumScalar := new(saferith.Nat).SetUint64(0)
	polysExp := make([]*Exponent, N)
	for i := range polysExp {
		poly, err := NewPolynomial(r, g.Order(), deg, nil)
		require.NoError(t, err)
		polysExp[i], err = NewPolynomialExponent(g, poly)
		require.NoError(t, err)
		sumScalar.ModAdd(sumScalar, poly.Evaluate(index), g.Order())
	}

	summed, err := Sum(polysExp)
	require.NoError(t, err)
	evaluation, err := summed.Evaluate(index)
	require.NoError(t, err)
	expected, err := group.ScalarBaseMul(g, sumScalar)
	require.NoError(t, err)
	assert.True(t, evaluation.Equal(expected))

	_, err = Sum(nil)
	assert.Error(t, err)
}

func TestExponent_Marshal(t *testing.T) {
	r := mrand.New(mrand.NewSource(5))
	g := subgroup7(t)
	poly, err := NewPolynomial(r, g.Order(), 2, new(saferith.Nat).SetUint64(4))
	require.NoError(t, err)
	polyExp, err := NewPolynomialExponent(g, poly)
	require.NoError(t, err)

	data, err := polyExp.MarshalBinary()
	require.NoError(t, err)
	decoded, err := UnmarshalExponent(g, data)
	require.NoError(t, err)
	assert.True(t, polyExp.Equal(decoded))
	assert.True(t, decoded.Constant().Equal(polyExp.Constant()))

	_, err = UnmarshalExponent(g, []byte{0x80})
	assert.Error(t, err)
}

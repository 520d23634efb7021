package curve

import (
	"math/big"
	mrand "math/rand"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taurusgroup/ec-threshold/pkg/math/arith"
)

func TestCurve_IsOnCurve(t *testing.T) {
	c := Toy23()
	assert.True(t, c.IsOnCurve(Identity()))
	assert.True(t, c.IsOnCurve(c.Base()))
	// (5, 11): 11² = 6 but 5³ + 5 + 1 = 16 (mod 23)
	assert.False(t, c.IsOnCurve(c.Point(nat(5), nat(11))))

	_, err := c.NewPoint(nat(5), nat(11))
	assert.ErrorIs(t, err, ErrInvalidPoint)
	assert.ErrorIs(t, c.Validate(c.Point(nat(5), nat(11))), ErrInvalidPoint)
	_, err = c.NewPoint(nat(3+23), nat(10))
	assert.ErrorIs(t, err, ErrInvalidPoint)
	_, err = c.NewPoint(nat(5), nat(4))
	assert.NoError(t, err)
}

func TestCurve_AddIdentity(t *testing.T) {
	c := Toy23()
	for _, p := range toyPoints(c) {
		sum, err := c.Add(p, Identity())
		require.NoError(t, err)
		assert.True(t, sum.Equal(p))
		sum, err = c.Add(Identity(), p)
		require.NoError(t, err)
		assert.True(t, sum.Equal(p))
	}
	sum, err := c.Add(Identity(), Identity())
	require.NoError(t, err)
	assert.True(t, sum.IsIdentity())
}

func TestCurve_AddClosure(t *testing.T) {
	c := Toy23()
	points := toyPoints(c)
	for _, p := range points {
		for _, q := range points {
			sum, err := c.Add(p, q)
			require.NoError(t, err)
			assert.True(t, c.IsOnCurve(sum), "%v + %v = %v", p, q, sum)

			other, err := c.Add(q, p)
			require.NoError(t, err)
			assert.True(t, sum.Equal(other), "addition should commute")
		}
	}
}

func TestCurve_AddSpecialCases(t *testing.T) {
	c := Toy23()
	g := c.Base()

	// vertical pair
	sum, err := c.Add(g, c.Point(nat(3), nat(13)))
	require.NoError(t, err)
	assert.True(t, sum.IsIdentity())
	assert.True(t, c.Negate(g).Equal(c.Point(nat(3), nat(13))))

	diff, err := c.Sub(g, g)
	require.NoError(t, err)
	assert.True(t, diff.IsIdentity())

	// doubling with y = 0 has a vertical tangent
	twoTorsion := c.Point(nat(4), nat(0))
	require.True(t, c.IsOnCurve(twoTorsion))
	double, err := c.Double(twoTorsion)
	require.NoError(t, err)
	assert.True(t, double.IsIdentity())

	double, err = c.Double(g)
	require.NoError(t, err)
	assert.True(t, double.Equal(c.Point(nat(7), nat(12))))
}

func TestCurve_AddNotPrime(t *testing.T) {
	m := arith.ModulusFromUint64(21)
	c, err := NewCurve("", nat(1), nat(1), m)
	require.NoError(t, err)
	p, err := c.NewPoint(nat(0), nat(1))
	require.NoError(t, err)
	q, err := c.NewPoint(nat(7), nat(6))
	require.NoError(t, err)
	_, err = c.Add(p, q)
	assert.ErrorIs(t, err, arith.ErrNoInverse)
}

func TestCurve_ScalarMul(t *testing.T) {
	c := Toy23()
	g := c.Base()
	tests := []struct {
		k    uint64
		want Point
	}{
		{0, Identity()},
		{1, g},
		{2, c.Point(nat(7), nat(12))},
		{3, c.Point(nat(19), nat(5))},
		{5, c.Point(nat(9), nat(16))},
		{7, c.Point(nat(11), nat(3))},
		{14, c.Point(nat(4), nat(0))},
		{28, Identity()},
		{29, g},
	}
	for _, tt := range tests {
		got, err := c.ScalarMul(nat(tt.k), g)
		require.NoError(t, err)
		assert.True(t, got.Equal(tt.want), "%d⋅G = %v, want %v", tt.k, got, tt.want)
	}

	for _, p := range toyPoints(c) {
		got, err := c.ScalarMul(nat(0), p)
		require.NoError(t, err)
		assert.True(t, got.IsIdentity())
	}
	got, err := c.ScalarMul(nat(12345), Identity())
	require.NoError(t, err)
	assert.True(t, got.IsIdentity())
}

func TestCurve_ScalarMulHomomorphism(t *testing.T) {
	c := Toy23()
	for _, p := range toyPoints(c) {
		for k := uint64(0); k < 30; k += 3 {
			for m := uint64(0); m < 30; m += 4 {
				kp, err := c.ScalarMul(nat(k), p)
				require.NoError(t, err)
				mp, err := c.ScalarMul(nat(m), p)
				require.NoError(t, err)
				sum, err := c.Add(kp, mp)
				require.NoError(t, err)
				expected, err := c.ScalarMul(nat(k+m), p)
				require.NoError(t, err)
				assert.True(t, expected.Equal(sum), "(%d + %d)⋅%v", k, m, p)
			}
		}
	}
}

func TestSecp256k1(t *testing.T) {
	c := Secp256k1()
	ref := secp256k1.S256()
	r := mrand.New(mrand.NewSource(0))
	buf := make([]byte, 32)

	var previous Point
	var prevX, prevY *big.Int
	for i := 0; i < 4; i++ {
		_, _ = r.Read(buf)
		k := new(big.Int).SetBytes(buf)
		k.Mod(k, ref.Params().N)
		kNat, err := arith.NatFromBig(k)
		require.NoError(t, err)

		got, err := c.ScalarBaseMul(kNat)
		require.NoError(t, err)
		x, y := ref.ScalarBaseMult(k.Bytes())
		assert.Equal(t, 0, got.X().Big().Cmp(x))
		assert.Equal(t, 0, got.Y().Big().Cmp(y))
		assert.True(t, c.IsOnCurve(got))

		if i > 0 {
			sum, err := c.Add(previous, got)
			require.NoError(t, err)
			sx, sy := ref.Add(prevX, prevY, x, y)
			assert.Equal(t, 0, sum.X().Big().Cmp(sx))
			assert.Equal(t, 0, sum.Y().Big().Cmp(sy))
		}
		previous, prevX, prevY = got, x, y
	}
}

func TestCurve_MarshalPoint(t *testing.T) {
	c := Toy23()
	for _, p := range append(toyPoints(c), Identity()) {
		data := c.MarshalPoint(p)
		if p.IsIdentity() {
			assert.Equal(t, []byte{0}, data)
		} else {
			assert.Len(t, data, c.PointBytes())
		}
		decoded, err := c.UnmarshalPoint(data)
		require.NoError(t, err)
		assert.True(t, decoded.Equal(p))
	}

	_, err := c.UnmarshalPoint([]byte{4, 5, 11})
	assert.ErrorIs(t, err, ErrInvalidPoint)
	_, err = c.UnmarshalPoint([]byte{4, 3})
	assert.Error(t, err)
	_, err = c.UnmarshalPoint([]byte{2, 3, 10})
	assert.Error(t, err)
	_, err = c.UnmarshalPoint(nil)
	assert.Error(t, err)
}

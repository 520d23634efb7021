package arith

import (
	"math/big"
	mrand "math/rand"
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// p = 2²⁵⁵ - 19
var p25519 = MustParseNat("0x7fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffed")

func TestNewModulus(t *testing.T) {
	tests := []struct {
		name  string
		p     uint64
		valid bool
	}{
		{"0", 0, false},
		{"1", 1, false},
		{"2", 2, false},
		{"4", 4, false},
		{"3", 3, true},
		{"23", 23, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewModulus(new(saferith.Nat).SetUint64(tt.p))
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestModulus_MulSub(t *testing.T) {
	p := ModulusFromUint64(23)
	assert.True(t, p.Equal(MulMod(p.Uint64(5), p.Uint64(11), p), p.Uint64(9)))
	assert.True(t, p.Equal(SubMod(p.Uint64(3), p.Uint64(7), p), p.Uint64(19)))
	assert.True(t, p.Equal(AddMod(p.Uint64(20), p.Uint64(7), p), p.Uint64(4)))
	// operands larger than p are reduced first
	large := new(saferith.Nat).SetUint64(23*1000 + 4)
	assert.True(t, p.Equal(MulMod(large, large, p), p.Uint64(16)))
}

func TestInvMod(t *testing.T) {
	p := ModulusFromUint64(23)
	one := p.Uint64(1)
	for a := uint64(1); a < 23; a++ {
		aNat := p.Uint64(a)
		inv, err := InvMod(aNat, p)
		require.NoError(t, err)
		assert.True(t, p.Contains(inv))
		assert.True(t, p.Equal(MulMod(aNat, inv, p), one), "a = %d", a)

		fermat, err := p.InvFermat(aNat)
		require.NoError(t, err)
		assert.True(t, p.Equal(inv, fermat))
	}

	_, err := InvMod(p.Zero(), p)
	assert.ErrorIs(t, err, ErrNoInverse)
	_, err = InvMod(new(saferith.Nat).SetUint64(46), p)
	assert.ErrorIs(t, err, ErrNoInverse)
	_, err = p.InvFermat(p.Zero())
	assert.ErrorIs(t, err, ErrNoInverse)
}

func TestInvMod_NotPrime(t *testing.T) {
	// 21 = 3⋅7 is accepted as a modulus, but 3 has no inverse.
	m := ModulusFromUint64(21)
	_, err := m.Inv(m.Uint64(3))
	assert.ErrorIs(t, err, ErrNoInverse)
	x, err := m.Inv(m.Uint64(2))
	require.NoError(t, err)
	assert.True(t, m.Equal(x, m.Uint64(11)))
}

func TestModulus_Large(t *testing.T) {
	r := mrand.New(mrand.NewSource(0))
	p, err := NewModulus(p25519)
	require.NoError(t, err)
	pBig := p.Big()
	one := p.Uint64(1)
	for i := 0; i < 20; i++ {
		a := new(big.Int).Rand(r, pBig)
		b := new(big.Int).Rand(r, pBig)
		aNat, _ := NatFromBig(a)
		bNat, _ := NatFromBig(b)

		expected := new(big.Int).Mul(a, b)
		expected.Mod(expected, pBig)
		assert.Equal(t, 0, MulMod(aNat, bNat, p).Big().Cmp(expected))

		expected.Sub(a, b)
		expected.Mod(expected, pBig)
		assert.Equal(t, 0, SubMod(aNat, bNat, p).Big().Cmp(expected))

		if a.Sign() == 0 {
			continue
		}
		inv, err := InvMod(aNat, p)
		require.NoError(t, err)
		assert.True(t, p.Equal(MulMod(aNat, inv, p), one))
	}
}

func TestParseNat(t *testing.T) {
	x, err := ParseNat("23")
	require.NoError(t, err)
	assert.EqualValues(t, 23, x.Big().Int64())
	x, err = ParseNat(" 0x17 ")
	require.NoError(t, err)
	assert.EqualValues(t, 23, x.Big().Int64())
	_, err = ParseNat("-3")
	assert.Error(t, err)
	_, err = ParseNat("abc")
	assert.Error(t, err)
}

func TestBit(t *testing.T) {
	x := new(saferith.Nat).SetUint64(0b1011_0000_0001)
	expected := []uint{1, 0, 0, 0, 0, 0, 0, 0, 1, 1, 0, 1, 0, 0}
	for i, b := range expected {
		assert.Equal(t, b, Bit(x, i), "bit %d", i)
	}
	assert.Equal(t, 12, BitLen(x))
	assert.Equal(t, 0, BitLen(new(saferith.Nat).SetUint64(0)))
}

func TestInvert_EvenModulus(t *testing.T) {
	n := saferith.ModulusFromUint64(28)
	x, err := Invert(new(saferith.Nat).SetUint64(3), n)
	require.NoError(t, err)
	assert.EqualValues(t, 19, x.Big().Int64())
	_, err = Invert(new(saferith.Nat).SetUint64(14), n)
	assert.ErrorIs(t, err, ErrNoInverse)
}

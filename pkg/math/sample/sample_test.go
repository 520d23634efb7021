package sample

import (
	"bytes"
	"crypto/rand"
	"errors"
	"io"
	mrand "math/rand"
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taurusgroup/ec-threshold/pkg/math/arith"
)

func TestModN(t *testing.T) {
	n := saferith.ModulusFromUint64(3 * 11 * 65519)
	x, err := ModN(rand.Reader, n)
	require.NoError(t, err)
	_, _, lt := x.CmpMod(n)
	assert.Equal(t, saferith.Choice(1), lt, "ModN generated a number >= %v: %v", n, x)
}

func TestNonce_Range(t *testing.T) {
	r := mrand.New(mrand.NewSource(0))
	p := arith.ModulusFromUint64(23)
	seen := make(map[int64]bool)
	for i := 0; i < 2000; i++ {
		k, err := Nonce(r, p)
		require.NoError(t, err)
		v := k.Big().Int64()
		require.True(t, v >= 1 && v < 22, "k = %d", v)
		seen[v] = true
	}
	// every value of [1, 22) shows up
	assert.Len(t, seen, 21)
}

func TestNonce_SmallestField(t *testing.T) {
	p := arith.ModulusFromUint64(3)
	k, err := Nonce(rand.Reader, p)
	require.NoError(t, err)
	assert.EqualValues(t, 1, k.Big().Int64())
}

func TestInterval(t *testing.T) {
	lo := new(saferith.Nat).SetUint64(5)
	_, err := Interval(rand.Reader, lo, lo)
	assert.Error(t, err)

	hi := new(saferith.Nat).SetUint64(1000)
	for i := 0; i < 100; i++ {
		x, err := Interval(rand.Reader, lo, hi)
		require.NoError(t, err)
		v := x.Big().Int64()
		assert.True(t, v >= 5 && v < 1000)
	}
}

func TestUnitModN(t *testing.T) {
	n := saferith.ModulusFromUint64(28)
	for i := 0; i < 50; i++ {
		u, err := UnitModN(rand.Reader, n)
		require.NoError(t, err)
		assert.Equal(t, saferith.Choice(1), u.IsUnit(n))
	}
}

// countingReader counts the calls to Read on the wrapped reader.
type countingReader struct {
	r     io.Reader
	calls int
}

func (c *countingReader) Read(p []byte) (int, error) {
	c.calls++
	return c.r.Read(p)
}

func TestModN_ShortReader(t *testing.T) {
	n := saferith.ModulusFromUint64(1 << 20)
	_, err := ModN(bytes.NewReader([]byte{1}), n)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	r := &countingReader{r: bytes.NewReader(nil)}
	_, err = ModN(r, n)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, 1, r.calls)
}

// flakyReader fails its first reads with a transient error.
type flakyReader struct {
	failures int
}

func (f *flakyReader) Read(p []byte) (int, error) {
	if f.failures > 0 {
		f.failures--
		return 0, errors.New("temporarily unavailable")
	}
	for i := range p {
		p[i] = 1
	}
	return len(p), nil
}

func TestModN_RetryTransient(t *testing.T) {
	n := saferith.ModulusFromUint64(23)
	x, err := ModN(&flakyReader{failures: 3}, n)
	require.NoError(t, err)
	assert.EqualValues(t, 1, x.Big().Int64())
}

func TestSeeded(t *testing.T) {
	a, b := make([]byte, 64), make([]byte, 64)
	_, _ = Seeded([]byte("seed")).Read(a)
	_, _ = Seeded([]byte("seed")).Read(b)
	assert.Equal(t, a, b)

	_, _ = Seeded([]byte("other seed")).Read(b)
	assert.NotEqual(t, a, b)

	p := arith.ModulusFromUint64(23)
	k1, err := Nonce(Seeded([]byte("k")), p)
	require.NoError(t, err)
	k2, err := Nonce(Seeded([]byte("k")), p)
	require.NoError(t, err)
	assert.True(t, p.Equal(k1, k2))
}

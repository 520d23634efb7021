package hash

import (
	"errors"
	"io"
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taurusgroup/ec-threshold/pkg/math/curve"
	"github.com/taurusgroup/ec-threshold/pkg/math/group"
	"github.com/taurusgroup/ec-threshold/pkg/party"
)

func TestHash_WriteAny(t *testing.T) {
	testFunc := func(vs ...interface{}) error {
		h := New()
		for _, v := range vs {
			if err := h.WriteAny(v); err != nil {
				return err
			}
		}
		return nil
	}

	g := group.EllipticCurve(curve.Toy23())
	assert.NoError(t, testFunc(new(saferith.Nat).SetUint64(35)))
	assert.NoError(t, testFunc(g.Generator()))
	assert.NoError(t, testFunc([]byte{1, 4, 6}))
	assert.NoError(t, testFunc(party.ID(3), party.Range(3)))

	var n *saferith.Nat
	assert.Error(t, testFunc(n))
	assert.Panics(t, func() { _ = testFunc(3.14) })
}

func TestHash_Domains(t *testing.T) {
	// the same bytes under different domains give different digests
	h1, h2 := New(), New()
	require.NoError(t, h1.WriteAny(BytesWithDomain{TheDomain: "a", Bytes: []byte{1, 2}}))
	require.NoError(t, h2.WriteAny(BytesWithDomain{TheDomain: "b", Bytes: []byte{1, 2}}))
	assert.NotEqual(t, h1.Sum(), h2.Sum())

	h3 := h1.Clone()
	assert.Equal(t, h1.Sum(), h3.Sum())
	_ = h3.WriteAny([]byte{3})
	assert.NotEqual(t, h1.Sum(), h3.Sum())
	assert.Len(t, h1.Sum(), DigestLengthBytes)
}

type failingWriterTo struct{}

func (failingWriterTo) WriteTo(io.Writer) (int64, error) { return 0, errors.New("broken") }
func (failingWriterTo) Domain() string                   { return "failing" }

func TestHash_WriteAnyError(t *testing.T) {
	h := New()
	assert.Error(t, h.WriteAny(failingWriterTo{}))

	// nil and empty bytes hash the same, and differ from a missing value
	empty, nilBytes, missing := New(), New(), New()
	require.NoError(t, empty.WriteAny(BytesWithDomain{TheDomain: "SSID", Bytes: []byte{}}))
	require.NoError(t, nilBytes.WriteAny(BytesWithDomain{TheDomain: "SSID"}))
	assert.Equal(t, empty.Sum(), nilBytes.Sum())
	assert.NotEqual(t, missing.Sum(), nilBytes.Sum())
}

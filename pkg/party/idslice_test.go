package party

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDSlice_Valid(t *testing.T) {
	tests := []struct {
		name  string
		ids   IDSlice
		valid bool
	}{
		{"empty", IDSlice{}, true},
		{"range", Range(5), true},
		{"zero", IDSlice{0, 1}, false},
		{"duplicate", IDSlice{1, 2, 2}, false},
		{"unsorted", IDSlice{3, 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.valid {
				assert.NoError(t, tt.ids.Valid())
			} else {
				assert.Error(t, tt.ids.Valid())
			}
		})
	}
}

func TestIDSlice_Contains(t *testing.T) {
	ids := NewIDSlice([]ID{5, 2, 9})
	require.NoError(t, ids.Valid())
	assert.True(t, ids.Contains(2, 9))
	assert.False(t, ids.Contains(2, 3))
	assert.False(t, IDSlice{}.Contains(1))

	removed := ids.Remove(5)
	assert.Equal(t, IDSlice{2, 9}, removed)
	assert.Equal(t, IDSlice{2, 5, 9}, ids)
}

func TestIDSlice_WriteTo(t *testing.T) {
	var buf bytes.Buffer
	n, err := Range(3).WriteTo(&buf)
	require.NoError(t, err)
	assert.EqualValues(t, 4+3*ByteSize, n)
	assert.Equal(t, []byte{0, 0, 0, 3, 0, 1, 0, 2, 0, 3}, buf.Bytes())
}

func TestIDFromString(t *testing.T) {
	id, err := IDFromString("42")
	require.NoError(t, err)
	assert.Equal(t, ID(42), id)
	assert.EqualValues(t, 42, id.Nat().Big().Int64())
	_, err = IDFromString("70000")
	assert.Error(t, err)
}

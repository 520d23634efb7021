package party

import (
	"encoding/binary"
	"strconv"

	"github.com/cronokirby/saferith"
)

// ByteSize is the number of bytes required to store an ID.
const ByteSize = 2

// ID identifies a key share holder. It doubles as the evaluation point of its Shamir share,
// so 0 is never a valid ID.
type ID uint16

// Nat returns the ID as a natural number.
func (id ID) Nat() *saferith.Nat {
	return new(saferith.Nat).SetUint64(uint64(id))
}

// Bytes returns a []byte slice of length party.ByteSize.
func (id ID) Bytes() []byte {
	out := make([]byte, ByteSize)
	binary.BigEndian.PutUint16(out, uint16(id))
	return out
}

// String returns a base 10 representation of ID.
func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// IDFromString reads a base 10 string and attempts to generate an ID from it.
func IDFromString(str string) (ID, error) {
	p, err := strconv.ParseUint(str, 10, 16)
	if err != nil {
		return 0, err
	}
	return ID(p), nil
}

package hash

import (
	"encoding"
	"fmt"
	"io"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/ec-threshold/pkg/party"
	"github.com/zeebo/blake3"
)

// DigestLengthBytes is the length of the output of Sum.
const DigestLengthBytes = 32

// Hash is the hash function we use for ciphertext digests and session identifiers.
//
// Internally, this is a wrapper around blake3.Hasher, but any hash function with
// an easily extendable output would work as well.
type Hash struct {
	h *blake3.Hasher
}

// New creates an empty Hash. Data is added with WriteAny.
func New() *Hash {
	return &Hash{h: blake3.New()}
}

// Digest returns a reader for the current output of the function.
//
// This finalizes the current state of the hash, and returns what's
// essentially a stream of random bytes.
func (hash *Hash) Digest() io.Reader {
	return hash.h.Digest()
}

// Sum returns a slice of length DigestLengthBytes resulting from the current hash state.
// If a different length is required, use io.ReadFull(hash.Digest(), out) instead.
func (hash *Hash) Sum() []byte {
	out := make([]byte, DigestLengthBytes)
	if _, err := io.ReadFull(hash.Digest(), out); err != nil {
		panic(fmt.Sprintf("hash.Sum: internal hash failure: %v", err))
	}
	return out
}

// WriteAny takes many different data types and writes them to the hash state.
//
// Currently supported types:
//
//   - []byte
//   - *saferith.Nat
//   - party.ID
//   - hash.WriterToWithDomain
//   - encoding.BinaryMarshaler
//
// This function will apply its own domain separation for all but WriterToWithDomain,
// which already suggests which domain to use.
func (hash *Hash) WriteAny(data ...interface{}) error {
	var err error
	for _, d := range data {
		switch t := d.(type) {
		case []byte:
			err = writeWithDomain(hash.h, &BytesWithDomain{
				TheDomain: "[]byte",
				Bytes:     t,
			})
			if err != nil {
				return fmt.Errorf("hash.Hash: write []byte: %w", err)
			}
		case *saferith.Nat:
			if t == nil {
				return fmt.Errorf("hash.Hash: write *saferith.Nat: nil")
			}
			err = writeWithDomain(hash.h, &BytesWithDomain{
				TheDomain: "saferith.Nat",
				Bytes:     t.Bytes(),
			})
			if err != nil {
				return fmt.Errorf("hash.Hash: write *saferith.Nat: %w", err)
			}
		case party.ID:
			err = writeWithDomain(hash.h, &BytesWithDomain{
				TheDomain: "party.ID",
				Bytes:     t.Bytes(),
			})
			if err != nil {
				return fmt.Errorf("hash.Hash: write party.ID: %w", err)
			}
		case WriterToWithDomain:
			if err = writeWithDomain(hash.h, t); err != nil {
				return fmt.Errorf("hash.Hash: write io.WriterTo: %w", err)
			}
		case encoding.BinaryMarshaler:
			data, err := t.MarshalBinary()
			if err != nil {
				return fmt.Errorf("hash.Hash: marshal %T: %w", t, err)
			}
			err = writeWithDomain(hash.h, &BytesWithDomain{
				TheDomain: fmt.Sprintf("%T", t),
				Bytes:     data,
			})
			if err != nil {
				return fmt.Errorf("hash.Hash: write %T: %w", t, err)
			}
		default:
			panic(fmt.Sprintf("hash.Hash: unsupported type %T", d))
		}
	}
	return nil
}

// Clone returns a copy of the Hash in its current state.
func (hash *Hash) Clone() *Hash {
	return &Hash{h: hash.h.Clone()}
}

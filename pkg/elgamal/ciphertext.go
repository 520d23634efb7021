package elgamal

import (
	"errors"
	"fmt"
	"io"

	"github.com/cronokirby/saferith"
	"github.com/fxamacker/cbor/v2"
	"github.com/taurusgroup/ec-threshold/pkg/math/arith"
	"github.com/taurusgroup/ec-threshold/pkg/math/group"
)

// Ciphertext is an immutable encryption of a pair of field elements.
type Ciphertext struct {
	// MaskingPoint = k⋅G
	MaskingPoint group.Element
	// S1 = c⋅x₁, S2 = c⋅x₂ where c is the mask of k⋅d⋅G
	S1, S2 *saferith.Nat
}

// Valid returns true if the masking point is not the identity and both blinded values are reduced.
func (ct *Ciphertext) Valid() bool {
	if ct == nil || ct.MaskingPoint == nil || ct.MaskingPoint.IsIdentity() ||
		ct.S1 == nil || ct.S2 == nil {
		return false
	}
	field := ct.MaskingPoint.Group().Field()
	return field.Contains(ct.S1) && field.Contains(ct.S2)
}

// Field returns the field the blinded values live in.
func (ct *Ciphertext) Field() *arith.Modulus {
	return ct.MaskingPoint.Group().Field()
}

// WriteTo implements io.WriterTo and should be used within the hash.Hash function.
func (ct *Ciphertext) WriteTo(w io.Writer) (int64, error) {
	if !ct.Valid() {
		return 0, errors.New("elgamal: invalid ciphertext")
	}
	var total int64
	buf, err := ct.MaskingPoint.MarshalBinary()
	if err != nil {
		return 0, err
	}
	size := (ct.Field().BitLen() + 7) / 8
	for _, b := range [][]byte{buf, fixed(ct.S1, size), fixed(ct.S2, size)} {
		n, err := w.Write(b)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Domain implements hash.WriterToWithDomain.
func (*Ciphertext) Domain() string {
	return "ElGamal Ciphertext"
}

func (ct *Ciphertext) String() string {
	return fmt.Sprintf("Ciphertext{MaskingPoint: %v, S1: %v, S2: %v}", ct.MaskingPoint, ct.S1.Big(), ct.S2.Big())
}

func fixed(x *saferith.Nat, size int) []byte {
	return x.Big().FillBytes(make([]byte, size))
}

type ciphertextMarshal struct {
	Group        string
	MaskingPoint []byte
	S1, S2       []byte
}

// MarshalBinary implements encoding.BinaryMarshaler using cbor.
func (ct *Ciphertext) MarshalBinary() ([]byte, error) {
	if !ct.Valid() {
		return nil, errors.New("elgamal: invalid ciphertext")
	}
	mp, err := ct.MaskingPoint.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return cbor.Marshal(&ciphertextMarshal{
		Group:        ct.MaskingPoint.Group().Name(),
		MaskingPoint: mp,
		S1:           ct.S1.Bytes(),
		S2:           ct.S2.Bytes(),
	})
}

// UnmarshalCiphertext decodes the output of Ciphertext.MarshalBinary, whose masking point must belong to g.
func UnmarshalCiphertext(g group.Group, data []byte) (*Ciphertext, error) {
	var cm ciphertextMarshal
	if err := cbor.Unmarshal(data, &cm); err != nil {
		return nil, fmt.Errorf("elgamal: %w", err)
	}
	if cm.Group != g.Name() {
		return nil, fmt.Errorf("elgamal: ciphertext for %q, expected %q: %w", cm.Group, g.Name(), group.ErrWrongGroup)
	}
	mp, err := g.Unmarshal(cm.MaskingPoint)
	if err != nil {
		return nil, fmt.Errorf("elgamal: masking point: %w", err)
	}
	ct := &Ciphertext{
		MaskingPoint: mp,
		S1:           new(saferith.Nat).SetBytes(cm.S1),
		S2:           new(saferith.Nat).SetBytes(cm.S2),
	}
	if !ct.Valid() {
		return nil, errors.New("elgamal: invalid ciphertext")
	}
	return ct, nil
}

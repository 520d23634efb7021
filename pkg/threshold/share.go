// Package threshold splits an ElGamal private key among holders and recombines their partial decryptions.
//
// Two combiners are provided. Combine implements the aggregate rule: the partial values
// qᵢ = dᵢ⋅M.x are summed to Q and both blinded values are divided by Q. Since
// Q = d⋅M.x while the ciphertext was blinded with (d⋅M).x, this only recovers the plaintext
// when those two values happen to coincide mod p. CombinePoints and RecoverPoints work on
// point shares Dᵢ = dᵢ⋅M instead and always recover d⋅M, additively for n-of-n sharings and
// with Lagrange coefficients for t-of-n sharings.
package threshold

import (
	"errors"
	"fmt"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/ec-threshold/pkg/math/group"
	"github.com/taurusgroup/ec-threshold/pkg/party"
)

var (
	// ErrQuorum is returned when fewer shares than required are combined.
	ErrQuorum = errors.New("threshold: not enough shares")
	// ErrDuplicateShare is returned when the same holder appears twice in a combination.
	ErrDuplicateShare = errors.New("threshold: duplicate share")
	// ErrInvalidShare is returned when a key share does not match the dealer's commitments.
	ErrInvalidShare = errors.New("threshold: share does not match commitments")
)

// KeyShare is the share dᵢ of the private key held by a single holder. It is never transmitted.
type KeyShare struct {
	ID    party.ID
	Value *saferith.Nat
}

// PartialDecryption is qᵢ = dᵢ⋅M.x (mod p), the contribution of one holder to the aggregate combiner.
type PartialDecryption struct {
	ID    party.ID
	Value *saferith.Nat
}

// PointShare is Dᵢ = dᵢ⋅M, the contribution of one holder to the point combiners.
type PointShare struct {
	ID    party.ID
	Value group.Element
}

// PartialDecrypt returns qᵢ = dᵢ⋅M.x (mod p).
// An error wrapping arith.ErrNoInverse is returned when M has no mask, i.e. it is the identity.
func PartialDecrypt(share KeyShare, maskingPoint group.Element) (PartialDecryption, error) {
	mask, err := maskingPoint.Mask()
	if err != nil {
		return PartialDecryption{}, fmt.Errorf("threshold: partial decryption of %v: %w", share.ID, err)
	}
	field := maskingPoint.Group().Field()
	return PartialDecryption{ID: share.ID, Value: field.Mul(share.Value, mask)}, nil
}

// PartialDecryptPoint returns Dᵢ = dᵢ⋅M.
func PartialDecryptPoint(share KeyShare, maskingPoint group.Element) (PointShare, error) {
	if maskingPoint.IsIdentity() {
		return PointShare{}, fmt.Errorf("threshold: partial decryption of %v: masking point is the identity", share.ID)
	}
	d, err := maskingPoint.ScalarMul(share.Value)
	if err != nil {
		return PointShare{}, fmt.Errorf("threshold: partial decryption of %v: %w", share.ID, err)
	}
	return PointShare{ID: share.ID, Value: d}, nil
}

// Package elgamal implements a didactic ElGamal-style scheme that blinds a pair of field elements.
//
// A ciphertext is (k⋅G, c⋅x₁, c⋅x₂) where c is the mask of k⋅d⋅G. Both plaintexts are blinded
// with the same c, so x₁/x₂ = s₁/s₂ leaks to anyone holding the ciphertext, and a known x₁ reveals x₂.
// This scheme must not be used to protect real data.
package elgamal

import (
	"errors"
	"fmt"
	"io"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/ec-threshold/internal/params"
	"github.com/taurusgroup/ec-threshold/pkg/math/arith"
	"github.com/taurusgroup/ec-threshold/pkg/math/group"
	"github.com/taurusgroup/ec-threshold/pkg/math/sample"
)

var (
	// ErrDegenerateNonce is returned when k⋅d⋅G cannot blind a plaintext.
	ErrDegenerateNonce = errors.New("elgamal: nonce yields a degenerate shared point")
	// ErrPlaintextRange is returned for plaintexts outside [0, p).
	ErrPlaintextRange = errors.New("elgamal: plaintext not reduced mod p")
)

// Encrypt samples k ∈ [1, p - 1) from rand and encrypts (x₁, x₂) to the public key d⋅base.
//
// k is redrawn whenever k⋅d⋅base is the identity or has a zero mask.
func Encrypt(rand io.Reader, base group.Element, d, x1, x2 *saferith.Nat) (*Ciphertext, error) {
	public, err := base.ScalarMul(d)
	if err != nil {
		return nil, fmt.Errorf("elgamal: shared point: %w", err)
	}
	return EncryptTo(rand, base, public, x1, x2)
}

// EncryptTo is Encrypt given the public key d⋅base rather than d.
func EncryptTo(rand io.Reader, base, public group.Element, x1, x2 *saferith.Nat) (*Ciphertext, error) {
	if base.IsIdentity() || public.IsIdentity() {
		return nil, errors.New("elgamal: base point and public key must not be the identity")
	}
	field := base.Group().Field()
	for i := 0; i < params.MaxIterations; i++ {
		k, err := sample.Nonce(rand, field)
		if err != nil {
			return nil, fmt.Errorf("elgamal: sample nonce: %w", err)
		}
		ct, err := EncryptWithNonce(k, base, public, x1, x2)
		if errors.Is(err, ErrDegenerateNonce) {
			continue
		}
		return ct, err
	}
	return nil, fmt.Errorf("elgamal: %w", sample.ErrMaxIterations)
}

// EncryptWithNonce encrypts (x₁, x₂) with the ephemeral scalar k:
//
//	maskingPoint = k⋅base
//	combined     = k⋅public
//	s₁ = combined.x ⋅ x₁, s₂ = combined.x ⋅ x₂ (mod p)
//
// ErrDegenerateNonce is returned instead of redrawing when combined cannot blind the plaintexts.
func EncryptWithNonce(k *saferith.Nat, base, public group.Element, x1, x2 *saferith.Nat) (*Ciphertext, error) {
	field := base.Group().Field()
	if !field.Contains(x1) || !field.Contains(x2) {
		return nil, ErrPlaintextRange
	}
	maskingPoint, err := base.ScalarMul(k)
	if err != nil {
		return nil, fmt.Errorf("elgamal: masking point: %w", err)
	}
	combined, err := public.ScalarMul(k)
	if err != nil {
		return nil, fmt.Errorf("elgamal: combined point: %w", err)
	}
	if combined.IsIdentity() {
		return nil, ErrDegenerateNonce
	}
	mask, err := combined.Mask()
	if err != nil || field.IsZero(mask) {
		return nil, ErrDegenerateNonce
	}
	return &Ciphertext{
		MaskingPoint: maskingPoint,
		S1:           field.Mul(mask, x1),
		S2:           field.Mul(mask, x2),
	}, nil
}

// Decrypt recovers (x₁, x₂) with the full private key d.
// An error wrapping arith.ErrNoInverse is returned when the mask of d⋅maskingPoint is 0.
func Decrypt(ct *Ciphertext, d *saferith.Nat) (x1, x2 *saferith.Nat, err error) {
	if !ct.Valid() {
		return nil, nil, errors.New("elgamal: invalid ciphertext")
	}
	combined, err := ct.MaskingPoint.ScalarMul(d)
	if err != nil {
		return nil, nil, fmt.Errorf("elgamal: decrypt: %w", err)
	}
	return Unmask(ct, combined)
}

// Unmask recovers (x₁, x₂) from the shared point d⋅maskingPoint, however it was obtained.
func Unmask(ct *Ciphertext, combined group.Element) (x1, x2 *saferith.Nat, err error) {
	mask, err := combined.Mask()
	if err != nil {
		return nil, nil, fmt.Errorf("elgamal: unmask: %w", err)
	}
	return UnmaskScalar(ct.S1, ct.S2, mask, combined.Group().Field())
}

// UnmaskScalar returns (s₁⋅c⁻¹, s₂⋅c⁻¹) mod p.
func UnmaskScalar(s1, s2, c *saferith.Nat, field *arith.Modulus) (x1, x2 *saferith.Nat, err error) {
	cInv, err := field.Inv(c)
	if err != nil {
		return nil, nil, fmt.Errorf("elgamal: unmask: %w", err)
	}
	return field.Mul(s1, cInv), field.Mul(s2, cInv), nil
}

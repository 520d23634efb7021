package threshold

import (
	"fmt"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/ec-threshold/internal/params"
	"github.com/taurusgroup/ec-threshold/pkg/elgamal"
	"github.com/taurusgroup/ec-threshold/pkg/math/arith"
	"github.com/taurusgroup/ec-threshold/pkg/math/group"
	"github.com/taurusgroup/ec-threshold/pkg/math/polynomial"
	"github.com/taurusgroup/ec-threshold/pkg/party"
)

// MinQuorum is the smallest number of partial decryptions Combine accepts.
const MinQuorum = params.MinQuorum

// Combine applies the aggregate rule Q = Σqᵢ, x₁ = s₁⋅Q⁻¹, x₂ = s₂⋅Q⁻¹ (mod p).
//
// The result is the plaintext only if Q ≡ (d⋅M).x, which does not hold in general.
// An error wrapping arith.ErrNoInverse is returned when Q ≡ 0.
func Combine(s1, s2 *saferith.Nat, partials []PartialDecryption, p *arith.Modulus) (x1, x2 *saferith.Nat, err error) {
	if len(partials) < MinQuorum {
		return nil, nil, fmt.Errorf("%w: got %d partial decryptions, need %d", ErrQuorum, len(partials), MinQuorum)
	}
	ids := make([]party.ID, 0, len(partials))
	for _, q := range partials {
		ids = append(ids, q.ID)
	}
	if err = checkDistinct(ids); err != nil {
		return nil, nil, err
	}

	q := p.Zero()
	for _, partial := range partials {
		q = p.Add(q, partial.Value)
	}
	x1, x2, err = elgamal.UnmaskScalar(s1, s2, q, p)
	if err != nil {
		return nil, nil, fmt.Errorf("threshold: combine: %w", err)
	}
	return x1, x2, nil
}

// CombinePoints returns ΣDᵢ, which equals d⋅M when the shares are an additive sharing of d.
func CombinePoints(g group.Group, shares []PointShare) (group.Element, error) {
	if len(shares) == 0 {
		return nil, fmt.Errorf("%w: no point shares", ErrQuorum)
	}
	ids := make([]party.ID, 0, len(shares))
	elements := make([]group.Element, 0, len(shares))
	for _, s := range shares {
		ids = append(ids, s.ID)
		elements = append(elements, s.Value)
	}
	if err := checkDistinct(ids); err != nil {
		return nil, err
	}
	sum, err := group.Sum(g, elements...)
	if err != nil {
		return nil, fmt.Errorf("threshold: combine points: %w", err)
	}
	return sum, nil
}

// RecoverPoints returns Σλᵢ⋅Dᵢ, where λᵢ are the Lagrange coefficients at 0 for the holders
// of the given shares. This equals d⋅M when at least threshold+1 shares of a Shamir sharing are given.
//
// The group must have a known order n, and the holder IDs must give invertible differences mod n.
func RecoverPoints(g group.Group, threshold int, shares []PointShare) (group.Element, error) {
	if len(shares) < threshold+1 {
		return nil, fmt.Errorf("%w: got %d point shares, need %d", ErrQuorum, len(shares), threshold+1)
	}
	order := g.Order()
	if order == nil {
		return nil, fmt.Errorf("threshold: %s has unknown order", g.Name())
	}
	ids := make([]party.ID, 0, len(shares))
	for _, s := range shares {
		ids = append(ids, s.ID)
	}
	if err := checkDistinct(ids); err != nil {
		return nil, err
	}
	lagrange, err := polynomial.Lagrange(order, ids)
	if err != nil {
		return nil, fmt.Errorf("threshold: recover points: %w", err)
	}
	result := g.Identity()
	for _, s := range shares {
		term, err := s.Value.ScalarMul(lagrange[s.ID])
		if err != nil {
			return nil, fmt.Errorf("threshold: recover points: %w", err)
		}
		if result, err = result.Add(term); err != nil {
			return nil, fmt.Errorf("threshold: recover points: %w", err)
		}
	}
	return result, nil
}

func checkDistinct(ids []party.ID) error {
	seen := make(map[party.ID]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return fmt.Errorf("%w: holder %v", ErrDuplicateShare, id)
		}
		seen[id] = true
	}
	return nil
}

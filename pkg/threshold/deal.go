package threshold

import (
	"errors"
	"fmt"
	"io"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/ec-threshold/pkg/math/group"
	"github.com/taurusgroup/ec-threshold/pkg/math/polynomial"
	"github.com/taurusgroup/ec-threshold/pkg/math/sample"
	"github.com/taurusgroup/ec-threshold/pkg/party"
)

// Dealing is the output of a trusted dealer.
type Dealing struct {
	// Threshold is the maximum number of holders that learn nothing about d.
	// Any Threshold+1 shares recover d⋅M. An additive dealing has Threshold = n - 1.
	Threshold int
	// Public is d⋅G.
	Public group.Element
	// Shares holds the share of each holder, sorted by ID.
	Shares []KeyShare
	// Commitments are the Feldman commitments to the sharing polynomial, nil for additive dealings.
	Commitments *polynomial.Exponent
}

// IDs returns the holders of the dealing.
func (d *Dealing) IDs() party.IDSlice {
	ids := make([]party.ID, 0, len(d.Shares))
	for _, s := range d.Shares {
		ids = append(ids, s.ID)
	}
	return party.NewIDSlice(ids)
}

// Share returns the key share of id.
func (d *Dealing) Share(id party.ID) (KeyShare, bool) {
	for _, s := range d.Shares {
		if s.ID == id {
			return s, true
		}
	}
	return KeyShare{}, false
}

func dealerSetup(g group.Group, ids []party.ID) (*saferith.Modulus, party.IDSlice, error) {
	order := g.Order()
	if order == nil {
		return nil, nil, fmt.Errorf("threshold: %s has unknown order", g.Name())
	}
	holders := party.NewIDSlice(ids)
	if err := holders.Valid(); err != nil {
		return nil, nil, fmt.Errorf("threshold: %w", err)
	}
	if len(holders) == 0 {
		return nil, nil, errors.New("threshold: no holders")
	}
	return order, holders, nil
}

// DealAdditive splits d into n random shares with d₁ + … + dₙ ≡ d (mod n).
// All shares are required to decrypt.
func DealAdditive(rand io.Reader, g group.Group, d *saferith.Nat, ids []party.ID) (*Dealing, error) {
	order, holders, err := dealerSetup(g, ids)
	if err != nil {
		return nil, err
	}
	public, err := group.ScalarBaseMul(g, d)
	if err != nil {
		return nil, fmt.Errorf("threshold: public key: %w", err)
	}

	shares := make([]KeyShare, len(holders))
	last := new(saferith.Nat).Mod(d, order)
	for i, id := range holders[:len(holders)-1] {
		v, err := sample.ModN(rand, order)
		if err != nil {
			return nil, fmt.Errorf("threshold: sample share: %w", err)
		}
		shares[i] = KeyShare{ID: id, Value: v}
		last.ModSub(last, v, order)
	}
	shares[len(shares)-1] = KeyShare{ID: holders[len(holders)-1], Value: last}

	return &Dealing{
		Threshold: len(holders) - 1,
		Public:    public,
		Shares:    shares,
	}, nil
}

// DealShamir samples f of degree threshold with f(0) = d and gives f(i) to holder i.
// The Feldman commitments F = f⋅G let each holder check its share with VerifyShare.
//
// Every holder ID must be non-zero mod the group order.
func DealShamir(rand io.Reader, g group.Group, d *saferith.Nat, threshold int, ids []party.ID) (*Dealing, error) {
	order, holders, err := dealerSetup(g, ids)
	if err != nil {
		return nil, err
	}
	if threshold < 0 || threshold >= len(holders) {
		return nil, fmt.Errorf("threshold: threshold %d must be in [0, %d)", threshold, len(holders))
	}
	for _, id := range holders {
		if new(saferith.Nat).Mod(id.Nat(), order).EqZero() == 1 {
			return nil, fmt.Errorf("threshold: holder %v is 0 mod the group order", id)
		}
	}

	f, err := polynomial.NewPolynomial(rand, order, threshold, d)
	if err != nil {
		return nil, fmt.Errorf("threshold: %w", err)
	}
	commitments, err := polynomial.NewPolynomialExponent(g, f)
	if err != nil {
		return nil, fmt.Errorf("threshold: %w", err)
	}
	shares := make([]KeyShare, len(holders))
	for i, id := range holders {
		shares[i] = KeyShare{ID: id, Value: f.Evaluate(id.Nat())}
	}
	return &Dealing{
		Threshold:   f.Degree(),
		Public:      commitments.Constant(),
		Shares:      shares,
		Commitments: commitments,
	}, nil
}

// VerifyShare checks dᵢ⋅G = F(i) against the dealer's commitments.
func VerifyShare(commitments *polynomial.Exponent, share KeyShare) error {
	expected, err := commitments.Evaluate(share.ID.Nat())
	if err != nil {
		return fmt.Errorf("threshold: verify share of %v: %w", share.ID, err)
	}
	actual, err := group.ScalarBaseMul(commitments.Group(), share.Value)
	if err != nil {
		return fmt.Errorf("threshold: verify share of %v: %w", share.ID, err)
	}
	if !actual.Equal(expected) {
		return fmt.Errorf("%w: holder %v", ErrInvalidShare, share.ID)
	}
	return nil
}

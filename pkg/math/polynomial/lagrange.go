package polynomial

import (
	"fmt"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/ec-threshold/pkg/math/arith"
	"github.com/taurusgroup/ec-threshold/pkg/party"
)

// Lagrange returns the Lagrange coefficients at 0 for all parties in the interpolation domain.
//
// When the order n is not prime, some denominators may not be invertible and an error wrapping
// arith.ErrNoInverse is returned.
func Lagrange(order *saferith.Modulus, interpolationDomain []party.ID) (map[party.ID]*saferith.Nat, error) {
	return LagrangeFor(order, interpolationDomain, interpolationDomain...)
}

// LagrangeFor returns the Lagrange coefficients at 0 for all parties in the given subset.
func LagrangeFor(order *saferith.Modulus, interpolationDomain []party.ID, subset ...party.ID) (map[party.ID]*saferith.Nat, error) {
	// numerator = x₀ * … * xₖ
	scalars, numerator := getScalarsAndNumerator(order, interpolationDomain)

	coefficients := make(map[party.ID]*saferith.Nat, len(subset))
	for _, j := range subset {
		if _, ok := scalars[j]; !ok {
			return nil, fmt.Errorf("polynomial: party %v is not in the interpolation domain", j)
		}
		lJ, err := lagrange(order, scalars, numerator, j)
		if err != nil {
			return nil, err
		}
		coefficients[j] = lJ
	}
	return coefficients, nil
}

// getScalarsAndNumerator returns the scalars associated to the list of party.IDs.
func getScalarsAndNumerator(order *saferith.Modulus, interpolationDomain []party.ID) (map[party.ID]*saferith.Nat, *saferith.Nat) {
	numerator := new(saferith.Nat).SetUint64(1)
	scalars := make(map[party.ID]*saferith.Nat, len(interpolationDomain))
	for _, id := range interpolationDomain {
		xi := new(saferith.Nat).Mod(id.Nat(), order)
		scalars[id] = xi
		numerator.ModMul(numerator, xi, order)
	}
	return scalars, numerator
}

// lagrange returns the Lagrange coefficient lⱼ(0), for j in the interpolation domain.
// The numerator is provided beforehand for efficiency reasons.
//
// The following formulas are taken from
// https://en.wikipedia.org/wiki/Lagrange_polynomial
//
//	                 x₀ ⋅⋅⋅ xₖ
//	lⱼ(0) = --------------------------------------------------
//	        xⱼ⋅(x₀ - xⱼ)⋅⋅⋅(xⱼ₋₁ - xⱼ)⋅(xⱼ₊₁ - xⱼ)⋅⋅⋅(xₖ - xⱼ).
func lagrange(order *saferith.Modulus, interpolationDomain map[party.ID]*saferith.Nat, numerator *saferith.Nat, j party.ID) (*saferith.Nat, error) {
	xJ := interpolationDomain[j]
	tmp := new(saferith.Nat)

	denominator := new(saferith.Nat).SetUint64(1)
	for i, xI := range interpolationDomain {
		if i == j {
			// lⱼ *= xⱼ
			denominator.ModMul(denominator, xJ, order)
			continue
		}
		// tmp = xᵢ - xⱼ
		tmp.ModSub(xI, xJ, order)
		// lⱼ *= xᵢ - xⱼ
		denominator.ModMul(denominator, tmp, order)
	}

	// lⱼ = numerator/denominator
	lJ, err := arith.Invert(denominator, order)
	if err != nil {
		return nil, fmt.Errorf("polynomial: lagrange coefficient of %v: %w", j, err)
	}
	return lJ.ModMul(lJ, numerator, order), nil
}

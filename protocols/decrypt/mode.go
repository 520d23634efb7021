package decrypt

import (
	"fmt"
	"strings"
)

// Mode selects how the combiner merges the holders' contributions.
type Mode int

const (
	// ModeAggregate divides s₁ and s₂ by Q = Σqᵢ. It requires every holder of an additive sharing
	// and only recovers the plaintext when Q coincides with the mask of d⋅M.
	ModeAggregate Mode = iota
	// ModeAdditive sums the point shares of every holder of an additive sharing.
	ModeAdditive
	// ModeLagrange interpolates Threshold+1 point shares of a Shamir sharing in the exponent.
	ModeLagrange
)

func (m Mode) String() string {
	switch m {
	case ModeAggregate:
		return "aggregate"
	case ModeAdditive:
		return "additive"
	case ModeLagrange:
		return "lagrange"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode reads the name of a Mode, as returned by Mode.String.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "aggregate", "":
		return ModeAggregate, nil
	case "additive":
		return ModeAdditive, nil
	case "lagrange":
		return ModeLagrange, nil
	default:
		return 0, fmt.Errorf("decrypt: unknown combine mode %q", s)
	}
}

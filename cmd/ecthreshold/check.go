package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cronokirby/saferith"
	"github.com/spf13/cobra"
	"github.com/taurusgroup/ec-threshold/pkg/math/arith"
	"github.com/taurusgroup/ec-threshold/pkg/math/curve"
	"github.com/taurusgroup/ec-threshold/pkg/math/group"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check [x,y...]",
		Short: "validate the configured curve and test points for membership",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.settings.Group()
			if err != nil {
				return err
			}
			order := "unknown"
			if n := g.Order(); n != nil {
				order = n.Big().String()
			}
			a.log.Info().
				Str("group", g.Name()).
				Stringer("generator", g.Generator()).
				Str("order", order).
				Msg("group")

			c, ok := group.CurveOf(g)
			if !ok {
				if len(args) > 0 {
					return errors.New("points can only be checked on an elliptic curve")
				}
				return nil
			}
			var off int
			for _, arg := range args {
				p, err := parsePoint(c, arg)
				if err != nil {
					return err
				}
				onCurve := c.IsOnCurve(p)
				if !onCurve {
					off++
				}
				a.log.Info().Stringer("point", p).Bool("on_curve", onCurve).Msg("check")
			}
			if off > 0 {
				return fmt.Errorf("%d of %d points: %w", off, len(args), curve.ErrInvalidPoint)
			}
			return nil
		},
	}
}

// parsePoint reads "x,y" into an unvalidated point of c.
func parsePoint(c *curve.Curve, s string) (curve.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return curve.Point{}, fmt.Errorf("point %q: expected x,y", s)
	}
	coordinates := make([]*saferith.Nat, 2)
	for i, v := range []string{xs, ys} {
		x, err := arith.ParseNat(v)
		if err != nil {
			return curve.Point{}, fmt.Errorf("point %q: %w", s, err)
		}
		coordinates[i] = x
	}
	return c.Point(coordinates[0], coordinates[1]), nil
}

package main

import (
	"errors"

	"github.com/cronokirby/saferith"
	"github.com/spf13/cobra"
	"github.com/taurusgroup/ec-threshold/pkg/pool"
	"github.com/taurusgroup/ec-threshold/protocols/decrypt"
)

func newDemoCmd(a *app) *cobra.Command {
	var trials int
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "encrypt the configured plaintext and decrypt it with the key shares",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.runConfig()
			if err != nil {
				return err
			}
			if trials <= 1 {
				return a.demo(cmd, cfg)
			}
			return a.demoTrials(cmd, cfg, trials)
		},
	}
	cmd.Flags().IntVarP(&trials, "trials", "n", 1, "number of independent encryptions to run")
	return cmd
}

func (a *app) demo(cmd *cobra.Command, cfg decrypt.Config) error {
	result, err := decrypt.Run(cmd.Context(), cfg)
	if err != nil {
		var stepErr decrypt.StepError
		if errors.As(err, &stepErr) {
			a.log.Error().Err(stepErr.Err).Str("step", string(stepErr.Step)).
				Stringer("culprit", stepErr.Culprit).Msg("decryption failed")
		}
		return err
	}
	for _, q := range result.Partials {
		a.log.Info().Stringer("party", q.ID).Str("q", q.Value.Big().String()).Msg("partial decryption")
	}
	a.log.Info().
		Stringer("ciphertext", result.Ciphertext).
		Str("decrypted", pair(result.Decrypted)).
		Str("recovered", pair(result.Recovered)).
		Bool("match", result.Match()).
		Msg("demo")
	return nil
}

// demoTrials runs independent encryptions concurrently and reports how many the combiner recovered.
func (a *app) demoTrials(cmd *cobra.Command, cfg decrypt.Config, trials int) error {
	pl := pool.NewPool(0)
	defer pl.TearDown()

	cfg.Rand = pool.NewLockedReader(cfg.Rand)
	cfg.Logger = nil
	type outcome struct {
		match bool
		err   error
	}
	outcomes := pool.Parallelize(pl, trials, func(int) outcome {
		result, err := decrypt.Run(cmd.Context(), cfg)
		if err != nil {
			return outcome{err: err}
		}
		return outcome{match: result.Match()}
	})

	var matched, failed int
	for i, o := range outcomes {
		switch {
		case o.err != nil:
			failed++
			a.log.Debug().Int("trial", i).Err(o.err).Msg("trial failed")
		case o.match:
			matched++
		}
	}
	a.log.Info().
		Int("trials", trials).
		Int("matched", matched).
		Int("mismatched", trials-matched-failed).
		Int("failed", failed).
		Int("workers", pl.Workers()).
		Msg("demo")
	return nil
}

func pair(v [2]*saferith.Nat) string {
	return "(" + v[0].Big().String() + ", " + v[1].Big().String() + ")"
}

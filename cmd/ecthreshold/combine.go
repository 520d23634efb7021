package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/taurusgroup/ec-threshold/protocols/decrypt"
)

func newCombineCmd(a *app) *cobra.Command {
	var in string
	cmd := &cobra.Command{
		Use:   "combine [share files...]",
		Short: "recover the plaintext from the share messages of a quorum",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.settings.Group()
			if err != nil {
				return err
			}
			ct, err := readCiphertext(g, in)
			if err != nil {
				return err
			}
			shares, err := a.settings.KeyShares()
			if err != nil {
				return err
			}
			mode, err := a.settings.Mode()
			if err != nil {
				return err
			}
			session, err := a.session(g, ct, shares, mode)
			if err != nil {
				return err
			}
			combiner, err := decrypt.NewCombiner(session, mode)
			if err != nil {
				return err
			}
			combiner.WithLogger(a.log)

			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read share: %w", err)
				}
				var msg decrypt.Message
				if err = msg.UnmarshalBinary(data); err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				if err = combiner.Accept(&msg); err != nil {
					return decrypt.StepError{Step: decrypt.StepCombination, Culprit: msg.From, Err: err}
				}
			}
			x1, x2, err := combiner.Recover()
			if err != nil {
				return decrypt.StepError{Step: decrypt.StepCombination, Err: err}
			}
			a.log.Info().
				Stringer("mode", mode).
				Str("x1", x1.Big().String()).
				Str("x2", x2.Big().String()).
				Msg("recovered")
			return nil
		},
	}
	cmd.Flags().StringVarP(&in, "in", "i", "ciphertext.cbor", "ciphertext file")
	return cmd
}

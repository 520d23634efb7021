package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/taurusgroup/ec-threshold/pkg/elgamal"
)

func newEncryptCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "encrypt",
		Short: "encrypt the configured plaintext to the configured private key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.settings.Group()
			if err != nil {
				return err
			}
			d, err := a.settings.PrivateKey()
			if err != nil {
				return err
			}
			x1, x2, err := a.settings.Plaintexts()
			if err != nil {
				return err
			}
			ct, err := elgamal.Encrypt(a.settings.Rand(), g.Generator(), d, x1, x2)
			if err != nil {
				return err
			}
			data, err := ct.MarshalBinary()
			if err != nil {
				return err
			}
			if err = os.WriteFile(out, data, 0o600); err != nil {
				return fmt.Errorf("write ciphertext: %w", err)
			}
			a.log.Info().Stringer("ciphertext", ct).Str("file", out).Msg("encrypted")
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "ciphertext.cbor", "file to write the ciphertext to")
	return cmd
}

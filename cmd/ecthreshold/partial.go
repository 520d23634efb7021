package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/taurusgroup/ec-threshold/pkg/pool"
	"github.com/taurusgroup/ec-threshold/protocols/decrypt"
)

// shareFile is the name of the message written for a holder.
func shareFile(dir string, msg *decrypt.Message) string {
	return filepath.Join(dir, fmt.Sprintf("share-%v.cbor", msg.From))
}

func newPartialCmd(a *app) *cobra.Command {
	var in, out string
	cmd := &cobra.Command{
		Use:   "partial",
		Short: "compute the partial decryption of every configured key share",
		Args:  cobra.NoArgs,
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
			if err = os.MkdirAll(out, 0o700); err != nil {
				return err
			}

			pl := pool.NewPool(0)
			defer pl.TearDown()
			errs := pool.Parallelize(pl, len(shares), func(i int) error {
				h, err := decrypt.NewHolder(session, shares[i])
				if err != nil {
					return err
				}
				h.WithLogger(a.log)
				msg, err := h.Respond()
				if err != nil {
					return decrypt.StepError{Step: decrypt.StepPartialDecryption, Culprit: h.ID(), Err: err}
				}
				data, err := msg.MarshalBinary()
				if err != nil {
					return err
				}
				path := shareFile(out, msg)
				if err = os.WriteFile(path, data, 0o600); err != nil {
					return fmt.Errorf("write share: %w", err)
				}
				h.Log.Info().Str("file", path).Msg("share written")
				return nil
			})
			for _, err := range errs {
				if err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&in, "in", "i", "ciphertext.cbor", "ciphertext file")
	cmd.Flags().StringVarP(&out, "out", "o", ".", "directory to write the share messages to")
	return cmd
}

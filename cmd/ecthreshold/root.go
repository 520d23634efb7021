package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/taurusgroup/ec-threshold/internal/config"
	"github.com/taurusgroup/ec-threshold/pkg/elgamal"
	"github.com/taurusgroup/ec-threshold/pkg/math/group"
	"github.com/taurusgroup/ec-threshold/pkg/party"
	"github.com/taurusgroup/ec-threshold/pkg/threshold"
	"github.com/taurusgroup/ec-threshold/protocols/decrypt"
)

// app holds the state shared by the subcommands once flags have been parsed.
type app struct {
	v        *viper.Viper
	settings *config.Settings
	log      zerolog.Logger
}

// flagKeys maps persistent flags to configuration keys.
var flagKeys = map[string]string{
	"curve":     "curve.name",
	"private":   "key.private",
	"shares":    "key.shares",
	"threshold": "key.threshold",
	"x1":        "plaintext.x1",
	"x2":        "plaintext.x2",
	"mode":      "combine.mode",
	"seed":      "random.seed",
	"log-level": "log.level",
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New(), log: zerolog.Nop()}
	var configFile string

	root := &cobra.Command{
		Use:           "ecthreshold",
		Short:         "toy threshold decryption on elliptic curves",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd, configFile)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&configFile, "config", "c", "", "settings file (yaml, toml or json)")
	flags.String("curve", "", "toy23, secp256k1, field or custom")
	flags.String("private", "", "private key d")
	flags.StringSlice("shares", nil, "key shares as id:value")
	flags.Int("threshold", 0, "threshold of a Shamir sharing")
	flags.String("x1", "", "first plaintext")
	flags.String("x2", "", "second plaintext")
	flags.String("mode", "", "combine mode: aggregate, additive or lagrange")
	flags.String("seed", "", "seed for deterministic randomness")
	flags.String("log-level", "", "log level")

	root.AddCommand(
		newDemoCmd(a),
		newEncryptCmd(a),
		newPartialCmd(a),
		newCombineCmd(a),
		newCheckCmd(a),
	)
	return root
}

// setup binds the flags that were set on the command line and loads the settings.
func (a *app) setup(cmd *cobra.Command, configFile string) error {
	if err := config.BindFlags(a.v, cmd.Flags(), flagKeys); err != nil {
		return err
	}
	s, err := config.Load(a.v, configFile)
	if err != nil {
		return err
	}
	a.settings = s
	console := zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = cmd.OutOrStdout()
		w.NoColor = true
	})
	if a.log, err = s.Logger(console); err != nil {
		return err
	}
	return nil
}

// runConfig assembles a decrypt.Config from the loaded settings.
func (a *app) runConfig() (decrypt.Config, error) {
	var cfg decrypt.Config
	g, err := a.settings.Group()
	if err != nil {
		return cfg, err
	}
	d, err := a.settings.PrivateKey()
	if err != nil {
		return cfg, err
	}
	shares, err := a.settings.KeyShares()
	if err != nil {
		return cfg, err
	}
	x1, x2, err := a.settings.Plaintexts()
	if err != nil {
		return cfg, err
	}
	mode, err := a.settings.Mode()
	if err != nil {
		return cfg, err
	}
	return decrypt.Config{
		Group:      g,
		PrivateKey: d,
		Shares:     shares,
		Threshold:  a.settings.Key.Threshold,
		X1:         x1,
		X2:         x2,
		Mode:       mode,
		Rand:       a.settings.Rand(),
		Logger:     &a.log,
	}, nil
}

// session opens the decryption session of ct for the configured holders.
func (a *app) session(g group.Group, ct *elgamal.Ciphertext, shares []threshold.KeyShare, mode decrypt.Mode) (*decrypt.Session, error) {
	ids := make([]party.ID, 0, len(shares))
	for _, s := range shares {
		ids = append(ids, s.ID)
	}
	t := a.settings.Key.Threshold
	if mode != decrypt.ModeLagrange {
		t = len(ids) - 1
	}
	return decrypt.NewSession(decrypt.Info{Group: g, Ciphertext: ct, Holders: ids, Threshold: t})
}

// readCiphertext loads a ciphertext written by the encrypt command.
func readCiphertext(g group.Group, path string) (*elgamal.Ciphertext, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ciphertext: %w", err)
	}
	return elgamal.UnmarshalCiphertext(g, data)
}

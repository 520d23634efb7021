// Package config provisions curve parameters, keys, and plaintexts from files, environment, and flags.
package config

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cronokirby/saferith"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/taurusgroup/ec-threshold/pkg/math/arith"
	"github.com/taurusgroup/ec-threshold/pkg/math/curve"
	"github.com/taurusgroup/ec-threshold/pkg/math/group"
	"github.com/taurusgroup/ec-threshold/pkg/math/sample"
	"github.com/taurusgroup/ec-threshold/pkg/party"
	"github.com/taurusgroup/ec-threshold/pkg/threshold"
	"github.com/taurusgroup/ec-threshold/protocols/decrypt"
)

// EnvPrefix is the prefix of environment variables, e.g. ECT_KEY_PRIVATE.
const EnvPrefix = "ECT"

// Settings mirrors the configuration keys. Integers are strings in base 10, or base 16 with a 0x prefix.
type Settings struct {
	Curve struct {
		// Name is toy23, secp256k1, field, or custom.
		Name  string `mapstructure:"name"`
		A     string `mapstructure:"a"`
		B     string `mapstructure:"b"`
		P     string `mapstructure:"p"`
		Order string `mapstructure:"order"`
	} `mapstructure:"curve"`
	Base struct {
		X string `mapstructure:"x"`
		Y string `mapstructure:"y"`
	} `mapstructure:"base"`
	Key struct {
		Private string `mapstructure:"private"`
		// Shares are "id:value" pairs. Without an id, shares are numbered from 1.
		Shares    []string `mapstructure:"shares"`
		Threshold int      `mapstructure:"threshold"`
	} `mapstructure:"key"`
	Plaintext struct {
		X1 string `mapstructure:"x1"`
		X2 string `mapstructure:"x2"`
	} `mapstructure:"plaintext"`
	Combine struct {
		Mode string `mapstructure:"mode"`
	} `mapstructure:"combine"`
	Random struct {
		Seed string `mapstructure:"seed"`
	} `mapstructure:"random"`
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
}

// New returns a viper instance with the defaults of the toy example, reading ECT_* environment variables.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("curve.name", "toy23")
	v.SetDefault("curve.a", "")
	v.SetDefault("curve.b", "")
	v.SetDefault("curve.p", "")
	v.SetDefault("curve.order", "")
	v.SetDefault("base.x", "")
	v.SetDefault("base.y", "")
	v.SetDefault("key.private", "7")
	v.SetDefault("key.shares", []string{"1:3", "2:4"})
	v.SetDefault("key.threshold", 1)
	v.SetDefault("plaintext.x1", "5")
	v.SetDefault("plaintext.x2", "12")
	v.SetDefault("combine.mode", "aggregate")
	v.SetDefault("random.seed", "")
	v.SetDefault("log.level", "info")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags binds each flag of keys that was set on the command line to its configuration key,
// so that it takes precedence over files and environment.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) error {
	for name, key := range keys {
		f := flags.Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("config: bind flag %s: %w", name, err)
		}
	}
	return nil
}

// Load reads file into v if it is not empty, and decodes the settings.
// The format is inferred from the extension: yaml, toml, and json are supported.
func Load(v *viper.Viper, file string) (*Settings, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", file, err)
		}
	}
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	return &s, nil
}

func parse(name, value string) (*saferith.Nat, error) {
	if value == "" {
		return nil, fmt.Errorf("config: %s is not set", name)
	}
	x, err := arith.ParseNat(value)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", name, err)
	}
	return x, nil
}

// Group builds the group described by the curve and base settings.
func (s *Settings) Group() (group.Group, error) {
	switch strings.ToLower(s.Curve.Name) {
	case "toy23", "":
		return group.EllipticCurve(curve.Toy23()), nil
	case "secp256k1":
		return group.EllipticCurve(curve.Secp256k1()), nil
	case "field":
		p, err := s.field()
		if err != nil {
			return nil, err
		}
		g, err := parse("base.x", s.Base.X)
		if err != nil {
			return nil, err
		}
		return group.FieldElements(p, g), nil
	case "custom":
		c, err := s.customCurve()
		if err != nil {
			return nil, err
		}
		return group.EllipticCurve(c), nil
	default:
		return nil, fmt.Errorf("config: unknown curve %q", s.Curve.Name)
	}
}

func (s *Settings) field() (*arith.Modulus, error) {
	p, err := parse("curve.p", s.Curve.P)
	if err != nil {
		return nil, err
	}
	m, err := arith.NewModulus(p)
	if err != nil {
		return nil, fmt.Errorf("config: curve.p: %w", err)
	}
	return m, nil
}

func (s *Settings) customCurve() (*curve.Curve, error) {
	p, err := s.field()
	if err != nil {
		return nil, err
	}
	a, err := parse("curve.a", s.Curve.A)
	if err != nil {
		return nil, err
	}
	b, err := parse("curve.b", s.Curve.B)
	if err != nil {
		return nil, err
	}
	c, err := curve.NewCurve("custom", a, b, p)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	x, err := parse("base.x", s.Base.X)
	if err != nil {
		return nil, err
	}
	y, err := parse("base.y", s.Base.Y)
	if err != nil {
		return nil, err
	}
	var order *saferith.Nat
	if s.Curve.Order != "" {
		if order, err = parse("curve.order", s.Curve.Order); err != nil {
			return nil, err
		}
	}
	c, err = c.WithBase(x, y, order)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return c, nil
}

// PrivateKey returns d.
func (s *Settings) PrivateKey() (*saferith.Nat, error) {
	return parse("key.private", s.Key.Private)
}

// KeyShares returns the configured shares, sorted by holder ID.
func (s *Settings) KeyShares() ([]threshold.KeyShare, error) {
	if len(s.Key.Shares) == 0 {
		return nil, errors.New("config: key.shares is empty")
	}
	byID := make(map[party.ID]*saferith.Nat, len(s.Key.Shares))
	ids := make([]party.ID, 0, len(s.Key.Shares))
	for i, entry := range s.Key.Shares {
		id, value := party.ID(i+1), entry
		if before, after, ok := strings.Cut(entry, ":"); ok {
			parsed, err := party.IDFromString(strings.TrimSpace(before))
			if err != nil {
				return nil, fmt.Errorf("config: key.shares[%d]: %w", i, err)
			}
			id, value = parsed, after
		}
		if _, ok := byID[id]; ok {
			return nil, fmt.Errorf("config: key.shares: %w: holder %v", threshold.ErrDuplicateShare, id)
		}
		v, err := parse(fmt.Sprintf("key.shares[%d]", i), value)
		if err != nil {
			return nil, err
		}
		byID[id] = v
		ids = append(ids, id)
	}
	holders := party.NewIDSlice(ids)
	if err := holders.Valid(); err != nil {
		return nil, fmt.Errorf("config: key.shares: %w", err)
	}
	shares := make([]threshold.KeyShare, 0, len(holders))
	for _, id := range holders {
		shares = append(shares, threshold.KeyShare{ID: id, Value: byID[id]})
	}
	return shares, nil
}

// Plaintexts returns (x₁, x₂).
func (s *Settings) Plaintexts() (x1, x2 *saferith.Nat, err error) {
	if x1, err = parse("plaintext.x1", s.Plaintext.X1); err != nil {
		return nil, nil, err
	}
	if x2, err = parse("plaintext.x2", s.Plaintext.X2); err != nil {
		return nil, nil, err
	}
	return x1, x2, nil
}

// Mode returns the combiner mode.
func (s *Settings) Mode() (decrypt.Mode, error) {
	return decrypt.ParseMode(s.Combine.Mode)
}

// Rand returns a deterministic reader derived from random.seed if set, and crypto/rand otherwise.
func (s *Settings) Rand() io.Reader {
	if s.Random.Seed == "" {
		return rand.Reader
	}
	return sample.Seeded([]byte(s.Random.Seed))
}

// Logger returns a logger writing to w at the configured level.
func (s *Settings) Logger(w io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(s.Log.Level))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("config: log.level: %w", err)
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}

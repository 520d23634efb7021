package decrypt

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"github.com/cronokirby/saferith"
	"github.com/rs/zerolog"
	"github.com/taurusgroup/ec-threshold/internal/params"
	"github.com/taurusgroup/ec-threshold/pkg/elgamal"
	"github.com/taurusgroup/ec-threshold/pkg/math/group"
	"github.com/taurusgroup/ec-threshold/pkg/party"
	"github.com/taurusgroup/ec-threshold/pkg/threshold"
	"golang.org/x/sync/errgroup"
)

// Config describes a complete encrypt / threshold decrypt run.
type Config struct {
	// Group is the group to encrypt in. Its generator is the base point.
	Group group.Group
	// PrivateKey is d. It is only used to encrypt and for the reference decryption.
	PrivateKey *saferith.Nat
	// Shares are the key shares of the holders taking part.
	Shares []threshold.KeyShare
	// Threshold of the sharing; ignored by the additive modes.
	Threshold int
	// X1, X2 is the plaintext.
	X1, X2 *saferith.Nat
	// Mode selects the combiner.
	Mode Mode
	// Rand is the source of the ephemeral scalar, crypto/rand if nil.
	// It must be safe for concurrent use if Run is called from several goroutines.
	Rand io.Reader
	// Logger defaults to a disabled logger if nil.
	Logger *zerolog.Logger
}

// Result holds the values computed by Run.
type Result struct {
	Ciphertext *elgamal.Ciphertext
	// Decrypted is the output of the full key decryption.
	Decrypted [2]*saferith.Nat
	// Recovered is the output of the combiner.
	Recovered [2]*saferith.Nat
	// Partials are the values qᵢ sent by the holders, sorted by ID.
	Partials []threshold.PartialDecryption
}

// Match returns true if the combiner recovered the same plaintext as the full key decryption.
func (r *Result) Match() bool {
	return r.Decrypted[0].Eq(r.Recovered[0]) == 1 && r.Decrypted[1].Eq(r.Recovered[1]) == 1
}

// Run encrypts (X1, X2) to d⋅G, decrypts it with d, and then has every holder compute its
// share concurrently while the combiner collects them and recovers the plaintext.
//
// The first failure aborts the run and is returned as a StepError naming the failed step.
func Run(ctx context.Context, cfg Config) (*Result, error) {
	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = cfg.Logger.With().Str("protocol", params.ProtocolID).Logger()
	}
	r := cfg.Rand
	if r == nil {
		r = rand.Reader
	}
	if cfg.Group == nil {
		return nil, StepError{Step: StepEncryption, Err: errors.New("no group")}
	}

	ct, err := elgamal.Encrypt(r, cfg.Group.Generator(), cfg.PrivateKey, cfg.X1, cfg.X2)
	if err != nil {
		return nil, StepError{Step: StepEncryption, Err: err}
	}
	log.Info().Str("step", string(StepEncryption)).Stringer("ciphertext", ct).Msg("done")
	result := &Result{Ciphertext: ct}

	y1, y2, err := elgamal.Decrypt(ct, cfg.PrivateKey)
	if err != nil {
		return nil, StepError{Step: StepFullDecryption, Err: err}
	}
	result.Decrypted = [2]*saferith.Nat{y1, y2}
	log.Info().Str("step", string(StepFullDecryption)).
		Str("x1", y1.Big().String()).Str("x2", y2.Big().String()).Msg("done")

	ids := make([]party.ID, 0, len(cfg.Shares))
	for _, s := range cfg.Shares {
		ids = append(ids, s.ID)
	}
	t := cfg.Threshold
	if cfg.Mode != ModeLagrange {
		t = len(ids) - 1
	}
	session, err := NewSession(Info{Group: cfg.Group, Ciphertext: ct, Holders: ids, Threshold: t})
	if err != nil {
		return nil, StepError{Step: StepPartialDecryption, Err: err}
	}
	combiner, err := NewCombiner(session, cfg.Mode)
	if err != nil {
		return nil, StepError{Step: StepCombination, Err: err}
	}
	combiner.WithLogger(log)

	msgs := make(chan []byte, len(cfg.Shares))
	consumed := make(chan error, 1)
	go func() { consumed <- consume(ctx, combiner, msgs) }()

	eg, egCtx := errgroup.WithContext(ctx)
	for _, share := range cfg.Shares {
		share := share
		eg.Go(func() error {
			h, err := NewHolder(session, share)
			if err != nil {
				return StepError{Step: StepPartialDecryption, Culprit: share.ID, Err: err}
			}
			h.WithLogger(log)
			msg, err := h.Respond()
			if err != nil {
				return StepError{Step: StepPartialDecryption, Culprit: share.ID, Err: err}
			}
			data, err := msg.MarshalBinary()
			if err != nil {
				return StepError{Step: StepPartialDecryption, Culprit: share.ID, Err: err}
			}
			select {
			case msgs <- data:
				return nil
			case <-egCtx.Done():
				return StepError{Step: StepPartialDecryption, Culprit: share.ID, Err: egCtx.Err()}
			}
		})
	}
	holdersErr := eg.Wait()
	close(msgs)
	combinerErr := <-consumed
	if holdersErr != nil {
		return nil, holdersErr
	}
	if combinerErr != nil {
		return nil, combinerErr
	}
	log.Info().Str("step", string(StepPartialDecryption)).Int("holders", len(cfg.Shares)).Msg("done")

	if err = combiner.Wait(ctx); err != nil {
		return nil, StepError{Step: StepCombination, Err: err}
	}
	x1, x2, err := combiner.Recover()
	if err != nil {
		return nil, StepError{Step: StepCombination, Err: err}
	}
	result.Recovered = [2]*saferith.Nat{x1, x2}
	result.Partials = combiner.Partials()
	log.Info().Str("step", string(StepCombination)).
		Str("x1", x1.Big().String()).Str("x2", x2.Big().String()).
		Bool("match", result.Match()).Msg("done")
	return result, nil
}

// consume feeds every encoded message to the combiner until msgs is closed.
func consume(ctx context.Context, c *Combiner, msgs <-chan []byte) error {
	for {
		select {
		case data, ok := <-msgs:
			if !ok {
				return nil
			}
			var msg Message
			if err := msg.UnmarshalBinary(data); err != nil {
				return StepError{Step: StepCombination, Err: fmt.Errorf("decode message: %w", err)}
			}
			if err := c.Accept(&msg); err != nil {
				return StepError{Step: StepCombination, Culprit: msg.From, Err: err}
			}
		case <-ctx.Done():
			return StepError{Step: StepCombination, Err: ctx.Err()}
		}
	}
}

package decrypt

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/cronokirby/saferith"
	"github.com/rs/zerolog"
	"github.com/taurusgroup/ec-threshold/pkg/elgamal"
	"github.com/taurusgroup/ec-threshold/pkg/math/group"
	"github.com/taurusgroup/ec-threshold/pkg/party"
	"github.com/taurusgroup/ec-threshold/pkg/threshold"
)

// Combiner collects the holders' messages for a session and recovers the plaintext once a quorum is reached.
//
// Accept may be called concurrently.
type Combiner struct {
	session *Session
	mode    Mode

	mtx      sync.Mutex
	phase    Phase
	partials map[party.ID]threshold.PartialDecryption
	points   map[party.ID]threshold.PointShare

	ready     chan struct{}
	readyOnce sync.Once

	Log zerolog.Logger
}

// NewCombiner returns a combiner for the session using the given mode.
func NewCombiner(session *Session, mode Mode) (*Combiner, error) {
	switch mode {
	case ModeAggregate, ModeAdditive, ModeLagrange:
	default:
		return nil, fmt.Errorf("decrypt: unknown combine mode %v", mode)
	}
	if mode == ModeLagrange && session.Group().Order() == nil {
		return nil, fmt.Errorf("decrypt: lagrange mode requires a group of known order")
	}
	n := len(session.Holders())
	return &Combiner{
		session:  session,
		mode:     mode,
		phase:    PhaseShare,
		partials: make(map[party.ID]threshold.PartialDecryption, n),
		points:   make(map[party.ID]threshold.PointShare, n),
		ready:    make(chan struct{}),
		Log:      zerolog.Nop(),
	}, nil
}

// WithLogger sets the logger.
func (c *Combiner) WithLogger(l zerolog.Logger) *Combiner {
	c.Log = l.With().Str("party", "combiner").Str("mode", c.mode.String()).Logger()
	return c
}

// Quorum is the number of holder messages required by the combiner's mode.
func (c *Combiner) Quorum() int {
	if c.mode == ModeLagrange {
		return c.session.Threshold() + 1
	}
	return len(c.session.Holders())
}

// Phase returns the current phase.
func (c *Combiner) Phase() Phase {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.phase
}

// Accept validates msg and stores the holder's contribution.
//
// Messages from unknown holders, for another session, or repeated messages are rejected
// without modifying the state.
func (c *Combiner) Accept(msg *Message) error {
	if msg == nil {
		return fmt.Errorf("decrypt: nil message")
	}
	if !c.session.Holders().Contains(msg.From) {
		return fmt.Errorf("%w: %v", ErrUnknownHolder, msg.From)
	}
	if !bytes.Equal(msg.SSID, c.session.SSID()) {
		return fmt.Errorf("%w: from %v", ErrWrongCiphertext, msg.From)
	}
	if msg.Phase != PhaseShare {
		return fmt.Errorf("decrypt: unexpected %v message from %v", msg.Phase, msg.From)
	}
	q, d, err := decodeShare(c.session.Group(), msg.From, msg.Data)
	if err != nil {
		return fmt.Errorf("decrypt: message from %v: %w", msg.From, err)
	}

	c.mtx.Lock()
	defer c.mtx.Unlock()
	if _, ok := c.partials[msg.From]; ok {
		return fmt.Errorf("%w: holder %v", threshold.ErrDuplicateShare, msg.From)
	}
	c.partials[msg.From] = q
	c.points[msg.From] = d
	c.Log.Debug().Stringer("from", msg.From).Int("received", len(c.partials)).Msg("accepted share")

	if len(c.partials) >= c.Quorum() && c.phase == PhaseShare {
		c.phase = PhaseCombine
		c.Log.Info().Stringer("phase", c.phase).Msg("quorum reached")
		c.readyOnce.Do(func() { close(c.ready) })
	}
	return nil
}

// Ready returns true once a quorum of messages has been accepted.
func (c *Combiner) Ready() bool {
	select {
	case <-c.ready:
		return true
	default:
		return false
	}
}

// Wait blocks until a quorum of messages has been accepted, or ctx is done.
func (c *Combiner) Wait(ctx context.Context) error {
	select {
	case <-c.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Recover merges the first Quorum contributions, ordered by holder ID, and unblinds the ciphertext.
func (c *Combiner) Recover() (x1, x2 *saferith.Nat, err error) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	quorum := c.Quorum()
	if len(c.partials) < quorum {
		return nil, nil, fmt.Errorf("%w: got %d shares, need %d", threshold.ErrQuorum, len(c.partials), quorum)
	}
	ids := make([]party.ID, 0, len(c.partials))
	for id := range c.partials {
		ids = append(ids, id)
	}
	ids = party.NewIDSlice(ids)[:quorum]

	ct := c.session.Ciphertext()
	g := c.session.Group()
	switch c.mode {
	case ModeAggregate:
		partials := make([]threshold.PartialDecryption, 0, quorum)
		for _, id := range ids {
			partials = append(partials, c.partials[id])
		}
		x1, x2, err = threshold.Combine(ct.S1, ct.S2, partials, g.Field())
	default:
		points := make([]threshold.PointShare, 0, quorum)
		for _, id := range ids {
			points = append(points, c.points[id])
		}
		var combined group.Element
		if c.mode == ModeAdditive {
			combined, err = threshold.CombinePoints(g, points)
		} else {
			combined, err = threshold.RecoverPoints(g, c.session.Threshold(), points)
		}
		if err == nil {
			x1, x2, err = elgamal.Unmask(ct, combined)
		}
	}
	if err != nil {
		return nil, nil, err
	}
	c.phase = PhaseRecover
	c.Log.Info().Stringer("phase", c.phase).Msg("plaintext recovered")
	return x1, x2, nil
}

// Partials returns the accepted partial decryptions, sorted by holder ID.
func (c *Combiner) Partials() []threshold.PartialDecryption {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	ids := make([]party.ID, 0, len(c.partials))
	for id := range c.partials {
		ids = append(ids, id)
	}
	out := make([]threshold.PartialDecryption, 0, len(ids))
	for _, id := range party.NewIDSlice(ids) {
		out = append(out, c.partials[id])
	}
	return out
}

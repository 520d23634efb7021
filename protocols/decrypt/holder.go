package decrypt

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/taurusgroup/ec-threshold/pkg/party"
	"github.com/taurusgroup/ec-threshold/pkg/threshold"
)

// Holder owns a single key share and answers decryption requests for a session.
type Holder struct {
	session *Session
	share   threshold.KeyShare

	Log zerolog.Logger
}

// NewHolder returns the holder of share in the given session.
func NewHolder(session *Session, share threshold.KeyShare) (*Holder, error) {
	if !session.Holders().Contains(share.ID) {
		return nil, fmt.Errorf("%w: %v", ErrUnknownHolder, share.ID)
	}
	if share.Value == nil {
		return nil, errors.New("decrypt: key share has no value")
	}
	return &Holder{
		session: session,
		share:   share,
		Log:     zerolog.Nop(),
	}, nil
}

// WithLogger sets the logger, tagged with the holder's ID.
func (h *Holder) WithLogger(l zerolog.Logger) *Holder {
	h.Log = l.With().Str("party", h.share.ID.String()).Logger()
	return h
}

// ID returns the holder's ID.
func (h *Holder) ID() party.ID { return h.share.ID }

// Respond computes qᵢ and Dᵢ for the session's ciphertext, in isolation from the other holders.
func (h *Holder) Respond() (*Message, error) {
	maskingPoint := h.session.Ciphertext().MaskingPoint
	q, err := threshold.PartialDecrypt(h.share, maskingPoint)
	if err != nil {
		return nil, err
	}
	d, err := threshold.PartialDecryptPoint(h.share, maskingPoint)
	if err != nil {
		return nil, err
	}
	data, err := encodeShare(q, d)
	if err != nil {
		return nil, fmt.Errorf("decrypt: encode share: %w", err)
	}
	h.Log.Debug().Stringer("phase", PhaseShare).Msg("partial decryption computed")
	return &Message{
		SSID:  h.session.SSID(),
		From:  h.share.ID,
		Phase: PhaseShare,
		Data:  data,
	}, nil
}

package decrypt

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/taurusgroup/ec-threshold/internal/params"
	"github.com/taurusgroup/ec-threshold/pkg/elgamal"
	"github.com/taurusgroup/ec-threshold/pkg/hash"
	"github.com/taurusgroup/ec-threshold/pkg/math/group"
	"github.com/taurusgroup/ec-threshold/pkg/party"
)

// Info is the public description of a decryption session, known to every holder and to the combiner.
type Info struct {
	// Group is the group the ciphertext lives in.
	Group group.Group
	// Ciphertext is the ciphertext being decrypted.
	Ciphertext *elgamal.Ciphertext
	// Holders is the set of key share holders.
	Holders []party.ID
	// Threshold is the maximum number of holders that learn nothing about the key.
	Threshold int
}

// Session is a validated Info together with its unique identifier.
type Session struct {
	group      group.Group
	ciphertext *elgamal.Ciphertext
	holders    party.IDSlice
	threshold  int
	ssid       []byte
}

// NewSession validates info and derives the session identifier from all of its fields.
func NewSession(info Info) (*Session, error) {
	if info.Group == nil {
		return nil, errors.New("session: no group")
	}
	if !info.Ciphertext.Valid() {
		return nil, errors.New("session: invalid ciphertext")
	}
	holders := party.NewIDSlice(info.Holders)
	if err := holders.Valid(); err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	if n := len(holders); n == 0 || info.Threshold < 0 || info.Threshold > n-1 {
		return nil, fmt.Errorf("session: threshold %d is invalid for number of holders %d", info.Threshold, n)
	}

	h := hash.New()
	err := h.WriteAny(
		&hash.BytesWithDomain{TheDomain: "Protocol ID", Bytes: []byte(params.ProtocolID)},
		&hash.BytesWithDomain{TheDomain: "Group", Bytes: []byte(info.Group.Name())},
		info.Ciphertext,
		holders,
		thresholdWrapper(info.Threshold),
	)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	return &Session{
		group:      info.Group,
		ciphertext: info.Ciphertext,
		holders:    holders,
		threshold:  info.Threshold,
		ssid:       h.Sum(),
	}, nil
}

// SSID is the unique identifier of the session.
func (s *Session) SSID() []byte { return s.ssid }

// Group returns the group used for this session.
func (s *Session) Group() group.Group { return s.group }

// Ciphertext is the ciphertext being decrypted.
func (s *Session) Ciphertext() *elgamal.Ciphertext { return s.ciphertext }

// Holders is a sorted slice of the key share holders.
func (s *Session) Holders() party.IDSlice { return s.holders }

// Threshold is the maximum number of holders that learn nothing about the key.
func (s *Session) Threshold() int { return s.threshold }

// thresholdWrapper wraps an int and enables writing with domain.
type thresholdWrapper uint32

// WriteTo implements io.WriterTo interface.
func (t thresholdWrapper) WriteTo(w io.Writer) (int64, error) {
	intBuffer := make([]byte, 4)
	binary.BigEndian.PutUint32(intBuffer, uint32(t))
	n, err := w.Write(intBuffer)
	return int64(n), err
}

// Domain implements hash.WriterToWithDomain.
func (thresholdWrapper) Domain() string { return "Threshold" }

package decrypt

import (
	"fmt"

	"github.com/cronokirby/saferith"
	"github.com/fxamacker/cbor/v2"
	"github.com/taurusgroup/ec-threshold/pkg/hash"
	"github.com/taurusgroup/ec-threshold/pkg/math/group"
	"github.com/taurusgroup/ec-threshold/pkg/party"
	"github.com/taurusgroup/ec-threshold/pkg/threshold"
)

// CombinerID is the destination of every holder message. Holder IDs are never 0.
const CombinerID party.ID = 0

// Message is sent by a holder to the combiner.
type Message struct {
	// SSID is a byte string which uniquely identifies the session this message belongs to.
	SSID []byte
	// From is the party.ID of the sender
	From party.ID
	// Phase is the phase of the protocol this message belongs to
	Phase Phase
	// Data is the cbor encoded share content.
	Data []byte
}

// String implements fmt.Stringer.
func (m Message) String() string {
	return fmt.Sprintf("message: phase %v, from: %v", m.Phase, m.From)
}

// Hash returns a digest of the message content, including the headers.
func (m Message) Hash() ([]byte, error) {
	h := hash.New()
	err := h.WriteAny(
		hash.BytesWithDomain{TheDomain: "SSID", Bytes: m.SSID},
		hash.BytesWithDomain{TheDomain: "From", Bytes: m.From.Bytes()},
		m.Phase,
		hash.BytesWithDomain{TheDomain: "Content", Bytes: m.Data},
	)
	if err != nil {
		return nil, fmt.Errorf("message: hash: %w", err)
	}
	return h.Sum(), nil
}

type messageMarshal Message

// MarshalBinary implements encoding.BinaryMarshaler using cbor.
func (m *Message) MarshalBinary() ([]byte, error) {
	return cbor.Marshal((*messageMarshal)(m))
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (m *Message) UnmarshalBinary(data []byte) error {
	return cbor.Unmarshal(data, (*messageMarshal)(m))
}

// shareContent is the body of a PhaseShare message: both the partial decryption
// for the aggregate rule and the point share for the point combiners.
type shareContent struct {
	Partial []byte
	Point   []byte
}

func encodeShare(q threshold.PartialDecryption, d threshold.PointShare) ([]byte, error) {
	point, err := d.Value.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return cbor.Marshal(&shareContent{
		Partial: q.Value.Bytes(),
		Point:   point,
	})
}

func decodeShare(g group.Group, from party.ID, data []byte) (threshold.PartialDecryption, threshold.PointShare, error) {
	var c shareContent
	if err := cbor.Unmarshal(data, &c); err != nil {
		return threshold.PartialDecryption{}, threshold.PointShare{}, err
	}
	q := new(saferith.Nat).SetBytes(c.Partial)
	if !g.Field().Contains(q) {
		return threshold.PartialDecryption{}, threshold.PointShare{}, fmt.Errorf("partial decryption not reduced mod %v", g.Field().Big())
	}
	d, err := g.Unmarshal(c.Point)
	if err != nil {
		return threshold.PartialDecryption{}, threshold.PointShare{}, fmt.Errorf("point share: %w", err)
	}
	return threshold.PartialDecryption{ID: from, Value: q}, threshold.PointShare{ID: from, Value: d}, nil
}

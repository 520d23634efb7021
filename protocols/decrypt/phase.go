package decrypt

import (
	"encoding/binary"
	"io"
)

// Phase is the stage of a threshold decryption.
type Phase uint16

const (
	// PhaseShare is when holders compute their partial decryptions.
	PhaseShare Phase = iota + 1
	// PhaseCombine is when the combiner has reached its quorum and merges the shares.
	PhaseCombine
	// PhaseRecover is when the plaintext has been recovered.
	PhaseRecover
)

func (p Phase) String() string {
	switch p {
	case PhaseShare:
		return "share"
	case PhaseCombine:
		return "combine"
	case PhaseRecover:
		return "recover"
	default:
		return "unknown"
	}
}

// WriteTo implements io.WriterTo interface.
func (p Phase) WriteTo(w io.Writer) (int64, error) {
	err := binary.Write(w, binary.BigEndian, uint16(p))
	if err != nil {
		return 0, err
	}
	return 2, nil
}

// Domain implements hash.WriterToWithDomain.
func (Phase) Domain() string {
	return "Phase"
}

package decrypt

import (
	"errors"
	"fmt"

	"github.com/taurusgroup/ec-threshold/pkg/party"
)

var (
	// ErrUnknownHolder is returned for messages from a party outside the session.
	ErrUnknownHolder = errors.New("decrypt: unknown holder")
	// ErrWrongCiphertext is returned for messages computed over a different ciphertext or session.
	ErrWrongCiphertext = errors.New("decrypt: message belongs to a different session")
)

// Step names a stage of Run.
type Step string

const (
	StepEncryption        Step = "encryption"
	StepFullDecryption    Step = "full decryption"
	StepPartialDecryption Step = "partial decryption"
	StepCombination       Step = "combination"
)

// StepError reports which step of Run failed, and the holder responsible if it is known.
type StepError struct {
	Step Step
	// Culprit is 0 if no single holder is responsible.
	Culprit party.ID
	// Err is the underlying error
	Err error
}

func (e StepError) Error() string {
	if e.Culprit == 0 {
		return fmt.Sprintf("decrypt: %s: %s", e.Step, e.Err)
	}
	return fmt.Sprintf("decrypt: %s: holder %v: %s", e.Step, e.Culprit, e.Err)
}

func (e StepError) Unwrap() error {
	return e.Err
}

// File: internal/services/speech/errors.go
package speech

import (
	"errors"
	"fmt"
)

type ErrorType string

const (
	ErrTypeConfig      ErrorType = "CONFIG"
	ErrTypeSynthesis   ErrorType = "SYNTHESIS"
	ErrTypePlayback    ErrorType = "PLAYBACK"
	ErrTypeUnsupported ErrorType = "UNSUPPORTED"
)

// ErrEngineUnavailable is surfaced when remote synthesis fails and the host
// provides no local synthesis engine. It is the one speech failure meant to
// be shown to the user.
var ErrEngineUnavailable = errors.New("speech synthesis is not available in this environment")

type SpeechError struct {
	Type      ErrorType
	Operation string
	Message   string
	Cause     error
}

func (e *SpeechError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("Speech %s error in %s: %s (caused by: %v)",
			e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("Speech %s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *SpeechError) Unwrap() error { return e.Cause }

func NewConfigError(msg string) *SpeechError {
	return &SpeechError{Type: ErrTypeConfig, Operation: "config", Message: msg}
}

func NewSynthesisError(operation, msg string, cause error) *SpeechError {
	return &SpeechError{Type: ErrTypeSynthesis, Operation: operation, Message: msg, Cause: cause}
}

func NewPlaybackError(operation, msg string, cause error) *SpeechError {
	return &SpeechError{Type: ErrTypePlayback, Operation: operation, Message: msg, Cause: cause}
}

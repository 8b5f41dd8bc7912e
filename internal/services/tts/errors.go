// File: internal/services/tts/errors.go
package tts

import "fmt"

type ErrorType string

const (
	ErrTypeConfig     ErrorType = "CONFIG"
	ErrTypeValidation ErrorType = "VALIDATION"
	ErrTypeProvider   ErrorType = "PROVIDER"
)

type TTSError struct {
	Type      ErrorType
	Provider  string
	Operation string
	Message   string
	Cause     error
}

func (e *TTSError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("TTS %s error in %s: %s (caused by: %v)",
			e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("TTS %s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *TTSError) Unwrap() error {
	return e.Cause
}

func NewConfigError(msg string) *TTSError {
	return &TTSError{Type: ErrTypeConfig, Message: msg, Operation: "config"}
}

func NewValidationError(msg string) *TTSError {
	return &TTSError{Type: ErrTypeValidation, Message: msg, Operation: "validation"}
}

func NewProviderError(provider, operation, msg string, cause error) *TTSError {
	return &TTSError{Type: ErrTypeProvider, Provider: provider, Operation: operation, Message: msg, Cause: cause}
}

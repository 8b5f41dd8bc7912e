// File: internal/services/chat/errors.go
package chat

import (
	"errors"
	"fmt"
)

type ErrorType string

const (
	ErrTypeConfig     ErrorType = "CONFIG"
	ErrTypeValidation ErrorType = "VALIDATION"
	ErrTypeEndpoint   ErrorType = "ENDPOINT"
	ErrTypeNotFound   ErrorType = "NOT_FOUND"
)

// ErrReplyPending is returned by Submit when the conversation already has a
// loading assistant message in flight.
var ErrReplyPending = errors.New("a reply is already pending for this conversation")

type ChatError struct {
	Type           ErrorType
	Operation      string
	Message        string
	ConversationID string
	Cause          error
}

func (e *ChatError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("Chat %s error in %s: %s (caused by: %v)",
			e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("Chat %s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *ChatError) Unwrap() error { return e.Cause }

func NewConfigError(msg string) *ChatError {
	return &ChatError{Type: ErrTypeConfig, Operation: "config", Message: msg}
}

func NewValidationError(operation, msg string) *ChatError {
	return &ChatError{Type: ErrTypeValidation, Operation: operation, Message: msg}
}

func NewEndpointError(operation, msg string, cause error) *ChatError {
	return &ChatError{Type: ErrTypeEndpoint, Operation: operation, Message: msg, Cause: cause}
}

func NewNotFoundError(conversationID string) *ChatError {
	return &ChatError{
		Type:           ErrTypeNotFound,
		Operation:      "lookup",
		Message:        "conversation not found",
		ConversationID: conversationID,
	}
}

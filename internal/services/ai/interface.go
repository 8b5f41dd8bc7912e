// File: internal/services/ai/interface.go
package ai

import "context"

// Turn is one prior exchange in a conversation, oldest first.
type Turn struct {
	Role    string
	Content string
}

// ImageInput is an image attached to the current message, base64-encoded.
type ImageInput struct {
	Format string
	Data   string
}

// CompletionRequest carries everything the model needs for one reply.
type CompletionRequest struct {
	Message string
	History []Turn
	Images  []ImageInput
}

// CompletionProvider produces assistant replies
type CompletionProvider interface {
	Complete(ctx context.Context, req *CompletionRequest) (string, error)
	HealthCheck(ctx context.Context) error
}

// File: internal/services/chat/types.go
package chat

import "github.com/kildre/talktalk/internal/domain"

// Logger defines the logging interface used across the chat services.
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// HistoryEntry is one role/content pair of the prior conversation.
type HistoryEntry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ImageSource carries the raw base64 bytes of an attachment.
type ImageSource struct {
	Bytes string `json:"bytes"`
}

// ImagePayload is the wire form of an image attachment.
type ImagePayload struct {
	Format string      `json:"format"`
	Source ImageSource `json:"source"`
}

// Request is the body sent to the chat endpoint.
type Request struct {
	Message        string         `json:"message"`
	ConversationID string         `json:"conversationId,omitempty"`
	History        []HistoryEntry `json:"history,omitempty"`
	Images         []ImagePayload `json:"images,omitempty"`
}

// Response is the body returned by the chat endpoint. Older backends answer
// with "response", newer ones with "content"; both are accepted.
type Response struct {
	Content        string                `json:"content,omitempty"`
	Response       string                `json:"response,omitempty"`
	Role           string                `json:"role,omitempty"`
	ConversationID string                `json:"conversationId,omitempty"`
	VoiceSettings  *domain.VoiceSettings `json:"voiceSettings,omitempty"`
}

// ReplyText picks the response text: content first, then response, then the
// given fallback marker.
func (r *Response) ReplyText(fallback string) string {
	if r.Content != "" {
		return r.Content
	}
	if r.Response != "" {
		return r.Response
	}
	return fallback
}

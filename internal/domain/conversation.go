// File: internal/domain/conversation.go
package domain

import "time"

// DefaultTitle is the title of a conversation before its first user message.
const DefaultTitle = "New Chat"

// maxTitleLength is the number of characters of the first user message kept
// as the conversation title.
const maxTitleLength = 50

// Conversation represents a single chat thread and its ordered messages.
type Conversation struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DeriveTitle builds a conversation title from the first user message:
// the first 50 characters, with an ellipsis when the message is longer.
func DeriveTitle(content string) string {
	runes := []rune(content)
	if len(runes) <= maxTitleLength {
		return content
	}
	return string(runes[:maxTitleLength]) + "..."
}

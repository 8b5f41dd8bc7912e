// File: internal/store/interface.go
package store

import "github.com/kildre/talktalk/internal/domain"

// MessageDraft is the caller-supplied part of a new message. The store
// assigns the id and timestamp on append.
type MessageDraft struct {
	Role          string
	Content       string
	IsLoading     bool
	Images        []domain.ChatImage
	VoiceSettings *domain.VoiceSettings
}

// MessageUpdate is a shallow merge into an existing message: only non-nil
// fields are applied.
type MessageUpdate struct {
	Content       *string
	IsLoading     *bool
	VoiceSettings *domain.VoiceSettings
}

// ConversationStore is the single source of truth for all conversations and
// the active selection.
//
// All mutations must happen from one logical thread at a time: the store
// serializes individual operations internally, but callers may not assume
// any ordering between operations issued concurrently. Lookup misses on
// update are silent no-ops, since responses may race with deletion.
type ConversationStore interface {
	// CreateConversation inserts a new empty conversation at the front of
	// the collection, selects it, and returns its id.
	CreateConversation() string

	// SelectConversation sets the current conversation id. Unknown ids are
	// accepted as-is; lookups against them simply come back empty.
	SelectConversation(id string)

	// DeleteConversation removes the conversation. If it was current, the
	// first remaining conversation becomes current, or none.
	DeleteConversation(id string)

	// Conversations returns all conversations, most recently created first.
	Conversations() []domain.Conversation

	// Conversation returns a copy of the conversation with the given id.
	Conversation(id string) (domain.Conversation, bool)

	// CurrentConversationID returns the selected conversation id, or "".
	CurrentConversationID() string

	// AppendMessage assigns an id and timestamp to the draft and appends it
	// to the conversation. The first user message also sets the title.
	// Returns the new message id, or "" if the conversation does not exist.
	AppendMessage(conversationID string, draft MessageDraft) string

	// UpdateMessage merges the given fields into an existing message and
	// touches the conversation's updatedAt. No-op if either id is unknown.
	UpdateMessage(conversationID, messageID string, update MessageUpdate)

	// CurrentMessages returns the selected conversation's messages in
	// order, or an empty slice when nothing is selected.
	CurrentMessages() []domain.Message
}

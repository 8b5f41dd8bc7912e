// File: internal/store/memory.go
package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kildre/talktalk/internal/domain"
)

// MemoryStore keeps all conversations in process memory. This is the default
// backend; everything is lost on restart.
type MemoryStore struct {
	mu            sync.Mutex
	conversations []*domain.Conversation // front = most recently created
	currentID     string
}

// NewMemoryStore returns an empty in-memory conversation store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) CreateConversation() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	conv := &domain.Conversation{
		ID:        uuid.NewString(),
		Title:     domain.DefaultTitle,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.conversations = append([]*domain.Conversation{conv}, s.conversations...)
	s.currentID = conv.ID
	return conv.ID
}

func (s *MemoryStore) SelectConversation(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentID = id
}

func (s *MemoryStore) DeleteConversation(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.conversations[:0]
	for _, conv := range s.conversations {
		if conv.ID != id {
			kept = append(kept, conv)
		}
	}
	s.conversations = kept

	if s.currentID == id {
		if len(s.conversations) > 0 {
			s.currentID = s.conversations[0].ID
		} else {
			s.currentID = ""
		}
	}
}

func (s *MemoryStore) Conversations() []domain.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Conversation, 0, len(s.conversations))
	for _, conv := range s.conversations {
		out = append(out, copyConversation(conv))
	}
	return out
}

func (s *MemoryStore) Conversation(id string) (domain.Conversation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := s.findLocked(id)
	if conv == nil {
		return domain.Conversation{}, false
	}
	return copyConversation(conv), true
}

func (s *MemoryStore) CurrentConversationID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentID
}

func (s *MemoryStore) AppendMessage(conversationID string, draft MessageDraft) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := s.findLocked(conversationID)
	if conv == nil {
		return ""
	}

	now := time.Now()
	msg := domain.Message{
		ID:            uuid.NewString(),
		Role:          draft.Role,
		Content:       draft.Content,
		Timestamp:     now,
		IsLoading:     draft.IsLoading,
		Images:        append([]domain.ChatImage(nil), draft.Images...),
		VoiceSettings: copyVoiceSettings(draft.VoiceSettings),
	}
	conv.Messages = append(conv.Messages, msg)
	conv.UpdatedAt = now

	if len(conv.Messages) == 1 && draft.Role == domain.RoleUser {
		conv.Title = domain.DeriveTitle(draft.Content)
	}
	return msg.ID
}

func (s *MemoryStore) UpdateMessage(conversationID, messageID string, update MessageUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := s.findLocked(conversationID)
	if conv == nil {
		return
	}
	for i := range conv.Messages {
		if conv.Messages[i].ID != messageID {
			continue
		}
		if update.Content != nil {
			conv.Messages[i].Content = *update.Content
		}
		if update.IsLoading != nil {
			conv.Messages[i].IsLoading = *update.IsLoading
		}
		if update.VoiceSettings != nil {
			conv.Messages[i].VoiceSettings = copyVoiceSettings(update.VoiceSettings)
		}
		conv.UpdatedAt = time.Now()
		return
	}
}

func (s *MemoryStore) CurrentMessages() []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := s.findLocked(s.currentID)
	if conv == nil {
		return []domain.Message{}
	}
	return copyMessages(conv.Messages)
}

func (s *MemoryStore) findLocked(id string) *domain.Conversation {
	if id == "" {
		return nil
	}
	for _, conv := range s.conversations {
		if conv.ID == id {
			return conv
		}
	}
	return nil
}

func copyConversation(conv *domain.Conversation) domain.Conversation {
	out := *conv
	out.Messages = copyMessages(conv.Messages)
	return out
}

func copyMessages(msgs []domain.Message) []domain.Message {
	out := make([]domain.Message, len(msgs))
	copy(out, msgs)
	for i := range out {
		out[i].Images = append([]domain.ChatImage(nil), out[i].Images...)
		out[i].VoiceSettings = copyVoiceSettings(out[i].VoiceSettings)
	}
	return out
}

func copyVoiceSettings(vs *domain.VoiceSettings) *domain.VoiceSettings {
	if vs == nil {
		return nil
	}
	out := *vs
	return &out
}

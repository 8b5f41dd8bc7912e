// File: internal/store/sqlite.go
package store

import (
	"log"
	"sync"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kildre/talktalk/internal/domain"
)

// conversationRow and messageRow are the persisted mirrors of the domain
// types. Seq preserves insertion order without relying on timestamps.
type conversationRow struct {
	ID        string `gorm:"primaryKey"`
	Title     string
	Seq       int64 `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type messageRow struct {
	ID             string `gorm:"primaryKey"`
	ConversationID string `gorm:"index;not null"`
	Role           string
	Content        string
	IsLoading      bool
	Seq            int64 `gorm:"index"`
	Timestamp      time.Time
	HasVoice       bool
	Voice          string
	Speed          float64
	Pitch          float64
}

type imageRow struct {
	ID        string `gorm:"primaryKey"`
	MessageID string `gorm:"index;not null"`
	Seq       int
	Data      string
	MimeType  string
	Name      string
}

// SQLiteStore is a ConversationStore backed by an in-memory SQLite database
// through gorm. State is still volatile: the database lives in the process
// and is gone on restart. The active selection is plain struct state, it is
// UI state rather than data.
type SQLiteStore struct {
	mu        sync.Mutex
	db        *gorm.DB
	currentID string
	seq       int64
}

// NewSQLiteStore opens an in-memory SQLite database and migrates the schema.
func NewSQLiteStore() (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&conversationRow{}, &messageRow{}, &imageRow{}); err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) CreateConversation() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.seq++
	row := conversationRow{
		ID:        uuid.NewString(),
		Title:     domain.DefaultTitle,
		Seq:       s.seq,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.db.Create(&row).Error; err != nil {
		log.Printf("[ConversationStore] create failed: %v", err)
		return ""
	}
	s.currentID = row.ID
	return row.ID
}

func (s *SQLiteStore) SelectConversation(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentID = id
}

func (s *SQLiteStore) DeleteConversation(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var msgIDs []string
	s.db.Model(&messageRow{}).Where("conversation_id = ?", id).Pluck("id", &msgIDs)
	if len(msgIDs) > 0 {
		s.db.Where("message_id IN ?", msgIDs).Delete(&imageRow{})
	}
	s.db.Where("conversation_id = ?", id).Delete(&messageRow{})
	if err := s.db.Where("id = ?", id).Delete(&conversationRow{}).Error; err != nil {
		log.Printf("[ConversationStore] delete failed: %v", err)
		return
	}

	if s.currentID == id {
		var next conversationRow
		err := s.db.Order("seq DESC").First(&next).Error
		if err != nil {
			s.currentID = ""
		} else {
			s.currentID = next.ID
		}
	}
}

func (s *SQLiteStore) Conversations() []domain.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rows []conversationRow
	if err := s.db.Order("seq DESC").Find(&rows).Error; err != nil {
		log.Printf("[ConversationStore] list failed: %v", err)
		return []domain.Conversation{}
	}

	out := make([]domain.Conversation, 0, len(rows))
	for _, row := range rows {
		out = append(out, s.assembleLocked(row))
	}
	return out
}

func (s *SQLiteStore) Conversation(id string) (domain.Conversation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conversationLocked(id)
}

func (s *SQLiteStore) CurrentConversationID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentID
}

func (s *SQLiteStore) AppendMessage(conversationID string, draft MessageDraft) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var conv conversationRow
	if err := s.db.Where("id = ?", conversationID).First(&conv).Error; err != nil {
		return ""
	}

	now := time.Now()
	s.seq++
	row := messageRow{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		Role:           draft.Role,
		Content:        draft.Content,
		IsLoading:      draft.IsLoading,
		Seq:            s.seq,
		Timestamp:      now,
	}
	if vs := draft.VoiceSettings; vs != nil {
		row.HasVoice = true
		row.Voice = vs.Voice
		row.Speed = vs.Speed
		row.Pitch = vs.Pitch
	}
	if err := s.db.Create(&row).Error; err != nil {
		log.Printf("[ConversationStore] append failed: %v", err)
		return ""
	}

	for i, img := range draft.Images {
		id := img.ID
		if id == "" {
			id = uuid.NewString()
		}
		s.db.Create(&imageRow{
			ID:        id,
			MessageID: row.ID,
			Seq:       i,
			Data:      img.Data,
			MimeType:  img.MimeType,
			Name:      img.Name,
		})
	}

	updates := map[string]any{"updated_at": now}
	var count int64
	s.db.Model(&messageRow{}).Where("conversation_id = ?", conversationID).Count(&count)
	if count == 1 && draft.Role == domain.RoleUser {
		updates["title"] = domain.DeriveTitle(draft.Content)
	}
	s.db.Model(&conversationRow{}).Where("id = ?", conversationID).Updates(updates)

	return row.ID
}

func (s *SQLiteStore) UpdateMessage(conversationID, messageID string, update MessageUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fields := map[string]any{}
	if update.Content != nil {
		fields["content"] = *update.Content
	}
	if update.IsLoading != nil {
		fields["is_loading"] = *update.IsLoading
	}
	if vs := update.VoiceSettings; vs != nil {
		fields["has_voice"] = true
		fields["voice"] = vs.Voice
		fields["speed"] = vs.Speed
		fields["pitch"] = vs.Pitch
	}
	if len(fields) == 0 {
		return
	}

	result := s.db.Model(&messageRow{}).
		Where("id = ? AND conversation_id = ?", messageID, conversationID).
		Updates(fields)
	if result.Error != nil || result.RowsAffected == 0 {
		// Stale reference, the message or conversation is gone.
		return
	}

	s.db.Model(&conversationRow{}).
		Where("id = ?", conversationID).
		Update("updated_at", time.Now())
}

func (s *SQLiteStore) CurrentMessages() []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentID == "" {
		return []domain.Message{}
	}
	conv, ok := s.conversationLocked(s.currentID)
	if !ok {
		return []domain.Message{}
	}
	return conv.Messages
}

func (s *SQLiteStore) conversationLocked(id string) (domain.Conversation, bool) {
	var row conversationRow
	if err := s.db.Where("id = ?", id).First(&row).Error; err != nil {
		return domain.Conversation{}, false
	}
	return s.assembleLocked(row), true
}

func (s *SQLiteStore) assembleLocked(row conversationRow) domain.Conversation {
	conv := domain.Conversation{
		ID:        row.ID,
		Title:     row.Title,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
		Messages:  []domain.Message{},
	}

	var msgs []messageRow
	s.db.Where("conversation_id = ?", row.ID).Order("seq ASC").Find(&msgs)
	for _, m := range msgs {
		msg := domain.Message{
			ID:        m.ID,
			Role:      m.Role,
			Content:   m.Content,
			Timestamp: m.Timestamp,
			IsLoading: m.IsLoading,
		}
		if m.HasVoice {
			msg.VoiceSettings = &domain.VoiceSettings{Voice: m.Voice, Speed: m.Speed, Pitch: m.Pitch}
		}
		var imgs []imageRow
		s.db.Where("message_id = ?", m.ID).Order("seq ASC").Find(&imgs)
		for _, img := range imgs {
			msg.Images = append(msg.Images, domain.ChatImage{
				ID:       img.ID,
				Data:     img.Data,
				MimeType: img.MimeType,
				Name:     img.Name,
			})
		}
		conv.Messages = append(conv.Messages, msg)
	}
	return conv
}

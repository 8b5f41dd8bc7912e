// File: internal/services/chat/orchestrator.go
package chat

import (
	"context"
	"sync"

	"github.com/kildre/talktalk/internal/domain"
	"github.com/kildre/talktalk/internal/store"
)

// Orchestrator drives one request/response cycle per submitted user message:
// it appends the user message and a loading assistant placeholder, calls the
// chat endpoint exactly once, and reconciles the reply (or the apology text)
// back into the pending message.
type Orchestrator struct {
	store    store.ConversationStore
	endpoint Endpoint
	config   *Config
	logger   Logger

	mu     sync.Mutex
	typing bool
}

func NewOrchestrator(s store.ConversationStore, endpoint Endpoint, config *Config, logger Logger) (*Orchestrator, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, NewConfigError(err.Error())
	}
	return &Orchestrator{
		store:    s,
		endpoint: endpoint,
		config:   config,
		logger:   logger,
	}, nil
}

// Typing reports whether a submission is in flight. The UI disables input
// while this is true.
func (o *Orchestrator) Typing() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.typing
}

// Submit sends one user message through the chat endpoint.
//
// Validation failures and an already-pending reply are returned as errors
// before any store mutation. Endpoint failures are not errors to the caller:
// they are reconciled into the pending message as the apology text.
func (o *Orchestrator) Submit(ctx context.Context, conversationID, text string, images []domain.ChatImage) error {
	if text == "" && len(images) == 0 {
		return NewValidationError("submit", "message text or at least one image is required")
	}

	conv, ok := o.store.Conversation(conversationID)
	if !ok {
		return NewNotFoundError(conversationID)
	}
	for _, msg := range conv.Messages {
		if msg.IsLoading {
			return ErrReplyPending
		}
	}

	o.mu.Lock()
	if o.typing {
		o.mu.Unlock()
		return ErrReplyPending
	}
	o.typing = true
	o.mu.Unlock()
	defer o.setTyping(false)

	o.store.AppendMessage(conversationID, store.MessageDraft{
		Role:    domain.RoleUser,
		Content: text,
		Images:  images,
	})
	o.store.AppendMessage(conversationID, store.MessageDraft{
		Role:      domain.RoleAssistant,
		IsLoading: true,
	})

	req := o.buildRequest(conversationID, text, images)

	resp, err := o.endpoint.Send(ctx, req)
	if err != nil {
		o.logger.Error("chat endpoint call failed", "conversation_id", conversationID, "error", err)
		o.resolvePending(conversationID, o.config.ApologyText, nil)
		return nil
	}

	o.resolvePending(conversationID, resp.ReplyText(o.config.NoResponseText), resp.VoiceSettings)
	return nil
}

// buildRequest assembles the endpoint payload: the new text, the message
// history without the loading placeholder, and the newly submitted
// attachments in wire form.
func (o *Orchestrator) buildRequest(conversationID, text string, images []domain.ChatImage) *Request {
	req := &Request{
		Message:        text,
		ConversationID: conversationID,
	}

	for _, img := range images {
		format, data := img.Payload()
		req.Images = append(req.Images, ImagePayload{
			Format: format,
			Source: ImageSource{Bytes: data},
		})
	}

	conv, ok := o.store.Conversation(conversationID)
	if !ok {
		return req
	}
	for _, msg := range conv.Messages {
		if msg.IsLoading {
			continue
		}
		req.History = append(req.History, HistoryEntry{Role: msg.Role, Content: msg.Content})
	}
	return req
}

// resolvePending mutates the conversation's loading message in place. When
// the conversation or the placeholder is gone the update is dropped, a
// response racing a deletion is not an error.
func (o *Orchestrator) resolvePending(conversationID, content string, voice *domain.VoiceSettings) {
	conv, ok := o.store.Conversation(conversationID)
	if !ok {
		o.logger.Debug("dropping reply for deleted conversation", "conversation_id", conversationID)
		return
	}

	for _, msg := range conv.Messages {
		if !msg.IsLoading {
			continue
		}
		loading := false
		o.store.UpdateMessage(conversationID, msg.ID, store.MessageUpdate{
			Content:       &content,
			IsLoading:     &loading,
			VoiceSettings: voice,
		})
		return
	}
	o.logger.Debug("no pending message to resolve", "conversation_id", conversationID)
}

func (o *Orchestrator) setTyping(v bool) {
	o.mu.Lock()
	o.typing = v
	o.mu.Unlock()
}

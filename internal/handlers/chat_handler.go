// File: internal/handlers/chat_handler.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/kildre/talktalk/internal/services"
	"github.com/kildre/talktalk/internal/services/ai"
)

type ChatHandler struct {
	AI     ai.CompletionProvider
	Logger services.Logger
}

func NewChatHandler(provider ai.CompletionProvider, logger services.Logger) *ChatHandler {
	return &ChatHandler{AI: provider, Logger: logger}
}

type chatHistoryEntry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatImage struct {
	Format string `json:"format"`
	Source struct {
		Bytes string `json:"bytes"`
	} `json:"source"`
}

type chatRequest struct {
	Message        string             `json:"message"`
	ConversationID string             `json:"conversationId"`
	History        []chatHistoryEntry `json:"history"`
	Images         []chatImage        `json:"images"`
}

type voiceSettings struct {
	Voice string  `json:"voice"`
	Speed float64 `json:"speed"`
	Pitch float64 `json:"pitch"`
}

type chatResponse struct {
	Content        string         `json:"content"`
	Role           string         `json:"role"`
	ConversationID string         `json:"conversationId,omitempty"`
	VoiceSettings  *voiceSettings `json:"voiceSettings,omitempty"`
}

// HandleChat produces an assistant reply for the submitted message and
// transcript. The reply may carry voice settings hinting at how it should be
// spoken.
func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Message) == "" && len(req.Images) == 0 {
		writeError(w, "message is required", http.StatusBadRequest)
		return
	}

	completion := &ai.CompletionRequest{Message: req.Message}
	for _, entry := range req.History {
		completion.History = append(completion.History, ai.Turn{
			Role:    entry.Role,
			Content: entry.Content,
		})
	}
	for _, img := range req.Images {
		completion.Images = append(completion.Images, ai.ImageInput{
			Format: img.Format,
			Data:   img.Source.Bytes,
		})
	}

	reply, err := h.AI.Complete(r.Context(), completion)
	if err != nil {
		h.Logger.Error("completion failed", "conversation_id", req.ConversationID, "error", err)
		writeError(w, "Error processing chat: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		Content:        reply,
		Role:           "assistant",
		ConversationID: req.ConversationID,
		VoiceSettings:  voiceForMessage(req.Message),
	})
}

// voiceForMessage picks voice settings from the user's wording. A nil return
// leaves the client on its configured defaults.
func voiceForMessage(message string) *voiceSettings {
	m := strings.ToLower(message)
	switch {
	case strings.Contains(m, "urgent") || strings.Contains(m, "emergency"):
		return &voiceSettings{Voice: "en-US-Neural2-D", Speed: 1.2, Pitch: -5.0}
	case strings.Contains(m, "joke") || strings.Contains(m, "fun"):
		return &voiceSettings{Voice: "en-US-Neural2-J", Speed: 1.0, Pitch: 2.0}
	case strings.Contains(m, "business") || strings.Contains(m, "professional"):
		return &voiceSettings{Voice: "en-GB-Neural2-B", Speed: 0.9, Pitch: -3.0}
	}
	return nil
}

// File: internal/handlers/conversation_handler.go
package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/kildre/talktalk/internal/store"
)

type ConversationHandler struct {
	Store store.ConversationStore
}

func NewConversationHandler(s store.ConversationStore) *ConversationHandler {
	return &ConversationHandler{Store: s}
}

// ListConversations returns every conversation, newest first.
func (h *ConversationHandler) ListConversations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.Conversations())
}

// CreateConversation starts an empty conversation and selects it.
func (h *ConversationHandler) CreateConversation(w http.ResponseWriter, r *http.Request) {
	id := h.Store.CreateConversation()
	conversation, _ := h.Store.Conversation(id)
	writeJSON(w, http.StatusCreated, conversation)
}

// GetConversationMessages returns the messages of one conversation.
func (h *ConversationHandler) GetConversationMessages(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	conversation, ok := h.Store.Conversation(vars["id"])
	if !ok {
		writeError(w, "Conversation not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, conversation.Messages)
}

// DeleteConversation removes a conversation; selection falls back to the
// newest remaining one.
func (h *ConversationHandler) DeleteConversation(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if _, ok := h.Store.Conversation(vars["id"]); !ok {
		writeError(w, "Conversation not found", http.StatusNotFound)
		return
	}
	h.Store.DeleteConversation(vars["id"])
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// File: internal/handlers/tts_handler.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/kildre/talktalk/internal/services"
	"github.com/kildre/talktalk/internal/services/tts"
)

type TTSHandler struct {
	Provider tts.Provider
	Logger   services.Logger
}

func NewTTSHandler(provider tts.Provider, logger services.Logger) *TTSHandler {
	return &TTSHandler{Provider: provider, Logger: logger}
}

type ttsRequest struct {
	Text  string  `json:"text"`
	Voice string  `json:"voice"`
	Speed float64 `json:"speed"`
	Pitch float64 `json:"pitch"`
}

// HandleSynthesize turns text into speech audio and streams the bytes back.
// Errors come back as JSON so the client can report why synthesis failed.
func (h *TTSHandler) HandleSynthesize(w http.ResponseWriter, r *http.Request) {
	var req ttsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, "text is required", http.StatusBadRequest)
		return
	}

	result, err := h.Provider.Synthesize(r.Context(), &tts.Request{
		Text:  req.Text,
		Voice: req.Voice,
		Speed: req.Speed,
		Pitch: req.Pitch,
	})
	if err != nil {
		h.Logger.Error("synthesis failed", "provider", h.Provider.Name(), "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{
			"error":   "synthesis_failed",
			"message": err.Error(),
		})
		return
	}

	w.Header().Set("Content-Type", result.ContentType)
	w.WriteHeader(http.StatusOK)
	w.Write(result.Audio)
}

// File: internal/handlers/health_handler.go
package handlers

import "net/http"

type HealthHandler struct {
	TTSProvider string
}

func NewHealthHandler(ttsProvider string) *HealthHandler {
	return &HealthHandler{TTSProvider: ttsProvider}
}

func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":       "ok",
		"tts_provider": h.TTSProvider,
	})
}

// File: internal/domain/message.go
package domain

import "time"

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a single message within a conversation. Content is
// mutable until the message is finalized; a pending assistant reply carries
// IsLoading until its response (or error) arrives.
type Message struct {
	ID            string         `json:"id"`
	Role          string         `json:"role"`
	Content       string         `json:"content"`
	Timestamp     time.Time      `json:"timestamp"`
	IsLoading     bool           `json:"isLoading,omitempty"`
	Images        []ChatImage    `json:"images,omitempty"`
	VoiceSettings *VoiceSettings `json:"voiceSettings,omitempty"`
}

// VoiceSettings is a per-message hint for speech playback. Zero values mean
// "use the playback defaults".
type VoiceSettings struct {
	Voice string  `json:"voice,omitempty"`
	Speed float64 `json:"speed,omitempty"`
	Pitch float64 `json:"pitch,omitempty"`
}

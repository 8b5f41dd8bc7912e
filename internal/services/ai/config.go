// File: internal/services/ai/config.go
package ai

import (
	"fmt"
	"time"
)

type Config struct {
	// LLM Configuration
	APIKey  string
	BaseURL string
	Model   string

	// SystemPrompt anchors the assistant's tone for every completion.
	SystemPrompt string

	// Performance Configuration
	Timeout time.Duration

	// Model Parameters
	Temperature float32
	TopP        float32
	MaxTokens   int
}

func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("CHAT_API_KEY is required")
	}
	if c.Model == "" {
		return fmt.Errorf("CHAT_MODEL is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		Model:        "gpt-4o-mini",
		SystemPrompt: "You are a friendly conversational assistant. Keep replies concise and natural to read aloud.",
		Timeout:      2 * time.Minute,
		Temperature:  0.7,
		TopP:         0.9,
		MaxTokens:    1024,
	}
}

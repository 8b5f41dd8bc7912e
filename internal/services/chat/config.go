// File: internal/services/chat/config.go
package chat

import "fmt"

type Config struct {
	// BaseURL of the chat backend; the endpoint client posts to BaseURL + "/chat".
	BaseURL string

	// ApologyText replaces the pending reply when the endpoint call fails.
	ApologyText string

	// NoResponseText is used when the endpoint answers with neither a
	// content nor a response field.
	NoResponseText string
}

func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	if c.ApologyText == "" {
		return fmt.Errorf("apology_text is required")
	}
	if c.NoResponseText == "" {
		return fmt.Errorf("no_response_text is required")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		BaseURL:        "http://localhost:3000",
		ApologyText:    "Sorry, I encountered an error. Please make sure the backend server is running and try again.",
		NoResponseText: "No response received.",
	}
}

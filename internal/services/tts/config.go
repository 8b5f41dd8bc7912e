// File: internal/services/tts/config.go
package tts

import (
	"fmt"
	"time"
)

const (
	ProviderGoogle = "google"
	ProviderAzure  = "azure"
)

type Config struct {
	// Provider selects the synthesis backend: "google" or "azure".
	Provider string

	// Google Cloud Text-to-Speech
	GoogleAPIKey   string
	GoogleEndpoint string
	GoogleVoice    string
	GoogleSpeed    float64
	GooglePitch    float64

	// Azure Cognitive Services Speech
	AzureKey      string
	AzureRegion   string
	AzureEndpoint string // derived from region when empty; settable for tests
	AzureVoice    string
	AzureRate     float64
	AzurePitch    float64

	Timeout time.Duration
}

func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderGoogle:
		if c.GoogleAPIKey == "" {
			return fmt.Errorf("GOOGLE_TTS_API_KEY is required")
		}
	case ProviderAzure:
		if c.AzureKey == "" {
			return fmt.Errorf("AZURE_SPEECH_KEY is required")
		}
		if c.AzureRegion == "" && c.AzureEndpoint == "" {
			return fmt.Errorf("AZURE_SPEECH_REGION is required")
		}
	default:
		return fmt.Errorf("unknown TTS provider %q", c.Provider)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		Provider:       ProviderGoogle,
		GoogleEndpoint: "https://texttospeech.googleapis.com/v1/text:synthesize",
		GoogleVoice:    "en-US-Neural2-D",
		GoogleSpeed:    0.9,
		GooglePitch:    -2.0,
		AzureVoice:     "en-US-GuyNeural",
		AzureRate:      0.9,
		AzurePitch:     0.85,
		Timeout:        30 * time.Second,
	}
}

// NewProvider builds the configured synthesis backend.
func NewProvider(config *Config) (Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, NewConfigError(err.Error())
	}
	switch config.Provider {
	case ProviderGoogle:
		return NewGoogleProvider(config), nil
	case ProviderAzure:
		return NewAzureProvider(config), nil
	}
	return nil, NewConfigError(fmt.Sprintf("unknown TTS provider %q", config.Provider))
}

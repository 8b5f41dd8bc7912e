// File: internal/services/speech/config.go
package speech

import "fmt"

type Config struct {
	// BaseURL of the TTS backend; the synthesizer posts to BaseURL + "/tts".
	BaseURL string

	// Remote synthesis defaults, used when a message carries no
	// voice-settings override.
	DefaultVoice string
	DefaultSpeed float64
	DefaultPitch float64

	// PlaybackBoost is the fixed rate multiplier applied on top of the
	// requested speed when playing remote audio.
	PlaybackBoost float64

	// Local fallback parameters: a deliberately slow, low delivery.
	LocalRate   float64
	LocalPitch  float64
	LocalVolume float64

	// PreferredVoices are local engine voices tried first, in order, before
	// falling back to name and language heuristics.
	PreferredVoices []string
}

func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	if c.DefaultVoice == "" {
		return fmt.Errorf("default_voice is required")
	}
	if c.DefaultSpeed <= 0 {
		return fmt.Errorf("default_speed must be positive")
	}
	if c.PlaybackBoost <= 0 {
		return fmt.Errorf("playback_boost must be positive")
	}
	if c.LocalRate <= 0 {
		return fmt.Errorf("local_rate must be positive")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		BaseURL:       "http://localhost:3000",
		DefaultVoice:  "en-US-Neural2-D",
		DefaultSpeed:  0.9,
		DefaultPitch:  -2.0,
		PlaybackBoost: 1.15,
		LocalRate:     0.8,
		LocalPitch:    0.7,
		LocalVolume:   1.0,
		PreferredVoices: []string{
			"Google UK English Male",
			"Microsoft David - English (United States)",
			"Daniel",
			"Alex",
			"Fred",
		},
	}
}

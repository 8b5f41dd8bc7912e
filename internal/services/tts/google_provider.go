// File: internal/services/tts/google_provider.go
package tts

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// GoogleProvider synthesizes speech with the Google Cloud Text-to-Speech
// REST API, authenticated by API key.
type GoogleProvider struct {
	config *Config
	client *http.Client
}

type googleVoice struct {
	LanguageCode string `json:"languageCode"`
	Name         string `json:"name"`
}

type googleAudioConfig struct {
	AudioEncoding    string   `json:"audioEncoding"`
	SpeakingRate     float64  `json:"speakingRate"`
	Pitch            float64  `json:"pitch"`
	EffectsProfileID []string `json:"effectsProfileId"`
}

type googleSynthesizeRequest struct {
	Input struct {
		Text string `json:"text"`
	} `json:"input"`
	Voice       googleVoice       `json:"voice"`
	AudioConfig googleAudioConfig `json:"audioConfig"`
}

type googleSynthesizeResponse struct {
	AudioContent string `json:"audioContent"`
}

func NewGoogleProvider(config *Config) *GoogleProvider {
	return &GoogleProvider{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
	}
}

func (p *GoogleProvider) Name() string { return ProviderGoogle }

func (p *GoogleProvider) Synthesize(ctx context.Context, req *Request) (*Result, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, NewValidationError("text is required")
	}

	voice := req.Voice
	if voice == "" {
		voice = p.config.GoogleVoice
	}
	speed := req.Speed
	if speed <= 0 {
		speed = p.config.GoogleSpeed
	}
	pitch := req.Pitch
	if pitch == 0 {
		pitch = p.config.GooglePitch
	}

	var payload googleSynthesizeRequest
	payload.Input.Text = req.Text
	payload.Voice = googleVoice{
		LanguageCode: languageCode(voice),
		Name:         voice,
	}
	payload.AudioConfig = googleAudioConfig{
		AudioEncoding:    "MP3",
		SpeakingRate:     speed,
		Pitch:            pitch,
		EffectsProfileID: []string{"headphone-class-device"},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, NewProviderError(ProviderGoogle, "synthesize", "failed to encode request", err)
	}

	url := fmt.Sprintf("%s?key=%s", p.config.GoogleEndpoint, p.config.GoogleAPIKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, NewProviderError(ProviderGoogle, "synthesize", "failed to build request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, NewProviderError(ProviderGoogle, "synthesize", "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, NewProviderError(ProviderGoogle, "synthesize",
			fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail))), nil)
	}

	var decoded googleSynthesizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, NewProviderError(ProviderGoogle, "synthesize", "failed to decode response", err)
	}
	if decoded.AudioContent == "" {
		return nil, NewProviderError(ProviderGoogle, "synthesize", "empty audio content", nil)
	}

	audio, err := base64.StdEncoding.DecodeString(decoded.AudioContent)
	if err != nil {
		return nil, NewProviderError(ProviderGoogle, "synthesize", "audio content is not valid base64", err)
	}

	return &Result{Audio: audio, ContentType: "audio/mpeg"}, nil
}

// languageCode derives the BCP-47 code from a full voice name, e.g.
// "en-US-Neural2-D" yields "en-US".
func languageCode(voice string) string {
	parts := strings.SplitN(voice, "-", 3)
	if len(parts) >= 2 {
		return parts[0] + "-" + parts[1]
	}
	return "en-US"
}

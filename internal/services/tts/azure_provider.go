// File: internal/services/tts/azure_provider.go
package tts

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const azureOutputFormat = "audio-16khz-128kbitrate-mono-mp3"

// AzureProvider synthesizes speech with the Azure Cognitive Services Speech
// REST API, driven by SSML.
type AzureProvider struct {
	config *Config
	client *http.Client
}

func NewAzureProvider(config *Config) *AzureProvider {
	return &AzureProvider{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
	}
}

func (p *AzureProvider) Name() string { return ProviderAzure }

func (p *AzureProvider) endpoint() string {
	if p.config.AzureEndpoint != "" {
		return p.config.AzureEndpoint
	}
	return fmt.Sprintf("https://%s.tts.speech.microsoft.com/cognitiveservices/v1", p.config.AzureRegion)
}

func (p *AzureProvider) Synthesize(ctx context.Context, req *Request) (*Result, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, NewValidationError("text is required")
	}

	ssml := p.buildSSML(req)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint(), strings.NewReader(ssml))
	if err != nil {
		return nil, NewProviderError(ProviderAzure, "synthesize", "failed to build request", err)
	}
	httpReq.Header.Set("Content-Type", "application/ssml+xml")
	httpReq.Header.Set("Ocp-Apim-Subscription-Key", p.config.AzureKey)
	httpReq.Header.Set("X-Microsoft-OutputFormat", azureOutputFormat)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, NewProviderError(ProviderAzure, "synthesize", "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, NewProviderError(ProviderAzure, "synthesize",
			fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail))), nil)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewProviderError(ProviderAzure, "synthesize", "failed to read audio", err)
	}
	if len(audio) == 0 {
		return nil, NewProviderError(ProviderAzure, "synthesize", "empty audio content", nil)
	}

	return &Result{Audio: audio, ContentType: "audio/mpeg"}, nil
}

// buildSSML renders the prosody-wrapped SSML document. Rate is a plain
// multiplier; pitch is expressed as a signed percentage offset from the
// neutral voice, so 0.85 becomes "-15%".
func (p *AzureProvider) buildSSML(req *Request) string {
	voice := req.Voice
	if !strings.HasSuffix(voice, "Neural") {
		voice = p.config.AzureVoice
	}
	rate := req.Speed
	if rate <= 0 {
		rate = p.config.AzureRate
	}
	pitch := req.Pitch
	if pitch <= 0 || pitch > 2 {
		pitch = p.config.AzurePitch
	}
	pitchPercent := (pitch - 1) * 100

	return fmt.Sprintf(
		`<speak version='1.0' xml:lang='%s'><voice name='%s'><prosody rate='%.2f' pitch='%+.0f%%'>%s</prosody></voice></speak>`,
		languageCode(voice), voice, rate, pitchPercent, escapeXML(req.Text))
}

var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}

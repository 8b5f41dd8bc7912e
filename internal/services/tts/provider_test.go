// File: internal/services/tts/provider_test.go
package tts

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func googleTestConfig(endpoint string) *Config {
	cfg := DefaultConfig()
	cfg.GoogleAPIKey = "test-key"
	cfg.GoogleEndpoint = endpoint
	cfg.Timeout = 5 * time.Second
	return cfg
}

func azureTestConfig(endpoint string) *Config {
	cfg := DefaultConfig()
	cfg.Provider = ProviderAzure
	cfg.AzureKey = "test-key"
	cfg.AzureEndpoint = endpoint
	cfg.Timeout = 5 * time.Second
	return cfg
}

func TestGoogleProvider_Synthesize(t *testing.T) {
	var captured googleSynthesizeRequest
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("key")
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("request body not JSON: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(googleSynthesizeResponse{
			AudioContent: base64.StdEncoding.EncodeToString([]byte("mp3-bytes")),
		})
	}))
	defer srv.Close()

	provider := NewGoogleProvider(googleTestConfig(srv.URL))
	result, err := provider.Synthesize(context.Background(), &Request{Text: "Hello world"})
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	if string(result.Audio) != "mp3-bytes" {
		t.Errorf("audio = %q, want decoded bytes", result.Audio)
	}
	if result.ContentType != "audio/mpeg" {
		t.Errorf("content type = %q", result.ContentType)
	}
	if gotKey != "test-key" {
		t.Errorf("api key = %q", gotKey)
	}
	if captured.Input.Text != "Hello world" {
		t.Errorf("input text = %q", captured.Input.Text)
	}
	if captured.Voice.Name != "en-US-Neural2-D" || captured.Voice.LanguageCode != "en-US" {
		t.Errorf("voice = %+v", captured.Voice)
	}
	ac := captured.AudioConfig
	if ac.AudioEncoding != "MP3" || ac.SpeakingRate != 0.9 || ac.Pitch != -2.0 {
		t.Errorf("audio config = %+v", ac)
	}
	if len(ac.EffectsProfileID) != 1 || ac.EffectsProfileID[0] != "headphone-class-device" {
		t.Errorf("effects profile = %v", ac.EffectsProfileID)
	}
}

func TestGoogleProvider_VoiceOverride(t *testing.T) {
	var captured googleSynthesizeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		json.NewEncoder(w).Encode(googleSynthesizeResponse{
			AudioContent: base64.StdEncoding.EncodeToString([]byte("x")),
		})
	}))
	defer srv.Close()

	provider := NewGoogleProvider(googleTestConfig(srv.URL))
	_, err := provider.Synthesize(context.Background(), &Request{
		Text: "hi", Voice: "en-GB-Neural2-B", Speed: 1.1, Pitch: 3,
	})
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if captured.Voice.Name != "en-GB-Neural2-B" || captured.Voice.LanguageCode != "en-GB" {
		t.Errorf("voice = %+v", captured.Voice)
	}
	if captured.AudioConfig.SpeakingRate != 1.1 || captured.AudioConfig.Pitch != 3 {
		t.Errorf("audio config = %+v", captured.AudioConfig)
	}
}

func TestGoogleProvider_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"invalid key"}}`, http.StatusForbidden)
	}))
	defer srv.Close()

	provider := NewGoogleProvider(googleTestConfig(srv.URL))
	_, err := provider.Synthesize(context.Background(), &Request{Text: "hi"})
	if err == nil {
		t.Fatalf("Synthesize() error = nil, want provider error")
	}
	if !strings.Contains(err.Error(), "403") {
		t.Errorf("error = %v, want status in message", err)
	}
}

func TestGoogleProvider_EmptyText(t *testing.T) {
	provider := NewGoogleProvider(googleTestConfig("http://localhost:1"))
	if _, err := provider.Synthesize(context.Background(), &Request{Text: "   "}); err == nil {
		t.Fatalf("Synthesize() error = nil, want validation error")
	}
}

func TestAzureProvider_Synthesize(t *testing.T) {
	var gotSSML, gotKey, gotFormat, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotSSML = string(body)
		gotKey = r.Header.Get("Ocp-Apim-Subscription-Key")
		gotFormat = r.Header.Get("X-Microsoft-OutputFormat")
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte("mp3-bytes"))
	}))
	defer srv.Close()

	provider := NewAzureProvider(azureTestConfig(srv.URL))
	result, err := provider.Synthesize(context.Background(), &Request{Text: "Hello world"})
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	if string(result.Audio) != "mp3-bytes" {
		t.Errorf("audio = %q", result.Audio)
	}
	if gotKey != "test-key" {
		t.Errorf("subscription key = %q", gotKey)
	}
	if gotFormat != "audio-16khz-128kbitrate-mono-mp3" {
		t.Errorf("output format = %q", gotFormat)
	}
	if gotContentType != "application/ssml+xml" {
		t.Errorf("content type = %q", gotContentType)
	}
	if !strings.Contains(gotSSML, "name='en-US-GuyNeural'") {
		t.Errorf("ssml voice missing: %s", gotSSML)
	}
	if !strings.Contains(gotSSML, "rate='0.90'") {
		t.Errorf("ssml rate missing: %s", gotSSML)
	}
	// 0.85 multiplier renders as a -15% pitch offset.
	if !strings.Contains(gotSSML, "pitch='-15%'") {
		t.Errorf("ssml pitch missing: %s", gotSSML)
	}
	if !strings.Contains(gotSSML, ">Hello world</prosody>") {
		t.Errorf("ssml text missing: %s", gotSSML)
	}
}

func TestAzureProvider_SSMLShape(t *testing.T) {
	provider := NewAzureProvider(azureTestConfig("http://localhost:1"))

	tests := []struct {
		name string
		req  Request
		want []string
	}{
		{
			name: "escapes markup in text",
			req:  Request{Text: "a < b & c > d"},
			want: []string{"a &lt; b &amp; c &gt; d"},
		},
		{
			name: "google style pitch falls back to azure default",
			req:  Request{Text: "hi", Pitch: -2.0},
			want: []string{"pitch='-15%'"},
		},
		{
			name: "azure scale pitch passes through",
			req:  Request{Text: "hi", Pitch: 1.1},
			want: []string{"pitch='+10%'"},
		},
		{
			name: "non neural voice replaced by default",
			req:  Request{Text: "hi", Voice: "en-US-Neural2-D"},
			want: []string{"name='en-US-GuyNeural'"},
		},
		{
			name: "neural voice honored",
			req:  Request{Text: "hi", Voice: "en-GB-RyanNeural"},
			want: []string{"name='en-GB-RyanNeural'", `xml:lang='en-GB'`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ssml := provider.buildSSML(&tt.req)
			for _, want := range tt.want {
				if !strings.Contains(ssml, want) {
					t.Errorf("ssml = %s, missing %q", ssml, want)
				}
			}
		})
	}
}

func TestAzureProvider_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	provider := NewAzureProvider(azureTestConfig(srv.URL))
	if _, err := provider.Synthesize(context.Background(), &Request{Text: "hi"}); err == nil {
		t.Fatalf("Synthesize() error = nil, want provider error")
	}
}

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		want    string
		wantErr bool
	}{
		{
			name:   "google",
			mutate: func(c *Config) { c.GoogleAPIKey = "k" },
			want:   ProviderGoogle,
		},
		{
			name: "azure",
			mutate: func(c *Config) {
				c.Provider = ProviderAzure
				c.AzureKey = "k"
				c.AzureRegion = "eastus"
			},
			want: ProviderAzure,
		},
		{
			name:    "google without key",
			mutate:  func(c *Config) {},
			wantErr: true,
		},
		{
			name:    "unknown provider",
			mutate:  func(c *Config) { c.Provider = "polly" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			provider, err := NewProvider(cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("NewProvider() error = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewProvider() error = %v", err)
			}
			if provider.Name() != tt.want {
				t.Errorf("Name() = %q, want %q", provider.Name(), tt.want)
			}
		})
	}
}

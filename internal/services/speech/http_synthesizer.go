// File: internal/services/speech/http_synthesizer.go
package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPSynthesizer talks to a TTS backend over the POST /tts contract:
// audio bytes on success, a JSON error body on failure.
type HTTPSynthesizer struct {
	baseURL string
	client  *http.Client
}

func NewHTTPSynthesizer(baseURL string) *HTTPSynthesizer {
	return &HTTPSynthesizer{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *HTTPSynthesizer) Synthesize(ctx context.Context, req *Request) (*Audio, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, NewSynthesisError("synthesize", "failed to encode request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/tts", bytes.NewReader(body))
	if err != nil {
		return nil, NewSynthesisError("synthesize", "failed to build request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, NewSynthesisError("synthesize", "request failed", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		var failure struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		msg := fmt.Sprintf("tts endpoint returned status %d", httpResp.StatusCode)
		if err := json.NewDecoder(httpResp.Body).Decode(&failure); err == nil && failure.Message != "" {
			msg = failure.Message
		}
		return nil, NewSynthesisError("synthesize", msg, nil)
	}

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, NewSynthesisError("synthesize", "failed to read audio", err)
	}

	contentType := httpResp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "audio/mpeg"
	}
	return &Audio{Data: data, ContentType: contentType}, nil
}

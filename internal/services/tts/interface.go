// File: internal/services/tts/interface.go
package tts

import "context"

// Request is one synthesis job. Voice, Speed and Pitch are optional; a
// provider substitutes its configured defaults for unset fields.
type Request struct {
	Text  string
	Voice string
	Speed float64
	Pitch float64
}

// Result is the synthesized audio.
type Result struct {
	Audio       []byte
	ContentType string
}

// Provider turns text into speech audio
type Provider interface {
	Synthesize(ctx context.Context, req *Request) (*Result, error)
	Name() string
}

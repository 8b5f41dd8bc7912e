// File: internal/services/speech/interface.go
package speech

import "context"

// Request is the body sent to the text-to-speech endpoint.
type Request struct {
	Text  string  `json:"text"`
	Voice string  `json:"voice,omitempty"`
	Speed float64 `json:"speed,omitempty"`
	Pitch float64 `json:"pitch,omitempty"`
}

// Audio is a synthesized utterance ready for playback.
type Audio struct {
	Data        []byte
	ContentType string
}

// Synthesizer converts text to Audio through the remote TTS collaborator.
type Synthesizer interface {
	Synthesize(ctx context.Context, req *Request) (*Audio, error)
}

// Voice is one entry of a local synthesis engine's catalog.
type Voice struct {
	Name    string
	Lang    string
	Default bool
}

// Utterance is a single local synthesis job.
type Utterance struct {
	Text   string
	Voice  Voice
	Rate   float64
	Pitch  float64
	Volume float64
}

// Engine is a host-provided local speech synthesis capability. Speak runs
// asynchronously and calls done exactly once, with a nil error on natural
// completion and a non-nil error on synthesis failure; done is never invoked
// synchronously from within Speak. Cancel silences any utterance in flight;
// a canceled utterance must not fire done.
type Engine interface {
	Voices() []Voice
	Speak(u Utterance, done func(error)) error
	Cancel()
}

// Playback is a handle to audio that has started playing.
type Playback interface {
	// Stop halts playback and releases the underlying audio resource.
	// Stopping must suppress the done callback.
	Stop()
}

// Player starts playback of synthesized audio at the given rate multiplier.
// done is called exactly once on natural completion or playback error, and
// never synchronously from within Play itself.
type Player interface {
	Play(audio *Audio, rate float64, done func(error)) (Playback, error)
}

// File: internal/services/speech/controller.go
package speech

import (
	"context"
	"strings"
	"sync"

	"github.com/kildre/talktalk/internal/domain"
)

// State is the playback session state.
type State int

const (
	StateIdle State = iota
	StateRequesting
	StatePlaying
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRequesting:
		return "requesting"
	case StatePlaying:
		return "playing"
	default:
		return "unknown"
	}
}

// Logger defines the logging interface used by the controller.
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// Controller is the per-process speech playback session. At most one audio
// resource, remote or local, is active at any time; toggling while anything
// is requesting or playing acts as a stop button.
type Controller struct {
	config *Config
	synth  Synthesizer
	engine Engine
	player Player
	logger Logger

	mu        sync.Mutex
	state     State
	playback  Playback
	speaking  bool // local engine utterance in flight
	messageID string
	gen       uint64 // bumped on every stop; stale callbacks check it
}

func NewController(config *Config, synth Synthesizer, engine Engine, player Player, logger Logger) (*Controller, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, NewConfigError(err.Error())
	}
	return &Controller{
		config: config,
		synth:  synth,
		engine: engine,
		player: player,
		logger: logger,
	}, nil
}

// State returns the current playback state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SpeakingMessageID returns the id of the message whose speech is active,
// or "" when idle.
func (c *Controller) SpeakingMessageID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.messageID
}

// ToggleSpeak starts speech for the message, or stops whatever is currently
// audible. selection, when non-empty, is the part of the message's rendered
// content the user has highlighted; only that part is spoken.
//
// Remote synthesis failures fall back to the local engine without surfacing
// an error. ErrEngineUnavailable is returned when the fallback is needed
// but no engine exists in the host environment.
func (c *Controller) ToggleSpeak(ctx context.Context, msg *domain.Message, selection string) error {
	c.mu.Lock()
	if c.state != StateIdle {
		c.stopLocked()
		c.mu.Unlock()
		return nil
	}
	c.state = StateRequesting
	c.messageID = msg.ID
	gen := c.gen
	c.mu.Unlock()

	content := msg.Content
	if sel := strings.TrimSpace(selection); sel != "" {
		content = sel
	}
	text := Normalize(content)

	voice, speed, pitch := c.resolveVoice(msg.VoiceSettings)

	audio, err := c.synth.Synthesize(ctx, &Request{
		Text:  text,
		Voice: voice,
		Speed: speed,
		Pitch: pitch,
	})
	if err != nil {
		c.logger.Warn("remote synthesis failed, falling back to local engine", "error", err)
		return c.speakLocally(text, gen)
	}
	return c.playRemote(audio, gen)
}

// Close stops and releases any active audio. Call on teardown.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

func (c *Controller) playRemote(audio *Audio, gen uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Toggled off while the request was in flight: discard the audio.
	if c.gen != gen || c.state != StateRequesting {
		return nil
	}

	playback, err := c.player.Play(audio, c.config.PlaybackBoost, func(playErr error) {
		c.finish(gen, playErr)
	})
	if err != nil {
		c.logger.Error("audio playback failed to start", "error", err)
		c.resetLocked()
		return NewPlaybackError("play", "failed to start audio playback", err)
	}

	c.playback = playback
	c.state = StatePlaying
	return nil
}

func (c *Controller) speakLocally(text string, gen uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.gen != gen || c.state != StateRequesting {
		return nil
	}

	if c.engine == nil {
		c.resetLocked()
		return ErrEngineUnavailable
	}

	voice, _ := SelectLocalVoice(c.engine.Voices(), c.config.PreferredVoices)
	err := c.engine.Speak(Utterance{
		Text:   text,
		Voice:  voice,
		Rate:   c.config.LocalRate,
		Pitch:  c.config.LocalPitch,
		Volume: c.config.LocalVolume,
	}, func(speakErr error) {
		c.finish(gen, speakErr)
	})
	if err != nil {
		c.resetLocked()
		return NewSynthesisError("speak", "local synthesis failed to start", err)
	}

	c.speaking = true
	c.state = StatePlaying
	return nil
}

// finish handles natural completion or a playback error from either source.
func (c *Controller) finish(gen uint64, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.gen != gen {
		return
	}
	if err != nil {
		c.logger.Warn("speech ended with error", "message_id", c.messageID, "error", err)
	}
	c.resetLocked()
}

// stopLocked terminates the active session: stops remote audio, cancels any
// local utterance, and invalidates outstanding callbacks.
func (c *Controller) stopLocked() {
	if c.playback != nil {
		c.playback.Stop()
		c.playback = nil
	}
	if c.speaking && c.engine != nil {
		c.engine.Cancel()
	}
	c.resetLocked()
}

// resetLocked returns the controller to Idle and invalidates stale work.
func (c *Controller) resetLocked() {
	c.gen++
	c.state = StateIdle
	c.playback = nil
	c.speaking = false
	c.messageID = ""
}

// resolveVoice applies the message's voice-settings override on top of the
// configured defaults. Zero values mean "not set".
func (c *Controller) resolveVoice(vs *domain.VoiceSettings) (voice string, speed, pitch float64) {
	voice = c.config.DefaultVoice
	speed = c.config.DefaultSpeed
	pitch = c.config.DefaultPitch
	if vs == nil {
		return voice, speed, pitch
	}
	if vs.Voice != "" {
		voice = vs.Voice
	}
	if vs.Speed > 0 {
		speed = vs.Speed
	}
	if vs.Pitch != 0 {
		pitch = vs.Pitch
	}
	return voice, speed, pitch
}

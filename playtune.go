// Package playtune plays PLAY-style tune notation: octave markers, note
// letters with accidentals, explicit note numbers, length/tempo/articulation
// directives and dotted durations, interpreted in one pass and rendered as a
// sequence of tones and rests.
package playtune

import (
	"fmt"
	"io"
	"time"

	intaudio "github.com/cbegin/playtune-go/internal/audio"
	intbeep "github.com/cbegin/playtune-go/internal/beepout"
	intplay "github.com/cbegin/playtune-go/internal/play"
)

// Sink receives interpreted events, one call per event in source order.
type Sink = intplay.Sink

// NopSink discards every event.
type NopSink = intplay.NopSink

// Error carries the kind and source position of an interpretation failure.
type Error = intplay.Error

type ErrorKind = intplay.ErrorKind

const (
	ErrUnexpectedEndOfInput = intplay.ErrUnexpectedEndOfInput
	ErrUnexpectedCharacter  = intplay.ErrUnexpectedCharacter
	ErrOctaveOutOfRange     = intplay.ErrOctaveOutOfRange
	ErrNoteLengthOutOfRange = intplay.ErrNoteLengthOutOfRange
	ErrNoteNumberOutOfRange = intplay.ErrNoteNumberOutOfRange
	ErrTempoOutOfRange      = intplay.ErrTempoOutOfRange
	ErrInvalidDottedCount   = intplay.ErrInvalidDottedCount
)

// Interpret scans text and streams the resulting events to sink. The first
// malformed token aborts interpretation with an *Error; nothing is emitted
// past that point.
func Interpret(text string, sink Sink) error {
	return intplay.Interpret(text, sink)
}

// Event is one interpreted tone or rest. FreqHz is zero for rests.
type Event struct {
	FreqHz     int
	DurationMs int
	Rest       bool
}

// Events interprets text against a recording sink and returns the event
// sequence instead of playing it.
func Events(text string) ([]Event, error) {
	var rec eventRecorder
	if err := intplay.Interpret(text, &rec); err != nil {
		return nil, err
	}
	return rec.events, nil
}

type eventRecorder struct {
	events []Event
}

func (r *eventRecorder) Sound(freqHz, durationMs int) {
	r.events = append(r.events, Event{FreqHz: freqHz, DurationMs: durationMs})
}

func (r *eventRecorder) Rest(durationMs int) {
	r.events = append(r.events, Event{DurationMs: durationMs, Rest: true})
}

// Backend selects the device a Player renders through.
type Backend string

const (
	BackendBeep   Backend = "beep"
	BackendEbiten Backend = "ebiten"
	// BackendSilent plays nothing but still sleeps each event's duration,
	// preserving the tune's real-time pacing.
	BackendSilent Backend = "silent"
)

type PlayerOption func(*playerConfig)

type playerConfig struct {
	backend    Backend
	sampleRate int
	volume     float64
	sink       Sink
}

func defaultPlayerConfig() playerConfig {
	return playerConfig{backend: BackendBeep, sampleRate: 48000, volume: 0.5}
}

func WithBackend(backend Backend) PlayerOption {
	return func(cfg *playerConfig) {
		cfg.backend = backend
	}
}

func WithSampleRate(sampleRate int) PlayerOption {
	return func(cfg *playerConfig) {
		cfg.sampleRate = sampleRate
	}
}

// WithVolume sets the render amplitude, 0..1.
func WithVolume(volume float64) PlayerOption {
	return func(cfg *playerConfig) {
		cfg.volume = volume
	}
}

// WithSink bypasses backend selection and renders through a custom sink.
func WithSink(sink Sink) PlayerOption {
	return func(cfg *playerConfig) {
		cfg.sink = sink
	}
}

// Player renders tunes through a device sink. Playback is synchronous: Play
// returns when the last event has finished sounding or on the first
// interpretation error.
type Player struct {
	sink Sink
}

func NewPlayer(opts ...PlayerOption) (*Player, error) {
	cfg := defaultPlayerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.sink != nil {
		return &Player{sink: cfg.sink}, nil
	}
	sink, err := newSinkForBackend(cfg)
	if err != nil {
		return nil, err
	}
	return &Player{sink: sink}, nil
}

func newSinkForBackend(cfg playerConfig) (Sink, error) {
	switch cfg.backend {
	case BackendBeep:
		return intbeep.New(cfg.sampleRate, cfg.volume)
	case BackendEbiten:
		return intaudio.New(cfg.sampleRate, cfg.volume)
	case BackendSilent:
		return sleepSink{}, nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.backend)
	}
}

func (p *Player) Play(text string) error {
	return intplay.Interpret(text, p.sink)
}

// Close releases the device behind the sink, if it holds one. Play must not
// be called after Close.
func (p *Player) Close() error {
	if c, ok := p.sink.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// sleepSink realizes event timing with wall-clock sleeps and no device.
type sleepSink struct{}

func (sleepSink) Sound(freqHz, durationMs int) {
	time.Sleep(time.Duration(durationMs) * time.Millisecond)
}

func (sleepSink) Rest(durationMs int) {
	time.Sleep(time.Duration(durationMs) * time.Millisecond)
}

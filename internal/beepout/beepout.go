// Package beepout plays interpreted tune events through the beep speaker.
package beepout

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// The beep speaker is process-global. It is opened by the first New, stays
// fixed at that sample rate, and is released again by Close; re-initializing
// it at a different rate would silently reset any sink already playing.
var (
	speakerMu   sync.Mutex
	speakerRate beep.SampleRate
	speakerOn   bool
)

func acquireSpeaker(sr beep.SampleRate) error {
	speakerMu.Lock()
	defer speakerMu.Unlock()
	if speakerOn {
		if speakerRate != sr {
			return fmt.Errorf("speaker already initialized at %d Hz (requested %d Hz)", speakerRate, sr)
		}
		return nil
	}
	if err := speaker.Init(sr, sr.N(time.Millisecond*100)); err != nil {
		return err
	}
	speakerRate = sr
	speakerOn = true
	return nil
}

func releaseSpeaker() {
	speakerMu.Lock()
	defer speakerMu.Unlock()
	if !speakerOn {
		return
	}
	speaker.Clear()
	speaker.Close()
	speakerOn = false
}

// Sink renders tones and rests through gopxl/beep, blocking per event.
type Sink struct {
	sr     beep.SampleRate
	volume float64
}

func New(sampleRate int, volume float64) (*Sink, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", sampleRate)
	}
	sr := beep.SampleRate(sampleRate)
	if err := acquireSpeaker(sr); err != nil {
		return nil, err
	}
	return &Sink{sr: sr, volume: clampVolume(volume)}, nil
}

// Close drops any queued audio and releases the speaker device.
func (s *Sink) Close() error {
	releaseSpeaker()
	return nil
}

func (s *Sink) Sound(freqHz, durationMs int) {
	d := time.Duration(durationMs) * time.Millisecond
	s.playBlocking(beep.Take(s.sr.N(d), newToneGenerator(s.sr, float64(freqHz), s.volume)))
}

func (s *Sink) Rest(durationMs int) {
	d := time.Duration(durationMs) * time.Millisecond
	s.playBlocking(beep.Silence(s.sr.N(d)))
}

// playBlocking queues the streamer followed by a callback and waits for the
// callback to fire, so the next event cannot start before this one has
// played out.
func (s *Sink) playBlocking(streamer beep.Streamer) {
	done := make(chan struct{})
	speaker.Play(beep.Seq(streamer, beep.Callback(func() {
		close(done)
	})))
	<-done
}

// toneGenerator produces a steady sine at the given frequency. A 5ms attack
// envelope avoids clicks at note onsets; Take trims it to the event length.
type toneGenerator struct {
	sr     beep.SampleRate
	freq   float64
	volume float64
	pos    int
}

func newToneGenerator(sr beep.SampleRate, freq, volume float64) *toneGenerator {
	return &toneGenerator{sr: sr, freq: freq, volume: volume}
}

func (g *toneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	attack := float64(g.sr) * 0.005
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		env := math.Min(float64(g.pos)/attack, 1.0)
		v := g.volume * env * math.Sin(2*math.Pi*g.freq*t)
		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

func (g *toneGenerator) Err() error { return nil }

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

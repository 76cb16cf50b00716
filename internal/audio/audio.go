// Package audio plays interpreted tune events through the ebiten audio
// device. Each event becomes a finite float32 stream; playback blocks until
// the device has drained it, which is what paces the interpreter.
package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	ebitaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

var (
	audioContextOnce sync.Once
	audioContext     *ebitaudio.Context
	audioSampleRate  int
)

// The ebiten audio context is process-global and fixed to one sample rate.
func sharedAudioContext(sampleRate int) (*ebitaudio.Context, error) {
	audioContextOnce.Do(func() {
		audioSampleRate = sampleRate
		audioContext = ebitaudio.NewContext(sampleRate)
	})
	if audioSampleRate != sampleRate {
		return nil, fmt.Errorf("audio context already initialized at %d Hz (requested %d Hz)", audioSampleRate, sampleRate)
	}
	return audioContext, nil
}

// Sink renders tones and rests on the ebiten audio device, one event at a
// time, blocking for each event's duration.
type Sink struct {
	ctx        *ebitaudio.Context
	sampleRate int
	volume     float64
}

func New(sampleRate int, volume float64) (*Sink, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", sampleRate)
	}
	ctx, err := sharedAudioContext(sampleRate)
	if err != nil {
		return nil, err
	}
	return &Sink{ctx: ctx, sampleRate: sampleRate, volume: clampVolume(volume)}, nil
}

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func (s *Sink) Sound(freqHz, durationMs int) {
	s.render(float64(freqHz), durationMs)
}

// Rest renders zero samples rather than sleeping so that gaps stay on the
// audio clock, back to back with the tones around them.
func (s *Sink) Rest(durationMs int) {
	s.render(0, durationMs)
}

func (s *Sink) render(freq float64, durationMs int) {
	src := newToneSource(s.sampleRate, freq, s.volume, durationMs)
	pl, err := s.ctx.NewPlayerF32(newStreamReader(src))
	if err != nil {
		// No device for this event; hold the tempo with a plain sleep.
		time.Sleep(time.Duration(durationMs) * time.Millisecond)
		return
	}
	defer pl.Close()
	pl.Play()
	for pl.IsPlaying() {
		time.Sleep(2 * time.Millisecond)
	}
}

// toneSource generates a fixed number of sine samples, then reports itself
// finished. A short attack/release ramp keeps note boundaries click-free.
type toneSource struct {
	sampleRate int
	freq       float64
	volume     float64
	pos        int
	total      int
}

func newToneSource(sampleRate int, freq, volume float64, durationMs int) *toneSource {
	return &toneSource{
		sampleRate: sampleRate,
		freq:       freq,
		volume:     volume,
		total:      sampleRate * durationMs / 1000,
	}
}

func (s *toneSource) Process(dst []float32) {
	ramp := s.sampleRate / 200 // 5ms
	if ramp < 1 {
		ramp = 1
	}
	for i := 0; i+1 < len(dst); i += 2 {
		var v float64
		if s.pos < s.total && s.freq > 0 {
			t := float64(s.pos) / float64(s.sampleRate)
			env := 1.0
			if s.pos < ramp {
				env = float64(s.pos) / float64(ramp)
			}
			if left := s.total - s.pos; left < ramp {
				env = float64(left) / float64(ramp)
			}
			v = s.volume * env * math.Sin(2*math.Pi*s.freq*t)
		}
		dst[i] = float32(v)
		dst[i+1] = float32(v)
		if s.pos < s.total {
			s.pos++
		}
	}
}

func (s *toneSource) Finished() bool { return s.pos >= s.total }

// streamReader adapts a toneSource to the io.Reader the ebiten player
// consumes: interleaved stereo float32, little endian. It returns io.EOF
// once the source has produced its full sample budget.
type streamReader struct {
	source *toneSource
	buf    []float32
}

func newStreamReader(source *toneSource) *streamReader {
	return &streamReader{source: source}
}

func (r *streamReader) Read(p []byte) (int, error) {
	frames := len(p) / 8
	if frames == 0 {
		return 0, nil
	}
	need := frames * 2
	if cap(r.buf) < need {
		r.buf = make([]float32, need)
	}
	r.buf = r.buf[:need]
	r.source.Process(r.buf)
	for i := 0; i < need; i++ {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(r.buf[i]))
	}
	n := frames * 8
	if r.source.Finished() {
		return n, io.EOF
	}
	return n, nil
}

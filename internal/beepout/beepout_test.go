package beepout

import (
	"math"
	"testing"

	"github.com/gopxl/beep"
)

func TestToneGeneratorProducesSignal(t *testing.T) {
	sr := beep.SampleRate(48000)
	g := newToneGenerator(sr, 440, 0.5)
	buf := make([][2]float64, 4800)
	n, ok := g.Stream(buf)
	if n != len(buf) || !ok {
		t.Fatalf("Stream returned n=%d ok=%v", n, ok)
	}
	peak := 0.0
	for _, s := range buf {
		if s[0] != s[1] {
			t.Fatalf("expected identical stereo channels, got %v", s)
		}
		peak = math.Max(peak, math.Abs(s[0]))
	}
	if peak < 0.4 || peak > 0.5 {
		t.Fatalf("expected peak near the 0.5 volume, got %f", peak)
	}
	if g.Err() != nil {
		t.Fatalf("generator reported error: %v", g.Err())
	}
}

func TestVolumeClamp(t *testing.T) {
	if v := clampVolume(2); v != 1 {
		t.Fatalf("expected over-scale volume to clamp to 1, got %f", v)
	}
	if v := clampVolume(-0.5); v != 0 {
		t.Fatalf("expected negative volume to clamp to 0, got %f", v)
	}
	if v := clampVolume(0.3); v != 0.3 {
		t.Fatalf("in-range volume changed: %f", v)
	}
}

func TestReleaseSpeakerBeforeInit(t *testing.T) {
	// Releasing an unopened speaker must be a no-op.
	releaseSpeaker()
}

func TestToneGeneratorAttackRampsFromSilence(t *testing.T) {
	sr := beep.SampleRate(48000)
	g := newToneGenerator(sr, 440, 1.0)
	buf := make([][2]float64, 16)
	g.Stream(buf)
	if buf[0][0] != 0 {
		t.Fatalf("first sample should be silent, got %f", buf[0][0])
	}
	if math.Abs(buf[15][0]) >= 1.0 {
		t.Fatalf("attack should still be ramping at sample 15, got %f", buf[15][0])
	}
}

package playtune

import (
	"errors"
	"testing"
	"time"
)

func TestEvents(t *testing.T) {
	events, err := Events("T120 O3 MN L4 C P4 N56")
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	if events[0].Rest || events[0].FreqHz != 262 || events[0].DurationMs != 438 {
		t.Fatalf("first event: %+v", events[0])
	}
	if !events[1].Rest || events[1].DurationMs != 438 {
		t.Fatalf("second event should be a 438 ms rest: %+v", events[1])
	}
	if events[2].FreqHz != 880 {
		t.Fatalf("N56 should be 880 Hz: %+v", events[2])
	}
}

func TestEventsError(t *testing.T) {
	_, err := Events("C O9")
	if err == nil {
		t.Fatalf("expected error")
	}
	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if perr.Kind != ErrOctaveOutOfRange || perr.Index != 3 {
		t.Fatalf("got %v", perr)
	}
}

type countingSink struct {
	sounds int
	rests  int
}

func (s *countingSink) Sound(freqHz, durationMs int) { s.sounds++ }
func (s *countingSink) Rest(durationMs int)          { s.rests++ }

func TestPlayerWithCustomSink(t *testing.T) {
	sink := &countingSink{}
	pl, err := NewPlayer(WithSink(sink))
	if err != nil {
		t.Fatalf("NewPlayer failed: %v", err)
	}
	if err := pl.Play("C D E P4 F"); err != nil {
		t.Fatalf("Play failed: %v", err)
	}
	if sink.sounds != 4 || sink.rests != 1 {
		t.Fatalf("expected 4 tones and 1 rest, got %d and %d", sink.sounds, sink.rests)
	}
}

type closableSink struct {
	countingSink
	closed bool
}

func (s *closableSink) Close() error {
	s.closed = true
	return nil
}

func TestPlayerClose(t *testing.T) {
	sink := &closableSink{}
	pl, err := NewPlayer(WithSink(sink))
	if err != nil {
		t.Fatalf("NewPlayer failed: %v", err)
	}
	if err := pl.Play("C"); err != nil {
		t.Fatalf("Play failed: %v", err)
	}
	if err := pl.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if !sink.closed {
		t.Fatalf("expected Close to release the sink")
	}
}

func TestPlayerCloseWithoutCloser(t *testing.T) {
	pl, err := NewPlayer(WithBackend(BackendSilent))
	if err != nil {
		t.Fatalf("NewPlayer failed: %v", err)
	}
	if err := pl.Close(); err != nil {
		t.Fatalf("Close on a deviceless sink: %v", err)
	}
}

func TestPlayerUnknownBackend(t *testing.T) {
	if _, err := NewPlayer(WithBackend(Backend("bogus"))); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}

func TestSilentBackendKeepsTiming(t *testing.T) {
	pl, err := NewPlayer(WithBackend(BackendSilent))
	if err != nil {
		t.Fatalf("NewPlayer failed: %v", err)
	}
	start := time.Now()
	// T255 L64 staccato: one very short tone, ~11 ms.
	if err := pl.Play("T255 MS L64 C"); err != nil {
		t.Fatalf("Play failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 10*time.Millisecond {
		t.Fatalf("silent backend returned in %v, expected it to sleep the tune out", elapsed)
	}
}

func TestInterpretNopSink(t *testing.T) {
	if err := Interpret("T140 O5 L8 C D E F G A B > C", NopSink{}); err != nil {
		t.Fatalf("Interpret failed: %v", err)
	}
}

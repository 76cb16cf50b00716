package play

// Sink receives the interpreted event stream, one call per event in source
// order. Implementations that drive a real device are expected to block for
// the event's duration; that blocking is what realizes the notation's timing.
type Sink interface {
	// Sound plays a tone of the given frequency for the given duration.
	Sound(freqHz, durationMs int)
	// Rest holds silence for the given duration.
	Rest(durationMs int)
}

// NopSink discards every event. It is the reference sink when no device is
// available; it never fails and never blocks.
type NopSink struct{}

func (NopSink) Sound(freqHz, durationMs int) {}
func (NopSink) Rest(durationMs int)          {}

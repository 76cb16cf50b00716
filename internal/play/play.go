// Package play interprets PLAY-style tune notation in a single left-to-right
// pass, streaming tone and rest events to a Sink as they are resolved. There
// is no token list or score in between: each directive mutates the
// interpreter state, each note or pause is emitted the moment its suffix
// (accidental, inline length, dots) has been consumed.
package play

import "math"

const (
	minOctave, maxOctave = 0, 6
	minTempo, maxTempo   = 32, 255
	minLength, maxLength = 1, 64
	maxNoteNumber        = 84
	maxDots              = 2

	// Explicit note numbers (N0..N84) sit 5 below the internal pitch
	// index space; indices under lowestTone render as silence.
	noteNumberOffset = 5
	lowestTone       = 6
	pausePitch       = 0

	// Equal temperament anchored at pitch index 49 = concert A.
	referencePitch = 49
	referenceFreq  = 440.0
)

const (
	articulationStaccato = 0.75
	articulationNormal   = 0.875
	articulationLegato   = 1.0
)

// Semitone offset of each note letter within its octave, C-based chromatic.
// B-C and E-F are adjacent semitones, so B/E take no sharp and C/F no flat.
var noteOffsets = map[byte]int{
	'A': 1, 'B': 3, 'C': 4, 'D': 6, 'E': 8, 'F': 9, 'G': 11,
}

type interpreter struct {
	cur  *cursor
	sink Sink

	octave       int
	tempo        int
	length       int
	articulation float64
}

// Interpret scans text and streams the resulting events to sink. It stops at
// the first malformed token and returns a *Error carrying the offending
// index; no further events are emitted after a failure. A nil sink discards
// all events.
func Interpret(text string, sink Sink) error {
	if sink == nil {
		sink = NopSink{}
	}
	in := &interpreter{
		cur:          newCursor(text),
		sink:         sink,
		octave:       3,
		tempo:        120,
		length:       4,
		articulation: articulationNormal,
	}
	return in.run()
}

func (in *interpreter) run() error {
	for in.cur.more() {
		ch, err := in.cur.current()
		if err != nil {
			return err
		}
		switch {
		case ch == 'O':
			err = in.octaveSet()
		case ch == '<':
			err = in.octaveStep(-1)
		case ch == '>':
			err = in.octaveStep(+1)
		case ch >= 'A' && ch <= 'G':
			err = in.noteLetter(ch)
		case ch == 'N':
			err = in.noteNumber()
		case ch == 'P':
			err = in.pause()
		case ch == 'L':
			err = in.lengthDirective()
		case ch == 'T':
			err = in.tempoDirective()
		case ch == 'M':
			err = in.articulationDirective()
		case isSpace(ch):
		default:
			err = &Error{Kind: ErrUnexpectedCharacter, Index: in.cur.pos, Char: ch}
		}
		if err != nil {
			return err
		}
		in.cur.skip()
	}
	return nil
}

// octaveSet handles O<digit>.
func (in *interpreter) octaveSet() error {
	ch, err := in.cur.advance()
	if err != nil {
		return err
	}
	v := digit(ch)
	if v < minOctave || v > maxOctave {
		return &Error{Kind: ErrOctaveOutOfRange, Index: in.cur.pos, Char: ch}
	}
	in.octave = v
	return nil
}

// octaveStep handles < and >. Stepping outside 0..6 is an error, not a clamp.
func (in *interpreter) octaveStep(delta int) error {
	next := in.octave + delta
	if next < minOctave || next > maxOctave {
		ch, _ := in.cur.current()
		return &Error{Kind: ErrOctaveOutOfRange, Index: in.cur.pos, Char: ch}
	}
	in.octave = next
	return nil
}

// noteLetter handles A..G with an optional accidental, an optional inline
// note length and up to two dots. The inline length applies to this note
// only; the default length is untouched.
func (in *interpreter) noteLetter(ch byte) error {
	pitch := in.octave*12 + noteOffsets[ch]
	if p, ok := in.cur.peek(); ok {
		switch p {
		case '#', '+':
			in.cur.skip()
			if ch != 'B' && ch != 'E' {
				pitch++
			}
		case '-':
			in.cur.skip()
			if ch != 'C' && ch != 'F' {
				pitch--
			}
		}
	}
	length := in.length
	if p, ok := in.cur.peek(); ok && isDigit(p) {
		in.cur.skip()
		v, err := in.noteLength()
		if err != nil {
			return err
		}
		length = v
	}
	mul, err := in.dots()
	if err != nil {
		return err
	}
	in.emit(pitch, length, mul)
	return nil
}

// noteNumber handles N<0..84>. The raw value is shifted into the internal
// pitch index space; N0 lands in the silence range and plays as a rest.
func (in *interpreter) noteNumber() error {
	ch, err := in.cur.advance()
	if err != nil {
		return err
	}
	if !isDigit(ch) {
		return &Error{Kind: ErrNoteNumberOutOfRange, Index: in.cur.pos, Char: ch}
	}
	v := digit(ch)
	if p, ok := in.cur.peek(); ok && isDigit(p) {
		in.cur.skip()
		v = v*10 + digit(p)
	}
	if v > maxNoteNumber {
		ch, _ = in.cur.current()
		return &Error{Kind: ErrNoteNumberOutOfRange, Index: in.cur.pos, Char: ch}
	}
	mul, err := in.dots()
	if err != nil {
		return err
	}
	in.emit(v+noteNumberOffset, in.length, mul)
	return nil
}

// pause handles P<length>. Unlike notes the length is mandatory.
func (in *interpreter) pause() error {
	if _, err := in.cur.advance(); err != nil {
		return err
	}
	length, err := in.noteLength()
	if err != nil {
		return err
	}
	mul, err := in.dots()
	if err != nil {
		return err
	}
	in.emit(pausePitch, length, mul)
	return nil
}

// lengthDirective handles L<1..64>, replacing the default note length.
func (in *interpreter) lengthDirective() error {
	if _, err := in.cur.advance(); err != nil {
		return err
	}
	length, err := in.noteLength()
	if err != nil {
		return err
	}
	in.length = length
	return nil
}

// tempoDirective handles T<32..255>. The second digit is mandatory; a third
// is consumed when present.
func (in *interpreter) tempoDirective() error {
	ch, err := in.cur.advance()
	if err != nil {
		return err
	}
	v := digit(ch)
	if v < 1 || v > 9 {
		return &Error{Kind: ErrTempoOutOfRange, Index: in.cur.pos, Char: ch}
	}
	p, ok := in.cur.peek()
	if !ok || !isDigit(p) {
		return &Error{Kind: ErrTempoOutOfRange, Index: in.cur.pos + 1, Char: p}
	}
	in.cur.skip()
	v = v*10 + digit(p)
	if p, ok := in.cur.peek(); ok && isDigit(p) {
		in.cur.skip()
		v = v*10 + digit(p)
	}
	if v < minTempo || v > maxTempo {
		ch, _ = in.cur.current()
		return &Error{Kind: ErrTempoOutOfRange, Index: in.cur.pos, Char: ch}
	}
	in.tempo = v
	return nil
}

// articulationDirective handles M<B|F|L|N|S>. MB and MF select background
// and foreground playback, which this interpreter does not support; both are
// accepted and ignored for compatibility.
func (in *interpreter) articulationDirective() error {
	ch, err := in.cur.advance()
	if err != nil {
		return err
	}
	switch ch {
	case 'L':
		in.articulation = articulationLegato
	case 'N':
		in.articulation = articulationNormal
	case 'S':
		in.articulation = articulationStaccato
	case 'B', 'F':
	default:
		return &Error{Kind: ErrUnexpectedCharacter, Index: in.cur.pos, Char: ch}
	}
	return nil
}

// noteLength reads a 1-2 digit length with the cursor on the first digit.
// The first digit alone must be 1..9, the composed value 1..64.
func (in *interpreter) noteLength() (int, error) {
	ch, err := in.cur.current()
	if err != nil {
		return 0, err
	}
	v := digit(ch)
	if v < 1 || v > 9 {
		return 0, &Error{Kind: ErrNoteLengthOutOfRange, Index: in.cur.pos, Char: ch}
	}
	if p, ok := in.cur.peek(); ok && isDigit(p) {
		in.cur.skip()
		v = v*10 + digit(p)
	}
	if v < minLength || v > maxLength {
		ch, _ = in.cur.current()
		return 0, &Error{Kind: ErrNoteLengthOutOfRange, Index: in.cur.pos, Char: ch}
	}
	return v, nil
}

// dots consumes up to two trailing dots and returns the duration multiplier.
func (in *interpreter) dots() (float64, error) {
	n := 0
	for {
		p, ok := in.cur.peek()
		if !ok || p != '.' {
			break
		}
		in.cur.skip()
		n++
		if n > maxDots {
			return 0, &Error{Kind: ErrInvalidDottedCount, Index: in.cur.pos, Char: '.'}
		}
	}
	switch n {
	case 1:
		return 1.5, nil
	case 2:
		return 1.75, nil
	}
	return 1.0, nil
}

// emit resolves a pitch index and length modifier into a concrete event.
// Rounding (half away from zero) happens once, at the very end.
func (in *interpreter) emit(pitch, length int, dotMul float64) {
	ms := 60.0 / float64(in.tempo) * 1000.0
	ms *= 4.0 / float64(length)
	ms *= dotMul
	ms *= in.articulation
	durationMs := int(math.Round(ms))
	if pitch < lowestTone {
		in.sink.Rest(durationMs)
		return
	}
	freq := int(math.Round(referenceFreq * math.Pow(2, float64(pitch-referencePitch)/12.0)))
	in.sink.Sound(freq, durationMs)
}

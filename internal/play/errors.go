package play

import "fmt"

// ErrorKind classifies interpretation failures.
type ErrorKind int

const (
	ErrUnexpectedEndOfInput ErrorKind = iota + 1
	ErrUnexpectedCharacter
	ErrOctaveOutOfRange
	ErrNoteLengthOutOfRange
	ErrNoteNumberOutOfRange
	ErrTempoOutOfRange
	ErrInvalidDottedCount
)

// Error reports where interpretation stopped. Index is the byte offset of
// the character that failed validation; Char is that character (upper-cased),
// or zero when the input ended.
type Error struct {
	Kind  ErrorKind
	Index int
	Char  byte
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrUnexpectedEndOfInput:
		return fmt.Sprintf("unexpected end of input at index %d", e.Index)
	case ErrUnexpectedCharacter:
		return fmt.Sprintf("unexpected character %q at index %d", e.Char, e.Index)
	case ErrOctaveOutOfRange:
		return fmt.Sprintf("octave out of range at index %d", e.Index)
	case ErrNoteLengthOutOfRange:
		return fmt.Sprintf("note length out of range at index %d", e.Index)
	case ErrNoteNumberOutOfRange:
		return fmt.Sprintf("note number out of range at index %d", e.Index)
	case ErrTempoOutOfRange:
		return fmt.Sprintf("tempo out of range at index %d", e.Index)
	case ErrInvalidDottedCount:
		return fmt.Sprintf("too many dots at index %d", e.Index)
	default:
		return fmt.Sprintf("interpretation failed at index %d", e.Index)
	}
}

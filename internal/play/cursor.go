package play

// cursor is a bounded, case-folding view over the tune text. Reads past the
// end are reported as errors rather than a sentinel; the notation has no
// token that may legally be cut short by end of input.
type cursor struct {
	text string
	pos  int
}

func newCursor(text string) *cursor {
	return &cursor{text: text}
}

func (c *cursor) more() bool { return c.pos < len(c.text) }

// current returns the upper-cased character at the active index.
func (c *cursor) current() (byte, error) {
	if c.pos >= len(c.text) {
		return 0, &Error{Kind: ErrUnexpectedEndOfInput, Index: c.pos}
	}
	return upper(c.text[c.pos]), nil
}

// advance commits a move to the next index and reads it.
func (c *cursor) advance() (byte, error) {
	c.pos++
	return c.current()
}

// peek reads one position ahead without moving. ok is false at the end of
// the text; lookahead never faults.
func (c *cursor) peek() (byte, bool) {
	if c.pos+1 >= len(c.text) {
		return 0, false
	}
	return upper(c.text[c.pos+1]), true
}

// skip moves past the current character without reading.
func (c *cursor) skip() { c.pos++ }

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 32
	}
	return b
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func digit(b byte) int { return int(b) - '0' }

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

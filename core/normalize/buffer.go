package normalize

import (
	"strings"
	"unicode/utf8"
)

// buffer accumulates the produced Markdown. It is append-only except for
// tail truncation: handlers that need to undo output may only retract the
// most recent characters, never edit the middle. Alongside the bytes it
// tracks how many runes the current line holds, which drives soft wrapping
// and the width of setext underlines.
type buffer struct {
	buf  []byte
	line int // runes since the last '\n' appended
}

// write appends literal text and advances the line counter per rune.
func (b *buffer) write(s string) {
	b.buf = append(b.buf, s...)
	for _, r := range s {
		if r == '\n' {
			b.line = 0
		} else {
			b.line++
		}
	}
}

// writeRune appends a single rune.
func (b *buffer) writeRune(r rune) {
	b.buf = utf8.AppendRune(b.buf, r)
	if r == '\n' {
		b.line = 0
	} else {
		b.line++
	}
}

// blank appends a single separating space unless the buffer is empty,
// already ends in a newline, or ends in "**". The last case keeps inline
// emphasis markers from acquiring doubled separators.
func (b *buffer) blank() {
	switch {
	case len(b.buf) == 0:
	case b.last() == '\n':
	case b.last() == '*' && b.penult() == '*':
	default:
		b.writeRune(' ')
	}
}

// pad appends one separator space without counting it toward the current
// line. Only the scanner's tag-entry separator uses it, so that setext
// underlines match the width of the visible text.
func (b *buffer) pad() {
	b.buf = append(b.buf, ' ')
}

// shorten removes the last n runes, clamping at the start of the buffer.
// It never touches the line counter: the characters handlers retract are
// uncounted pad spaces, and the one counted case (blank-before-dot) adjusts
// the counter at the call site.
func (b *buffer) shorten(n int) {
	for ; n > 0 && len(b.buf) > 0; n-- {
		_, size := utf8.DecodeLastRune(b.buf)
		b.buf = b.buf[:len(b.buf)-size]
	}
}

// trimBlanks removes trailing spaces and tabs, leaving newlines intact.
func (b *buffer) trimBlanks() {
	for len(b.buf) > 0 {
		c := b.buf[len(b.buf)-1]
		if c != ' ' && c != '\t' {
			break
		}
		b.buf = b.buf[:len(b.buf)-1]
	}
}

// underline closes the current line and underlines it with a run of mark
// as wide as the line's rune count, producing a setext heading. Two
// newlines follow and the line counter resets.
func (b *buffer) underline(mark byte) {
	b.buf = append(b.buf, '\n')
	b.buf = append(b.buf, strings.Repeat(string(mark), b.line)...)
	b.buf = append(b.buf, '\n', '\n')
	b.line = 0
}

// last returns the final rune in the buffer, or 0 when empty.
func (b *buffer) last() rune {
	if len(b.buf) == 0 {
		return 0
	}
	r, _ := utf8.DecodeLastRune(b.buf)
	return r
}

// penult returns the second-to-last rune, or 0 when the buffer holds
// fewer than two runes.
func (b *buffer) penult() rune {
	if len(b.buf) == 0 {
		return 0
	}
	_, size := utf8.DecodeLastRune(b.buf)
	rest := b.buf[:len(b.buf)-size]
	if len(rest) == 0 {
		return 0
	}
	r, _ := utf8.DecodeLastRune(rest)
	return r
}

// empty reports whether nothing has been emitted yet.
func (b *buffer) empty() bool {
	return len(b.buf) == 0
}

func (b *buffer) String() string {
	return string(b.buf)
}

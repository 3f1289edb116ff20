package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferWriteTracksLine(t *testing.T) {
	var b buffer

	b.write("hello")
	assert.Equal(t, "hello", b.String())
	assert.Equal(t, 5, b.line)

	b.write(" wor\nld")
	assert.Equal(t, "hello wor\nld", b.String())
	assert.Equal(t, 2, b.line, "counter resets on newline and counts the tail line")
}

func TestBufferWriteRuneMultibyte(t *testing.T) {
	var b buffer

	b.writeRune('é')
	b.writeRune('→')
	assert.Equal(t, "é→", b.String())
	assert.Equal(t, 2, b.line, "line counts runes, not bytes")

	b.writeRune('\n')
	assert.Equal(t, 0, b.line)
}

func TestBufferBlank(t *testing.T) {
	tests := []struct {
		name     string
		seed     string
		expected string
	}{
		{"empty buffer", "", ""},
		{"after text", "a", "a "},
		{"after newline", "a\n", "a\n"},
		{"after emphasis marker", "x**", "x**"},
		{"after space", "a ", "a  "},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var b buffer
			b.write(tc.seed)
			b.blank()
			assert.Equal(t, tc.expected, b.String())
		})
	}
}

func TestBufferPadIsUncounted(t *testing.T) {
	var b buffer

	b.write("abc")
	b.pad()
	assert.Equal(t, "abc ", b.String())
	assert.Equal(t, 3, b.line, "pad must not widen the line")

	// The underline of a setext heading spans only the counted runes.
	b.underline('=')
	assert.Equal(t, "abc \n===\n\n", b.String())
	assert.Equal(t, 0, b.line)
}

func TestBufferShorten(t *testing.T) {
	var b buffer

	b.write("abcd")
	b.shorten(2)
	assert.Equal(t, "ab", b.String())

	b.shorten(10)
	assert.Equal(t, "", b.String(), "over-shortening clamps to empty")

	b.shorten(1) // empty buffer is a no-op

	b.write("aé")
	b.shorten(1)
	assert.Equal(t, "a", b.String(), "shorten removes whole runes")
}

func TestBufferShortenLeavesCounter(t *testing.T) {
	var b buffer

	b.write("abc")
	b.shorten(1)
	assert.Equal(t, 3, b.line, "callers adjust the counter when they retract counted runes")
}

func TestBufferTrimBlanks(t *testing.T) {
	tests := []struct {
		name     string
		seed     string
		expected string
	}{
		{"spaces and tabs", "a  \t ", "a"},
		{"stops at newline", "a\n ", "a\n"},
		{"nothing to trim", "ab", "ab"},
		{"empty", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var b buffer
			b.write(tc.seed)
			b.trimBlanks()
			assert.Equal(t, tc.expected, b.String())
		})
	}
}

func TestBufferUnderline(t *testing.T) {
	var b buffer

	b.write("Title")
	b.underline('=')
	assert.Equal(t, "Title\n=====\n\n", b.String())

	b.write("Sub")
	b.underline('-')
	assert.Equal(t, "Title\n=====\n\nSub\n---\n\n", b.String())
}

func TestBufferLastAndPenult(t *testing.T) {
	var b buffer
	assert.Equal(t, rune(0), b.last())
	assert.Equal(t, rune(0), b.penult())
	assert.True(t, b.empty())

	b.write("a")
	assert.Equal(t, 'a', b.last())
	assert.Equal(t, rune(0), b.penult())

	b.write("é")
	assert.Equal(t, 'é', b.last())
	assert.Equal(t, 'a', b.penult())
	assert.False(t, b.empty())
}

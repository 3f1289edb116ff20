package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrepare(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"tab becomes space", "a\tb", "a b"},
		{"ampersand entity", "Tom &amp; Jerry", "Tom & Jerry"},
		{"non-breaking space entity", "A&nbsp;B", "A B"},
		{"arrow entity", "Go &rarr; Stop", "Go → Stop"},
		{"comment stripped", "Before<!-- hidden -->After", "BeforeAfter"},
		{"multiline comment stripped", "A<!--\nline one\nline two\n-->B", "AB"},
		{"two comments", "A<!-- x -->B<!-- y -->C", "ABC"},
		{"unterminated comment kept", "A<!-- never closed", "A<!-- never closed"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, prepare(tc.input))
		})
	}
}

func TestTidyLines(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"trims each line", "  a  \n\tb\t", "a\nb"},
		{"collapses blank runs", "A\n\n\n\nB", "A\n\nB"},
		{"single blank kept", "A\n\nB", "A\n\nB"},
		{"whitespace-only line is blank", "A\n   \n\t\nB", "A\n\nB"},
		{"empty input", "", ""},
		{"trailing newline", "A\nB\n", "A\nB\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tidyLines(tc.input))
		})
	}
}

func TestCleanupRepairs(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"space before comma", "x , y", "x, y"},
		{"dot alone on a line", "a\n.\nb", "a.\nb"},
		{"return marker between lines", "a\n↵\nb", "a ↵\nb"},
		{"star alone on a line", "a\n*\nb", "a\nb"},
		{"star line between blanks", "a\n\n*\n\nb", "a\n\nb"},
		{"dot starting a line", "a\n. b", "a.\nb"},
		{"space inside bracket", "x [ y", "x [y"},
		{"bracket opening a line", "x\n[ y", "x\n[y"},
		{"whole document trimmed", "\n\nbody\n\n", "body"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, cleanup(tc.input))
		})
	}
}

func TestCleanupIdempotentOnTypicalOutput(t *testing.T) {
	// Scanner output: trailing hard-break spaces, uncollapsed blank runs,
	// artifacts the repairs target.
	inputs := []string{
		"Title \n=====\n\n\n\n\n### Section \n\nBody , text.   \n\n* one   \n* two   \n\n",
		"plain single line",
		"a [ link](u) and **bold**  \n\nnext",
		"text \n\n*   \n\ntext2 ", // empty bullet between paragraphs
		"",
	}

	for _, in := range inputs {
		once := cleanup(in)
		assert.Equal(t, once, cleanup(once))
	}
}

func TestTidyLinesIdempotent(t *testing.T) {
	inputs := []string{
		"  a  \n\n\n\nb\n",
		"x\n\ny",
		"",
	}

	for _, in := range inputs {
		once := tidyLines(in)
		assert.Equal(t, once, tidyLines(once))
	}
}

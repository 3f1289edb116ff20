// Package normalize converts cleaned HTML into Markdown, which serves as
// the canonical intermediate format for all downstream renderers.
//
// The conversion is a single forward pass with no DOM: a scanner walks the
// input one rune at a time, dispatches per-tag handlers as it crosses tag
// boundaries, and emits into an append-only buffer whose tail handlers may
// retract. A post-pass trims lines, collapses blank runs and applies a
// small set of textual repairs. Malformed HTML never fails conversion; the
// only error the package surfaces is for input that is not valid UTF-8,
// raised before scanning starts.
package normalize

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrInvalidUTF8 is returned for input that is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("input is not valid UTF-8")

// defaultWrapWidth is the soft-wrap column used unless an Option overrides it.
const defaultWrapWidth = 80

// Option configures a conversion.
type Option func(*converter)

// WithWrapWidth sets the column after which the next space between words
// becomes a line break. Zero or negative disables soft wrapping.
func WithWrapWidth(w int) Option {
	return func(c *converter) {
		c.wrap = w
	}
}

// ConvertString converts an HTML document to Markdown. The whole document
// is converted at once; there is no streaming. Repeated calls with the
// same input yield the same output, and concurrent calls are safe.
func ConvertString(html string, opts ...Option) (string, error) {
	if !utf8.ValidString(html) {
		return "", ErrInvalidUTF8
	}
	c := &converter{src: prepare(html), wrap: defaultWrapWidth}
	for _, opt := range opts {
		opt(c)
	}
	c.run()
	return cleanup(c.out.String()), nil
}

// MarkdownNormalizer adapts ConvertString to the pipeline's Normalizer
// interface.
type MarkdownNormalizer struct {
	opts []Option
}

// New creates a MarkdownNormalizer.
func New(opts ...Option) *MarkdownNormalizer {
	return &MarkdownNormalizer{opts: opts}
}

// Normalize converts a cleaned HTML fragment into Markdown.
func (n *MarkdownNormalizer) Normalize(html string) (string, error) {
	markdown, err := ConvertString(html, n.opts...)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return markdown, nil
}

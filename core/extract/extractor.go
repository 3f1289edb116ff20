// Package extract implements the Extractor interface.
// It isolates the main content from a full HTML page by:
//  1. Removing noise elements (nav, footer, scripts, images, etc.)
//  2. Finding the best content container (<main>, <article>, or <body>)
//
// Extraction is opt-in: the conversion engine already suppresses
// script/style/nav content on its own, so this stage is for reader-mode
// treatment of pages heavy with chrome.
package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// noiseSelectors are HTML elements removed before extraction.
// These contribute no meaningful content to the page text.
var noiseSelectors = []string{
	"script", "style", "noscript",
	"nav", "footer", "header",
	"img", "picture", "figure", "figcaption",
	"iframe", "video", "audio",
	"svg", "canvas",
	"form", "button", "input", "select", "textarea",
	".sidebar", ".menu", ".navigation", ".ads", ".advertisement",
}

// HTMLExtractor strips noise from HTML and returns the main content fragment.
type HTMLExtractor struct {
	extraSelectors []string
}

// Option configures an HTMLExtractor.
type Option func(*HTMLExtractor)

// WithNoiseSelectors adds CSS selectors to the removal list.
func WithNoiseSelectors(selectors ...string) Option {
	return func(e *HTMLExtractor) {
		e.extraSelectors = append(e.extraSelectors, selectors...)
	}
}

// New creates an HTMLExtractor.
func New(opts ...Option) *HTMLExtractor {
	e := &HTMLExtractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract takes raw HTML and returns a cleaned HTML fragment containing
// only the main content.
func (e *HTMLExtractor) Extract(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	e.removeNoise(doc)

	content := findContainer(doc)
	if content == nil {
		return "", fmt.Errorf("no content container found in HTML")
	}

	result, err := goquery.OuterHtml(content)
	if err != nil {
		return "", fmt.Errorf("serializing content: %w", err)
	}

	return result, nil
}

// removeNoise drops noise elements from the whole document.
func (e *HTMLExtractor) removeNoise(doc *goquery.Document) {
	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}
	for _, sel := range e.extraSelectors {
		doc.Find(sel).Remove()
	}
}

// findContainer picks the best content container in priority order.
// <main> is the most semantically correct, then <article>, then <body>.
func findContainer(doc *goquery.Document) *goquery.Selection {
	for _, tag := range []string{"main", "article", "body"} {
		sel := doc.Find(tag)
		if sel.Length() > 0 {
			return sel.First()
		}
	}
	return nil
}

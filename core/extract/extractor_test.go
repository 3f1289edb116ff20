package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calder-ross/pagemd/core"
)

func TestExtractorInterface(t *testing.T) {
	var _ core.Extractor = (*HTMLExtractor)(nil)
}

func TestExtractPrefersMain(t *testing.T) {
	html := `<html><body>
		<nav>Menu</nav>
		<main><p>Main story</p></main>
		<article><p>Side piece</p></article>
	</body></html>`

	out, err := New().Extract(html)
	require.NoError(t, err)

	assert.Contains(t, out, "Main story")
	assert.NotContains(t, out, "Side piece")
	assert.NotContains(t, out, "Menu")
}

func TestExtractFallsBackToArticle(t *testing.T) {
	html := `<html><body><article><p>The article</p></article><p>Outside</p></body></html>`

	out, err := New().Extract(html)
	require.NoError(t, err)

	assert.Contains(t, out, "The article")
	assert.NotContains(t, out, "Outside")
}

func TestExtractFallsBackToBody(t *testing.T) {
	html := `<html><body><p>Just a body</p></body></html>`

	out, err := New().Extract(html)
	require.NoError(t, err)

	assert.Contains(t, out, "Just a body")
}

func TestExtractRemovesNoise(t *testing.T) {
	html := `<html><body><main>
		<script>alert(1)</script>
		<style>p { color: red }</style>
		<img src="x.png">
		<form><input type="text"></form>
		<div class="ads">Buy now</div>
		<p>Keep me</p>
	</main></body></html>`

	out, err := New().Extract(html)
	require.NoError(t, err)

	assert.Contains(t, out, "Keep me")
	assert.NotContains(t, out, "alert")
	assert.NotContains(t, out, "color: red")
	assert.NotContains(t, out, "img")
	assert.NotContains(t, out, "input")
	assert.NotContains(t, out, "Buy now")
}

func TestExtractExtraSelectors(t *testing.T) {
	html := `<html><body><main>
		<div class="cookie-banner">Accept cookies</div>
		<p>Content</p>
	</main></body></html>`

	out, err := New(WithNoiseSelectors(".cookie-banner")).Extract(html)
	require.NoError(t, err)

	assert.Contains(t, out, "Content")
	assert.NotContains(t, out, "Accept cookies")
}

func TestExtractEmptyInput(t *testing.T) {
	// html.Parse synthesizes <body> even for empty input, so this
	// succeeds with an empty container rather than erroring.
	out, err := New().Extract("")
	require.NoError(t, err)
	assert.Contains(t, out, "body")
}

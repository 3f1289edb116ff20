package render

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calder-ross/pagemd/core"
)

func TestMarkdownRendererInterface(t *testing.T) {
	var _ core.Renderer = (*MarkdownRenderer)(nil)
}

func TestMarkdownRenderPassthrough(t *testing.T) {
	data, err := NewMarkdownRenderer().Render(context.Background(), sampleMarkdown, core.PageMetadata{})
	require.NoError(t, err)

	assert.Equal(t, sampleMarkdown, string(data))
}

func TestMarkdownRendererExtension(t *testing.T) {
	assert.Equal(t, ".md", NewMarkdownRenderer().Extension())
}

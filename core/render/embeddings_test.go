package render

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calder-ross/pagemd/core"
)

type fakeEmbedder struct {
	vec   []float64
	err   error
	calls int
}

func (f *fakeEmbedder) Embed(_ context.Context, _ string, _ string) ([]float64, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.vec, nil
}

func TestEmbeddingsRendererInterface(t *testing.T) {
	var _ core.Renderer = (*EmbeddingsRenderer)(nil)
	var _ core.Embedder = (*OllamaEmbedder)(nil)
}

func TestEmbeddingsRendererExtension(t *testing.T) {
	r := NewEmbeddingsRenderer(&fakeEmbedder{}, "m", 512)
	assert.Equal(t, ".embeddings.txt", r.Extension())
}

func TestEmbeddingsRender(t *testing.T) {
	embedder := &fakeEmbedder{vec: []float64{0.25, -0.5}}
	r := NewEmbeddingsRenderer(embedder, "nomic-embed-text", 512)

	meta := core.PageMetadata{URL: "https://example.com/page"}
	data, err := r.Render(context.Background(), "Short test content.", meta)
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "# source: https://example.com/page\n")
	assert.Contains(t, out, "# model: nomic-embed-text\n")
	assert.Contains(t, out, "# chunk_size: 512\n")
	assert.Contains(t, out, "--- chunk 1 ---\n")
	assert.Contains(t, out, "TEXT:\nShort test content.\n")
	assert.Contains(t, out, "VECTOR:\n[0.2500, -0.5000]\n")
	assert.Equal(t, 1, embedder.calls)
}

func TestEmbeddingsRenderEmptyContent(t *testing.T) {
	r := NewEmbeddingsRenderer(&fakeEmbedder{}, "m", 512)

	_, err := r.Render(context.Background(), "", core.PageMetadata{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no content to embed")
}

func TestEmbeddingsRenderEmbedFailure(t *testing.T) {
	embedder := &fakeEmbedder{err: errors.New("model not found")}
	r := NewEmbeddingsRenderer(embedder, "m", 512)

	_, err := r.Render(context.Background(), "Some content.", core.PageMetadata{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "embedding chunk 1")
	assert.Contains(t, err.Error(), "model not found")
}

func TestOllamaEmbed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req ollamaRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "nomic-embed-text", req.Model)
		assert.Equal(t, "hello", req.Prompt)

		json.NewEncoder(w).Encode(ollamaResponse{Embedding: []float64{1, 2, 3}})
	}))
	defer srv.Close()

	e := NewOllamaEmbedder(WithEndpoint(srv.URL))
	vec, err := e.Embed(context.Background(), "hello", "nomic-embed-text")
	require.NoError(t, err)

	assert.Equal(t, []float64{1, 2, 3}, vec)
}

func TestOllamaEmbedAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model missing", http.StatusInternalServerError)
	}))
	defer srv.Close()

	e := NewOllamaEmbedder(WithEndpoint(srv.URL))
	_, err := e.Embed(context.Background(), "hello", "m")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestOllamaEmbedMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	e := NewOllamaEmbedder(WithEndpoint(srv.URL))
	_, err := e.Embed(context.Background(), "hello", "m")
	assert.Error(t, err)
}

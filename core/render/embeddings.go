// Package render — Embeddings renderer.
// Generates embeddings from Markdown by chunking the text and calling
// an Ollama-compatible embedding API for each chunk.
// Output is a human-readable .embeddings.txt file.
package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/calder-ross/pagemd/core"
	"github.com/calder-ross/pagemd/core/chunk"
)

const (
	defaultOllamaURL = "http://localhost:11434/api/embeddings"
	embeddingTimeout = 60 * time.Second
)

// OllamaEmbedder calls an Ollama-compatible embeddings endpoint.
type OllamaEmbedder struct {
	url    string
	client *http.Client
}

// EmbedderOption configures an OllamaEmbedder.
type EmbedderOption func(*OllamaEmbedder)

// WithEndpoint overrides the embeddings endpoint URL.
func WithEndpoint(url string) EmbedderOption {
	return func(e *OllamaEmbedder) {
		e.url = url
	}
}

// NewOllamaEmbedder creates an OllamaEmbedder targeting the local
// Ollama instance unless overridden.
func NewOllamaEmbedder(opts ...EmbedderOption) *OllamaEmbedder {
	e := &OllamaEmbedder{
		url:    defaultOllamaURL,
		client: &http.Client{Timeout: embeddingTimeout},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ollamaRequest is the request body for the Ollama embeddings API.
type ollamaRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

// ollamaResponse is the response body from the Ollama embeddings API.
type ollamaResponse struct {
	Embedding []float64 `json:"embedding"`
}

// Embed generates a vector for a single text input.
func (e *OllamaEmbedder) Embed(ctx context.Context, text string, model string) ([]float64, error) {
	reqBody := ollamaRequest{
		Model:  model,
		Prompt: text,
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling embeddings API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("embeddings API returned %d: %s", resp.StatusCode, string(body))
	}

	var ollamaResp ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&ollamaResp); err != nil {
		return nil, fmt.Errorf("decoding embeddings response: %w", err)
	}

	return ollamaResp.Embedding, nil
}

// EmbeddingsRenderer generates embeddings from Markdown chunks.
type EmbeddingsRenderer struct {
	Model     string
	ChunkSize int
	embedder  core.Embedder
}

// NewEmbeddingsRenderer creates an EmbeddingsRenderer using the given
// embedder for vector generation.
func NewEmbeddingsRenderer(embedder core.Embedder, model string, chunkSize int) *EmbeddingsRenderer {
	return &EmbeddingsRenderer{
		Model:     model,
		ChunkSize: chunkSize,
		embedder:  embedder,
	}
}

// Render chunks the Markdown, embeds each chunk, and produces
// the human-readable .embeddings.txt output.
func (r *EmbeddingsRenderer) Render(ctx context.Context, markdown string, meta core.PageMetadata) ([]byte, error) {
	chunker := chunk.New(r.ChunkSize)
	chunks := chunker.Chunk(markdown)

	if len(chunks) == 0 {
		return nil, fmt.Errorf("no content to embed")
	}

	var buf strings.Builder
	// Write header.
	fmt.Fprintf(&buf, "# source: %s\n", meta.URL)
	fmt.Fprintf(&buf, "# model: %s\n", r.Model)
	fmt.Fprintf(&buf, "# chunk_size: %d\n\n", r.ChunkSize)

	for i, chunkText := range chunks {
		embedding, err := r.embedder.Embed(ctx, chunkText, r.Model)
		if err != nil {
			return nil, fmt.Errorf("embedding chunk %d: %w", i+1, err)
		}

		fmt.Fprintf(&buf, "--- chunk %d ---\n", i+1)
		fmt.Fprintf(&buf, "TEXT:\n%s\n\n", chunkText)

		// Format vector.
		vecStrs := make([]string, len(embedding))
		for j, v := range embedding {
			vecStrs[j] = fmt.Sprintf("%.4f", v)
		}
		fmt.Fprintf(&buf, "VECTOR:\n[%s]\n\n", strings.Join(vecStrs, ", "))
	}

	return []byte(buf.String()), nil
}

// Extension returns the file extension for embeddings output.
func (r *EmbeddingsRenderer) Extension() string {
	return ".embeddings.txt"
}

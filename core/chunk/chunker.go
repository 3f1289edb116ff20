// Package chunk splits Markdown text into token-sized chunks for embedding.
// Chunks follow the document's heading structure: each #-heading starts a
// new section, and only sections larger than the chunk size are windowed
// into fixed-size word runs. Uses a simple whitespace tokenizer
// (words ≈ tokens). Chunk overlap is 0.
package chunk

import "strings"

// Chunker splits Markdown into heading-aligned token chunks.
type Chunker struct {
	ChunkSize int // number of tokens (words) per chunk
}

// New creates a Chunker with the given chunk size.
// Defaults to 512 if chunkSize <= 0.
func New(chunkSize int) *Chunker {
	if chunkSize <= 0 {
		chunkSize = 512
	}
	return &Chunker{ChunkSize: chunkSize}
}

// Chunk splits the Markdown into chunks of at most ChunkSize words.
// Section boundaries (ATX headings) are preserved: a heading and its body
// share a chunk, and a new heading never continues a previous section's
// chunk. Oversized sections are windowed.
func (c *Chunker) Chunk(markdown string) []string {
	var chunks []string
	for _, section := range splitSections(markdown) {
		chunks = append(chunks, c.window(section)...)
	}
	return chunks
}

// splitSections cuts the Markdown at ATX heading lines. The heading line
// stays with the text that follows it. Content before the first heading
// forms its own section.
func splitSections(markdown string) []string {
	var sections []string
	var current []string

	flush := func() {
		if len(current) == 0 {
			return
		}
		section := strings.TrimSpace(strings.Join(current, "\n"))
		if section != "" {
			sections = append(sections, section)
		}
		current = nil
	}

	for _, line := range strings.Split(markdown, "\n") {
		if isHeadingLine(line) {
			flush()
		}
		current = append(current, line)
	}
	flush()

	return sections
}

// isHeadingLine reports whether the line is an ATX heading. Setext
// underlines stay attached to their text line.
func isHeadingLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "#") {
		return false
	}
	rest := strings.TrimLeft(trimmed, "#")
	return strings.HasPrefix(rest, " ") || rest == ""
}

// window splits one section into runs of at most ChunkSize words.
func (c *Chunker) window(section string) []string {
	words := strings.Fields(section)
	if len(words) == 0 {
		return nil
	}

	var chunks []string
	for i := 0; i < len(words); i += c.ChunkSize {
		end := i + c.ChunkSize
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[i:end], " "))
	}
	return chunks
}

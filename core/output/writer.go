// Package output handles file naming and writing for PageMD outputs.
// In --only mode, filenames are derived from the domain (e.g., example_com.md).
// In --all mode, filenames mirror the URL path structure, and identical
// rendered content (mirror or alias pages) is written once and skipped
// thereafter.
package output

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/zeebo/xxh3"
)

// Writer writes rendered output to disk.
// It is safe for concurrent use.
type Writer struct {
	OutputDir string

	mu   sync.Mutex
	seen map[uint64]string // content hash → path of the first copy
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	// Ensure the output directory exists.
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{
		OutputDir: outputDir,
		seen:      make(map[uint64]string),
	}, nil
}

// WriteOnly writes output for --only mode.
// Filename: domain_path.ext (e.g., example_com.md).
func (w *Writer) WriteOnly(rawURL string, data []byte, ext string) (string, error) {
	name := filenameFromURL(rawURL)
	path := filepath.Join(w.OutputDir, name+ext)

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// WriteNamed writes output for local-file input, deriving the filename
// from the input file's base name (input.html → input.md).
func (w *Writer) WriteNamed(inputPath string, data []byte, ext string) (string, error) {
	base := filepath.Base(inputPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." {
		base = "output"
	}
	path := filepath.Join(w.OutputDir, base+ext)

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// WriteAll writes output for --all mode, mirroring the URL path structure.
// Example: https://site.com/docs/intro → ./docs/intro.md
// Content already written under another URL is skipped; the returned path
// then names the earlier copy.
func (w *Writer) WriteAll(rawURL string, data []byte, ext string) (path string, skipped bool, err error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", false, fmt.Errorf("parsing URL: %w", err)
	}

	// Build the path from the URL.
	urlPath := strings.TrimSuffix(parsed.Path, "/")
	if urlPath == "" || urlPath == "/" {
		urlPath = "/index"
	}
	// Remove leading slash for filepath.Join.
	urlPath = strings.TrimPrefix(urlPath, "/")

	fullPath := filepath.Join(w.OutputDir, urlPath+ext)

	// Reject URL paths that climb out of the output directory.
	base := filepath.Clean(w.OutputDir)
	if fullPath != base && !strings.HasPrefix(fullPath, base+string(filepath.Separator)) {
		return "", false, fmt.Errorf("output path for %s escapes %s", rawURL, w.OutputDir)
	}

	// Skip content we have already written under another URL.
	hash := xxh3.Hash(data)
	w.mu.Lock()
	if prior, ok := w.seen[hash]; ok {
		w.mu.Unlock()
		return prior, true, nil
	}
	w.seen[hash] = fullPath
	w.mu.Unlock()

	// Ensure parent directories exist.
	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		w.forget(hash)
		return "", false, fmt.Errorf("creating directory %s: %w", dir, err)
	}

	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		w.forget(hash)
		return "", false, fmt.Errorf("writing file %s: %w", fullPath, err)
	}
	return fullPath, false, nil
}

// forget releases a hash reservation after a failed write.
func (w *Writer) forget(hash uint64) {
	w.mu.Lock()
	delete(w.seen, hash)
	w.mu.Unlock()
}

// filenameFromURL converts a URL into a flat filename.
// Example: https://example.com/docs/intro → example_com_docs_intro
func filenameFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		// Fallback: sanitize the raw string.
		return sanitize(rawURL)
	}

	name := sanitize(parsed.Host)
	for _, seg := range strings.Split(strings.Trim(parsed.Path, "/"), "/") {
		if seg != "" {
			name += "_" + sanitize(seg)
		}
	}
	return name
}

// sanitize replaces non-alphanumeric characters with underscores.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return '_'
	}, s)
}

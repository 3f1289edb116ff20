// Package render — JSON renderer.
// Builds the structured JSON output from Markdown and page metadata.
// The Markdown is parsed into a goldmark AST and walked once to extract
// structural information (headings, links, code blocks, tables, lists).
package render

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/calder-ross/pagemd/core"
)

// JSONRenderer produces structured JSON output from Markdown.
type JSONRenderer struct {
	md goldmark.Markdown
}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{
		// GFM so tables and strikethrough are recognized in the AST.
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Render converts Markdown and metadata into the JSON page structure.
func (r *JSONRenderer) Render(ctx context.Context, markdown string, meta core.PageMetadata) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("render cancelled: %w", err)
	}

	source := []byte(markdown)
	doc := r.md.Parser().Parse(text.NewReader(source))

	page := core.PageJSON{
		Metadata: meta,
		Content: core.PageContent{
			Text:     plainText(doc, source),
			Markdown: markdown,
			Sections: buildSections(doc, source),
		},
		Structure: buildStructure(doc, source),
	}

	data, err := json.MarshalIndent(page, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

// --- AST helpers ---

// buildStructure collects headings, links, and element counts in one walk.
func buildStructure(doc ast.Node, source []byte) core.PageStructure {
	var s core.PageStructure

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Heading:
			s.Headings = append(s.Headings, core.Heading{
				Level: n.Level,
				Text:  nodeText(n, source),
			})
		case *ast.Link:
			s.Links = append(s.Links, core.Link{
				Text: nodeText(n, source),
				Href: string(n.Destination),
			})
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			s.CodeBlocks++
		case *ast.List:
			s.Lists++
		case *east.Table:
			s.Tables++
		}
		return ast.WalkContinue, nil
	})

	return s
}

// buildSections slices the document into heading-delimited sections.
// Content before the first heading belongs to no section.
func buildSections(doc ast.Node, source []byte) []core.Section {
	var sections []core.Section
	var current *core.Section
	var parts []string

	flush := func() {
		if current == nil {
			return
		}
		current.Text = strings.TrimSpace(strings.Join(parts, "\n"))
		sections = append(sections, *current)
		current = nil
		parts = nil
	}

	for child := doc.FirstChild(); child != nil; child = child.NextSibling() {
		if h, ok := child.(*ast.Heading); ok {
			flush()
			current = &core.Section{
				Heading: nodeText(h, source),
				Level:   h.Level,
			}
			continue
		}
		if current != nil {
			parts = append(parts, nodeText(child, source))
		}
	}
	flush()

	return sections
}

// plainText renders the document as unformatted text, one block per
// paragraph break.
func plainText(doc ast.Node, source []byte) string {
	var parts []string
	for child := doc.FirstChild(); child != nil; child = child.NextSibling() {
		if txt := nodeText(child, source); txt != "" {
			parts = append(parts, txt)
		}
	}
	return strings.Join(parts, "\n\n")
}

// nodeText returns the plain text content of a node and its descendants.
func nodeText(n ast.Node, source []byte) string {
	var sb strings.Builder
	writeText(n, source, &sb)
	return strings.TrimSpace(sb.String())
}

func writeText(n ast.Node, source []byte, sb *strings.Builder) {
	switch t := n.(type) {
	case *ast.Text:
		sb.Write(t.Value(source))
		if t.SoftLineBreak() || t.HardLineBreak() {
			sb.WriteByte('\n')
		}
	case *ast.String:
		sb.Write(t.Value)
	case *ast.AutoLink:
		sb.Write(t.URL(source))
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		writeSegments(t, source, sb)
	default:
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			writeText(c, source, sb)
			// Put each list item on its own line.
			if _, ok := c.(*ast.ListItem); ok {
				sb.WriteByte('\n')
			}
		}
	}
}

func writeSegments(n ast.Node, source []byte, sb *strings.Builder) {
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(source))
	}
}

package normalize

import (
	"regexp"
	"strings"
)

var comments = regexp.MustCompile(`(?s)<!--.*?-->`)

// prepare rewrites raw HTML into the form the scanner expects. Tabs become
// spaces, the few entities that survive into visible text are decoded, and
// comments are stripped whole so their bodies never reach the tag scanner.
func prepare(html string) string {
	html = strings.ReplaceAll(html, "\t", " ")
	html = strings.ReplaceAll(html, "&amp;", "&")
	html = strings.ReplaceAll(html, "&nbsp;", " ")
	html = strings.ReplaceAll(html, "&rarr;", "→")
	return comments.ReplaceAllString(html, "")
}

// repairs patch artifacts the scanner's one-character horizon cannot
// prevent: punctuation orphaned by a retracted tag, a stray emphasis
// marker alone on a line, spaced-out link brackets. Applied in order.
var repairs = [...][2]string{
	{" , ", ", "},
	{"\n.\n", ".\n"},
	{"\n↵\n", " ↵\n"},
	{"\n*\n", "\n"},
	{"\n. ", ".\n"},
	{" [ ", " ["},
	{"\n[ ", "\n["},
}

// cleanup runs once over the finished buffer: per-line trimming and
// blank-line collapsing, then the fixed repairs, then a second collapse
// and a whole-document trim so output never starts or ends with blank
// lines.
func cleanup(md string) string {
	md = tidyLines(md)
	for _, r := range repairs {
		md = strings.ReplaceAll(md, r[0], r[1])
	}
	// A repair that deletes a whole line can butt two blank lines
	// together; collapse again so at most one survives.
	md = tidyLines(md)
	return strings.TrimSpace(md)
}

// tidyLines trims every line and collapses runs of blank lines so that at
// most one survives between paragraphs.
func tidyLines(md string) string {
	var b strings.Builder
	b.Grow(len(md))

	blanks := 0
	for _, line := range strings.Split(md, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			if blanks == 0 {
				b.WriteByte('\n')
			}
			blanks++
			continue
		}
		blanks = 0
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return strings.TrimSuffix(b.String(), "\n")
}

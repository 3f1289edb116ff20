package normalize

import "strings"

// attrValue extracts the value of the named attribute from the raw text of
// one tag (the source span from '<' through '>'). It is a textual scan, not
// an attribute parser: locate the attribute name, the next '=', then the
// nearest quote of either kind, then the matching closing quote of the same
// kind. The value is the span strictly between the quotes, with no entity
// or backslash unescaping.
//
// Anything missing (name, '=', or a closed quote pair) yields "". A name
// that happens to appear earlier in the tag as a substring of other text is
// matched there instead; callers only ask for "href", where that does not
// come up in practice.
func attrValue(tag, name string) string {
	at := strings.Index(tag, name)
	if at == -1 {
		return ""
	}

	eq := strings.IndexByte(tag[at:], '=')
	if eq == -1 {
		return ""
	}
	rest := tag[at+eq:]

	// Whichever quote kind appears first opens the value.
	double := strings.IndexByte(rest, '"')
	single := strings.IndexByte(rest, '\'')

	quote := byte('"')
	open := double
	if double == -1 || (single != -1 && single < double) {
		quote = '\''
		open = single
	}
	if open == -1 {
		return ""
	}

	value := rest[open+1:]
	end := strings.IndexByte(value, quote)
	if end == -1 {
		return ""
	}
	return value[:end]
}

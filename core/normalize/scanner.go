package normalize

import (
	"unicode"
	"unicode/utf8"
)

// tagStack is the ancestor stack of open tags. Popping an empty stack is a
// no-op so stray closing tags degrade silently.
type tagStack []tagKind

func (s *tagStack) push(k tagKind) {
	*s = append(*s, k)
}

func (s *tagStack) pop() {
	if n := len(*s); n > 0 {
		*s = (*s)[:n-1]
	}
}

// converter drives one conversion: a single forward pass over the input
// characters, with no tree building and no lookahead beyond the character
// in hand. Look-back decisions read the live tail of the output buffer.
// A converter is single-use; ConvertString constructs a fresh one per call,
// which is also what makes concurrent conversions safe.
type converter struct {
	src string // pre-processed HTML
	out buffer

	open tagStack // ancestor stack of open tag kinds

	inTag   bool
	closing bool
	inValue bool // between a matched pair of attribute-value quotes
	quote   rune // the quote rune that opened the current value
	sawEq   bool // previous in-tag character was '='

	lt       int    // byte offset of the current tag's '<'
	name     []byte // tag name, lower-cased, up to the first space
	nameDone bool
	rawTag   string  // source span of the tag just left, '<' to '>'
	current  tagKind // tag context governing the text that follows
	href     string  // remembered by openAnchor for closeAnchor
	content  int     // content runes emitted since the last tag boundary
	wrap     int     // soft-wrap column; <= 0 disables
}

func (c *converter) run() {
	for i, r := range c.src {
		switch {
		case !c.inTag && r == '<':
			c.enterTag(i)
		case c.inTag:
			c.scanTagRune(i, r)
		default:
			c.scanContentRune(r)
		}
	}
}

func (c *converter) enterTag(offset int) {
	c.inTag = true
	c.closing = false
	c.inValue = false
	c.sawEq = false
	c.lt = offset
	c.name = c.name[:0]
	c.nameDone = false
	c.current = tagNone

	// Tags never glue directly onto preceding text. The separator is a
	// pad rather than a counted space, so a heading's setext underline
	// still matches the width of its visible text.
	if last := c.out.last(); last != 0 && last != ' ' && last != '\n' {
		c.out.pad()
	}
}

func (c *converter) scanTagRune(i int, r rune) {
	sawEq := c.sawEq
	c.sawEq = r == '='

	switch {
	case r == '>':
		// Always terminates the tag, even inside a quoted value; a tag
		// with runaway quotes must not eat the rest of the document.
		c.leaveTag(i)
	case r == '/' && len(c.name) == 0 && !c.nameDone:
		c.closing = true
	case r == '"' || r == '\'':
		switch {
		case c.inValue:
			if r == c.quote {
				c.inValue = false
			}
		case sawEq:
			c.inValue = true
			c.quote = r
		}
	case r == '=':
		// Consumed. The quote that follows decides value entry.
	default:
		if !c.nameDone {
			if r == ' ' {
				c.nameDone = true
			} else {
				c.name = utf8.AppendRune(c.name, unicode.ToLower(r))
			}
		}
	}
}

// leaveTag fires on '>': the accumulated name is interned and the kind's
// handler dispatched. Opening tags push before their handler runs and
// closing tags pop after, so a handler always sees its own tag on the
// stack; that is what lets pre and title force their own output through
// inside an otherwise suppressed subtree.
func (c *converter) leaveTag(end int) {
	c.inTag = false
	c.inValue = false

	kind := internTag(string(c.name))
	c.current = kind
	c.rawTag = c.src[c.lt : end+1]

	h := handlers[kind]
	if c.closing {
		c.closing = false
		if h.close != nil {
			h.close(c)
		}
		c.open.pop()
		// A closing tag ends its own context: text after it belongs to
		// the enclosing element, not to this tag's name.
		c.current = tagNone
	} else {
		c.open.push(kind)
		if h.open != nil {
			h.open(c)
		}
	}
	c.content = 0
}

func (c *converter) scanContentRune(r rune) {
	// Literal newlines never pass through; line structure comes from tag
	// handlers alone.
	if r == '\n' {
		return
	}
	if c.suppressed() || c.current == tagLink || c.current == tagMeta || c.current == tagScript {
		return
	}

	last := c.out.last()
	if r == ' ' {
		// Collapse whitespace runs; never start output with a blank.
		if c.out.empty() || last == ' ' || last == '\n' {
			return
		}
		// Soft wrap: once the line runs past the wrap column, the next
		// space becomes the line break instead.
		if c.wrap > 0 && c.out.line > c.wrap {
			c.out.writeRune('\n')
			c.content++
			return
		}
	}
	if r == '.' && last == ' ' {
		// Retract the blank so sentences do not read "word .".
		c.out.shorten(1)
		c.out.line--
	}
	c.out.writeRune(r)
	c.content++
}

// suppressed reports whether the scanner sits inside an ignored subtree.
// The whole stack is scanned because suppression is transitive; pre and
// title anywhere on the stack force visibility and win over any ignored
// ancestor.
func (c *converter) suppressed() bool {
	ignored := false
	for _, k := range c.open {
		switch {
		case k == tagPre || k == tagTitle:
			return false
		case ignoredTag(k):
			ignored = true
		}
	}
	return ignored
}

// write appends handler output, dropped entirely inside suppressed
// subtrees. Tail retraction (shorten, trimBlanks) and setext underlining
// stay unguarded: they reshape output that already exists.
func (c *converter) write(s string) {
	if c.suppressed() {
		return
	}
	c.out.write(s)
}

func (c *converter) writeRune(r rune) {
	if c.suppressed() {
		return
	}
	c.out.writeRune(r)
}

package normalize

// tagKind is an interned tag name. Parsed names are matched once per tag
// exit; anything the converter has no behavior for interns to tagOther so
// unknown tags still take part in ancestor tracking.
type tagKind uint8

const (
	tagNone tagKind = iota // no tag context
	tagOther

	tagAnchor
	tagBold
	tagBreak
	tagDiv
	tagHead
	tagH1
	tagH2
	tagH3
	tagH4
	tagLink
	tagListItem
	tagMeta
	tagNav
	tagNoScript
	tagOption
	tagOrderedList
	tagParagraph
	tagPre
	tagScript
	tagSpan
	tagStyle
	tagTemplate
	tagTitle
	tagUnorderedList
)

// internTag maps a lower-cased tag name to its kind. b and strong are
// synonyms and share one kind, so they share one handler.
func internTag(name string) tagKind {
	switch name {
	case "a":
		return tagAnchor
	case "b", "strong":
		return tagBold
	case "br":
		return tagBreak
	case "div":
		return tagDiv
	case "head":
		return tagHead
	case "h1":
		return tagH1
	case "h2":
		return tagH2
	case "h3":
		return tagH3
	case "h4":
		return tagH4
	case "link":
		return tagLink
	case "li":
		return tagListItem
	case "meta":
		return tagMeta
	case "nav":
		return tagNav
	case "noscript":
		return tagNoScript
	case "option":
		return tagOption
	case "ol":
		return tagOrderedList
	case "p":
		return tagParagraph
	case "pre":
		return tagPre
	case "script":
		return tagScript
	case "span":
		return tagSpan
	case "style":
		return tagStyle
	case "template":
		return tagTemplate
	case "title":
		return tagTitle
	case "ul":
		return tagUnorderedList
	}
	return tagOther
}

// ignoredTag reports whether an open tag of this kind suppresses all text
// beneath it. meta is deliberately absent: its closing tag is routinely
// omitted, and an unclosed suppressor would swallow the rest of the page.
func ignoredTag(k tagKind) bool {
	switch k {
	case tagTemplate, tagStyle, tagScript, tagNoScript, tagNav:
		return true
	}
	return false
}

// tagHandler is the pair of behaviors dispatched when the scanner leaves a
// tag's '>': one for opening tags, one for closing. Either side may be nil.
// Handlers are stateless; all state lives on the converter.
type tagHandler struct {
	open  func(*converter)
	close func(*converter)
}

// handlers is the fixed registry of per-kind behavior. Kinds listed with an
// empty pair (head, meta, link and the ignored set) are known tags that
// never touch the buffer themselves.
var handlers = map[tagKind]tagHandler{
	tagAnchor:        {open: openAnchor, close: closeAnchor},
	tagBold:          {open: openBold, close: closeBold},
	tagBreak:         {close: closeBreak},
	tagDiv:           {open: openBlock},
	tagH1:            {close: closeH1},
	tagH2:            {open: openHeading("\n\n\n### "), close: closeHeading},
	tagH3:            {open: openHeading("\n\n\n#### "), close: closeHeading},
	tagH4:            {open: openHeading("\n\n\n##### "), close: closeHeading},
	tagListItem:      {open: openListItem, close: closeListItem},
	tagOption:        {close: closeOption},
	tagOrderedList:   {open: openBlock},
	tagParagraph:     {close: closeParagraph},
	tagPre:           {open: openPre, close: closePre},
	tagSpan:          {close: closeSpan},
	tagTitle:         {close: closeTitle},
	tagUnorderedList: {open: openBlock},

	tagHead:     {},
	tagLink:     {},
	tagMeta:     {},
	tagNav:      {},
	tagNoScript: {},
	tagScript:   {},
	tagStyle:    {},
	tagTemplate: {},
}

// openAnchor starts a link: the tail is tidied so the '[' sits after exactly
// one separator, and the href is pulled from the tag's raw source span for
// the closing handler to use.
func openAnchor(c *converter) {
	if c.suppressed() {
		return
	}
	c.out.trimBlanks()
	c.out.blank()
	c.out.write("[")
	c.href = attrValue(c.rawTag, "href")
}

// closeAnchor finishes a link. A link whose text turned out empty is
// retracted entirely rather than emitted as "[]()".
func closeAnchor(c *converter) {
	if c.suppressed() {
		return
	}
	if c.out.last() == ' ' {
		c.out.shorten(1)
	}
	if c.out.last() == '[' {
		c.out.shorten(1)
		return
	}
	c.out.write("](" + c.href + ") ")
}

func openBold(c *converter) {
	if c.out.last() != ' ' {
		c.writeRune(' ')
	}
	c.write("**")
}

func closeBold(c *converter) {
	if c.out.last() == ' ' {
		c.out.shorten(1)
	}
	c.write("**")
}

func closeBreak(c *converter) {
	if !c.out.empty() {
		c.write("  \n")
	}
}

// openBlock makes sure the buffer ends in one blank line. div, ol and ul
// all share it.
func openBlock(c *converter) {
	if c.out.last() != '\n' {
		c.writeRune('\n')
	}
	if c.out.penult() != '\n' {
		c.writeRune('\n')
	}
}

func closeH1(c *converter) {
	if !c.out.empty() {
		c.out.underline('=')
	}
}

func openHeading(marker string) func(*converter) {
	return func(c *converter) { c.write(marker) }
}

func closeHeading(c *converter) {
	c.write("\n\n")
}

func openListItem(c *converter) {
	if c.out.last() != '\n' {
		c.writeRune('\n')
	}
	c.write("* ")
}

func closeListItem(c *converter) {
	if !c.out.empty() {
		c.write("  \n")
	}
}

func closeOption(c *converter) {
	if !c.out.empty() {
		c.write("  \n")
	}
}

func closeParagraph(c *converter) {
	if !c.out.empty() {
		c.write("  \n\n")
	}
}

func openPre(c *converter) {
	openBlock(c)
	c.write("````\n")
}

func closePre(c *converter) {
	c.write("\n````\n\n")
}

// closeSpan separates adjacent spans with a blank, but only when the span
// actually emitted content.
func closeSpan(c *converter) {
	if c.out.last() != ' ' && c.content > 0 {
		c.writeRune(' ')
	}
}

func closeTitle(c *converter) {
	c.out.underline('=')
}

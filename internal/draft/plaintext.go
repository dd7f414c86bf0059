package draft

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Link sentinels shield a URL from tag stripping and entity decoding
// until it is rendered as <URL>.
const (
	linkStart = "_link_start_"
	linkEnd   = "_link_end_"
)

var (
	newlineRunPattern    = regexp.MustCompile(`\s*\n\s*`)
	interTagSpacePattern = regexp.MustCompile(`>\s+<`)
	anchorPattern        = regexp.MustCompile(
		`(?i)<a\s(?:[^>]*?\s)?href\s*=\s*(?:"([^"]*)"|'([^']*)')[^>]*>\s*(.*?)\s*</a\s*>`,
	)

	// <scheme:...> links already written by a delimited conversion.
	autolinkPattern = regexp.MustCompile(`(?i)<((?:[a-z][a-z0-9+.-]*://|mailto:|tel:)[^\s<>]+)>`)

	brPattern = regexp.MustCompile(`(?i)\s*<br\b[^>]*>\s*`)

	// A sentinel at the end of a line or of the text loses its separator
	// space; the brackets already delimit the URL.
	lineEndLinkPattern = regexp.MustCompile(
		linkStart + `(.*?)` + linkEnd + ` ?(\n|$)`,
	)
	linkPattern = regexp.MustCompile(linkStart + `(.*?)` + linkEnd)

	leadingSpacePattern  = regexp.MustCompile(`^\s+`)
	trailingBreakPattern = regexp.MustCompile(`\s*\n\s*$`)
)

// blockTag maps a block element to the newlines that replace its
// closing tag. Its opening tag is dropped.
type blockTag struct {
	open        *regexp.Regexp
	close       *regexp.Regexp
	replacement string
}

func newBlockTag(name, replacement string) blockTag {
	return blockTag{
		open:        regexp.MustCompile(`(?i)<` + name + `\b[^>]*>`),
		close:       regexp.MustCompile(`(?i)</` + name + `\s*>`),
		replacement: replacement,
	}
}

// Applied in order.
var blockTags = []blockTag{
	newBlockTag("h1", "\n\n\n"),
	newBlockTag("h2", "\n\n"),
	newBlockTag("p", "\n\n"),
}

// ToPlainText flattens markup into plain text. ok is false when markup
// is empty, which callers must keep apart from an empty result.
//
// Anchors become "text URL " so the URL stays clickable even at the end
// of a line. With uriDelimiting the URL is written as <URL> instead,
// which keeps many mail clients from wrapping inside long URLs, and
// <URL> links already in the input are kept.
//
// Leading whitespace is removed from the result, as is a trailing
// whitespace run that contains a line break. Trailing spaces on the last
// line are kept.
//
// This is a tolerant text pipeline, not a parser: malformed markup gives
// odd output, never an error.
func ToPlainText(markup string, uriDelimiting bool) (text string, ok bool) {
	if markup == "" {
		return "", false
	}

	s := newlineRunPattern.ReplaceAllLiteralString(markup, " ")
	if uriDelimiting {
		s = autolinkPattern.ReplaceAllString(s, linkStart+"${1}"+linkEnd)
	}
	s = interTagSpacePattern.ReplaceAllLiteralString(s, "><")
	s = replaceAnchors(s, uriDelimiting)
	s = brPattern.ReplaceAllLiteralString(s, "\n")

	for _, tag := range blockTags {
		s = tag.open.ReplaceAllLiteralString(s, "")
		s = tag.close.ReplaceAllLiteralString(s, tag.replacement)
	}

	s = stripTags(s)

	if uriDelimiting {
		s = lineEndLinkPattern.ReplaceAllString(s, "<${1}>${2}")
		s = linkPattern.ReplaceAllString(s, "<${1}>")
	}

	s = leadingSpacePattern.ReplaceAllLiteralString(s, "")
	s = trailingBreakPattern.ReplaceAllLiteralString(s, "")
	return s, true
}

func replaceAnchors(s string, uriDelimiting bool) string {
	return anchorPattern.ReplaceAllStringFunc(s, func(anchor string) string {
		m := anchorPattern.FindStringSubmatch(anchor)
		href, content := m[1], m[3]
		if href == "" {
			href = m[2]
		}
		if uriDelimiting {
			return content + " " + linkStart + href + linkEnd + " "
		}
		return content + " " + href + " "
	})
}

// stripTags drops every tag and decodes entities, keeping only text.
// script and style contents are dropped too. Non-breaking spaces become
// plain spaces.
func stripTags(s string) string {
	z := html.NewTokenizer(strings.NewReader(s))

	var b strings.Builder
	skipDepth := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF; the tokenizer cannot fail on a strings.Reader.
			return strings.ReplaceAll(b.String(), "\u00a0", " ")
		case html.TextToken:
			if skipDepth == 0 {
				b.Write(z.Text())
			}
		case html.StartTagToken:
			if name, _ := z.TagName(); isHiddenElement(name) {
				skipDepth++
			}
		case html.EndTagToken:
			if name, _ := z.TagName(); isHiddenElement(name) && skipDepth > 0 {
				skipDepth--
			}
		}
	}
}

func isHiddenElement(name []byte) bool {
	switch string(name) {
	case "script", "style":
		return true
	default:
		return false
	}
}

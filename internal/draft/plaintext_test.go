package draft

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToPlainText_EmptyInput(t *testing.T) {
	text, ok := ToPlainText("", false)
	assert.False(t, ok)
	assert.Empty(t, text)

	_, ok = ToPlainText("", true)
	assert.False(t, ok)
}

func TestToPlainText(t *testing.T) {
	tests := []struct {
		name          string
		markup        string
		uriDelimiting bool
		want          string
	}{
		{
			name:   "paragraphs are separated by a blank line",
			markup: "<p>A</p><p>B</p>",
			want:   "A\n\nB",
		},
		{
			name:   "anchor keeps a trailing space after the url",
			markup: `<a href="http://x">Click</a>`,
			want:   "Click http://x ",
		},
		{
			name:          "anchor with uri delimiting",
			markup:        `<a href="http://x">Click</a>`,
			uriDelimiting: true,
			want:          "Click <http://x>",
		},
		{
			name:          "delimited link inside a sentence keeps its separator",
			markup:        `<p>See <a href="http://x">docs</a> for more</p>`,
			uriDelimiting: true,
			want:          "See docs <http://x>  for more",
		},
		{
			name:          "delimited link at the end of a paragraph",
			markup:        `<p>Go <a href="http://x">here</a></p><p>Next</p>`,
			uriDelimiting: true,
			want:          "Go here <http://x>\n\nNext",
		},
		{
			name:   "href is matched as a whole attribute name",
			markup: `<a data-href="http://tracker" href="http://real">Go</a>`,
			want:   "Go http://real ",
		},
		{
			name:   "apostrophe inside a double-quoted href",
			markup: `<a href="http://x/it's">Click</a>`,
			want:   "Click http://x/it's ",
		},
		{
			name:   "quote inside a single-quoted href",
			markup: `<a href='http://x/"q"'>Q</a>`,
			want:   `Q http://x/"q" `,
		},
		{
			name:          "delimited links in the input are kept",
			markup:        `<p>See <http://x> or <mailto:a@x.com> now</p>`,
			uriDelimiting: true,
			want:          "See <http://x> or <mailto:a@x.com> now",
		},
		{
			name:          "namespaced tags are still stripped",
			markup:        `<p>Hi<o:p></o:p></p>`,
			uriDelimiting: true,
			want:          "Hi",
		},
		{
			name:   "several anchors on one line are independent",
			markup: `<a href="http://a">A</a> and <a href="http://b">B</a>`,
			want:   "A http://a  and B http://b ",
		},
		{
			name:   "anchor with other attributes and single quotes",
			markup: `<A class="btn" HREF='http://x/y' target="_blank"> Open </A>`,
			want:   "Open http://x/y ",
		},
		{
			name:          "entities inside href are decoded once",
			markup:        `<a href="http://x?a=1&amp;b=2">q</a>`,
			uriDelimiting: true,
			want:          "q <http://x?a=1&b=2>",
		},
		{
			name:   "line breaks",
			markup: "line1 <br> line2<br/>line3<BR class=\"x\">line4",
			want:   "line1\nline2\nline3\nline4",
		},
		{
			name:   "headings and paragraphs",
			markup: "<h1>Title</h1><h2>Sub</h2><p>Text</p>",
			want:   "Title\n\n\nSub\n\nText",
		},
		{
			name:   "source line breaks collapse to a space",
			markup: "<p>Hello\n   world</p>",
			want:   "Hello world",
		},
		{
			name:   "whitespace between tags is dropped",
			markup: "<p>A</p>\n  \n<p>B</p>",
			want:   "A\n\nB",
		},
		{
			name:   "entities are decoded",
			markup: "<p>Tom &amp; Jerry &lt;3 &quot;hi&quot; &#39;x&#39; a&nbsp;b &copy;</p>",
			want:   `Tom & Jerry <3 "hi" 'x' a b ©`,
		},
		{
			name:   "script and style content is dropped",
			markup: "<style>p { color: red }</style><p>Hi</p><script>alert(1)</script>",
			want:   "Hi",
		},
		{
			name:   "unclosed tags are tolerated",
			markup: "<p>unclosed <b>bold",
			want:   "unclosed bold",
		},
		{
			name:   "pre is not a paragraph",
			markup: "<pre>code</pre>",
			want:   "code",
		},
		{
			name:   "leading whitespace is trimmed",
			markup: "  <div>  text</div>",
			want:   "text",
		},
		{
			name:   "plain text passes through",
			markup: "just text",
			want:   "just text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToPlainText(tt.markup, tt.uriDelimiting)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToPlainText_WhitespaceOnlyIsNotEmptyInput(t *testing.T) {
	got, ok := ToPlainText(" \n ", false)
	assert.True(t, ok)
	assert.Equal(t, "", got)
}

func TestToPlainText_IdempotentOnFlattenedOutput(t *testing.T) {
	markup := `<h1>News</h1><p>Tom &amp; Jerry</p><p>Visit <a href="http://x">site</a><br>today</p>`

	first, ok := ToPlainText(markup, false)
	require.True(t, ok)

	second, ok := ToPlainText(first, false)
	require.True(t, ok)

	normalize := func(s string) string { return strings.Join(strings.Fields(s), " ") }
	assert.Equal(t, normalize(first), normalize(second))
	assert.Equal(t, "News Tom & Jerry Visit site http://x today", normalize(second))
}

func TestToPlainText_IdempotentOnDelimitedOutput(t *testing.T) {
	normalize := func(s string) string { return strings.Join(strings.Fields(s), " ") }

	tests := []struct {
		markup string
		want   string
	}{
		{
			markup: `<p>Visit <a href="http://x">site</a> now</p>`,
			want:   "Visit site <http://x> now",
		},
		{
			markup: `<h1>News</h1><p>Tom &amp; Jerry</p><p>Visit <a href="http://x">site</a><br>today</p>`,
			want:   "News Tom & Jerry Visit site <http://x> today",
		},
	}

	for _, tt := range tests {
		first, ok := ToPlainText(tt.markup, true)
		require.True(t, ok)

		second, ok := ToPlainText(first, true)
		require.True(t, ok)

		assert.Equal(t, normalize(first), normalize(second))
		assert.Equal(t, tt.want, normalize(second))
	}
}

func TestToPlainText_ConcurrentUse(t *testing.T) {
	done := make(chan string, 8)
	for i := 0; i < 8; i++ {
		go func() {
			got, _ := ToPlainText(`<p><a href="http://x">x</a></p>`, true)
			done <- got
		}()
	}
	for i := 0; i < 8; i++ {
		assert.Equal(t, "x <http://x>", <-done)
	}
}

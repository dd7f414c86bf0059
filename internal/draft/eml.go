package draft

import (
	"strings"

	"github.com/nhle/maildraft/internal/model"
)

const (
	htmlEnvelopeOpen  = "<html lang=\"en\">\n<body>\n"
	htmlEnvelopeClose = "\n</body>\n</html>"

	// headerFold joins the values of a multi-valued header, continuing
	// the header on an indented line.
	headerFold = ",\n "
)

// EMLContent builds an RFC 822 style draft text that Outlook, Apple Mail
// and Thunderbird open as an unsent draft.
//
// Headers are written in a fixed order: Content-Type, X-Unsent, Subject,
// To, Cc, Bcc and Content-Type again. The repeated Content-Type is read
// by clients that only look at the last one; keep both. Empty fields get
// no header line.
//
// An HTML body is wrapped verbatim in a minimal html/body envelope; a
// plain body is written as is. Attachments are not supported: no MIME
// multipart body is built.
func EMLContent(p *model.DraftProperties) *LaunchHandle {
	if p == nil {
		p = &model.DraftProperties{}
	}

	fullContentType := FullContentType(p)

	var b strings.Builder
	writeHeader(&b, "Content-Type", fullContentType)
	writeHeader(&b, "X-Unsent", "1")
	writeHeader(&b, "Subject", p.Subject)
	writeHeader(&b, "To", p.To...)
	writeHeader(&b, "Cc", p.Cc...)
	writeHeader(&b, "Bcc", p.Bcc...)
	writeHeader(&b, "Content-Type", fullContentType)
	b.WriteString("\n")

	if IsHTML(p) {
		b.WriteString(htmlEnvelopeOpen)
		b.WriteString(p.Body)
		b.WriteString(htmlEnvelopeClose)
	} else {
		b.WriteString(p.Body)
	}

	return NewTextHandle(b.String(), ContentTypeEML)
}

func writeHeader(b *strings.Builder, name string, values ...string) {
	value := strings.Join(values, headerFold)
	if value == "" {
		return
	}
	b.WriteString(name)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteString("\n")
}

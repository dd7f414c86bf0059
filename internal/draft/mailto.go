package draft

import (
	"net/url"
	"strings"

	"github.com/nhle/maildraft/internal/model"
)

// MailtoScheme is the scheme prefix of every URI built by MailtoURI.
const MailtoScheme = "mailto:"

// MailtoURI builds a mailto URI for the draft. mailto cannot declare an
// HTML body, so an HTML body is flattened with ToPlainText, links kept as
// <URL>.
//
// Recipients are comma-joined into the path unescaped. Query parameters
// follow in a fixed order: Content-Type (only with appendContentType),
// subject, cc, bcc, body. Empty fields are left out. Attachments cannot
// be carried by the scheme and are ignored.
func MailtoURI(p *model.DraftProperties, appendContentType bool) *LaunchHandle {
	if p == nil {
		p = &model.DraftProperties{}
	}

	body := p.Body
	if IsHTML(p) {
		body, _ = ToPlainText(body, true)
	}

	var params []string
	if appendContentType {
		params = appendParam(params, "Content-Type", FullContentType(p))
	}
	params = appendParam(params, "subject", p.Subject)
	params = appendParam(params, "cc", p.Cc.Join(","))
	params = appendParam(params, "bcc", p.Bcc.Join(","))
	// body goes last: platforms clip long URIs, and clipping must hit
	// the body rather than a header.
	params = appendParam(params, "body", body)

	uri := MailtoScheme + p.To.Join(",")
	if len(params) > 0 {
		uri += "?" + strings.Join(params, "&")
	}

	return NewURIHandle(uri, ContentType(p))
}

func appendParam(params []string, name, value string) []string {
	if value == "" {
		return params
	}
	return append(params, name+"="+encodeComponent(value))
}

// componentUnescaper undoes url.QueryEscape where encodeURIComponent
// differs: spaces become %20, and !'()* stay literal.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// encodeComponent percent-encodes v as a single query value, the way
// encodeURIComponent does.
func encodeComponent(v string) string {
	return componentUnescaper.Replace(url.QueryEscape(v))
}

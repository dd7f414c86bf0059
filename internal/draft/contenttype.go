// Package draft encodes draft properties into a mailto URI or an EML
// draft text. All functions are pure and safe for concurrent use; none of
// them return errors.
package draft

import "github.com/nhle/maildraft/internal/model"

const (
	ContentTypeHTML  = "text/html"
	ContentTypePlain = "text/plain"
	ContentTypeEML   = "message/rfc822"

	charsetSuffix = "; charset=utf-8"
)

// IsHTML reports whether the draft body is HTML. Only p.IsHTML decides;
// the body is never sniffed.
func IsHTML(p *model.DraftProperties) bool {
	if p == nil {
		return false
	}
	return model.IsTrue(p.IsHTML)
}

// ContentType returns text/html or text/plain for the draft body.
func ContentType(p *model.DraftProperties) string {
	if IsHTML(p) {
		return ContentTypeHTML
	}
	return ContentTypePlain
}

// FullContentType returns ContentType with an explicit utf-8 charset so
// consumers decode non-ASCII subjects and bodies correctly.
func FullContentType(p *model.DraftProperties) string {
	return ContentType(p) + charsetSuffix
}

package draft

import (
	"fmt"
	"io"
	"strings"

	"github.com/emersion/go-message/mail"

	"github.com/nhle/maildraft/internal/model"
)

// ParseEML reads a draft file back into draft properties. It accepts the
// output of EMLContent as well as simple single-part messages written by
// mail clients. Multipart messages yield their first inline text part.
func ParseEML(r io.Reader) (*model.DraftProperties, error) {
	mr, err := mail.CreateReader(r)
	if err != nil {
		return nil, fmt.Errorf("reading draft headers: %w", err)
	}
	defer mr.Close()

	subject, err := mr.Header.Subject()
	if err != nil {
		subject = mr.Header.Get("Subject")
	}

	p := &model.DraftProperties{
		Subject: subject,
		To:      addressesOf(mr.Header, "To"),
		Cc:      addressesOf(mr.Header, "Cc"),
		Bcc:     addressesOf(mr.Header, "Bcc"),
	}
	if from := addressesOf(mr.Header, "From"); len(from) > 0 {
		p.From = from[0]
	}

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			return p, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading draft body: %w", err)
		}

		h, ok := part.Header.(*mail.InlineHeader)
		if !ok {
			continue
		}

		contentType, _, _ := h.ContentType()
		if contentType != "" && !strings.HasPrefix(contentType, "text/") {
			continue
		}

		body, err := io.ReadAll(part.Body)
		if err != nil {
			return nil, fmt.Errorf("reading draft body: %w", err)
		}

		if contentType == ContentTypeHTML {
			p.IsHTML = true
			p.Body = unwrapHTMLEnvelope(string(body))
		} else {
			p.Body = string(body)
		}
		return p, nil
	}
}

// addressesOf returns the addresses of a header. Values that do not
// parse as an address list are split on commas as written.
func addressesOf(h mail.Header, key string) model.AddressList {
	raw := h.Get(key)
	if raw == "" {
		return nil
	}

	if list, err := h.AddressList(key); err == nil {
		out := make(model.AddressList, 0, len(list))
		for _, a := range list {
			out = append(out, a.Address)
		}
		return out
	}

	var out model.AddressList
	for _, part := range strings.Split(raw, ",") {
		if addr := strings.TrimSpace(part); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

func unwrapHTMLEnvelope(body string) string {
	if strings.HasPrefix(body, htmlEnvelopeOpen) &&
		strings.HasSuffix(body, htmlEnvelopeClose) {
		return body[len(htmlEnvelopeOpen) : len(body)-len(htmlEnvelopeClose)]
	}
	return body
}

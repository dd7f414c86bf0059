package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// AddressList holds one or more recipient addresses. When decoded from
// JSON it accepts either a single string or a list of strings.
type AddressList []string

// UnmarshalJSON accepts `"a@x"`, `["a@x", "b@y"]` or null.
func (l *AddressList) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*l = nil
		return nil
	}

	if strings.HasPrefix(trimmed, "[") {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return fmt.Errorf("decoding address list: %w", err)
		}
		*l = list
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return fmt.Errorf("decoding address: %w", err)
	}
	*l = AddressList{single}
	return nil
}

// Join concatenates the addresses with sep.
func (l AddressList) Join(sep string) string {
	return strings.Join(l, sep)
}

// DraftProperties describes the email draft a caller wants opened in a
// mail client. Every field is optional; absent values are treated as
// empty.
type DraftProperties struct {
	// App is the target mail app identifier or alias (e.g., "mailto",
	// "gmail", "imap").
	App string `json:"app,omitempty"`

	// From is the optional sender address.
	From string `json:"from,omitempty"`

	// Subject is the draft subject line.
	Subject string `json:"subject,omitempty"`

	// Body is the draft body. A JSON list of strings is joined with "\n".
	Body string `json:"body,omitempty"`

	To  AddressList `json:"to,omitempty"`
	Cc  AddressList `json:"cc,omitempty"`
	Bcc AddressList `json:"bcc,omitempty"`

	// Attachments lists attachment paths. They are carried along but
	// never encoded into a draft.
	Attachments []string `json:"attachments,omitempty"`

	// IsHTML marks the body as HTML. Only boolean true or the string
	// "true" count; see IsTrue.
	IsHTML any `json:"isHtml,omitempty"`

	// ChooserHeader is the title of an app chooser, where one exists.
	ChooserHeader string `json:"chooserHeader,omitempty"`

	// EMLFile requests the draft be launched as an .eml file rather than
	// a mailto URI. Same loose semantics as IsHTML.
	EMLFile any `json:"emlFile,omitempty"`
}

// UnmarshalJSON decodes the properties, joining a multi-part body.
func (p *DraftProperties) UnmarshalJSON(data []byte) error {
	type plain DraftProperties
	aux := struct {
		*plain
		Body json.RawMessage `json:"body"`
	}{plain: (*plain)(p)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	body, err := decodeBody(aux.Body)
	if err != nil {
		return err
	}
	p.Body = body
	return nil
}

func decodeBody(raw json.RawMessage) (string, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return "", nil
	}

	if strings.HasPrefix(trimmed, "[") {
		var parts []string
		if err := json.Unmarshal(raw, &parts); err != nil {
			return "", fmt.Errorf("decoding body parts: %w", err)
		}
		return strings.Join(parts, "\n"), nil
	}

	var body string
	if err := json.Unmarshal(raw, &body); err != nil {
		return "", fmt.Errorf("decoding body: %w", err)
	}
	return body, nil
}

// IsTrue reports whether v is the boolean true or the string "true".
// Every other value, including other truthy ones, is false.
func IsTrue(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return b == "true"
	default:
		return false
	}
}

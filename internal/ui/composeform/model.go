package composeform

import (
	"fmt"
	"net/mail"
	"sort"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/nhle/maildraft/internal/compose"
	"github.com/nhle/maildraft/internal/model"
)

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across copies.
type formBindings struct {
	app     string
	to      string
	cc      string
	bcc     string
	subject string
	body    string
	isHTML  bool
	emlFile bool
}

// Model collects draft properties interactively.
type Model struct {
	fb    *formBindings
	form  *huh.Form
	width int
}

// New creates a compose form pre-filled from initial. Every alias is
// offered as a target besides mailto and imap.
func New(initial model.DraftProperties, aliases map[string]string, width int) *Model {
	m := &Model{
		fb: &formBindings{
			app:     initial.App,
			to:      initial.To.Join(", "),
			cc:      initial.Cc.Join(", "),
			bcc:     initial.Bcc.Join(", "),
			subject: initial.Subject,
			body:    initial.Body,
			isHTML:  model.IsTrue(initial.IsHTML),
			emlFile: model.IsTrue(initial.EMLFile),
		},
		width: width,
	}
	if m.fb.app == "" {
		m.fb.app = compose.AppMailto
	}
	m.form = m.buildForm(aliases)
	return m
}

// Form returns the underlying huh form, ready to Run.
func (m *Model) Form() *huh.Form {
	return m.form
}

// Properties returns the draft described by the current field values.
func (m *Model) Properties() model.DraftProperties {
	return model.DraftProperties{
		App:     m.fb.app,
		To:      SplitAddresses(m.fb.to),
		Cc:      SplitAddresses(m.fb.cc),
		Bcc:     SplitAddresses(m.fb.bcc),
		Subject: strings.TrimSpace(m.fb.subject),
		Body:    m.fb.body,
		IsHTML:  m.fb.isHTML,
		EMLFile: m.fb.emlFile,
	}
}

func (m *Model) buildForm(aliases map[string]string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("To").
				Placeholder("alice@example.com, bob@example.com").
				Value(&m.fb.to).
				Validate(ValidateAddresses),
			huh.NewInput().
				Title("Cc").
				Value(&m.fb.cc).
				Validate(ValidateAddresses),
			huh.NewInput().
				Title("Bcc").
				Value(&m.fb.bcc).
				Validate(ValidateAddresses),
			huh.NewInput().
				Title("Subject").
				Value(&m.fb.subject),
		),
		huh.NewGroup(
			huh.NewText().
				Title("Body").
				Placeholder("Plain text or HTML").
				Value(&m.fb.body),
			huh.NewConfirm().
				Title("HTML body?").
				Value(&m.fb.isHTML),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Open with").
				Options(appOptions(aliases)...).
				Value(&m.fb.app),
			huh.NewConfirm().
				Title("Open as .eml file?").
				Description("Lets the client keep HTML formatting").
				Value(&m.fb.emlFile),
		),
	).WithWidth(m.formWidth())
}

func appOptions(aliases map[string]string) []huh.Option[string] {
	opts := []huh.Option[string]{
		huh.NewOption("System mail handler (mailto)", compose.AppMailto),
		huh.NewOption("IMAP drafts folder", compose.AppIMAP),
	}

	names := make([]string, 0, len(aliases))
	for name := range aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		opts = append(opts, huh.NewOption(name+" ("+aliases[name]+")", name))
	}
	return opts
}

func (m *Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

// SplitAddresses splits a comma or semicolon separated address list,
// dropping empty entries.
func SplitAddresses(s string) model.AddressList {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';'
	})
	var out model.AddressList
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// ValidateAddresses accepts an empty string or a list of parseable
// addresses.
func ValidateAddresses(s string) error {
	for _, addr := range SplitAddresses(s) {
		if _, err := mail.ParseAddress(addr); err != nil {
			return fmt.Errorf("invalid address %q", addr)
		}
	}
	return nil
}

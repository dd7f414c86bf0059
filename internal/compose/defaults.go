package compose

import (
	"strings"
	"sync"

	"github.com/nhle/maildraft/internal/model"
)

const (
	// AppMailto opens drafts with the system's mailto handler.
	AppMailto = "mailto"

	// AppIMAP uploads drafts to the configured IMAP drafts mailbox.
	AppIMAP = "imap"

	defaultChooserHeader = "Open with"
)

// Defaults returns the built-in draft properties used when neither the
// caller nor the configuration sets a field.
func Defaults() model.DraftProperties {
	return model.DraftProperties{
		App:           AppMailto,
		To:            model.AddressList{},
		Cc:            model.AddressList{},
		Bcc:           model.AddressList{},
		Attachments:   []string{},
		IsHTML:        false,
		ChooserHeader: defaultChooserHeader,
		EMLFile:       false,
	}
}

// Settings holds the configured draft defaults and the app alias table.
// It is safe for concurrent use.
type Settings struct {
	mu       sync.RWMutex
	defaults model.DraftProperties
	aliases  map[string]string
}

// NewSettings builds settings from cfg on top of Defaults.
func NewSettings(cfg model.AppConfig) *Settings {
	d := Defaults()
	if cfg.Defaults.App != "" {
		d.App = cfg.Defaults.App
	}
	if cfg.Defaults.ChooserHeader != "" {
		d.ChooserHeader = cfg.Defaults.ChooserHeader
	}
	d.From = cfg.Defaults.From
	d.Subject = cfg.Defaults.Subject
	d.Body = cfg.Defaults.Body
	d.IsHTML = cfg.Defaults.IsHTML
	d.EMLFile = cfg.Defaults.EMLFile

	s := &Settings{defaults: d, aliases: map[string]string{}}
	for alias, target := range cfg.Aliases {
		s.AddAlias(alias, target)
	}
	return s
}

// AddAlias registers alias as a short name for an app target, e.g.
// "outlook" for "ms-outlook://compose". Aliases are case-insensitive.
func (s *Settings) AddAlias(alias, target string) {
	alias = strings.ToLower(strings.TrimSpace(alias))
	if alias == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.aliases[alias] = target
}

// Aliases returns a copy of the alias table.
func (s *Settings) Aliases() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.aliases))
	for k, v := range s.aliases {
		out[k] = v
	}
	return out
}

// Resolve maps app through the alias table. Unknown apps are returned
// unchanged and an empty app resolves to the default app.
func (s *Settings) Resolve(app string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if app == "" {
		app = s.defaults.App
	}
	if target, ok := s.aliases[strings.ToLower(app)]; ok {
		return target
	}
	return app
}

// Merge returns p with every unset field taken from the defaults. App is
// resolved through the alias table, and IsHTML and EMLFile are
// normalised to real booleans.
func (s *Settings) Merge(p *model.DraftProperties) model.DraftProperties {
	if p == nil {
		p = &model.DraftProperties{}
	}

	s.mu.RLock()
	d := s.defaults
	s.mu.RUnlock()

	out := *p
	out.App = s.Resolve(p.App)
	out.From = orDefault(p.From, d.From)
	out.Subject = orDefault(p.Subject, d.Subject)
	out.Body = orDefault(p.Body, d.Body)
	out.ChooserHeader = orDefault(p.ChooserHeader, d.ChooserHeader)

	if out.To == nil {
		out.To = append(model.AddressList{}, d.To...)
	}
	if out.Cc == nil {
		out.Cc = append(model.AddressList{}, d.Cc...)
	}
	if out.Bcc == nil {
		out.Bcc = append(model.AddressList{}, d.Bcc...)
	}
	if out.Attachments == nil {
		out.Attachments = append([]string{}, d.Attachments...)
	}

	if p.IsHTML == nil {
		out.IsHTML = model.IsTrue(d.IsHTML)
	} else {
		out.IsHTML = model.IsTrue(p.IsHTML)
	}
	if p.EMLFile == nil {
		out.EMLFile = model.IsTrue(d.EMLFile)
	} else {
		out.EMLFile = model.IsTrue(p.EMLFile)
	}

	return out
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

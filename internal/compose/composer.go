// Package compose opens encoded drafts in the user's mail client and
// keeps a history of what was opened.
package compose

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/nhle/maildraft/internal/credential"
	"github.com/nhle/maildraft/internal/draft"
	"github.com/nhle/maildraft/internal/log"
	"github.com/nhle/maildraft/internal/mailbox"
	"github.com/nhle/maildraft/internal/model"
	"github.com/nhle/maildraft/internal/store"
)

// DraftUploader stores a draft text in a remote drafts mailbox.
type DraftUploader interface {
	SaveDraft(ctx context.Context, text string) error
	Mailbox() string
}

// Options configures a Composer. Launcher and Settings are required; the
// rest may be left nil.
type Options struct {
	Settings *Settings
	Launcher Launcher
	Files    *TempFiles
	History  store.Store

	IMAP        model.IMAPConfig
	Credentials credential.Store

	// NewUploader builds the IMAP uploader. Nil uses mailbox.NewClient.
	NewUploader func(cfg model.IMAPConfig, password string) DraftUploader
}

// Composer encodes drafts and launches them.
type Composer struct {
	settings    *Settings
	launcher    Launcher
	files       *TempFiles
	history     store.Store
	imap        model.IMAPConfig
	creds       credential.Store
	newUploader func(cfg model.IMAPConfig, password string) DraftUploader
}

// Result describes a successful launch.
type Result struct {
	Method      model.LaunchMethod `json:"method"`
	App         string             `json:"app"`
	Target      string             `json:"target"`
	ContentType string             `json:"contentType"`
	LaunchID    string             `json:"launchId,omitempty"`
}

// New creates a Composer from opts.
func New(opts Options) *Composer {
	c := &Composer{
		settings:    opts.Settings,
		launcher:    opts.Launcher,
		files:       opts.Files,
		history:     opts.History,
		imap:        opts.IMAP,
		creds:       opts.Credentials,
		newUploader: opts.NewUploader,
	}
	if c.settings == nil {
		c.settings = NewSettings(model.AppConfig{})
	}
	if c.files == nil {
		c.files = NewTempFiles(model.EMLConfig{})
	}
	if c.newUploader == nil {
		c.newUploader = func(cfg model.IMAPConfig, password string) DraftUploader {
			return mailbox.NewClient(cfg, password)
		}
	}
	return c
}

// Settings returns the composer's defaults and alias table.
func (c *Composer) Settings() *Settings {
	return c.settings
}

// Open merges p with the defaults and hands the draft to a mail client.
//
// The app "imap" uploads an EML draft to the drafts mailbox. With
// EMLFile set, an EML file is written and opened. Anything else opens a
// mailto URI, rewritten onto the app's scheme when the app is not
// mailto. The encoded handle is closed whether or not the launch works.
func (c *Composer) Open(ctx context.Context, p *model.DraftProperties) (*Result, error) {
	props := c.settings.Merge(p)
	log.Dump("opening draft", props)

	var (
		res     *Result
		content string
		err     error
	)
	switch {
	case props.App == AppIMAP:
		res, content, err = c.openIMAP(ctx, &props)
	case model.IsTrue(props.EMLFile):
		res, content, err = c.openEMLFile(ctx, &props)
	default:
		res, content, err = c.openMailto(ctx, &props)
	}
	if err != nil {
		log.ErrorWithContext(ctx, "%v", err)
		return nil, err
	}

	res.App = props.App
	log.InfoWithContext(ctx, "opened %s draft via %s", res.Method, res.Target)
	c.record(ctx, &props, res, content)
	return res, nil
}

func (c *Composer) openMailto(ctx context.Context, p *model.DraftProperties) (*Result, string, error) {
	h := draft.MailtoURI(p, true)
	uri := h.URI
	if !isMailtoApp(p.App) {
		uri = RetargetURI(uri, p.App)
	}

	err := c.launcher.OpenURI(ctx, uri)
	if err = closeHandle(h, launchErr(model.LaunchMethodMailto, uri, err)); err != nil {
		return nil, "", err
	}

	return &Result{
		Method:      model.LaunchMethodMailto,
		Target:      uri,
		ContentType: h.ContentType,
	}, uri, nil
}

func (c *Composer) openEMLFile(ctx context.Context, p *model.DraftProperties) (*Result, string, error) {
	h := draft.EMLContent(p)

	path, err := c.files.Write(h)
	if err != nil {
		return nil, "", closeHandle(h, err)
	}

	err = c.launcher.OpenFile(ctx, path)
	if err = closeHandle(h, launchErr(model.LaunchMethodEML, path, err)); err != nil {
		return nil, "", err
	}

	return &Result{
		Method:      model.LaunchMethodEML,
		Target:      path,
		ContentType: h.ContentType,
	}, h.Text, nil
}

func (c *Composer) openIMAP(ctx context.Context, p *model.DraftProperties) (*Result, string, error) {
	password, err := c.imapPassword()
	if err != nil {
		return nil, "", err
	}

	uploader := c.newUploader(c.imap, password)
	h := draft.EMLContent(p)

	err = uploader.SaveDraft(ctx, h.Text)
	if err = closeHandle(h, launchErr(model.LaunchMethodIMAP, uploader.Mailbox(), err)); err != nil {
		return nil, "", err
	}

	return &Result{
		Method:      model.LaunchMethodIMAP,
		Target:      uploader.Mailbox(),
		ContentType: h.ContentType,
	}, h.Text, nil
}

func (c *Composer) imapPassword() (string, error) {
	if !c.imap.Configured() || c.creds == nil {
		return "", ErrNoAccount
	}
	password, err := c.creds.Get(c.imap.IMAPCredentialKey())
	if errors.Is(err, credential.ErrNotFound) {
		return "", fmt.Errorf("%w: no password stored for %s", ErrNoAccount, c.imap.Username)
	}
	if err != nil {
		return "", err
	}
	return password, nil
}

// record stores the launch in the history. Failures are logged and do
// not fail the launch.
func (c *Composer) record(ctx context.Context, p *model.DraftProperties, res *Result, content string) {
	if c.history == nil {
		return
	}

	launch := &model.Launch{
		App:         p.App,
		Method:      res.Method,
		Subject:     p.Subject,
		Recipients:  p.To.Join(","),
		ContentType: res.ContentType,
		Content:     content,
	}
	if err := c.history.RecordLaunch(ctx, launch); err != nil {
		log.WarnWithContext(ctx, "recording launch: %v", err)
		return
	}
	res.LaunchID = launch.ID
}

// HasAccount reports whether app can take a draft without further
// setup. mailto always can; imap needs a configured account with a
// stored password.
func (c *Composer) HasAccount(app string) bool {
	app = c.settings.Resolve(app)
	switch {
	case isMailtoApp(app):
		return true
	case app == AppIMAP:
		return c.imap.Configured() && c.creds != nil &&
			credential.Has(c.creds, c.imap.IMAPCredentialKey())
	default:
		return false
	}
}

// HasClient reports whether a client for app can be launched. Only the
// system mailto handler can be probed.
func (c *Composer) HasClient(_ context.Context, app string) bool {
	app = c.settings.Resolve(app)
	if !isMailtoApp(app) {
		return false
	}
	prober, ok := c.launcher.(interface{ Available() bool })
	return ok && prober.Available()
}

// RetargetURI rewrites a mailto URI onto an app URL such as
// "ms-outlook://compose". The recipients move into a "to" parameter
// ahead of the mailto query.
func RetargetURI(mailtoURI, target string) string {
	rest := strings.TrimPrefix(mailtoURI, draft.MailtoScheme)
	recipients, query, _ := strings.Cut(rest, "?")

	var params []string
	if recipients != "" {
		params = append(params, "to="+url.QueryEscape(recipients))
	}
	if query != "" {
		params = append(params, query)
	}
	if len(params) == 0 {
		return target
	}

	sep := "?"
	if strings.Contains(target, "?") {
		sep = "&"
	}
	return target + sep + strings.Join(params, "&")
}

func isMailtoApp(app string) bool {
	return app == AppMailto || app == draft.MailtoScheme
}

func launchErr(method model.LaunchMethod, target string, err error) error {
	if err == nil {
		return nil
	}
	return &LaunchError{Method: method, Target: target, Err: err}
}

// closeHandle closes h and joins any close error onto err.
func closeHandle(h *draft.LaunchHandle, err error) error {
	if cerr := h.Close(); cerr != nil {
		if err == nil {
			return fmt.Errorf("releasing draft: %w", cerr)
		}
		return errors.Join(err, cerr)
	}
	return err
}

// Package mailbox uploads encoded drafts to an IMAP drafts mailbox.
package mailbox

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"

	"github.com/nhle/maildraft/internal/model"
)

// AuthError indicates that the IMAP server rejected the stored credentials.
type AuthError struct {
	Username string
	Message  string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth error (%s): %s", e.Username, e.Message)
}

// IsAuthError reports whether err (or any error in its chain) is an AuthError.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// Client wraps go-imap v2 for appending drafts.
type Client struct {
	host     string
	port     string
	username string
	password string
	tls      bool
	mailbox  string
}

// NewClient creates a client for the account in cfg, authenticating with
// password.
func NewClient(cfg model.IMAPConfig, password string) *Client {
	mailbox := cfg.DraftsMailbox
	if mailbox == "" {
		mailbox = "Drafts"
	}
	return &Client{
		host:     cfg.Host,
		port:     cfg.Port,
		username: cfg.Username,
		password: password,
		tls:      cfg.TLS,
		mailbox:  mailbox,
	}
}

// Mailbox returns the name of the mailbox drafts are appended to.
func (c *Client) Mailbox() string {
	return c.mailbox
}

// Connect establishes a connection to the IMAP server, authenticates,
// and returns the connected client. The caller is responsible for
// calling Logout on the returned client.
func (c *Client) Connect(_ context.Context) (*imapclient.Client, error) {
	addr := c.host + ":" + c.port

	var client *imapclient.Client
	var err error

	if c.tls {
		client, err = imapclient.DialTLS(addr, nil)
	} else {
		client, err = imapclient.DialStartTLS(addr, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("connecting to IMAP %s: %w", addr, err)
	}

	if err := client.Login(c.username, c.password).Wait(); err != nil {
		_ = client.Logout().Wait()
		return nil, &AuthError{
			Username: c.username,
			Message:  fmt.Sprintf("authentication failed: %v", err),
		}
	}

	return client, nil
}

// SaveDraft appends text to the drafts mailbox flagged \Draft, so the
// user's mail client lists it as an unsent draft.
func (c *Client) SaveDraft(ctx context.Context, text string) error {
	client, err := c.Connect(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = client.Logout().Wait() }()

	msg := []byte(ToCRLF(text))

	appendCmd := client.Append(c.mailbox, int64(len(msg)), &imap.AppendOptions{
		Flags: []imap.Flag{imap.FlagDraft},
	})
	if _, err := appendCmd.Write(msg); err != nil {
		_ = appendCmd.Close()
		return fmt.Errorf("writing draft: %w", err)
	}
	if err := appendCmd.Close(); err != nil {
		return fmt.Errorf("closing draft: %w", err)
	}
	if _, err := appendCmd.Wait(); err != nil {
		return fmt.Errorf("appending draft to %s: %w", c.mailbox, err)
	}

	return nil
}

// ToCRLF rewrites bare LF and CR line endings as CRLF, as IMAP APPEND
// requires.
func ToCRLF(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.ReplaceAll(s, "\n", "\r\n")
}

package mailbox

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nhle/maildraft/internal/model"
)

func TestToCRLF(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare lf", "Subject: Hi\n\nbody\n", "Subject: Hi\r\n\r\nbody\r\n"},
		{"already crlf", "a\r\nb", "a\r\nb"},
		{"bare cr", "a\rb", "a\r\nb"},
		{"mixed", "a\r\nb\nc\rd", "a\r\nb\r\nc\r\nd"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToCRLF(tt.in))
		})
	}
}

func TestNewClient_DefaultMailbox(t *testing.T) {
	c := NewClient(model.IMAPConfig{Host: "imap.example.com", Username: "me"}, "pw")
	assert.Equal(t, "Drafts", c.Mailbox())

	c = NewClient(model.IMAPConfig{DraftsMailbox: "[Gmail]/Drafts"}, "pw")
	assert.Equal(t, "[Gmail]/Drafts", c.Mailbox())
}

func TestIsAuthError(t *testing.T) {
	err := fmt.Errorf("saving: %w", &AuthError{Username: "me", Message: "bad password"})
	assert.True(t, IsAuthError(err))
	assert.Equal(t, "auth error (me): bad password", (&AuthError{Username: "me", Message: "bad password"}).Error())
	assert.False(t, IsAuthError(fmt.Errorf("other")))
}

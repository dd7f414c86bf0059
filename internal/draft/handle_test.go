package draft

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLaunchHandle_CloseRunsReleaseOnce(t *testing.T) {
	var calls []string

	h := NewTextHandle("text", ContentTypeEML).
		WithRelease(func() error {
			calls = append(calls, "inner")
			return nil
		}).
		WithRelease(func() error {
			calls = append(calls, "outer")
			return nil
		})

	assert.NoError(t, h.Close())
	assert.NoError(t, h.Close())
	assert.Equal(t, []string{"outer", "inner"}, calls)
}

func TestLaunchHandle_CloseReportsFirstError(t *testing.T) {
	errOuter := errors.New("revoke failed")
	errInner := errors.New("delete failed")

	h := NewURIHandle("file:///tmp/x.eml", ContentTypeEML).
		WithRelease(func() error { return errInner }).
		WithRelease(func() error { return errOuter })

	assert.ErrorIs(t, h.Close(), errOuter)
	assert.ErrorIs(t, h.Close(), errOuter)
}

func TestLaunchHandle_Content(t *testing.T) {
	assert.Equal(t, "mailto:a@x.com", NewURIHandle("mailto:a@x.com", ContentTypePlain).Content())
	assert.Equal(t, "body", NewTextHandle("body", ContentTypeEML).Content())
	assert.Equal(t, "uri", KindURI.String())
	assert.Equal(t, "text", KindText.String())
}

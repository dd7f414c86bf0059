package compose

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemLauncher_Commands(t *testing.T) {
	tests := []struct {
		goos string
		want []string
	}{
		{"linux", []string{"xdg-open", "mailto:a@x.com"}},
		{"freebsd", []string{"xdg-open", "mailto:a@x.com"}},
		{"darwin", []string{"open", "mailto:a@x.com"}},
		{"windows", []string{"rundll32", "url.dll,FileProtocolHandler", "mailto:a@x.com"}},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			var got []string
			l := &SystemLauncher{
				goos: tt.goos,
				run: func(_ context.Context, name string, args ...string) error {
					got = append([]string{name}, args...)
					return nil
				},
			}
			require.NoError(t, l.OpenURI(context.Background(), "mailto:a@x.com"))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSystemLauncher_RunError(t *testing.T) {
	l := &SystemLauncher{
		goos: "linux",
		run: func(context.Context, string, ...string) error {
			return errors.New("exit status 3")
		},
	}
	err := l.OpenFile(context.Background(), "/tmp/x.eml")
	assert.EqualError(t, err, "running xdg-open: exit status 3")
}

func TestSystemLauncher_Available(t *testing.T) {
	l := &SystemLauncher{
		goos: "darwin",
		lookPath: func(file string) (string, error) {
			if file == "open" {
				return "/usr/bin/open", nil
			}
			return "", errors.New("not found")
		},
	}
	assert.True(t, l.Available())

	l.goos = "linux"
	assert.False(t, l.Available())
}

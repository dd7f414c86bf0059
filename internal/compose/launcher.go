package compose

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// Launcher hands a draft to the user's mail client.
type Launcher interface {
	OpenURI(ctx context.Context, uri string) error
	OpenFile(ctx context.Context, path string) error
}

// SystemLauncher opens URIs and files with the platform's default
// handler: xdg-open, open, or the Windows URL protocol handler.
type SystemLauncher struct {
	goos     string
	lookPath func(file string) (string, error)
	run      func(ctx context.Context, name string, args ...string) error
}

// NewSystemLauncher returns a launcher for the running platform.
func NewSystemLauncher() *SystemLauncher {
	return &SystemLauncher{
		goos:     runtime.GOOS,
		lookPath: exec.LookPath,
		run:      runCommand,
	}
}

// OpenURI opens uri with its registered scheme handler.
func (l *SystemLauncher) OpenURI(ctx context.Context, uri string) error {
	return l.open(ctx, uri)
}

// OpenFile opens path with the application registered for its type.
func (l *SystemLauncher) OpenFile(ctx context.Context, path string) error {
	return l.open(ctx, path)
}

// Available reports whether the platform opener can be found.
func (l *SystemLauncher) Available() bool {
	name, _ := l.command("")
	_, err := l.lookPath(name)
	return err == nil
}

func (l *SystemLauncher) open(ctx context.Context, target string) error {
	name, args := l.command(target)
	if err := l.run(ctx, name, args...); err != nil {
		return fmt.Errorf("running %s: %w", name, err)
	}
	return nil
}

func (l *SystemLauncher) command(target string) (string, []string) {
	switch l.goos {
	case "darwin":
		return "open", []string{target}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", target}
	default:
		return "xdg-open", []string{target}
	}
}

func runCommand(ctx context.Context, name string, args ...string) error {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}

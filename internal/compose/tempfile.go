package compose

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/nhle/maildraft/internal/draft"
	"github.com/nhle/maildraft/internal/log"
	"github.com/nhle/maildraft/internal/model"
)

// TempFiles writes draft files for mail clients to open and removes them
// once the client has had time to read them.
type TempFiles struct {
	dir   string
	name  string
	delay time.Duration

	mu      sync.Mutex
	gen     uint64
	pending *time.Timer
}

// NewTempFiles returns a temp file store configured by cfg.
func NewTempFiles(cfg model.EMLConfig) *TempFiles {
	dir := cfg.TempDir
	if dir == "" {
		dir = os.TempDir()
	}
	name := cfg.FileName
	if name == "" {
		name = "emailcomposer.eml"
	}
	return &TempFiles{
		dir:   dir,
		name:  name,
		delay: time.Duration(cfg.CleanupDelaySec) * time.Second,
	}
}

// Path returns where draft files are written.
func (t *TempFiles) Path() string {
	return filepath.Join(t.dir, t.name)
}

// Write replaces the draft file with h's text and chains its removal
// onto h's release hook. Removal happens after the cleanup delay, and
// only while no later Write has replaced the file.
func (t *TempFiles) Write(h *draft.LaunchHandle) (string, error) {
	path := t.Path()

	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopPending()
	t.gen++
	gen := t.gen

	if err := os.MkdirAll(t.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating draft dir: %w", err)
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("replacing draft file: %w", err)
	}
	if err := os.WriteFile(path, []byte(h.Text), 0o600); err != nil {
		return "", fmt.Errorf("writing draft file: %w", err)
	}

	h.WithRelease(func() error {
		return t.scheduleRemove(path, gen)
	})
	return path, nil
}

func (t *TempFiles) scheduleRemove(path string, gen uint64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if gen != t.gen {
		return nil
	}
	if t.delay <= 0 {
		return removeDraftFile(path)
	}

	t.stopPending()
	t.pending = time.AfterFunc(t.delay, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if gen != t.gen {
			return
		}
		if err := removeDraftFile(path); err != nil {
			log.Warn("cleaning up %s: %v", path, err)
		}
	})
	return nil
}

// stopPending cancels a scheduled removal. t.mu must be held.
func (t *TempFiles) stopPending() {
	if t.pending != nil {
		t.pending.Stop()
		t.pending = nil
	}
}

func removeDraftFile(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing draft file: %w", err)
	}
	return nil
}

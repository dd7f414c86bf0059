// Package app wires configuration, storage and the composer into the
// maildraft command line.
package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nhle/maildraft/internal/compose"
	"github.com/nhle/maildraft/internal/credential"
	"github.com/nhle/maildraft/internal/model"
	"github.com/nhle/maildraft/internal/store"
	"github.com/nhle/maildraft/internal/theme"
)

// Options overrides the app's system dependencies. Zero values select
// the real implementations.
type Options struct {
	Launcher    compose.Launcher
	Credentials credential.Store
	Stdin       io.Reader
	Stdout      io.Writer
	Stderr      io.Writer
}

// App holds everything a command needs.
type App struct {
	cfg        model.AppConfig
	configPath string
	store      *store.SQLiteStore
	composer   *compose.Composer
	creds      credential.Store
	stdin      io.Reader
	stdout     io.Writer
	stderr     io.Writer
}

// New opens the history store and builds the composer for cfg.
func New(cfg model.AppConfig, configPath string, opts Options) (*App, error) {
	if opts.Launcher == nil {
		opts.Launcher = compose.NewSystemLauncher()
	}
	if opts.Credentials == nil {
		opts.Credentials = credential.NewKeyring("")
	}
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = model.DefaultDBPath()
	}
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("creating data dir: %w", err)
		}
	}

	s, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, err
	}

	theme.Use(cfg.Display.Theme)

	composer := compose.New(compose.Options{
		Settings:    compose.NewSettings(cfg),
		Launcher:    opts.Launcher,
		Files:       compose.NewTempFiles(cfg.EML),
		History:     s,
		IMAP:        cfg.IMAP,
		Credentials: opts.Credentials,
	})

	return &App{
		cfg:        cfg,
		configPath: configPath,
		store:      s,
		composer:   composer,
		creds:      opts.Credentials,
		stdin:      opts.Stdin,
		stdout:     opts.Stdout,
		stderr:     opts.Stderr,
	}, nil
}

// Close releases the history store.
func (a *App) Close() error {
	return a.store.Close()
}

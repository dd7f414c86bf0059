package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "mailto", cfg.Defaults.App)
	assert.Equal(t, "Open with", cfg.Defaults.ChooserHeader)
	assert.Equal(t, "emailcomposer.eml", cfg.EML.FileName)
	assert.Equal(t, 60, cfg.EML.CleanupDelaySec)
	assert.Equal(t, "Drafts", cfg.IMAP.DraftsMailbox)
	assert.Equal(t, "googlegmail://co", cfg.Aliases["gmail"])
	assert.Equal(t, "127.0.0.1:7878", cfg.Bridge.Listen)
}

func TestLoadConfig_FileAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
defaults:
  from: me@example.com
  is_html: true
eml:
  cleanup_delay_sec: 5
imap:
  host: imap.example.com
  username: me
aliases:
  work: ms-outlook://compose
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	t.Setenv("MAILDRAFT_IMAP_DRAFTS_MAILBOX", "[Gmail]/Drafts")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "me@example.com", cfg.Defaults.From)
	assert.True(t, cfg.Defaults.IsHTML)
	assert.Equal(t, 5, cfg.EML.CleanupDelaySec)
	assert.True(t, cfg.IMAP.Configured())
	assert.Equal(t, "imap-me@imap.example.com", cfg.IMAP.IMAPCredentialKey())
	assert.Equal(t, "[Gmail]/Drafts", cfg.IMAP.DraftsMailbox)
	assert.Equal(t, "ms-outlook://compose", cfg.Aliases["work"])
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("defaults: [unclosed"), 0o600))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := defaultAppConfig()
	cfg.Defaults.Subject = "Status"
	cfg.EML.CleanupDelaySec = 30

	require.NoError(t, SaveConfig(path, cfg))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "Status", loaded.Defaults.Subject)
	assert.Equal(t, 30, loaded.EML.CleanupDelaySec)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, LoadEnvFile(filepath.Join(dir, "missing.env")))

	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("MAILDRAFT_TEST_VALUE=from-file\n"), 0o600))
	t.Setenv("MAILDRAFT_TEST_VALUE", "")
	require.NoError(t, os.Unsetenv("MAILDRAFT_TEST_VALUE"))

	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "from-file", os.Getenv("MAILDRAFT_TEST_VALUE"))
}

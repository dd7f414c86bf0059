package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envPrefix is prepended to environment overrides, e.g.
// MAILDRAFT_IMAP_HOST overrides imap.host.
const envPrefix = "MAILDRAFT"

// DefaultsConfig holds the values merged into every draft request that
// leaves a field unset.
type DefaultsConfig struct {
	App           string `mapstructure:"app" yaml:"app"`
	From          string `mapstructure:"from" yaml:"from"`
	Subject       string `mapstructure:"subject" yaml:"subject"`
	Body          string `mapstructure:"body" yaml:"body"`
	IsHTML        bool   `mapstructure:"is_html" yaml:"is_html"`
	ChooserHeader string `mapstructure:"chooser_header" yaml:"chooser_header"`
	EMLFile       bool   `mapstructure:"eml_file" yaml:"eml_file"`
}

// EMLConfig controls where temporary .eml drafts are written and how long
// they are kept.
type EMLConfig struct {
	// TempDir is the directory for draft files. Empty means os.TempDir().
	TempDir string `mapstructure:"temp_dir" yaml:"temp_dir"`

	// FileName is the draft file name; an existing file is replaced.
	FileName string `mapstructure:"file_name" yaml:"file_name"`

	// CleanupDelaySec is how long the file survives after launch so the
	// mail client can read it.
	CleanupDelaySec int `mapstructure:"cleanup_delay_sec" yaml:"cleanup_delay_sec"`
}

// IMAPConfig holds the account used to upload drafts. The password is
// kept in the system keyring under IMAPCredentialKey.
type IMAPConfig struct {
	Host          string `mapstructure:"host" yaml:"host"`
	Port          string `mapstructure:"port" yaml:"port"`
	Username      string `mapstructure:"username" yaml:"username"`
	TLS           bool   `mapstructure:"tls" yaml:"tls"`
	DraftsMailbox string `mapstructure:"drafts_mailbox" yaml:"drafts_mailbox"`
}

// Configured reports whether enough is set to attempt a connection.
func (c IMAPConfig) Configured() bool {
	return c.Host != "" && c.Username != ""
}

// IMAPCredentialKey returns the keyring key for the account password.
func (c IMAPConfig) IMAPCredentialKey() string {
	return "imap-" + c.Username + "@" + c.Host
}

// BridgeConfig holds the HTTP host bridge settings.
type BridgeConfig struct {
	Listen string `mapstructure:"listen" yaml:"listen"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Defaults DefaultsConfig    `mapstructure:"defaults" yaml:"defaults"`
	Aliases  map[string]string `mapstructure:"aliases" yaml:"aliases"`
	EML      EMLConfig         `mapstructure:"eml" yaml:"eml"`
	IMAP     IMAPConfig        `mapstructure:"imap" yaml:"imap"`
	Bridge   BridgeConfig      `mapstructure:"bridge" yaml:"bridge"`
	Display  DisplayConfig     `mapstructure:"display" yaml:"display"`
	DBPath   string            `mapstructure:"db_path" yaml:"db_path"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/maildraft/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

// DefaultDBPath returns the default history database path.
func DefaultDBPath() string {
	return filepath.Join(configDir(), "history.db")
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "maildraft")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Defaults: DefaultsConfig{
			App:           "mailto",
			ChooserHeader: "Open with",
		},
		Aliases: map[string]string{
			"gmail":   "googlegmail://co",
			"outlook": "ms-outlook://compose",
		},
		EML: EMLConfig{
			FileName:        "emailcomposer.eml",
			CleanupDelaySec: 60,
		},
		IMAP: IMAPConfig{
			Port:          "993",
			TLS:           true,
			DraftsMailbox: "Drafts",
		},
		Bridge: BridgeConfig{
			Listen: "127.0.0.1:7878",
		},
		Display: DisplayConfig{
			Theme: "default",
		},
		DBPath: DefaultDBPath(),
	}
}

// LoadEnvFile loads KEY=VALUE pairs from a dotenv file into the process
// environment without overriding variables that are already set. A
// missing file is not an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading env file %s: %w", path, err)
	}
	return nil
}

// LoadConfig reads configuration from the given YAML file path using Viper,
// applying MAILDRAFT_* environment overrides. If the file does not exist,
// defaults plus environment overrides are returned.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults so missing keys resolve to sensible values and so
	// AutomaticEnv knows which keys to look up.
	def := defaultAppConfig()
	v.SetDefault("defaults.app", def.Defaults.App)
	v.SetDefault("defaults.from", "")
	v.SetDefault("defaults.subject", "")
	v.SetDefault("defaults.body", "")
	v.SetDefault("defaults.is_html", false)
	v.SetDefault("defaults.chooser_header", def.Defaults.ChooserHeader)
	v.SetDefault("defaults.eml_file", false)
	v.SetDefault("eml.temp_dir", "")
	v.SetDefault("eml.file_name", def.EML.FileName)
	v.SetDefault("eml.cleanup_delay_sec", def.EML.CleanupDelaySec)
	v.SetDefault("imap.host", "")
	v.SetDefault("imap.port", def.IMAP.Port)
	v.SetDefault("imap.username", "")
	v.SetDefault("imap.tls", def.IMAP.TLS)
	v.SetDefault("imap.drafts_mailbox", def.IMAP.DraftsMailbox)
	v.SetDefault("bridge.listen", def.Bridge.Listen)
	v.SetDefault("display.theme", def.Display.Theme)
	v.SetDefault("db_path", def.DBPath)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, os.ErrNotExist) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.EML.CleanupDelaySec < 0 {
		cfg.EML.CleanupDelaySec = 0
	}
	if cfg.EML.FileName == "" {
		cfg.EML.FileName = def.EML.FileName
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("defaults", cfg.Defaults)
	v.Set("aliases", cfg.Aliases)
	v.Set("eml", cfg.EML)
	v.Set("imap", cfg.IMAP)
	v.Set("bridge", cfg.Bridge)
	v.Set("display", cfg.Display)
	v.Set("db_path", cfg.DBPath)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}

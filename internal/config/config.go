// Package config loads the application configuration from a TOML file.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// EnvPath names the environment variable that overrides the config path.
const EnvPath = "GRIDACCESS_CONFIG"

// Config represents the application configuration.
type Config struct {
	Log           LogConfig           `toml:"log"`
	Accessibility AccessibilityConfig `toml:"accessibility"`
	Sharing       SharingConfig       `toml:"sharing"`
	// Files are opened at startup.
	Files []string `toml:"files"`
	// Warnings lists keys that were present in the file but not understood.
	Warnings []string `toml:"-"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level     string `toml:"level"`
	SeqURL    string `toml:"seq_url"`
	AddSource bool   `toml:"add_source"`
	// Events logs every accessibility event at debug level.
	Events bool `toml:"events"`
}

// AccessibilityConfig controls the accessibility tree.
type AccessibilityConfig struct {
	// NameScript is a Go file defining Name(header, text string) string.
	NameScript string `toml:"name_script"`
	// EditAction is the action name of editable text cells.
	EditAction string `toml:"edit_action"`
	// ReadOnlyColumns are never editable, whatever their type.
	ReadOnlyColumns []string `toml:"read_only_columns"`
}

// SharingConfig controls Delta Sharing access.
type SharingConfig struct {
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// Timeout returns the configured timeout as a duration.
func (s SharingConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level: "info",
		},
		Accessibility: AccessibilityConfig{
			EditAction: "edit",
		},
		Sharing: SharingConfig{
			TimeoutSeconds: 60,
		},
	}
}

// Path returns the config file path: $GRIDACCESS_CONFIG, or config.toml in
// the user configuration directory.
func Path() (string, error) {
	if p := os.Getenv(EnvPath); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "gridaccess", "config.toml"), nil
}

// Load loads configuration from the default path.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	return LoadFromPath(path)
}

// LoadFromPath loads configuration from path. A missing file yields the
// defaults.
func LoadFromPath(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes TOML from r on top of the defaults.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	for _, key := range md.Undecoded() {
		cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("unknown key %q", key.String()))
	}
	if cfg.Sharing.TimeoutSeconds < 0 {
		return nil, fmt.Errorf("sharing.timeout_seconds must not be negative, got %d", cfg.Sharing.TimeoutSeconds)
	}
	return cfg, nil
}

// IsReadOnly reports whether column is listed in ReadOnlyColumns.
func (a AccessibilityConfig) IsReadOnly(column string) bool {
	for _, c := range a.ReadOnlyColumns {
		if c == column {
			return true
		}
	}
	return false
}

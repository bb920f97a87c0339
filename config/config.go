// Package config loads the tei2conllu TOML configuration file. Its values are
// defaults that command line flags override.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/revelaction/tei2conllu/file"
	"github.com/revelaction/tei2conllu/tei"
)

const (
	appDir   = "tei2conllu"
	fileName = "config.toml"

	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config holds the configurable defaults.
type Config struct {
	// Verbose is 0 (warn), 1 (info) or 2 (debug).
	Verbose int `toml:"verbose"`

	// LogFormat is "text" or "json".
	LogFormat string `toml:"log_format"`

	Namespace *string `toml:"namespace"`

	// Extension of the output files, with leading dot.
	Extension string `toml:"extension"`

	NFC bool `toml:"nfc"`

	// DB is the path of the SQLite sentence index. Empty disables it.
	DB string `toml:"db"`

	Progress *bool `toml:"progress"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	ns := tei.Namespace
	progress := true
	return Config{
		LogFormat: LogFormatText,
		Namespace: &ns,
		Extension: file.OutputExt,
		Progress:  &progress,
	}
}

// DefaultPath returns the path of the configuration file in the user
// configuration directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDir, fileName), nil
}

// Load reads the file at path over the defaults. A missing file yields the
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("TOML decoding error in %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the value ranges.
func (c Config) Validate() error {
	if c.Verbose < 0 || c.Verbose > 2 {
		return fmt.Errorf("verbose must be between 0 and 2, got %d", c.Verbose)
	}

	switch c.LogFormat {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("log_format must be %q or %q, got %q", LogFormatText, LogFormatJSON, c.LogFormat)
	}

	if c.Extension == "" || c.Extension[0] != '.' {
		return fmt.Errorf("extension must start with a dot, got %q", c.Extension)
	}

	return nil
}

// NamespaceURI returns the configured namespace, the TEI one if unset.
func (c Config) NamespaceURI() string {
	if c.Namespace == nil {
		return tei.Namespace
	}
	return *c.Namespace
}

// ShowProgress reports whether the progress bar is enabled.
func (c Config) ShowProgress() bool {
	return c.Progress == nil || *c.Progress
}

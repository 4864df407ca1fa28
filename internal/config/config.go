// Package config holds the host-side configuration: where settings are
// persisted, what URL the QR code points at, and which picture image mode
// shows. The board stores all of this in the backup domain instead.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level host configuration.
type Config struct {
	// URL is what the QR code encodes. Uppercase URLs produce smaller
	// codes, which matters at version 3.
	URL string `yaml:"url"`

	// BackupPath is the file standing in for the backup registers.
	BackupPath string `yaml:"backup_path"`

	// Image is an optional picture for image mode, 64x64 JPEG or PNG.
	Image string `yaml:"image,omitempty"`

	// SPILCD mirrors the status display to an ST7735 over spidev.
	SPILCD bool `yaml:"spi_lcd"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		URL:        "HTTPS://EXAMPLE.COM",
		BackupPath: "walkclock.backup",
	}
}

// Normalize fills in missing values so partially-filled configs still
// behave.
func (c *Config) Normalize() {
	if c.URL == "" {
		c.URL = "HTTPS://EXAMPLE.COM"
	}
	if c.BackupPath == "" {
		c.BackupPath = "walkclock.backup"
	}
}

// Load loads configuration from the given YAML path. A missing file is
// created with defaults on first run.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()
	return &cfg, nil
}

// Save writes the configuration atomically via a temp file and rename.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".config-*.yaml")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, 0o600); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, path)
}

// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// ConfigFileName is the config file name inside the ttt config directory.
const ConfigFileName = "config.toml"

// Config holds the user-tunable settings. Everything has a default;
// the file is optional.
type Config struct {
	DataFile    string    `toml:"data_file"`
	LogLevel    string    `toml:"log_level"`
	KDF         KDFConfig `toml:"kdf"`
	BackupSlots int       `toml:"backup_slots"`
}

// KDFConfig tunes the Argon2id cost for new writes. Existing files
// stay readable regardless, because the envelope stores its own
// parameters.
type KDFConfig struct {
	MemoryKiB   uint32 `toml:"memory_kib"`
	Iterations  uint32 `toml:"iterations"`
	Parallelism uint8  `toml:"parallelism"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DataFile:    filepath.Join(defaultDataDir(), "ttt.json"),
		LogLevel:    "info",
		BackupSlots: 3,
		KDF: KDFConfig{
			MemoryKiB:   19456,
			Iterations:  2,
			Parallelism: 1,
		},
	}
}

// Loader loads configuration from the TOML config file.
type Loader struct {
	configDir string
}

// NewLoader creates a Loader using the default config directory.
func NewLoader() *Loader {
	return &Loader{configDir: defaultConfigDir()}
}

// NewLoaderWithDir creates a Loader with a custom config directory.
// This is useful for testing.
func NewLoaderWithDir(dir string) *Loader {
	return &Loader{configDir: dir}
}

// Load returns the defaults overlaid with whatever the config file
// sets. A missing file is not an error.
func (l *Loader) Load() (*Config, error) {
	cfg := Default()

	path := filepath.Join(l.configDir, ConfigFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var file Config
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	merge(cfg, &file)
	return cfg, nil
}

// merge overlays non-zero file values onto the defaults.
func merge(base, file *Config) {
	if file.DataFile != "" {
		base.DataFile = file.DataFile
	}
	if file.LogLevel != "" {
		base.LogLevel = file.LogLevel
	}
	if file.BackupSlots != 0 {
		base.BackupSlots = file.BackupSlots
	}
	if file.KDF.MemoryKiB != 0 {
		base.KDF.MemoryKiB = file.KDF.MemoryKiB
	}
	if file.KDF.Iterations != 0 {
		base.KDF.Iterations = file.KDF.Iterations
	}
	if file.KDF.Parallelism != 0 {
		base.KDF.Parallelism = file.KDF.Parallelism
	}
}

// defaultConfigDir resolves $XDG_CONFIG_HOME/ttt, falling back to
// ~/.config/ttt.
func defaultConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "ttt")
}

// defaultDataDir resolves $XDG_DATA_HOME/ttt, falling back to
// ~/.local/share/ttt.
func defaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "ttt"
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "ttt")
}

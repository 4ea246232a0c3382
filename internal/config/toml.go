// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Study StudyConfig `toml:"study"`
	Log   LogConfig   `toml:"log"`
}

// StudyConfig maps study-related settings.
type StudyConfig struct {
	Deck      *string  `toml:"deck"`
	DB        *string  `toml:"db"`
	Units     []string `toml:"units"`
	Category  *string  `toml:"category"`
	Status    *string  `toml:"status"`
	Difficult *bool    `toml:"difficult"`
	Due       *bool    `toml:"due"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Path  *string `toml:"path"`
	Level *string `toml:"level"`
}

const configTemplate = `# fiszki configuration
[study]
# deck = "~/.local/share/fiszki/words.json"
# units = ["1", "2"]
# category = "noun"
# status = "learning"   # untouched | learning | known | difficult
# difficult = false
# due = false

[log]
# path = "~/.local/state/fiszki/fiszki.log"
# level = "info"
`

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}

// EnsureConfigFile writes a commented template if path does not exist.
// It reports whether a new file was created.
func EnsureConfigFile(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to stat config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("failed to create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o644); err != nil {
		return false, fmt.Errorf("failed to write config: %w", err)
	}
	return true, nil
}

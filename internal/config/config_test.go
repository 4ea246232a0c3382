package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Study.Deck != nil || cfg.Log.Level != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigDecodesSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[study]
deck = "/tmp/words.yaml"
units = ["1", "3"]
difficult = true

[log]
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Study.Deck == nil || *cfg.Study.Deck != "/tmp/words.yaml" {
		t.Fatalf("unexpected deck: %v", cfg.Study.Deck)
	}
	if len(cfg.Study.Units) != 2 || cfg.Study.Units[1] != "3" {
		t.Fatalf("unexpected units: %v", cfg.Study.Units)
	}
	if cfg.Study.Difficult == nil || !*cfg.Study.Difficult || cfg.Study.Due != nil {
		t.Fatalf("unexpected flags: %+v", cfg.Study)
	}
	if cfg.Log.Level == nil || *cfg.Log.Level != "debug" || cfg.Log.Path != nil {
		t.Fatalf("unexpected log config: %+v", cfg.Log)
	}
}

func TestLoadConfigRejectsUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[study]\nlang = \"en\"\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadConfig(path); err == nil || !strings.Contains(err.Error(), "study.lang") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestEnsureConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fiszki", "config.toml")
	created, err := EnsureConfigFile(path)
	if err != nil || !created {
		t.Fatalf("expected file created, got %v %v", created, err)
	}
	if _, err := LoadConfig(path); err != nil {
		t.Fatalf("template should decode: %v", err)
	}
	created, err = EnsureConfigFile(path)
	if err != nil || created {
		t.Fatalf("expected existing file kept, got %v %v", created, err)
	}
}

func TestXDGPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	t.Setenv("XDG_STATE_HOME", "/state")
	if got := DefaultConfigPath(); got != filepath.Join("/cfg", "fiszki", "config.toml") {
		t.Fatalf("config path: %s", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/data", "fiszki", "fiszki.db") {
		t.Fatalf("db path: %s", got)
	}
	if got := DefaultDeckPath(); got != filepath.Join("/data", "fiszki", "words.json") {
		t.Fatalf("deck path: %s", got)
	}
	if got := DefaultLogPath(); got != filepath.Join("/state", "fiszki", "fiszki.log") {
		t.Fatalf("log path: %s", got)
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg.Therapy.User != nil || cfg.Therapy.Level != nil || cfg.Stats.WindowDays != nil {
		t.Fatalf("missing file should yield zero config, got %+v", cfg)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("empty path should error")
	}
}

func TestLoadConfigParsesFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[therapy]
user = "alice"
level = "amblyo-2"

[stats]
window-days = 14
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Therapy.User == nil || *cfg.Therapy.User != "alice" {
		t.Fatalf("user not parsed: %+v", cfg.Therapy)
	}
	if cfg.Therapy.Level == nil || *cfg.Therapy.Level != "amblyo-2" {
		t.Fatalf("level not parsed: %+v", cfg.Therapy)
	}
	if cfg.Stats.WindowDays == nil || *cfg.Stats.WindowDays != 14 {
		t.Fatalf("window-days not parsed: %+v", cfg.Stats)
	}
}

func TestLoadConfigInvalidToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("not = [valid"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("invalid TOML should error")
	}
}

func TestDefaultPathsHonorXDG(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
	if got := DefaultDBPath(); got != "/tmp/xdg-data/okulo/okulo.db" {
		t.Fatalf("DefaultDBPath = %q", got)
	}
	if got := DefaultConfigPath(); got != "/tmp/xdg-config/okulo/config.toml" {
		t.Fatalf("DefaultConfigPath = %q", got)
	}
}

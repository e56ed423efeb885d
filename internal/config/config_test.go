package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Display.Palette != "classic" {
		t.Errorf("expected palette classic, got %s", cfg.Display.Palette)
	}
	if cfg.Display.Term != 1 {
		t.Errorf("expected term 1, got %d", cfg.Display.Term)
	}
	if cfg.Storage.RetentionDays != 180 {
		t.Errorf("expected retention_days 180, got %d", cfg.Storage.RetentionDays)
	}
	if cfg.Links.BaseURL != "https://ttg.fyi/#" {
		t.Errorf("expected base_url https://ttg.fyi/#, got %s", cfg.Links.BaseURL)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "console" {
		t.Errorf("expected log info/console, got %s/%s", cfg.Log.Level, cfg.Log.Format)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoadFrom_FileNotExists(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Should return defaults
	if cfg.Display.Palette != "classic" {
		t.Errorf("expected default palette, got %s", cfg.Display.Palette)
	}
}

func TestLoadFrom_ValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[catalog]
path = "/tmp/mcmaster.json"

[storage]
db_path = "/tmp/test.db"
retention_days = 30

[display]
palette = "night"
monochrome = true
term = 2

[links]
base_url = "http://localhost:8080/#"
legacy_fallback = true
legacy_host = "short.example"

[log]
level = "debug"
format = "json"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Catalog.Path != "/tmp/mcmaster.json" {
		t.Errorf("expected catalog path /tmp/mcmaster.json, got %s", cfg.Catalog.Path)
	}
	if cfg.Storage.DBPath != "/tmp/test.db" {
		t.Errorf("expected db_path /tmp/test.db, got %s", cfg.Storage.DBPath)
	}
	if cfg.Storage.RetentionDays != 30 {
		t.Errorf("expected retention_days 30, got %d", cfg.Storage.RetentionDays)
	}
	if cfg.Display.Palette != "night" || !cfg.Display.Monochrome || cfg.Display.Term != 2 {
		t.Errorf("unexpected display config: %+v", cfg.Display)
	}
	if !cfg.Links.LegacyFallback || cfg.Links.LegacyHost != "short.example" {
		t.Errorf("unexpected links config: %+v", cfg.Links)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("unexpected log config: %+v", cfg.Log)
	}
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[storage]
db_path = "/tmp/test.db"

[display]
palette = "night"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	t.Setenv("TTG_DB_PATH", "/tmp/env.db")
	t.Setenv("TTG_MONOCHROME", "true")
	t.Setenv("TTG_LOG_LEVEL", "warn")
	t.Setenv("TTG_RETENTION_DAYS", "not-a-number")

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Env should override file
	if cfg.Storage.DBPath != "/tmp/env.db" {
		t.Errorf("expected db_path /tmp/env.db from env, got %s", cfg.Storage.DBPath)
	}
	// File value should be kept when no env override
	if cfg.Display.Palette != "night" {
		t.Errorf("expected palette night from file, got %s", cfg.Display.Palette)
	}
	// Env should override default
	if !cfg.Display.Monochrome {
		t.Error("expected monochrome from env")
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("expected log level warn from env, got %s", cfg.Log.Level)
	}
	// Unparseable numbers are ignored
	if cfg.Storage.RetentionDays != 180 {
		t.Errorf("expected default retention_days, got %d", cfg.Storage.RetentionDays)
	}
}

func TestLoadFrom_InvalidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")
	if err := os.WriteFile(configPath, []byte("[display\npalette = "), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := LoadFrom(configPath); err == nil {
		t.Error("expected parse error for malformed TOML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty db path", func(c *Config) { c.Storage.DBPath = "" }},
		{"zero retention", func(c *Config) { c.Storage.RetentionDays = 0 }},
		{"unknown palette", func(c *Config) { c.Display.Palette = "mocha" }},
		{"bad term", func(c *Config) { c.Display.Term = 3 }},
		{"fallback without host", func(c *Config) {
			c.Links.LegacyFallback = true
			c.Links.LegacyHost = ""
		}},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }},
		{"bad base url", func(c *Config) { c.Links.BaseURL = "http://[::1" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLinkFor(t *testing.T) {
	cfg := Default()
	if got := cfg.LinkFor("abc1234"); got != "https://ttg.fyi/#abc1234" {
		t.Errorf("LinkFor() = %q, want https://ttg.fyi/#abc1234", got)
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input string
		want  string
	}{
		{"~/test.db", filepath.Join(home, "test.db")},
		{"/absolute/path.db", "/absolute/path.db"},
		{"relative/path.db", "relative/path.db"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got := expandPath(tc.input)
			if got != tc.want {
				t.Errorf("expandPath(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	cfg := Default()
	cfg.Display.Palette = "night"
	cfg.Display.Term = 2
	cfg.Storage.DBPath = filepath.Join(tmpDir, "ttg.db")

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if loaded.Display.Palette != "night" {
		t.Errorf("expected palette night, got %s", loaded.Display.Palette)
	}
	if loaded.Display.Term != 2 {
		t.Errorf("expected term 2, got %d", loaded.Display.Term)
	}
	if loaded.Storage.DBPath != cfg.Storage.DBPath {
		t.Errorf("expected db_path %s, got %s", cfg.Storage.DBPath, loaded.Storage.DBPath)
	}
}

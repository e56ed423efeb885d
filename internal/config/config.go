// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/ttg/internal/palette"
)

// Config holds the application configuration.
type Config struct {
	Catalog CatalogConfig `toml:"catalog"`
	Storage StorageConfig `toml:"storage"`
	Display DisplayConfig `toml:"display"`
	Links   LinksConfig   `toml:"links"`
	Log     LogConfig     `toml:"log"`
}

// CatalogConfig holds the school catalog location.
type CatalogConfig struct {
	Path string `toml:"path"` // JSON catalog file
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath        string `toml:"db_path"`
	RetentionDays int    `toml:"retention_days"` // saved links unused for this long are reaped
}

// DisplayConfig holds timetable display settings.
type DisplayConfig struct {
	Palette    string `toml:"palette"` // "classic", "night"
	Monochrome bool   `toml:"monochrome"`
	Term       int    `toml:"term"` // term shown first, 1 or 2
}

// LinksConfig holds saved-link settings.
type LinksConfig struct {
	BaseURL        string `toml:"base_url"`        // prefix of shareable links, e.g. "https://ttg.fyi/#"
	LegacyFallback bool   `toml:"legacy_fallback"` // look up unknown ids on the old short-link host
	LegacyHost     string `toml:"legacy_host"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `toml:"level"`  // "debug", "info", "warn", "error"
	Format string `toml:"format"` // "console" or "json"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Catalog: CatalogConfig{
			Path: defaultCatalogPath(),
		},
		Storage: StorageConfig{
			DBPath:        defaultDBPath(),
			RetentionDays: 180,
		},
		Display: DisplayConfig{
			Palette: palette.DefaultName,
			Term:    1,
		},
		Links: LinksConfig{
			BaseURL:        "https://ttg.fyi/#",
			LegacyFallback: false,
			LegacyHost:     "goo.gl",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "ttg.db"
	}
	return filepath.Join(home, ".local", "share", "ttg", "ttg.db")
}

func defaultCatalogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "catalog.json"
	}
	return filepath.Join(home, ".local", "share", "ttg", "catalog.json")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "ttg", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	// Try to load from file (not an error if it doesn't exist)
	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)
	cfg.Catalog.Path = expandPath(cfg.Catalog.Path)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TTG_CATALOG_PATH"); v != "" {
		cfg.Catalog.Path = v
	}

	// Storage overrides
	if v := os.Getenv("TTG_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("TTG_RETENTION_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Storage.RetentionDays = n
		}
	}

	// Display overrides
	if v := os.Getenv("TTG_PALETTE"); v != "" {
		cfg.Display.Palette = v
	}
	if v := os.Getenv("TTG_MONOCHROME"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Display.Monochrome = b
		}
	}

	// Link overrides
	if v := os.Getenv("TTG_LINK_BASE_URL"); v != "" {
		cfg.Links.BaseURL = v
	}
	if v := os.Getenv("TTG_LEGACY_FALLBACK"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Links.LegacyFallback = b
		}
	}
	if v := os.Getenv("TTG_LEGACY_HOST"); v != "" {
		cfg.Links.LegacyHost = v
	}

	// Log overrides
	if v := os.Getenv("TTG_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("TTG_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	if c.Storage.RetentionDays < 1 {
		return fmt.Errorf("retention_days must be positive, got %d", c.Storage.RetentionDays)
	}
	if !palette.IsAvailable(c.Display.Palette) {
		return fmt.Errorf("unknown palette %q (available: %s)",
			c.Display.Palette, strings.Join(palette.Available(), ", "))
	}
	if c.Display.Term != 1 && c.Display.Term != 2 {
		return fmt.Errorf("term must be 1 or 2, got %d", c.Display.Term)
	}
	if c.Links.BaseURL != "" {
		if _, err := url.Parse(c.Links.BaseURL); err != nil {
			return fmt.Errorf("invalid base_url: %w", err)
		}
	}
	if c.Links.LegacyFallback && c.Links.LegacyHost == "" {
		return errors.New("legacy_host must be set when legacy_fallback is enabled")
	}
	if !isValidLogFormat(c.Log.Format) {
		return fmt.Errorf("log format must be console or json, got %q", c.Log.Format)
	}
	return nil
}

func isValidLogFormat(format string) bool {
	switch strings.ToLower(format) {
	case "console", "json":
		return true
	default:
		return false
	}
}

// LinkFor returns the shareable link for a saved schedule id.
func (c *Config) LinkFor(id string) string {
	return c.Links.BaseURL + id
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

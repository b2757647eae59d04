package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// maxScryfallBatch is the collection endpoint's per-request limit.
const maxScryfallBatch = 75

// Config represents the application configuration.
type Config struct {
	// HTTP API configuration
	Server ServerConfig `toml:"server"`

	// Database configuration
	Database DatabaseConfig `toml:"database"`

	// Card database configuration
	Scryfall ScryfallConfig `toml:"scryfall"`

	// Deck host configuration
	Sources SourcesConfig `toml:"sources"`

	// Application configuration
	App AppConfig `toml:"app"`
}

// ServerConfig contains API server settings.
type ServerConfig struct {
	Port           int      `toml:"port"`
	AllowedOrigins []string `toml:"allowed_origins"` // CORS allow-list
	RequestTimeout string   `toml:"request_timeout"` // Per-request timeout (e.g., "60s")
}

// DatabaseConfig contains sqlite settings.
type DatabaseConfig struct {
	Path        string `toml:"path"`         // Path to the sqlite file
	AutoMigrate bool   `toml:"auto_migrate"` // Run migrations on startup
}

// ScryfallConfig contains card database settings.
type ScryfallConfig struct {
	BaseURL    string `toml:"base_url"`
	BatchSize  int    `toml:"batch_size"`  // Names per collection request (1-75)
	BatchDelay string `toml:"batch_delay"` // Pause between batches (e.g., "100ms")
	UserAgent  string `toml:"user_agent"`
}

// SourcesConfig contains deck host settings.
type SourcesConfig struct {
	MoxfieldBaseURL  string `toml:"moxfield_base_url"`
	ArchidektBaseURL string `toml:"archidekt_base_url"`
	HTTPTimeout      string `toml:"http_timeout"` // e.g., "30s"
}

// AppConfig contains general application settings.
type AppConfig struct {
	DebugMode bool `toml:"debug_mode"` // Enable debug logging
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 3000,
			AllowedOrigins: []string{
				"http://localhost:4200",
				"http://localhost:8100",
				"http://localhost:3000",
				"http://localhost:3001",
				"https://app.omenpro.com",
				"https://api.omenpro.com",
			},
			RequestTimeout: "60s",
		},
		Database: DatabaseConfig{
			Path:        "",
			AutoMigrate: true,
		},
		Scryfall: ScryfallConfig{
			BaseURL:    "https://api.scryfall.com",
			BatchSize:  maxScryfallBatch,
			BatchDelay: "100ms",
			UserAgent:  "edh-power/1.0",
		},
		Sources: SourcesConfig{
			MoxfieldBaseURL:  "https://api.moxfield.com",
			ArchidektBaseURL: "https://archidekt.com/api",
			HTTPTimeout:      "30s",
		},
		App: AppConfig{
			DebugMode: false,
		},
	}
}

// Dir returns the configuration directory, creating it if needed.
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".edh-power")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}

	return configDir, nil
}

// DefaultPath returns the path to the default configuration file.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load loads the configuration from path, or from DefaultPath when path is
// empty. Returns default config if the file doesn't exist. Keys missing from
// the file keep their defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	// If file doesn't exist, return default config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return config, nil
}

// Save writes the configuration to path.
func (c *Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if _, err := time.ParseDuration(c.Server.RequestTimeout); err != nil {
		return fmt.Errorf("invalid request timeout %q: %w", c.Server.RequestTimeout, err)
	}

	if c.Scryfall.BatchSize < 1 || c.Scryfall.BatchSize > maxScryfallBatch {
		return fmt.Errorf("scryfall batch size must be between 1 and %d: %d", maxScryfallBatch, c.Scryfall.BatchSize)
	}

	if d, err := time.ParseDuration(c.Scryfall.BatchDelay); err != nil {
		return fmt.Errorf("invalid batch delay %q: %w", c.Scryfall.BatchDelay, err)
	} else if d < 0 {
		return fmt.Errorf("batch delay cannot be negative: %s", d)
	}

	if _, err := time.ParseDuration(c.Sources.HTTPTimeout); err != nil {
		return fmt.Errorf("invalid http timeout %q: %w", c.Sources.HTTPTimeout, err)
	}

	return nil
}

// GetRequestTimeout returns the API request timeout as a duration.
func (c *Config) GetRequestTimeout() (time.Duration, error) {
	return time.ParseDuration(c.Server.RequestTimeout)
}

// GetBatchDelay returns the pause between card database batches.
func (c *Config) GetBatchDelay() (time.Duration, error) {
	return time.ParseDuration(c.Scryfall.BatchDelay)
}

// GetHTTPTimeout returns the deck host request timeout.
func (c *Config) GetHTTPTimeout() (time.Duration, error) {
	return time.ParseDuration(c.Sources.HTTPTimeout)
}

// DatabasePath returns the configured sqlite path, defaulting to a file in
// the configuration directory.
func (c *Config) DatabasePath() (string, error) {
	if c.Database.Path != "" {
		return c.Database.Path, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "edh-power.db"), nil
}

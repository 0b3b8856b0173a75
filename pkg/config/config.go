// Package config loads pokedex settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration.
type Config struct {
	// Catalog API settings.
	APIURL    string        `env:"POKEDEX_API_URL" envDefault:"https://pokeapi.co/api/v2"`
	Timeout   time.Duration `env:"POKEDEX_TIMEOUT" envDefault:"10s"`
	RateLimit float64       `env:"POKEDEX_RATE_LIMIT" envDefault:"20"` // requests per second, 0 = unlimited
	RateBurst int           `env:"POKEDEX_RATE_BURST" envDefault:"20"`

	// Storage settings.
	DBDriver string `env:"POKEDEX_DB_DRIVER" envDefault:"duckdb"`
	DBPath   string `env:"POKEDEX_DB_PATH"`

	CacheSize int `env:"POKEDEX_CACHE_SIZE" envDefault:"2048"`

	LogLevel    string `env:"POKEDEX_LOG_LEVEL" envDefault:"info"`
	LogFile     string `env:"POKEDEX_LOG_FILE"`
	MetricsAddr string `env:"POKEDEX_METRICS_ADDR"`
	ExportDir   string `env:"POKEDEX_EXPORT_DIR"`
}

// Validation errors.
var (
	ErrInvalidAPIURL    = errors.New("API URL must not be empty")
	ErrInvalidTimeout   = errors.New("timeout must be positive")
	ErrInvalidRateLimit = errors.New("rate limit must not be negative and burst must be positive")
	ErrInvalidDBDriver  = errors.New("database driver must be one of: duckdb, sqlite")
	ErrInvalidLogLevel  = errors.New("log level must be one of: debug, info, warn, error")
	ErrInvalidCacheSize = errors.New("cache size must be positive")
)

var (
	validDrivers   = []string{"duckdb", "sqlite"}
	validLogLevels = []string{"debug", "info", "warn", "error"}
)

// Load parses the environment, fills path defaults under the user's home
// directory and validates the result.
func Load() (Config, error) {
	cfg, err := Parse()
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse reads the environment and fills in defaults without validating, for
// callers that layer further overrides on top.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	homeDir, _ := os.UserHomeDir()
	cfg.applyDefaults(homeDir)
	return cfg, nil
}

func (c *Config) applyDefaults(homeDir string) {
	dataDir := filepath.Join(homeDir, ".pokedex")
	if c.DBPath == "" {
		c.DBPath = filepath.Join(dataDir, "pokedex.db")
	}
	if c.LogFile == "" {
		c.LogFile = filepath.Join(dataDir, "pokedex.log")
	}
	if c.ExportDir == "" {
		c.ExportDir = filepath.Join(homeDir, "Downloads")
	}
}

func (c Config) Validate() error {
	if c.APIURL == "" {
		return ErrInvalidAPIURL
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.RateLimit < 0 || c.RateBurst <= 0 {
		return ErrInvalidRateLimit
	}
	if !slices.Contains(validDrivers, c.DBDriver) {
		return ErrInvalidDBDriver
	}
	if !slices.Contains(validLogLevels, c.LogLevel) {
		return ErrInvalidLogLevel
	}
	if c.CacheSize <= 0 {
		return ErrInvalidCacheSize
	}
	return nil
}

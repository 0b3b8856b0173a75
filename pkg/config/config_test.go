package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://pokeapi.co/api/v2", cfg.APIURL)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, 20.0, cfg.RateLimit)
	assert.Equal(t, "duckdb", cfg.DBDriver)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, filepath.Join(home, ".pokedex", "pokedex.db"), cfg.DBPath)
	assert.Equal(t, filepath.Join(home, ".pokedex", "pokedex.log"), cfg.LogFile)
	assert.Equal(t, filepath.Join(home, "Downloads"), cfg.ExportDir)
	assert.Equal(t, 2048, cfg.CacheSize)
	assert.Empty(t, cfg.MetricsAddr)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("POKEDEX_API_URL", "http://localhost:9000/api/v2")
	t.Setenv("POKEDEX_TIMEOUT", "3s")
	t.Setenv("POKEDEX_DB_DRIVER", "sqlite")
	t.Setenv("POKEDEX_DB_PATH", "/tmp/pokedex-test.db")
	t.Setenv("POKEDEX_LOG_LEVEL", "debug")
	t.Setenv("POKEDEX_METRICS_ADDR", ":9100")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000/api/v2", cfg.APIURL)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "/tmp/pokedex-test.db", cfg.DBPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, ":9100", cfg.MetricsAddr)
}

func TestLoadParseError(t *testing.T) {
	t.Setenv("POKEDEX_TIMEOUT", "soon")

	_, err := Load()
	assert.ErrorContains(t, err, "parse env:")
}

func TestParseSkipsValidation(t *testing.T) {
	t.Setenv("POKEDEX_DB_DRIVER", "postgres")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.DBDriver)

	_, err = Load()
	assert.ErrorIs(t, err, ErrInvalidDBDriver)
}

func TestValidate(t *testing.T) {
	valid := Config{
		APIURL:    "https://pokeapi.co/api/v2",
		Timeout:   time.Second,
		RateLimit: 10,
		RateBurst: 10,
		DBDriver:  "duckdb",
		LogLevel:  "info",
		CacheSize: 100,
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{"empty url", func(c *Config) { c.APIURL = "" }, ErrInvalidAPIURL},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, ErrInvalidTimeout},
		{"negative rate", func(c *Config) { c.RateLimit = -1 }, ErrInvalidRateLimit},
		{"zero burst", func(c *Config) { c.RateBurst = 0 }, ErrInvalidRateLimit},
		{"unknown driver", func(c *Config) { c.DBDriver = "postgres" }, ErrInvalidDBDriver},
		{"unknown level", func(c *Config) { c.LogLevel = "trace" }, ErrInvalidLogLevel},
		{"zero cache", func(c *Config) { c.CacheSize = 0 }, ErrInvalidCacheSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.modify(&cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.want)
		})
	}
}

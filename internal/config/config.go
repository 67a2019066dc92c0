// Package config holds the typed configuration snapshot read from viper.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/lepinkainen/marquee/internal/omdb"
	"github.com/lepinkainen/marquee/internal/storage"
)

// Config keys. Nested keys map to nested YAML sections in config.yaml.
const (
	KeyAPIKey         = "omdb.api_key"
	KeyBaseURL        = "omdb.base_url"
	KeyRate           = "omdb.rate"
	KeyTimeout        = "omdb.timeout"
	KeyStorageBackend = "storage.backend"
	KeyStoragePath    = "storage.path"
	KeyLogFile        = "log.file"
	KeyLogLevel       = "log.level"
	KeyDebounce       = "search.debounce"
	KeyTrending       = "trending.titles"
)

// EnvAPIKey is the environment variable holding the OMDb API key.
const EnvAPIKey = "OMDB_API_KEY"

// Config is the resolved runtime configuration.
type Config struct {
	OMDb     OMDb
	Storage  Storage
	Log      Log
	Debounce time.Duration
	Trending []string
}

// OMDb configures the catalog client.
type OMDb struct {
	APIKey  string
	BaseURL string
	Rate    float64
	Timeout time.Duration
}

// Storage configures the favorites backend.
type Storage struct {
	Backend string
	Path    string
}

// Log configures logging.
type Log struct {
	File  string
	Level slog.Level
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyAPIKey, "")
	v.SetDefault(KeyBaseURL, omdb.DefaultBaseURL)
	v.SetDefault(KeyRate, omdb.DefaultRequestsPerSecond)
	v.SetDefault(KeyTimeout, omdb.DefaultTimeout.String())
	v.SetDefault(KeyStorageBackend, storage.BackendSQLite)
	v.SetDefault(KeyStoragePath, "")
	v.SetDefault(KeyLogFile, "marquee.log")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyDebounce, "500ms")
	v.SetDefault(KeyTrending, []string{})
}

// BindEnv wires the environment variables marquee reads.
func BindEnv(v *viper.Viper) error {
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v.BindEnv(KeyAPIKey, EnvAPIKey)
}

// Load reads a Config out of v and validates it.
func Load(v *viper.Viper) (*Config, error) {
	level, err := ParseLevel(v.GetString(KeyLogLevel))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		OMDb: OMDb{
			APIKey:  strings.TrimSpace(v.GetString(KeyAPIKey)),
			BaseURL: v.GetString(KeyBaseURL),
			Rate:    v.GetFloat64(KeyRate),
			Timeout: v.GetDuration(KeyTimeout),
		},
		Storage: Storage{
			Backend: strings.ToLower(strings.TrimSpace(v.GetString(KeyStorageBackend))),
			Path:    v.GetString(KeyStoragePath),
		},
		Log: Log{
			File:  v.GetString(KeyLogFile),
			Level: level,
		},
		Debounce: v.GetDuration(KeyDebounce),
		Trending: cleanTitles(v.GetStringSlice(KeyTrending)),
	}

	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = storage.BackendSQLite
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = DefaultStoragePath(cfg.Storage.Backend)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Backend {
	case storage.BackendSQLite, storage.BackendFile:
	default:
		return fmt.Errorf("invalid %s %q (want %q or %q)", KeyStorageBackend, c.Storage.Backend, storage.BackendSQLite, storage.BackendFile)
	}
	if c.OMDb.Rate < 0 {
		return fmt.Errorf("invalid %s %v: must not be negative", KeyRate, c.OMDb.Rate)
	}
	if c.OMDb.Timeout <= 0 {
		return fmt.Errorf("invalid %s %v: must be positive", KeyTimeout, c.OMDb.Timeout)
	}
	if c.Debounce < 0 {
		return fmt.Errorf("invalid %s %v: must not be negative", KeyDebounce, c.Debounce)
	}
	return nil
}

// RequireAPIKey returns an error when no OMDb API key is configured.
func (c *Config) RequireAPIKey() error {
	if c.OMDb.APIKey == "" {
		return fmt.Errorf("OMDb API key is required (set %s or %s in config.yaml)", EnvAPIKey, KeyAPIKey)
	}
	return nil
}

// DefaultStoragePath returns the favorites location used when none is configured.
func DefaultStoragePath(backend string) string {
	if backend == storage.BackendFile {
		return "./marquee.json"
	}
	return "./marquee.db"
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid %s %q: %w", KeyLogLevel, name, err)
	}
	return level, nil
}

func cleanTitles(titles []string) []string {
	out := make([]string, 0, len(titles))
	for _, t := range titles {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

package config

import (
	"encoding/json"
	"fmt"
	"time"
)

// Duration wraps time.Duration for text unmarshaling (YAML, env vars).
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	if parsed < 0 {
		return fmt.Errorf("duration cannot be negative: %s", text)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration().String()), nil
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Duration().String())
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Config is the full client configuration.
type Config struct {
	API     APIConfig     `koanf:"api"`
	Search  SearchConfig  `koanf:"search"`
	Cache   CacheConfig   `koanf:"cache"`
	Log     LogConfig     `koanf:"log"`
	Session SessionConfig `koanf:"session"`
}

// APIConfig configures the REST client.
type APIConfig struct {
	BaseURL  string   `koanf:"base_url"`
	Timeout  Duration `koanf:"timeout"`
	PageSize int      `koanf:"page_size"`
}

// SearchConfig configures search gating.
type SearchConfig struct {
	MinChars int      `koanf:"min_chars"`
	Debounce Duration `koanf:"debounce"`
}

// CacheConfig configures the response cache.
type CacheConfig struct {
	TTL        Duration `koanf:"ttl"`
	MaxEntries int      `koanf:"max_entries"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// SessionConfig configures session persistence.
type SessionConfig struct {
	Path string `koanf:"path"`
}

// Validate checks the assembled configuration.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url must not be empty")
	}
	if c.API.Timeout.Duration() <= 0 {
		return fmt.Errorf("api.timeout must be > 0")
	}
	if c.API.PageSize <= 0 {
		return fmt.Errorf("api.page_size must be > 0")
	}
	if c.Search.MinChars < 1 {
		return fmt.Errorf("search.min_chars must be >= 1")
	}
	if c.Cache.MaxEntries <= 0 {
		return fmt.Errorf("cache.max_entries must be > 0")
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		return fmt.Errorf("log.format must be 'json' or 'console', got %q", c.Log.Format)
	}
	return nil
}

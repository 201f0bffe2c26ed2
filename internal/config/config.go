// Package config loads CLI configuration from a TOML file and environment
// variables. Environment variables override file values.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/usestring/chzzk-go/internal/logging"
	"github.com/usestring/chzzk-go/pkg/chzzk"
)

// Defaults
const (
	DefaultHTTPTimeoutMS       = 10000
	DefaultWatchIntervalMS     = 10000
	DefaultWatchMinIntervalMS  = 2000
	DefaultStatusConcurrency   = 4
	DefaultUserAgent           = "chzzk-go"
	defaultConfigRelPath       = "chzzk/config.toml"
	environmentPrefixForCookie = "CHZZK_"
)

// Config holds all configuration for the chzzk CLI.
type Config struct {
	API     API        `toml:"api" json:"api"`
	Auth    chzzk.Auth `toml:"auth" json:"auth"`
	Watch   Watch      `toml:"watch" json:"watch"`
	Logging Logging    `toml:"logging" json:"logging"`
}

// API configures the HTTP client.
type API struct {
	BaseURL     string `toml:"base_url" json:"base_url"`       // CHZZK_BASE_URL, default https://api.chzzk.naver.com
	TimeoutMS   int    `toml:"timeout_ms" json:"timeout_ms"`   // CHZZK_HTTP_TIMEOUT_MS, default 10000
	UserAgent   string `toml:"user_agent" json:"user_agent"`   // CHZZK_USER_AGENT, default "chzzk-go"
	Concurrency int    `toml:"concurrency" json:"concurrency"` // CHZZK_CONCURRENCY, default 4 parallel lookups
}

// Watch configures the live status poller.
type Watch struct {
	DefaultIntervalMS int `toml:"default_interval_ms" json:"default_interval_ms"` // CHZZK_WATCH_INTERVAL_MS, used when the server sends no call period
	MinIntervalMS     int `toml:"min_interval_ms" json:"min_interval_ms"`         // CHZZK_WATCH_MIN_INTERVAL_MS, floor for the server's call period
}

// Logging mirrors logging.Config in file form.
type Logging struct {
	Level      string `toml:"level" json:"level"`               // LOG_LEVEL
	Format     string `toml:"format" json:"format"`             // LOG_FORMAT
	File       string `toml:"file" json:"file"`                 // LOG_FILE
	MaxSizeMB  int    `toml:"max_size_mb" json:"max_size_mb"`   // LOG_MAX_SIZE_MB
	MaxBackups int    `toml:"max_backups" json:"max_backups"`   // LOG_MAX_BACKUPS
	MaxAgeDays int    `toml:"max_age_days" json:"max_age_days"` // LOG_MAX_AGE_DAYS
	Compress   bool   `toml:"compress" json:"compress"`         // LOG_COMPRESS
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() Config {
	lc := logging.DefaultConfig()
	return Config{
		API: API{
			BaseURL:     chzzk.DefaultBaseURL,
			TimeoutMS:   DefaultHTTPTimeoutMS,
			UserAgent:   DefaultUserAgent,
			Concurrency: DefaultStatusConcurrency,
		},
		Watch: Watch{
			DefaultIntervalMS: DefaultWatchIntervalMS,
			MinIntervalMS:     DefaultWatchMinIntervalMS,
		},
		Logging: Logging{
			Level:      lc.Level,
			Format:     lc.Format,
			File:       lc.FilePath,
			MaxSizeMB:  lc.MaxSizeMB,
			MaxBackups: lc.MaxBackups,
			MaxAgeDays: lc.MaxAgeDays,
			Compress:   lc.Compress,
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/chzzk/config.toml, falling back to
// the OS user config directory.
func DefaultPath() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, defaultConfigRelPath), nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving config dir: %w", err)
	}
	return filepath.Join(dir, defaultConfigRelPath), nil
}

// Load reads the config file at path, applies environment overrides and
// validates the result. An empty path means DefaultPath, which may be
// absent; an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	file, err := os.Open(path)
	switch {
	case err == nil:
		defer file.Close()
		if err := toml.NewDecoder(file).DisallowUnknownFields().Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("open config: %w", err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnv overrides file values with environment variables.
func (c *Config) applyEnv() {
	c.API.BaseURL = getEnvString("CHZZK_BASE_URL", c.API.BaseURL)
	c.API.TimeoutMS = getEnvInt("CHZZK_HTTP_TIMEOUT_MS", c.API.TimeoutMS)
	c.API.UserAgent = getEnvString("CHZZK_USER_AGENT", c.API.UserAgent)
	c.API.Concurrency = getEnvInt("CHZZK_CONCURRENCY", c.API.Concurrency)

	c.Auth.NIDSes = getEnvString(environmentPrefixForCookie+chzzk.CookieNIDSes, c.Auth.NIDSes)
	c.Auth.NIDAut = getEnvString(environmentPrefixForCookie+chzzk.CookieNIDAut, c.Auth.NIDAut)
	c.Auth.NIDJkl = getEnvString(environmentPrefixForCookie+chzzk.CookieNIDJkl, c.Auth.NIDJkl)

	c.Watch.DefaultIntervalMS = getEnvInt("CHZZK_WATCH_INTERVAL_MS", c.Watch.DefaultIntervalMS)
	c.Watch.MinIntervalMS = getEnvInt("CHZZK_WATCH_MIN_INTERVAL_MS", c.Watch.MinIntervalMS)

	c.Logging.Level = getEnvString("LOG_LEVEL", c.Logging.Level)
	c.Logging.Format = getEnvString("LOG_FORMAT", c.Logging.Format)
	c.Logging.File = getEnvString("LOG_FILE", c.Logging.File)
	c.Logging.MaxSizeMB = getEnvInt("LOG_MAX_SIZE_MB", c.Logging.MaxSizeMB)
	c.Logging.MaxBackups = getEnvInt("LOG_MAX_BACKUPS", c.Logging.MaxBackups)
	c.Logging.MaxAgeDays = getEnvInt("LOG_MAX_AGE_DAYS", c.Logging.MaxAgeDays)
	c.Logging.Compress = getEnvBool("LOG_COMPRESS", c.Logging.Compress)
}

// Validate rejects values the CLI cannot run with.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("api.base_url must not be empty")
	}
	if c.API.TimeoutMS <= 0 {
		return fmt.Errorf("api.timeout_ms must be positive, got %d", c.API.TimeoutMS)
	}
	if c.API.Concurrency <= 0 {
		return fmt.Errorf("api.concurrency must be positive, got %d", c.API.Concurrency)
	}
	if c.Watch.MinIntervalMS <= 0 || c.Watch.DefaultIntervalMS <= 0 {
		return errors.New("watch intervals must be positive")
	}

	set := 0
	for _, v := range []string{c.Auth.NIDSes, c.Auth.NIDAut, c.Auth.NIDJkl} {
		if v != "" {
			set++
		}
	}
	if set != 0 && set != 3 {
		return errors.New("auth requires all of nid_ses, nid_aut and nid_jkl")
	}
	return nil
}

// HTTPTimeout returns the HTTP client timeout.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.API.TimeoutMS) * time.Millisecond
}

// WatchInterval returns how long to wait before the next poll given the
// server's requested call period. Zero falls back to the default interval;
// anything below the minimum is raised to it.
func (c *Config) WatchInterval(callPeriod time.Duration) time.Duration {
	interval := callPeriod
	if interval <= 0 {
		interval = time.Duration(c.Watch.DefaultIntervalMS) * time.Millisecond
	}
	if floor := time.Duration(c.Watch.MinIntervalMS) * time.Millisecond; interval < floor {
		interval = floor
	}
	return interval
}

// AuthOrNil returns the configured cookies, or nil when none are set.
func (c *Config) AuthOrNil() *chzzk.Auth {
	if c.Auth.NIDSes == "" {
		return nil
	}
	auth := c.Auth
	return &auth
}

// LoggingConfig converts the logging section for logging.Setup.
func (c *Config) LoggingConfig() logging.Config {
	return logging.Config{
		Level:      c.Logging.Level,
		Format:     c.Logging.Format,
		FilePath:   c.Logging.File,
		MaxSizeMB:  c.Logging.MaxSizeMB,
		MaxBackups: c.Logging.MaxBackups,
		MaxAgeDays: c.Logging.MaxAgeDays,
		Compress:   c.Logging.Compress,
	}
}

// Redacted returns a copy safe to print, with cookie values masked.
func (c Config) Redacted() Config {
	out := c
	for _, v := range []*string{&out.Auth.NIDSes, &out.Auth.NIDAut, &out.Auth.NIDJkl} {
		if *v != "" {
			*v = "********"
		}
	}
	return out
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		switch v {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return defaultVal
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

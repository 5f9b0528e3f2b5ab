package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

const (
	defaultListen             = "127.0.0.1:8080"
	defaultLogLevel           = "info"
	defaultSessionIdleMinutes = 30
	defaultSessionSweep       = "*/5 * * * *"
)

// BasicAuthConfig holds HTTP Basic Auth credentials for the Web UI/API.
type BasicAuthConfig struct {
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
}

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address for the Web UI and API.
	Listen string `yaml:"listen" json:"listen"`

	// Locale pins the locale tag (e.g. "en-US") used for every picker that
	// does not request its own. Empty means: Accept-Language, then the
	// process environment (LC_ALL, LC_MESSAGES, LANGUAGE, LANG), then en-US.
	Locale string `yaml:"locale" json:"locale"`

	// WeekdayLabels, if set, replaces the header labels of every picker.
	// Exactly seven entries in display order; anything else is dropped.
	WeekdayLabels []string `yaml:"weekday_labels,omitempty" json:"weekday_labels,omitempty"`

	// LogLevel is one of "debug", "info", "error".
	LogLevel string `yaml:"log_level" json:"log_level"`

	// SessionIdleMinutes is how long an untouched picker is kept in memory.
	SessionIdleMinutes int `yaml:"session_idle_minutes" json:"session_idle_minutes"`

	// SessionSweep is a cron-style schedule (e.g. "*/5 * * * *") for
	// evicting idle pickers.
	SessionSweep string `yaml:"session_sweep" json:"session_sweep"`

	// BasicAuth, if non-nil, enables HTTP Basic Authentication on all endpoints
	// except /health.
	BasicAuth *BasicAuthConfig `yaml:"basic_auth,omitempty" json:"basic_auth,omitempty"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen:             defaultListen,
		LogLevel:           defaultLogLevel,
		SessionIdleMinutes: defaultSessionIdleMinutes,
		SessionSweep:       defaultSessionSweep,
	}
}

// SessionIdle returns SessionIdleMinutes as a duration.
func (c *Config) SessionIdle() time.Duration {
	return time.Duration(c.SessionIdleMinutes) * time.Minute
}

// Labels returns WeekdayLabels as an array when exactly seven are configured.
func (c *Config) Labels() ([7]string, bool) {
	var out [7]string
	if len(c.WeekdayLabels) != len(out) {
		return out, false
	}
	copy(out[:], c.WeekdayLabels)
	return out, true
}

// Normalize fills in missing/zero values with sensible defaults so that
// partially-filled configs still behave correctly.
func (c *Config) Normalize() {
	if c.Listen == "" {
		c.Listen = defaultListen
	}
	switch c.LogLevel {
	case "debug", "info", "error":
	default:
		c.LogLevel = defaultLogLevel
	}
	if c.SessionIdleMinutes <= 0 {
		c.SessionIdleMinutes = defaultSessionIdleMinutes
	}
	if _, err := cron.ParseStandard(c.SessionSweep); err != nil {
		c.SessionSweep = defaultSessionSweep
	}
	if c.WeekdayLabels != nil && len(c.WeekdayLabels) != 7 {
		c.WeekdayLabels = nil
	}
	if c.BasicAuth != nil && (c.BasicAuth.Username == "" || c.BasicAuth.Password == "") {
		c.BasicAuth = nil
	}
}

// Load loads configuration from the given YAML path.
//
// Behavior:
//   - If the file does not exist, a default config is written there with
//     0600 perms (creating parent directories) and returned.
//   - Otherwise the YAML is read, unmarshalled and normalized.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				// Even if save fails, return cfg with error so caller can decide.
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes cfg to path atomically (temp file + rename) with 0600 perms,
// creating the parent directory (0700) when needed.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".rangecal-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}

// Save is a convenience method delegating to the package-level Save.
func (c *Config) Save(path string) error {
	return Save(path, c)
}

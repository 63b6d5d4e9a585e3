package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// DatabaseFileName is the SQLite file created inside StateDir.
const DatabaseFileName = "radiologix.db"

// Config holds runtime settings for the Radiologix CLI.
//
// Units: RequestTimeout and OnlineCheckInterval are durations, MaxUploadSize
// is in bytes.
type Config struct {
	ServerBaseURL       string
	StateDir            string
	RequestTimeout      time.Duration
	OnlineCheckInterval time.Duration
	MaxUploadSize       int64
	LogLevel            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:8001"
	c.StateDir = "~/.radiologix"
	c.RequestTimeout = 30 * time.Second
	c.OnlineCheckInterval = 5 * time.Second
	c.MaxUploadSize = 10 << 20
	c.LogLevel = "warn"
}

// Validate rejects values the client cannot run with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ServerBaseURL) == "" {
		return fmt.Errorf("server base url is empty")
	}
	if strings.TrimSpace(c.StateDir) == "" {
		return fmt.Errorf("state dir is empty")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.OnlineCheckInterval <= 0 {
		return fmt.Errorf("online check interval must be positive, got %s", c.OnlineCheckInterval)
	}
	if c.MaxUploadSize <= 0 {
		return fmt.Errorf("max upload size must be positive, got %d", c.MaxUploadSize)
	}
	return nil
}

// DatabasePath is the location of the state database inside dir, which is
// normally StateDir after home expansion.
func (c *Config) DatabasePath(dir string) string {
	return filepath.Join(dir, DatabaseFileName)
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones. Malformed input panics.
func LoadConfig(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}

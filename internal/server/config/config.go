// Package config handles configuration for the development backend,
// including defaults, JSON overlay, and command-line flags.
package config

import (
	"fmt"
	"time"
)

// Config holds runtime settings for the development backend.
//
// Fields:
//   - Addr: HTTP bind address.
//   - SecretKey: HMAC secret for signing JWTs (HS256). The default is for local use only.
//   - AccessTokenTTL: lifetime of issued access tokens.
//   - MaxBodyBytes: request body cap; scan uploads carry base64 images.
//   - LogLevel: debug|info|warn|error.
//   - AuthRateLimit: login/register requests per minute per client address; 0 disables.
//   - RedisAddr: when set, rate limit counters live in Redis instead of memory.
type Config struct {
	Addr           string
	SecretKey      string
	AccessTokenTTL time.Duration
	MaxBodyBytes   int64
	LogLevel       string
	AuthRateLimit  int
	RedisAddr      string
	RedisPassword  string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.Addr = ":8001"
	c.SecretKey = "radiologix-dev-secret"
	c.AccessTokenTTL = 30 * time.Minute
	c.MaxBodyBytes = 20 << 20
	c.LogLevel = "info"
	c.AuthRateLimit = 30
}

func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("listen address is empty")
	}
	if c.SecretKey == "" {
		return fmt.Errorf("secret key is empty")
	}
	if c.AccessTokenTTL <= 0 {
		return fmt.Errorf("access token ttl must be positive, got %s", c.AccessTokenTTL)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("max body bytes must be positive, got %d", c.MaxBodyBytes)
	}
	if c.AuthRateLimit < 0 {
		return fmt.Errorf("auth rate limit must not be negative, got %d", c.AuthRateLimit)
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}

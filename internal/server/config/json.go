package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/radiologix/internal/flagx"
	"github.com/dmitrijs2005/radiologix/internal/timex"
)

// JsonConfig is the on-disk shape; durations go through timex.Duration.
type JsonConfig struct {
	Addr           string         `json:"addr"`
	SecretKey      string         `json:"secret_key"`
	AccessTokenTTL timex.Duration `json:"access_token_ttl"`
	MaxBodyBytes   int64          `json:"max_body_bytes"`
	LogLevel       string         `json:"log_level"`
	AuthRateLimit  *int           `json:"auth_rate_limit"`
	RedisAddr      string         `json:"redis_addr"`
	RedisPassword  string         `json:"redis_password"`
}

// parseJson overlays config with the file named by -c or -config. Fields the
// file leaves out are kept. Read or decode errors panic.
func parseJson(config *Config, args []string) {
	path := flagx.ConfigFile(args)
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.Addr != "" {
		config.Addr = c.Addr
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.AccessTokenTTL.Duration != 0 {
		config.AccessTokenTTL = c.AccessTokenTTL.Duration
	}
	if c.MaxBodyBytes != 0 {
		config.MaxBodyBytes = c.MaxBodyBytes
	}
	if c.LogLevel != "" {
		config.LogLevel = c.LogLevel
	}
	if c.AuthRateLimit != nil {
		config.AuthRateLimit = *c.AuthRateLimit
	}
	if c.RedisAddr != "" {
		config.RedisAddr = c.RedisAddr
	}
	if c.RedisPassword != "" {
		config.RedisPassword = c.RedisPassword
	}
}

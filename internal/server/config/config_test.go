package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":8001", c.Addr)
	assert.Equal(t, "radiologix-dev-secret", c.SecretKey)
	assert.Equal(t, 30*time.Minute, c.AccessTokenTTL)
	assert.Equal(t, int64(20<<20), c.MaxBodyBytes)
	assert.Equal(t, 30, c.AuthRateLimit)
	assert.Empty(t, c.RedisAddr)
	assert.NoError(t, c.Validate())
}

func TestLoadConfig_Precedence(t *testing.T) {
	path := writeTempJSON(t, "", "", map[string]any{
		"addr":             ":9100",
		"secret_key":       "from-json",
		"access_token_ttl": "5m",
		"auth_rate_limit":  5,
	})

	c := LoadConfig([]string{"-config", path, "-k", "from-flag", "-l", "debug", "-redis", "localhost:6379"})
	require.NotNil(t, c)

	want := &Config{
		Addr:           ":9100",
		SecretKey:      "from-flag",
		AccessTokenTTL: 5 * time.Minute,
		MaxBodyBytes:   20 << 20,
		LogLevel:       "debug",
		AuthRateLimit:  5,
		RedisAddr:      "localhost:6379",
	}
	assert.Empty(t, cmp.Diff(want, c))
}

func TestParseFlags(t *testing.T) {
	c := &Config{}
	c.LoadDefaults()
	parseFlags(c, []string{"-a", ":7000", "-t", "1", "-b", "1024", "-r", "0", "-x", "ignored"})

	assert.Equal(t, ":7000", c.Addr)
	assert.Equal(t, time.Minute, c.AccessTokenTTL)
	assert.Equal(t, int64(1024), c.MaxBodyBytes)
	assert.Equal(t, 0, c.AuthRateLimit)

	require.Panics(t, func() { parseFlags(c, []string{"-t", "soon"}) })
}

func TestValidate(t *testing.T) {
	for name, mutate := range map[string]func(*Config){
		"addr":   func(c *Config) { c.Addr = "" },
		"secret": func(c *Config) { c.SecretKey = "" },
		"ttl":    func(c *Config) { c.AccessTokenTTL = 0 },
		"body":   func(c *Config) { c.MaxBodyBytes = -1 },
		"rate":   func(c *Config) { c.AuthRateLimit = -1 },
	} {
		t.Run(name, func(t *testing.T) {
			c := &Config{}
			c.LoadDefaults()
			mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}

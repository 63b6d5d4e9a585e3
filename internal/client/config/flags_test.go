package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"-a", "http://127.0.0.1:9090", "-s", "/tmp/rx", "-t", "7", "-i", "10", "-m", "2048", "-l", "debug"},
			expected: &Config{
				ServerBaseURL:       "http://127.0.0.1:9090",
				StateDir:            "/tmp/rx",
				RequestTimeout:      7 * time.Second,
				OnlineCheckInterval: 10 * time.Second,
				MaxUploadSize:       2048,
				LogLevel:            "debug",
			},
		},
		{
			name: "unknown flags are ignored",
			args: []string{"-c", "cfg.json", "-x", "1", "-i", "2"},
			expected: func() *Config {
				c := defaults()
				c.OnlineCheckInterval = 2 * time.Second
				return c
			}(),
		},
		{name: "bad interval", args: []string{"-i", "abc"}, expectPanic: true},
		{name: "bad size", args: []string{"-m", "ten"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(cfg, tt.args) })
				return
			}
			require.NotPanics(t, func() { parseFlags(cfg, tt.args) })
			assert.Empty(t, cmp.Diff(tt.expected, cfg))
		})
	}
}

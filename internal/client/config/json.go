package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/radiologix/internal/flagx"
	"github.com/dmitrijs2005/radiologix/internal/timex"
)

// JsonConfig is the on-disk shape. Durations accept "30s" or integer
// nanoseconds via timex.Duration.
type JsonConfig struct {
	ServerBaseURL       string         `json:"server_base_url"`
	StateDir            string         `json:"state_dir"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	MaxUploadSize       int64          `json:"max_upload_size"`
	LogLevel            string         `json:"log_level"`
}

// parseJson overlays Config with the JSON file named by -c or -config.
// Fields absent from the file keep their current values. Read and unmarshal
// errors panic.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigFile(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.StateDir != "" {
		cfg.StateDir = jc.StateDir
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.OnlineCheckInterval.Duration != 0 {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.MaxUploadSize != 0 {
		cfg.MaxUploadSize = jc.MaxUploadSize
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}

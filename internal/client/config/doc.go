// Package config loads runtime configuration for the Radiologix CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   backend base url (default http://localhost:8001)
//	-s string   state directory (default ~/.radiologix)
//	-t int      request timeout (seconds)
//	-i int      online status check interval (seconds)
//	-m int      max upload size (bytes, default 10 MiB)
//	-l string   log level: debug|info|warn|error
//
// # JSON schema
//
//	{
//	  "server_base_url": "http://localhost:8001",
//	  "state_dir": "~/.radiologix",
//	  "request_timeout": "30s",
//	  "online_check_interval": "5s",
//	  "max_upload_size": 10485760,
//	  "log_level": "info"
//	}
//
// Environment variables are not read.
package config

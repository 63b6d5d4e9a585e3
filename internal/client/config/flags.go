package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/radiologix/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
//	-a string   backend base url
//	-s string   state directory
//	-t int      request timeout (seconds)
//	-i int      online check interval (seconds)
//	-m int      max upload size (bytes)
//	-l string   log level: debug|info|warn|error
//
// args are filtered with flagx.FilterArgs so that -c/-config and anything
// meant for other components is ignored.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-s", "-t", "-i", "-m", "-l"})

	fs := flag.NewFlagSet("radiologix", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "backend base url")
	fs.StringVar(&cfg.StateDir, "s", cfg.StateDir, "directory for the local state database")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.Int64Var(&cfg.MaxUploadSize, "m", cfg.MaxUploadSize, "max upload size (in bytes)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
}

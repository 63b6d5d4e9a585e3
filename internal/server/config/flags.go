package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/radiologix/internal/flagx"
)

// parseFlags populates server Config fields from command-line flags.
//
//	-a string   HTTP bind address (e.g. ":8001")
//	-k string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-b int      max request body, bytes
//	-l string   log level
//	-r int      login/register requests per minute per client (0 disables)
//	-redis string  Redis address for shared rate limit counters
func parseFlags(config *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-k", "-t", "-b", "-l", "-r", "-redis"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.Addr, "a", config.Addr, "address and port to run server")
	fs.StringVar(&config.SecretKey, "k", config.SecretKey, "secret key")
	accessTokenTTL := fs.Int("t", int(config.AccessTokenTTL.Minutes()), "access token validity (in minutes)")
	fs.Int64Var(&config.MaxBodyBytes, "b", config.MaxBodyBytes, "max request body (in bytes)")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.IntVar(&config.AuthRateLimit, "r", config.AuthRateLimit, "auth requests per minute per client")
	fs.StringVar(&config.RedisAddr, "redis", config.RedisAddr, "redis address for rate limiting")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenTTL = time.Duration(*accessTokenTTL) * time.Minute
}

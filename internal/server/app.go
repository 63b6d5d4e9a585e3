// Package server wires the development backend together: configuration,
// in-memory repositories, services, and the HTTP listener.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/radiologix/internal/logging"
	"github.com/dmitrijs2005/radiologix/internal/server/config"
	"github.com/dmitrijs2005/radiologix/internal/server/scans"
	"github.com/dmitrijs2005/radiologix/internal/server/shared/db"
	"github.com/dmitrijs2005/radiologix/internal/server/users"

	hs "github.com/dmitrijs2005/radiologix/internal/server/http"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	userService *users.Service
	scanService *scans.Service
}

func NewApp(c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := logging.New(os.Stdout, level, "json")

	rm := db.NewInMemoryRepositoryManager()
	us := users.NewService(rm.Users(), c.SecretKey, c.AccessTokenTTL)
	ss := scans.NewService(rm.Scans())

	return &App{config: c, logger: logger, userService: us, scanService: ss}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) newRateLimiter(ctx context.Context) (hs.RateLimiter, error) {
	if app.config.RedisAddr == "" {
		return hs.NewMemoryRateLimiter(), nil
	}
	l, err := hs.NewRedisRateLimiter(ctx, app.config.RedisAddr, app.config.RedisPassword, app.logger)
	if err != nil {
		return nil, fmt.Errorf("redis %s: %w", app.config.RedisAddr, err)
	}
	app.logger.Info(ctx, "rate limit counters in redis", "addr", app.config.RedisAddr)
	return l, nil
}

// Run blocks until the listener fails or a termination signal arrives.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(cancelFunc)

	limiter, err := app.newRateLimiter(ctx)
	if err != nil {
		app.logger.Error(ctx, err.Error())
		return err
	}
	defer limiter.Close()

	s := hs.NewServer(app.userService, app.scanService, app.logger, app.config.MaxBodyBytes,
		hs.WithRateLimiter(limiter, app.config.AuthRateLimit, time.Minute))
	if err := s.Run(ctx, app.config.Addr); err != nil {
		app.logger.Error(ctx, err.Error())
		return err
	}
	return nil
}

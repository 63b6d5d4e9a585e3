// Package http exposes the development backend over a chi router.
package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/radiologix/internal/common"
	"github.com/dmitrijs2005/radiologix/internal/logging"
	"github.com/dmitrijs2005/radiologix/internal/server/scans"
	"github.com/dmitrijs2005/radiologix/internal/server/users"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	users         *users.Service
	scans         *scans.Service
	logger        logging.Logger
	maxBodyBytes  int64
	metrics       *metrics
	limiter       RateLimiter
	authRateLimit int
	rateWindow    time.Duration
	now           func() time.Time
}

type Option func(*Server)

// WithRateLimiter throttles login and registration to limit requests per
// window for each client address.
func WithRateLimiter(l RateLimiter, limit int, window time.Duration) Option {
	return func(s *Server) {
		s.limiter = l
		s.authRateLimit = limit
		s.rateWindow = window
	}
}

func NewServer(us *users.Service, ss *scans.Service, logger logging.Logger, maxBodyBytes int64, opts ...Option) *Server {
	s := &Server{
		users:        us,
		scans:        ss,
		logger:       logger,
		maxBodyBytes: maxBodyBytes,
		metrics:      newMetrics(),
		rateWindow:   time.Minute,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.observe)
	r.Method(http.MethodGet, "/metrics", s.metrics.handler())

	r.Route(common.APIPrefix, func(r chi.Router) {
		r.Use(s.limitBody)
		r.Get("/", s.handleRoot)
		r.Get("/health", s.handleHealth)
		r.Post("/auth/register", s.rateLimit("register", s.handleRegister))
		r.Post("/auth/login", s.rateLimit("login", s.handleLogin))

		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)
			r.Get("/auth/me", s.handleMe)
			r.Post("/scans", s.handleCreateScan)
			r.Get("/scans", s.handleListScans)
			r.Get("/scans/{id}", s.handleGetScan)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "HTTP server started", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info(ctx, "HTTP server stopped")
	return nil
}

package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/radiologix/internal/client/client"
	"github.com/dmitrijs2005/radiologix/internal/client/config"
	"github.com/dmitrijs2005/radiologix/internal/client/models"
	"github.com/dmitrijs2005/radiologix/internal/client/services"
	"github.com/dmitrijs2005/radiologix/internal/filex"
	"github.com/dmitrijs2005/radiologix/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

const healthCheckTimeout = 3 * time.Second

type sessionService interface {
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, name, email, password string) error
	Logout(ctx context.Context) error
	Refresh(ctx context.Context) error
	Restore(ctx context.Context)
	Snapshot() services.SessionSnapshot
	IsAuthenticated() bool
	WaitReady(ctx context.Context) error
}

type uploadService interface {
	SelectFile(path string) error
	Submit(ctx context.Context, scanType models.ScanType) (*models.ScanReport, error)
	Reset() error
	State() services.UploadState
	SelectedFile() string
	MaxUploadSize() int64
}

type scanService interface {
	List(ctx context.Context) ([]models.ScanReport, error)
	Get(ctx context.Context, id string) (*models.ScanReport, error)
}

type healthChecker interface {
	Health(ctx context.Context) error
}

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	session sessionService
	upload  uploadService
	scans   scanService
	health  healthChecker
	reader  *bufio.Reader
	out     io.Writer

	mu   sync.Mutex
	mode Mode
}

// NewApp opens the state database and wires the API client and services.
// The stored session is not restored until Run.
func NewApp(c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := logging.New(os.Stderr, level, "text")

	ctx := context.Background()

	dir, err := filex.EnsureDir(c.StateDir)
	if err != nil {
		return nil, fmt.Errorf("state dir: %w", err)
	}

	db, err := client.InitDatabase(ctx, c.DatabasePath(dir))
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	api, err := client.NewAPIClient(c.ServerBaseURL,
		client.WithTimeout(c.RequestTimeout),
		client.WithLogger(logger),
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	session := services.NewSessionStore(api, services.NewTokenStore(db), logger)
	upload := services.NewUploadWorkflow(api, session, c.MaxUploadSize, logger)
	scans := services.NewScanService(api, session)

	return &App{
		config:  c,
		logger:  logger,
		db:      db,
		session: session,
		upload:  upload,
		scans:   scans,
		health:  api,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()
	if changed {
		a.logger.Info(context.Background(), "connectivity changed", "mode", mode)
	}
}

func (a *App) getMode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

// Run restores the stored session in the background, starts the
// connectivity watcher and blocks in the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.Close()

	go a.session.Restore(ctx)
	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	a.Root(ctx)
}

func (a *App) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn(context.Background(), "closing database", "error", err)
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()
	if err := a.health.Health(ctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

// StartOnlineStatusWatcher polls the health endpoint every interval until
// ctx is done. The first probe runs immediately.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	a.checkOnline(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/radiologix/internal/client/client"
	"github.com/dmitrijs2005/radiologix/internal/client/models"
	"github.com/dmitrijs2005/radiologix/internal/logging"
)

type UploadState int

const (
	UploadIdle UploadState = iota
	UploadFileSelected
	UploadUploading
	UploadSucceeded
	UploadFailed
)

func (s UploadState) String() string {
	switch s {
	case UploadIdle:
		return "idle"
	case UploadFileSelected:
		return "file selected"
	case UploadUploading:
		return "uploading"
	case UploadSucceeded:
		return "succeeded"
	case UploadFailed:
		return "failed"
	default:
		return fmt.Sprintf("UploadState(%d)", int(s))
	}
}

// Session is the read side of the session used by the upload and scan services.
type Session interface {
	Credential() client.Credential
	User() *models.User
}

// UploadWorkflow drives one scan upload at a time:
//
//	Idle -> FileSelected -> Uploading -> Succeeded | Failed
//
// Submit is rejected locally, without a network call, when no file is
// selected or the session has no user. A credential rejected by the backend
// is invalidated in the session.
type UploadWorkflow struct {
	api     client.Client
	session SessionInvalidator
	log     logging.Logger
	maxSize int64
	encode  func(path string, maxSize int64) (string, error)

	mu       sync.Mutex
	state    UploadState
	file     string
	report   *models.ScanReport
	err      error
	inFlight bool
}

func NewUploadWorkflow(api client.Client, session SessionInvalidator, maxSize int64, log logging.Logger) *UploadWorkflow {
	if log == nil {
		log = logging.Nop()
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxUploadSize
	}
	return &UploadWorkflow{
		api:     api,
		session: session,
		log:     log.With("component", "upload"),
		maxSize: maxSize,
		encode:  EncodeFile,
	}
}

// SelectFile records path and clears any previous error or report.
func (w *UploadWorkflow) SelectFile(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.inFlight {
		return ErrUploadInProgress
	}
	w.file = path
	w.err = nil
	w.report = nil
	w.state = UploadFileSelected
	return nil
}

// Submit encodes the selected file and posts it as scanType. A cancelled
// ctx fails the attempt with ctx.Err() and any late response is dropped.
func (w *UploadWorkflow) Submit(ctx context.Context, scanType models.ScanType) (*models.ScanReport, error) {
	w.mu.Lock()
	if w.inFlight {
		w.mu.Unlock()
		return nil, ErrUploadInProgress
	}
	if w.file == "" {
		err := w.failLocked(ErrNoFileSelected)
		w.mu.Unlock()
		return nil, err
	}
	if w.session.User() == nil {
		err := w.failLocked(ErrNotAuthenticated)
		w.mu.Unlock()
		return nil, err
	}
	if !scanType.Valid() {
		err := w.failLocked(fmt.Errorf("%w: %q", models.ErrUnknownScanType, scanType))
		w.mu.Unlock()
		return nil, err
	}
	path := w.file
	cred := w.session.Credential()
	w.state = UploadUploading
	w.err = nil
	w.report = nil
	w.inFlight = true
	w.mu.Unlock()

	log := w.log.With("scan_type", scanType, "file", path)

	data, err := w.encode(path, w.maxSize)
	if err != nil {
		log.Info(ctx, "file rejected", "error", err)
		return nil, w.finish(nil, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, w.finish(nil, err)
	}

	report, err := w.api.SubmitScan(ctx, cred, scanType, data)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, w.finish(nil, ctxErr)
	}
	if errors.Is(err, client.ErrUnauthorized) {
		log.Info(ctx, "credential rejected on upload")
		w.session.Invalidate(ctx, cred)
		return nil, w.finish(nil, fmt.Errorf("%w: %w: %w", ErrUploadFailed, ErrNotAuthenticated, err))
	}
	if err != nil {
		log.Warn(ctx, "upload failed", "error", err)
		return nil, w.finish(nil, fmt.Errorf("%w: %w", ErrUploadFailed, err))
	}
	log.Info(ctx, "scan uploaded", "scan_id", report.ID)
	return report, w.finish(report, nil)
}

// Reset returns the workflow to Idle. It is refused while uploading.
func (w *UploadWorkflow) Reset() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.inFlight {
		return ErrUploadInProgress
	}
	w.state = UploadIdle
	w.file = ""
	w.report = nil
	w.err = nil
	return nil
}

func (w *UploadWorkflow) State() UploadState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

func (w *UploadWorkflow) Report() *models.ScanReport {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.report
}

func (w *UploadWorkflow) LastError() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

func (w *UploadWorkflow) SelectedFile() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file
}

// MaxUploadSize is the byte limit applied to selected files.
func (w *UploadWorkflow) MaxUploadSize() int64 {
	return w.maxSize
}

func (w *UploadWorkflow) failLocked(err error) error {
	w.state = UploadFailed
	w.err = err
	w.report = nil
	return err
}

func (w *UploadWorkflow) finish(report *models.ScanReport, err error) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.inFlight = false
	if err != nil {
		return w.failLocked(err)
	}
	w.state = UploadSucceeded
	w.report = report
	w.file = ""
	return nil
}

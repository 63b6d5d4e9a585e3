package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/dmitrijs2005/radiologix/internal/client/config"
	"github.com/dmitrijs2005/radiologix/internal/client/models"
	"github.com/dmitrijs2005/radiologix/internal/client/services"
	"github.com/dmitrijs2005/radiologix/internal/logging"
)

type fakeSession struct {
	user    *models.User
	loading bool

	loginEmail, loginPass          string
	regName, regEmail, regPass     string
	loginErr, regErr, logoutErr    error
	refreshErr, waitErr            error
	loggedOut, restored, refreshed bool
}

func (f *fakeSession) Login(_ context.Context, email, password string) error {
	f.loginEmail, f.loginPass = email, password
	if f.loginErr != nil {
		return f.loginErr
	}
	f.user = &models.User{ID: "u1", Name: "Ann", Email: email}
	return nil
}

func (f *fakeSession) Register(_ context.Context, name, email, password string) error {
	f.regName, f.regEmail, f.regPass = name, email, password
	return f.regErr
}

func (f *fakeSession) Logout(context.Context) error {
	f.loggedOut = true
	f.user = nil
	return f.logoutErr
}

func (f *fakeSession) Refresh(context.Context) error {
	f.refreshed = true
	if f.refreshErr != nil {
		f.user = nil
	}
	return f.refreshErr
}

func (f *fakeSession) Restore(context.Context) { f.restored = true }

func (f *fakeSession) Snapshot() services.SessionSnapshot {
	return services.SessionSnapshot{User: f.user, IsLoading: f.loading}
}

func (f *fakeSession) IsAuthenticated() bool { return f.user != nil }

func (f *fakeSession) WaitReady(ctx context.Context) error {
	if f.waitErr != nil {
		return f.waitErr
	}
	return ctx.Err()
}

type fakeUpload struct {
	file      string
	state     services.UploadState
	selectErr error
	submitErr error
	report    *models.ScanReport
	submitted []models.ScanType
	resets    int
}

func (f *fakeUpload) SelectFile(path string) error {
	if f.selectErr != nil {
		return f.selectErr
	}
	f.file = path
	f.state = services.UploadFileSelected
	return nil
}

func (f *fakeUpload) Submit(_ context.Context, st models.ScanType) (*models.ScanReport, error) {
	f.submitted = append(f.submitted, st)
	if f.submitErr != nil {
		f.state = services.UploadFailed
		return nil, f.submitErr
	}
	f.state = services.UploadSucceeded
	f.file = ""
	return f.report, nil
}

func (f *fakeUpload) Reset() error {
	f.resets++
	f.state = services.UploadIdle
	f.file = ""
	return nil
}

func (f *fakeUpload) State() services.UploadState { return f.state }
func (f *fakeUpload) SelectedFile() string        { return f.file }
func (f *fakeUpload) MaxUploadSize() int64        { return 1 << 20 }

type fakeScans struct {
	list   []models.ScanReport
	byID   map[string]*models.ScanReport
	err    error
	gotIDs []string
}

func (f *fakeScans) List(context.Context) ([]models.ScanReport, error) {
	return f.list, f.err
}

func (f *fakeScans) Get(_ context.Context, id string) (*models.ScanReport, error) {
	f.gotIDs = append(f.gotIDs, id)
	if f.err != nil {
		return nil, f.err
	}
	return f.byID[id], nil
}

type fakeHealth struct{ err error }

func (f *fakeHealth) Health(context.Context) error { return f.err }

type testApp struct {
	*App
	session *fakeSession
	upload  *fakeUpload
	scans   *fakeScans
	health  *fakeHealth
	out     *bytes.Buffer
}

func newTestApp(t *testing.T, input string) *testApp {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()

	ta := &testApp{
		session: &fakeSession{},
		upload:  &fakeUpload{},
		scans:   &fakeScans{},
		health:  &fakeHealth{},
		out:     &bytes.Buffer{},
	}
	ta.App = &App{
		config:  cfg,
		logger:  logging.Nop(),
		session: ta.session,
		upload:  ta.upload,
		scans:   ta.scans,
		health:  ta.health,
		reader:  rdr(input),
		out:     ta.out,
	}
	return ta
}

func stubPrintln(t *testing.T, w io.Writer) {
	t.Helper()
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		if w == nil {
			return 0, nil
		}
		return io.WriteString(w, fmt.Sprintln(a...))
	}
	t.Cleanup(func() { printlnFn = orig })
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(_ io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}

func stubValidateFile(t *testing.T, info services.FileInfo, err error) {
	t.Helper()
	orig := validateFile
	validateFile = func(path string, _ int64) (services.FileInfo, error) {
		if err != nil {
			return services.FileInfo{}, err
		}
		info.Path = path
		return info, nil
	}
	t.Cleanup(func() { validateFile = orig })
}

package cli

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/radiologix/internal/client/client"
	"github.com/dmitrijs2005/radiologix/internal/client/models"
	"github.com/dmitrijs2005/radiologix/internal/client/services"
)

func TestSelect(t *testing.T) {
	a := newTestApp(t, "")
	stubValidateFile(t, services.FileInfo{Size: 42, MIME: "image/png"}, nil)

	require.NoError(t, a.Select(context.Background(), []string{"my", "scan.png"}))
	assert.Equal(t, "my scan.png", a.upload.file)
	assert.Contains(t, a.out.String(), "image/png, 42 bytes")
}

func TestSelect_Rejected(t *testing.T) {
	a := newTestApp(t, "")
	stubValidateFile(t, services.FileInfo{}, fmt.Errorf("%w: text/plain", services.ErrUnsupportedFile))

	require.ErrorIs(t, a.Select(context.Background(), []string{"notes.txt"}), services.ErrUnsupportedFile)
	assert.Empty(t, a.upload.file)
	assert.Contains(t, a.out.String(), services.MsgUnsupportedFile)
}

func TestSelect_Usage(t *testing.T) {
	a := newTestApp(t, "")
	require.Error(t, a.Select(context.Background(), nil))
	assert.Contains(t, a.out.String(), "Usage: select")
}

func TestSubmit_Success(t *testing.T) {
	a := newTestApp(t, "")
	a.session.user = &models.User{Name: "Ann"}
	a.upload.file = "/tmp/x.png"
	a.upload.report = &models.ScanReport{
		ID:        "s1",
		ScanType:  models.ScanTypeMRI,
		CreatedAt: models.Timestamp{Time: time.Date(2024, 1, 2, 3, 4, 0, 0, time.UTC)},
		AIReport:  "MRI ANALYSIS REPORT",
	}

	require.NoError(t, a.Submit(context.Background(), []string{"MRI"}))
	assert.Equal(t, []models.ScanType{models.ScanTypeMRI}, a.upload.submitted)
	out := a.out.String()
	assert.Contains(t, out, "Uploading /tmp/x.png as MRI...")
	assert.Contains(t, out, "Upload complete.")
	assert.Contains(t, out, "MRI ANALYSIS REPORT")
	assert.Contains(t, out, "Scan s1")
}

func TestSubmit_UnknownType(t *testing.T) {
	a := newTestApp(t, "")
	require.ErrorIs(t, a.Submit(context.Background(), []string{"pet"}), models.ErrUnknownScanType)
	assert.Empty(t, a.upload.submitted)
	assert.Contains(t, a.out.String(), services.MsgUnknownScanType)
}

func TestSubmit_NoFile(t *testing.T) {
	a := newTestApp(t, "")
	a.upload.submitErr = services.ErrNoFileSelected

	require.ErrorIs(t, a.Submit(context.Background(), []string{"ct"}), services.ErrNoFileSelected)
	assert.Equal(t, "Please select a file to upload\n", a.out.String())
}

func TestSubmit_NotLoggedIn(t *testing.T) {
	a := newTestApp(t, "")
	a.upload.file = "/tmp/x.png"
	a.upload.submitErr = services.ErrNotAuthenticated

	require.Error(t, a.Submit(context.Background(), []string{"ct"}))
	assert.Equal(t, "Please login to upload scans\n", a.out.String())
}

func TestSubmit_ServerFailure(t *testing.T) {
	a := newTestApp(t, "")
	a.upload.file = "/tmp/x.png"
	a.upload.submitErr = fmt.Errorf("%w: %w", services.ErrUploadFailed, client.ErrUnavailable)

	require.Error(t, a.Submit(context.Background(), []string{"ct"}))
	assert.Contains(t, a.out.String(), services.MsgUploadFailed)
}

func TestUpload(t *testing.T) {
	a := newTestApp(t, "")
	a.session.user = &models.User{Name: "Ann"}
	a.upload.report = &models.ScanReport{ID: "s1", ScanType: models.ScanTypeXRay}
	stubValidateFile(t, services.FileInfo{Size: 1, MIME: "image/jpeg"}, nil)

	require.NoError(t, a.Upload(context.Background(), []string{"xray", "/tmp/chest.jpg"}))
	assert.Equal(t, []models.ScanType{models.ScanTypeXRay}, a.upload.submitted)
}

func TestUpload_BadTypeSkipsSelect(t *testing.T) {
	a := newTestApp(t, "")
	stubValidateFile(t, services.FileInfo{Size: 1, MIME: "image/jpeg"}, nil)

	require.ErrorIs(t, a.Upload(context.Background(), []string{"pet", "/tmp/chest.jpg"}), models.ErrUnknownScanType)
	assert.Empty(t, a.upload.file)
}

func TestHistory(t *testing.T) {
	a := newTestApp(t, "")
	a.session.user = &models.User{Name: "Ann"}
	a.scans.list = []models.ScanReport{
		{ID: "s2", ScanType: models.ScanTypeCT},
		{ID: "s1", ScanType: models.ScanTypeUltrasound},
	}

	require.NoError(t, a.History(context.Background()))
	out := a.out.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "CT Scan")
	assert.Contains(t, out, "Ultrasound")
	assert.Less(t, strings.Index(out, "s2"), strings.Index(out, "s1"))
}

func TestHistory_Empty(t *testing.T) {
	a := newTestApp(t, "")
	a.session.user = &models.User{Name: "Ann"}
	require.NoError(t, a.History(context.Background()))
	assert.Contains(t, a.out.String(), "No scans yet")
}

func TestHistory_RequiresLogin(t *testing.T) {
	a := newTestApp(t, "")
	require.ErrorIs(t, a.History(context.Background()), services.ErrNotAuthenticated)
}

func TestShow(t *testing.T) {
	a := newTestApp(t, "")
	a.session.user = &models.User{Name: "Ann"}
	a.scans.byID = map[string]*models.ScanReport{
		"s1": {ID: "s1", ScanType: models.ScanTypeCT, AIReport: "CT SCAN ANALYSIS REPORT"},
	}

	require.NoError(t, a.Show(context.Background(), []string{"s1"}))
	assert.Equal(t, []string{"s1"}, a.scans.gotIDs)
	assert.Contains(t, a.out.String(), "CT SCAN ANALYSIS REPORT")
}

func TestShow_NotFound(t *testing.T) {
	a := newTestApp(t, "")
	a.session.user = &models.User{Name: "Ann"}
	a.scans.err = client.ErrNotFound

	require.Error(t, a.Show(context.Background(), []string{"nope"}))
	assert.Contains(t, a.out.String(), services.MsgNotFound)
}

func TestShow_SessionExpired(t *testing.T) {
	a := newTestApp(t, "")
	a.session.user = &models.User{Name: "Ann"}
	a.scans.err = fmt.Errorf("%w: %w", services.ErrNotAuthenticated, client.ErrUnauthorized)

	require.Error(t, a.Show(context.Background(), []string{"s1"}))
	assert.Contains(t, a.out.String(), "Your session has expired")
}

func TestStatus(t *testing.T) {
	a := newTestApp(t, "")
	a.session.user = &models.User{Name: "Ann", Email: "ann@example.com"}
	a.upload.file = "/tmp/x.png"
	a.upload.state = services.UploadFileSelected
	a.setMode(ModeOnline)

	require.NoError(t, a.Status(context.Background()))
	out := a.out.String()
	assert.Contains(t, out, "online")
	assert.Contains(t, out, "Ann <ann@example.com>")
	assert.Contains(t, out, "/tmp/x.png")
	assert.Contains(t, out, services.UploadFileSelected.String())
}

func TestStatus_Restoring(t *testing.T) {
	a := newTestApp(t, "")
	a.session.loading = true

	require.NoError(t, a.Status(context.Background()))
	assert.Contains(t, a.out.String(), "restoring")
	assert.Contains(t, a.out.String(), "checking")
}

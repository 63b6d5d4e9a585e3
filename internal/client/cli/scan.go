package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/radiologix/internal/client/models"
	"github.com/dmitrijs2005/radiologix/internal/client/services"
)

var errMissingArgument = errors.New("missing argument")

// validateFile is a seam so tests can select files without real images.
var validateFile = services.ValidateFile

// Select records the file to upload. The path may contain spaces.
func (a *App) Select(ctx context.Context, args []string) error {
	path := strings.TrimSpace(strings.Join(args, " "))
	if path == "" {
		fmt.Fprintln(a.out, "Usage: select <path>")
		return errMissingArgument
	}

	info, err := validateFile(path, a.upload.MaxUploadSize())
	if err != nil {
		fmt.Fprintln(a.out, services.UserMessage(err))
		return err
	}

	if err := a.upload.SelectFile(info.Path); err != nil {
		fmt.Fprintln(a.out, services.UserMessage(err))
		return err
	}
	fmt.Fprintf(a.out, "Selected %s (%s, %d bytes)\n", info.Path, info.MIME, info.Size)
	return nil
}

// Submit uploads the selected file as the given scan type.
func (a *App) Submit(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: submit <ct|xray|mri|ultrasound>")
		return errMissingArgument
	}
	st, err := models.ParseScanType(args[0])
	if err != nil {
		fmt.Fprintln(a.out, services.UserMessage(err))
		return err
	}

	if err := a.session.WaitReady(ctx); err != nil {
		return err
	}

	// local rejections are reported by the workflow without a progress line
	if file := a.upload.SelectedFile(); file != "" && a.session.IsAuthenticated() {
		fmt.Fprintf(a.out, "Uploading %s as %s...\n", file, scanTypeName(st))
	}
	report, err := a.upload.Submit(ctx, st)
	if err != nil {
		fmt.Fprintln(a.out, services.UserMessage(err))
		return err
	}

	fmt.Fprintln(a.out, "Upload complete.")
	a.printReport(report)
	return nil
}

// Upload is select followed by submit.
func (a *App) Upload(ctx context.Context, args []string) error {
	if len(args) < 2 {
		fmt.Fprintln(a.out, "Usage: upload <ct|xray|mri|ultrasound> <path>")
		return errMissingArgument
	}
	if _, err := models.ParseScanType(args[0]); err != nil {
		fmt.Fprintln(a.out, services.UserMessage(err))
		return err
	}
	if err := a.Select(ctx, args[1:]); err != nil {
		return err
	}
	return a.Submit(ctx, args[:1])
}

// History lists the user's reports, newest first.
func (a *App) History(ctx context.Context) error {
	if err := a.requireLogin(ctx); err != nil {
		return err
	}

	list, err := a.scans.List(ctx)
	if err != nil {
		fmt.Fprintln(a.out, scanErrorMessage(err))
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No scans yet. Use 'upload <type> <path>' to submit one.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tCREATED")
	for _, r := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.ID, scanTypeName(r.ScanType), formatTime(r.CreatedAt))
	}
	return tw.Flush()
}

// Show prints one report in full.
func (a *App) Show(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: show <id>")
		return errMissingArgument
	}
	if err := a.requireLogin(ctx); err != nil {
		return err
	}

	report, err := a.scans.Get(ctx, args[0])
	if err != nil {
		fmt.Fprintln(a.out, scanErrorMessage(err))
		return err
	}
	a.printReport(report)
	return nil
}

// Status prints connectivity, session and upload state.
func (a *App) Status(ctx context.Context) error {
	snap := a.session.Snapshot()

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Server:\t%s (%s)\n", a.config.ServerBaseURL, a.modeLabel())
	switch {
	case snap.IsLoading:
		fmt.Fprintln(tw, "Session:\trestoring...")
	case snap.User != nil:
		fmt.Fprintf(tw, "Session:\t%s <%s>\n", snap.User.Name, snap.User.Email)
	default:
		fmt.Fprintln(tw, "Session:\tnot logged in")
	}
	fmt.Fprintf(tw, "Upload:\t%s\n", a.upload.State())
	if f := a.upload.SelectedFile(); f != "" {
		fmt.Fprintf(tw, "File:\t%s\n", f)
	}
	return tw.Flush()
}

func (a *App) modeLabel() string {
	if m := a.getMode(); m != "" {
		return string(m)
	}
	return "checking"
}

func (a *App) printReport(r *models.ScanReport) {
	if r == nil {
		return
	}
	fmt.Fprintf(a.out, "Scan %s\n", r.ID)
	fmt.Fprintf(a.out, "Type:    %s\n", scanTypeName(r.ScanType))
	fmt.Fprintf(a.out, "Created: %s\n", formatTime(r.CreatedAt))
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, strings.TrimSpace(r.AIReport))
}

func scanTypeName(st models.ScanType) string {
	if info, ok := st.Info(); ok {
		return info.Name
	}
	return string(st)
}

func formatTime(t models.Timestamp) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

func scanErrorMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrNotAuthenticated):
		return services.MsgSessionExpired
	case errors.Is(err, models.ErrUnknownScanType):
		return services.MsgUnknownScanType
	default:
		return services.UserMessage(err)
	}
}

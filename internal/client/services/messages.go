package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/radiologix/internal/client/client"
	"github.com/dmitrijs2005/radiologix/internal/client/models"
)

// Messages shown to the user. Errors are mapped onto them by UserMessage.
const (
	MsgSelectFile         = "Please select a file to upload"
	MsgLoginToUpload      = "Please login to upload scans"
	MsgSessionExpired     = "Your session has expired. Please login again."
	MsgUploadFailed       = "Failed to upload and process scan. Please try again."
	MsgInvalidLogin       = "Invalid email or password"
	MsgRegistered         = "Registration successful! Please login."
	MsgRegistrationFailed = "Registration failed. Email might already be in use."
	MsgUploadInProgress   = "An upload is already in progress"
	MsgAuthInProgress     = "Another login or registration is already in progress"
	MsgSessionChanged     = "You were logged out while the request was running"
	MsgUnsupportedFile    = "Unsupported file. Please select an image or DICOM file within the size limit."
	MsgUnknownScanType    = "Unknown scan type. Choose one of: ct, xray, mri, ultrasound"
	MsgUnavailable        = "Server unavailable. Please try again later."
	MsgCancelled          = "Request cancelled"
	MsgTimeout            = "Request timed out"
	MsgNotFound           = "Not found"
)

// UserMessage turns an error from this package into a one-line message.
// Unknown errors fall back to err.Error().
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoFileSelected):
		return MsgSelectFile
	case errors.Is(err, ErrNotAuthenticated) && errors.Is(err, client.ErrUnauthorized):
		return MsgSessionExpired
	case errors.Is(err, ErrNotAuthenticated):
		return MsgLoginToUpload
	case errors.Is(err, ErrUnsupportedFile):
		return MsgUnsupportedFile
	case errors.Is(err, ErrEncodeFailed), errors.Is(err, ErrUploadFailed):
		return MsgUploadFailed
	case errors.Is(err, ErrUploadInProgress):
		return MsgUploadInProgress
	case errors.Is(err, ErrInvalidCredentials):
		return MsgInvalidLogin
	case errors.Is(err, ErrRegistrationFailed):
		return MsgRegistrationFailed
	case errors.Is(err, ErrOperationInProgress):
		return MsgAuthInProgress
	case errors.Is(err, ErrSessionChanged):
		return MsgSessionChanged
	case errors.Is(err, models.ErrUnknownScanType):
		return MsgUnknownScanType
	case errors.Is(err, context.DeadlineExceeded):
		return MsgTimeout
	case errors.Is(err, context.Canceled):
		return MsgCancelled
	case errors.Is(err, client.ErrUnavailable):
		return MsgUnavailable
	case errors.Is(err, client.ErrNotFound):
		return MsgNotFound
	default:
		return err.Error()
	}
}

package services

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrRegistrationFailed  = errors.New("registration failed")
	ErrNotAuthenticated    = errors.New("not authenticated")
	ErrOperationInProgress = errors.New("another auth operation is in progress")
	ErrSessionChanged      = errors.New("session changed while the operation was running")

	ErrNoFileSelected   = errors.New("no file selected")
	ErrUploadInProgress = errors.New("an upload is already in progress")
	ErrEncodeFailed     = errors.New("file could not be read")
	ErrUnsupportedFile  = errors.New("unsupported file")
	ErrUploadFailed     = errors.New("upload failed")
)

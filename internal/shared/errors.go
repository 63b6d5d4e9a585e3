// Package shared holds the sentinel errors of the development backend.
package shared

import "errors"

var (
	ErrorNotFound           = errors.New("not found")
	ErrorAlreadyExists      = errors.New("already exists")
	ErrorValidation         = errors.New("validation error")
	ErrorInvalidCredentials = errors.New("invalid credentials")

	// auth-specific errors
	ErrorInvalidToken            = errors.New("invalid token")
	ErrorTokenExpired            = errors.New("token expired")
	ErrorInvalidAuthheaderFormat = errors.New("invalid auth header format")
	ErrorNoUserID                = errors.New("no user id")
)

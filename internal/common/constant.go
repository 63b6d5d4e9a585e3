// Package common contains constants and small helpers shared by the
// Radiologix client and the development server.
package common

const (
	// AuthorizationHeaderName carries the bearer credential on outbound requests.
	AuthorizationHeaderName = "Authorization"

	// RequestIDHeaderName correlates client log lines with server log lines.
	RequestIDHeaderName = "X-Request-ID"

	// TokenMetadataKey is the fixed key under which the auth token is persisted.
	TokenMetadataKey = "token"

	// TokenSavedAtMetadataKey records when the token was written (RFC 3339).
	TokenSavedAtMetadataKey = "token_saved_at"

	// APIPrefix is prepended to every backend route.
	APIPrefix = "/api"
)

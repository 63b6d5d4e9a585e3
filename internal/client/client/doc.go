// Package client contains the transport side of the Radiologix client.
//
// # Overview
//
//  1. The Client interface is the backend contract: Login, Register, Me,
//     SubmitScan, ListScans, GetScan and Health.
//  2. APIClient implements it over HTTP/JSON (multipart for scan uploads).
//     Credentials are passed explicitly on each call; the client keeps no
//     session of its own.
//  3. InitDatabase and RunMigrations bootstrap the local SQLite state
//     database with the embedded goose migrations.
//
// # Error Handling
//
// Transport failures map to ErrUnavailable. Non-2xx answers are returned as
// *APIError; 401/403 unwrap to ErrUnauthorized and 404 to ErrNotFound, so
// callers match with errors.Is and read the backend detail with errors.As.
// A cancelled context is returned as ctx.Err().
package client

// Package services holds the client's application logic.
//
// SessionStore owns the credential and the user it resolved to, restores it
// from the local database at start-up and serializes login, register and
// refresh. UploadWorkflow validates, encodes and submits one scan at a time
// on behalf of the session's user. ScanService reads the scan history.
//
// Errors are sentinels matched with errors.Is; UserMessage turns them into
// the one-line messages the CLI prints.
package services

// Package cli provides the interactive Radiologix command-line client.
//
// It wires configuration, the local session database, the API client and
// the session, upload and scan services behind a REPL. On start the stored
// session is restored in the background and a watcher polls the server's
// health endpoint to show online/offline status in the prompt. Commands that
// need a session wait until the restore has finished.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli

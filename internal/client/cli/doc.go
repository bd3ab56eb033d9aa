// Package cli provides the interactive pdfnotes terminal client.
//
// It wires configuration, the local token database, the HTTP client, the
// session and the screens, then runs a read-eval-print loop on a single
// goroutine. Typical flow: restore the session from the stored token, open
// the start route, and dispatch commands until the user exits.
//
// Key features:
//   - Route guards applied on every navigation and session change
//   - Global navigation commands plus per-screen commands
//   - Any 401 from the service ends the session and opens the login screen
//   - Ctrl-C interrupts the command in flight
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, Shell, and runREPL for details.
package cli

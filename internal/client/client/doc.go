// Package client is the HTTP transport for the pdfnotes REST service.
//
// # Overview
//
// Client wraps net/http with a base URL, a 30s timeout and JSON encoding. Each
// request carries the persisted bearer token (when there is one) and a fresh
// X-Request-ID. Get/Post/Put/Delete decode a JSON reply into out; Download
// returns raw bytes.
//
// # Error Handling
//
// Non-2xx replies become *APIError{Status, Message}. APIError unwraps to
// ErrUnauthorized, ErrForbidden, ErrNotFound or ErrUnavailable where the
// status warrants it, so callers match with errors.Is. Transport failures and
// timeouts wrap ErrUnavailable. Message(err, fallback) yields the text to show
// the user.
//
// A 401 from any endpoint clears the token and runs the OnUnauthorized hooks
// before the error is returned.
//
// # Concurrency
//
// A Client may be shared; hook registration is guarded by a mutex.
package client

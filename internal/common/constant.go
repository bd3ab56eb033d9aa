// Package common contains constants shared by the client packages.
package common

const (
	// AuthorizationHeader carries the bearer credential on outbound requests.
	AuthorizationHeader = "Authorization"

	// BearerPrefix precedes the token in AuthorizationHeader.
	BearerPrefix = "Bearer "

	// RequestIDHeader correlates a client log line with the server's.
	RequestIDHeader = "X-Request-ID"

	// TokenKey is the local storage key the auth token is persisted under.
	TokenKey = "token"

	// MaxUploadSize is the largest document accepted for upload (10MB).
	MaxUploadSize = 10 * 1024 * 1024

	// PDFMediaType is the only media type accepted for upload.
	PDFMediaType = "application/pdf"
)

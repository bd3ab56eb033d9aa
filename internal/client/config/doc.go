// Package config loads runtime configuration for the pdfnotes client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A .env file in the working directory, then the process environment
//     (PDFNOTES_API_URL, PDFNOTES_FILES_URL, PDFNOTES_TIMEOUT, PDFNOTES_DB,
//     PDFNOTES_DOWNLOAD_DIR, PDFNOTES_VIEWER, PDFNOTES_LOG_*).
//  3. Optional JSON file selected via -c / -config or $PDFNOTES_CONFIG.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the REST API (default http://localhost:5000/api)
//	-f string   base URL for stored files (default: API URL without /api)
//	-t int      request timeout in seconds (default 30)
//	-d string   sqlite database path (default pdfnotes.db)
//	-p string   initial route (default /)
//
// # JSON schema
//
// Durations use timex.Duration, so "30s" and integer nanoseconds both work:
//
//	{
//	  "api_url": "http://localhost:5000/api",
//	  "timeout": "30s",
//	  "db_path": "pdfnotes.db",
//	  "download_dir": "download",
//	  "viewer_command": "xdg-open",
//	  "log_backend": "zap",
//	  "log_level": "debug"
//	}
package config

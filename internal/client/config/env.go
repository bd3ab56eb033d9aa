package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables understood by parseEnv.
const (
	EnvAPIURL        = "PDFNOTES_API_URL"
	EnvFilesURL      = "PDFNOTES_FILES_URL"
	EnvTimeout       = "PDFNOTES_TIMEOUT"
	EnvDBPath        = "PDFNOTES_DB"
	EnvDownloadDir   = "PDFNOTES_DOWNLOAD_DIR"
	EnvViewerCommand = "PDFNOTES_VIEWER"
	EnvLogLevel      = "PDFNOTES_LOG_LEVEL"
	EnvLogFormat     = "PDFNOTES_LOG_FORMAT"
	EnvLogBackend    = "PDFNOTES_LOG_BACKEND"
	EnvLogOutput     = "PDFNOTES_LOG_OUTPUT"
)

// DotEnvFile is read before the environment is consulted. Variables already
// present in the process environment win over the file.
var DotEnvFile = ".env"

// parseEnv overlays Config with values from environment variables.
//
// A missing .env file is not an error; a malformed one, or a malformed
// PDFNOTES_TIMEOUT, panics like the other loaders.
func parseEnv(cfg *Config) {
	if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	setString(&cfg.APIURL, EnvAPIURL)
	setString(&cfg.FilesURL, EnvFilesURL)
	setString(&cfg.DBPath, EnvDBPath)
	setString(&cfg.DownloadDir, EnvDownloadDir)
	setString(&cfg.ViewerCommand, EnvViewerCommand)
	setString(&cfg.Log.Level, EnvLogLevel)
	setString(&cfg.Log.Format, EnvLogFormat)
	setString(&cfg.Log.Backend, EnvLogBackend)
	setString(&cfg.Log.Output, EnvLogOutput)

	if v, ok := lookup(EnvTimeout); ok {
		d, err := parseTimeout(v)
		if err != nil {
			panic(err)
		}
		cfg.Timeout = d
	}
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func setString(dst *string, key string) {
	if v, ok := lookup(key); ok {
		*dst = v
	}
}

// parseTimeout accepts either a Go duration ("45s") or whole seconds ("45").
func parseTimeout(v string) (time.Duration, error) {
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	return time.ParseDuration(v)
}

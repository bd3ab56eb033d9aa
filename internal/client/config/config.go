package config

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/pdfnotes/internal/logging"
)

// Config holds runtime settings for the pdfnotes terminal client.
//
// Fields:
//   - APIURL: base address of the remote REST service, e.g. http://host:5000/api.
//   - FilesURL: base address stored document paths are resolved against.
//   - Timeout: per-request deadline applied by the HTTP client.
//   - DBPath: sqlite file holding the persisted session token. Empty keeps
//     the token in memory for the current run.
//   - DownloadDir: where opened and saved documents are written.
//   - ViewerCommand: external program invoked with the downloaded file path.
//   - StartPath: route shown after startup.
type Config struct {
	APIURL        string
	FilesURL      string
	Timeout       time.Duration
	DBPath        string
	DownloadDir   string
	ViewerCommand string
	StartPath     string
	Log           logging.Config
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIURL = "http://localhost:5000/api"
	c.FilesURL = ""
	c.Timeout = 30 * time.Second
	c.DBPath = "pdfnotes.db"
	c.DownloadDir = "download"
	c.ViewerCommand = ""
	c.StartPath = "/"
	c.Log = logging.Config{
		Backend: logging.BackendSlog,
		Level:   "warn",
		Format:  "text",
		Output:  "stderr",
	}
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment (after reading an optional .env file), a JSON file and
// command-line flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	cfg.finalize()
	return cfg
}

// finalize fills values derived from other settings.
func (c *Config) finalize() {
	c.APIURL = strings.TrimRight(c.APIURL, "/")
	if c.FilesURL == "" {
		c.FilesURL = strings.TrimSuffix(c.APIURL, "/api")
	}
	c.FilesURL = strings.TrimRight(c.FilesURL, "/")
	if c.StartPath == "" || !strings.HasPrefix(c.StartPath, "/") {
		c.StartPath = "/" + c.StartPath
	}
}

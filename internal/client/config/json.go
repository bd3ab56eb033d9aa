package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/pdfnotes/internal/flagx"
	"github.com/dmitrijs2005/pdfnotes/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Fields left
// empty keep whatever earlier sources set.
type JsonConfig struct {
	APIURL        string         `json:"api_url"`
	FilesURL      string         `json:"files_url"`
	Timeout       timex.Duration `json:"timeout"`
	DBPath        string         `json:"db_path"`
	DownloadDir   string         `json:"download_dir"`
	ViewerCommand string         `json:"viewer_command"`
	StartPath     string         `json:"start_path"`
	LogLevel      string         `json:"log_level"`
	LogFormat     string         `json:"log_format"`
	LogBackend    string         `json:"log_backend"`
	LogOutput     string         `json:"log_output"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// The file path comes from -c / -config, or $PDFNOTES_CONFIG. When no path is
// given the function returns without changes. Read or decode errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFile()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	overlay(&cfg.APIURL, jc.APIURL)
	overlay(&cfg.FilesURL, jc.FilesURL)
	overlay(&cfg.DBPath, jc.DBPath)
	overlay(&cfg.DownloadDir, jc.DownloadDir)
	overlay(&cfg.ViewerCommand, jc.ViewerCommand)
	overlay(&cfg.StartPath, jc.StartPath)
	overlay(&cfg.Log.Level, jc.LogLevel)
	overlay(&cfg.Log.Format, jc.LogFormat)
	overlay(&cfg.Log.Backend, jc.LogBackend)
	overlay(&cfg.Log.Output, jc.LogOutput)
	if jc.Timeout.Duration > 0 {
		cfg.Timeout = jc.Timeout.Duration
	}
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

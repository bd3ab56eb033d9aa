package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/pdfnotes/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the REST API
//	-f string   base URL stored file paths are resolved against
//	-t int      request timeout in seconds
//	-d string   path of the local sqlite database
//	-p string   route to open on startup
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, so -c/-config does not trip the parser.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-f", "-t", "-d", "-p"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIURL, "a", cfg.APIURL, "base URL of the REST API")
	fs.StringVar(&cfg.FilesURL, "f", cfg.FilesURL, "base URL for stored files")
	timeout := fs.Int("t", int(cfg.Timeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "path to the local database (empty: keep the session in memory)")
	fs.StringVar(&cfg.StartPath, "p", cfg.StartPath, "route to open on startup")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.Timeout = time.Duration(*timeout) * time.Second
}

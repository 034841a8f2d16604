package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/useradmin/internal/flagx"
)

var knownFlags = []string{"-a", "-t", "-d", "-p", "-data", "-l"}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the user API
//	-t int      request timeout (seconds)
//	-d int      availability debounce (milliseconds)
//	-p int      page size
//	-data dir   session data directory
//	-l string   log level
//
// args are filtered with flagx.FilterArgs first so the -c/-env flags of the
// other layers do not trip the parser.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, knownFlags)

	fs := flag.NewFlagSet("useradmin", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the user API")
	timeout := fs.Int("t", int(cfg.RequestTimeout/time.Second), "request timeout (in seconds)")
	debounce := fs.Int("d", int(cfg.DebounceDelay/time.Millisecond), "availability debounce (in milliseconds)")
	fs.IntVar(&cfg.PageSize, "p", cfg.PageSize, "list page size")
	fs.StringVar(&cfg.DataDir, "data", cfg.DataDir, "session data directory")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return err
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["t"] {
		cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	}
	if set["d"] {
		cfg.DebounceDelay = time.Duration(*debounce) * time.Millisecond
	}
	return nil
}

package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/socialprofile/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   API base URL
//	-t int      request timeout in seconds
//	-i int      session check interval in seconds (0 disables)
//	-d string   local storage file
//	-l string   log level
//
// Args are filtered with flagx.Only so -c/-config and anything else
// handled elsewhere does not trip the parser. Durations are only touched when
// their flag is given, so finer values from a file survive.
func parseFlags(cfg *Config, args []string) {
	args = flagx.Only(args, "a", "t", "i", "d", "l")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "API base URL")
	timeout := fs.Int("t", 0, "request timeout (in seconds)")
	interval := fs.Int("i", 0, "session check interval (in seconds)")
	fs.StringVar(&cfg.StoragePath, "d", cfg.StoragePath, "local storage file")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		case "i":
			cfg.SessionCheckInterval = time.Duration(*interval) * time.Second
		}
	})
}

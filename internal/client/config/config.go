package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the social-profile CLI.
//
// Fields:
//   - APIBaseURL: absolute base URL of the REST API, including /api/v1.
//   - RequestTimeout: upper bound for a single HTTP request.
//   - SessionCheckInterval: how often the saved session is re-validated
//     against the backend; zero disables the check.
//   - StoragePath: SQLite file holding the saved session and cookies.
//   - LogLevel: debug, info, warn or error.
//   - LogBackend: slog or zap.
type Config struct {
	APIBaseURL           string
	RequestTimeout       time.Duration
	SessionCheckInterval time.Duration
	StoragePath          string
	LogLevel             string
	LogBackend           string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8000/api/v1"
	c.RequestTimeout = 30 * time.Second
	c.SessionCheckInterval = time.Minute
	c.StoragePath = "socialprofile.db"
	c.LogLevel = "warn"
	c.LogBackend = "slog"
}

// LoadConfig builds a Config from os.Args. See Load.
func LoadConfig() *Config {
	return Load(os.Args[1:])
}

// Load constructs a Config, applies defaults, then overlays values from a
// JSON or YAML file (if -c/-config is given) and command-line flags. Later
// sources take precedence over earlier ones. Invalid input panics.
func Load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg, args)
	parseFlags(cfg, args)
	return cfg
}

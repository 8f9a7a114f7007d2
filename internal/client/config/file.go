package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/socialprofile/internal/flagx"
	"github.com/dmitrijs2005/socialprofile/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is a DTO used exclusively for file unmarshalling. Durations are
// timex.Duration so they can be written as "30s" or as integer nanoseconds;
// they are pointers so an explicit 0 is told apart from an absent key.
// Empty strings and absent durations leave the current value alone.
type FileConfig struct {
	APIBaseURL           string          `json:"api_base_url" yaml:"api_base_url"`
	RequestTimeout       *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	SessionCheckInterval *timex.Duration `json:"session_check_interval" yaml:"session_check_interval"`
	StoragePath          string          `json:"storage_path" yaml:"storage_path"`
	LogLevel             string          `json:"log_level" yaml:"log_level"`
	LogBackend           string          `json:"log_backend" yaml:"log_backend"`
}

// parseFile overlays cfg with values from the file named by -c/-config.
// Files ending in .yaml or .yml are read as YAML, anything else as JSON.
// Panics on read or decode errors.
func parseFile(cfg *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(err)
	}

	if fc.APIBaseURL != "" {
		cfg.APIBaseURL = fc.APIBaseURL
	}
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.SessionCheckInterval != nil {
		cfg.SessionCheckInterval = fc.SessionCheckInterval.Duration
	}
	if fc.StoragePath != "" {
		cfg.StoragePath = fc.StoragePath
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.LogBackend != "" {
		cfg.LogBackend = fc.LogBackend
	}
}

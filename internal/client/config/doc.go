// Package config loads runtime configuration for the social-profile CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON or YAML file (see parseFile) selected via -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   API base URL (default http://127.0.0.1:8000/api/v1)
//	-t int      request timeout (seconds)
//	-i int      session check interval (seconds, 0 disables)
//	-d string   local storage file
//	-l string   log level
//
// # File schema
//
// Durations use timex.Duration, so the timeout can be either a string like
// "30s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://127.0.0.1:8000/api/v1",
//	  "request_timeout": "30s",
//	  "session_check_interval": "1m",
//	  "storage_path": "socialprofile.db",
//	  "log_level": "info",
//	  "log_backend": "zap"
//	}
//
// The same keys are accepted in a .yaml/.yml file.
//
// Note: This package does not read environment variables directly; use the
// file or flags to configure values.
package config

// Package config loads runtime configuration for the cockpdf CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c / -config, or the COCKPDF_CONFIG
//     environment variable when no flag is given.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   API base URL (scheme, host and path prefix)
//	-t int      authentication cache TTL (seconds)
//	-i int      online status check interval (seconds)
//	-w int      per-command timeout (seconds)
//	-s string   session database file
//	-o string   output directory for OCR results
//	-l string   log level: debug, info, warn, error
//
// # JSON schema
//
// Durations use timex.Duration, so they can be strings like "30s" or integer
// nanoseconds. Keys that are absent keep their current value:
//
//	{
//	  "base_url": "http://127.0.0.1:8000/api",
//	  "auth_cache_ttl": "30s",
//	  "online_check_interval": "5s",
//	  "request_timeout": "2m",
//	  "session_db": "session.db",
//	  "output_dir": "pdf",
//	  "log_level": "info"
//	}
//
// Errors in the JSON file or in flag values panic; the CLI cannot start
// with a half-applied configuration.
package config

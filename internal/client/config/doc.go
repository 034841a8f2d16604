// Package config loads runtime configuration for the useradmin console.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment: a dotenv file (-env, or ./.env when present) overlaid by
//     USERADMIN_* process variables.
//  3. Optional JSON file selected via -c or -config.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   base URL of the user API
//	-t int      request timeout (seconds)
//	-d int      username availability debounce (milliseconds)
//	-p int      list page size
//	-data dir   directory holding the session database and key
//	-l string   log level (debug, info, warn, error)
//
// # JSON schema
//
// Durations use timex.Duration, so they can be strings like "3s" or integer
// nanoseconds:
//
//	{
//	  "api_base_url": "http://localhost:5000",
//	  "request_timeout": "15s",
//	  "debounce_delay": "500ms",
//	  "page_size": 5,
//	  "data_dir": "/home/me/.useradmin",
//	  "log_level": "info"
//	}
package config

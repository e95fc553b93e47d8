// Package config loads runtime configuration for the bizdesk CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, optionally seeded from a dotenv file given
//     with -env. Variables already set in the process win over the file.
//  3. Optional JSON file selected via -c or -config.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   backend base URL
//	-s string   path of the SQLite file holding the session ("" keeps it in memory)
//	-t string   request timeout, e.g. "15s"
//	-r float    requests per second sent to the backend (0 = unlimited)
//	-l string   log level: debug, info, warn, error
//
// Environment
//
//	BACKEND_URL, BIZDESK_STORAGE, BIZDESK_TIMEOUT, BIZDESK_RPS, BIZDESK_LOG_LEVEL
//
// # JSON schema
//
// Durations use timex.Duration, so they can be strings like "15s" or
// integer nanoseconds:
//
//	{
//	  "backend_url": "https://api.example.com",
//	  "storage_path": "/var/lib/bizdesk/session.db",
//	  "request_timeout": "15s",
//	  "requests_per_second": 5,
//	  "log_level": "info"
//	}
package config

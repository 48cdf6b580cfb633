// Package config loads runtime configuration for the mitra client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Environment variables prefixed with MITRA_.
//  4. Command-line flags.
//
// Supported flags
//
//	-a string   API base URL
//	-d string   path of the local SQLite database
//	-t int      HTTP request timeout (seconds)
//	-l int      log level (slog numbering)
//
// # JSON schema
//
// Durations accept either strings like "15s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "https://mitra.example.com/api/",
//	  "database_path": "/var/lib/mitra/mitra.db",
//	  "request_timeout": "15s",
//	  "log_level": 0,
//	  "credential_secret": "device-secret",
//	  "temp_dir": "/tmp/mitra"
//	}
package config

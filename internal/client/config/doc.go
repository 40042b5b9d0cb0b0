// Package config loads runtime configuration for the Genei CLI.
//
// Sources and precedence:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string     base URL of the REST API
//	-i int        online status check interval (seconds)
//	-timeout int  per-request timeout (seconds)
//	-db string    path of the local session database
//	-dl string    directory for downloaded documents
//	-log string   log level
//
// # JSON schema
//
// Intervals use timex.Duration, so they can be strings like "3s" or integer
// nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:8080",
//	  "online_check_interval": "3s",
//	  "request_timeout": "10s",
//	  "session_db": "genei_client.db",
//	  "download_dir": "downloads",
//	  "log_level": "warn"
//	}
package config

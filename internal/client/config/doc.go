// Package config loads runtime configuration for the inventory CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string   database DSN (postgres://, mysql://, sqlite:)
//	-l string   log format
//
// # JSON schema
//
//	{
//	  "database_dsn": "sqlite:inventory.db",
//	  "log_format": "text"
//	}
package config

// Package config loads runtime configuration for the kinotv CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-e string   base URL of the backend platform
//	-p string   platform project id
//	-d string   path of the local session database
//	-i int      payment status poll interval (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "5s" or integer nanoseconds:
//
//	{
//	  "platform_endpoint": "https://platform.kinotv.mn",
//	  "project_id": "kinotv",
//	  "poll_interval": "5s"
//	}
//
// Collection and function ids are deployment identifiers and usually come
// from the JSON file; the defaults match the production deployment.
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config

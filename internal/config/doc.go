// Package config loads, normalizes, and validates epubnav configuration.
//
// It supplies defaults, expands user paths (including tilde shortcuts) and
// reads TOML files. Command-line flags override the loaded values in the CLI.
package config

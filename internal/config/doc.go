// Package config loads and validates the TOML configuration file, applying
// defaults, path expansion, and environment fallbacks for TVDB credentials.
package config

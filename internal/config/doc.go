// Package config loads, normalizes, and validates autovideo configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files from ~/.config/autovideo/config.toml or a
// project-local autovideo.toml. The Config type centralizes every knob the CLI
// needs, so conversion defaults and output directories are discovered in one
// pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config

// Package config loads, normalizes, and validates watchtrack configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and derives the settings and record file
// locations from the data directory when they are not set explicitly.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, a known storage backend, and clear validation errors.
package config

// Package config loads, normalizes, and validates clipshelf configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob
// the CLI needs: data and log directories, the Everything executable
// location, EFU export settings, import extensions, tag collation, and the
// distribution build pipeline.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config

// Package config loads, normalizes, and validates snapwatch configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as the
// SNAP_NAME sandbox marker. The Config type centralizes every knob the daemon
// and CLI need: snapd socket locations, monitor timing, forced-refresh
// thresholds, logging, and notification settings.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config

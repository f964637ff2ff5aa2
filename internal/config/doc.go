// Package config loads, normalizes, and validates gstplayer configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the GSTPLAYER_PIPELINE environment
// fallback. The Config type centralizes the player props (pipeline
// description, desired state, overlay fade), the initial property tree, and
// the watch, journal, and logging knobs the CLI needs.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical state names, and clear validation errors.
package config

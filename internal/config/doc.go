// Package config loads, normalizes, and validates pwtune configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the PWTUNE_PW_CONFIG environment
// fallback for the pw-config binary. The Config type centralizes the tool
// location, the default target section, display policy for the unscoped
// section, staged edit settings, and logging.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths and clear validation errors.
package config

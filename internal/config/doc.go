// Package config loads, normalizes, and validates filmdex configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the LOOKUP_API_KEY environment
// fallback. Always obtain settings through this package so downstream code
// receives sanitized paths and clear validation errors before any batch of
// work starts.
package config

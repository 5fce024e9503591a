// Package config loads, normalizes, and validates bilimux configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// BILIMUX_FFMPEG. The Config type centralizes every knob the CLI needs so the
// converter receives explicit values instead of reading flags or globals.
//
// Command-line flags are layered on top by the CLI after Load returns.
package config

// Package config loads and merges sift configuration from multiple sources.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (SIFT_FORMAT, SIFT_FAIL_ON, SIFT_LOG_LEVEL, etc.),
//     optionally seeded from a .env file in the working directory
//  3. Config file ($XDG_CONFIG_HOME/sift/config.yaml, or --config)
//  4. Built-in defaults
//
// Use [Load] to obtain a merged and validated [Config], [Save] to write a
// config file, and [SetField] to update a single key.
package config

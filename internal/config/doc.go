// Package config defines the hub settings and provides helpers to load,
// validate and save them in YAML format.
//
// A missing settings file is not an error: Load falls back to Default, which
// reproduces the stock three-sensor hub writing to system_log.txt.
package config

// Package config loads CLI configuration from a JSON or YAML file with a
// WID_* environment-variable overlay on top of built-in defaults.
package config

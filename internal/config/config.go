package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration loaded from file/env. It supplies
// the CLI defaults for generator parameters and runtime paths.
type Config struct {
	// Node is the default node name for HLC-WID generation.
	Node string `json:"node" yaml:"node"`
	// Digits is the sequence/counter digit width (W).
	Digits int `json:"digits" yaml:"digits"`
	// Padding is the random hex padding width (Z).
	Padding int `json:"padding" yaml:"padding"`
	// TimeUnit is "sec" or "ms".
	TimeUnit string `json:"timeUnit" yaml:"timeUnit"`
	// DataDir holds the persistent generator state store.
	DataDir string `json:"dataDir" yaml:"dataDir"`
	// LogLevel is the minimum log level name.
	LogLevel string `json:"logLevel" yaml:"logLevel"`
	// LogFormat is "text" or "json".
	LogFormat string `json:"logFormat" yaml:"logFormat"`
}

// Default returns built-in defaults.
func Default() Config {
	return Config{
		Node:      "local",
		Digits:    4,
		Padding:   6,
		TimeUnit:  "sec",
		DataDir:   DefaultDataDir(),
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Load reads configuration from a JSON or YAML file (by extension). If
// path is empty, returns defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	return cfg, nil
}

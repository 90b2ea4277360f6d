package config

import (
	"os"
	"strconv"
)

// FromEnv overlays WID_* environment variables onto cfg.
func FromEnv(cfg *Config) {
	if v := os.Getenv("WID_NODE"); v != "" {
		cfg.Node = v
	}
	if v := os.Getenv("WID_DIGITS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Digits = n
		}
	}
	if v := os.Getenv("WID_PADDING"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Padding = n
		}
	}
	if v := os.Getenv("WID_TIME_UNIT"); v != "" {
		cfg.TimeUnit = v
	}
	if v := os.Getenv("WID_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("WID_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("WID_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
}

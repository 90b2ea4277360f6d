package main

import (
	"fmt"
	"os"

	"github.com/waldiez/wid/internal/cmd/cli"
	cfgpkg "github.com/waldiez/wid/internal/config"
	logpkg "github.com/waldiez/wid/pkg/log"
)

func main() {
	cfg, err := cfgpkg.Load(os.Getenv("WID_CONFIG"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "wid:", err)
		os.Exit(1)
	}
	cfgpkg.FromEnv(&cfg)

	level, err := logpkg.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logpkg.InfoLevel
	}
	var formatter logpkg.Formatter = &logpkg.TextFormatter{}
	if cfg.LogFormat == "json" {
		formatter = &logpkg.JSONFormatter{}
	}
	logger := logpkg.NewLogger(
		logpkg.WithLevel(level),
		logpkg.WithFormatter(formatter),
		logpkg.WithOutput(logpkg.NewConsoleOutput()),
	)

	// Redirect standard library logs (used by Pebble) to our logger.
	logpkg.RedirectStdLog(logger)

	if err := cli.NewRoot(logger, cfg).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "wid:", err)
		os.Exit(1)
	}
}

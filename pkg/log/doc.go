// Package log provides structured logging for the wid CLI and supporting
// services.
//
// Loggers carry a minimum level, bound fields, a formatter, and one or
// more outputs. RedirectStdLog routes standard-library log output (used
// by Pebble, among others) through the same pipeline.
//
// Usage:
//
//	logger := log.NewLogger(
//	    log.WithLevel(log.InfoLevel),
//	    log.WithFormatter(&log.TextFormatter{}),
//	    log.WithOutput(log.NewConsoleOutput()),
//	)
//	logger.Info("generator ready", log.String("node", node))
package log

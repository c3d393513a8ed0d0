// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports a human friendly
// console encoding for interactive use and JSON for log collection.
//
// # Run Correlation
//
// Every sync run gets a run ID. WithRunID attaches it to the log entries of
// that run, and the same ID is stored in the run journal, so log lines and
// journal rows can be matched.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: console (default) or json
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	log.Info("Scan started")
//
//	l := logger.WithRunID(log, runID)
//	l.Warn("Failed to parse SSH config", zap.String("file", path), zap.Error(err))
package logger

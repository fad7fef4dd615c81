// Package logging provides structured logging for tmuxdash.
//
// It wraps Go's log/slog to write JSON-lines logs to the per-user state
// directory (log.jsonl), with configurable levels, persistent context
// attributes, and size-based rotation. The dashboard owns the terminal, so
// nothing here writes to stdout; logs go to the file (or stderr when no
// path is configured).
//
// # Basic Usage
//
//	logger, err := logging.NewLogger(logPath, "INFO")
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	logger.Info("session created", "session", name)
//
// Child loggers carry persistent attributes:
//
//	sessionLogger := logger.WithSession("api-server")
//	sessionLogger.Warn("kill failed", "error", err)
//
// # Rotation
//
// For long-lived dashboards, use [NewLoggerWithRotation] to cap the log file
// size. Rotated files are named log.jsonl.1 (newest) through log.jsonl.N,
// optionally gzip compressed.
//
// # Thread Safety
//
// All types are safe for concurrent use. Child loggers share the underlying
// writer safely.
package logging

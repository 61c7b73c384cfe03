// Package log provides structured logging for elevate workflow operations.
//
// It defines a minimal, slog-compatible Logger interface backed by zerolog,
// plus standard attribute keys for workflow events (operation types, data
// shapes, resampling progress, metric values). Components obtain a named
// logger and attach structured fields:
//
//	logger := log.GetLoggerWithName("tune.grid")
//	logger.Info("candidate evaluated",
//	    log.CandidateKey, 3,
//	    log.MetricKey, "rmse",
//	    log.ScoreKey, 0.42,
//	)
package log

import "context"

// Logger is a structured logging interface compatible with Go's log/slog
// field conventions (alternating key/value pairs). It is implementation
// agnostic; the default provider is zerolog-backed.
type Logger interface {
	// Debug logs a debug-level message with optional structured fields.
	Debug(msg string, fields ...any)

	// Info logs an info-level message with optional structured fields.
	Info(msg string, fields ...any)

	// Warn logs a warning-level message with optional structured fields.
	Warn(msg string, fields ...any)

	// Error logs an error-level message with optional structured fields.
	// If the first field is an error it is attached under the "error" key.
	Error(msg string, fields ...any)

	// With returns a new Logger with the given fields pre-populated.
	With(fields ...any) Logger

	// Enabled reports whether the logger emits records at the given level.
	// Use it to skip expensive field construction.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level. Values are compatible with slog.Level.
type Level int

// Standard logging levels, values compatible with slog.Level.
const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// LoggerProvider creates and configures loggers. It exists for dependency
// injection and tests.
type LoggerProvider interface {
	// GetLogger returns the default logger instance.
	GetLogger() Logger

	// GetLoggerWithName returns a logger tagged with a component name.
	GetLoggerWithName(name string) Logger

	// SetLevel sets the minimum level for loggers from this provider.
	SetLevel(level Level)
}

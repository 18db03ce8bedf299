// Package log provides the structured logging interface used by the optimizer,
// the regression orchestrator and the command line tool.
//
// The interface is slog-compatible and has two backends: a zerolog backend
// (the default, see NewZerologProvider) and a log/slog backend configured with
// SetupLogger. Library code obtains loggers through GetLogger or
// GetLoggerWithName and never configures output itself.
//
// Example usage:
//
//	logger := log.GetLoggerWithName("GradientDescent").With(
//	    log.PolicyKey, "backtracking",
//	)
//	logger.Info("Optimization finished",
//	    log.IterationKey, 42,
//	    log.LossKey, 0.0012,
//	)
package log

import (
	"context"
	"strings"

	"github.com/YuminosukeSato/descent/pkg/errors"
)

// Logger defines a structured logging interface compatible with Go's log/slog.
//
// Fields are passed as alternating key/value pairs. A bare error passed as the
// first field is recorded under ErrAttrKey.
type Logger interface {
	// Debug logs a debug-level message. Per-iteration optimizer traces are
	// emitted at this level.
	Debug(msg string, fields ...any)

	// Info logs an info-level message.
	Info(msg string, fields ...any)

	// Warn logs a warning-level message.
	//
	// Example:
	//   logger.Warn("Optimization did not converge",
	//       log.IterationKey, 10000,
	//       log.LossKey, 3.2,
	//   )
	Warn(msg string, fields ...any)

	// Error logs an error-level message.
	//
	// Example:
	//   logger.Error("Fit failed", err, log.OperationKey, log.OperationFit)
	Error(msg string, fields ...any)

	// With returns a new Logger with the given fields pre-populated.
	With(fields ...any) Logger

	// Enabled reports whether the logger emits log records at the given level.
	// Use it to avoid building expensive fields that would be discarded:
	//
	//   if logger.Enabled(ctx, LevelDebug) {
	//       logger.Debug("step", "point", point.String())
	//   }
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level, compatible with slog.Level.
type Level int

// Standard logging levels, values are compatible with slog.Level.
const (
	LevelDebug Level = -4 // Detailed diagnostic information
	LevelInfo  Level = 0  // General operational information
	LevelWarn  Level = 4  // Warning conditions
	LevelError Level = 8  // Error conditions
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

// ParseLevel converts a case-insensitive level name into a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, errors.NewValidationError("log-level", "must be one of debug, info, warn, error", s)
	}
}

// LoggerProvider defines an interface for creating and configuring loggers.
type LoggerProvider interface {
	// GetLogger returns the default logger instance.
	GetLogger() Logger

	// GetLoggerWithName returns a logger tagged with a component name.
	GetLoggerWithName(name string) Logger

	// SetLevel sets the minimum log level for all loggers created by this provider.
	SetLevel(level Level)
}

// normalizeFields moves a leading bare error under ErrAttrKey so that the
// remaining fields stay paired.
func normalizeFields(fields []any) []any {
	if len(fields) == 0 {
		return fields
	}
	if err, ok := fields[0].(error); ok && len(fields)%2 == 1 {
		out := make([]any, 0, len(fields)+1)
		out = append(out, ErrAttrKey, err)
		return append(out, fields[1:]...)
	}
	return fields
}

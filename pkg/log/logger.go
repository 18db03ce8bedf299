package log

import (
	"context"
	"io"
	"log/slog"
)

// SetupLogger installs a JSON log/slog handler writing to w as the default
// slog logger and routes GetLogger through it.
func SetupLogger(w io.Writer, level Level) {
	ops := slog.HandlerOptions{
		AddSource: true,
		Level:     ToSlogLevel(level),
		// Replace attributes to convert to CloudLogging format.
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			switch attr.Key {
			case slog.LevelKey:
				attr = slog.Attr{Key: "severity", Value: attr.Value}
			case slog.MessageKey:
				attr = slog.Attr{Key: "message", Value: attr.Value}
			case slog.SourceKey:
				attr = slog.Attr{Key: "logging.googleapis.com/sourceLocation", Value: attr.Value}
			}
			return attr
		},
	}
	handler := slog.NewJSONHandler(w, &ops)
	slog.SetDefault(slog.New(WrapByErrFmtHandler(handler)))
	SetProvider(&SlogProvider{})
}

// ToSlogLevel converts a Level to slog.Level.
func ToSlogLevel(level Level) slog.Level {
	return slog.Level(level)
}

const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"
)

// ErrAttr is a wrapper to pass err to slog.
func ErrAttr(err error) slog.Attr {
	return slog.Any(ErrAttrKey, err)
}

// SlogLogger adapts a *slog.Logger to Logger.
type SlogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger wraps l. A nil l uses slog.Default().
func NewSlogLogger(l *slog.Logger) *SlogLogger {
	if l == nil {
		l = slog.Default()
	}
	return &SlogLogger{logger: l}
}

func (s *SlogLogger) Debug(msg string, fields ...any) { s.logger.Debug(msg, normalizeFields(fields)...) }
func (s *SlogLogger) Info(msg string, fields ...any)  { s.logger.Info(msg, normalizeFields(fields)...) }
func (s *SlogLogger) Warn(msg string, fields ...any)  { s.logger.Warn(msg, normalizeFields(fields)...) }
func (s *SlogLogger) Error(msg string, fields ...any) { s.logger.Error(msg, normalizeFields(fields)...) }

func (s *SlogLogger) With(fields ...any) Logger {
	return &SlogLogger{logger: s.logger.With(normalizeFields(fields)...)}
}

func (s *SlogLogger) Enabled(ctx context.Context, level Level) bool {
	return s.logger.Enabled(ctx, ToSlogLevel(level))
}

// SlogProvider hands out loggers backed by slog.Default(). The level is owned
// by the installed handler, so SetLevel is a no-op.
type SlogProvider struct{}

func (p *SlogProvider) GetLogger() Logger { return NewSlogLogger(nil) }

func (p *SlogProvider) GetLoggerWithName(name string) Logger {
	return NewSlogLogger(slog.Default().With(ComponentKey, name))
}

func (p *SlogProvider) SetLevel(Level) {}

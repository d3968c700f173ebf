package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"
)

const (
	LevelCritical = slog.Level(12)

	serviceName = "finance-tracker"
)

// levelsByName also accepts the aliases operators tend to type.
var levelsByName = map[string]slog.Level{
	"debug":    slog.LevelDebug,
	"info":     slog.LevelInfo,
	"warn":     slog.LevelWarn,
	"warning":  slog.LevelWarn,
	"error":    slog.LevelError,
	"critical": LevelCritical,
	"fatal":    LevelCritical,
}

type Logger interface {
	Debug(message string, args ...any)
	Info(message string, args ...any)
	Warn(message string, args ...any)
	Error(message string, args ...any)
	Critical(message string, args ...any)
	// BusinessError logs an expected client-side failure at warn level.
	BusinessError(message string, err error, args ...any)
	// InternalError logs a server-side failure at error level.
	InternalError(message string, err error, args ...any)
	With(args ...any) Logger
	Named(component string) Logger
	WithRequestID(ctx context.Context) Logger
}

type Options struct {
	Level     slog.Level
	Format    string
	AddSource bool
	Service   string
}

type slogLogger struct {
	base *slog.Logger
}

// NewFromEnv reads LOG_LEVEL, LOG_FORMAT and LOG_ADD_SOURCE; ENV decides the default level.
func NewFromEnv() Logger {
	env := normalize(os.Getenv("ENV"))
	return NewWithOptions(os.Stdout, Options{
		Level:     parseLevel(os.Getenv("LOG_LEVEL"), env),
		Format:    parseFormat(os.Getenv("LOG_FORMAT")),
		AddSource: normalize(os.Getenv("LOG_ADD_SOURCE")) == "true",
		Service:   serviceName,
	})
}

func New(output io.Writer, level slog.Level, format string) Logger {
	return NewWithOptions(output, Options{Level: level, Format: format})
}

func NewWithOptions(output io.Writer, opts Options) Logger {
	handlerOpts := &slog.HandlerOptions{
		Level:       opts.Level,
		AddSource:   opts.AddSource,
		ReplaceAttr: renameCritical,
	}

	var handler slog.Handler = slog.NewTextHandler(output, handlerOpts)
	if normalize(opts.Format) == "json" {
		handler = slog.NewJSONHandler(output, handlerOpts)
	}

	base := slog.New(handler)
	if opts.Service != "" {
		base = base.With("service", opts.Service)
	}
	return &slogLogger{base: base}
}

func Discard() Logger {
	return &slogLogger{base: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func (l *slogLogger) Debug(message string, args ...any) { l.base.Debug(message, args...) }
func (l *slogLogger) Info(message string, args ...any)  { l.base.Info(message, args...) }
func (l *slogLogger) Warn(message string, args ...any)  { l.base.Warn(message, args...) }
func (l *slogLogger) Error(message string, args ...any) { l.base.Error(message, args...) }

func (l *slogLogger) Critical(message string, args ...any) {
	l.base.Log(context.Background(), LevelCritical, message, args...)
}

func (l *slogLogger) BusinessError(message string, err error, args ...any) {
	l.logFailure(slog.LevelWarn, "business", message, err, args)
}

func (l *slogLogger) InternalError(message string, err error, args ...any) {
	l.logFailure(slog.LevelError, "internal", message, err, args)
}

// logFailure is a no-op for a nil error so callers can log unconditionally.
func (l *slogLogger) logFailure(level slog.Level, kind, message string, err error, args []any) {
	if err == nil {
		return
	}
	attrs := make([]any, 0, len(args)+4)
	attrs = append(attrs, "err", err, "error_kind", kind)
	attrs = append(attrs, args...)
	l.base.Log(context.Background(), level, message, attrs...)
}

func (l *slogLogger) With(args ...any) Logger {
	return &slogLogger{base: l.base.With(args...)}
}

func (l *slogLogger) Named(component string) Logger {
	return l.With("component", component)
}

// WithRequestID tags the logger with the chi request id carried by ctx, if any.
func (l *slogLogger) WithRequestID(ctx context.Context) Logger {
	if requestID := chimw.GetReqID(ctx); requestID != "" {
		return l.With("request_id", requestID)
	}
	return l
}

func parseLevel(value, env string) slog.Level {
	if level, ok := levelsByName[normalize(value)]; ok {
		return level
	}
	if env == "development" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func parseFormat(value string) string {
	if normalize(value) == "text" {
		return "text"
	}
	return "json"
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func renameCritical(_ []string, attr slog.Attr) slog.Attr {
	if attr.Key != slog.LevelKey {
		return attr
	}
	if level, ok := attr.Value.Any().(slog.Level); ok && level == LevelCritical {
		attr.Value = slog.StringValue("CRITICAL")
	}
	return attr
}

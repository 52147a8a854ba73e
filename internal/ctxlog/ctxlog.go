// Package ctxlog provides a context-based logger built on log/slog.
//
// The level is read from an environment variable derived from the executable
// name: a binary called "findstr" reads FINDSTR_LOG_LEVEL. Accepted values are
// DEBUG, INFO, WARN and ERROR; anything else means WARN, which keeps the tools
// quiet unless something goes wrong.
package ctxlog

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

type loggerKey struct{}

// LevelVar is shared by the default logger so the level can be changed at runtime.
var LevelVar = &slog.LevelVar{}

// DefaultLogger writes to stderr so stdout only ever carries results.
var DefaultLogger = slog.New(NewConsoleHandler(os.Stderr, &slog.HandlerOptions{
	Level: LevelVar,
}))

func init() {
	LevelVar.Set(levelFromEnv(os.Executable))
}

// New returns a context carrying logger. A nil logger means DefaultLogger.
func New(ctx context.Context, logger *slog.Logger) context.Context {
	if logger == nil {
		logger = DefaultLogger
	}

	return context.WithValue(ctx, loggerKey{}, logger)
}

// Logger returns the logger from the context, or the default logger if not found.
func Logger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(loggerKey{}).(*slog.Logger)
	if !ok || logger == nil {
		return DefaultLogger
	}

	return logger
}

// Debug logs a debug message with the given context.
func Debug(ctx context.Context, msg string, args ...any) {
	Logger(ctx).DebugContext(ctx, msg, args...)
}

// Info logs an info message with the given context.
func Info(ctx context.Context, msg string, args ...any) {
	Logger(ctx).InfoContext(ctx, msg, args...)
}

// Warn logs a warning message with the given context.
func Warn(ctx context.Context, msg string, args ...any) {
	Logger(ctx).WarnContext(ctx, msg, args...)
}

// Error logs an error message with the given context.
func Error(ctx context.Context, msg string, args ...any) {
	Logger(ctx).ErrorContext(ctx, msg, args...)
}

// EnvName returns the log level variable consulted for the named executable.
func EnvName(executable string) string {
	name := executable
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSuffix(name, ".exe")
	name = strings.NewReplacer("-", "_", ".", "_").Replace(name)

	return strings.ToUpper(name) + "_LOG_LEVEL"
}

// ParseLevel maps a level name to a slog.Level, defaulting to WARN.
func ParseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func levelFromEnv(executable func() (string, error)) slog.Level {
	exe, err := executable()
	if err != nil {
		return slog.LevelWarn
	}

	return ParseLevel(os.Getenv(EnvName(exe)))
}

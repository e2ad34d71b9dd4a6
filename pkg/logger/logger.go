// Package logger is the structured logging facade for the game service. It
// wraps log/slog behind a small context-first interface so callers never
// import slog directly, and it tags every record with the call site.
package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Frames between runtime.Caller and the real call site: caller, emit, and
// the public level method.
const callerSkipFrames = 3

// Logger is the interface the rest of the service logs through. Every method
// takes a context so handlers can thread cancellation and request scope down
// to the sink.
type Logger interface {
	Debug(ctx context.Context, msg string, fields ...Field)
	Info(ctx context.Context, msg string, fields ...Field)
	Warn(ctx context.Context, msg string, fields ...Field)
	Error(ctx context.Context, msg string, fields ...Field)
	Fatal(ctx context.Context, msg string, fields ...Field)

	Named(name string) Logger
}

// Field is one structured key-value attribute on a log record.
type Field struct {
	Key   string
	Value interface{}
}

// Field constructors.
func String(key, val string) Field          { return Field{Key: key, Value: val} }
func Int(key string, val int) Field         { return Field{Key: key, Value: val} }
func Float64(key string, val float64) Field { return Field{Key: key, Value: val} }
func Any(key string, val interface{}) Field { return Field{Key: key, Value: val} }
func Error(err error) Field                 { return Field{Key: "error", Value: err} }

// slogLogger backs the Logger interface with a slog.Logger.
type slogLogger struct {
	sl *slog.Logger
}

func (l *slogLogger) Named(name string) Logger {
	return &slogLogger{sl: l.sl.WithGroup(name)}
}

func (l *slogLogger) emit(ctx context.Context, level slog.Level, msg string, fields []Field) {
	attrs := make([]slog.Attr, 0, len(fields)+1)
	for _, f := range fields {
		attrs = append(attrs, slog.Any(f.Key, f.Value))
	}
	attrs = append(attrs, slog.String("source", caller()))
	l.sl.LogAttrs(ctx, level, msg, attrs...)
}

func (l *slogLogger) Debug(ctx context.Context, msg string, fields ...Field) {
	l.emit(ctx, slog.LevelDebug, msg, fields)
}

func (l *slogLogger) Info(ctx context.Context, msg string, fields ...Field) {
	l.emit(ctx, slog.LevelInfo, msg, fields)
}

func (l *slogLogger) Warn(ctx context.Context, msg string, fields ...Field) {
	l.emit(ctx, slog.LevelWarn, msg, fields)
}

func (l *slogLogger) Error(ctx context.Context, msg string, fields ...Field) {
	l.emit(ctx, slog.LevelError, msg, fields)
}

// Fatal logs at error level and exits. Reserved for startup failures before
// the server is listening.
func (l *slogLogger) Fatal(ctx context.Context, msg string, fields ...Field) {
	l.emit(ctx, slog.LevelError, msg, fields)
	os.Exit(1)
}

// caller reports the logging call site as path/file.go:line, relative to the
// working directory when possible.
func caller() string {
	_, file, line, ok := runtime.Caller(callerSkipFrames)
	if !ok {
		return "unknown:0"
	}
	if cwd, err := os.Getwd(); err == nil {
		if rel, err := filepath.Rel(cwd, file); err == nil {
			return fmt.Sprintf("%s:%d", rel, line)
		}
	}
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}

var (
	global   Logger
	levelVar slog.LevelVar
)

// Init installs the global text-handler logger at info level. Call it once at
// startup before anything asks for Get.
func Init() error {
	levelVar.Set(slog.LevelInfo)
	h := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: &levelVar})
	global = &slogLogger{sl: slog.New(h)}
	return nil
}

// Get returns the global logger. It panics when Init has not run; silently
// swallowing logs would be worse than failing loudly.
func Get() Logger {
	if global == nil {
		panic("logger not initialized. Call logger.Init first")
	}
	return global
}

// Named returns the global logger scoped under a group name.
func Named(name string) Logger {
	return Get().Named(name)
}

// Sync flushes buffered entries. The slog text handler writes through, so
// this only exists to keep shutdown paths uniform.
func Sync() error {
	return nil
}

// SetLevel changes the global handler's minimum level.
func SetLevel(level slog.Level) { levelVar.Set(level) }

// SetLevelString parses debug, info, warn/warning, or error (case-insensitive;
// empty means info) and applies it.
func SetLevelString(level string) error {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		SetLevel(slog.LevelDebug)
	case "", "info":
		SetLevel(slog.LevelInfo)
	case "warn", "warning":
		SetLevel(slog.LevelWarn)
	case "error":
		SetLevel(slog.LevelError)
	default:
		return fmt.Errorf("unknown log level: %s", level)
	}
	return nil
}

package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Level is the minimum severity a logger emits.
type Level int

// Log levels, lowest to highest severity.
const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

// String returns the lowercase name of the level.
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "debug"
	case InfoLevel:
		return "info"
	case WarnLevel:
		return "warn"
	case ErrorLevel:
		return "error"
	default:
		return "unknown"
	}
}

// ParseLevel converts a level name to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DebugLevel, nil
	case "info", "":
		return InfoLevel, nil
	case "warn", "warning":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	default:
		return InfoLevel, fmt.Errorf("log: unknown level %q", s)
	}
}

func (l Level) slog() slog.Level {
	switch l {
	case DebugLevel:
		return slog.LevelDebug
	case WarnLevel:
		return slog.LevelWarn
	case ErrorLevel:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Field is one typed key/value attached to a log entry.
type Field struct {
	Key   string
	Value any
}

// Str builds a string field.
func Str(key, value string) Field { return Field{Key: key, Value: value} }

// Int builds an int field.
func Int(key string, value int) Field { return Field{Key: key, Value: value} }

// Int64 builds an int64 field.
func Int64(key string, value int64) Field { return Field{Key: key, Value: value} }

// Uint32 builds a uint32 field.
func Uint32(key string, value uint32) Field { return Field{Key: key, Value: value} }

// Bool builds a bool field.
func Bool(key string, value bool) Field { return Field{Key: key, Value: value} }

// Dur builds a duration field.
func Dur(key string, value time.Duration) Field { return Field{Key: key, Value: value} }

// Err builds the conventional "error" field.
func Err(err error) Field { return Field{Key: "error", Value: err} }

// Component tags entries with the emitting component's name.
func Component(name string) Field { return Field{Key: "component", Value: name} }

// Logger is the logging interface flexbuf components depend on.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// With returns a Logger that attaches fields to every entry.
	With(fields ...Field) Logger
}

// Option configures a Logger built by New.
type Option func(*options)

type options struct {
	level  Level
	format string
	w      io.Writer
}

// WithLevel sets the minimum emitted level. Default InfoLevel.
func WithLevel(l Level) Option { return func(o *options) { o.level = l } }

// WithFormat selects FormatText or FormatJSON. Default FormatText.
func WithFormat(f string) Option { return func(o *options) { o.format = f } }

// WithWriter sets the destination. Default os.Stderr.
func WithWriter(w io.Writer) Option { return func(o *options) { o.w = w } }

// New builds a Logger on a log/slog backend.
func New(opts ...Option) Logger {
	o := options{level: InfoLevel, format: FormatText, w: os.Stderr}
	for _, opt := range opts {
		opt(&o)
	}
	ho := &slog.HandlerOptions{Level: o.level.slog()}
	var h slog.Handler
	if o.format == FormatJSON {
		h = slog.NewJSONHandler(o.w, ho)
	} else {
		h = slog.NewTextHandler(o.w, ho)
	}
	return &baseLogger{sl: slog.New(h)}
}

// ApplyConfig builds a Logger from string-typed configuration, typically
// environment-sourced.
func ApplyConfig(level, format string) (Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatText, FormatJSON, "":
	default:
		return nil, fmt.Errorf("log: unknown format %q", format)
	}
	return New(WithLevel(lvl), WithFormat(format)), nil
}

type baseLogger struct {
	sl *slog.Logger
}

func attrs(fields []Field) []any {
	out := make([]any, 0, len(fields))
	for _, f := range fields {
		out = append(out, slog.Any(f.Key, f.Value))
	}
	return out
}

func (b *baseLogger) Debug(msg string, fields ...Field) { b.sl.Debug(msg, attrs(fields)...) }
func (b *baseLogger) Info(msg string, fields ...Field)  { b.sl.Info(msg, attrs(fields)...) }
func (b *baseLogger) Warn(msg string, fields ...Field)  { b.sl.Warn(msg, attrs(fields)...) }
func (b *baseLogger) Error(msg string, fields ...Field) { b.sl.Error(msg, attrs(fields)...) }

func (b *baseLogger) With(fields ...Field) Logger {
	return &baseLogger{sl: b.sl.With(attrs(fields)...)}
}

// NewNop returns a Logger that discards everything. For tests.
func NewNop() Logger {
	return &baseLogger{sl: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

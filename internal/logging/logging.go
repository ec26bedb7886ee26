// Package logging wraps zap with the request-scoped child-logger and
// header-redaction conventions SPEC_FULL.md §4.8 calls for.
package logging

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// redactedHeaders never reach a log line in cleartext.
var redactedHeaders = map[string]bool{
	"authorization": true,
	"cookie":        true,
	"x-api-key":     true,
}

// Logger adapts *zap.SugaredLogger to the narrow Info/Warn/Error surface
// the engine, proxyfront and config packages depend on, so none of them
// import zap directly.
type Logger struct {
	sugar *zap.SugaredLogger
}

// New builds a Logger at the given level ("debug", "info", "warn",
// "error"), writing structured JSON to stderr.
func New(level string) (*Logger, error) {
	lvl := zapcore.InfoLevel
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	z, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{sugar: z.Sugar()}, nil
}

// With returns a child logger carrying the given key/value pairs on every
// subsequent line, used to stamp a request_id across one request's log
// lines without threading it through every call site.
func (l *Logger) With(kv ...any) *Logger {
	return &Logger{sugar: l.sugar.With(kv...)}
}

func (l *Logger) Info(msg string, fields ...any)  { l.sugar.Infow(msg, redact(fields)...) }
func (l *Logger) Warn(msg string, fields ...any)  { l.sugar.Warnw(msg, redact(fields)...) }
func (l *Logger) Error(msg string, fields ...any) { l.sugar.Errorw(msg, redact(fields)...) }

// Sync flushes any buffered log entries; call before process exit.
func (l *Logger) Sync() error { return l.sugar.Sync() }

// redact replaces the value of any key/value pair whose key (case
// insensitively) names a sensitive header, preserving pair alignment.
func redact(fields []any) []any {
	out := make([]any, len(fields))
	copy(out, fields)
	for i := 0; i+1 < len(out); i += 2 {
		key, ok := out[i].(string)
		if !ok {
			continue
		}
		if redactedHeaders[strings.ToLower(key)] {
			out[i+1] = "[redacted]"
		}
	}
	return out
}

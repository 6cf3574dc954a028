// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger wraps zerolog for the fetcher server and the vfetch client.
//
// The server logs JSON to stdout. The client owns the terminal, so its
// entries go to a file under the user cache directory. Request handlers get
// their logger from the request context, which carries the trace id.
package logger

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LevelEnv overrides the default debug level, e.g. LOG_LEVEL=info.
const LevelEnv = "LOG_LEVEL"

// Field names shared by every component.
const (
	FieldRole    = "role"
	FieldTaskID  = "task_id"
	FieldTraceID = "trace_id"
)

// Logger embeds zerolog.Logger, so the whole zerolog API is available.
type Logger struct {
	zerolog.Logger
}

// NewLogger returns a JSON logger writing to stdout with role, timestamp
// and caller function fields.
func NewLogger(role string) *Logger {
	return newLogger(os.Stdout, role)
}

// NewClientLogger returns a logger appending to path. Entries are discarded
// when path is empty or the file cannot be opened.
func NewClientLogger(role, path string) *Logger {
	return newLogger(openLogFile(path), role)
}

// DefaultClientLogPath is <user cache dir>/vfetch/vfetch.log, or "" when the
// cache directory is unknown.
func DefaultClientLogPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "vfetch", "vfetch.log")
}

func openLogFile(path string) io.Writer {
	if path == "" {
		return io.Discard
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return io.Discard
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return io.Discard
	}
	return f
}

func newLogger(out io.Writer, role string) *Logger {
	zerolog.SetGlobalLevel(levelFromEnv())
	zerolog.CallerFieldName = "func"
	zerolog.CallerMarshalFunc = func(pc uintptr, _ string, _ int) string {
		return runtime.FuncForPC(pc).Name()
	}

	return &Logger{zerolog.New(out).With().Str(FieldRole, role).Timestamp().Caller().Logger()}
}

func levelFromEnv() zerolog.Level {
	raw := strings.ToLower(strings.TrimSpace(os.Getenv(LevelEnv)))
	if raw == "" {
		return zerolog.DebugLevel
	}
	level, err := zerolog.ParseLevel(raw)
	if err != nil {
		return zerolog.DebugLevel
	}
	return level
}

// Nop discards everything.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// WithTask returns a child logger tagged with the task id.
func (l *Logger) WithTask(taskID string) *Logger {
	return l.withField(FieldTaskID, taskID)
}

// WithTraceID returns a child logger tagged with the request trace id.
func (l *Logger) WithTraceID(traceID string) *Logger {
	return l.withField(FieldTraceID, traceID)
}

func (l *Logger) withField(key, value string) *Logger {
	return &Logger{l.With().Str(key, value).Logger()}
}

// FromContext returns the logger stored in ctx with zerolog's WithContext.
// Without one it falls back to zerolog's default logger, never nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}

// FromRequest is FromContext for the request context.
func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}

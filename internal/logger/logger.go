// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger provides a thin wrapper around zerolog.Logger that adds
// convenience constructors, trace-aware child loggers and context helpers
// used throughout the go-fall service.
//
// The Logger type embeds zerolog.Logger so all standard zerolog methods
// (Debug, Info, Warn, Error, Fatal, etc.) are available directly on *Logger.
// Application code should pass *Logger by pointer and obtain request-scoped
// loggers via FromContext or FromRequest.
package logger

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/MKhiriev/go-fall/internal/trace"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Output formats accepted by [Options.Format].
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// Trace field names attached by [Logger.WithTrace].
const (
	TraceIDField      = "trace_id"
	SpanIDField       = "span_id"
	ParentSpanIDField = "parent_span_id"
)

// Logger is a thin wrapper around zerolog.Logger.
type Logger struct {
	zerolog.Logger
}

// Options controls the logger built by [NewConfiguredLogger].
type Options struct {
	// Level is a zerolog level name ("trace", "debug", "info", ...).
	// Empty means "info".
	Level string

	// Format is either [FormatJSON] (default) or [FormatConsole].
	Format string

	// Output receives the log lines. Nil means os.Stdout.
	Output io.Writer
}

// NewLogger constructs a *Logger for the given role label (usually the
// application name).
//
// The logger is configured with:
//   - global log level set to Debug;
//   - a "role" field set to role;
//   - a timestamp field added to every log entry;
//   - a "func" caller field holding the fully-qualified function name.
//
// Output is written to os.Stdout in JSON format.
func NewLogger(role string) *Logger {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	setGlobalFormat()

	logger := zerolog.New(os.Stdout).With().
		Str(roleField, role).
		Timestamp().
		Caller().
		Logger()

	return &Logger{logger}
}

// NewConfiguredLogger is like [NewLogger] but honours the level, format and
// output given in opts.
func NewConfiguredLogger(role string, opts Options) (*Logger, error) {
	level := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, fmt.Errorf("error parsing log level %q: %w", opts.Level, err)
		}
		level = parsed
	}

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	switch strings.ToLower(opts.Format) {
	case "", FormatJSON:
	case FormatConsole:
		out = newConsoleWriter(out)
	default:
		return nil, fmt.Errorf("unknown log format %q", opts.Format)
	}

	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	setGlobalFormat()

	logger := zerolog.New(out).Level(level).With().
		Str(roleField, role).
		Timestamp().
		Caller().
		Logger()

	return &Logger{logger}, nil
}

func setGlobalFormat() {
	zerolog.TimeFieldFormat = TimeFormat
	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return runtime.FuncForPC(pc).Name()
	}
	zerolog.CallerFieldName = "func"
}

// Nop returns a *Logger that discards all log output.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a new *Logger that inherits all fields of the
// receiver.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// WithTrace returns a child logger whose entries carry the ids of ot.
// An empty parent span id is still written so that every traced entry has
// the same shape.
func (l *Logger) WithTrace(ot trace.OpenTrace) *Logger {
	return &Logger{l.With().
		Str(TraceIDField, ot.TraceID).
		Str(SpanIDField, ot.SpanID).
		Str(ParentSpanIDField, ot.ParentSpanID).
		Logger()}
}

// FromRequest extracts the zerolog.Logger stored in the request's context by
// zerolog's log.Ctx helper and returns it as a *Logger.
func FromRequest(r *http.Request) *Logger {
	return &Logger{*log.Ctx(r.Context())}
}

// FromContext extracts the zerolog.Logger stored in ctx by zerolog's log.Ctx
// helper and returns it as a *Logger.
//
// If no logger has been attached to ctx, zerolog returns its default context
// logger, so this function never returns nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}

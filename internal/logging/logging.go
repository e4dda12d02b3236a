// Package logging owns the process-wide slog configuration shared by the
// server and migrate binaries.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"
)

// stackDepth bounds the goroutine dump attached to error records.
const stackDepth = 4096

var levelNames = map[string]slog.Level{
	"DEBUG":   slog.LevelDebug,
	"INFO":    slog.LevelInfo,
	"WARN":    slog.LevelWarn,
	"WARNING": slog.LevelWarn,
	"ERROR":   slog.LevelError,
}

// Setup makes a JSON logger on stdout the default, tagging every record
// with app. LOG_LEVEL picks the threshold.
func Setup(app string) {
	slog.SetDefault(New(os.Stdout, os.Getenv("LOG_LEVEL")).With("app", app))
}

// New returns a JSON logger at the named level writing to w.
// Records at ERROR and above carry a "stacktrace" attribute.
func New(w io.Writer, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level), AddSource: true}
	return slog.New(withStack{slog.NewJSONHandler(w, opts)})
}

// parseLevel falls back to INFO for empty or unknown names.
func parseLevel(name string) slog.Level {
	if lvl, ok := levelNames[strings.ToUpper(strings.TrimSpace(name))]; ok {
		return lvl
	}
	return slog.LevelInfo
}

// Fatal logs msg at ERROR and terminates the process with status 1.
func Fatal(msg string, args ...any) {
	slog.Error(msg, args...)
	os.Exit(1)
}

type withStack struct {
	next slog.Handler
}

func (h withStack) Enabled(ctx context.Context, lvl slog.Level) bool {
	return h.next.Enabled(ctx, lvl)
}

func (h withStack) Handle(ctx context.Context, rec slog.Record) error {
	if rec.Level >= slog.LevelError {
		trace := make([]byte, stackDepth)
		trace = trace[:runtime.Stack(trace, false)]
		rec.AddAttrs(slog.String("stacktrace", string(trace)))
	}
	return h.next.Handle(ctx, rec)
}

func (h withStack) WithAttrs(attrs []slog.Attr) slog.Handler {
	return withStack{h.next.WithAttrs(attrs)}
}

func (h withStack) WithGroup(name string) slog.Handler {
	return withStack{h.next.WithGroup(name)}
}

package handler

import (
	"log/slog"
	"net/http"
	"time"
)

// meteredWriter remembers what a handler sent so the access log can report it.
type meteredWriter struct {
	http.ResponseWriter
	status int
	bytes  int64
}

func (m *meteredWriter) WriteHeader(code int) {
	if m.status == 0 {
		m.status = code
	}
	m.ResponseWriter.WriteHeader(code)
}

func (m *meteredWriter) Write(p []byte) (int, error) {
	if m.status == 0 {
		m.status = http.StatusOK
	}
	n, err := m.ResponseWriter.Write(p)
	m.bytes += int64(n)
	return n, err
}

// Unwrap lets http.NewResponseController reach Flush and deadlines.
func (m *meteredWriter) Unwrap() http.ResponseWriter { return m.ResponseWriter }

// code is the status the client saw; a handler that never wrote anything
// still produced an implicit 200.
func (m *meteredWriter) code() int {
	if m.status == 0 {
		return http.StatusOK
	}
	return m.status
}

func accessLevel(status int) slog.Level {
	if status >= http.StatusInternalServerError {
		return slog.LevelWarn
	}
	return slog.LevelInfo
}

// RequestLogger writes one access record per request. The query string is
// omitted so contact filters and search terms stay out of the logs.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		began := time.Now()
		mw := &meteredWriter{ResponseWriter: w}
		next.ServeHTTP(mw, r)

		status := mw.code()
		slog.LogAttrs(r.Context(), accessLevel(status), "http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", status),
			slog.Int64("bytes", mw.bytes),
			slog.Int64("duration_ms", time.Since(began).Milliseconds()),
			slog.String("remote_addr", r.RemoteAddr),
		)
	})
}

// Package middle contains chi middleware for the GGP server: a GGP player
// has no login or persisted state, so the only middleware here is a
// request-scoped access-log wrapper.
package middle

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Middleware is a function that takes a handler and returns a new handler
// which wraps the given one and provides some additional functionality.
type Middleware func(next http.Handler) http.Handler

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (sw *statusWriter) WriteHeader(status int) {
	sw.status = status
	sw.ResponseWriter.WriteHeader(status)
}

// AccessLog returns a Middleware that logs one structured line per request
// with method, path, status, and latency. Per-message detail (game id,
// message kind) is logged further down the call stack by the endpoint
// itself, which has a correlation-id-bound child logger; this middleware
// only sees the transport-level facts.
func AccessLog(log *zap.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()
			next.ServeHTTP(sw, req)
			log.Debug("request",
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
				zap.Int("status", sw.status),
				zap.Duration("latency", time.Since(start)),
			)
		})
	}
}

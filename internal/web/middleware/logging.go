// Package middleware provides HTTP middleware for the web server.
package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/JonMunkholm/stockrisk/internal/logging"
)

// Logger logs one structured line per request: method, path, status,
// duration_ms, bytes, ip and user_agent, plus the chi request id.
//
// Server errors log at error level. /metrics scrapes log at debug.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		attrs := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration_ms", time.Since(start).Milliseconds(),
			"ip", r.RemoteAddr,
			"user_agent", r.UserAgent(),
		}

		logger := logging.FromContext(r.Context())
		switch {
		case r.URL.Path == "/metrics":
			logger.Debug("request", attrs...)
		case status >= http.StatusInternalServerError:
			logger.Error("request", attrs...)
		default:
			logger.Info("request", attrs...)
		}
	})
}

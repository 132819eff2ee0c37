package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/currykit/websession/pkg/logger"
)

// statusRecorder captures the response status for the access log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Logging logs one structured line per request: method, path, status,
// elapsed time, and request/session IDs when present in the context.
func Logging(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			attrs := []any{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", rec.status),
				logger.Elapsed(start),
			}
			if id, ok := GetRequestID(r.Context()); ok {
				attrs = append(attrs, slog.String("request_id", id))
			}
			if sid, ok := GetSessionID(r.Context()); ok {
				attrs = append(attrs, logger.SessionID(sid))
			}
			log.Info("request", attrs...)
		})
	}
}

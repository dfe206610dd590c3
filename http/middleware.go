package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// FunctionKeyHeader carries the caller's function key.
const FunctionKeyHeader = "x-functions-key"

// KeyStore resolves a presented function key to its name.
type KeyStore interface {
	Lookup(value string) (string, error)
	Len() int
}

// FunctionKeyMiddleware requires a valid function key in the x-functions-key
// header or the code query parameter. A nil or empty store disables the check
// (public access).
func FunctionKeyMiddleware(keys KeyStore, logger *slog.Logger) func(http.Handler) http.Handler {
	if keys == nil || keys.Len() == 0 {
		return func(next http.Handler) http.Handler {
			return next
		}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			presented := r.Header.Get(FunctionKeyHeader)
			if presented == "" {
				presented = r.URL.Query().Get("code")
			}

			name, err := keys.Lookup(presented)
			if err != nil {
				logger.WarnContext(r.Context(), "rejected request without valid function key",
					"path", r.URL.Path,
					"request_id", middleware.GetReqID(r.Context()),
				)
				HandleError(w, ErrUnauthorized)
				return
			}

			logger.DebugContext(r.Context(), "function key accepted", "key", name)
			next.ServeHTTP(w, r)
		})
	}
}

// RequestLogger logs one line per request with its status and duration.
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			logger.InfoContext(r.Context(), "http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

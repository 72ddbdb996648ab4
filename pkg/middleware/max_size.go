package middleware

import (
	"net/http"

	"smarthost/pkg/logger"
)

// MaxRequestSize caps the request body. Requests that declare a larger
// Content-Length are rejected up front; others are cut off while reading.
func MaxRequestSize(limit int64, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				log.Warn("Request body too large",
					"request_id", RequestIDFrom(r),
					"content_length", r.ContentLength,
					"limit", limit,
					"path", r.URL.Path,
				)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusRequestEntityTooLarge)
				_, _ = w.Write([]byte(`{"error":"Request body too large"}`))
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}

package middleware

import (
	"net/http"
	"time"

	"movie-basket/pkg/monitoring"

	"github.com/go-chi/chi/v5"
)

// Metrics records request counts and latency labelled by the matched chi route
// pattern, keeping label cardinality bounded.
func Metrics(metrics *monitoring.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(rw, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					route = pattern
				}
			}
			metrics.ObserveHTTP(r.Method, route, rw.statusCode, time.Since(start))
		})
	}
}

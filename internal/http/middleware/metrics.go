package middleware

import (
	"net/http"
	"time"

	"fyyur/internal/metrics"
)

// Metrics records request counts and latency labelled by the matched route
// pattern. It must sit inside any middleware that replaces the request, so
// the pattern set by the mux is visible afterwards.
func Metrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			m.TrackInFlight(true)
			defer m.TrackInFlight(false)

			rw := wrap(w)
			next.ServeHTTP(rw, r)

			route := r.Pattern
			if route == "" {
				route = "unmatched"
			}
			m.RecordHTTPRequest(r.Method, route, rw.statusCode, time.Since(start))
		})
	}
}

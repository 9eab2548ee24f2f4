package middleware

import (
	"net/http"
	"time"

	"bar-council-campaign/metrics"
)

// Metrics records Prometheus request metrics under the route pattern, which keeps
// label cardinality bounded
func Metrics(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		done := metrics.TrackInFlight()
		defer done()

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)

		metrics.ObserveRequest(r.Method, route, rec.Status(), time.Since(start))
	})
}

package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// MetricsMiddleware records request count and duration per API resource.
// Only /api/ requests are counted.
func MetricsMiddleware(metrics *Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			resource, ok := resourceLabel(r.URL.Path)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			metrics.RequestDuration.WithLabelValues(r.Method, resource).Observe(time.Since(start).Seconds())
			metrics.RequestsTotal.WithLabelValues(r.Method, resource, statusClass(rec.status)).Inc()
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// resourceLabel maps /api/products/123/reviews to "products". Unknown
// resources collapse to "other" to keep label cardinality fixed.
func resourceLabel(path string) (string, bool) {
	rest, ok := strings.CutPrefix(path, "/api/")
	if !ok {
		return "", false
	}
	first, _, _ := strings.Cut(rest, "/")
	switch first {
	case "users", "products", "orders":
		return first, true
	}
	return "other", true
}

// statusClass turns 404 into "4xx".
func statusClass(code int) string {
	if code < 100 || code > 599 {
		return "unknown"
	}
	return strconv.Itoa(code/100) + "xx"
}

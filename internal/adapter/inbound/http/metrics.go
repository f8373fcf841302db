package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the storefront API.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	LoginAttempts   *prometheus.CounterVec
	OrdersCreated   prometheus.Counter
	NotModified     prometheus.Counter
}

// NewMetrics creates and registers all metrics with the given registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		RequestsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "storefront",
				Name:      "requests_total",
				Help:      "Total number of API requests processed",
			},
			[]string{"method", "resource", "status"}, // status=2xx/4xx/...
		),
		RequestDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "storefront",
				Name:      "request_duration_seconds",
				Help:      "Request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "resource"},
		),
		LoginAttempts: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "storefront",
				Name:      "login_attempts_total",
				Help:      "Login attempts by result",
			},
			[]string{"result"}, // result=success/failure
		),
		OrdersCreated: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Namespace: "storefront",
				Name:      "orders_created_total",
				Help:      "Total orders placed",
			},
		),
		NotModified: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Namespace: "storefront",
				Name:      "not_modified_total",
				Help:      "Catalogue reads answered with 304 Not Modified",
			},
		),
	}
}

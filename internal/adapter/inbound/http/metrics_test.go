package http

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	if m.RequestsTotal == nil {
		t.Error("RequestsTotal not initialized")
	}
	if m.RequestDuration == nil {
		t.Error("RequestDuration not initialized")
	}
	if m.LoginAttempts == nil {
		t.Error("LoginAttempts not initialized")
	}
	if m.OrdersCreated == nil {
		t.Error("OrdersCreated not initialized")
	}
	if m.NotModified == nil {
		t.Error("NotModified not initialized")
	}
}

func TestMetricsRecording(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.RequestsTotal.WithLabelValues("POST", "orders", "2xx").Inc()
	if count := testutil.ToFloat64(m.RequestsTotal.WithLabelValues("POST", "orders", "2xx")); count != 1 {
		t.Errorf("RequestsTotal = %v, want 1", count)
	}

	m.OrdersCreated.Add(2)
	if count := testutil.ToFloat64(m.OrdersCreated); count != 2 {
		t.Errorf("OrdersCreated = %v, want 2", count)
	}

	m.RequestDuration.WithLabelValues("POST", "orders").Observe(0.1)
	gathered, err := reg.Gather()
	if err != nil {
		t.Fatalf("Failed to gather metrics: %v", err)
	}
	found := false
	for _, mf := range gathered {
		if strings.Contains(mf.GetName(), "request_duration") {
			found = true
			break
		}
	}
	if !found {
		t.Error("request_duration histogram not found in gathered metrics")
	}
}

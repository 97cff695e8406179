package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func getCounterVecValue(cv *prometheus.CounterVec, labels ...string) float64 {
	c, err := cv.GetMetricWithLabelValues(labels...)
	if err != nil {
		return 0
	}
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		return 0
	}
	return m.GetCounter().GetValue()
}

func TestMetrics_CatalogRequestsTotal(t *testing.T) {
	before := getCounterVecValue(CatalogRequestsTotal, "search_shows", "success")
	CatalogRequestsTotal.WithLabelValues("search_shows", "success").Inc()
	after := getCounterVecValue(CatalogRequestsTotal, "search_shows", "success")

	if after != before+1 {
		t.Errorf("Expected success counter to increment by 1, got diff %.0f", after-before)
	}
}

func TestMetrics_FlowsTotal_Error(t *testing.T) {
	before := getCounterVecValue(FlowsTotal, "expand", "error")
	FlowsTotal.WithLabelValues("expand", "error").Inc()
	after := getCounterVecValue(FlowsTotal, "expand", "error")

	if after != before+1 {
		t.Errorf("Expected error counter to increment by 1, got diff %.0f", after-before)
	}
}

func TestMetrics_CatalogRequestDuration(t *testing.T) {
	CatalogRequestDuration.WithLabelValues("list_episodes").Observe(0.25)

	h, err := CatalogRequestDuration.GetMetricWithLabelValues("list_episodes")
	if err != nil {
		t.Fatalf("GetMetricWithLabelValues: %v", err)
	}
	var m dto.Metric
	if err := h.(prometheus.Metric).Write(&m); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if m.GetHistogram().GetSampleCount() == 0 {
		t.Error("Expected at least one observation")
	}
}

func TestMetrics_NewHTTPServer(t *testing.T) {
	srv := NewHTTPServer("localhost", 9090)

	if srv.Addr != "localhost:9090" {
		t.Errorf("Expected address 'localhost:9090', got '%s'", srv.Addr)
	}

	if srv.Handler == nil {
		t.Error("Expected handler to be set")
	}
}

func TestMetrics_NewHTTPServer_DefaultPort(t *testing.T) {
	srv := NewHTTPServer("0.0.0.0", 0)

	if srv.Addr != "0.0.0.0:9090" {
		t.Errorf("Expected address '0.0.0.0:9090', got '%s'", srv.Addr)
	}
}

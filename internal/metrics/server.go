package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewHTTPServer creates an HTTP server that exposes Prometheus metrics at /metrics,
// separate from the page host so it can be bound to an internal interface.
func NewHTTPServer(address string, port int) *http.Server {
	if port == 0 {
		port = 9090
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.InstrumentMetricHandler(
		prometheus.DefaultRegisterer,
		promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{}),
	))
	return &http.Server{
		Addr:              fmt.Sprintf("%s:%d", address, port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

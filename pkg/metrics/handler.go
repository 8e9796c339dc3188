package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewPrometheusMetricsHandler exposes the default registry, which carries the
// middleware collectors and the marketplace stats collector.
func NewPrometheusMetricsHandler() http.Handler {
	return promhttp.Handler()
}

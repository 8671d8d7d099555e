package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the collectors the service exposes on /metrics.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
	Greetings        prometheus.Counter
	ExporterFailures *prometheus.CounterVec
}

// New registers the service collectors, plus the Go runtime and process
// collectors, on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "greeter_http_requests_total",
				Help: "HTTP requests served, by route, method and status.",
			},
			[]string{"route", "method", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "greeter_http_request_duration_seconds",
				Help:    "HTTP request latency, by route and method.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
		Greetings: factory.NewCounter(prometheus.CounterOpts{
			Name: "greeter_greetings_total",
			Help: "Greetings produced.",
		}),
		ExporterFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "greeter_telemetry_exporter_failures_total",
				Help: "Trace exporter initialization failures by exporter protocol.",
			},
			[]string{"exporter"},
		),
	}
}

// RecordExporterFailure counts a failed trace exporter initialization.
func (m *Metrics) RecordExporterFailure(exporter string) {
	if exporter == "" {
		exporter = "unknown"
	}
	m.ExporterFailures.WithLabelValues(exporter).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

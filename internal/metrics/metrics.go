package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so that several instances (one per test
// server, for example) never clash on registration.
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	requestDuration  *prometheus.HistogramVec
	requestsInFlight prometheus.Gauge
	responses        *prometheus.CounterVec
}

// New registers the HTTP collectors and a gauge reporting storeSize().
func New(storeSize func() int) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "video_http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		requestsInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "video_http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		}),
		responses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "video_http_responses_total",
			Help: "HTTP responses sent, by status code",
		}, []string{"status"}),
	}

	m.registry.MustRegister(
		m.requestDuration,
		m.requestsInFlight,
		m.responses,
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "video_store_records",
			Help: "Number of videos currently held in memory",
		}, func() float64 { return float64(storeSize()) }),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m.handler = promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})

	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return m.handler
}

// InFlight tracks one request being served; call the returned func when it
// completes.
func (m *Metrics) InFlight() func() {
	m.requestsInFlight.Inc()
	return m.requestsInFlight.Dec
}

// Observe records a completed request. route should be the matched route
// pattern rather than the raw path, to keep label cardinality bounded.
func (m *Metrics) Observe(method, route string, status int, elapsed time.Duration) {
	code := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, route, code).Observe(elapsed.Seconds())
	m.responses.WithLabelValues(code).Inc()
}

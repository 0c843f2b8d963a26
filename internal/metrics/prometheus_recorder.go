package metrics

import (
	"net/http"
	"strconv"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	registry       *prom.Registry
	renderDuration prom.Histogram
	renderOutcome  *prom.CounterVec
	documentBytes  prom.Histogram
	httpRequests   *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{registry: reg}
	pr.renderDuration = prom.NewHistogram(prom.HistogramOpts{
		Namespace: "bolgen",
		Name:      "render_duration_seconds",
		Help:      "Duration of document assembly and PDF rendering",
		Buckets:   prom.DefBuckets,
	})
	pr.renderOutcome = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "bolgen",
		Name:      "renders_total",
		Help:      "Render request counts by outcome",
	}, []string{"outcome"})
	pr.documentBytes = prom.NewHistogram(prom.HistogramOpts{
		Namespace: "bolgen",
		Name:      "document_bytes",
		Help:      "Size of rendered PDF documents",
		Buckets:   prom.ExponentialBuckets(1024, 4, 8),
	})
	pr.httpRequests = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "bolgen",
		Name:      "http_requests_total",
		Help:      "HTTP request counts by method, path, and status",
	}, []string{"method", "path", "status"})

	reg.MustRegister(pr.renderDuration, pr.renderOutcome, pr.documentBytes, pr.httpRequests)
	return pr
}

func (pr *PrometheusRecorder) ObserveRenderDuration(d time.Duration) {
	pr.renderDuration.Observe(d.Seconds())
}

func (pr *PrometheusRecorder) IncRenderOutcome(outcome ResultLabel) {
	pr.renderOutcome.WithLabelValues(string(outcome)).Inc()
}

func (pr *PrometheusRecorder) ObserveDocumentBytes(n int) {
	pr.documentBytes.Observe(float64(n))
}

func (pr *PrometheusRecorder) IncHTTPRequest(method, path string, status int) {
	pr.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
}

// HTTPHandler returns an http.Handler serving the Prometheus exposition
// format for this recorder's registry.
func (pr *PrometheusRecorder) HTTPHandler() http.Handler {
	return promhttp.HandlerFor(pr.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

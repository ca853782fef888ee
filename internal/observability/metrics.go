package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the counters and histograms for searches, parsing and the
// library. Each Metrics owns its registry so several can coexist in tests.
type Metrics struct {
	registry *prometheus.Registry

	// Searches counts searches by result: ok, fallback, transport_error, invalid_topic.
	Searches *prometheus.CounterVec

	// ParseShapes counts parsed responses by classified shape.
	ParseShapes *prometheus.CounterVec

	// ParseFallbacks counts responses that yielded placeholder papers.
	ParseFallbacks prometheus.Counter

	// PapersDropped counts invalid paper entries filtered out of responses.
	PapersDropped prometheus.Counter

	// PapersSaved counts papers written to the library.
	PapersSaved prometheus.Counter

	// RecommendDuration observes recommendation API latency in seconds.
	RecommendDuration prometheus.Histogram
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		Searches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "paperswipe",
			Name:      "searches_total",
			Help:      "Searches by result.",
		}, []string{"result"}),
		ParseShapes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "paperswipe",
			Name:      "parse_shapes_total",
			Help:      "Parsed recommendation responses by shape.",
		}, []string{"shape"}),
		ParseFallbacks: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "paperswipe",
			Name:      "parse_fallbacks_total",
			Help:      "Responses that produced placeholder papers.",
		}),
		PapersDropped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "paperswipe",
			Name:      "papers_dropped_total",
			Help:      "Invalid paper entries dropped while parsing.",
		}),
		PapersSaved: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "paperswipe",
			Name:      "papers_saved_total",
			Help:      "Papers written to the library.",
		}),
		RecommendDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "paperswipe",
			Name:      "recommend_duration_seconds",
			Help:      "Recommendation API request duration.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
	}
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Package metrics defines the Prometheus collectors of the feature engine
// and exposes an HTTP handler for scraping. Every recorder method is safe on
// a nil *Metrics so library callers can leave metrics unset.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors for the engine.
type Metrics struct {
	DocumentsExtractedTotal *prometheus.CounterVec
	ExtractionDuration      *prometheus.HistogramVec
	ExtractionsInFlight     prometheus.Gauge
	CacheHitsTotal          *prometheus.CounterVec
	CacheMissesTotal        *prometheus.CounterVec
	UnknownKeysDroppedTotal prometheus.Counter
	MatrixRowsEncodedTotal  prometheus.Counter
	EventsPublishedTotal    *prometheus.CounterVec
}

// New creates the collectors and registers them with reg. Passing a fresh
// prometheus.NewRegistry() keeps tests isolated from the default registry.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		DocumentsExtractedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "features_documents_extracted_total",
				Help: "Total documents run through an extractor, by extractor kind.",
			},
			[]string{"extractor"},
		),
		ExtractionDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "features_extraction_duration_seconds",
				Help:    "Per-document feature extraction latency in seconds.",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"extractor"},
		),
		ExtractionsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "features_extractions_in_flight",
				Help: "Number of documents currently being extracted.",
			},
		),
		CacheHitsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "features_cache_hits_total",
				Help: "Total feature cache hits by backend.",
			},
			[]string{"backend"},
		),
		CacheMissesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "features_cache_misses_total",
				Help: "Total feature cache misses by backend.",
			},
			[]string{"backend"},
		),
		UnknownKeysDroppedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "features_unknown_keys_dropped_total",
				Help: "Feature keys skipped during matrix encoding because they are outside the vocabulary.",
			},
		),
		MatrixRowsEncodedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "features_matrix_rows_encoded_total",
				Help: "Total feature sets encoded as matrix rows.",
			},
		),
		EventsPublishedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "features_events_published_total",
				Help: "Extraction events sent to Kafka by status (ok, error).",
			},
			[]string{"status"},
		),
	}

	reg.MustRegister(
		m.DocumentsExtractedTotal,
		m.ExtractionDuration,
		m.ExtractionsInFlight,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
		m.UnknownKeysDroppedTotal,
		m.MatrixRowsEncodedTotal,
		m.EventsPublishedTotal,
	)

	return m
}

// ObserveExtraction records one finished document extraction.
func (m *Metrics) ObserveExtraction(extractor string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.DocumentsExtractedTotal.WithLabelValues(extractor).Inc()
	m.ExtractionDuration.WithLabelValues(extractor).Observe(elapsed.Seconds())
}

// TrackInFlight increments the in-flight gauge and returns its decrement.
func (m *Metrics) TrackInFlight() func() {
	if m == nil {
		return func() {}
	}
	m.ExtractionsInFlight.Inc()
	return m.ExtractionsInFlight.Dec
}

func (m *Metrics) CacheHit(backend string) {
	if m == nil {
		return
	}
	m.CacheHitsTotal.WithLabelValues(backend).Inc()
}

func (m *Metrics) CacheMiss(backend string) {
	if m == nil {
		return
	}
	m.CacheMissesTotal.WithLabelValues(backend).Inc()
}

func (m *Metrics) RowEncoded(droppedKeys int) {
	if m == nil {
		return
	}
	m.MatrixRowsEncodedTotal.Inc()
	if droppedKeys > 0 {
		m.UnknownKeysDroppedTotal.Add(float64(droppedKeys))
	}
}

func (m *Metrics) EventPublished(err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.EventsPublishedTotal.WithLabelValues(status).Inc()
}

// Handler returns the Prometheus scrape HTTP handler for g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

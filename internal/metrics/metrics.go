// Package metrics records pipeline run metrics in a Prometheus registry.
// Each stage is a short-lived batch job, so the registry is pushed to a
// Pushgateway once at the end of the run instead of being scraped.
package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Skip reasons for dropped directives.
const (
	SkipExcluded   = "excluded"
	SkipCommercial = "commercial"
)

// Recorder owns the collectors for one run. A nil Recorder discards
// everything.
type Recorder struct {
	registry *prometheus.Registry

	pagesFetched        *prometheus.CounterVec
	fetchDuration       *prometheus.HistogramVec
	throttleDelay       prometheus.Histogram
	directivesExtracted *prometheus.CounterVec
	directivesSkipped   *prometheus.CounterVec
	rawTypes            prometheus.Gauge
	annotations         *prometheus.CounterVec
}

// New builds a Recorder backed by a fresh registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		pagesFetched: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ngxdocs_pages_fetched_total",
				Help: "Documentation pages fetched, labeled by page kind.",
			},
			[]string{"kind"},
		),
		fetchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ngxdocs_page_fetch_duration_seconds",
				Help:    "Histogram of page fetch latencies, labeled by page kind.",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"kind"},
		),
		throttleDelay: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ngxdocs_throttle_delay_seconds",
				Help:    "Time spent waiting on the fetch rate limiter.",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
			},
		),
		directivesExtracted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ngxdocs_directives_extracted_total",
				Help: "Directives written to the document, labeled by module.",
			},
			[]string{"module"},
		),
		directivesSkipped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ngxdocs_directives_skipped_total",
				Help: "Directive blocks dropped during extraction, labeled by reason.",
			},
			[]string{"reason"},
		),
		rawTypes: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "ngxdocs_raw_types",
				Help: "Distinct raw syntax types seen by the frequency analyzer.",
			},
		),
		annotations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ngxdocs_directive_annotations_total",
				Help: "Directives visited by the annotator, labeled by outcome.",
			},
			[]string{"outcome"},
		),
	}
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// ObserveThrottle records time spent waiting for a fetch slot.
func (r *Recorder) ObserveThrottle(d time.Duration) {
	if r == nil {
		return
	}
	r.throttleDelay.Observe(d.Seconds())
}

// ObserveFetch records one page fetch.
func (r *Recorder) ObserveFetch(kind string, d time.Duration) {
	if r == nil {
		return
	}
	r.pagesFetched.WithLabelValues(kind).Inc()
	r.fetchDuration.WithLabelValues(kind).Observe(d.Seconds())
}

// ObserveModule records the outcome of extracting one module page.
func (r *Recorder) ObserveModule(module string, extracted, excluded, commercial int) {
	if r == nil {
		return
	}
	r.directivesExtracted.WithLabelValues(module).Add(float64(extracted))
	r.directivesSkipped.WithLabelValues(SkipExcluded).Add(float64(excluded))
	r.directivesSkipped.WithLabelValues(SkipCommercial).Add(float64(commercial))
}

// SetRawTypes records the number of distinct raw types.
func (r *Recorder) SetRawTypes(n int) {
	if r == nil {
		return
	}
	r.rawTypes.Set(float64(n))
}

// ObserveAnnotations records annotator outcomes.
func (r *Recorder) ObserveAnnotations(annotated, uncurated, unmapped int) {
	if r == nil {
		return
	}
	r.annotations.WithLabelValues("annotated").Add(float64(annotated))
	r.annotations.WithLabelValues("uncurated").Add(float64(uncurated))
	r.annotations.WithLabelValues("unmapped").Add(float64(unmapped))
}

// Push sends the registry to a Pushgateway. An empty URL is a no-op.
func (r *Recorder) Push(ctx context.Context, gatewayURL, job, stage string) error {
	if r == nil || gatewayURL == "" {
		return nil
	}
	err := push.New(gatewayURL, job).
		Gatherer(r.registry).
		Grouping("stage", stage).
		PushContext(ctx)
	if err != nil {
		return fmt.Errorf("push metrics: %w", err)
	}
	return nil
}

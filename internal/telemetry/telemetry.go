// Package telemetry provides OpenTelemetry instrumentation for the
// classification service. It exports Prometheus metrics and provides
// tracing capabilities.
package telemetry

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "papertrail"

// Metrics holds all classification Prometheus metrics
type Metrics struct {
	// Pipeline metrics
	DocumentsClassified *prometheus.CounterVec
	DocumentsFailed     *prometheus.CounterVec
	ClassifyDuration    *prometheus.HistogramVec
	Confidence          *prometheus.HistogramVec
	EmptyDocuments      prometheus.Counter

	// Pattern scorer metrics
	PatternScoreDuration prometheus.Histogram
	RulesActive          prometheus.Gauge

	// Batch processing metrics
	BatchSize     prometheus.Histogram
	QueueDepth    prometheus.Gauge
	ActiveWorkers prometheus.Gauge

	// Exporter metrics
	RowsExported   prometheus.Counter
	FilesOrganized *prometheus.CounterVec
}

// Provider wraps telemetry providers
type Provider struct {
	Tracer  trace.Tracer
	Metrics *Metrics
}

// NewProvider initializes telemetry with Prometheus metrics
func NewProvider() *Provider {
	return &Provider{
		Tracer:  otel.Tracer(serviceName),
		Metrics: initMetrics(),
	}
}

// Handler returns the Prometheus HTTP handler for /metrics endpoint
func (p *Provider) Handler() http.Handler {
	return promhttp.Handler()
}

func initMetrics() *Metrics {
	m := &Metrics{}
	initPipelineMetrics(m)
	initPatternMetrics(m)
	initBatchMetrics(m)
	initExportMetrics(m)
	return m
}

func initPipelineMetrics(m *Metrics) {
	m.DocumentsClassified = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "papertrail_documents_classified_total",
		Help: "Total documents classified, by predicted category",
	}, []string{"category"})

	m.DocumentsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "papertrail_documents_failed_total",
		Help: "Total documents that failed before classification (parse errors etc)",
	}, []string{"stage"})

	m.ClassifyDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "papertrail_classify_duration_seconds",
		Help:    "Time to classify a single document",
		Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
	}, []string{"category"})

	m.Confidence = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "papertrail_confidence",
		Help:    "Final fused confidence per classification",
		Buckets: []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 0.95, 1.0},
	}, []string{"category"})

	m.EmptyDocuments = promauto.NewCounter(prometheus.CounterOpts{
		Name: "papertrail_empty_documents_total",
		Help: "Documents with empty or whitespace-only text",
	})
}

func initPatternMetrics(m *Metrics) {
	m.PatternScoreDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "papertrail_pattern_score_duration_seconds",
		Help:    "Time spent scoring the rule library against a document",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05},
	})

	m.RulesActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "papertrail_rules_active",
		Help: "Currently active pattern rules, built-in plus user-defined",
	})
}

func initBatchMetrics(m *Metrics) {
	m.BatchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "papertrail_batch_size",
		Help:    "Number of documents per batch",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 200, 500},
	})

	m.QueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "papertrail_queue_depth",
		Help: "Current pending documents in work queue",
	})

	m.ActiveWorkers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "papertrail_active_workers",
		Help: "Currently active worker goroutines",
	})
}

func initExportMetrics(m *Metrics) {
	m.RowsExported = promauto.NewCounter(prometheus.CounterOpts{
		Name: "papertrail_rows_exported_total",
		Help: "Result rows written to CSV",
	})

	m.FilesOrganized = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "papertrail_files_organized_total",
		Help: "Source files moved into category folders",
	}, []string{"category"})
}

// RecordClassification records metrics for a single classification
func (p *Provider) RecordClassification(ctx context.Context, category string, confidence float64, duration time.Duration) {
	p.Metrics.DocumentsClassified.WithLabelValues(category).Inc()
	p.Metrics.ClassifyDuration.WithLabelValues(category).Observe(duration.Seconds())
	p.Metrics.Confidence.WithLabelValues(category).Observe(confidence)
}

// RecordFailure records a document that failed before classification
func (p *Provider) RecordFailure(ctx context.Context, stage string) {
	p.Metrics.DocumentsFailed.WithLabelValues(stage).Inc()
}

// RecordEmptyDocument counts an empty-text input
func (p *Provider) RecordEmptyDocument(ctx context.Context) {
	p.Metrics.EmptyDocuments.Inc()
}

// RecordPatternScore records pattern scorer metrics
func (p *Provider) RecordPatternScore(ctx context.Context, duration time.Duration) {
	p.Metrics.PatternScoreDuration.Observe(duration.Seconds())
}

// SetActiveRules sets the active rule count
func (p *Provider) SetActiveRules(count int) {
	p.Metrics.RulesActive.Set(float64(count))
}

// RecordBatchSize records the size of a processed batch
func (p *Provider) RecordBatchSize(size int) {
	p.Metrics.BatchSize.Observe(float64(size))
}

// SetQueueDepth sets the current queue depth
func (p *Provider) SetQueueDepth(depth int) {
	p.Metrics.QueueDepth.Set(float64(depth))
}

// SetActiveWorkers sets the current active worker count
func (p *Provider) SetActiveWorkers(count int) {
	p.Metrics.ActiveWorkers.Set(float64(count))
}

// RecordExportedRows counts rows written by the CSV exporter
func (p *Provider) RecordExportedRows(n int) {
	p.Metrics.RowsExported.Add(float64(n))
}

// RecordFileOrganized counts a file moved into its category folder
func (p *Provider) RecordFileOrganized(category string) {
	p.Metrics.FilesOrganized.WithLabelValues(category).Inc()
}

// StartSpan starts a new trace span.
// The caller is responsible for ending the span with span.End().
//
//nolint:spancheck // Caller is responsible for ending the span
func (p *Provider) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	ctx, span := p.Tracer.Start(ctx, name, trace.WithAttributes(attrs...))
	return ctx, span
}

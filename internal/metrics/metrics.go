// Package metrics provides Prometheus metrics for harvest and extraction runs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	// MetricsNamespace is the namespace for all harvester metrics.
	MetricsNamespace = "harvester"
)

// Page outcomes recorded by the crawler.
const (
	PageOutcomeOK     = "ok"
	PageOutcomeEmpty  = "empty"
	PageOutcomeFailed = "failed"
)

// Metrics holds all Prometheus metrics for the harvester.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Document metrics
	DocumentsTotal          *prometheus.CounterVec
	DocumentDurationSeconds *prometheus.HistogramVec
	BytesDownloadedTotal    *prometheus.CounterVec

	// Catalog metrics
	PagesTotal *prometheus.CounterVec

	// Run metrics
	RunsTotal        *prometheus.CounterVec
	LastRunTimestamp *prometheus.GaugeVec
}

// New creates and registers all harvester metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	factory := promauto.With(reg)
	m := &Metrics{}

	m.initDocumentMetrics(factory)
	m.initCatalogMetrics(factory)
	m.initRunMetrics(factory)

	return m
}

func (m *Metrics) initDocumentMetrics(factory promauto.Factory) {
	m.DocumentsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "documents_total",
			Help:      "Total number of documents processed, by outcome",
		},
		[]string{"category", "status"},
	)

	m.DocumentDurationSeconds = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: MetricsNamespace,
			Name:      "document_duration_seconds",
			Help:      "Time spent downloading and extracting one document",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"category"},
	)

	m.BytesDownloadedTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "bytes_downloaded_total",
			Help:      "Total number of document bytes downloaded",
		},
		[]string{"category"},
	)
}

func (m *Metrics) initCatalogMetrics(factory promauto.Factory) {
	m.PagesTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "pages_total",
			Help:      "Total number of catalog listing pages visited, by outcome",
		},
		[]string{"category", "outcome"},
	)
}

func (m *Metrics) initRunMetrics(factory promauto.Factory) {
	m.RunsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "runs_total",
			Help:      "Total number of runs, by mode and result",
		},
		[]string{"mode", "result"},
	)

	m.LastRunTimestamp = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: MetricsNamespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run of each mode finished",
		},
		[]string{"mode"},
	)
}

// RecordDocument records the outcome and duration of one document.
func (m *Metrics) RecordDocument(category, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.DocumentsTotal.WithLabelValues(category, status).Inc()
	m.DocumentDurationSeconds.WithLabelValues(category).Observe(duration.Seconds())
}

// RecordDownload records downloaded bytes.
func (m *Metrics) RecordDownload(category string, n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.BytesDownloadedTotal.WithLabelValues(category).Add(float64(n))
}

// RecordPage records one listing page visit.
func (m *Metrics) RecordPage(category, outcome string) {
	if m == nil {
		return
	}
	m.PagesTotal.WithLabelValues(category, outcome).Inc()
}

// RecordRun records a finished run.
func (m *Metrics) RecordRun(mode string, err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	m.RunsTotal.WithLabelValues(mode, result).Inc()
	m.LastRunTimestamp.WithLabelValues(mode).SetToCurrentTime()
}

// Package metrics exposes Prometheus collectors for imports, analysis and
// coaching text generation.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns the collectors registered on a single registry.
type Manager struct {
	importsTotal     *prometheus.CounterVec
	shotsImported    *prometheus.CounterVec
	textGeneration   *prometheus.CounterVec
	analysisDuration prometheus.Histogram
	registry         *prometheus.Registry
}

var registry = prometheus.NewRegistry()

var globalManager = NewManager(registry)

// NewManager registers the StrikeLab collectors on reg.
func NewManager(reg *prometheus.Registry) *Manager {
	auto := promauto.With(reg)
	return &Manager{
		registry: reg,
		importsTotal: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "strikelab",
			Name:      "imports_total",
			Help:      "Session imports by source and result (success, empty, error)",
		}, []string{"source", "result"}),
		shotsImported: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "strikelab",
			Name:      "shots_imported_total",
			Help:      "Shots persisted by source",
		}, []string{"source"}),
		textGeneration: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "strikelab",
			Name:      "text_generation_total",
			Help:      "Chat response attempts by provider and result",
		}, []string{"provider", "result"}),
		analysisDuration: auto.NewHistogram(prometheus.HistogramOpts{
			Namespace: "strikelab",
			Name:      "analysis_duration_seconds",
			Help:      "Time spent reducing a session's shots into an analysis",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}),
	}
}

func (m *Manager) RecordImport(source, result string, shots int) {
	m.importsTotal.WithLabelValues(source, result).Inc()
	if shots > 0 {
		m.shotsImported.WithLabelValues(source).Add(float64(shots))
	}
}

func (m *Manager) RecordTextGeneration(provider, result string) {
	m.textGeneration.WithLabelValues(provider, result).Inc()
}

func (m *Manager) ObserveAnalysis(d time.Duration) {
	m.analysisDuration.Observe(d.Seconds())
}

// Registry returns the registry the manager's collectors live on.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// RecordImport counts an import attempt on the global manager.
func RecordImport(source, result string, shots int) {
	globalManager.RecordImport(source, result, shots)
}

func RecordTextGeneration(provider, result string) {
	globalManager.RecordTextGeneration(provider, result)
}

func ObserveAnalysis(d time.Duration) {
	globalManager.ObserveAnalysis(d)
}

// GetRegistry returns the registry served on /metrics.
func GetRegistry() *prometheus.Registry {
	return registry
}

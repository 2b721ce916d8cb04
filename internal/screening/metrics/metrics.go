package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the screening module. All methods are
// nil-safe so unit tests can pass a nil receiver.
type Metrics struct {
	// Decision outcomes by overall verdict and anomaly type
	DecisionOutcome *prometheus.CounterVec

	// Full analysis latency including the external analyzer round trip
	AnalyzeLatency prometheus.Histogram

	// External analyzer round-trip latency by operation (probe, analyze)
	AnalyzerLatency *prometheus.HistogramVec

	// Analyses that fell back to rule-only judgment, by cause
	DegradedTotal *prometheus.CounterVec
}

// New creates a Metrics instance with all screening metrics registered.
func New() *Metrics {
	return &Metrics{
		DecisionOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "skyscreen_decisions_total",
			Help: "Total decisions by overall verdict and anomaly type",
		}, []string{"verdict", "anomaly_type"}),

		AnalyzeLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "skyscreen_analyze_duration_seconds",
			Help:    "Duration of full record analysis including AI round trip",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 15, 30, 60, 120},
		}),

		AnalyzerLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "skyscreen_analyzer_duration_seconds",
			Help:    "Duration of external analyzer calls by operation",
			Buckets: []float64{0.01, 0.1, 0.5, 1, 5, 15, 30, 60, 120},
		}, []string{"operation"}),

		DegradedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "skyscreen_degraded_analyses_total",
			Help: "Analyses that fell back to rule-only judgment, by cause",
		}, []string{"cause"}),
	}
}

// ObserveAnalyze records the total analysis duration.
func (m *Metrics) ObserveAnalyze(d time.Duration) {
	if m != nil {
		m.AnalyzeLatency.Observe(d.Seconds())
	}
}

// ObserveAnalyzer records the duration of one external analyzer call.
func (m *Metrics) ObserveAnalyzer(operation string, d time.Duration) {
	if m != nil {
		m.AnalyzerLatency.WithLabelValues(operation).Observe(d.Seconds())
	}
}

// IncrementDecision records one decision outcome.
func (m *Metrics) IncrementDecision(verdict, anomalyType string) {
	if m != nil {
		m.DecisionOutcome.WithLabelValues(verdict, anomalyType).Inc()
	}
}

// IncrementDegraded records one rule-only fallback.
func (m *Metrics) IncrementDegraded(cause string) {
	if m != nil {
		m.DegradedTotal.WithLabelValues(cause).Inc()
	}
}

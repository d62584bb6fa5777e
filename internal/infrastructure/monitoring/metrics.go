package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics manages the Prometheus metrics. Construct once per process;
// collectors register with the default registry.
type Metrics struct {
	TieringRuns         *prometheus.CounterVec
	TieringDuration     *prometheus.HistogramVec
	ModelRegistrations  prometheus.Counter
	RubricUpdates       prometheus.Counter
	ExportRuns          *prometheus.CounterVec
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers the Prometheus metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		TieringRuns: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mrm_tiering_runs_total",
				Help: "Total number of risk tiering runs.",
			},
			[]string{"tier", "result"},
		),
		TieringDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mrm_tiering_duration_seconds",
				Help:    "Duration of risk tiering runs.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"tier"},
		),
		ModelRegistrations: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "mrm_model_registrations_total",
				Help: "Total number of models added to the inventory.",
			},
		),
		RubricUpdates: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "mrm_rubric_updates_total",
				Help: "Total number of accepted rubric replacements.",
			},
		),
		ExportRuns: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mrm_export_runs_total",
				Help: "Total number of evidence export runs.",
			},
			[]string{"result"},
		),
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mrm_http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mrm_http_request_duration_seconds",
				Help:    "Duration of HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}
}

// RecordTieringRun records metrics for a tiering run.
func (m *Metrics) RecordTieringRun(tier, result string, duration time.Duration) {
	m.TieringRuns.WithLabelValues(tier, result).Inc()
	m.TieringDuration.WithLabelValues(tier).Observe(duration.Seconds())
}

// RecordModelRegistration records a model entering the inventory.
func (m *Metrics) RecordModelRegistration() {
	m.ModelRegistrations.Inc()
}

// RecordRubricUpdate records an accepted rubric replacement.
func (m *Metrics) RecordRubricUpdate() {
	m.RubricUpdates.Inc()
}

// RecordExportRun records an evidence export run.
func (m *Metrics) RecordExportRun(result string) {
	m.ExportRuns.WithLabelValues(result).Inc()
}

package sweeper

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vaultguard/sentinel/pkg/metrics"
)

// Metrics holds all sweep-level metrics.
type Metrics struct {
	registry *metrics.ComponentRegistry

	PassesTotal        prometheus.Counter
	PassDuration       prometheus.Histogram
	CandidatesPerPass  prometheus.Histogram
	OutcomesTotal      *prometheus.CounterVec
	NotificationsTotal *prometheus.CounterVec
}

// NewMetrics creates sweep metrics on the shared registry.
func NewMetrics() *Metrics {
	return newMetrics(metrics.NewComponentRegistry("sentinel", "sweeper"))
}

// NewMetricsOn creates sweep metrics on a caller-supplied registry.
func NewMetricsOn(promReg *prometheus.Registry) *Metrics {
	return newMetrics(metrics.NewComponentRegistryOn(promReg, "sentinel", "sweeper"))
}

func newMetrics(reg *metrics.ComponentRegistry) *Metrics {

	return &Metrics{
		registry: reg,

		PassesTotal: reg.NewCounter(prometheus.CounterOpts{
			Name: "passes_total",
			Help: "Total number of completed sweep passes",
		}),

		PassDuration: reg.NewHistogram(prometheus.HistogramOpts{
			Name:    "pass_duration_seconds",
			Help:    "Duration of sweep passes",
			Buckets: metrics.DurationBuckets,
		}),

		CandidatesPerPass: reg.NewHistogram(prometheus.HistogramOpts{
			Name:    "candidates_per_pass",
			Help:    "Number of expired candidates found per pass",
			Buckets: metrics.CountBuckets,
		}),

		OutcomesTotal: reg.NewCounterVec(prometheus.CounterOpts{
			Name: "outcomes_total",
			Help: "Candidate processing outcomes",
		}, []string{"outcome"}),

		NotificationsTotal: reg.NewCounterVec(prometheus.CounterOpts{
			Name: "notifications_total",
			Help: "Beneficiary notification dispatch results",
		}, []string{"status"}),
	}
}

// RecordOutcome records the outcome of one processed candidate.
func (m *Metrics) RecordOutcome(o Outcome) {
	m.OutcomesTotal.WithLabelValues(o.String()).Inc()
}

// RecordNotification records one dispatch attempt.
func (m *Metrics) RecordNotification(ok bool) {
	status := "sent"
	if !ok {
		status = "failed"
	}
	m.NotificationsTotal.WithLabelValues(status).Inc()
}

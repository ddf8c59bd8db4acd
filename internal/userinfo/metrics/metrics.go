package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the userinfo module. All methods are
// nil-safe so wiring metrics stays optional.
type Metrics struct {
	// First-computation latency per fact, by outcome
	FactComputeLatency *prometheus.HistogramVec

	// Remediation verdicts by kind and result
	RemediationVerdicts *prometheus.CounterVec
}

// New creates a Metrics instance with all userinfo metrics registered.
func New() *Metrics {
	return &Metrics{
		FactComputeLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "credstate_fact_compute_duration_seconds",
			Help:    "Duration of first-time fact computations by fact name and outcome",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"fact", "outcome"}),

		RemediationVerdicts: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "credstate_remediation_verdicts_total",
			Help: "Total remediation verdicts by kind and result",
		}, []string{"kind", "required"}),
	}
}

// ObserveFactCompute records the duration of a fact's single computation.
func (m *Metrics) ObserveFactCompute(fact string, d time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.FactComputeLatency.WithLabelValues(fact, outcome).Observe(d.Seconds())
}

// IncrementVerdict records one remediation verdict.
func (m *Metrics) IncrementVerdict(kind string, required bool) {
	if m == nil {
		return
	}
	result := "false"
	if required {
		result = "true"
	}
	m.RemediationVerdicts.WithLabelValues(kind, result).Inc()
}

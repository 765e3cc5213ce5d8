// Package metrics exposes Prometheus instruments for reconciliation runs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	MatchOutcomes *prometheus.CounterVec
	RunDuration   *prometheus.HistogramVec
	RunsTotal     *prometheus.CounterVec
}

// New registers the instruments on reg. A nil reg uses the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		MatchOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "elternaccounts_match_outcomes_total",
			Help: "Resolved children by outcome (no_candidate, ambiguous, low_confidence, accepted)",
		}, []string{"outcome"}),
		RunDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "elternaccounts_run_duration_seconds",
			Help:    "Duration of reconciliation runs including storage I/O",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"trigger"}),
		RunsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "elternaccounts_runs_total",
			Help: "Reconciliation runs by trigger and status",
		}, []string{"trigger", "status"}),
	}
}

// ObserveOutcome counts one resolved child.
func (m *Metrics) ObserveOutcome(outcome string) {
	m.MatchOutcomes.WithLabelValues(outcome).Inc()
}

// ObserveRun records a finished run started at start.
func (m *Metrics) ObserveRun(trigger string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.RunDuration.WithLabelValues(trigger).Observe(time.Since(start).Seconds())
	m.RunsTotal.WithLabelValues(trigger, status).Inc()
}

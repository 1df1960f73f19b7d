package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"turtlescript/console/pkg/config"
)

// InterpreterMetrics tracks what the evaluator does inside a run.
//
// Metrics:
//   - turtle_statements_total: Executed statements by kind
//   - turtle_actions_total: Device calls by action
//   - turtle_calls_total: Function calls by name
//   - turtle_call_depth: Frame depth at which calls ran
//   - turtle_diagnostics_total: Recoverable script errors by kind
type InterpreterMetrics struct {
	statementsTotal  *prometheus.CounterVec
	actionsTotal     *prometheus.CounterVec
	callsTotal       *prometheus.CounterVec
	callDepth        prometheus.Histogram
	diagnosticsTotal *prometheus.CounterVec
}

// NewInterpreterMetrics creates and registers interpreter metrics with the
// provided registry.
func NewInterpreterMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *InterpreterMetrics {
	im := &InterpreterMetrics{
		statementsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "statements_total",
				Help:      "Total number of executed statements",
			},
			[]string{"kind"},
		),

		actionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "actions_total",
				Help:      "Total number of turtle device calls",
			},
			[]string{"action"},
		),

		callsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "calls_total",
				Help:      "Total number of user function calls",
			},
			[]string{"function"},
		),

		callDepth: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "call_depth",
				Help:      "Frame depth of user function calls",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 10), // 1 to 512
			},
		),

		diagnosticsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "diagnostics_total",
				Help:      "Total number of recoverable script errors",
			},
			[]string{"kind"},
		),
	}

	registry.MustRegister(
		im.statementsTotal,
		im.actionsTotal,
		im.callsTotal,
		im.callDepth,
		im.diagnosticsTotal,
	)

	return im
}

// RecordCall records a function call.
func (im *InterpreterMetrics) RecordCall(function string, depth int) {
	im.callsTotal.WithLabelValues(function).Inc()
	im.callDepth.Observe(float64(depth))
}

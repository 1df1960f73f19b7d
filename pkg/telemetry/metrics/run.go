package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"turtlescript/console/pkg/config"
)

// Status is the outcome of one executed input.
type Status string

const (
	StatusOK          Status = "ok"
	StatusSyntaxError Status = "syntax_error"
	StatusIOError     Status = "io_error"
	StatusInternal    Status = "internal_error"
	StatusCancelled   Status = "cancelled"
	StatusExit        Status = "exit"
)

// RunMetrics tracks executed inputs.
//
// Metrics:
//   - turtle_runs_total: Executed inputs by source and status
//   - turtle_run_duration_seconds: Parse plus execution time
//   - turtle_run_nodes: Size of the parsed trees
type RunMetrics struct {
	runsTotal   *prometheus.CounterVec
	runDuration *prometheus.HistogramVec
	runNodes    *prometheus.HistogramVec
}

// NewRunMetrics creates and registers run metrics with the provided registry.
func NewRunMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *RunMetrics {
	rm := &RunMetrics{
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "runs_total",
				Help:      "Total number of executed inputs",
			},
			[]string{"source", "status"},
		),

		runDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "run_duration_seconds",
				Help:      "Duration of parsing and executing one input in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10), // 100µs to ~26s
			},
			[]string{"source"},
		),

		runNodes: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "run_nodes",
				Help:      "Number of tree nodes in each parsed input",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
			},
			[]string{"source"},
		),
	}

	registry.MustRegister(
		rm.runsTotal,
		rm.runDuration,
		rm.runNodes,
	)

	return rm
}

// RecordRun records one executed input.
func (rm *RunMetrics) RecordRun(source string, status Status, duration time.Duration, nodes int) {
	rm.runsTotal.WithLabelValues(source, string(status)).Inc()
	rm.runDuration.WithLabelValues(source).Observe(duration.Seconds())
	if nodes > 0 {
		rm.runNodes.WithLabelValues(source).Observe(float64(nodes))
	}
}

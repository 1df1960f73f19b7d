// Package metrics provides Prometheus metrics for the turtle interpreter.
//
// # Overview
//
// The Collector counts executed inputs and what happened inside them. It
// implements eval.Observer, so attaching it to an interpreter is enough to
// collect statement, turtle action, call and diagnostic counts:
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	interp.WithObserver(collector)
//
// Run-level outcomes are recorded by the console driver:
//
//	collector.RecordRun("file", metrics.StatusOK, elapsed, nodes)
//
// # Metrics
//
//   - turtle_runs_total{source,status}
//   - turtle_run_duration_seconds{source}
//   - turtle_run_nodes{source}
//   - turtle_statements_total{kind}
//   - turtle_actions_total{action}
//   - turtle_calls_total{function}
//   - turtle_call_depth
//   - turtle_diagnostics_total{kind}
//
// Function names are user-controlled, so the function label is capped by a
// cardinality limiter; names past the limit are counted as "other".
//
// # HTTP Endpoint
//
//	http.Handle(cfg.Path, collector.Handler())
package metrics

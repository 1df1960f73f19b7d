// Package telemetry groups the observability packages used by the console.
//
//   - logging: slog setup and a handler that adds session, run and trace
//     identifiers from the context
//   - metrics: Prometheus counters and histograms fed by the interpreter
//   - tracing: OpenTelemetry spans around each executed input
//
// All three are configured from the telemetry section of the config file
// and are safe to leave disabled.
package telemetry

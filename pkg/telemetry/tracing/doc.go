// Package tracing provides OpenTelemetry tracing for script runs.
//
// Each input executed by a console session gets a turtle.run span with
// child spans for parsing and execution:
//
//	turtle.run (origin=file, file=spiral.tsc)
//	├── turtle.parse (nodes=120, functions=2)
//	└── turtle.exec (status=ok, commands=360)
//
// Spans are exported over OTLP/gRPC. When tracing is disabled a noop tracer
// is used and span creation costs almost nothing.
//
// # Usage
//
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing, version)
//	if err != nil {
//	    return err
//	}
//	defer tracer.Shutdown(context.Background())
//
//	ctx, span := tracer.StartRun(ctx, sessionID, "file", path, len(src))
//	defer span.End()
//
// The logging package picks up the active trace and span IDs from the
// context, so log records written during a run can be joined to its trace.
package tracing

package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Span names.
const (
	SpanRun   = "turtle.run"
	SpanParse = "turtle.parse"
	SpanExec  = "turtle.exec"
)

// Attribute keys use the "turtle.*" namespace.
const (
	AttrSession  = "turtle.session"
	AttrOrigin   = "turtle.origin"
	AttrFile     = "turtle.file"
	AttrStatus   = "turtle.status"
	AttrNodes    = "turtle.nodes"
	AttrFuncs    = "turtle.functions"
	AttrBytes    = "turtle.source_bytes"
	AttrErrors   = "turtle.syntax_errors"
	AttrCommands = "turtle.commands"

	AttrErrorMessage = "error.message"
)

// StartRun opens the span that covers one input, from parse to the end of
// execution.
func (t *Tracer) StartRun(ctx context.Context, session, origin, file string, size int) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String(AttrSession, session),
		attribute.String(AttrOrigin, origin),
		attribute.Int(AttrBytes, size),
	}
	if file != "" {
		attrs = append(attrs, attribute.String(AttrFile, file))
	}
	return t.Start(ctx, SpanRun, trace.WithAttributes(attrs...))
}

// SetTreeAttributes records the shape of a parsed tree.
func SetTreeAttributes(span trace.Span, nodes, functions int) {
	span.SetAttributes(
		attribute.Int(AttrNodes, nodes),
		attribute.Int(AttrFuncs, functions),
	)
}

// SetRunResult records how a run ended and how many device commands it issued.
func SetRunResult(span trace.Span, status string, commands int) {
	span.SetAttributes(
		attribute.String(AttrStatus, status),
		attribute.Int(AttrCommands, commands),
	)
}

// SetSyntaxErrors records the number of syntax errors a parse produced.
func SetSyntaxErrors(span trace.Span, count int) {
	span.SetAttributes(attribute.Int(AttrErrors, count))
}

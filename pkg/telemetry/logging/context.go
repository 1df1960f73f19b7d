package logging

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// Context keys for common log fields.
type contextKey string

const (
	// SessionKey is the context key for console session identifiers.
	SessionKey contextKey = "session"

	// RunKey is the context key for the identifier of one executed input.
	RunKey contextKey = "run"

	// OriginKey is the context key for where an input came from, such as a
	// file path or "<stdin>".
	OriginKey contextKey = "origin"
)

// WithSession adds a session identifier to the context.
func WithSession(ctx context.Context, session string) context.Context {
	return context.WithValue(ctx, SessionKey, session)
}

// GetSession retrieves the session identifier from the context.
func GetSession(ctx context.Context) string {
	if session, ok := ctx.Value(SessionKey).(string); ok {
		return session
	}
	return ""
}

// WithRun adds a run identifier to the context.
func WithRun(ctx context.Context, run string) context.Context {
	return context.WithValue(ctx, RunKey, run)
}

// GetRun retrieves the run identifier from the context.
func GetRun(ctx context.Context) string {
	if run, ok := ctx.Value(RunKey).(string); ok {
		return run
	}
	return ""
}

// WithOrigin adds the input origin to the context.
func WithOrigin(ctx context.Context, origin string) context.Context {
	return context.WithValue(ctx, OriginKey, origin)
}

// GetOrigin retrieves the input origin from the context.
func GetOrigin(ctx context.Context) string {
	if origin, ok := ctx.Value(OriginKey).(string); ok {
		return origin
	}
	return ""
}

// extractContextFields extracts common fields from context for logging,
// including the trace and span IDs of an active OpenTelemetry span.
func extractContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}

	var fields []slog.Attr

	if session := GetSession(ctx); session != "" {
		fields = append(fields, slog.String("session", session))
	}
	if run := GetRun(ctx); run != "" {
		fields = append(fields, slog.String("run", run))
	}
	if origin := GetOrigin(ctx); origin != "" {
		fields = append(fields, slog.String("origin", origin))
	}

	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		fields = append(fields,
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}

	return fields
}

// ContextHandler adds context fields to every record passed to the
// wrapped handler. Use the *Context logging methods to supply the context.
type ContextHandler struct {
	next slog.Handler
}

// NewContextHandler wraps next.
func NewContextHandler(next slog.Handler) *ContextHandler {
	return &ContextHandler{next: next}
}

// Enabled reports whether the wrapped handler handles level.
func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

// Handle adds the context fields and forwards the record.
func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if fields := extractContextFields(ctx); len(fields) > 0 {
		r = r.Clone()
		r.AddAttrs(fields...)
	}
	return h.next.Handle(ctx, r)
}

// WithAttrs returns a handler with additional attributes.
func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{next: h.next.WithAttrs(attrs)}
}

// WithGroup returns a handler that nests subsequent attributes in a group.
func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{next: h.next.WithGroup(name)}
}

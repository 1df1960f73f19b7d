package tracing

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"turtlescript/console/pkg/config"
)

func newTestTracer(t *testing.T, sampler string, ratio float64) (*Tracer, *tracetest.InMemoryExporter) {
	t.Helper()

	exporter := tracetest.NewInMemoryExporter()
	tr, err := NewWithExporter(&config.TracingConfig{
		Enabled:     true,
		Sampler:     sampler,
		SampleRatio: ratio,
		ServiceName: "test-service",
	}, "test", exporter)
	if err != nil {
		t.Fatalf("NewWithExporter() error = %v", err)
	}
	t.Cleanup(func() { _ = tr.Shutdown(context.Background()) })
	return tr, exporter
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		config  *config.TracingConfig
		wantErr bool
	}{
		{
			name:    "nil config",
			config:  nil,
			wantErr: true,
		},
		{
			name:   "disabled tracing",
			config: &config.TracingConfig{Enabled: false, ServiceName: "test-service"},
		},
		{
			name: "invalid sampler",
			config: &config.TracingConfig{
				Enabled:  true,
				Sampler:  "sometimes",
				Endpoint: "localhost:4317",
				Insecure: true,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := New(tt.config, "test")
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			defer tr.Shutdown(context.Background())

			if tr.Enabled() != tt.config.Enabled {
				t.Errorf("Enabled() = %v, want %v", tr.Enabled(), tt.config.Enabled)
			}
		})
	}
}

func TestTracer_Disabled(t *testing.T) {
	tr, err := New(&config.TracingConfig{}, "test")
	if err != nil {
		t.Fatal(err)
	}

	ctx, span := tr.StartRun(context.Background(), "s1", "interactive", "", 10)
	defer span.End()

	if span.SpanContext().IsValid() {
		t.Error("disabled tracer produced a valid span")
	}
	if id := TraceID(ctx); id != "" {
		t.Errorf("TraceID() = %q, want empty", id)
	}
	if err := tr.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

func TestTracer_RunSpans(t *testing.T) {
	tr, exporter := newTestTracer(t, SamplerAlways, 0)

	ctx, run := tr.StartRun(context.Background(), "s1", "file", "spiral.tsc", 42)
	if TraceID(ctx) == "" {
		t.Error("TraceID() empty inside an active span")
	}

	_, parse := tr.Start(ctx, SpanParse)
	SetTreeAttributes(parse, 12, 1)
	parse.End()

	_, exec := tr.Start(ctx, SpanExec)
	SetRunResult(exec, "ok", 36)
	SetStatus(exec, nil)
	exec.End()

	run.End()

	spans := exporter.GetSpans()
	if len(spans) != 3 {
		t.Fatalf("exported %d spans, want 3", len(spans))
	}

	root := spans[2]
	if root.Name != SpanRun {
		t.Fatalf("last span = %q, want %q", root.Name, SpanRun)
	}
	for _, child := range spans[:2] {
		if child.Parent.SpanID() != root.SpanContext.SpanID() {
			t.Errorf("span %q is not a child of the run span", child.Name)
		}
	}

	want := map[attribute.Key]attribute.Value{
		AttrSession: attribute.StringValue("s1"),
		AttrOrigin:  attribute.StringValue("file"),
		AttrFile:    attribute.StringValue("spiral.tsc"),
		AttrBytes:   attribute.IntValue(42),
	}
	assertAttributes(t, root, want)
	assertAttributes(t, spans[0], map[attribute.Key]attribute.Value{
		AttrNodes: attribute.IntValue(12),
		AttrFuncs: attribute.IntValue(1),
	})
	assertAttributes(t, spans[1], map[attribute.Key]attribute.Value{
		AttrStatus:   attribute.StringValue("ok"),
		AttrCommands: attribute.IntValue(36),
	})
	if spans[1].Status.Code != codes.Ok {
		t.Errorf("exec status = %v, want Ok", spans[1].Status.Code)
	}
}

func TestSetStatus_Error(t *testing.T) {
	tr, exporter := newTestTracer(t, SamplerAlways, 0)

	_, span := tr.Start(context.Background(), SpanExec)
	SetStatus(span, errors.New("boom"))
	span.End()

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("exported %d spans, want 1", len(spans))
	}
	got := spans[0]
	if got.Status.Code != codes.Error || got.Status.Description != "boom" {
		t.Errorf("status = %+v, want Error/boom", got.Status)
	}
	if len(got.Events) != 1 || got.Events[0].Name != "exception" {
		t.Errorf("events = %+v, want one exception event", got.Events)
	}
}

func TestTracer_NeverSampler(t *testing.T) {
	tr, exporter := newTestTracer(t, SamplerNever, 0)

	_, span := tr.StartRun(context.Background(), "s1", "interactive", "", 1)
	span.End()

	if n := len(exporter.GetSpans()); n != 0 {
		t.Errorf("exported %d spans with never sampler", n)
	}
}

func TestCreateSampler(t *testing.T) {
	tests := []struct {
		strategy string
		ratio    float64
		wantErr  bool
	}{
		{SamplerAlways, 0, false},
		{"", 0, false},
		{SamplerNever, 0, false},
		{SamplerRatio, 0.5, false},
		{SamplerRatio, 0, false},
		{SamplerRatio, 1, false},
		{SamplerRatio, 1.5, true},
		{SamplerRatio, -0.1, true},
		{"sometimes", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.strategy, func(t *testing.T) {
			s, err := createSampler(tt.strategy, tt.ratio)
			if (err != nil) != tt.wantErr {
				t.Fatalf("createSampler(%q, %v) error = %v, wantErr %v", tt.strategy, tt.ratio, err, tt.wantErr)
			}
			if err == nil && s == nil {
				t.Error("createSampler returned nil sampler")
			}
		})
	}
}

func assertAttributes(t *testing.T, span tracetest.SpanStub, want map[attribute.Key]attribute.Value) {
	t.Helper()

	got := make(map[attribute.Key]string)
	for _, kv := range span.Attributes {
		got[kv.Key] = kv.Value.Emit()
	}
	for k, v := range want {
		if got[k] != v.Emit() {
			t.Errorf("span %q attribute %s = %q, want %q", span.Name, k, got[k], v.Emit())
		}
	}
}

package config

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"zero call depth", func(c *Config) { c.Interpreter.MaxCallDepth = -1 }, "interpreter.max_call_depth"},
		{"huge load depth", func(c *Config) { c.Interpreter.MaxLoadDepth = 1 << 30 }, "interpreter.max_load_depth"},
		{"negative file size", func(c *Config) { c.Interpreter.MaxFileSize = -5 }, "interpreter.max_file_size"},
		{"negative width", func(c *Config) { c.Canvas.Width = -1 }, "canvas.width"},
		{"bad background", func(c *Config) { c.Canvas.Background = "black" }, "canvas.background"},
		{"unknown driver", func(c *Config) { c.Journal.Driver = "postgres" }, "journal.driver"},
		{"enabled journal without path", func(c *Config) {
			c.Journal.Enabled = true
			c.Journal.Path = ""
		}, "journal.path"},
		{"negative retention", func(c *Config) { c.Journal.Retention.Days = -1 }, "journal.retention.days"},
		{"bad cron", func(c *Config) { c.Journal.Retention.Schedule = "every night" }, "journal.retention.schedule"},
		{"negative debounce", func(c *Config) { c.Watch.Debounce = -1 }, "watch.debounce"},
		{"bad log level", func(c *Config) { c.Telemetry.Logging.Level = "verbose" }, "telemetry.logging.level"},
		{"bad log format", func(c *Config) { c.Telemetry.Logging.Format = "xml" }, "telemetry.logging.format"},
		{"relative metrics path", func(c *Config) {
			c.Telemetry.Metrics.Enabled = true
			c.Telemetry.Metrics.Path = "metrics"
		}, "telemetry.metrics.path"},
		{"tracing without endpoint", func(c *Config) { c.Telemetry.Tracing.Enabled = true }, "telemetry.tracing.endpoint"},
		{"bad sampler", func(c *Config) { c.Telemetry.Tracing.Sampler = "sometimes" }, "telemetry.tracing.sampler"},
		{"ratio above one", func(c *Config) { c.Telemetry.Tracing.SampleRatio = 1.5 }, "telemetry.tracing.sample_ratio"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := Validate(cfg)
			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if len(verr.Errors) != 1 || verr.Errors[0].Field != tt.field {
				t.Errorf("expected one error on %s, got %v", tt.field, verr.Errors)
			}
		})
	}
}

func TestValidate_CronDescriptors(t *testing.T) {
	for _, schedule := range []string{"@daily", "@every 1h", "30 2 * * 0", ""} {
		cfg := Default()
		cfg.Journal.Retention.Schedule = schedule
		if err := Validate(cfg); err != nil {
			t.Errorf("schedule %q rejected: %v", schedule, err)
		}
	}
}

func TestValidationError_Format(t *testing.T) {
	err := ValidationError{Errors: []FieldError{
		{Field: "canvas.width", Message: "width must be positive"},
		{Field: "canvas.height", Message: "height must be positive"},
	}}

	msg := err.Error()
	if !strings.HasPrefix(msg, "configuration validation failed with 2 errors:") {
		t.Errorf("unexpected message: %s", msg)
	}
	if !strings.Contains(msg, "  - canvas.height: height must be positive") {
		t.Errorf("missing field error: %s", msg)
	}

	single := ValidationError{Errors: err.Errors[:1]}
	if single.Error() != "configuration validation failed: canvas.width: width must be positive" {
		t.Errorf("unexpected single message: %s", single.Error())
	}
}

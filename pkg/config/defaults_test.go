package config

import (
	"testing"
	"time"
)

func TestApplyDefaults(t *testing.T) {
	tests := []struct {
		name  string
		input Config
		check func(*testing.T, *Config)
	}{
		{
			name:  "empty config gets all defaults",
			input: Config{},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Interpreter.MaxCallDepth != DefaultMaxCallDepth {
					t.Errorf("expected max call depth %d, got %d", DefaultMaxCallDepth, cfg.Interpreter.MaxCallDepth)
				}
				if cfg.Interpreter.MaxLoadDepth != DefaultMaxLoadDepth {
					t.Errorf("expected max load depth %d, got %d", DefaultMaxLoadDepth, cfg.Interpreter.MaxLoadDepth)
				}
				if cfg.Canvas.Width != DefaultCanvasWidth || cfg.Canvas.Height != DefaultCanvasHeight {
					t.Errorf("expected canvas %dx%d, got %dx%d", DefaultCanvasWidth, DefaultCanvasHeight, cfg.Canvas.Width, cfg.Canvas.Height)
				}
				if cfg.Journal.Driver != DefaultJournalDriver {
					t.Errorf("expected journal driver %q, got %q", DefaultJournalDriver, cfg.Journal.Driver)
				}
				if cfg.Journal.Retention.Schedule != DefaultRetentionSchedule {
					t.Errorf("expected retention schedule %q, got %q", DefaultRetentionSchedule, cfg.Journal.Retention.Schedule)
				}
				if cfg.Watch.Debounce != DefaultWatchDebounce {
					t.Errorf("expected debounce %v, got %v", DefaultWatchDebounce, cfg.Watch.Debounce)
				}
				if cfg.Telemetry.Logging.Level != DefaultLoggingLevel {
					t.Errorf("expected logging level %q, got %q", DefaultLoggingLevel, cfg.Telemetry.Logging.Level)
				}
				if cfg.Telemetry.Tracing.SampleRatio != DefaultTracingSampleRatio {
					t.Errorf("expected sample ratio %v, got %v", DefaultTracingSampleRatio, cfg.Telemetry.Tracing.SampleRatio)
				}
				if cfg.Journal.Enabled || cfg.Telemetry.Metrics.Enabled || cfg.Telemetry.Tracing.Enabled {
					t.Error("optional features should stay disabled")
				}
			},
		},
		{
			name: "existing values are preserved",
			input: Config{
				Interpreter: InterpreterConfig{MaxCallDepth: 64},
				Canvas:      CanvasConfig{Background: "#ffffff"},
				Journal:     JournalConfig{Driver: "memory", Retention: RetentionConfig{Days: 3}},
				Watch:       WatchConfig{Debounce: time.Second},
			},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Interpreter.MaxCallDepth != 64 {
					t.Errorf("expected max call depth 64, got %d", cfg.Interpreter.MaxCallDepth)
				}
				if cfg.Canvas.Background != "#ffffff" {
					t.Errorf("expected background #ffffff, got %q", cfg.Canvas.Background)
				}
				if cfg.Journal.Driver != "memory" || cfg.Journal.Retention.Days != 3 {
					t.Errorf("journal settings overwritten: %+v", cfg.Journal)
				}
				if cfg.Watch.Debounce != time.Second {
					t.Errorf("expected debounce 1s, got %v", cfg.Watch.Debounce)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.input
			ApplyDefaults(&cfg)
			tt.check(t, &cfg)
		})
	}
}

func TestDefault_IsValid(t *testing.T) {
	if err := Validate(Default()); err != nil {
		t.Errorf("default configuration should be valid: %v", err)
	}
}

package config

import "time"

// Default values for configuration fields.
const (
	// Interpreter defaults
	DefaultMaxCallDepth = 512
	DefaultMaxLoadDepth = 16
	DefaultMaxFileSize  = int64(1024 * 1024)
	DefaultMaxErrors    = 10

	// Canvas defaults
	DefaultCanvasWidth      = 640
	DefaultCanvasHeight     = 480
	DefaultCanvasBackground = "#000000"

	// Journal defaults
	DefaultJournalDriver          = "sqlite"
	DefaultJournalPath            = "data/journal.db"
	DefaultJournalBusyTimeout     = 5 * time.Second
	DefaultJournalMaxSourceLength = 4096
	DefaultRetentionDays          = 30
	DefaultRetentionSchedule      = "0 3 * * *"

	// Watch defaults
	DefaultWatchDebounce = 200 * time.Millisecond

	// Telemetry defaults
	DefaultLoggingLevel       = "warn"
	DefaultLoggingFormat      = "text"
	DefaultMetricsPath        = "/metrics"
	DefaultMetricsNamespace   = "turtle"
	DefaultTracingSampler     = "always"
	DefaultTracingSampleRatio = 1.0
	DefaultTracingServiceName = "turtle"
	DefaultTracingTimeout     = 10 * time.Second
)

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills zero-valued fields with their defaults. Values that
// are already set are preserved.
func ApplyDefaults(cfg *Config) {
	// Interpreter defaults
	if cfg.Interpreter.MaxCallDepth == 0 {
		cfg.Interpreter.MaxCallDepth = DefaultMaxCallDepth
	}
	if cfg.Interpreter.MaxLoadDepth == 0 {
		cfg.Interpreter.MaxLoadDepth = DefaultMaxLoadDepth
	}
	if cfg.Interpreter.MaxFileSize == 0 {
		cfg.Interpreter.MaxFileSize = DefaultMaxFileSize
	}
	if cfg.Interpreter.MaxErrors == 0 {
		cfg.Interpreter.MaxErrors = DefaultMaxErrors
	}

	// Canvas defaults
	if cfg.Canvas.Width == 0 {
		cfg.Canvas.Width = DefaultCanvasWidth
	}
	if cfg.Canvas.Height == 0 {
		cfg.Canvas.Height = DefaultCanvasHeight
	}
	if cfg.Canvas.Background == "" {
		cfg.Canvas.Background = DefaultCanvasBackground
	}

	// Journal defaults
	if cfg.Journal.Driver == "" {
		cfg.Journal.Driver = DefaultJournalDriver
	}
	if cfg.Journal.Path == "" {
		cfg.Journal.Path = DefaultJournalPath
	}
	if cfg.Journal.BusyTimeout == 0 {
		cfg.Journal.BusyTimeout = DefaultJournalBusyTimeout
	}
	if cfg.Journal.MaxSourceLength == 0 {
		cfg.Journal.MaxSourceLength = DefaultJournalMaxSourceLength
	}
	if cfg.Journal.Retention.Days == 0 {
		cfg.Journal.Retention.Days = DefaultRetentionDays
	}
	if cfg.Journal.Retention.Schedule == "" {
		cfg.Journal.Retention.Schedule = DefaultRetentionSchedule
	}

	// Watch defaults
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = DefaultWatchDebounce
	}

	applyTelemetryDefaults(cfg)
}

func applyTelemetryDefaults(cfg *Config) {
	t := &cfg.Telemetry

	if t.Logging.Level == "" {
		t.Logging.Level = DefaultLoggingLevel
	}
	if t.Logging.Format == "" {
		t.Logging.Format = DefaultLoggingFormat
	}

	if t.Metrics.Path == "" {
		t.Metrics.Path = DefaultMetricsPath
	}
	if t.Metrics.Namespace == "" {
		t.Metrics.Namespace = DefaultMetricsNamespace
	}

	if t.Tracing.Sampler == "" {
		t.Tracing.Sampler = DefaultTracingSampler
	}
	if t.Tracing.SampleRatio == 0 {
		t.Tracing.SampleRatio = DefaultTracingSampleRatio
	}
	if t.Tracing.ServiceName == "" {
		t.Tracing.ServiceName = DefaultTracingServiceName
	}
	if t.Tracing.Timeout == 0 {
		t.Tracing.Timeout = DefaultTracingTimeout
	}
}

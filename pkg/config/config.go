package config

import "time"

// Config is the root configuration structure for the turtle console.
// Every section can be written in YAML or TOML; the same keys are used in
// both formats.
type Config struct {
	// Interpreter contains evaluator limits and parser settings.
	Interpreter InterpreterConfig `yaml:"interpreter" toml:"interpreter"`

	// Canvas contains the drawing surface size, colors and output file.
	Canvas CanvasConfig `yaml:"canvas" toml:"canvas"`

	// Journal contains configuration for the session journal, which records
	// every executed input together with its outcome.
	Journal JournalConfig `yaml:"journal" toml:"journal"`

	// Watch contains configuration for the watch command.
	Watch WatchConfig `yaml:"watch" toml:"watch"`

	// Telemetry contains configuration for logging, metrics and tracing.
	Telemetry TelemetryConfig `yaml:"telemetry" toml:"telemetry"`
}

// InterpreterConfig contains evaluator limits and parser settings.
type InterpreterConfig struct {
	// MaxCallDepth bounds nested function calls. A call past the limit
	// prints a diagnostic and evaluates to 0.
	// Default: 512
	MaxCallDepth int `yaml:"max_call_depth" toml:"max_call_depth"`

	// MaxLoadDepth bounds nested load statements.
	// Default: 16
	MaxLoadDepth int `yaml:"max_load_depth" toml:"max_load_depth"`

	// DisableSuggestions turns off "did you mean" hints in diagnostics.
	// Default: false
	DisableSuggestions bool `yaml:"disable_suggestions" toml:"disable_suggestions"`

	// LoadDir is the directory relative load paths resolve against.
	// Empty means the directory of the running script, or the working
	// directory for interactive input.
	LoadDir string `yaml:"load_dir" toml:"load_dir"`

	// MaxFileSize is the largest script file the parser accepts, in bytes.
	// Default: 1048576 (1MB)
	MaxFileSize int64 `yaml:"max_file_size" toml:"max_file_size"`

	// MaxErrors is the number of syntax errors collected before parsing stops.
	// Default: 10
	MaxErrors int `yaml:"max_errors" toml:"max_errors"`
}

// CanvasConfig contains the drawing surface configuration.
type CanvasConfig struct {
	// Width of the canvas in pixels.
	// Default: 640
	Width int `yaml:"width" toml:"width"`

	// Height of the canvas in pixels.
	// Default: 480
	Height int `yaml:"height" toml:"height"`

	// Background is the canvas color as "#rrggbb".
	// Default: "#000000"
	Background string `yaml:"background" toml:"background"`

	// Output is the SVG file written after a run. Empty disables rendering
	// unless a command flag asks for it.
	Output string `yaml:"output" toml:"output"`
}

// JournalConfig contains configuration for the session journal.
type JournalConfig struct {
	// Enabled controls whether executed inputs are journaled.
	// Default: false
	Enabled bool `yaml:"enabled" toml:"enabled"`

	// Driver selects the storage backend.
	// Options: "sqlite" (pure Go), "sqlite3" (cgo), "memory"
	// Default: "sqlite"
	Driver string `yaml:"driver" toml:"driver"`

	// Path is the SQLite database file.
	// Default: "data/journal.db"
	Path string `yaml:"path" toml:"path"`

	// BusyTimeout is how long SQLite waits on a locked database.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout" toml:"busy_timeout"`

	// MaxSourceLength truncates the journaled source text.
	// Default: 4096
	MaxSourceLength int `yaml:"max_source_length" toml:"max_source_length"`

	// Retention contains the pruning policy for old entries.
	Retention RetentionConfig `yaml:"retention" toml:"retention"`
}

// RetentionConfig contains the journal pruning policy.
type RetentionConfig struct {
	// Days is how long entries are kept. 0 keeps entries forever.
	// Default: 30
	Days int `yaml:"days" toml:"days"`

	// Schedule is a cron expression for background pruning. Empty disables
	// the scheduler.
	// Default: "0 3 * * *" (3 AM daily)
	Schedule string `yaml:"schedule" toml:"schedule"`
}

// WatchConfig contains configuration for the watch command.
type WatchConfig struct {
	// Debounce is how long the watcher waits for file events to settle
	// before re-running the script.
	// Default: 200ms
	Debounce time.Duration `yaml:"debounce" toml:"debounce"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging" toml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics" toml:"metrics"`

	// Tracing contains distributed tracing configuration.
	Tracing TracingConfig `yaml:"tracing" toml:"tracing"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "warn"
	Level string `yaml:"level" toml:"level"`

	// Format controls the log output format.
	// Options: "json", "text"
	// Default: "text"
	Format string `yaml:"format" toml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source" toml:"add_source"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether interpreter metrics are collected.
	// Default: false
	Enabled bool `yaml:"enabled" toml:"enabled"`

	// Listen is the address of the Prometheus HTTP endpoint, e.g. ":9090".
	// Empty collects metrics without serving them.
	Listen string `yaml:"listen" toml:"listen"`

	// Path is the HTTP path for the Prometheus metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path" toml:"path"`

	// Namespace is the metric name prefix.
	// Default: "turtle"
	Namespace string `yaml:"namespace" toml:"namespace"`
}

// TracingConfig contains distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether spans are exported.
	// Default: false
	Enabled bool `yaml:"enabled" toml:"enabled"`

	// Endpoint is the OTLP/gRPC collector address.
	// Example: "localhost:4317"
	Endpoint string `yaml:"endpoint" toml:"endpoint"`

	// Sampler determines the sampling strategy.
	// Options: "always", "never", "ratio"
	// Default: "always"
	Sampler string `yaml:"sampler" toml:"sampler"`

	// SampleRatio is the fraction of runs to trace (0.0 to 1.0).
	// Only used when Sampler is "ratio".
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio" toml:"sample_ratio"`

	// ServiceName is the service name in traces.
	// Default: "turtle"
	ServiceName string `yaml:"service_name" toml:"service_name"`

	// Insecure disables TLS for the collector connection.
	// Default: false
	Insecure bool `yaml:"insecure" toml:"insecure"`

	// Timeout bounds each export.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout" toml:"timeout"`
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML or TOML file at the specified
// path. Files ending in ".toml" are decoded as TOML, everything else as YAML.
// It applies default values, validates the configuration, and returns any
// errors. The configuration is not modified by environment variables; use
// LoadConfigWithEnvOverrides for that functionality.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := decode(path, data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("unknown key %q", undecoded[0].String())
		}
		return nil
	default:
		return yaml.Unmarshal(data, cfg)
	}
}

// LoadConfigWithEnvOverrides loads configuration from a file and applies
// environment variable overrides. Environment variables follow the naming
// convention TURTLE_SECTION_FIELD (e.g., TURTLE_INTERPRETER_MAX_CALL_DEPTH).
// Environment variables always take precedence over file-based configuration.
//
// A path that does not exist yields the defaults, so the console runs without
// any configuration file. Other read errors are returned.
//
// The loading sequence is:
// 1. Load YAML or TOML from file
// 2. Apply default values
// 3. Apply environment variable overrides
// 4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg, err = Default(), nil
	}
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables use the format TURTLE_SECTION_FIELD. Values that do
// not parse are ignored.
func applyEnvOverrides(cfg *Config) {
	// Interpreter overrides
	envInt("TURTLE_INTERPRETER_MAX_CALL_DEPTH", &cfg.Interpreter.MaxCallDepth)
	envInt("TURTLE_INTERPRETER_MAX_LOAD_DEPTH", &cfg.Interpreter.MaxLoadDepth)
	envBool("TURTLE_INTERPRETER_DISABLE_SUGGESTIONS", &cfg.Interpreter.DisableSuggestions)
	envString("TURTLE_INTERPRETER_LOAD_DIR", &cfg.Interpreter.LoadDir)
	if val := os.Getenv("TURTLE_INTERPRETER_MAX_FILE_SIZE"); val != "" {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			cfg.Interpreter.MaxFileSize = i
		}
	}
	envInt("TURTLE_INTERPRETER_MAX_ERRORS", &cfg.Interpreter.MaxErrors)

	// Canvas overrides
	envInt("TURTLE_CANVAS_WIDTH", &cfg.Canvas.Width)
	envInt("TURTLE_CANVAS_HEIGHT", &cfg.Canvas.Height)
	envString("TURTLE_CANVAS_BACKGROUND", &cfg.Canvas.Background)
	envString("TURTLE_CANVAS_OUTPUT", &cfg.Canvas.Output)

	// Journal overrides
	envBool("TURTLE_JOURNAL_ENABLED", &cfg.Journal.Enabled)
	envString("TURTLE_JOURNAL_DRIVER", &cfg.Journal.Driver)
	envString("TURTLE_JOURNAL_PATH", &cfg.Journal.Path)
	envDuration("TURTLE_JOURNAL_BUSY_TIMEOUT", &cfg.Journal.BusyTimeout)
	envInt("TURTLE_JOURNAL_MAX_SOURCE_LENGTH", &cfg.Journal.MaxSourceLength)
	envInt("TURTLE_JOURNAL_RETENTION_DAYS", &cfg.Journal.Retention.Days)
	envString("TURTLE_JOURNAL_RETENTION_SCHEDULE", &cfg.Journal.Retention.Schedule)

	// Watch overrides
	envDuration("TURTLE_WATCH_DEBOUNCE", &cfg.Watch.Debounce)

	// Telemetry overrides
	envString("TURTLE_TELEMETRY_LOGGING_LEVEL", &cfg.Telemetry.Logging.Level)
	envString("TURTLE_TELEMETRY_LOGGING_FORMAT", &cfg.Telemetry.Logging.Format)
	envBool("TURTLE_TELEMETRY_METRICS_ENABLED", &cfg.Telemetry.Metrics.Enabled)
	envString("TURTLE_TELEMETRY_METRICS_LISTEN", &cfg.Telemetry.Metrics.Listen)
	envString("TURTLE_TELEMETRY_METRICS_PATH", &cfg.Telemetry.Metrics.Path)
	envBool("TURTLE_TELEMETRY_TRACING_ENABLED", &cfg.Telemetry.Tracing.Enabled)
	envString("TURTLE_TELEMETRY_TRACING_ENDPOINT", &cfg.Telemetry.Tracing.Endpoint)
	envString("TURTLE_TELEMETRY_TRACING_SAMPLER", &cfg.Telemetry.Tracing.Sampler)
	if val := os.Getenv("TURTLE_TELEMETRY_TRACING_SAMPLE_RATIO"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Telemetry.Tracing.SampleRatio = f
		}
	}
	envBool("TURTLE_TELEMETRY_TRACING_INSECURE", &cfg.Telemetry.Tracing.Insecure)
}

func envString(key string, dst *string) {
	if val := os.Getenv(key); val != "" {
		*dst = val
	}
}

func envInt(key string, dst *int) {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			*dst = i
		}
	}
}

func envBool(key string, dst *bool) {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			*dst = b
		}
	}
}

func envDuration(key string, dst *time.Duration) {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			*dst = d
		}
	}
}

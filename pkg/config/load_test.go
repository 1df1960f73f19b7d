package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfig_YAML(t *testing.T) {
	path := writeConfig(t, "turtle.yaml", `
interpreter:
  max_call_depth: 100
  load_dir: lib

canvas:
  width: 800
  background: "#202020"

journal:
  enabled: true
  driver: sqlite3
  busy_timeout: 2s
  retention:
    days: 7

watch:
  debounce: 50ms

telemetry:
  logging:
    level: debug
    format: json
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Interpreter.MaxCallDepth != 100 {
		t.Errorf("expected max call depth 100, got %d", cfg.Interpreter.MaxCallDepth)
	}
	if cfg.Interpreter.LoadDir != "lib" {
		t.Errorf("expected load dir %q, got %q", "lib", cfg.Interpreter.LoadDir)
	}
	if cfg.Canvas.Width != 800 || cfg.Canvas.Height != DefaultCanvasHeight {
		t.Errorf("expected canvas 800x%d, got %dx%d", DefaultCanvasHeight, cfg.Canvas.Width, cfg.Canvas.Height)
	}
	if !cfg.Journal.Enabled || cfg.Journal.Driver != "sqlite3" {
		t.Errorf("unexpected journal config %+v", cfg.Journal)
	}
	if cfg.Journal.BusyTimeout != 2*time.Second {
		t.Errorf("expected busy timeout 2s, got %v", cfg.Journal.BusyTimeout)
	}
	if cfg.Watch.Debounce != 50*time.Millisecond {
		t.Errorf("expected debounce 50ms, got %v", cfg.Watch.Debounce)
	}
	if cfg.Telemetry.Logging.Format != "json" {
		t.Errorf("expected logging format json, got %q", cfg.Telemetry.Logging.Format)
	}
}

func TestLoadConfig_TOML(t *testing.T) {
	path := writeConfig(t, "turtle.toml", `
[interpreter]
max_call_depth = 100
disable_suggestions = true

[canvas]
height = 300

[journal]
enabled = true
driver = "memory"
retention = { days = 2, schedule = "@daily" }

[watch]
debounce = "1s"

[telemetry.tracing]
enabled = true
endpoint = "localhost:4317"
sampler = "ratio"
sample_ratio = 0.25
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Interpreter.MaxCallDepth != 100 || !cfg.Interpreter.DisableSuggestions {
		t.Errorf("unexpected interpreter config %+v", cfg.Interpreter)
	}
	if cfg.Canvas.Height != 300 {
		t.Errorf("expected height 300, got %d", cfg.Canvas.Height)
	}
	if cfg.Journal.Retention.Days != 2 || cfg.Journal.Retention.Schedule != "@daily" {
		t.Errorf("unexpected retention %+v", cfg.Journal.Retention)
	}
	if cfg.Watch.Debounce != time.Second {
		t.Errorf("expected debounce 1s, got %v", cfg.Watch.Debounce)
	}
	if cfg.Telemetry.Tracing.SampleRatio != 0.25 {
		t.Errorf("expected sample ratio 0.25, got %v", cfg.Telemetry.Tracing.SampleRatio)
	}
}

func TestLoadConfig_TOMLUnknownKey(t *testing.T) {
	path := writeConfig(t, "turtle.toml", "[canvas]\ncolour = \"#ffffff\"\n")

	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "canvas.colour") {
		t.Errorf("expected unknown key error, got %v", err)
	}
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected not-exist error, got: %v", err)
	}
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "turtle.yaml", "canvas:\n  width: [\n")

	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestLoadConfig_ValidationFailure(t *testing.T) {
	path := writeConfig(t, "turtle.yaml", "telemetry:\n  logging:\n    level: loud\n")

	_, err := LoadConfig(path)
	var validationErr ValidationError
	if !errors.As(err, &validationErr) {
		t.Errorf("expected ValidationError in error chain, got %T: %v", err, err)
	}
}

func TestLoadConfigWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, "turtle.yaml", "interpreter:\n  max_call_depth: 100\n")

	t.Setenv("TURTLE_INTERPRETER_MAX_CALL_DEPTH", "42")
	t.Setenv("TURTLE_JOURNAL_ENABLED", "true")
	t.Setenv("TURTLE_JOURNAL_DRIVER", "memory")
	t.Setenv("TURTLE_WATCH_DEBOUNCE", "75ms")
	t.Setenv("TURTLE_TELEMETRY_TRACING_SAMPLE_RATIO", "0.5")
	t.Setenv("TURTLE_CANVAS_WIDTH", "not-a-number")

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Interpreter.MaxCallDepth != 42 {
		t.Errorf("expected max call depth 42 from env, got %d", cfg.Interpreter.MaxCallDepth)
	}
	if !cfg.Journal.Enabled || cfg.Journal.Driver != "memory" {
		t.Errorf("journal overrides not applied: %+v", cfg.Journal)
	}
	if cfg.Watch.Debounce != 75*time.Millisecond {
		t.Errorf("expected debounce 75ms from env, got %v", cfg.Watch.Debounce)
	}
	if cfg.Telemetry.Tracing.SampleRatio != 0.5 {
		t.Errorf("expected sample ratio 0.5 from env, got %v", cfg.Telemetry.Tracing.SampleRatio)
	}
	if cfg.Canvas.Width != DefaultCanvasWidth {
		t.Errorf("unparsable override should be ignored, got width %d", cfg.Canvas.Width)
	}
}

func TestLoadConfigWithEnvOverrides_MissingFile(t *testing.T) {
	t.Setenv("TURTLE_CANVAS_HEIGHT", "200")

	cfg, err := LoadConfigWithEnvOverrides(filepath.Join(t.TempDir(), "turtle.yaml"))
	if err != nil {
		t.Fatalf("missing file should yield defaults: %v", err)
	}
	if cfg.Canvas.Height != 200 || cfg.Canvas.Width != DefaultCanvasWidth {
		t.Errorf("unexpected canvas %+v", cfg.Canvas)
	}
}

func TestLoadConfigWithEnvOverrides_InvalidOverride(t *testing.T) {
	t.Setenv("TURTLE_TELEMETRY_LOGGING_LEVEL", "loud")

	_, err := LoadConfigWithEnvOverrides(filepath.Join(t.TempDir(), "turtle.yaml"))
	if err == nil || !strings.Contains(err.Error(), "after environment overrides") {
		t.Errorf("expected validation failure after overrides, got %v", err)
	}
}

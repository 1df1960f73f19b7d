package script

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"turtlescript/console/pkg/script/device"
)

const examplesDir = "../../examples/scripts"

func TestRunFile_Examples(t *testing.T) {
	tests := []struct {
		file    string
		output  string
		lines   int
		circles int
	}{
		{file: "recursion.tsc", output: "720.000000\n55.000000\nTrue\n"},
		{file: "olympics.tsc", circles: 5},
		{file: "lantern.tsc", lines: 8},
		{file: "flower.tsc", output: "petals drawn: \n12.000000\n", lines: 48},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			canvas := device.NewCanvas(device.DefaultCanvasConfig())
			var out strings.Builder

			_, err := RunFile(context.Background(), filepath.Join(examplesDir, tt.file), canvas, &out)
			if err != nil {
				t.Fatalf("RunFile() error = %v", err)
			}

			if out.String() != tt.output {
				t.Errorf("output = %q, want %q", out.String(), tt.output)
			}
			if got := len(canvas.Lines()); got != tt.lines {
				t.Errorf("lines = %d, want %d", got, tt.lines)
			}
			if got := len(canvas.Circles()); got != tt.circles {
				t.Errorf("circles = %d, want %d", got, tt.circles)
			}
		})
	}
}

func TestParseAndRun_Environment(t *testing.T) {
	e, err := ParseAndRun(context.Background(), "x = 6 * 7\nfunction f() { }\n", "inline", nil, nil)
	if err != nil {
		t.Fatalf("ParseAndRun() error = %v", err)
	}

	if v, ok := e.Variable("x"); !ok || v != 42 {
		t.Errorf("x = %v, %v; want 42", v, ok)
	}
	if _, ok := e.Function("f"); !ok {
		t.Error("function f should be defined")
	}
}

func TestParseAndRun_SyntaxError(t *testing.T) {
	var out strings.Builder
	e, err := ParseAndRun(context.Background(), "echo 1\nforwrd 10\n", "inline", nil, &out)
	if err == nil {
		t.Fatal("expected syntax error")
	}
	if e != nil || out.Len() != 0 {
		t.Error("nothing should run when parsing fails")
	}
}

func TestParseAndRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := ParseAndRun(ctx, "while 1 == 1 { forward 1 }", "inline", nil, nil)
	if err != context.DeadlineExceeded {
		t.Errorf("ParseAndRun() error = %v, want deadline exceeded", err)
	}
}

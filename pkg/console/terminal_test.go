package console

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mattn/go-isatty"

	"turtlescript/console/pkg/telemetry/logging"
)

func TestTerminal_History(t *testing.T) {
	if isatty.IsTerminal(os.Stdin.Fd()) {
		t.Skip("standard input is a terminal")
	}

	path := filepath.Join(t.TempDir(), "history")
	if err := os.WriteFile(path, []byte("forward 10\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	term := NewTerminal(path, logging.Discard())
	term.state.AppendHistory("right 90")
	if err := term.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(data), "forward 10\nright 90\n"; got != want {
		t.Errorf("history = %q, want %q", got, want)
	}
}

func TestTerminal_MissingHistoryFile(t *testing.T) {
	if isatty.IsTerminal(os.Stdin.Fd()) {
		t.Skip("standard input is a terminal")
	}

	path := filepath.Join(t.TempDir(), "history")
	term := NewTerminal(path, logging.Discard())
	if err := term.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("history file should be created on close: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("history = %q, want empty", data)
	}
}

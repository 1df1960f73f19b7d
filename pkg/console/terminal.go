package console

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/peterh/liner"
)

// Terminal reads interactive input from the controlling terminal with line
// editing and a history that persists between sessions.
type Terminal struct {
	state       *liner.State
	historyPath string
	logger      *slog.Logger
}

// NewTerminal takes over standard input for line editing and loads the
// history file, if historyPath is set. A missing history file is not an
// error. The terminal must be closed to restore the input mode and save the
// history.
func NewTerminal(historyPath string, logger *slog.Logger) *Terminal {
	if logger == nil {
		logger = slog.Default()
	}

	state := liner.NewLiner()
	state.SetCtrlCAborts(true)

	t := &Terminal{state: state, historyPath: historyPath, logger: logger}
	if historyPath == "" {
		return t
	}

	f, err := os.Open(historyPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warn("cannot read history", "path", historyPath, "error", err)
		}
		return t
	}
	defer f.Close()
	if _, err := state.ReadHistory(f); err != nil {
		logger.Warn("cannot read history", "path", historyPath, "error", err)
	}
	return t
}

// ReadLine prompts for one line. Non-blank lines are added to the history.
// Ctrl+C yields ErrInterrupted.
func (t *Terminal) ReadLine(prompt string) (string, error) {
	line, err := t.state.Prompt(prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", ErrInterrupted
	}
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(line) != "" {
		t.state.AppendHistory(line)
	}
	return line, nil
}

// Close saves the history and restores the terminal.
func (t *Terminal) Close() error {
	var saveErr error
	if t.historyPath != "" {
		saveErr = t.saveHistory()
	}
	if err := t.state.Close(); err != nil {
		return err
	}
	return saveErr
}

func (t *Terminal) saveHistory() error {
	f, err := os.Create(t.historyPath)
	if err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}
	if _, err := t.state.WriteHistory(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to save history: %w", err)
	}
	return f.Close()
}

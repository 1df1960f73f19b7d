// Package logging builds the structured loggers used across the console.
//
// # Overview
//
// The package wraps Go's standard log/slog package to provide:
//   - JSON and text output selected by configuration
//   - Level parsing shared with the configuration validator
//   - Context-aware records carrying session, run and trace identifiers
//
// Components accept a plain *slog.Logger and default to slog.Default(), so
// the loggers built here are installed with slog.SetDefault at startup.
//
// # Usage
//
//	logger, err := logging.New(logging.Config{
//	    Level:  "debug",
//	    Format: "json",
//	})
//
//	ctx = logging.WithSession(ctx, sessionID)
//	ctx = logging.WithRun(ctx, runID)
//	logger.InfoContext(ctx, "input executed", "nodes", 42)
//	// {"level":"INFO","msg":"input executed","nodes":42,"session":"...","run":"..."}
//
// Logs go to stderr by default; stdout belongs to the script's echo output.
package logging

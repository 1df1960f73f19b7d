package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"turtlescript/console/pkg/cli"
	"turtlescript/console/pkg/console"
)

// historyFile is the default REPL history location, under the home directory.
const historyFile = ".turtle_history"

var replFlags struct {
	svg     string
	history string
}

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive session",
	Long: `Start an interactive Turtle Script session on standard input.

Each complete statement is executed as soon as it is entered; blocks are
continued over several lines until their braces balance. Variables and
functions persist for the whole session. The session ends at end of input,
on "exit", or on Ctrl+C. With --svg the drawing is rendered when the
session ends.

On a terminal, lines can be edited and earlier inputs recalled with the
arrow keys. The history is kept in ~/.turtle_history unless --history
names another file; --history "" disables it.`,
	Args: cobra.NoArgs,
	RunE: runREPL,
}

func init() {
	rootCmd.AddCommand(replCmd)

	replCmd.Flags().StringVar(&replFlags.svg, "svg", "", "write the drawing as SVG to this file on exit")
	replCmd.Flags().StringVar(&replFlags.history, "history", defaultHistoryPath(), "history file for terminal sessions")
}

func runREPL(cmd *cobra.Command, args []string) error {
	ctx, stop := cli.SetupSignalHandler(cmd.Context())
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	session, err := a.newSession(cmd.OutOrStdout(), nil)
	if err != nil {
		return cli.NewCommandError("repl", err)
	}
	defer session.Close()

	var replErr error
	if isTerminal(cmd) {
		fmt.Fprintf(cmd.OutOrStdout(), "Turtle %s. Type \"help\" for commands, \"exit\" to quit.\n", Version)

		term := console.NewTerminal(replFlags.history, a.logger)
		replErr = session.Interact(ctx, term)
		if err := term.Close(); err != nil {
			a.logger.Warn("terminal not restored cleanly", "error", err)
		}
	} else {
		replErr = session.REPL(ctx, cmd.InOrStdin())
	}

	svg := replFlags.svg
	if svg == "" {
		svg = a.cfg.Canvas.Output
	}
	if err := writeSVG(session.Canvas(), svg); err != nil {
		return cli.NewCommandError("repl", err)
	}

	return cli.Silence(replErr)
}

// isTerminal reports whether the command reads the process's own terminal.
func isTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.InOrStdin().(*os.File)
	return ok && f == os.Stdin && isatty.IsTerminal(f.Fd())
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, historyFile)
}

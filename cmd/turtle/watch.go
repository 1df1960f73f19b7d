package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"turtlescript/console/pkg/cli"
	"turtlescript/console/pkg/config"
	"turtlescript/console/pkg/console"
	"turtlescript/console/pkg/watch"
)

var watchFlags struct {
	svg string
}

var watchCmd = &cobra.Command{
	Use:   "watch FILE",
	Short: "Re-run a script whenever it changes",
	Long: `Run a script, then run it again every time it is saved.

Each run starts from a fresh session: no variables or functions survive from
the previous run. Changes to the configuration file are picked up before the
next run.

Examples:
  # Keep spiral.svg up to date while editing
  turtle watch spiral.tsc --svg spiral.svg`,
	Args: cobra.ExactArgs(1),
	RunE: watchScript,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVar(&watchFlags.svg, "svg", "", "write the drawing as SVG to this file after every run")
}

// watchRunner re-runs one script with the current configuration.
type watchRunner struct {
	app    *app
	script string
	svg    string
	out    io.Writer
	status io.Writer

	mu sync.Mutex
}

func watchScript(cmd *cobra.Command, args []string) error {
	ctx, stop := cli.SetupSignalHandler(cmd.Context())
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	r := &watchRunner{
		app:    a,
		script: args[0],
		svg:    watchFlags.svg,
		out:    cmd.OutOrStdout(),
		status: cmd.ErrOrStderr(),
	}

	paths := []string{r.script}
	if _, err := os.Stat(cfgFile); err == nil {
		paths = append(paths, cfgFile)
	}

	w, err := watch.New(watch.Config{Paths: paths, Debounce: a.cfg.Watch.Debounce}, a.logger)
	if err != nil {
		return cli.NewCommandError("watch", err)
	}
	defer w.Close()

	r.run(ctx)
	fmt.Fprintf(r.status, "watching %s (Ctrl+C to stop)\n", r.script)

	return w.Watch(ctx, func(path string) error {
		if samePath(path, cfgFile) {
			return r.reloadConfig(ctx)
		}
		r.run(ctx)
		return nil
	})
}

// reloadConfig applies a changed configuration file to the next runs. An
// invalid file keeps the current configuration.
func (r *watchRunner) reloadConfig(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cfg, err := config.ReloadConfig()
	if err != nil {
		fmt.Fprintf(r.status, "configuration not reloaded: %v\n", err)
		return err
	}
	r.app.cfg = cfg
	fmt.Fprintln(r.status, "configuration reloaded")
	r.runLocked(ctx)
	return nil
}

func (r *watchRunner) run(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runLocked(ctx)
}

func (r *watchRunner) runLocked(ctx context.Context) {
	session, err := r.app.newSession(r.out, nil)
	if err != nil {
		fmt.Fprintf(r.status, "cannot start session: %v\n", err)
		return
	}
	defer session.Close()

	res, _ := session.ExecuteFileAs(ctx, console.OriginWatch, r.script)
	if res == nil {
		return
	}

	svg := r.svg
	if svg == "" {
		svg = r.app.cfg.Canvas.Output
	}
	if err := writeSVG(session.Canvas(), svg); err != nil {
		fmt.Fprintf(r.status, "%v\n", err)
	}

	fmt.Fprintf(r.status, "%s: %s (%d commands, %d diagnostics, %s)\n",
		r.script, res.Status, res.Commands, res.Diagnostics, res.Duration.Round(time.Microsecond))
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}

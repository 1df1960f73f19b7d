package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"turtlescript/console/pkg/cli"
	"turtlescript/console/pkg/console"
	"turtlescript/console/pkg/script/device"
	"turtlescript/console/pkg/telemetry/metrics"
)

var runFlags struct {
	svg    string
	record string
}

var runCmd = &cobra.Command{
	Use:   "run FILE",
	Short: "Run a script",
	Long: `Run a Turtle Script file on a headless canvas.

The drawing is written as SVG to --svg (or canvas.output from the config
file) and, with --record, as a CBOR recording that "turtle replay" can
render again later.

Examples:
  # Run and render
  turtle run flower.tsc --svg flower.svg

  # Keep a replayable recording
  turtle run flower.tsc --record flower.cbor`,
	Args: cobra.ExactArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runFlags.svg, "svg", "", "write the drawing as SVG to this file")
	runCmd.Flags().StringVar(&runFlags.record, "record", "", "write a CBOR recording of the device calls to this file")
}

func runScript(cmd *cobra.Command, args []string) error {
	ctx, stop := cli.SetupSignalHandler(cmd.Context())
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	session, err := a.newSession(cmd.OutOrStdout(), nil)
	if err != nil {
		return cli.NewCommandError("run", err)
	}
	defer session.Close()

	res, runErr := session.ExecuteFile(ctx, args[0])
	if res != nil && res.Status == metrics.StatusCancelled {
		fmt.Fprintln(cmd.ErrOrStderr(), "interrupted")
	}

	// Render whatever was drawn, even after a failed run.
	svg := runFlags.svg
	if svg == "" {
		svg = a.cfg.Canvas.Output
	}
	if err := writeSVG(session.Canvas(), svg); err != nil {
		return cli.NewCommandError("run", err)
	}
	if runFlags.record != "" {
		if err := writeRecording(session, runFlags.record); err != nil {
			return cli.NewCommandError("run", err)
		}
	}

	// The session has already printed script errors.
	return cli.Silence(runErr)
}

func writeRecording(session *console.Session, path string) error {
	data, err := device.MarshalRecording(session.Recording())
	if err != nil {
		return fmt.Errorf("failed to encode recording: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write recording: %w", err)
	}
	return nil
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"turtlescript/console/pkg/cli"
	"turtlescript/console/pkg/config"
	"turtlescript/console/pkg/script/device"
)

var replayFlags struct {
	svg string
}

var replayCmd = &cobra.Command{
	Use:   "replay RECORDING",
	Short: "Render a recording made with run --record",
	Long: `Replay the device calls of a CBOR recording on a fresh canvas and render
the result as SVG. The script is not needed: the recording holds every
turtle command it issued.

Examples:
  turtle run flower.tsc --record flower.cbor
  turtle replay flower.cbor --svg flower.svg`,
	Args: cobra.ExactArgs(1),
	RunE: replayRecording,
}

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().StringVar(&replayFlags.svg, "svg", "", "write the drawing as SVG to this file (required)")
	_ = replayCmd.MarkFlagRequired("svg")
}

func replayRecording(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return cli.NewCommandError("replay", fmt.Errorf("failed to read recording: %w", err))
	}

	rec, err := device.UnmarshalRecording(data)
	if err != nil {
		return cli.NewCommandError("replay", err)
	}

	cfg := config.GetConfig()
	if cfg == nil {
		cfg = config.Default()
	}
	background, err := device.ParseColor(cfg.Canvas.Background)
	if err != nil {
		return cli.NewConfigError("canvas.background", err.Error())
	}

	canvas := device.NewCanvas(device.CanvasConfig{
		Width:      rec.Width,
		Height:     rec.Height,
		Background: background,
	})
	if err := rec.Replay(canvas); err != nil {
		return cli.NewCommandError("replay", err)
	}

	if err := writeSVG(canvas, replayFlags.svg); err != nil {
		return cli.NewCommandError("replay", err)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "replayed %d calls into %s\n", len(rec.Calls), replayFlags.svg)
	return nil
}

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"turtlescript/console/pkg/cli"
	"turtlescript/console/pkg/config"
)

var (
	// Global flags
	cfgFile       string
	verbose       bool
	logLevel      string
	metricsListen string
)

var rootCmd = &cobra.Command{
	Use:   "turtle",
	Short: "Turtle Script console",
	Long: `Turtle is the console for Turtle Script, a small language for turtle graphics.

Scripts draw on a headless canvas that can be rendered to SVG or recorded
as a replayable CBOR file. Every executed input can be journaled to SQLite,
counted in Prometheus metrics and traced with OpenTelemetry.

Exit codes:
  0  success
  1  generic failure (I/O, configuration)
  2  syntax error
  3  internal interpreter error`,
	Version:           Version,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// Execute runs the root command and exits with the code matching the error.
func Execute() {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, cli.ErrSilent) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(cli.ExitCode(err))
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "turtle.yaml", "config file path (.yaml or .toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&metricsListen, "metrics-listen", "", "serve Prometheus metrics on this address")
}

// loadConfig loads the configuration file, applies global flag overrides
// and publishes the result as the global configuration.
func loadConfig(cmd *cobra.Command, args []string) error {
	if _, err := config.Publish(cfgFile, flagOverrides()...); err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}
	return nil
}

// flagOverrides captures the global flags as configuration overrides. They
// are re-applied when the configuration file is reloaded.
func flagOverrides() []config.Override {
	var overrides []config.Override

	level := logLevel
	if level == "" && verbose {
		level = "debug"
	}
	if level != "" {
		overrides = append(overrides, func(cfg *config.Config) {
			cfg.Telemetry.Logging.Level = level
		})
	}

	if listen := metricsListen; listen != "" {
		overrides = append(overrides, func(cfg *config.Config) {
			cfg.Telemetry.Metrics.Enabled = true
			cfg.Telemetry.Metrics.Listen = listen
		})
	}

	return overrides
}

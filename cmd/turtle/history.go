package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"turtlescript/console/pkg/cli"
	"turtlescript/console/pkg/config"
	"turtlescript/console/pkg/journal"
)

var historyFlags struct {
	session string
	origin  string
	status  string
	since   string
	limit   int
	offset  int
	format  string
	prune   bool
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the journal of executed inputs",
	Long: `List journal entries, newest first.

The journal must be enabled in the configuration (journal.enabled) for
inputs to be recorded.

Examples:
  # Last 20 inputs
  turtle history --limit 20

  # Everything from one session as JSON
  turtle history --session 6f1c... --format json

  # Failed runs of the last day
  turtle history --status syntax_error --since 24h

  # Apply the retention policy now
  turtle history --prune`,
	Args: cobra.NoArgs,
	RunE: showHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().StringVar(&historyFlags.session, "session", "", "filter by session ID")
	historyCmd.Flags().StringVar(&historyFlags.origin, "origin", "", "filter by origin (interactive, file, watch)")
	historyCmd.Flags().StringVar(&historyFlags.status, "status", "", "filter by status (ok, syntax_error, io_error, internal_error, cancelled, exit)")
	historyCmd.Flags().StringVar(&historyFlags.since, "since", "", "only entries newer than this duration, e.g. 24h")
	historyCmd.Flags().IntVar(&historyFlags.limit, "limit", 50, "max entries (-1 for all)")
	historyCmd.Flags().IntVar(&historyFlags.offset, "offset", 0, "pagination offset")
	historyCmd.Flags().StringVar(&historyFlags.format, "format", "text", "output format: text, json, csv")
	historyCmd.Flags().BoolVar(&historyFlags.prune, "prune", false, "delete entries older than the retention period first")
}

// historyTable renders journal entries as rows.
type historyTable []*journal.Entry

func (t historyTable) Headers() []string {
	return []string{"STARTED", "SESSION", "ORIGIN", "STATUS", "NODES", "COMMANDS", "DURATION", "SOURCE"}
}

func (t historyTable) Rows() [][]string {
	rows := make([][]string, 0, len(t))
	for _, e := range t {
		rows = append(rows, []string{
			e.StartedAt.Local().Format(time.DateTime),
			shortID(e.SessionID),
			e.Origin,
			e.Status,
			strconv.Itoa(e.Nodes),
			strconv.Itoa(e.Commands),
			e.Duration.Round(time.Microsecond).String(),
			summarize(e),
		})
	}
	return rows
}

func showHistory(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseOutputFormat(historyFlags.format)
	if err != nil {
		return err
	}

	cfg := config.GetConfig()
	if cfg == nil {
		cfg = config.Default()
	}
	if !cfg.Journal.Enabled {
		return cli.NewConfigError("journal.enabled", "the journal is disabled")
	}

	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	if historyFlags.prune {
		if a.pruner == nil {
			return cli.NewConfigError("journal.retention.days", "no retention period configured")
		}
		deleted, err := a.pruner.Prune(ctx)
		if err != nil {
			return cli.NewCommandError("history", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "pruned %d entries\n", deleted)
	}

	query := &journal.Query{
		SessionID: historyFlags.session,
		Origin:    historyFlags.origin,
		Status:    historyFlags.status,
		Limit:     historyFlags.limit,
		Offset:    historyFlags.offset,
	}
	if historyFlags.since != "" {
		d, err := time.ParseDuration(historyFlags.since)
		if err != nil {
			return fmt.Errorf("invalid --since: %w", err)
		}
		start := time.Now().Add(-d)
		query.StartTime = &start
	}

	entries, err := a.store.Query(ctx, query)
	if err != nil {
		return cli.NewCommandError("history", fmt.Errorf("query failed: %w", err))
	}

	if format == cli.FormatText && len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No entries found.")
		return nil
	}
	return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), historyTable(entries))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// summarize returns the first line of the source, or the file name for
// file runs.
func summarize(e *journal.Entry) string {
	if e.File != "" {
		return e.File
	}
	line := e.Source
	for i, r := range line {
		if r == '\n' {
			line = line[:i]
			break
		}
	}
	if r := []rune(line); len(r) > 40 {
		line = string(r[:37]) + "..."
	}
	return line
}

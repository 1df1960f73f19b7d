/*
Package cli provides command-line interface utilities for the turtle command.

The cli package includes output formatters, a progress reporter, error types
with process exit codes, and signal handling.

Output Formatting:

Results that implement Table can be printed as aligned text, JSON or CSV:

	formatter := cli.NewFormatter(cli.FormatJSON)
	if err := formatter.FormatTo(os.Stdout, rows); err != nil {
		return err
	}

Progress Reporting:

For commands that walk many files:

	progress := cli.NewProgressReporter(os.Stderr, "files")
	progress.Start(int64(len(files)))
	for i, f := range files {
		check(f)
		progress.Update(int64(i + 1))
	}
	progress.Finish()

Exit Codes:

	os.Exit(cli.ExitCode(err))

Signal Handling:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()
*/
package cli

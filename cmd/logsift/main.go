// Command logsift extracts structured fields from log files using
// extraction templates, and suggests templates for unfamiliar files.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "logsift",
	Short: "Extract structured fields from log files",
	Long: `logsift extracts structured fields from line-oriented log files using
named-placeholder templates or regular expressions.

A template names the fields it extracts:

  logsift extract app.log --template "[{Timestamp}] {Level}: {Message}"

When the right template is unknown, logsift can score a catalog of
candidates against the first lines of the file and suggest the best one:

  logsift suggest app.log --catalog templates.yaml

By default results are printed as a single JSON envelope
({"success": ..., "data": ..., "error": ...}) for consumption by a host
application; use --format jsonl or --format pretty for human-oriented
output.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable debug logging to stderr")
}

// newLogger returns the stderr diagnostic logger shared by all subcommands.
// Diagnostics never mix with result output, which goes to stdout.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/logsift/logsift-go/pkg/logsift"
	"github.com/logsift/logsift-go/pkg/logsift/record"
)

var (
	// extract flags
	extractTemplate string
	extractFields   []string
	bestEffort      bool
	fallbackName    string
	outputFormat    string
)

var extractCmd = &cobra.Command{
	Use:   "extract FILE",
	Short: "Run a template over a log file and emit one record per line",
	Long: `Run an extraction template over every line of a log file.

By default extraction is strict: lines the template does not fully match are
dropped, and a run in which nothing matched is reported as a failure. With
--best-effort every line produces a record, with unmatched lines captured in
the catch-all (last) field.

Examples:
  # Named-placeholder template, field names derived from the template
  logsift extract app.log -t "[{Timestamp}] {Level}: {Message}"

  # Regular expression with explicit field names
  logsift extract app.log -t '^(\S+) (\S+) (.*)$' --fields Host,Tag,Message

  # Keep every line, falling back on unmatched ones
  logsift extract app.log -t "{Level}: {Message}" --best-effort

  # Human-readable output instead of the host JSON envelope
  logsift extract app.log -t "{Level}: {Message}" --format pretty`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&extractTemplate, "template", "t", "",
		"extraction template: {Name} placeholders or a regular expression")
	extractCmd.Flags().StringSliceVar(&extractFields, "fields", nil,
		"field names for bare capture groups (comma-separated)")
	extractCmd.Flags().BoolVar(&bestEffort, "best-effort", false,
		"emit a record for every line, falling back on unmatched lines")
	extractCmd.Flags().StringVar(&fallbackName, "fallback", "placeholders",
		"best-effort fallback shape: placeholders, fullline")
	extractCmd.Flags().StringVarP(&outputFormat, "format", "f", "json",
		"output format: json, jsonl, pretty")
	_ = extractCmd.MarkFlagRequired("template")
	rootCmd.AddCommand(extractCmd)
}

// parseFallbackShape maps the --fallback flag value to a fallback shape.
func parseFallbackShape(name string) (record.FallbackShape, error) {
	switch name {
	case "placeholders":
		return record.FallbackPlaceholders, nil
	case "fullline":
		return record.FallbackFullLine, nil
	default:
		return 0, fmt.Errorf("unknown fallback shape: %s (want placeholders or fullline)", name)
	}
}

func runExtract(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	path := args[0]

	shape, err := parseFallbackShape(fallbackName)
	if err != nil {
		return err
	}
	if !ValidFormats[outputFormat] {
		return fmt.Errorf("unknown format: %s", outputFormat)
	}

	discipline := logsift.Strict
	if bestEffort {
		discipline = logsift.BestEffort
	}

	logger.Debug("starting extraction",
		"file", path,
		"template", extractTemplate,
		"best_effort", bestEffort,
		"fallback", fallbackName,
	)

	run, err := logsift.ExtractFile(path, extractTemplate, extractFields,
		logsift.WithDiscipline(discipline),
		logsift.WithFallbackShape(shape),
		logsift.WithLogger(logger),
	)

	out := cmd.OutOrStdout()
	if outputFormat == "json" {
		// Host envelope: failures are part of the output contract, not a
		// process error.
		if err != nil {
			return writeFailure(out, err, path)
		}
		return writeRecords(out, run.Records)
	}

	if err != nil {
		return err
	}
	logger.Debug("extraction finished",
		"records", len(run.Records),
		"matched", run.MatchedLines,
		"total", run.TotalLines,
	)
	for _, rec := range run.Records {
		if err := OutputRecord(outputFormat, rec, out); err != nil {
			return err
		}
	}
	return nil
}

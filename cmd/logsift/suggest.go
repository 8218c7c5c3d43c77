package main

import (
	"github.com/spf13/cobra"

	"github.com/logsift/logsift-go/pkg/logsift"
	"github.com/logsift/logsift-go/pkg/logsift/template"
)

var catalogPath string

var suggestCmd = &cobra.Command{
	Use:   "suggest FILE",
	Short: "Score the template catalog against a file and print the best match",
	Long: `Score every catalog template against the first lines of a log file and
print the best-matching one as a JSON envelope.

Each candidate is scored by how many of the sampled lines it fully matches;
ties go to the template extracting more fields, then to catalog order.
Suggestion always succeeds: an unreadable file or unusable catalog degrades
to the first usable template rather than failing.

Examples:
  # Use the built-in catalog of common log shapes
  logsift suggest app.log

  # Use a custom YAML catalog
  logsift suggest app.log --catalog templates.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runSuggest,
}

func init() {
	suggestCmd.Flags().StringVarP(&catalogPath, "catalog", "c", "",
		"YAML template catalog (built-in catalog if omitted)")
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	catalog := template.Default()
	if catalogPath != "" {
		// A broken catalog degrades to the minimal template; the reason is
		// logged to stderr, not surfaced to the host.
		catalog = template.LoadOrMinimal(catalogPath, logger)
	}

	entry := logsift.SuggestFile(args[0], catalog, logsift.WithLogger(logger))
	logger.Debug("suggested template",
		"pattern", entry.Pattern,
		"description", entry.Description,
	)

	return writeSuccess(cmd.OutOrStdout(), entry)
}

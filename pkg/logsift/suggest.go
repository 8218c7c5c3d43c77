package logsift

import (
	"strings"

	"github.com/logsift/logsift-go/internal/sample"
	"github.com/logsift/logsift-go/pkg/logsift/template"
)

// SampleLines is the number of leading non-empty lines scored when
// suggesting a template for a file. Sampling stops once this many lines are
// collected, so suggestion cost does not grow with file size.
const SampleLines = 5

// SuggestFile reads the first SampleLines non-empty lines of the file at
// path and returns the catalog entry that scores best against them.
//
// Suggestion never fails: an unreadable file, an empty file, or a catalog of
// entirely uncompilable entries all degrade to the first catalog entry, and
// an empty catalog degrades to template.Minimal(). Use WithLogger to see why
// a degraded choice was made.
func SuggestFile(path string, catalog template.Catalog, opts ...Option) template.Entry {
	cfg := applyOptions(opts)
	if len(catalog) == 0 {
		catalog = template.Minimal()
	}

	lines, err := sample.FromFile(path, SampleLines)
	if err != nil {
		if cfg.logger != nil {
			cfg.logger.Warn("sampling failed, defaulting to first catalog entry", "error", err)
		}
		return catalog[0]
	}

	return Suggest(lines, catalog)
}

// Suggest scores every catalog entry against the sample lines and returns
// the best one.
//
// An entry's score is the number of sample lines it fully matches, with
// every entry scored against the identical sample. Ties resolve toward the
// entry with more declared fields (prefer the more specific extraction), and
// remaining ties toward the earlier catalog entry, so the result is
// deterministic for a fixed catalog and sample. Entries that fail to compile
// are skipped; if none compile, the first entry is returned unscored.
func Suggest(sampleLines []string, catalog template.Catalog) template.Entry {
	if len(catalog) == 0 {
		catalog = template.Minimal()
	}
	if len(sampleLines) == 0 {
		return catalog[0]
	}

	var (
		best       template.Entry
		bestScore  int
		bestFields int
		found      bool
	)
	for _, entry := range catalog {
		tmpl, err := entry.Compile()
		if err != nil {
			continue
		}

		score := 0
		for _, line := range sampleLines {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if m := tmpl.Match(line); m.Kind == template.MatchFull {
				score++
			}
		}

		if !found || score > bestScore || (score == bestScore && tmpl.FieldCount() > bestFields) {
			found = true
			best = entry
			bestScore = score
			bestFields = tmpl.FieldCount()
			if len(best.FieldNames) == 0 {
				// Surface the derived names so the descriptor is complete
				// even for dynamic entries.
				best.FieldNames = tmpl.FieldNames()
			}
		}
	}
	if !found {
		return catalog[0]
	}
	return best
}

package logsift

import (
	"fmt"
	"io"

	"github.com/logsift/logsift-go/internal/extractor"
	"github.com/logsift/logsift-go/internal/safefile"
	"github.com/logsift/logsift-go/pkg/logsift/record"
	"github.com/logsift/logsift-go/pkg/logsift/template"
)

// Run is the aggregate outcome of one extraction pass. Records preserve
// input order. A Run is only returned on success: a failed run carries no
// partial records.
type Run struct {
	// Records holds one record per emitted line.
	Records []record.Record

	// TotalLines is the number of non-empty lines considered.
	TotalLines int

	// MatchedLines is the number of lines the template fully matched.
	MatchedLines int
}

// NoMatchError reports a strict run in which at least one line was
// considered but none matched. Empty strict output is always surfaced as an
// actionable failure rather than a silent empty success.
type NoMatchError struct {
	// Matched and Total are the match counts for the failed run.
	Matched int
	Total   int
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("template matched %d of %d lines; verify the template", e.Matched, e.Total)
}

// ExtractFile compiles pattern and runs it over every line of the file at
// path.
//
// fieldNames fixes the output schema for callers that expect one; pass nil
// to derive field names from the pattern itself (see template.New). Errors:
// an unopenable file (check with errors.Is against fs.ErrNotExist), an
// uncompilable pattern (*template.TemplateError), or a strict run with no
// matches (*NoMatchError). Both file and template problems are detected once
// per run, before any line is processed.
func ExtractFile(path, pattern string, fieldNames []string, opts ...Option) (*Run, error) {
	cfg := applyOptions(opts)

	tmpl, err := template.New(pattern, fieldNames)
	if err != nil {
		return nil, err
	}

	f, err := safefile.OpenRegular(path)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	return run(f, tmpl, cfg)
}

// ExtractReader is ExtractFile over an arbitrary reader.
func ExtractReader(r io.Reader, pattern string, fieldNames []string, opts ...Option) (*Run, error) {
	cfg := applyOptions(opts)

	tmpl, err := template.New(pattern, fieldNames)
	if err != nil {
		return nil, err
	}

	return run(r, tmpl, cfg)
}

func run(r io.Reader, tmpl *template.Template, cfg *config) (*Run, error) {
	eng := extractor.New(extractor.Config{
		Template:   tmpl,
		BestEffort: cfg.discipline == BestEffort,
		Fallback:   cfg.fallback,
	})
	if err := eng.Consume(r); err != nil {
		return nil, fmt.Errorf("read log file: %w", err)
	}

	records, total, matched := eng.Result()
	if cfg.discipline == Strict && total > 0 && len(records) == 0 {
		return nil, &NoMatchError{Matched: matched, Total: total}
	}

	return &Run{Records: records, TotalLines: total, MatchedLines: matched}, nil
}

// Package logsift extracts structured fields from line-oriented log files
// using extraction templates.
//
// This package allows you to:
//   - Compile named-placeholder templates ("{Timestamp} {Level} {Message}")
//     or regular expressions into field extractors
//   - Run a template over a whole file under strict or best-effort rules
//   - Score a catalog of candidate templates against a file and suggest the
//     best one
//
// # Basic Usage
//
// To extract fields from a file:
//
//	run, err := logsift.ExtractFile("app.log", "[{Timestamp}] {Level}: {Message}", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, rec := range run.Records {
//	    fmt.Println(rec.Fields["Level"], rec.Fields["Message"])
//	}
//
// Under the default Strict discipline, lines the template does not fully
// match are dropped, and a run in which nothing matched returns a
// *NoMatchError. Under BestEffort every line produces a record, with
// unmatched lines captured losslessly in the catch-all field:
//
//	run, err := logsift.ExtractFile("app.log", "{Level}: {Message}", nil,
//	    logsift.WithDiscipline(logsift.BestEffort),
//	)
//
// # Template Suggestion
//
// When the right template is unknown, score a catalog against the first
// lines of the file:
//
//	entry := logsift.SuggestFile("app.log", template.Default())
//	run, err := logsift.ExtractFile("app.log", entry.Pattern, entry.FieldNames)
//
// Catalogs can be loaded from YAML files with the [template] package; a
// missing or malformed catalog degrades to a built-in minimal template
// rather than failing.
//
// # Field Naming
//
// Passing a nil field-name list derives names from the pattern itself:
// placeholder names for templates, (?P<name>...) group names for regular
// expressions, and synthetic unnamed_N names for bare capture groups.
// Passing an explicit list fixes the output schema; its length must match
// the pattern's capture arity. Each record carries the field order actually
// used in Record.FieldOrder.
//
// All operations are stateless batch transformations: nothing persists
// between calls, and compiled templates and catalogs are immutable and safe
// to share across goroutines.
package logsift

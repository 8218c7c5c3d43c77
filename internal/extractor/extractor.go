// Package extractor runs a compiled template over log lines, producing one
// record per matched line (strict) or per considered line (best-effort).
package extractor

import (
	"bufio"
	"io"
	"strings"

	"github.com/logsift/logsift-go/pkg/logsift/record"
	"github.com/logsift/logsift-go/pkg/logsift/template"
)

// maxLineBytes bounds a single scanned line (1MB).
const maxLineBytes = 1024 * 1024

// Config configures one extraction pass. Template must be non-nil; its
// declared field names define the record field order.
type Config struct {
	Template *template.Template

	// BestEffort emits a fallback record for every unmatched line instead of
	// dropping it.
	BestEffort bool

	// Fallback selects the shape of best-effort fallback records.
	Fallback record.FallbackShape
}

// Engine accumulates records over the lines of one input. It is not safe
// for concurrent use; create one Engine per extraction pass.
type Engine struct {
	cfg      Config
	order    []string
	catchAll string

	records []record.Record
	total   int
	matched int
}

// New returns an Engine ready to consume lines.
func New(cfg Config) *Engine {
	order := cfg.Template.FieldNames()
	return &Engine{
		cfg:      cfg,
		order:    order,
		catchAll: order[len(order)-1],
	}
}

// Process considers one raw input line. Lines are trimmed first; blank
// lines are dropped and never produce records or count toward totals.
func (e *Engine) Process(raw string) {
	line := strings.TrimSpace(raw)
	if line == "" {
		return
	}
	e.total++

	m := e.cfg.Template.Match(line)
	if m.Kind == template.MatchFull {
		fields := make(map[string]string, len(e.order))
		for _, name := range e.order {
			v, ok := m.Fields[name]
			if !ok {
				// A full match always populates every capture, so an ordered
				// name missing from the capture map can only mean the caller
				// renamed fields out from under the template. Mark it rather
				// than dropping the key.
				v = record.MissingField
			}
			fields[name] = v
		}
		e.records = append(e.records, record.Record{Fields: fields, FieldOrder: e.order})
		e.matched++
		return
	}

	// Partial matches are treated like non-matches: either the line is
	// dropped (strict) or it falls back whole (best-effort). Half-populated
	// records would be indistinguishable from full ones downstream.
	if !e.cfg.BestEffort {
		return
	}
	e.records = append(e.records, e.fallback(line))
}

// fallback builds the record for a line the template did not fully match.
func (e *Engine) fallback(line string) record.Record {
	if e.cfg.Fallback == record.FallbackFullLine {
		return record.Record{
			Fields:     map[string]string{record.FullLineField: line},
			FieldOrder: []string{record.FullLineField},
		}
	}

	fields := make(map[string]string, len(e.order))
	for _, name := range e.order[:len(e.order)-1] {
		fields[name] = record.Missing
	}
	fields[e.catchAll] = record.UnparsedPrefix + line
	return record.Record{Fields: fields, FieldOrder: e.order}
}

// Consume processes every line read from r.
func (e *Engine) Consume(r io.Reader) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for sc.Scan() {
		e.Process(sc.Text())
	}
	return sc.Err()
}

// Result returns the accumulated records together with the number of
// non-empty lines considered and the number that fully matched.
func (e *Engine) Result() (records []record.Record, total, matched int) {
	return e.records, e.total, e.matched
}

// Package template compiles log extraction templates and matches them
// against individual log lines.
//
// Two pattern languages are supported:
//
//   - Named-placeholder templates such as "[{Timestamp}] {Level}: {Message}".
//     Field names are derived from the placeholders themselves, and literal
//     whitespace matches any run of whitespace so templates stay tolerant of
//     column alignment.
//   - Raw regular expressions. Field names come from (?P<name>...) groups, or
//     from a caller-supplied list when the expression uses bare groups.
//
// A compiled Template is immutable and safe for concurrent use.
package template

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// placeholderToken matches one named placeholder, e.g. "{Level}".
// Placeholder names are Go-identifier-like: letters, digits, underscores,
// not starting with a digit.
var placeholderToken = regexp.MustCompile(`\{[A-Za-z_][A-Za-z0-9_]*\}`)

// Template is a compiled extraction rule: an ordered list of field names
// plus a matcher that maps one input line to named field values.
type Template struct {
	// Pattern is the source text the template was compiled from.
	Pattern string

	// Description is a human-readable label carried from the catalog entry.
	// It has no effect on matching.
	Description string

	fieldNames []string
	re         *regexp.Regexp
}

// MatchKind classifies the outcome of matching a Template against a line.
type MatchKind int

const (
	// MatchNone means the line did not match at all.
	MatchNone MatchKind = iota

	// MatchPartial means the line matched structurally but populated fewer
	// capture groups than the template declares (e.g. optional groups).
	MatchPartial

	// MatchFull means every declared field was populated.
	MatchFull
)

// Match is the result of matching one line. Fields holds trimmed values for
// the populated fields only; Populated is their count.
type Match struct {
	Kind      MatchKind
	Fields    map[string]string
	Populated int
}

// New compiles a pattern in either supported language.
//
// Patterns containing placeholder tokens like {Name} are treated as
// named-placeholder templates; anything else is treated as a regular
// expression. When fieldNames is non-empty it overrides the derived names
// (fixing the output schema for callers that expect one) and its length must
// equal the pattern's capture arity.
func New(pattern string, fieldNames []string) (*Template, error) {
	if placeholderToken.MatchString(pattern) {
		t, err := Compile(pattern)
		if err != nil {
			return nil, err
		}
		if len(fieldNames) == 0 {
			return t, nil
		}
		if len(fieldNames) != len(t.fieldNames) {
			return nil, &TemplateError{
				Pattern: pattern,
				Message: fmt.Sprintf("field count mismatch: %d names for %d placeholders", len(fieldNames), len(t.fieldNames)),
			}
		}
		if err := checkFieldNames(pattern, fieldNames); err != nil {
			return nil, err
		}
		t.fieldNames = append([]string(nil), fieldNames...)
		return t, nil
	}
	return CompileRegex(pattern, fieldNames)
}

// Compile compiles a named-placeholder template.
//
// Field names are derived from the placeholders in left-to-right order of
// first appearance, deduplicated; a repeated placeholder matches again but
// does not add a second field. Literal whitespace compiles to \s+ so the
// template tolerates variable spacing. The match is anchored at the start of
// the line; trailing content after the template is permitted. Interior
// placeholders match lazily, while a placeholder that ends the pattern is
// greedy so the final field absorbs the rest of the line.
func Compile(pattern string) (*Template, error) {
	locs := placeholderToken.FindAllStringIndex(pattern, -1)
	if len(locs) == 0 {
		return nil, &TemplateError{Pattern: pattern, Message: "no {Name} placeholders found"}
	}

	var (
		expr  strings.Builder
		names []string
		seen  = make(map[string]bool)
	)
	expr.WriteString("^")

	prev := 0
	for _, loc := range locs {
		if err := writeLiteral(&expr, pattern, pattern[prev:loc[0]]); err != nil {
			return nil, err
		}
		name := pattern[loc[0]+1 : loc[1]-1]
		body := ".+?"
		if loc[1] == len(pattern) {
			// Final placeholder: greedy, so the last field captures the
			// remainder of the line instead of a minimal slice.
			body = ".+"
		}
		if seen[name] {
			expr.WriteString("(?:" + body + ")")
		} else {
			seen[name] = true
			names = append(names, name)
			expr.WriteString("(?P<" + name + ">" + body + ")")
		}
		prev = loc[1]
	}
	if err := writeLiteral(&expr, pattern, pattern[prev:]); err != nil {
		return nil, err
	}

	re, err := regexp.Compile(expr.String())
	if err != nil {
		// Unreachable for well-formed input since every literal is quoted,
		// but the syntax error is surfaced rather than panicking.
		return nil, &TemplateError{Pattern: pattern, Message: "template did not compile", Cause: err}
	}

	return &Template{Pattern: pattern, fieldNames: names, re: re}, nil
}

// writeLiteral appends a literal template segment to the expression,
// quoting regex metacharacters and widening whitespace runs to \s+.
// Stray braces outside a well-formed placeholder are rejected as malformed
// template syntax.
func writeLiteral(expr *strings.Builder, pattern, lit string) error {
	if strings.ContainsAny(lit, "{}") {
		return &TemplateError{Pattern: pattern, Message: "unbalanced brace in template"}
	}
	for lit != "" {
		cut := strings.IndexFunc(lit, unicode.IsSpace)
		switch cut {
		case 0:
			expr.WriteString(`\s+`)
			lit = strings.TrimLeftFunc(lit, unicode.IsSpace)
		case -1:
			expr.WriteString(regexp.QuoteMeta(lit))
			lit = ""
		default:
			expr.WriteString(regexp.QuoteMeta(lit[:cut]))
			lit = lit[cut:]
		}
	}
	return nil
}

// CompileRegex compiles a raw regular expression.
//
// When fieldNames is non-empty, its length must equal the expression's
// capture-group count and the names are assigned positionally. When empty,
// names are derived from the expression itself: (?P<name>...) groups keep
// their names and bare groups get synthetic names unnamed_1, unnamed_2, ...
// in order of appearance. An expression with no capture groups extracts
// nothing and is rejected.
func CompileRegex(pattern string, fieldNames []string) (*Template, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &TemplateError{Pattern: pattern, Message: "invalid regular expression", Cause: err}
	}

	n := re.NumSubexp()
	if n == 0 {
		return nil, &TemplateError{Pattern: pattern, Message: "pattern has no capture groups"}
	}

	var names []string
	if len(fieldNames) > 0 {
		if len(fieldNames) != n {
			return nil, &TemplateError{
				Pattern: pattern,
				Message: fmt.Sprintf("field count mismatch: %d names for %d capture groups", len(fieldNames), n),
			}
		}
		if err := checkFieldNames(pattern, fieldNames); err != nil {
			return nil, err
		}
		names = append([]string(nil), fieldNames...)
	} else {
		sub := re.SubexpNames()
		unnamed := 0
		for i := 1; i < len(sub); i++ {
			if sub[i] == "" {
				unnamed++
				names = append(names, fmt.Sprintf("unnamed_%d", unnamed))
			} else {
				names = append(names, sub[i])
			}
		}
	}

	return &Template{Pattern: pattern, fieldNames: names, re: re}, nil
}

// checkFieldNames rejects empty or duplicated caller-supplied field names.
func checkFieldNames(pattern string, names []string) error {
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if name == "" {
			return &TemplateError{Pattern: pattern, Message: "field names must not be empty"}
		}
		if seen[name] {
			return &TemplateError{Pattern: pattern, Message: fmt.Sprintf("duplicate field name %q", name)}
		}
		seen[name] = true
	}
	return nil
}

// FieldNames returns the declared field names in capture order.
// The returned slice is a copy.
func (t *Template) FieldNames() []string {
	return append([]string(nil), t.fieldNames...)
}

// FieldCount returns the number of declared fields.
func (t *Template) FieldCount() int {
	return len(t.fieldNames)
}

// CatchAll returns the last declared field name, which absorbs the whole
// line in best-effort fallback records.
func (t *Template) CatchAll() string {
	return t.fieldNames[len(t.fieldNames)-1]
}

// Match matches one line against the template. Values are trimmed of
// surrounding whitespace. The match is full only when every declared field
// was populated; a structural match with fewer populated groups is partial.
func (t *Template) Match(line string) Match {
	idx := t.re.FindStringSubmatchIndex(line)
	if idx == nil {
		return Match{Kind: MatchNone}
	}

	fields := make(map[string]string, len(t.fieldNames))
	populated := 0
	for i, name := range t.fieldNames {
		lo, hi := idx[2*(i+1)], idx[2*(i+1)+1]
		if lo < 0 {
			continue // group did not participate in the match
		}
		fields[name] = strings.TrimSpace(line[lo:hi])
		populated++
	}

	kind := MatchPartial
	if populated == len(t.fieldNames) {
		kind = MatchFull
	}
	return Match{Kind: kind, Fields: fields, Populated: populated}
}

// Package record defines the per-line output type produced by extraction
// runs, along with the marker strings used for absent and unparsed values.
package record

// Marker values used in Record fields. Hosts match on these strings, so they
// are part of the output contract and must not change between releases.
const (
	// Missing fills structured fields on a best-effort fallback record.
	Missing = "---"

	// MissingField fills a declared field that a matching template did not
	// extract a value for.
	MissingField = "--- (Missing Field)"

	// UnparsedPrefix prefixes the catch-all value of a fallback record so
	// hosts can distinguish it from a genuinely extracted value.
	UnparsedPrefix = "[UNPARSED] "

	// FullLineField is the synthetic field name used by the collapsed
	// fallback shape.
	FullLineField = "FullLine"
)

// FallbackShape selects how a best-effort run represents lines the template
// did not match. A run uses a single shape throughout; shapes are never mixed
// line to line.
type FallbackShape int

const (
	// FallbackPlaceholders keeps the declared field order: every field except
	// the catch-all holds Missing, and the catch-all holds the original line
	// prefixed with UnparsedPrefix.
	FallbackPlaceholders FallbackShape = iota

	// FallbackFullLine collapses the record to the single FullLineField
	// holding the verbatim line.
	FallbackFullLine
)

// Record is one extracted log line. FieldOrder is the field sequence the
// caller should present; it normally equals the template's declared field
// names, but fallback records under FallbackFullLine collapse it to
// [FullLineField]. Every name in FieldOrder has an entry in Fields.
//
// The JSON field names are fixed: host applications decode this shape
// verbatim.
type Record struct {
	Fields     map[string]string `json:"Fields"`
	FieldOrder []string          `json:"FieldOrder"`
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/logsift/logsift-go/pkg/logsift/record"
)

// ValidFormats lists all valid output formats. "json" is the single-envelope
// host format; "jsonl" and "pretty" emit one record per line.
var ValidFormats = map[string]bool{
	"json":   true,
	"jsonl":  true,
	"pretty": true,
}

// OutputRecord writes a record in the specified per-line format.
func OutputRecord(format string, rec record.Record, out io.Writer) error {
	switch format {
	case "jsonl":
		return OutputJSONL(rec, out)
	case "pretty":
		return OutputPretty(rec, out)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// OutputJSONL writes a record as one JSON object per line.
func OutputJSONL(rec record.Record, out io.Writer) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

// OutputPretty writes a record as key=value pairs in field order.
func OutputPretty(rec record.Record, out io.Writer) error {
	parts := make([]string, 0, len(rec.FieldOrder))
	for _, name := range rec.FieldOrder {
		parts = append(parts, fmt.Sprintf("%s=%s", quoteIfNeeded(name), quoteIfNeeded(rec.Fields[name])))
	}
	_, err := fmt.Fprintln(out, strings.Join(parts, " "))
	return err
}

// quoteIfNeeded quotes a value containing spaces, equals signs, quotes, or
// control characters; plain values pass through unchanged.
func quoteIfNeeded(v string) string {
	if v == "" {
		return `""`
	}
	for _, c := range v {
		if c == ' ' || c == '=' || c == '"' || c == '\\' || c < 0x20 || c == 0x7F {
			return strconv.Quote(v)
		}
	}
	return v
}

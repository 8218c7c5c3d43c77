package logsift_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logsift/logsift-go/pkg/logsift"
	"github.com/logsift/logsift-go/pkg/logsift/template"
)

func sampleLines(line string, n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = line
	}
	return lines
}

func TestSuggest_SpecificityTieBreak(t *testing.T) {
	// Both templates fully match every sample line; the one declaring more
	// fields wins the tie.
	catalog := template.Catalog{
		{Pattern: "{Token} {Message}", FieldNames: []string{"Token", "Message"}},
		{Pattern: "{Timestamp} {Level} {Message}", FieldNames: []string{"Timestamp", "Level", "Message"}},
	}

	entry := logsift.Suggest(sampleLines("2024-01-01 INFO started", 5), catalog)
	assert.Equal(t, "{Timestamp} {Level} {Message}", entry.Pattern)
}

func TestSuggest_HigherScoreWins(t *testing.T) {
	catalog := template.Catalog{
		{Pattern: "[{Timestamp}] {Level}: {Message}", FieldNames: []string{"Timestamp", "Level", "Message"}},
		{Pattern: "{Token1} {Message}", FieldNames: []string{"Token1", "Message"}},
	}

	// No brackets, so only the two-field template matches despite declaring
	// fewer fields.
	entry := logsift.Suggest(sampleLines("plain text line", 5), catalog)
	assert.Equal(t, "{Token1} {Message}", entry.Pattern)
}

func TestSuggest_FirstWinsOnFullTie(t *testing.T) {
	catalog := template.Catalog{
		{Pattern: "{A} {B}", Description: "first", FieldNames: []string{"A", "B"}},
		{Pattern: "{X} {Y}", Description: "second", FieldNames: []string{"X", "Y"}},
	}

	entry := logsift.Suggest(sampleLines("one two", 5), catalog)
	assert.Equal(t, "first", entry.Description)
}

func TestSuggest_SkipsUncompilableEntries(t *testing.T) {
	catalog := template.Catalog{
		{Pattern: "{A} {B", Description: "broken"},
		{Pattern: "{A} {B}", Description: "working", FieldNames: []string{"A", "B"}},
	}

	entry := logsift.Suggest(sampleLines("one two", 5), catalog)
	assert.Equal(t, "working", entry.Description)
}

func TestSuggest_AllUncompilableReturnsFirst(t *testing.T) {
	catalog := template.Catalog{
		{Pattern: "{A} {B", Description: "broken one"},
		{Pattern: "{C} {D", Description: "broken two"},
	}

	entry := logsift.Suggest(sampleLines("one two", 5), catalog)
	assert.Equal(t, "broken one", entry.Description)
}

func TestSuggest_EmptyCatalogReturnsMinimal(t *testing.T) {
	entry := logsift.Suggest(sampleLines("one two", 5), nil)
	assert.Equal(t, template.Minimal()[0].Pattern, entry.Pattern)
}

func TestSuggest_EmptySampleReturnsFirst(t *testing.T) {
	catalog := template.Catalog{
		{Pattern: "{A} {B}", Description: "first"},
		{Pattern: "{C} {D}", Description: "second"},
	}

	entry := logsift.Suggest(nil, catalog)
	assert.Equal(t, "first", entry.Description)
}

func TestSuggest_Deterministic(t *testing.T) {
	catalog := template.Default()
	sample := []string{
		"[2025-10-23 09:00:00] INFO: started",
		"[2025-10-23 09:00:01] WARN: slow disk",
		"[2025-10-23 09:00:02] ERROR: connection refused",
	}

	first := logsift.Suggest(sample, catalog)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, logsift.Suggest(sample, catalog))
	}
}

func TestSuggest_ZeroScoreTieStillPrefersMoreFields(t *testing.T) {
	// Nothing matches; the tie at score zero resolves toward the more
	// specific template, mirroring the score/field-count total order.
	catalog := template.Catalog{
		{Pattern: "alpha: {A}", FieldNames: []string{"A"}},
		{Pattern: "beta: {A} {B}", FieldNames: []string{"A", "B"}},
	}

	entry := logsift.Suggest(sampleLines("gamma unrelated", 5), catalog)
	assert.Equal(t, "beta: {A} {B}", entry.Pattern)
}

func TestSuggest_FillsDerivedFieldNames(t *testing.T) {
	catalog := template.Catalog{{Pattern: "{Level}: {Message}", Description: "dynamic"}}

	entry := logsift.Suggest(sampleLines("INFO: fine", 5), catalog)
	assert.Equal(t, []string{"Level", "Message"}, entry.FieldNames)
}

func TestSuggestFile_SamplesLeadingLinesOnly(t *testing.T) {
	// The first five non-empty lines fit the bracketed template; the rest of
	// the file would favor the plain one. Only the leading sample counts.
	var sb strings.Builder
	for i := 0; i < logsift.SampleLines; i++ {
		sb.WriteString("[2025-10-23 09:00:00] INFO: early line\n")
	}
	for i := 0; i < 100; i++ {
		sb.WriteString("plain text tail line\n")
	}
	path := filepath.Join(t.TempDir(), "sample.log")
	require.NoError(t, os.WriteFile(path, []byte(sb.String()), 0o644))

	catalog := template.Catalog{
		{Pattern: "{Token1} {Message}", FieldNames: []string{"Token1", "Message"}},
		{Pattern: "[{Timestamp}] {Level}: {Message}", FieldNames: []string{"Timestamp", "Level", "Message"}},
	}

	entry := logsift.SuggestFile(path, catalog)
	assert.Equal(t, "[{Timestamp}] {Level}: {Message}", entry.Pattern)
}

func TestSuggestFile_MissingFileReturnsFirst(t *testing.T) {
	catalog := template.Catalog{
		{Pattern: "{A} {B}", Description: "first"},
		{Pattern: "{C} {D}", Description: "second"},
	}

	entry := logsift.SuggestFile(filepath.Join(t.TempDir(), "missing.log"), catalog)
	assert.Equal(t, "first", entry.Description)
}

func TestSuggestFile_EmptyFileReturnsFirst(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.log")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	catalog := template.Catalog{
		{Pattern: "{A} {B}", Description: "first"},
		{Pattern: "{C} {D}", Description: "second"},
	}

	entry := logsift.SuggestFile(path, catalog)
	assert.Equal(t, "first", entry.Description)
}

package logsift_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logsift/logsift-go/pkg/logsift"
	"github.com/logsift/logsift-go/pkg/logsift/record"
	"github.com/logsift/logsift-go/pkg/logsift/template"
)

// writeLog writes content to a temp file and returns its path.
func writeLog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.log")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestExtractFile_Strict(t *testing.T) {
	path := writeLog(t, `[2025-10-23 09:00:00] INFO: Application started successfully.
[2025-10-23 09:00:01] WARN: Disk usage above 80%.
[2025-10-23 09:00:02] ERROR: Connection refused.
`)

	run, err := logsift.ExtractFile(path, "[{Timestamp}] {Level}: {Message}", nil)
	require.NoError(t, err)
	assert.Equal(t, 3, run.TotalLines)
	assert.Equal(t, 3, run.MatchedLines)
	require.Len(t, run.Records, 3)

	first := run.Records[0]
	assert.Equal(t, []string{"Timestamp", "Level", "Message"}, first.FieldOrder)
	assert.Equal(t, "2025-10-23 09:00:00", first.Fields["Timestamp"])
	assert.Equal(t, "INFO", first.Fields["Level"])
	assert.Equal(t, "Application started successfully.", first.Fields["Message"])
}

func TestExtractFile_Strict_DropsUnmatchedLines(t *testing.T) {
	path := writeLog(t, "INFO: fine\ngarbage line\nWARN: also fine\n")

	run, err := logsift.ExtractFile(path, "{Level}: {Message}", nil)
	require.NoError(t, err)
	assert.Equal(t, 3, run.TotalLines)
	assert.Equal(t, 2, run.MatchedLines)
	require.Len(t, run.Records, 2)
	assert.Equal(t, "fine", run.Records[0].Fields["Message"])
	assert.Equal(t, "also fine", run.Records[1].Fields["Message"])
}

func TestExtractFile_Strict_NoMatchesFails(t *testing.T) {
	path := writeLog(t, "hello\n")

	run, err := logsift.ExtractFile(path, "{A} {B}", nil)
	require.Error(t, err)
	assert.Nil(t, run)

	var noMatch *logsift.NoMatchError
	require.True(t, errors.As(err, &noMatch))
	assert.Equal(t, 0, noMatch.Matched)
	assert.Equal(t, 1, noMatch.Total)
	assert.Contains(t, err.Error(), "0 of 1")
}

func TestExtractFile_BestEffort_FallbackPlaceholders(t *testing.T) {
	path := writeLog(t, "hello\n")

	run, err := logsift.ExtractFile(path, "{A} {B}", nil,
		logsift.WithDiscipline(logsift.BestEffort))
	require.NoError(t, err)
	require.Len(t, run.Records, 1)

	rec := run.Records[0]
	assert.Equal(t, []string{"A", "B"}, rec.FieldOrder)
	assert.Equal(t, record.Missing, rec.Fields["A"])
	assert.Equal(t, record.UnparsedPrefix+"hello", rec.Fields["B"])
}

func TestExtractFile_BestEffort_FallbackFullLine(t *testing.T) {
	path := writeLog(t, "INFO: fine\ngarbage line\n")

	run, err := logsift.ExtractFile(path, "{Level}: {Message}", nil,
		logsift.WithDiscipline(logsift.BestEffort),
		logsift.WithFallbackShape(logsift.FallbackFullLine))
	require.NoError(t, err)
	require.Len(t, run.Records, 2)

	matched := run.Records[0]
	assert.Equal(t, []string{"Level", "Message"}, matched.FieldOrder)
	assert.Equal(t, "INFO", matched.Fields["Level"])

	fallback := run.Records[1]
	assert.Equal(t, []string{record.FullLineField}, fallback.FieldOrder)
	assert.Equal(t, "garbage line", fallback.Fields[record.FullLineField])
}

func TestExtractFile_EmptyFile(t *testing.T) {
	for _, discipline := range []logsift.Discipline{logsift.Strict, logsift.BestEffort} {
		path := writeLog(t, "\n\n   \n")

		run, err := logsift.ExtractFile(path, "{A} {B}", nil,
			logsift.WithDiscipline(discipline))
		require.NoError(t, err)
		assert.Zero(t, run.TotalLines)
		assert.Empty(t, run.Records)
	}
}

func TestExtractFile_NotFound(t *testing.T) {
	_, err := logsift.ExtractFile(filepath.Join(t.TempDir(), "missing.log"), "{A} {B}", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestExtractFile_InvalidTemplate(t *testing.T) {
	path := writeLog(t, "some content\n")

	_, err := logsift.ExtractFile(path, "{A} {B", nil)
	require.Error(t, err)

	var tmplErr *template.TemplateError
	require.True(t, errors.As(err, &tmplErr))
}

func TestExtractFile_Idempotent(t *testing.T) {
	path := writeLog(t, "INFO: one\nnoise\nWARN: two\n")

	first, err := logsift.ExtractFile(path, "{Level}: {Message}", nil,
		logsift.WithDiscipline(logsift.BestEffort))
	require.NoError(t, err)

	second, err := logsift.ExtractFile(path, "{Level}: {Message}", nil,
		logsift.WithDiscipline(logsift.BestEffort))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExtractReader_BestEffortTotality(t *testing.T) {
	input := "one two\nthree\n\nfour five six\n   \nseven\n"
	nonEmpty := 4

	run, err := logsift.ExtractReader(strings.NewReader(input), "{A} {B}", nil,
		logsift.WithDiscipline(logsift.BestEffort))
	require.NoError(t, err)
	assert.Equal(t, nonEmpty, run.TotalLines)
	assert.Len(t, run.Records, nonEmpty)
}

func TestExtractReader_StrictSubsetOfBestEffort(t *testing.T) {
	input := "INFO: a\nnoise\nWARN: b\nmore noise\n"

	strict, err := logsift.ExtractReader(strings.NewReader(input), "{Level}: {Message}", nil)
	require.NoError(t, err)

	best, err := logsift.ExtractReader(strings.NewReader(input), "{Level}: {Message}", nil,
		logsift.WithDiscipline(logsift.BestEffort))
	require.NoError(t, err)

	// Every strict record appears, in order, among the best-effort records.
	i := 0
	for _, rec := range best.Records {
		if i < len(strict.Records) && assert.ObjectsAreEqual(strict.Records[i], rec) {
			i++
		}
	}
	assert.Equal(t, len(strict.Records), i)
}

func TestExtractReader_StaticFieldNames(t *testing.T) {
	run, err := logsift.ExtractReader(strings.NewReader("web01 nginx ok\n"),
		`^(\S+) (\S+) (.*)$`, []string{"Host", "Tag", "Message"})
	require.NoError(t, err)
	require.Len(t, run.Records, 1)
	assert.Equal(t, []string{"Host", "Tag", "Message"}, run.Records[0].FieldOrder)
	assert.Equal(t, "web01", run.Records[0].Fields["Host"])
}

func TestExtractReader_DynamicUnnamedFields(t *testing.T) {
	run, err := logsift.ExtractReader(strings.NewReader("alice 42 ok\n"),
		`^(?P<name>\S+) (\d+) (?P<status>\S+)$`, nil)
	require.NoError(t, err)
	require.Len(t, run.Records, 1)

	rec := run.Records[0]
	assert.Equal(t, []string{"name", "unnamed_1", "status"}, rec.FieldOrder)
	assert.Equal(t, "42", rec.Fields["unnamed_1"])
}

func TestExtractReader_LinesTrimmed(t *testing.T) {
	run, err := logsift.ExtractReader(strings.NewReader("   INFO: padded   \n"),
		"{Level}: {Message}", nil)
	require.NoError(t, err)
	require.Len(t, run.Records, 1)
	assert.Equal(t, "INFO", run.Records[0].Fields["Level"])
	assert.Equal(t, "padded", run.Records[0].Fields["Message"])
}

func TestExtractFile_RejectsNonRegularFile(t *testing.T) {
	_, err := logsift.ExtractFile(t.TempDir(), "{A} {B}", nil)
	require.Error(t, err)
}

// Package sample reads the leading non-empty lines of a log file for
// template scoring. Reading stops as soon as enough lines are collected, so
// sampling cost is independent of file size.
package sample

import (
	"bufio"
	"io"
	"strings"

	"github.com/logsift/logsift-go/internal/safefile"
)

// maxLineBytes bounds a single scanned line (1MB). Lines beyond this are a
// scanner error, not a crash.
const maxLineBytes = 1024 * 1024

// FromFile returns up to n leading non-empty, whitespace-trimmed lines of
// the file at path, in file order.
func FromFile(path string, n int) ([]string, error) {
	f, err := safefile.OpenRegular(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return FromReader(f, n)
}

// FromReader returns up to n leading non-empty, whitespace-trimmed lines
// read from r. Blank lines are skipped and do not count toward n.
func FromReader(r io.Reader, n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var lines []string
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) >= n {
			break
		}
	}
	if err := sc.Err(); err != nil {
		return lines, err
	}
	return lines, nil
}

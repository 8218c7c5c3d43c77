// Package safefile opens input files with basic hardening against special
// files.
package safefile

import (
	"errors"
	"os"
)

// ErrNotRegularFile is returned when a path does not refer to a regular
// file: symlinks, FIFOs, devices, sockets, and directories are all rejected.
var ErrNotRegularFile = errors.New("not a regular file")

// OpenRegular opens path for reading after verifying it is a regular file.
//
// Log files are read to exhaustion, so opening a FIFO or device node would
// block or spin forever. The path is checked with Lstat (which does not
// follow symlinks) and the check is repeated on the opened descriptor to
// narrow the window between stat and open; Go does not expose O_NOFOLLOW
// portably, so the window cannot be closed entirely.
//
// The caller must close the returned file.
func OpenRegular(path string) (*os.File, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, ErrNotRegularFile
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	// Re-check on the descriptor in case the path was swapped underneath us.
	info, err = f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if !info.Mode().IsRegular() {
		f.Close()
		return nil, ErrNotRegularFile
	}

	return f, nil
}

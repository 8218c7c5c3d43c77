package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/logsift/logsift-go/pkg/logsift/record"
)

// response is the JSON envelope consumed by the host application. Exactly
// one of Data and Error is set: a failed run never carries partial data.
type response struct {
	Success bool    `json:"success"`
	Data    any     `json:"data"`
	Error   *string `json:"error"`
}

// writeSuccess writes a success envelope carrying data.
func writeSuccess(w io.Writer, data any) error {
	return json.NewEncoder(w).Encode(response{Success: true, Data: data})
}

// writeRecords writes a success envelope carrying extraction records.
// A run with zero records is encoded as an empty array, not null; null data
// means failure to the host.
func writeRecords(w io.Writer, records []record.Record) error {
	if records == nil {
		records = []record.Record{}
	}
	return writeSuccess(w, records)
}

// writeFailure writes a failure envelope with a human-readable diagnostic.
func writeFailure(w io.Writer, err error, path string) error {
	msg := diagnostic(err, path)
	return json.NewEncoder(w).Encode(response{Success: false, Error: &msg})
}

// diagnostic renders err as the host-facing message string.
func diagnostic(err error, path string) string {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Sprintf("the file was not found at path: %s", path)
	}
	return err.Error()
}

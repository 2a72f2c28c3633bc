package catalog

import (
	"fmt"
	"strings"
)

// TransportError indicates that a remote catalog service was
// unreachable or answered with a non success status.
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("request to %s failed with status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("request to %s failed: %s", e.URL, e.Err.Error())
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// MalformedRecordError indicates that a single raw catalog record
// could not be normalized. It carries the record's best effort
// identifier and the names of all fields that were missing.
type MalformedRecordError struct {
	RecordID      string
	MissingFields []string
	Err           error
}

func (e *MalformedRecordError) Error() string {
	id := e.RecordID
	if id == "" {
		id = "unknown"
	}
	if len(e.MissingFields) > 0 {
		return fmt.Sprintf("record %s is missing required fields: %s", id, strings.Join(e.MissingFields, ", "))
	}
	return fmt.Sprintf("record %s could not be normalized: %s", id, e.Err.Error())
}

func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}

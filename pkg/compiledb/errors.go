package compiledb

import (
	"errors"
	"fmt"
)

// ErrConstruction is matched (via errors.Is) by every error that prevents a
// Database from being built: a missing or unreadable file, malformed JSON,
// or a record that violates the schema.
var ErrConstruction = errors.New("cannot load compilation database")

// RecordError describes a schema violation in a single database record.
type RecordError struct {
	// Index is the zero-based position of the record in the JSON array.
	Index int

	// Field names the offending key, or is empty for whole-record problems.
	Field string

	// Reason is a short description of the violation.
	Reason string
}

// Error implements error.
func (e *RecordError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("record %d: %s", e.Index, e.Reason)
	}
	return fmt.Sprintf("record %d: %q: %s", e.Index, e.Field, e.Reason)
}

// constructionError wraps err so that it matches ErrConstruction.
func constructionError(path string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrConstruction, path, err)
}

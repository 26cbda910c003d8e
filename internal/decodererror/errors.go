// Package decodererror defines the failure kinds surfaced by the purpose
// decoder and the adjacent mapping logic. Callers can match on the concrete
// types with errors.As to decide between skipping a record and aborting.
package decodererror

import "fmt"

// ConflictingFieldError reports that a purpose label resolved to a value
// that disagrees with an already populated field on the same record.
// First write wins; a conflicting re-write is an error.
type ConflictingFieldError struct {
	BookingID string
	Field     string
	Existing  string
	Incoming  string
}

func (e *ConflictingFieldError) Error() string {
	return fmt.Sprintf("conflicting value for %s: already '%s', purpose text says '%s' (booking %q)",
		e.Field, e.Existing, e.Incoming, e.BookingID)
}

// UnsupportedLabelError reports a purpose label that matched the tokenizer
// vocabulary but has no dispatch rule. Fatal by policy: silently dropping
// financial reference data is worse than failing.
type UnsupportedLabelError struct {
	Label    string
	RawValue string
}

func (e *UnsupportedLabelError) Error() string {
	return fmt.Sprintf("no mapping for purpose label '%s' (value '%s')", e.Label, e.RawValue)
}

// UnsupportedValueError reports an input enumeration value (account type or
// category) with no known mapping to the target schema.
type UnsupportedValueError struct {
	Kind  string
	Value string
}

func (e *UnsupportedValueError) Error() string {
	return fmt.Sprintf("no mapping for %s '%s'", e.Kind, e.Value)
}

// ImportError reports a failure while reading the legacy export.
type ImportError struct {
	FilePath string
	Field    string
	Err      error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("import of %s failed at %s: %v", e.FilePath, e.Field, e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

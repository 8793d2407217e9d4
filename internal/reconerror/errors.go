// Package reconerror defines the error types raised by the import and
// reconciliation operations. Row-level problems are collected as values, not
// raised; only file-level structural problems abort an operation.
package reconerror

import (
	"fmt"
	"strings"
)

// EmptyInputError indicates a CSV body with no usable lines. The import
// aborts before touching the store.
type EmptyInputError struct {
	Kind string
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("%s import: CSV input is empty", e.Kind)
}

// HeaderMappingError indicates that required canonical fields could not be
// mapped onto the CSV header row. The import aborts with the diagnostic.
type HeaderMappingError struct {
	Kind    string
	Missing []string
	Headers []string
}

func (e *HeaderMappingError) Error() string {
	return fmt.Sprintf("%s import: required headers could not be mapped: %s (available: %s)",
		e.Kind, strings.Join(e.Missing, ", "), strings.Join(e.Headers, ", "))
}

// RowError records a single data row that failed validation. It is collected
// into the import report; the import itself continues.
type RowError struct {
	Line   int
	Reason string
	Raw    string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Line, e.Reason)
}

// StoreError wraps a failure of the underlying record store. It propagates to
// the caller unchanged; retry policy belongs to the store or the caller.
type StoreError struct {
	Op    string
	Table string
	Err   error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s on %s: %v", e.Op, e.Table, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

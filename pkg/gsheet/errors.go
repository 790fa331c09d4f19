package gsheet

import (
	"errors"
	"fmt"

	"github.com/ukaji3/gsheet-go/pkg/gsheet/backend"
)

// ErrNoSpreadsheet indicates a spreadsheet-scoped call before SetSpreadsheet.
var ErrNoSpreadsheet = errors.New("no active spreadsheet")

// ErrNoWorksheet indicates a worksheet-scoped call before a worksheet is active.
var ErrNoWorksheet = errors.New("no active worksheet")

// ErrSelectorRequired indicates an activation call with an empty selector.
var ErrSelectorRequired = errors.New("a selector must be specified")

// ErrNotFound indicates the selector matched no spreadsheet or worksheet.
var ErrNotFound = errors.New("not found")

// ErrInvalidOffset indicates a row or column offset below 1.
var ErrInvalidOffset = errors.New("offset must be >= 1")

// ErrInvalidReference indicates a cross-reference with unparsable cell addresses.
var ErrInvalidReference = errors.New("invalid cross-reference")

// ErrReferenceCycle indicates a cross-reference that leads back to itself.
var ErrReferenceCycle = errors.New("cross-reference cycle")

// NotFoundError reports what could not be found.
type NotFoundError struct {
	Kind     string // "spreadsheet" or "worksheet"
	Selector string
	Err      error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found by %s: %v", e.Kind, e.Selector, e.Err)
}

// Unwrap exposes ErrNotFound so errors.Is works on the normalized form.
func (e *NotFoundError) Unwrap() []error {
	return []error{ErrNotFound, e.Err}
}

// normalizeNotFound converts a backend miss into a *NotFoundError and passes
// every other error through.
func normalizeNotFound(kind, selector string, err error) error {
	if err == nil || !errors.Is(err, backend.ErrNotFound) {
		return err
	}
	return &NotFoundError{Kind: kind, Selector: selector, Err: err}
}

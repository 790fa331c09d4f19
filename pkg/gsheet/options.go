// Package gsheet provides session-style access to spreadsheets, worksheets,
// rows, columns and cells, header-keyed upserts and cross-reference
// resolution on top of a backend.Client.
package gsheet

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/ukaji3/gsheet-go/pkg/gsheet/backend"
)

// Dimension selects rows or columns.
type Dimension = backend.Dimension

const (
	// Rows addresses the row dimension.
	Rows = backend.Rows
	// Columns addresses the column dimension.
	Columns = backend.Columns
)

// Coord is a 1-based (row, column) pair.
type Coord = backend.Coord

// Options configures a Session.
type Options struct {
	// FolderID scopes ListSpreadsheets and CreateSpreadsheet.
	FolderID string
	// Logger receives session logs. A disabled logger is used when nil.
	Logger *zerolog.Logger
}

// DefaultOptions returns options with no folder and logging disabled.
func DefaultOptions() Options {
	return Options{}
}

func (o Options) logger() zerolog.Logger {
	if o.Logger != nil {
		return *o.Logger
	}
	return zerolog.New(io.Discard).Level(zerolog.Disabled)
}

// SpreadsheetSelector identifies a spreadsheet. The first non-empty field of
// Title, Key, URL is used.
type SpreadsheetSelector struct {
	Title string
	Key   string
	URL   string
}

func (s SpreadsheetSelector) String() string {
	switch {
	case s.Title != "":
		return fmt.Sprintf("title %q", s.Title)
	case s.Key != "":
		return fmt.Sprintf("key %q", s.Key)
	case s.URL != "":
		return fmt.Sprintf("url %q", s.URL)
	default:
		return "<none>"
	}
}

type worksheetSelectorKind int

const (
	selectNone worksheetSelectorKind = iota
	selectTitle
	selectIndex
	selectID
)

// WorksheetSelector identifies a worksheet within the active spreadsheet.
// The zero value selects nothing.
type WorksheetSelector struct {
	kind  worksheetSelectorKind
	title string
	index int
	id    int64
}

// WorksheetByTitle selects a worksheet by title.
func WorksheetByTitle(title string) WorksheetSelector {
	return WorksheetSelector{kind: selectTitle, title: title}
}

// WorksheetByIndex selects a worksheet by 0-based position.
func WorksheetByIndex(index int) WorksheetSelector {
	return WorksheetSelector{kind: selectIndex, index: index}
}

// WorksheetByID selects a worksheet by its stable id.
func WorksheetByID(id int64) WorksheetSelector {
	return WorksheetSelector{kind: selectID, id: id}
}

func (s WorksheetSelector) String() string {
	switch s.kind {
	case selectTitle:
		return fmt.Sprintf("title %q", s.title)
	case selectIndex:
		return fmt.Sprintf("index %d", s.index)
	case selectID:
		return fmt.Sprintf("id %d", s.id)
	default:
		return "<none>"
	}
}

type headerConfig struct {
	index         int
	caseSensitive bool
}

// HeaderOption configures header-keyed updates.
type HeaderOption func(*headerConfig)

// WithHeaderIndex sets the row (or column) holding the headers. Defaults to 1.
func WithHeaderIndex(index int) HeaderOption {
	return func(c *headerConfig) { c.index = index }
}

// CaseInsensitive matches record keys to headers ignoring case.
func CaseInsensitive() HeaderOption {
	return func(c *headerConfig) { c.caseSensitive = false }
}

// FindOption configures FindCells.
type FindOption func(*backend.FindOptions)

// IgnoreCase matches cells regardless of case.
func IgnoreCase() FindOption {
	return func(o *backend.FindOptions) { o.MatchCase = false }
}

// PartialMatch matches cells containing the value instead of equal to it.
func PartialMatch() FindOption {
	return func(o *backend.FindOptions) { o.MatchEntireCell = false }
}

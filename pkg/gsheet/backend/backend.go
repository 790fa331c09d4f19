// Package backend defines the spreadsheet service collaborator used by gsheet.
//
// Implementations live in the google (Sheets API) and xlsx (local files)
// subpackages.
package backend

import (
	"context"
	"errors"

	"github.com/ukaji3/gsheet-go/pkg/gsheet/models"
)

// ErrNotFound is returned when a spreadsheet or worksheet selector matches nothing.
var ErrNotFound = errors.New("not found")

// ErrOutOfBounds indicates a write outside the grid without extend.
var ErrOutOfBounds = errors.New("range exceeds grid bounds")

// ErrRemote wraps errors reported by the remote service.
var ErrRemote = errors.New("remote service error")

// Dimension selects rows or columns.
type Dimension int

const (
	// Rows addresses the row dimension.
	Rows Dimension = iota + 1
	// Columns addresses the column dimension.
	Columns
)

func (d Dimension) String() string {
	switch d {
	case Rows:
		return "ROWS"
	case Columns:
		return "COLUMNS"
	default:
		return "DIMENSION_UNSPECIFIED"
	}
}

// Coord is a 1-based (row, column) pair.
type Coord struct {
	Row int
	Col int
}

// FindOptions controls cell matching for Worksheet.Find.
type FindOptions struct {
	MatchCase       bool
	MatchEntireCell bool
}

// Client opens and creates spreadsheets.
type Client interface {
	// ListSpreadsheets returns the spreadsheets under folder (all when empty).
	ListSpreadsheets(ctx context.Context, folder string) ([]models.Spreadsheet, error)
	OpenByTitle(ctx context.Context, title string) (Spreadsheet, error)
	OpenByKey(ctx context.Context, key string) (Spreadsheet, error)
	OpenByURL(ctx context.Context, url string) (Spreadsheet, error)
	// Create makes a new spreadsheet inside folder.
	Create(ctx context.Context, title, folder string) (Spreadsheet, error)
}

// Spreadsheet is a handle to one spreadsheet document.
type Spreadsheet interface {
	ID() string
	Title() string
	URL() string
	Worksheets(ctx context.Context) ([]Worksheet, error)
	WorksheetByTitle(ctx context.Context, title string) (Worksheet, error)
	WorksheetByIndex(ctx context.Context, index int) (Worksheet, error)
	WorksheetByID(ctx context.Context, id int64) (Worksheet, error)
	AddWorksheet(ctx context.Context, title string) (Worksheet, error)
	DeleteWorksheet(ctx context.Context, ws Worksheet) error
	// Delete removes the whole spreadsheet.
	Delete(ctx context.Context) error
}

// Worksheet is a handle to one grid.
type Worksheet interface {
	ID() int64
	Title() string
	Index() int
	// Rows and Cols report the current grid bounds.
	Rows() int
	Cols() int

	// Row returns the values of row index, excluding trailing empty cells.
	Row(ctx context.Context, index int) ([]string, error)
	// Col returns the values of column index, excluding trailing empty cells.
	Col(ctx context.Context, index int) ([]string, error)
	// UpdateValues writes a matrix starting at start. Each line runs along
	// major; an empty line leaves that position untouched. With extend the
	// grid grows to fit, otherwise ErrOutOfBounds is returned.
	UpdateValues(ctx context.Context, start Coord, values [][]string, major Dimension, extend bool) error
	UpdateValue(ctx context.Context, at Coord, value string) error
	// InsertRows inserts n rows after row after (0 inserts at the top).
	InsertRows(ctx context.Context, after, n int, inherit bool) error
	// InsertCols inserts n columns after column after.
	InsertCols(ctx context.Context, after, n int, inherit bool) error
	Find(ctx context.Context, value string, opts FindOptions) ([]models.Cell, error)
	// Replace substitutes find with replacement inside every cell.
	Replace(ctx context.Context, find, replacement string) error
}

// Info converts a worksheet handle into its model form.
func Info(ws Worksheet) models.Worksheet {
	return models.Worksheet{
		ID:    ws.ID(),
		Title: ws.Title(),
		Index: ws.Index(),
		Rows:  ws.Rows(),
		Cols:  ws.Cols(),
	}
}

// TrimTrailing drops trailing empty strings.
func TrimTrailing(values []string) []string {
	n := len(values)
	for n > 0 && values[n-1] == "" {
		n--
	}
	return values[:n]
}

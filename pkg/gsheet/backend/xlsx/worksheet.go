package xlsx

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/ukaji3/gsheet-go/pkg/gsheet/backend"
	"github.com/ukaji3/gsheet-go/pkg/gsheet/models"
	"github.com/xuri/excelize/v2"
)

// Worksheet is a handle to one sheet of a workbook.
type Worksheet struct {
	book *Spreadsheet
	id   int64
	name string
}

// ID returns the workbook sheet id.
func (w *Worksheet) ID() int64 { return w.id }

// Title returns the sheet name.
func (w *Worksheet) Title() string { return w.name }

// Index returns the 0-based position of the sheet.
func (w *Worksheet) Index() int {
	for i, name := range w.book.f.GetSheetList() {
		if name == w.name {
			return i
		}
	}
	return -1
}

// Rows returns the row bound of the grid.
func (w *Worksheet) Rows() int { return w.grid().rows }

// Cols returns the column bound of the grid.
func (w *Worksheet) Cols() int { return w.grid().cols }

func (w *Worksheet) grid() *bounds {
	if b, ok := w.book.bounds[w.id]; ok {
		return b
	}
	// The sheet was deleted through another handle.
	return &bounds{}
}

// Row returns row index without trailing empty cells.
func (w *Worksheet) Row(_ context.Context, index int) ([]string, error) {
	return readLine(w.book.f, w.name, index, backend.Rows)
}

// Col returns column index without trailing empty cells.
func (w *Worksheet) Col(_ context.Context, index int) ([]string, error) {
	return readLine(w.book.f, w.name, index, backend.Columns)
}

// UpdateValues writes values line by line along major.
func (w *Worksheet) UpdateValues(_ context.Context, start backend.Coord, values [][]string, major backend.Dimension, extend bool) error {
	if start.Row < 1 || start.Col < 1 {
		return fmt.Errorf("%w: start (%d,%d)", backend.ErrOutOfBounds, start.Row, start.Col)
	}

	// Extent of the write along rows and columns.
	long := 0
	for _, line := range values {
		long = max(long, len(line))
	}
	lastRow, lastCol := start.Row+len(values)-1, start.Col+long-1
	if major == backend.Columns {
		lastRow, lastCol = start.Row+long-1, start.Col+len(values)-1
	}
	if err := w.fit(lastRow, lastCol, extend); err != nil {
		return err
	}

	for i, line := range values {
		if len(line) == 0 {
			continue
		}
		at := backend.Coord{Row: start.Row + i, Col: start.Col}
		if major == backend.Columns {
			at = backend.Coord{Row: start.Row, Col: start.Col + i}
		}
		cell, err := excelize.CoordinatesToCellName(at.Col, at.Row)
		if err != nil {
			return fmt.Errorf("%w: %v", backend.ErrOutOfBounds, err)
		}
		if err := writeLine(w.book.f, w.name, cell, line, major); err != nil {
			return err
		}
	}
	return w.book.save()
}

// UpdateValue writes a single cell inside the grid.
func (w *Worksheet) UpdateValue(_ context.Context, at backend.Coord, value string) error {
	if err := w.fit(at.Row, at.Col, false); err != nil {
		return err
	}
	cell, err := excelize.CoordinatesToCellName(at.Col, at.Row)
	if err != nil {
		return fmt.Errorf("%w: %v", backend.ErrOutOfBounds, err)
	}
	if err := w.book.f.SetCellStr(w.name, cell, value); err != nil {
		return err
	}
	return w.book.save()
}

// InsertRows inserts n rows after row after. Cell styles are not copied.
func (w *Worksheet) InsertRows(_ context.Context, after, n int, _ bool) error {
	if err := w.book.f.InsertRows(w.name, after+1, n); err != nil {
		return err
	}
	w.grid().rows += n
	return w.book.save()
}

// InsertCols inserts n columns after column after. Cell styles are not copied.
func (w *Worksheet) InsertCols(_ context.Context, after, n int, _ bool) error {
	col, err := excelize.ColumnNumberToName(after + 1)
	if err != nil {
		return err
	}
	if err := w.book.f.InsertCols(w.name, col, n); err != nil {
		return err
	}
	w.grid().cols += n
	return w.book.save()
}

// Find returns the cells matching value in row-major order.
func (w *Worksheet) Find(_ context.Context, value string, opts backend.FindOptions) ([]models.Cell, error) {
	pattern := regexp.QuoteMeta(value)
	if opts.MatchEntireCell {
		pattern = "^" + pattern + "$"
	}
	if !opts.MatchCase {
		pattern = "(?i)" + pattern
	}

	labels, err := w.book.f.SearchSheet(w.name, pattern, true)
	if err != nil {
		return nil, err
	}

	cells := make([]models.Cell, 0, len(labels))
	for _, label := range labels {
		col, row, err := excelize.CellNameToCoordinates(label)
		if err != nil {
			return nil, err
		}
		v, err := w.book.f.GetCellValue(w.name, label)
		if err != nil {
			return nil, err
		}
		cells = append(cells, models.Cell{
			Worksheet: w.name,
			Label:     label,
			Row:       row,
			Col:       col,
			Value:     v,
		})
	}
	return cells, nil
}

// Replace substitutes every occurrence of find inside the sheet's cells.
func (w *Worksheet) Replace(_ context.Context, find, replacement string) error {
	if find == "" {
		return nil
	}
	rows, err := w.book.f.GetRows(w.name)
	if err != nil {
		return err
	}
	changed := false
	for r, row := range rows {
		for c, v := range row {
			if !strings.Contains(v, find) {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := w.book.f.SetCellStr(w.name, cell, strings.ReplaceAll(v, find, replacement)); err != nil {
				return err
			}
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return w.book.save()
}

// fit checks (row, col) against the grid, growing it when extend is set.
func (w *Worksheet) fit(row, col int, extend bool) error {
	b := w.grid()
	if row <= b.rows && col <= b.cols {
		return nil
	}
	if !extend {
		return fmt.Errorf("%w: (%d,%d) outside %dx%d grid of %q",
			backend.ErrOutOfBounds, row, col, b.rows, b.cols, w.name)
	}
	b.rows = max(b.rows, row)
	b.cols = max(b.cols, col)
	return nil
}

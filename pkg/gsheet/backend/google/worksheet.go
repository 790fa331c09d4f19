package google

import (
	"context"
	"fmt"
	"strings"

	"github.com/ukaji3/gsheet-go/pkg/gsheet/backend"
	"github.com/ukaji3/gsheet-go/pkg/gsheet/models"
	"github.com/xuri/excelize/v2"
	"google.golang.org/api/sheets/v4"
)

// Worksheet is a handle to one tab. Rows and Cols are updated locally after
// every insert or extend so they track the remote grid.
type Worksheet struct {
	book  *Spreadsheet
	id    int64
	title string
	index int
	rows  int
	cols  int
}

// ID returns the sheet id.
func (w *Worksheet) ID() int64 { return w.id }

// Title returns the tab title.
func (w *Worksheet) Title() string { return w.title }

// Index returns the tab position.
func (w *Worksheet) Index() int { return w.index }

// Rows returns the grid row count.
func (w *Worksheet) Rows() int { return w.rows }

// Cols returns the grid column count.
func (w *Worksheet) Cols() int { return w.cols }

// Row reads one row; the API already drops trailing empty cells.
func (w *Worksheet) Row(ctx context.Context, index int) ([]string, error) {
	return w.line(ctx, fmt.Sprintf("%d:%d", index, index), backend.Rows)
}

// Col reads one column.
func (w *Worksheet) Col(ctx context.Context, index int) ([]string, error) {
	name, err := excelize.ColumnNumberToName(index)
	if err != nil {
		return nil, err
	}
	return w.line(ctx, name+":"+name, backend.Columns)
}

func (w *Worksheet) line(ctx context.Context, a1 string, major backend.Dimension) ([]string, error) {
	resp, err := w.book.client.sheets.Spreadsheets.Values.Get(w.book.id, w.rangeName(a1)).
		MajorDimension(major.String()).
		Context(ctx).
		Do()
	if err != nil {
		return nil, wrap(err)
	}
	if len(resp.Values) == 0 {
		return []string{}, nil
	}
	return backend.TrimTrailing(toStrings(resp.Values[0])), nil
}

// UpdateValues writes values with USER_ENTERED semantics, appending grid
// rows/columns first when extend is set.
func (w *Worksheet) UpdateValues(ctx context.Context, start backend.Coord, values [][]string, major backend.Dimension, extend bool) error {
	if len(values) == 0 {
		return nil
	}
	long := 1
	for _, line := range values {
		long = max(long, len(line))
	}
	lastRow, lastCol := start.Row+len(values)-1, start.Col+long-1
	if major == backend.Columns {
		lastRow, lastCol = start.Row+long-1, start.Col+len(values)-1
	}
	if err := w.fit(ctx, lastRow, lastCol, extend); err != nil {
		return err
	}

	from, err := excelize.CoordinatesToCellName(start.Col, start.Row)
	if err != nil {
		return fmt.Errorf("%w: %v", backend.ErrOutOfBounds, err)
	}
	to, err := excelize.CoordinatesToCellName(lastCol, lastRow)
	if err != nil {
		return fmt.Errorf("%w: %v", backend.ErrOutOfBounds, err)
	}

	rows := make([][]interface{}, len(values))
	for i, line := range values {
		rows[i] = make([]interface{}, len(line))
		for j, v := range line {
			rows[i][j] = v
		}
	}
	_, err = w.book.client.sheets.Spreadsheets.Values.Update(w.book.id, w.rangeName(from+":"+to), &sheets.ValueRange{
		MajorDimension: major.String(),
		Values:         rows,
	}).ValueInputOption("USER_ENTERED").Context(ctx).Do()
	return wrap(err)
}

// UpdateValue writes one cell.
func (w *Worksheet) UpdateValue(ctx context.Context, at backend.Coord, value string) error {
	return w.UpdateValues(ctx, at, [][]string{{value}}, backend.Rows, false)
}

// InsertRows inserts n rows after row after.
func (w *Worksheet) InsertRows(ctx context.Context, after, n int, inherit bool) error {
	if err := w.insert(ctx, backend.Rows, after, n, inherit); err != nil {
		return err
	}
	w.rows += n
	return nil
}

// InsertCols inserts n columns after column after.
func (w *Worksheet) InsertCols(ctx context.Context, after, n int, inherit bool) error {
	if err := w.insert(ctx, backend.Columns, after, n, inherit); err != nil {
		return err
	}
	w.cols += n
	return nil
}

func (w *Worksheet) insert(ctx context.Context, dim backend.Dimension, after, n int, inherit bool) error {
	_, err := w.book.batch(ctx, &sheets.Request{
		InsertDimension: &sheets.InsertDimensionRequest{
			Range: &sheets.DimensionRange{
				SheetId:         w.id,
				Dimension:       dim.String(),
				StartIndex:      int64(after),
				EndIndex:        int64(after + n),
				ForceSendFields: []string{"SheetId", "StartIndex"},
			},
			// Inheriting from before is rejected at the first position.
			InheritFromBefore: inherit && after > 0,
		},
	})
	return err
}

// Find scans the sheet values; the Sheets API has no cell search endpoint.
func (w *Worksheet) Find(ctx context.Context, value string, opts backend.FindOptions) ([]models.Cell, error) {
	resp, err := w.book.client.sheets.Spreadsheets.Values.Get(w.book.id, w.rangeName("")).
		MajorDimension(backend.Rows.String()).
		Context(ctx).
		Do()
	if err != nil {
		return nil, wrap(err)
	}

	var cells []models.Cell
	for r, row := range resp.Values {
		for c, raw := range toStrings(row) {
			if !matches(raw, value, opts) {
				continue
			}
			label, _ := excelize.CoordinatesToCellName(c+1, r+1)
			cells = append(cells, models.Cell{
				Worksheet: w.title,
				Label:     label,
				Row:       r + 1,
				Col:       c + 1,
				Value:     raw,
			})
		}
	}
	return cells, nil
}

// Replace runs a case-sensitive FindReplace scoped to this sheet.
func (w *Worksheet) Replace(ctx context.Context, find, replacement string) error {
	_, err := w.book.batch(ctx, &sheets.Request{
		FindReplace: &sheets.FindReplaceRequest{
			Find:            find,
			Replacement:     replacement,
			SheetId:         w.id,
			MatchCase:       true,
			ForceSendFields: []string{"SheetId", "Replacement"},
		},
	})
	return err
}

// fit appends grid rows/columns so (row, col) is addressable.
func (w *Worksheet) fit(ctx context.Context, row, col int, extend bool) error {
	if row <= w.rows && col <= w.cols {
		return nil
	}
	if !extend {
		return fmt.Errorf("%w: (%d,%d) outside %dx%d grid of %q",
			backend.ErrOutOfBounds, row, col, w.rows, w.cols, w.title)
	}

	var requests []*sheets.Request
	if row > w.rows {
		requests = append(requests, &sheets.Request{AppendDimension: &sheets.AppendDimensionRequest{
			SheetId:         w.id,
			Dimension:       backend.Rows.String(),
			Length:          int64(row - w.rows),
			ForceSendFields: []string{"SheetId"},
		}})
	}
	if col > w.cols {
		requests = append(requests, &sheets.Request{AppendDimension: &sheets.AppendDimensionRequest{
			SheetId:         w.id,
			Dimension:       backend.Columns.String(),
			Length:          int64(col - w.cols),
			ForceSendFields: []string{"SheetId"},
		}})
	}
	if _, err := w.book.batch(ctx, requests...); err != nil {
		return err
	}
	w.rows = max(w.rows, row)
	w.cols = max(w.cols, col)
	return nil
}

// rangeName prefixes a1 with the quoted tab title.
func (w *Worksheet) rangeName(a1 string) string {
	name := "'" + strings.ReplaceAll(w.title, "'", "''") + "'"
	if a1 == "" {
		return name
	}
	return name + "!" + a1
}

func toStrings(values []interface{}) []string {
	result := make([]string, len(values))
	for i, v := range values {
		result[i] = fmt.Sprint(v)
	}
	return result
}

func matches(cell, value string, opts backend.FindOptions) bool {
	if !opts.MatchCase {
		cell, value = strings.ToLower(cell), strings.ToLower(value)
	}
	if opts.MatchEntireCell {
		return cell == value
	}
	return strings.Contains(cell, value)
}

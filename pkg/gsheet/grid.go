package gsheet

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/ukaji3/gsheet-go/pkg/gsheet/backend"
	"github.com/ukaji3/gsheet-go/pkg/gsheet/models"
	"github.com/xuri/excelize/v2"
)

// GetRow returns the values of row index of the active worksheet, excluding
// trailing empty cells.
func (s *Session) GetRow(ctx context.Context, index int) ([]string, error) {
	if err := s.requireWorksheet(); err != nil {
		return nil, err
	}
	return s.ws.Row(ctx, index)
}

// GetColumn returns the values of column index of the active worksheet,
// excluding trailing empty cells.
func (s *Session) GetColumn(ctx context.Context, index int) ([]string, error) {
	if err := s.requireWorksheet(); err != nil {
		return nil, err
	}
	return s.ws.Col(ctx, index)
}

// LastDimension returns the index of the last non-empty row or column.
// It measures the opposite dimension's first line, so it assumes data
// starting at A1 without gaps.
func (s *Session) LastDimension(ctx context.Context, dim Dimension) (int, error) {
	if err := s.requireWorksheet(); err != nil {
		return 0, err
	}
	var line []string
	var err error
	switch dim {
	case Rows:
		line, err = s.ws.Col(ctx, 1)
	case Columns:
		line, err = s.ws.Row(ctx, 1)
	default:
		return 0, fmt.Errorf("unknown dimension %v", dim)
	}
	if err != nil {
		return 0, err
	}
	return len(line), nil
}

// UpdateRowByIndex writes values starting at (rowOffset, colOffset); each
// inner slice fills one row. The grid grows to fit.
func (s *Session) UpdateRowByIndex(ctx context.Context, values [][]any, rowOffset, colOffset int) (WriteResult, error) {
	return s.updateByIndex(ctx, Rows, values, Coord{Row: rowOffset, Col: colOffset})
}

// UpdateColumnByIndex writes values starting at (rowOffset, colOffset); each
// inner slice fills one column. The grid grows to fit.
func (s *Session) UpdateColumnByIndex(ctx context.Context, values [][]any, colOffset, rowOffset int) (WriteResult, error) {
	return s.updateByIndex(ctx, Columns, values, Coord{Row: rowOffset, Col: colOffset})
}

func (s *Session) updateByIndex(ctx context.Context, dim Dimension, values [][]any, start Coord) (WriteResult, error) {
	if err := s.requireWorksheet(); err != nil {
		return WriteResult{}, err
	}
	if start.Row < 1 || start.Col < 1 {
		return WriteResult{}, fmt.Errorf("%w: got (%d,%d)", ErrInvalidOffset, start.Row, start.Col)
	}

	matrix := make([][]string, len(values))
	for i, line := range values {
		matrix[i] = make([]string, len(line))
		for j, v := range line {
			matrix[i][j] = stringify(v)
		}
	}
	res := writeResult(s.ws.UpdateValues(ctx, start, matrix, dim, true))
	if !res.OK() {
		s.log.Warn().Err(res.Err).Str("reason", res.Reason.String()).Msg("Grid write failed")
	}
	return res, nil
}

// AddRow inserts a row before 1-based position at, or after the last grid
// row when at < 0. Formatting is inherited from the neighbouring row.
func (s *Session) AddRow(ctx context.Context, at int) error {
	if err := s.requireWorksheet(); err != nil {
		return err
	}
	after := at - 1
	if at < 0 {
		after = s.ws.Rows()
	}
	return s.ws.InsertRows(ctx, after, 1, true)
}

// AddColumn inserts a column before 1-based position at, or after the last
// grid column when at < 0.
func (s *Session) AddColumn(ctx context.Context, at int) error {
	if err := s.requireWorksheet(); err != nil {
		return err
	}
	after := at - 1
	if at < 0 {
		after = s.ws.Cols()
	}
	return s.ws.InsertCols(ctx, after, 1, true)
}

// FindCells searches every worksheet of the active spreadsheet. By default
// matching is case sensitive on the entire cell.
func (s *Session) FindCells(ctx context.Context, value string, opts ...FindOption) ([]models.Cell, error) {
	if err := s.requireSpreadsheet(); err != nil {
		return nil, err
	}
	findOpts := backend.FindOptions{MatchCase: true, MatchEntireCell: true}
	for _, opt := range opts {
		opt(&findOpts)
	}

	list, err := s.sheet.Worksheets(ctx)
	if err != nil {
		return nil, err
	}
	var cells []models.Cell
	for _, ws := range list {
		found, err := ws.Find(ctx, value, findOpts)
		if err != nil {
			return nil, fmt.Errorf("find in %q: %w", ws.Title(), err)
		}
		cells = append(cells, found...)
	}
	return cells, nil
}

// ReplaceValue replaces find with replacement inside every cell of every
// worksheet, keeping the rest of the cell text.
func (s *Session) ReplaceValue(ctx context.Context, find, replacement string) error {
	if err := s.requireSpreadsheet(); err != nil {
		return err
	}
	list, err := s.sheet.Worksheets(ctx)
	if err != nil {
		return err
	}
	for _, ws := range list {
		if err := ws.Replace(ctx, find, replacement); err != nil {
			return fmt.Errorf("replace in %q: %w", ws.Title(), err)
		}
	}
	return nil
}

// FormatAddr converts a coordinate to an A1 label.
func FormatAddr(c Coord) (string, error) {
	return excelize.CoordinatesToCellName(c.Col, c.Row)
}

// ParseAddr converts an A1 label to a coordinate.
func ParseAddr(label string) (Coord, error) {
	col, row, err := excelize.CellNameToCoordinates(label)
	if err != nil {
		return Coord{}, err
	}
	return Coord{Row: row, Col: col}, nil
}

// stringify renders a record or matrix value as cell text. nil is blank.
func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		if x {
			return "True"
		}
		return "False"
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case uint:
		return strconv.FormatUint(uint64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case fmt.Stringer:
		return x.String()
	case []byte:
		return string(x)
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		items := make([]string, rv.Len())
		for i := range items {
			items[i] = stringify(rv.Index(i).Interface())
		}
		return "[" + strings.Join(items, ", ") + "]"
	}
	return fmt.Sprint(v)
}

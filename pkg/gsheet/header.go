package gsheet

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
)

// Field is one key/value pair of a Record.
type Field struct {
	Key   string
	Value any
}

// Record is an ordered set of header-keyed values for one row or column.
// A nil Record skips its position.
type Record []Field

// RecordFromMap builds a Record with keys in sorted order.
func RecordFromMap(m map[string]any) Record {
	if m == nil {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	r := make(Record, 0, len(keys))
	for _, k := range keys {
		r = append(r, Field{Key: k, Value: m[k]})
	}
	return r
}

// Get returns the value stored under key.
func (r Record) Get(key string) (any, bool) {
	for _, f := range r {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// UpdateRowByHeader writes records into consecutive rows starting at
// rowOffset, placing each value in the column whose header (row 1 unless
// WithHeaderIndex) matches its key. Unknown keys become new headers.
func (s *Session) UpdateRowByHeader(ctx context.Context, records []Record, rowOffset int, opts ...HeaderOption) (WriteResult, error) {
	return s.updateByHeader(ctx, Rows, records, rowOffset, opts)
}

// UpdateColumnByHeader writes records into consecutive columns starting at
// colOffset, keyed by the header column (1 unless WithHeaderIndex).
func (s *Session) UpdateColumnByHeader(ctx context.Context, records []Record, colOffset int, opts ...HeaderOption) (WriteResult, error) {
	return s.updateByHeader(ctx, Columns, records, colOffset, opts)
}

func (s *Session) updateByHeader(ctx context.Context, dim Dimension, records []Record, offset int, opts []HeaderOption) (WriteResult, error) {
	if err := s.requireWorksheet(); err != nil {
		return WriteResult{}, err
	}
	cfg := headerConfig{index: 1, caseSensitive: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	if offset < 1 || cfg.index < 1 {
		return WriteResult{}, fmt.Errorf("%w: offset %d, header index %d", ErrInvalidOffset, offset, cfg.index)
	}

	var headers []string
	var start Coord
	var err error
	switch dim {
	case Rows:
		headers, err = s.ws.Row(ctx, cfg.index)
		start = Coord{Row: offset, Col: 1}
	case Columns:
		headers, err = s.ws.Col(ctx, cfg.index)
		start = Coord{Row: 1, Col: offset}
	default:
		return WriteResult{}, fmt.Errorf("unknown dimension %v", dim)
	}
	if err != nil {
		return WriteResult{}, err
	}
	if !cfg.caseSensitive {
		for i, h := range headers {
			headers[i] = strings.ToLower(h)
		}
	}

	matrix := make([][]string, 0, len(records))
	for _, record := range records {
		if len(record) == 0 {
			matrix = append(matrix, []string{})
			continue
		}

		values := make(map[int]string, len(record))
		last := 0
		for _, field := range record {
			key := field.Key
			if !cfg.caseSensitive {
				key = strings.ToLower(key)
			}
			pos := slices.Index(headers, key) + 1
			if pos == 0 {
				headers = append(headers, key)
				pos = len(headers)
				if err := s.appendHeader(ctx, dim, cfg.index, pos, field.Key); err != nil {
					return WriteResult{}, err
				}
			}
			values[pos] = stringify(field.Value)
			last = max(last, pos)
		}

		line := make([]string, last)
		for pos, v := range values {
			line[pos-1] = v
		}
		matrix = append(matrix, line)
	}

	res := writeResult(s.ws.UpdateValues(ctx, start, matrix, dim, true))
	if !res.OK() {
		s.log.Warn().Err(res.Err).Str("reason", res.Reason.String()).Msg("Header update failed")
	}
	return res, nil
}

// appendHeader writes a new header cell at pos along the header line,
// growing the grid by one unit when pos is outside it.
func (s *Session) appendHeader(ctx context.Context, dim Dimension, headerIndex, pos int, key string) error {
	at := Coord{Row: headerIndex, Col: pos}
	if dim == Rows {
		if pos > s.ws.Cols() {
			if err := s.AddColumn(ctx, -1); err != nil {
				return err
			}
		}
	} else {
		at = Coord{Row: pos, Col: headerIndex}
		if pos > s.ws.Rows() {
			if err := s.AddRow(ctx, -1); err != nil {
				return err
			}
		}
	}
	s.log.Debug().Str("header", key).Int("position", pos).Msg("Adding header")
	return s.ws.UpdateValue(ctx, at, key)
}

// AddDataToWorksheetRows appends data below the existing rows of worksheet
// (created when missing), keyed by the header row. With preserveBlanks empty
// string values are written as BlankMarker. It returns the written range as
// "<worksheet>!A<first>:<last>", or "" when the write was rejected.
func (s *Session) AddDataToWorksheetRows(ctx context.Context, worksheet string, data []Record, preserveBlanks bool) (string, error) {
	if err := s.SetOrCreateWorksheet(ctx, worksheet); err != nil {
		return "", err
	}
	height, err := s.LastDimension(ctx, Rows)
	if err != nil {
		return "", err
	}
	if height == 0 {
		height = 2
	} else {
		height++
	}

	if preserveBlanks {
		data = markBlanks(data)
	}
	res, err := s.UpdateRowByHeader(ctx, data, height)
	if err != nil {
		return "", err
	}
	if !res.OK() {
		return "", nil
	}

	width, err := s.LastDimension(ctx, Columns)
	if err != nil {
		return "", err
	}
	end, err := FormatAddr(Coord{Row: height + len(data) - 1, Col: width})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s!A%d:%s", worksheet, height, end), nil
}

// markBlanks copies data with "" values replaced by BlankMarker.
func markBlanks(data []Record) []Record {
	out := make([]Record, len(data))
	for i, record := range data {
		if record == nil {
			continue
		}
		out[i] = make(Record, len(record))
		for j, f := range record {
			if v, ok := f.Value.(string); ok && v == "" {
				f.Value = BlankMarker
			}
			out[i][j] = f
		}
	}
	return out
}

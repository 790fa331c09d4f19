package gsheet

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateRowByHeader(t *testing.T) {
	ctx := context.Background()
	s := newBook(t, 10, 10)

	_, err := s.UpdateRowByIndex(ctx, [][]any{{"colA", "colB", "colC"}}, 1, 1)
	require.NoError(t, err)

	res, err := s.UpdateRowByHeader(ctx, []Record{{{Key: "colA", Value: "a"}, {Key: "colC", Value: "c"}}}, 2)
	require.NoError(t, err)
	assert.True(t, res.OK())
	row2, err := s.GetRow(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "", "c"}, row2)

	res, err = s.UpdateRowByHeader(ctx, []Record{{{Key: "colD", Value: "d"}}}, 3)
	require.NoError(t, err)
	assert.True(t, res.OK())

	headers, err := s.GetRow(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"colA", "colB", "colC", "colD"}, headers)
	row3, err := s.GetRow(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"", "", "", "d"}, row3)
}

func TestUpdateRowByHeaderSkipsNilRecords(t *testing.T) {
	ctx := context.Background()
	s := newBook(t, 10, 10)

	records := []Record{
		{{Key: "n", Value: 1}},
		nil,
		{{Key: "n", Value: 3}, {Key: "flag", Value: false}},
	}
	res, err := s.UpdateRowByHeader(ctx, records, 2)
	require.NoError(t, err)
	assert.True(t, res.OK())

	col1, err := s.GetColumn(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"n", "1", "", "3"}, col1)
	row4, err := s.GetRow(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "False"}, row4)
}

func TestUpdateRowByHeaderCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	s := newBook(t, 10, 10)

	_, err := s.UpdateRowByIndex(ctx, [][]any{{"Name", "Age"}}, 1, 1)
	require.NoError(t, err)

	_, err = s.UpdateRowByHeader(ctx, []Record{{{Key: "AGE", Value: 4}, {Key: "name", Value: "x"}}}, 2, CaseInsensitive())
	require.NoError(t, err)

	headers, err := s.GetRow(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Age"}, headers)
	row2, err := s.GetRow(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "4"}, row2)

	// Case sensitive matching adds a new header instead.
	_, err = s.UpdateRowByHeader(ctx, []Record{{{Key: "AGE", Value: 5}}}, 3)
	require.NoError(t, err)
	headers, err = s.GetRow(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Age", "AGE"}, headers)
}

func TestUpdateRowByHeaderGrowsGridByOne(t *testing.T) {
	ctx := context.Background()
	s := newBook(t, 5, 3)

	_, err := s.UpdateRowByIndex(ctx, [][]any{{"colA", "colB", "colC"}}, 1, 1)
	require.NoError(t, err)
	require.Equal(t, 3, s.Worksheet().Cols())

	res, err := s.UpdateRowByHeader(ctx, []Record{{{Key: "colD", Value: "d"}}}, 2)
	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.Equal(t, 4, s.Worksheet().Cols())

	headers, err := s.GetRow(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"colA", "colB", "colC", "colD"}, headers)
}

func TestUpdateRowByHeaderIndex(t *testing.T) {
	ctx := context.Background()
	s := newBook(t, 10, 10)

	_, err := s.UpdateRowByIndex(ctx, [][]any{{"title"}, {"k1", "k2"}}, 1, 1)
	require.NoError(t, err)

	_, err = s.UpdateRowByHeader(ctx, []Record{{{Key: "k2", Value: "v"}}}, 3, WithHeaderIndex(2))
	require.NoError(t, err)
	row3, err := s.GetRow(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"", "v"}, row3)

	_, err = s.UpdateRowByHeader(ctx, []Record{{{Key: "k2", Value: "v"}}}, 3, WithHeaderIndex(0))
	assert.ErrorIs(t, err, ErrInvalidOffset)
	_, err = s.UpdateRowByHeader(ctx, []Record{{{Key: "k2", Value: "v"}}}, 0)
	assert.ErrorIs(t, err, ErrInvalidOffset)
}

func TestUpdateColumnByHeader(t *testing.T) {
	ctx := context.Background()
	s := newBook(t, 10, 10)

	_, err := s.UpdateColumnByIndex(ctx, [][]any{{"k1", "k2"}}, 1, 1)
	require.NoError(t, err)

	res, err := s.UpdateColumnByHeader(ctx, []Record{
		{{Key: "k2", Value: "v"}},
		{{Key: "k3", Value: 7}, {Key: "k1", Value: "w"}},
	}, 2)
	require.NoError(t, err)
	assert.True(t, res.OK())

	headers, err := s.GetColumn(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"k1", "k2", "k3"}, headers)
	col2, err := s.GetColumn(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"", "v"}, col2)
	col3, err := s.GetColumn(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"w", "", "7"}, col3)
}

func TestUpdateColumnByHeaderGrowsGridByOne(t *testing.T) {
	ctx := context.Background()
	s := newBook(t, 3, 5)

	_, err := s.UpdateColumnByIndex(ctx, [][]any{{"k1", "k2", "k3"}}, 1, 1)
	require.NoError(t, err)
	require.Equal(t, 3, s.Worksheet().Rows())

	res, err := s.UpdateColumnByHeader(ctx, []Record{{{Key: "k4", Value: "v"}}}, 2)
	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.Equal(t, 4, s.Worksheet().Rows())

	headers, err := s.GetColumn(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"k1", "k2", "k3", "k4"}, headers)
	col2, err := s.GetColumn(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"", "", "", "v"}, col2)
}

func TestAddDataToWorksheetRowsListValues(t *testing.T) {
	ctx := context.Background()
	s := newBook(t, 10, 10)

	data := []Record{RecordFromMap(map[string]any{"name": "x", "tags": []any{1, 2}})}
	written, err := s.AddDataToWorksheetRows(ctx, "Data", data, false)
	require.NoError(t, err)
	assert.Equal(t, "Data!A2:B2", written)

	row2, err := s.GetRow(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "[1, 2]"}, row2)

	records, err := s.ResolveRange(ctx, "Data!A1:B2")
	require.NoError(t, err)
	require.Len(t, records, 1)
	tags, ok := records[0].Get("tags")
	require.True(t, ok)
	assert.Equal(t, List(Int(1), Int(2)), tags)
}

func TestAddDataToWorksheetRows(t *testing.T) {
	ctx := context.Background()
	s := newBook(t, 1000, 26)

	first := []Record{
		{{Key: "a", Value: 1}, {Key: "b", Value: 2}, {Key: "c", Value: 3}, {Key: "d", Value: 4}},
		{{Key: "a", Value: 5}, {Key: "b", Value: 6}, {Key: "c", Value: 7}, {Key: "d", Value: 8}},
	}
	written, err := s.AddDataToWorksheetRows(ctx, "Data", first, false)
	require.NoError(t, err)
	assert.Equal(t, "Data!A2:D3", written)
	assert.Equal(t, "Data", s.Worksheet().Title())

	second := []Record{
		{{Key: "a", Value: 9}, {Key: "e", Value: "new"}},
		{{Key: "b", Value: 10}, {Key: "e", Value: "new"}},
	}
	written, err = s.AddDataToWorksheetRows(ctx, "Data", second, false)
	require.NoError(t, err)
	assert.Equal(t, "Data!A4:E5", written)

	headers, err := s.GetRow(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, headers)
	row5, err := s.GetRow(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"", "10", "", "", "new"}, row5)
}

func TestAddDataToWorksheetRowsPreserveBlanks(t *testing.T) {
	ctx := context.Background()
	s := newBook(t, 1000, 26)

	data := []Record{{{Key: "a", Value: ""}, {Key: "b", Value: "x"}}}
	_, err := s.AddDataToWorksheetRows(ctx, "Kept", data, true)
	require.NoError(t, err)
	row2, err := s.GetRow(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{BlankMarker, "x"}, row2)

	// The caller's records are left untouched.
	v, _ := data[0].Get("a")
	assert.Equal(t, "", v)

	_, err = s.AddDataToWorksheetRows(ctx, "Dropped", data, false)
	require.NoError(t, err)
	row2, err = s.GetRow(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"", "x"}, row2)
}

func TestRecordFromMap(t *testing.T) {
	r := RecordFromMap(map[string]any{"b": 2, "a": 1})
	assert.Equal(t, Record{{Key: "a", Value: 1}, {Key: "b", Value: 2}}, r)
	assert.Nil(t, RecordFromMap(nil))

	v, ok := r.Get("b")
	assert.True(t, ok)
	assert.Equal(t, 2, v)
	_, ok = r.Get("z")
	assert.False(t, ok)
}

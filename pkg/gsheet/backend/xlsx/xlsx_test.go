package xlsx

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/gsheet-go/pkg/gsheet/backend"
	"github.com/ukaji3/gsheet-go/pkg/gsheet/models"
	"github.com/xuri/excelize/v2"
)

// writeBook saves a workbook with the given rows on Sheet1 under dir.
func writeBook(t *testing.T, dir, title string, rows [][]interface{}) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	require.NoError(t, f.SaveAs(filepath.Join(dir, title+ext)))
}

func TestOpenAndRead(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeBook(t, dir, "Book", [][]interface{}{
		{"Header1", "Header2", "Header3"},
		{100, "", "x"},
		{"Text"},
	})

	c, err := New(dir)
	require.NoError(t, err)
	defer c.Close()

	list, err := c.ListSpreadsheets(ctx, "")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.Spreadsheet{
		Key:   "Book",
		Title: "Book",
		URL:   urlPrefix + filepath.Join(dir, "Book"+ext),
	}, list[0])

	book, err := c.OpenByTitle(ctx, "Book")
	require.NoError(t, err)
	ws, err := book.WorksheetByIndex(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "Sheet1", ws.Title())
	assert.Equal(t, DefaultRows, ws.Rows())
	assert.Equal(t, DefaultCols, ws.Cols())

	row, err := ws.Row(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"100", "", "x"}, row)

	col, err := ws.Col(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Header1", "100", "Text"}, col)

	empty, err := ws.Row(ctx, 50)
	require.NoError(t, err)
	assert.Empty(t, empty)

	// Handles to the same file are shared.
	again, err := c.OpenByURL(ctx, book.URL())
	require.NoError(t, err)
	assert.Same(t, book, again)
}

func TestOpenMissing(t *testing.T) {
	ctx := context.Background()
	c, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = c.OpenByTitle(ctx, "nope")
	assert.ErrorIs(t, err, backend.ErrNotFound)
	_, err = c.OpenByKey(ctx, "nope")
	assert.ErrorIs(t, err, backend.ErrNotFound)
	_, err = c.OpenByURL(ctx, "https://example.com/x")
	assert.ErrorIs(t, err, backend.ErrNotFound)
}

func TestCreateInFolderAndDelete(t *testing.T) {
	ctx := context.Background()
	c, err := New(t.TempDir())
	require.NoError(t, err)
	defer c.Close()

	book, err := c.Create(ctx, "Report", "team")
	require.NoError(t, err)
	assert.Equal(t, "team/Report", book.ID())

	inFolder, err := c.ListSpreadsheets(ctx, "team")
	require.NoError(t, err)
	assert.Len(t, inFolder, 1)
	atRoot, err := c.ListSpreadsheets(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, atRoot)

	byKey, err := c.OpenByKey(ctx, "team/Report")
	require.NoError(t, err)
	assert.Same(t, book, byKey)

	require.NoError(t, book.Delete(ctx))
	_, err = c.OpenByTitle(ctx, "Report")
	assert.ErrorIs(t, err, backend.ErrNotFound)
}

func TestWorksheetLifecycle(t *testing.T) {
	ctx := context.Background()
	c, err := New(t.TempDir())
	require.NoError(t, err)
	defer c.Close()

	book, err := c.Create(ctx, "Book", "")
	require.NoError(t, err)

	added, err := book.AddWorksheet(ctx, "Data")
	require.NoError(t, err)
	assert.Equal(t, 1, added.Index())

	_, err = book.AddWorksheet(ctx, "Data")
	assert.Error(t, err)

	byID, err := book.WorksheetByID(ctx, added.ID())
	require.NoError(t, err)
	assert.Equal(t, "Data", byID.Title())

	list, err := book.Worksheets(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, book.DeleteWorksheet(ctx, added))
	_, err = book.WorksheetByTitle(ctx, "Data")
	assert.ErrorIs(t, err, backend.ErrNotFound)

	first, err := book.WorksheetByIndex(ctx, 0)
	require.NoError(t, err)
	assert.ErrorIs(t, book.DeleteWorksheet(ctx, first), backend.ErrOutOfBounds)
}

func TestUpdateValues(t *testing.T) {
	ctx := context.Background()
	c, err := New(t.TempDir(), WithGridSize(4, 3))
	require.NoError(t, err)
	defer c.Close()

	book, err := c.Create(ctx, "Book", "")
	require.NoError(t, err)
	ws, err := book.WorksheetByIndex(ctx, 0)
	require.NoError(t, err)

	require.NoError(t, ws.UpdateValues(ctx, backend.Coord{Row: 1, Col: 1},
		[][]string{{"a", "b"}, {}, {"c", "", "d"}}, backend.Rows, false))

	row1, _ := ws.Row(ctx, 1)
	row3, _ := ws.Row(ctx, 3)
	assert.Equal(t, []string{"a", "b"}, row1)
	assert.Equal(t, []string{"c", "", "d"}, row3)

	// The empty line left row 2 untouched.
	row2, _ := ws.Row(ctx, 2)
	assert.Empty(t, row2)

	err = ws.UpdateValues(ctx, backend.Coord{Row: 1, Col: 3}, [][]string{{"x", "y"}}, backend.Rows, false)
	assert.ErrorIs(t, err, backend.ErrOutOfBounds)

	require.NoError(t, ws.UpdateValues(ctx, backend.Coord{Row: 2, Col: 4},
		[][]string{{"p", "q", "r", "s"}}, backend.Columns, true))
	assert.Equal(t, 5, ws.Rows())
	assert.Equal(t, 4, ws.Cols())
	col4, _ := ws.Col(ctx, 4)
	assert.Equal(t, []string{"", "p", "q", "r", "s"}, col4)
}

func TestInsertAndBounds(t *testing.T) {
	ctx := context.Background()
	c, err := New(t.TempDir(), WithGridSize(2, 2))
	require.NoError(t, err)
	defer c.Close()

	book, err := c.Create(ctx, "Book", "")
	require.NoError(t, err)
	ws, err := book.WorksheetByIndex(ctx, 0)
	require.NoError(t, err)

	require.NoError(t, ws.UpdateValue(ctx, backend.Coord{Row: 1, Col: 1}, "top"))
	assert.ErrorIs(t, ws.UpdateValue(ctx, backend.Coord{Row: 1, Col: 3}, "x"), backend.ErrOutOfBounds)

	require.NoError(t, ws.InsertCols(ctx, 2, 1, true))
	assert.Equal(t, 3, ws.Cols())
	require.NoError(t, ws.UpdateValue(ctx, backend.Coord{Row: 1, Col: 3}, "x"))

	require.NoError(t, ws.InsertRows(ctx, 0, 1, true))
	assert.Equal(t, 3, ws.Rows())
	col1, _ := ws.Col(ctx, 1)
	assert.Equal(t, []string{"", "top"}, col1)
}

func TestFindAndReplace(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeBook(t, dir, "Book", [][]interface{}{
		{"ROW7", "row7", "a row7 b"},
		{"sane", "Sane"},
	})
	c, err := New(dir)
	require.NoError(t, err)
	defer c.Close()

	book, err := c.OpenByTitle(ctx, "Book")
	require.NoError(t, err)
	ws, err := book.WorksheetByIndex(ctx, 0)
	require.NoError(t, err)

	exact, err := ws.Find(ctx, "ROW7", backend.FindOptions{MatchCase: true, MatchEntireCell: true})
	require.NoError(t, err)
	require.Len(t, exact, 1)
	assert.Equal(t, "A1", exact[0].Label)
	assert.Equal(t, "Sheet1", exact[0].Worksheet)

	folded, err := ws.Find(ctx, "ROW7", backend.FindOptions{MatchEntireCell: true})
	require.NoError(t, err)
	assert.Len(t, folded, 2)

	partial, err := ws.Find(ctx, "row7", backend.FindOptions{MatchCase: true})
	require.NoError(t, err)
	assert.Len(t, partial, 2)

	require.NoError(t, ws.Replace(ctx, "row7", "R"))
	row1, _ := ws.Row(ctx, 1)
	assert.Equal(t, []string{"ROW7", "R", "a R b"}, row1)
}

func TestDataExtent(t *testing.T) {
	lastRow, lastCol := dataExtent([][]string{{}, {"", "x"}, {"", "", "", "y"}, {"", ""}})
	assert.Equal(t, 3, lastRow)
	assert.Equal(t, 4, lastCol)

	lastRow, lastCol = dataExtent(nil)
	assert.Zero(t, lastRow)
	assert.Zero(t, lastCol)
}

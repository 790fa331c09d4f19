package xlsx

import (
	"github.com/ukaji3/gsheet-go/pkg/gsheet/backend"
	"github.com/xuri/excelize/v2"
)

// readLine returns line index (1-based) of a sheet read along major,
// excluding trailing empty cells.
func readLine(f *excelize.File, sheetName string, index int, major backend.Dimension) ([]string, error) {
	var lines [][]string
	var err error
	if major == backend.Columns {
		lines, err = f.GetCols(sheetName)
	} else {
		lines, err = f.GetRows(sheetName)
	}
	if err != nil {
		return nil, err
	}
	if index < 1 || index > len(lines) {
		return []string{}, nil
	}
	line := backend.TrimTrailing(lines[index-1])
	return append([]string{}, line...), nil
}

// writeLine writes values along major starting at cell.
func writeLine(f *excelize.File, sheetName, cell string, values []string, major backend.Dimension) error {
	slice := make([]interface{}, len(values))
	for i, v := range values {
		slice[i] = v
	}
	if major == backend.Columns {
		return f.SetSheetCol(sheetName, cell, &slice)
	}
	return f.SetSheetRow(sheetName, cell, &slice)
}

// dataExtent returns the 1-based last row and column holding a non-empty
// cell, or zeros for an empty sheet.
func dataExtent(rows [][]string) (lastRow, lastCol int) {
	for r, row := range rows {
		for c, cell := range row {
			if cell == "" {
				continue
			}
			lastRow = r + 1
			lastCol = max(lastCol, c+1)
		}
	}
	return lastRow, lastCol
}

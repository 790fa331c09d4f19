// Package models defines the plain data types returned by gsheet.
package models

// Cell represents a single cell found in a worksheet.
type Cell struct {
	// Worksheet is the title of the worksheet holding the cell.
	Worksheet string `json:"worksheet"`
	// Label is the A1-style address (e.g., "B7").
	Label string `json:"label"`
	// Row is the row index (1-based).
	Row int `json:"row"`
	// Col is the column index (1-based).
	Col int `json:"col"`
	// Value is the displayed cell value.
	Value string `json:"value"`
}

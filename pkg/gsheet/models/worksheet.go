package models

// Worksheet describes one worksheet of a spreadsheet.
type Worksheet struct {
	// ID is the stable worksheet id assigned by the backend.
	ID int64 `json:"id"`
	// Title is the worksheet tab name.
	Title string `json:"title"`
	// Index is the position of the worksheet in the spreadsheet (0-based).
	Index int `json:"index"`
	// Rows is the number of rows in the grid.
	Rows int `json:"rows"`
	// Cols is the number of columns in the grid.
	Cols int `json:"cols"`
}

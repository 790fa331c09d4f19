package models

// Spreadsheet describes a spreadsheet document.
type Spreadsheet struct {
	// Key is the backend id of the spreadsheet.
	Key string `json:"key"`
	// Title is the document title.
	Title string `json:"title"`
	// URL is the address the spreadsheet can be opened by.
	URL string `json:"url"`
}

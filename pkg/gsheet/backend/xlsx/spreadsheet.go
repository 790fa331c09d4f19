package xlsx

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ukaji3/gsheet-go/pkg/gsheet/backend"
	"github.com/xuri/excelize/v2"
)

// Spreadsheet is one workbook file.
type Spreadsheet struct {
	client *Client
	path   string
	f      *excelize.File
	// bounds holds the grid size per sheet id; xlsx has no fixed grid.
	bounds map[int64]*bounds
}

type bounds struct {
	rows int
	cols int
}

// ID returns the key of the workbook.
func (s *Spreadsheet) ID() string { return s.client.key(s.path) }

// Title returns the file name without extension.
func (s *Spreadsheet) Title() string {
	return strings.TrimSuffix(filepath.Base(s.path), filepath.Ext(s.path))
}

// URL returns the file:// address of the workbook.
func (s *Spreadsheet) URL() string { return urlPrefix + s.path }

// Worksheets lists the sheets in workbook order.
func (s *Spreadsheet) Worksheets(_ context.Context) ([]backend.Worksheet, error) {
	var result []backend.Worksheet
	for _, name := range s.f.GetSheetList() {
		ws, err := s.sheet(name)
		if err != nil {
			return nil, err
		}
		result = append(result, ws)
	}
	return result, nil
}

// WorksheetByTitle finds a sheet by exact name.
func (s *Spreadsheet) WorksheetByTitle(_ context.Context, title string) (backend.Worksheet, error) {
	for _, name := range s.f.GetSheetList() {
		if name == title {
			return s.sheet(name)
		}
	}
	return nil, fmt.Errorf("worksheet %q: %w", title, backend.ErrNotFound)
}

// WorksheetByIndex finds a sheet by 0-based position.
func (s *Spreadsheet) WorksheetByIndex(_ context.Context, index int) (backend.Worksheet, error) {
	names := s.f.GetSheetList()
	if index < 0 || index >= len(names) {
		return nil, fmt.Errorf("worksheet index %d: %w", index, backend.ErrNotFound)
	}
	return s.sheet(names[index])
}

// WorksheetByID finds a sheet by its workbook sheet id.
func (s *Spreadsheet) WorksheetByID(_ context.Context, id int64) (backend.Worksheet, error) {
	name, ok := s.f.GetSheetMap()[int(id)]
	if !ok {
		return nil, fmt.Errorf("worksheet id %d: %w", id, backend.ErrNotFound)
	}
	return s.sheet(name)
}

// AddWorksheet appends a new sheet.
func (s *Spreadsheet) AddWorksheet(_ context.Context, title string) (backend.Worksheet, error) {
	if idx, _ := s.f.GetSheetIndex(title); idx >= 0 {
		return nil, fmt.Errorf("worksheet %q already exists", title)
	}
	if _, err := s.f.NewSheet(title); err != nil {
		return nil, err
	}
	if err := s.save(); err != nil {
		return nil, err
	}
	return s.sheet(title)
}

// DeleteWorksheet removes ws from the workbook.
func (s *Spreadsheet) DeleteWorksheet(_ context.Context, ws backend.Worksheet) error {
	if _, ok := s.f.GetSheetMap()[int(ws.ID())]; !ok {
		return fmt.Errorf("worksheet id %d: %w", ws.ID(), backend.ErrNotFound)
	}
	if len(s.f.GetSheetList()) == 1 {
		return fmt.Errorf("%w: cannot delete the only worksheet %q", backend.ErrOutOfBounds, ws.Title())
	}
	if err := s.f.DeleteSheet(ws.Title()); err != nil {
		return err
	}
	delete(s.bounds, ws.ID())
	return s.save()
}

// Delete closes and removes the workbook file.
func (s *Spreadsheet) Delete(_ context.Context) error {
	delete(s.client.books, s.path)
	if err := s.f.Close(); err != nil {
		return err
	}
	return os.Remove(s.path)
}

func (s *Spreadsheet) save() error {
	return s.f.Save()
}

// sheet builds a handle for name, computing its grid bounds on first use.
func (s *Spreadsheet) sheet(name string) (*Worksheet, error) {
	var id int64 = -1
	for sheetID, sheetName := range s.f.GetSheetMap() {
		if sheetName == name {
			id = int64(sheetID)
			break
		}
	}
	if id < 0 {
		return nil, fmt.Errorf("worksheet %q: %w", name, backend.ErrNotFound)
	}

	if _, ok := s.bounds[id]; !ok {
		rows, err := s.f.GetRows(name)
		if err != nil {
			return nil, err
		}
		lastRow, lastCol := dataExtent(rows)
		s.bounds[id] = &bounds{
			rows: max(s.client.rows, lastRow),
			cols: max(s.client.cols, lastCol),
		}
	}
	return &Worksheet{book: s, id: id, name: name}, nil
}

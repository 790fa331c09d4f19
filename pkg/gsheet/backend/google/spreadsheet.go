package google

import (
	"context"
	"fmt"

	"github.com/ukaji3/gsheet-go/pkg/gsheet/backend"
	"google.golang.org/api/sheets/v4"
)

// Spreadsheet is a handle to a Google spreadsheet. Worksheet metadata is
// fetched on every lookup so handles never go stale.
type Spreadsheet struct {
	client *Client
	id     string
	title  string
	url    string
	sheets []*sheets.SheetProperties
}

// ID returns the spreadsheet key.
func (s *Spreadsheet) ID() string { return s.id }

// Title returns the document title.
func (s *Spreadsheet) Title() string { return s.title }

// URL returns the docs.google.com address.
func (s *Spreadsheet) URL() string { return s.url }

func (s *Spreadsheet) fetch(ctx context.Context) error {
	resp, err := s.client.sheets.Spreadsheets.Get(s.id).
		Fields("spreadsheetId,spreadsheetUrl,properties.title,sheets.properties").
		Context(ctx).
		Do()
	if err != nil {
		return wrap(err)
	}
	s.title = resp.Properties.Title
	s.url = resp.SpreadsheetUrl
	s.sheets = s.sheets[:0]
	for _, sh := range resp.Sheets {
		s.sheets = append(s.sheets, sh.Properties)
	}
	return nil
}

// Worksheets lists the tabs in order.
func (s *Spreadsheet) Worksheets(ctx context.Context) ([]backend.Worksheet, error) {
	if err := s.fetch(ctx); err != nil {
		return nil, err
	}
	result := make([]backend.Worksheet, 0, len(s.sheets))
	for _, p := range s.sheets {
		result = append(result, s.worksheet(p))
	}
	return result, nil
}

// WorksheetByTitle finds a tab by exact title.
func (s *Spreadsheet) WorksheetByTitle(ctx context.Context, title string) (backend.Worksheet, error) {
	return s.find(ctx, fmt.Sprintf("worksheet %q", title), func(p *sheets.SheetProperties) bool {
		return p.Title == title
	})
}

// WorksheetByIndex finds a tab by 0-based position.
func (s *Spreadsheet) WorksheetByIndex(ctx context.Context, index int) (backend.Worksheet, error) {
	return s.find(ctx, fmt.Sprintf("worksheet index %d", index), func(p *sheets.SheetProperties) bool {
		return p.Index == int64(index)
	})
}

// WorksheetByID finds a tab by sheet id.
func (s *Spreadsheet) WorksheetByID(ctx context.Context, id int64) (backend.Worksheet, error) {
	return s.find(ctx, fmt.Sprintf("worksheet id %d", id), func(p *sheets.SheetProperties) bool {
		return p.SheetId == id
	})
}

func (s *Spreadsheet) find(ctx context.Context, what string, match func(*sheets.SheetProperties) bool) (backend.Worksheet, error) {
	if err := s.fetch(ctx); err != nil {
		return nil, err
	}
	for _, p := range s.sheets {
		if match(p) {
			return s.worksheet(p), nil
		}
	}
	return nil, fmt.Errorf("%s: %w", what, backend.ErrNotFound)
}

// AddWorksheet appends a tab with the default grid size.
func (s *Spreadsheet) AddWorksheet(ctx context.Context, title string) (backend.Worksheet, error) {
	resp, err := s.batch(ctx, &sheets.Request{
		AddSheet: &sheets.AddSheetRequest{Properties: &sheets.SheetProperties{Title: title}},
	})
	if err != nil {
		return nil, err
	}
	return s.worksheet(resp.Replies[0].AddSheet.Properties), nil
}

// DeleteWorksheet removes ws.
func (s *Spreadsheet) DeleteWorksheet(ctx context.Context, ws backend.Worksheet) error {
	_, err := s.batch(ctx, &sheets.Request{
		DeleteSheet: &sheets.DeleteSheetRequest{SheetId: ws.ID(), ForceSendFields: []string{"SheetId"}},
	})
	return err
}

// Delete removes the document through Drive.
func (s *Spreadsheet) Delete(ctx context.Context) error {
	err := s.client.drive.Files.Delete(s.id).SupportsAllDrives(true).Context(ctx).Do()
	return wrap(err)
}

func (s *Spreadsheet) batch(ctx context.Context, requests ...*sheets.Request) (*sheets.BatchUpdateSpreadsheetResponse, error) {
	resp, err := s.client.sheets.Spreadsheets.BatchUpdate(s.id, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(ctx).Do()
	if err != nil {
		return nil, wrap(err)
	}
	return resp, nil
}

func (s *Spreadsheet) worksheet(p *sheets.SheetProperties) *Worksheet {
	ws := &Worksheet{book: s, id: p.SheetId, title: p.Title, index: int(p.Index)}
	if p.GridProperties != nil {
		ws.rows = int(p.GridProperties.RowCount)
		ws.cols = int(p.GridProperties.ColumnCount)
	}
	return ws
}

package gsheet

import (
	"context"
	"errors"
	"slices"

	"github.com/rs/zerolog"
	"github.com/ukaji3/gsheet-go/pkg/gsheet/backend"
	"github.com/ukaji3/gsheet-go/pkg/gsheet/models"
)

// Session tracks the active spreadsheet and worksheet. It is not safe for
// concurrent use.
type Session struct {
	client backend.Client
	folder string
	log    zerolog.Logger

	sheet backend.Spreadsheet
	ws    backend.Worksheet
}

// New creates a session over client.
func New(client backend.Client, opts Options) *Session {
	return &Session{
		client: client,
		folder: opts.FolderID,
		log:    opts.logger(),
	}
}

// Spreadsheet returns the active spreadsheet, or nil.
func (s *Session) Spreadsheet() backend.Spreadsheet { return s.sheet }

// Worksheet returns the active worksheet, or nil.
func (s *Session) Worksheet() backend.Worksheet { return s.ws }

// Logger returns the session logger.
func (s *Session) Logger() *zerolog.Logger { return &s.log }

func (s *Session) requireSpreadsheet() error {
	if s.sheet == nil {
		return ErrNoSpreadsheet
	}
	return nil
}

func (s *Session) requireWorksheet() error {
	if s.ws == nil {
		return ErrNoWorksheet
	}
	return nil
}

// ListSpreadsheets returns the titles of the spreadsheets in the folder.
func (s *Session) ListSpreadsheets(ctx context.Context) ([]string, error) {
	list, err := s.client.ListSpreadsheets(ctx, s.folder)
	if err != nil {
		return nil, err
	}
	titles := make([]string, len(list))
	for i, sp := range list {
		titles[i] = sp.Title
	}
	return titles, nil
}

// CreateSpreadsheet creates a spreadsheet in the folder and activates it
// together with its first worksheet.
func (s *Session) CreateSpreadsheet(ctx context.Context, title string) error {
	sheet, err := s.client.Create(ctx, title, s.folder)
	if err != nil {
		return err
	}
	s.log.Debug().Str("spreadsheet", title).Msg("Created spreadsheet")
	s.sheet, s.ws = sheet, nil
	return s.SetWorksheet(ctx, WorksheetByIndex(0))
}

// SetSpreadsheet activates a spreadsheet and its first worksheet.
func (s *Session) SetSpreadsheet(ctx context.Context, sel SpreadsheetSelector) error {
	sheet, err := s.openSpreadsheet(ctx, sel)
	if err != nil {
		return err
	}
	s.sheet, s.ws = sheet, nil
	return s.SetWorksheet(ctx, WorksheetByIndex(0))
}

// SetOrCreateSpreadsheet activates the spreadsheet titled title, creating it
// when it does not exist in the folder.
func (s *Session) SetOrCreateSpreadsheet(ctx context.Context, title string) error {
	titles, err := s.ListSpreadsheets(ctx)
	if err != nil {
		return err
	}
	if slices.Contains(titles, title) {
		return s.SetSpreadsheet(ctx, SpreadsheetSelector{Title: title})
	}
	return s.CreateSpreadsheet(ctx, title)
}

// DeleteSpreadsheet deletes the selected spreadsheet. The active selection is
// kept unless it was the deleted spreadsheet. With ignoreMissing a selector
// that matches nothing is not an error.
func (s *Session) DeleteSpreadsheet(ctx context.Context, sel SpreadsheetSelector, ignoreMissing bool) error {
	sheet, err := s.openSpreadsheet(ctx, sel)
	if err != nil {
		if ignoreMissing && errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}
	if err := sheet.Delete(ctx); err != nil {
		return err
	}
	s.log.Debug().Str("spreadsheet", sheet.Title()).Msg("Deleted spreadsheet")
	if s.sheet != nil && s.sheet.ID() == sheet.ID() {
		s.sheet, s.ws = nil, nil
	}
	return nil
}

func (s *Session) openSpreadsheet(ctx context.Context, sel SpreadsheetSelector) (backend.Spreadsheet, error) {
	var sheet backend.Spreadsheet
	var err error
	switch {
	case sel.Title != "":
		sheet, err = s.client.OpenByTitle(ctx, sel.Title)
	case sel.Key != "":
		sheet, err = s.client.OpenByKey(ctx, sel.Key)
	case sel.URL != "":
		sheet, err = s.client.OpenByURL(ctx, sel.URL)
	default:
		return nil, ErrSelectorRequired
	}
	if err != nil {
		s.log.Info().Err(err).Msgf("Spreadsheet not found by %s", sel)
		return nil, normalizeNotFound("spreadsheet", sel.String(), err)
	}
	return sheet, nil
}

// ListWorksheets describes the worksheets of the active spreadsheet.
func (s *Session) ListWorksheets(ctx context.Context) ([]models.Worksheet, error) {
	if err := s.requireSpreadsheet(); err != nil {
		return nil, err
	}
	list, err := s.sheet.Worksheets(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]models.Worksheet, len(list))
	for i, ws := range list {
		result[i] = backend.Info(ws)
	}
	return result, nil
}

// SetWorksheet activates a worksheet of the active spreadsheet.
func (s *Session) SetWorksheet(ctx context.Context, sel WorksheetSelector) error {
	if err := s.requireSpreadsheet(); err != nil {
		return err
	}
	ws, err := s.lookupWorksheet(ctx, sel)
	if err != nil {
		return err
	}
	s.ws = ws
	return nil
}

func (s *Session) lookupWorksheet(ctx context.Context, sel WorksheetSelector) (backend.Worksheet, error) {
	var ws backend.Worksheet
	var err error
	switch sel.kind {
	case selectTitle:
		ws, err = s.sheet.WorksheetByTitle(ctx, sel.title)
	case selectIndex:
		ws, err = s.sheet.WorksheetByIndex(ctx, sel.index)
	case selectID:
		ws, err = s.sheet.WorksheetByID(ctx, sel.id)
	default:
		return nil, ErrSelectorRequired
	}
	if err != nil {
		s.log.Info().Err(err).Msgf("Worksheet not found by %s", sel)
		return nil, normalizeNotFound("worksheet", sel.String(), err)
	}
	return ws, nil
}

// CreateWorksheet adds a worksheet to the active spreadsheet and activates it.
func (s *Session) CreateWorksheet(ctx context.Context, title string) error {
	if err := s.requireSpreadsheet(); err != nil {
		return err
	}
	ws, err := s.sheet.AddWorksheet(ctx, title)
	if err != nil {
		return err
	}
	s.log.Debug().Str("worksheet", title).Msg("Created worksheet")
	s.ws = ws
	return nil
}

// SetOrCreateWorksheet activates the worksheet titled title, creating it
// when missing.
func (s *Session) SetOrCreateWorksheet(ctx context.Context, title string) error {
	list, err := s.ListWorksheets(ctx)
	if err != nil {
		return err
	}
	for _, ws := range list {
		if ws.Title == title {
			return s.SetWorksheet(ctx, WorksheetByTitle(title))
		}
	}
	return s.CreateWorksheet(ctx, title)
}

// DeleteWorksheet deletes the worksheet with id from the active spreadsheet.
// If it is the active worksheet, no worksheet is active afterwards.
func (s *Session) DeleteWorksheet(ctx context.Context, id int64) error {
	if err := s.requireWorksheet(); err != nil {
		return err
	}
	target := s.ws
	if target.ID() != id {
		ws, err := s.lookupWorksheet(ctx, WorksheetByID(id))
		if err != nil {
			return err
		}
		target = ws
	}
	if err := s.sheet.DeleteWorksheet(ctx, target); err != nil {
		return normalizeNotFound("worksheet", WorksheetByID(id).String(), err)
	}
	s.log.Debug().Int64("worksheet_id", id).Msg("Deleted worksheet")
	if s.ws.ID() == id {
		s.ws = nil
	}
	return nil
}

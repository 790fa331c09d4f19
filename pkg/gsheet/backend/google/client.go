// Package google implements the gsheet backend over the Google Sheets v4 and
// Drive v3 APIs.
package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/ukaji3/gsheet-go/pkg/gsheet/backend"
	"github.com/ukaji3/gsheet-go/pkg/gsheet/models"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const spreadsheetMimeType = "application/vnd.google-apps.spreadsheet"

// Scopes are the OAuth scopes required by the client.
var Scopes = []string{sheets.SpreadsheetsScope, drive.DriveScope}

var keyFromURL = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9-_]+)`)

// Client talks to Sheets for grid data and Drive for document management.
type Client struct {
	sheets *sheets.Service
	drive  *drive.Service
}

// New builds both services from the given client options
// (e.g. option.WithCredentialsFile).
func New(ctx context.Context, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithScopes(Scopes...)}, opts...)
	sheetsSrv, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("building sheets service: %w", err)
	}
	driveSrv, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("building drive service: %w", err)
	}
	return NewWithServices(sheetsSrv, driveSrv), nil
}

// NewWithServices wraps already configured services.
func NewWithServices(sheetsSrv *sheets.Service, driveSrv *drive.Service) *Client {
	return &Client{sheets: sheetsSrv, drive: driveSrv}
}

// ListSpreadsheets lists the spreadsheets in folder, or all visible ones.
func (c *Client) ListSpreadsheets(ctx context.Context, folder string) ([]models.Spreadsheet, error) {
	q := fmt.Sprintf("mimeType = '%s' and trashed = false", spreadsheetMimeType)
	if folder != "" {
		q += fmt.Sprintf(" and '%s' in parents", escapeQuery(folder))
	}

	var result []models.Spreadsheet
	err := c.drive.Files.List().
		Q(q).
		Fields("nextPageToken, files(id, name, webViewLink)").
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Pages(ctx, func(page *drive.FileList) error {
			for _, f := range page.Files {
				result = append(result, models.Spreadsheet{Key: f.Id, Title: f.Name, URL: f.WebViewLink})
			}
			return nil
		})
	if err != nil {
		return nil, wrap(err)
	}
	return result, nil
}

// OpenByTitle opens the first spreadsheet named title.
func (c *Client) OpenByTitle(ctx context.Context, title string) (backend.Spreadsheet, error) {
	q := fmt.Sprintf("mimeType = '%s' and trashed = false and name = '%s'", spreadsheetMimeType, escapeQuery(title))
	list, err := c.drive.Files.List().
		Q(q).
		Fields("files(id)").
		PageSize(1).
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return nil, wrap(err)
	}
	if len(list.Files) == 0 {
		return nil, fmt.Errorf("spreadsheet %q: %w", title, backend.ErrNotFound)
	}
	return c.OpenByKey(ctx, list.Files[0].Id)
}

// OpenByKey fetches spreadsheet metadata by id.
func (c *Client) OpenByKey(ctx context.Context, key string) (backend.Spreadsheet, error) {
	s := &Spreadsheet{client: c, id: key}
	if err := s.fetch(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// OpenByURL extracts the id from a docs.google.com address.
func (c *Client) OpenByURL(ctx context.Context, url string) (backend.Spreadsheet, error) {
	m := keyFromURL.FindStringSubmatch(url)
	if m == nil {
		return nil, fmt.Errorf("spreadsheet %q: %w", url, backend.ErrNotFound)
	}
	return c.OpenByKey(ctx, m[1])
}

// Create makes an empty spreadsheet, inside folder when given.
func (c *Client) Create(ctx context.Context, title, folder string) (backend.Spreadsheet, error) {
	file := &drive.File{Name: title, MimeType: spreadsheetMimeType}
	if folder != "" {
		file.Parents = []string{folder}
	}
	created, err := c.drive.Files.Create(file).
		Fields("id").
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return nil, wrap(err)
	}
	return c.OpenByKey(ctx, created.Id)
}

// wrap maps API failures onto the backend sentinels.
func wrap(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound {
		return fmt.Errorf("%w: %w", backend.ErrNotFound, err)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %w", backend.ErrRemote, err)
}

func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}

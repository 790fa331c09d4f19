// Package xlsx implements the gsheet backend over a directory of .xlsx files.
//
// A directory plays the role of the remote drive: every workbook below it is a
// spreadsheet, subdirectories are folders. Each mutation is saved to disk
// immediately so a handle behaves like a remote document.
package xlsx

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ukaji3/gsheet-go/pkg/gsheet/backend"
	"github.com/ukaji3/gsheet-go/pkg/gsheet/models"
	"github.com/xuri/excelize/v2"
)

const (
	ext       = ".xlsx"
	urlPrefix = "file://"

	// DefaultRows and DefaultCols are the grid bounds of a fresh worksheet,
	// the same as a new Google Sheets tab.
	DefaultRows = 1000
	DefaultCols = 26
)

// Option configures a Client.
type Option func(*Client)

// WithGridSize sets the bounds assumed for worksheets smaller than rows x cols.
func WithGridSize(rows, cols int) Option {
	return func(c *Client) {
		c.rows, c.cols = rows, cols
	}
}

// Client opens workbooks below a root directory.
type Client struct {
	dir   string
	rows  int
	cols  int
	books map[string]*Spreadsheet
}

// New creates a Client rooted at dir. The directory is created if missing.
func New(dir string, opts ...Option) (*Client, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return nil, err
	}
	c := &Client{
		dir:   abs,
		rows:  DefaultRows,
		cols:  DefaultCols,
		books: make(map[string]*Spreadsheet),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Close closes every workbook opened through the client.
func (c *Client) Close() error {
	var errs []error
	for path, book := range c.books {
		errs = append(errs, book.f.Close())
		delete(c.books, path)
	}
	return errors.Join(errs...)
}

// ListSpreadsheets lists the workbooks directly inside folder.
func (c *Client) ListSpreadsheets(_ context.Context, folder string) ([]models.Spreadsheet, error) {
	entries, err := os.ReadDir(filepath.Join(c.dir, folder))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var result []models.Spreadsheet
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ext) {
			continue
		}
		path := filepath.Join(c.dir, folder, entry.Name())
		result = append(result, models.Spreadsheet{
			Key:   c.key(path),
			Title: strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())),
			URL:   urlPrefix + path,
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Title < result[j].Title })
	return result, nil
}

// OpenByTitle opens the first workbook named title found below the root.
func (c *Client) OpenByTitle(_ context.Context, title string) (backend.Spreadsheet, error) {
	var found string
	err := filepath.WalkDir(c.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == title+ext {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if found == "" {
		return nil, fmt.Errorf("spreadsheet %q: %w", title, backend.ErrNotFound)
	}
	return c.open(found)
}

// OpenByKey opens the workbook whose path relative to the root, without
// extension, equals key.
func (c *Client) OpenByKey(_ context.Context, key string) (backend.Spreadsheet, error) {
	return c.open(filepath.Join(c.dir, filepath.FromSlash(key)+ext))
}

// OpenByURL opens a file:// address.
func (c *Client) OpenByURL(_ context.Context, url string) (backend.Spreadsheet, error) {
	if !strings.HasPrefix(url, urlPrefix) {
		return nil, fmt.Errorf("spreadsheet %q: %w", url, backend.ErrNotFound)
	}
	return c.open(strings.TrimPrefix(url, urlPrefix))
}

// Create writes a new workbook inside folder.
func (c *Client) Create(_ context.Context, title, folder string) (backend.Spreadsheet, error) {
	dir := filepath.Join(c.dir, folder)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	path := filepath.Join(dir, title+ext)
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("spreadsheet %q already exists", title)
	}

	f := excelize.NewFile()
	if err := f.SaveAs(path); err != nil {
		f.Close()
		return nil, err
	}
	book := c.track(path, f)
	return book, nil
}

func (c *Client) open(path string) (*Spreadsheet, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if book, ok := c.books[abs]; ok {
		return book, nil
	}
	if _, err := os.Stat(abs); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("spreadsheet %q: %w", path, backend.ErrNotFound)
		}
		return nil, err
	}
	f, err := excelize.OpenFile(abs)
	if err != nil {
		return nil, err
	}
	return c.track(abs, f), nil
}

func (c *Client) track(path string, f *excelize.File) *Spreadsheet {
	book := &Spreadsheet{
		client: c,
		path:   path,
		f:      f,
		bounds: make(map[int64]*bounds),
	}
	c.books[path] = book
	return book
}

func (c *Client) key(path string) string {
	rel, err := filepath.Rel(c.dir, path)
	if err != nil {
		rel = path
	}
	return filepath.ToSlash(strings.TrimSuffix(rel, filepath.Ext(rel)))
}

package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/ukaji3/gsheet-go/pkg/gsheet"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List spreadsheet titles in the folder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSpreadsheet(cmd, "", func(ctx context.Context, s *gsheet.Session) error {
				titles, err := s.ListSpreadsheets(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd, titles)
			})
		},
	}
}

func newWorksheetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "worksheets <spreadsheet>",
		Short: "List the worksheets of a spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSpreadsheet(cmd, args[0], func(ctx context.Context, s *gsheet.Session) error {
				list, err := s.ListWorksheets(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd, list)
			})
		},
	}
}

func newRowCmd() *cobra.Command {
	return newLineCmd("row", "Print one row of a worksheet", (*gsheet.Session).GetRow)
}

func newColCmd() *cobra.Command {
	return newLineCmd("col", "Print one column of a worksheet", (*gsheet.Session).GetColumn)
}

func newLineCmd(use, short string, read func(*gsheet.Session, context.Context, int) ([]string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <spreadsheet> <worksheet> <index>",
		Short: short,
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[2])
			if err != nil || index < 1 {
				return fmt.Errorf("invalid index: %s", args[2])
			}
			return withSpreadsheet(cmd, args[0], func(ctx context.Context, s *gsheet.Session) error {
				if err := s.SetWorksheet(ctx, gsheet.WorksheetByTitle(args[1])); err != nil {
					return err
				}
				values, err := read(s, ctx, index)
				if err != nil {
					return err
				}
				return printJSON(cmd, values)
			})
		},
	}
}

func newImportCmd() *cobra.Command {
	var preserveBlanks bool
	cmd := &cobra.Command{
		Use:   "import <spreadsheet> <worksheet> <records.json>",
		Short: "Append a JSON array of objects as header-keyed rows",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readRecords(args[2])
			if err != nil {
				return err
			}
			return withSpreadsheet(cmd, "", func(ctx context.Context, s *gsheet.Session) error {
				if err := s.SetOrCreateSpreadsheet(ctx, args[0]); err != nil {
					return err
				}
				written, err := s.AddDataToWorksheetRows(ctx, args[1], data, preserveBlanks)
				if err != nil {
					return err
				}
				if written == "" {
					return fmt.Errorf("write to %s was rejected", args[1])
				}
				s.Logger().Info().Str("range", written).Int("records", len(data)).Msg("Imported records")
				return printJSON(cmd, written)
			})
		},
	}
	cmd.Flags().BoolVar(&preserveBlanks, "preserve-blanks", false, "Write empty strings as "+gsheet.BlankMarker)
	return cmd
}

func newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <spreadsheet> <Worksheet!A1:B2>",
		Short: "Resolve a cross-reference into nested JSON records",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, ok, err := gsheet.ParseReference(args[1]); err != nil || !ok {
				return fmt.Errorf("invalid reference: %s", args[1])
			}
			return withSpreadsheet(cmd, args[0], func(ctx context.Context, s *gsheet.Session) error {
				records, err := s.ResolveRange(ctx, args[1])
				if err != nil {
					return err
				}
				if records == nil {
					records = []gsheet.ResolvedRecord{}
				}
				return printJSON(cmd, records)
			})
		},
	}
}

func newFindCmd() *cobra.Command {
	var ignoreCase, partial bool
	cmd := &cobra.Command{
		Use:   "find <spreadsheet> <value>",
		Short: "Find cells across all worksheets",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []gsheet.FindOption
			if ignoreCase {
				opts = append(opts, gsheet.IgnoreCase())
			}
			if partial {
				opts = append(opts, gsheet.PartialMatch())
			}
			return withSpreadsheet(cmd, args[0], func(ctx context.Context, s *gsheet.Session) error {
				cells, err := s.FindCells(ctx, args[1], opts...)
				if err != nil {
					return err
				}
				return printJSON(cmd, cells)
			})
		},
	}
	cmd.Flags().BoolVar(&ignoreCase, "ignore-case", false, "Match regardless of case")
	cmd.Flags().BoolVar(&partial, "partial", false, "Match cells containing the value")
	return cmd
}

func newReplaceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "replace <spreadsheet> <find> <replacement>",
		Short: "Replace text inside cells across all worksheets",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSpreadsheet(cmd, args[0], func(ctx context.Context, s *gsheet.Session) error {
				return s.ReplaceValue(ctx, args[1], args[2])
			})
		},
	}
}

// readRecords decodes a JSON array of objects; null entries skip a row.
// Keys of each object are taken in sorted order.
func readRecords(path string) ([]gsheet.Record, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var items []map[string]any
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%s: expected a JSON array of objects: %w", path, err)
	}
	records := make([]gsheet.Record, len(items))
	for i, item := range items {
		records[i] = gsheet.RecordFromMap(item)
	}
	return records, nil
}

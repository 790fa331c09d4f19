// Package main provides the CLI entry point for gsheet-go.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ukaji3/gsheet-go/internal/config"
	"github.com/ukaji3/gsheet-go/internal/logging"
	"github.com/ukaji3/gsheet-go/pkg/gsheet"
	"github.com/ukaji3/gsheet-go/pkg/gsheet/backend"
	"github.com/ukaji3/gsheet-go/pkg/gsheet/backend/google"
	"github.com/ukaji3/gsheet-go/pkg/gsheet/backend/xlsx"
	"github.com/ukaji3/gsheet-go/pkg/gsheet/output"
	"google.golang.org/api/option"
)

var (
	backendName     string
	credentialsFile string
	folderID        string
	xlsxDir         string
	logLevel        string
	pretty          bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	rootCmd := &cobra.Command{
		Use:   "gsheet",
		Short: "Work with spreadsheets from the command line",
		Long: `gsheet reads and writes spreadsheets on Google Sheets or in a local
directory of .xlsx files, imports header-keyed JSON records and resolves
Worksheet!A1:B2 cross-references into JSON.`,
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&backendName, "backend", cfg.Backend, "Backend: google or xlsx")
	flags.StringVar(&credentialsFile, "credentials", cfg.CredentialsFile, "Google credentials JSON file")
	flags.StringVar(&folderID, "folder", cfg.FolderID, "Folder scoping list and create")
	flags.StringVar(&xlsxDir, "dir", cfg.XLSXDir, "Root directory for the xlsx backend")
	flags.StringVar(&logLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	flags.BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")

	rootCmd.AddCommand(
		newListCmd(),
		newWorksheetsCmd(),
		newRowCmd(),
		newColCmd(),
		newImportCmd(),
		newResolveCmd(),
		newFindCmd(),
		newReplaceCmd(),
	)
	return rootCmd
}

// newSession builds the backend selected by the flags.
func newSession(ctx context.Context, cmd *cobra.Command) (*gsheet.Session, func(), error) {
	cfg := &config.Config{
		Backend:         backendName,
		CredentialsFile: credentialsFile,
		FolderID:        folderID,
		XLSXDir:         xlsxDir,
		LogLevel:        logLevel,
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	log := logging.New(cfg.LogLevel, cmd.ErrOrStderr())
	opts := gsheet.Options{FolderID: cfg.FolderID, Logger: &log}

	var client backend.Client
	cleanup := func() {}
	switch cfg.Backend {
	case config.BackendXLSX:
		c, err := xlsx.New(cfg.XLSXDir)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open %s: %w", cfg.XLSXDir, err)
		}
		cleanup = func() {
			if err := c.Close(); err != nil {
				log.Warn().Err(err).Msg("Closing workbooks failed")
			}
		}
		client = c
	default:
		var clientOpts []option.ClientOption
		if cfg.CredentialsFile != "" {
			clientOpts = append(clientOpts, option.WithCredentialsFile(cfg.CredentialsFile))
		}
		c, err := google.New(ctx, clientOpts...)
		if err != nil {
			return nil, nil, err
		}
		client = c
	}
	log.Debug().Str("backend", cfg.Backend).Msg("Session ready")
	return gsheet.New(client, opts), cleanup, nil
}

// withSpreadsheet opens a session with title active and runs fn.
func withSpreadsheet(cmd *cobra.Command, title string, fn func(ctx context.Context, s *gsheet.Session) error) error {
	ctx := cmd.Context()
	s, cleanup, err := newSession(ctx, cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	if title != "" {
		if err := s.SetSpreadsheet(ctx, gsheet.SpreadsheetSelector{Title: title}); err != nil {
			return err
		}
	}
	return fn(ctx, s)
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := output.ToJSON(v, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

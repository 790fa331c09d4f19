// Package config loads CLI configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Backend names.
const (
	BackendGoogle = "google"
	BackendXLSX   = "xlsx"
)

// Config holds the settings shared by every command.
type Config struct {
	// Backend is "google" or "xlsx".
	Backend string
	// CredentialsFile is a service account or OAuth client JSON for Google.
	CredentialsFile string
	// FolderID scopes listing and creation of spreadsheets.
	FolderID string
	// XLSXDir is the root directory of the xlsx backend.
	XLSXDir string
	// LogLevel is a zerolog level name.
	LogLevel string
}

// Load reads a .env file when present, then the GSHEET_* variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := &Config{
		Backend:         getEnvOrDefault("GSHEET_BACKEND", BackendGoogle),
		CredentialsFile: getEnvOrDefault("GSHEET_CREDENTIALS_FILE", os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")),
		FolderID:        getEnvOrDefault("GSHEET_FOLDER_ID", ""),
		XLSXDir:         getEnvOrDefault("GSHEET_XLSX_DIR", "."),
		LogLevel:        getEnvOrDefault("GSHEET_LOG_LEVEL", "info"),
	}
	return cfg, nil
}

// Validate checks the combination of settings.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendGoogle:
		return nil
	case BackendXLSX:
		if c.XLSXDir == "" {
			return errors.New("GSHEET_XLSX_DIR is required for the xlsx backend")
		}
		return nil
	default:
		return fmt.Errorf("invalid backend: %s (must be %s or %s)", c.Backend, BackendGoogle, BackendXLSX)
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

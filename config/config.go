// Package config loads the directory's settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"

	sheetstore "github.com/ideamans/go-sheetstore"
	"github.com/ideamans/go-sheetstore/adapters/excel"
	"github.com/ideamans/go-sheetstore/adapters/googlesheets"
)

// Backend names the storage behind the directory.
type Backend string

const (
	BackendGoogleSheets Backend = "googlesheets"
	BackendExcel        Backend = "excel"
)

// Config is the environment-driven configuration.
type Config struct {
	Backend Backend `env:"SHEETSTORE_BACKEND" envDefault:"googlesheets"`

	// Google Sheets
	SpreadsheetID   string `env:"SHEETSTORE_SPREADSHEET_ID"`
	CredentialsJSON string `env:"SHEETSTORE_CREDENTIALS_JSON"`
	CredentialsFile string `env:"GOOGLE_APPLICATION_CREDENTIALS"`

	// Excel
	ExcelPath string `env:"SHEETSTORE_EXCEL_PATH"`

	SchemaVersion    string `env:"SHEETSTORE_SCHEMA_VERSION" envDefault:"v1"`
	ToolsSheet       string `env:"SHEETSTORE_TOOLS_SHEET" envDefault:"Tools"`
	ReviewsSheet     string `env:"SHEETSTORE_REVIEWS_SHEET" envDefault:"Reviews"`
	ExamplesSheet    string `env:"SHEETSTORE_EXAMPLES_SHEET" envDefault:"Examples"`
	CollectionsSheet string `env:"SHEETSTORE_COLLECTIONS_SHEET" envDefault:"Collections"`

	LogLevel slog.Level `env:"SHEETSTORE_LOG_LEVEL" envDefault:"INFO"`
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, &sheetstore.ConfigurationError{Setting: "environment", Err: fmt.Errorf("parse env: %w", err)}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first missing or malformed setting for the chosen
// backend.
func (c *Config) Validate() error {
	c.Backend = Backend(strings.ToLower(strings.TrimSpace(string(c.Backend))))
	switch c.Backend {
	case BackendGoogleSheets:
		gs := c.GoogleSheets()
		if err := gs.Validate(); err != nil {
			return err
		}
		if len(gs.CredentialsJSON) == 0 && gs.CredentialsFile == "" {
			return &sheetstore.ConfigurationError{Setting: "credentials"}
		}
	case BackendExcel:
		xc := c.Excel()
		if err := xc.Validate(); err != nil {
			return err
		}
	default:
		return &sheetstore.ConfigurationError{Setting: "backend", Err: fmt.Errorf("unknown backend %q", c.Backend)}
	}

	if _, err := c.Version(); err != nil {
		return err
	}

	sheets := []struct{ setting, name string }{
		{"tools sheet", c.ToolsSheet},
		{"reviews sheet", c.ReviewsSheet},
		{"examples sheet", c.ExamplesSheet},
		{"collections sheet", c.CollectionsSheet},
	}
	for _, s := range sheets {
		if strings.TrimSpace(s.name) == "" {
			return &sheetstore.ConfigurationError{Setting: s.setting}
		}
	}
	return nil
}

// Version returns the Tool layout to use.
func (c *Config) Version() (sheetstore.SchemaVersion, error) {
	return sheetstore.ParseSchemaVersion(c.SchemaVersion)
}

// GoogleSheets returns the adapter configuration for the Google backend.
func (c *Config) GoogleSheets() googlesheets.Config {
	gs := googlesheets.Config{
		SpreadsheetID:   c.SpreadsheetID,
		CredentialsFile: c.CredentialsFile,
	}
	if c.CredentialsJSON != "" {
		gs.CredentialsJSON = []byte(c.CredentialsJSON)
	}
	return gs
}

// Excel returns the adapter configuration for the workbook backend.
func (c *Config) Excel() excel.Config {
	return excel.Config{FilePath: c.ExcelPath}
}

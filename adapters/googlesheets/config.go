package googlesheets

import (
	sheetstore "github.com/ideamans/go-sheetstore"
)

// Config represents configuration specific to Google Sheets adapter
type Config struct {
	SpreadsheetID string

	// Service account credentials. CredentialsJSON takes precedence over
	// CredentialsFile when both are set.
	CredentialsJSON []byte
	CredentialsFile string
}

// Validate checks the settings every constructor needs.
func (c Config) Validate() error {
	if c.SpreadsheetID == "" {
		return &sheetstore.ConfigurationError{Setting: "spreadsheet id"}
	}
	return nil
}

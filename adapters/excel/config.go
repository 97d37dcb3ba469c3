package excel

import sheetstore "github.com/ideamans/go-sheetstore"

// Config holds configuration for Excel adapter
type Config struct {
	FilePath string // Path to the workbook; created on first append
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.FilePath == "" {
		return &sheetstore.ConfigurationError{Setting: "excel file path", Err: ErrMissingFilePath}
	}
	return nil
}

package googlesheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	sheetstore "github.com/ideamans/go-sheetstore"
)

// Adapter implements sheetstore.Adapter for Google Sheets
type Adapter struct {
	service       *sheets.Service
	spreadsheetID string
}

var _ sheetstore.Adapter = (*Adapter)(nil)

// NewAdapter creates a new Google Sheets adapter with provided options
func NewAdapter(ctx context.Context, config Config, opts ...option.ClientOption) (*Adapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, &sheetstore.ConfigurationError{Setting: "sheets client", Err: fmt.Errorf("failed to create sheets service: %w", err)}
	}

	return &Adapter{
		service:       service,
		spreadsheetID: config.SpreadsheetID,
	}, nil
}

// ReadRange retrieves every row of rangeSpec. Values are requested
// unformatted so numeric cells arrive as numbers; dates stay strings.
func (a *Adapter) ReadRange(ctx context.Context, rangeSpec string) ([]sheetstore.Row, error) {
	resp, err := a.service.Spreadsheets.Values.Get(a.spreadsheetID, rangeSpec).
		ValueRenderOption("UNFORMATTED_VALUE").
		DateTimeRenderOption("FORMATTED_STRING").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get sheet data: %w", err)
	}

	rows := make([]sheetstore.Row, len(resp.Values))
	for i, values := range resp.Values {
		rows[i] = sheetstore.RowOf(values)
	}
	return rows, nil
}

// AppendRow adds row after the table found in rangeSpec. Values are
// written raw, so numbers are stored as their decimal text.
func (a *Adapter) AppendRow(ctx context.Context, rangeSpec string, row sheetstore.Row) error {
	vr := &sheets.ValueRange{
		Values: [][]interface{}{row.Values()},
	}
	_, err := a.service.Spreadsheets.Values.Append(a.spreadsheetID, rangeSpec, vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append row: %w", err)
	}
	return nil
}

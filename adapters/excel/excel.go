package excel

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/xuri/excelize/v2"

	sheetstore "github.com/ideamans/go-sheetstore"
)

// Adapter implements sheetstore.Adapter on a local .xlsx workbook. Each
// table lives on its own worksheet. Access is serialized within the
// process; concurrent writers in other processes are not coordinated.
type Adapter struct {
	config *Config
	mu     sync.RWMutex
}

var _ sheetstore.Adapter = (*Adapter)(nil)

// New creates a new Excel adapter with the given configuration
func New(config *Config) (*Adapter, error) {
	if config == nil {
		return nil, &sheetstore.ConfigurationError{Setting: "excel config"}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Create a copy of config to avoid external modifications
	configCopy := *config

	return &Adapter{
		config: &configCopy,
	}, nil
}

// ReadRange returns every row of the worksheet named in rangeSpec, cut to
// the range's columns. A missing workbook or worksheet reads as empty.
func (a *Adapter) ReadRange(ctx context.Context, rangeSpec string) ([]sheetstore.Row, error) {
	sheet, first, last, err := sheetstore.ParseA1Range(rangeSpec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	// Check if context is cancelled
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	f, err := excelize.OpenFile(a.config.FilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []sheetstore.Row{}, nil
		}
		return nil, fmt.Errorf("%w: failed to open Excel file: %v", ErrInvalidFileFormat, err)
	}
	defer f.Close()

	sheetIndex, err := f.GetSheetIndex(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get sheet index: %w", err)
	}
	if sheetIndex == -1 {
		return []sheetstore.Row{}, nil
	}

	values, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}

	rows := make([]sheetstore.Row, len(values))
	for i, cells := range values {
		rows[i] = sliceColumns(cells, first, last)
	}
	return rows, nil
}

// AppendRow writes row below the last used row of the worksheet, starting
// at the range's first column. The workbook and worksheet are created when
// missing.
func (a *Adapter) AppendRow(ctx context.Context, rangeSpec string, row sheetstore.Row) error {
	sheet, first, _, err := sheetstore.ParseA1Range(rangeSpec)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	// Check if context is cancelled
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(a.config.FilePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	var f *excelize.File
	created := false
	if _, err := os.Stat(a.config.FilePath); err == nil {
		f, err = excelize.OpenFile(a.config.FilePath)
		if err != nil {
			return fmt.Errorf("%w: failed to open Excel file: %v", ErrInvalidFileFormat, err)
		}
	} else {
		f = excelize.NewFile()
		created = true
	}
	defer f.Close()

	sheetIndex, err := f.GetSheetIndex(sheet)
	if err != nil {
		return fmt.Errorf("failed to get sheet index: %w", err)
	}
	if sheetIndex == -1 {
		index, err := f.NewSheet(sheet)
		if err != nil {
			return fmt.Errorf("failed to create sheet: %w", err)
		}
		if created {
			// Drop the placeholder sheet of a brand new workbook
			if defaultSheet := f.GetSheetName(0); defaultSheet != sheet {
				f.SetActiveSheet(index)
				_ = f.DeleteSheet(defaultSheet)
			}
		}
	}

	existing, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("failed to get rows: %w", err)
	}

	cell := sheetstore.ColumnName(first) + strconv.Itoa(len(existing)+1)
	values := cellValues(row)
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row at %s: %w", cell, err)
	}

	if err := f.SaveAs(a.config.FilePath); err != nil {
		return fmt.Errorf("failed to save Excel file: %w", err)
	}

	return nil
}

// sliceColumns keeps columns first..last (1-based) of a worksheet row.
func sliceColumns(cells []string, first, last int) sheetstore.Row {
	if len(cells) < first {
		return sheetstore.Row{}
	}
	if len(cells) > last {
		cells = cells[:last]
	}
	row := make(sheetstore.Row, 0, len(cells)-first+1)
	for _, value := range cells[first-1:] {
		row = append(row, sheetstore.Text(value))
	}
	return row
}

// cellValues converts a row for excelize. Numbers are written as numeric
// cells so the workbook stays usable by hand; everything else is text.
func cellValues(row sheetstore.Row) []interface{} {
	values := make([]interface{}, len(row))
	for i, c := range row {
		if c.Kind() == sheetstore.CellNumber {
			f, _ := c.Float()
			values[i] = f
			continue
		}
		values[i] = c.Value()
	}
	return values
}

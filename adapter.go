package sheetstore

import "context"

// Adapter is the tabular backend a Store reads from and appends to.
// rangeSpec is an A1 range such as "Tools!A:K".
type Adapter interface {
	// ReadRange returns every row inside the range, in stored order.
	// Trailing empty cells may be omitted by the backend.
	ReadRange(ctx context.Context, rangeSpec string) ([]Row, error)

	// AppendRow writes row after the last non-empty row of the range.
	AppendRow(ctx context.Context, rangeSpec string, row Row) error
}

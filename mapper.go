package sheetstore

import "strings"

// IsHeader reports whether the row's first cell is one of the layout's
// header labels.
func (s *Schema[T]) IsHeader(row Row) bool {
	first := strings.TrimSpace(row.At(0).String())
	if first == "" {
		return false
	}
	for _, label := range s.HeaderLabels {
		if strings.EqualFold(first, label) {
			return true
		}
	}
	return false
}

// Decode maps a row onto a new record. Missing trailing cells decode as
// absent; cells beyond the mapped indices are ignored. It reports false
// when the result fails Complete.
func (s *Schema[T]) Decode(row Row) (*T, bool) {
	e := new(T)
	for _, c := range s.Columns {
		c.decode(e, row.At(c.Index))
	}
	if s.Normalize != nil {
		s.Normalize(e)
	}
	if !s.Complete(e) {
		return nil, false
	}
	return e, true
}

// Encode renders a record as a full-width row. Unmapped columns stay empty.
func (s *Schema[T]) Encode(e *T) Row {
	row := make(Row, s.Width)
	for _, c := range s.Columns {
		row[c.Index] = c.encode(e)
	}
	return row
}

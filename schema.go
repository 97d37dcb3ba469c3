package sheetstore

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SchemaVersion selects a fixed column layout. It is chosen once at
// startup and never inferred from the shape of stored rows.
type SchemaVersion string

const (
	SchemaV1 SchemaVersion = "v1"
	SchemaV2 SchemaVersion = "v2"
)

// ParseSchemaVersion accepts "v1", "1", "v2" or "2".
func ParseSchemaVersion(s string) (SchemaVersion, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "v1", "1":
		return SchemaV1, nil
	case "v2", "2":
		return SchemaV2, nil
	}
	return "", &ConfigurationError{Setting: "schema version", Err: fmt.Errorf("unknown version %q", s)}
}

// TimeLayout is the ISO-8601 form used for creation timestamps:
// millisecond precision in UTC, e.g. 2024-05-06T07:08:09.123Z.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatTime renders t in TimeLayout after converting it to UTC.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// Column binds one cell index to one field of T.
type Column[T any] struct {
	Index int
	Field string

	decode func(*T, Cell)
	encode func(*T) Cell
	values func(*T) []string
}

// TextColumn maps a string field. Empty or missing cells decode to "".
func TextColumn[T any](index int, field string, get func(*T) string, set func(*T, string)) Column[T] {
	return Column[T]{
		Index:  index,
		Field:  field,
		decode: func(e *T, c Cell) { set(e, c.String()) },
		encode: func(e *T) Cell { return Text(get(e)) },
		values: func(e *T) []string { return []string{get(e)} },
	}
}

// NumberColumn maps an optional number. get reports whether the value is
// present; set is only called for cells that coerce to a finite number.
func NumberColumn[T any](index int, field string, get func(*T) (float64, bool), set func(*T, float64)) Column[T] {
	return Column[T]{
		Index: index,
		Field: field,
		decode: func(e *T, c Cell) {
			if f, ok := c.Float(); ok {
				set(e, f)
			}
		},
		encode: func(e *T) Cell {
			if f, ok := get(e); ok {
				return Number(f)
			}
			return Cell{}
		},
		values: func(e *T) []string {
			if f, ok := get(e); ok {
				return []string{strconv.FormatFloat(f, 'f', -1, 64)}
			}
			return nil
		},
	}
}

// ListColumn maps a sequence of short strings stored comma-joined in one
// cell. Values containing a comma do not survive a round trip.
func ListColumn[T any](index int, field string, get func(*T) []string, set func(*T, []string)) Column[T] {
	return Column[T]{
		Index:  index,
		Field:  field,
		decode: func(e *T, c Cell) { set(e, SplitList(c.String())) },
		encode: func(e *T) Cell { return Text(JoinList(get(e))) },
		values: func(e *T) []string { return get(e) },
	}
}

// SplitList splits a comma-joined cell, trimming whitespace and dropping
// empty segments. It returns nil when nothing remains.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// JoinList is the inverse of SplitList for comma-free values.
func JoinList(values []string) string {
	return strings.Join(values, ",")
}

// Schema is the column map for one table layout.
type Schema[T any] struct {
	Sheet   string
	Version SchemaVersion
	Width   int

	// HeaderLabels are compared case-insensitively against the first cell
	// of each row to recognise header rows.
	HeaderLabels []string
	Columns      []Column[T]

	// ID returns the record identity.
	ID func(*T) string
	// Complete reports whether a decoded record is valid. Rows that fail
	// are dropped on read.
	Complete func(*T) bool
	// Normalize fills defaults after decoding and before encoding.
	Normalize func(*T)
	// Stamp assigns identity and creation time on append.
	Stamp func(e *T, id string, now time.Time)
}

// Range is the A1 range covering the full width of the layout.
func (s *Schema[T]) Range() string {
	return A1Range(s.Sheet, s.Width)
}

func (s *Schema[T]) column(field string) (Column[T], bool) {
	for _, c := range s.Columns {
		if c.Field == field {
			return c, true
		}
	}
	return Column[T]{}, false
}

// Check verifies the layout is usable: a sheet name, every column inside
// the width, no index or field mapped twice, and the required hooks set.
func (s *Schema[T]) Check() error {
	if s.Sheet == "" {
		return &ConfigurationError{Setting: "sheet name"}
	}
	if s.Width <= 0 {
		return &ConfigurationError{Setting: "schema width", Err: fmt.Errorf("must be positive, got %d", s.Width)}
	}
	if s.ID == nil || s.Complete == nil || s.Stamp == nil {
		return &ConfigurationError{Setting: "schema " + s.Sheet, Err: fmt.Errorf("ID, Complete and Stamp hooks are required")}
	}
	indices := make(map[int]string, len(s.Columns))
	fields := make(map[string]bool, len(s.Columns))
	for _, c := range s.Columns {
		if c.Index < 0 || c.Index >= s.Width {
			return &ConfigurationError{Setting: "schema " + s.Sheet, Err: fmt.Errorf("column %q index %d outside width %d", c.Field, c.Index, s.Width)}
		}
		if prev, ok := indices[c.Index]; ok {
			return &ConfigurationError{Setting: "schema " + s.Sheet, Err: fmt.Errorf("columns %q and %q share index %d", prev, c.Field, c.Index)}
		}
		if fields[c.Field] {
			return &ConfigurationError{Setting: "schema " + s.Sheet, Err: fmt.Errorf("field %q mapped twice", c.Field)}
		}
		indices[c.Index] = c.Field
		fields[c.Field] = true
	}
	return nil
}

package sheetstore

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// CellKind tags the variant held by a Cell.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellText
	CellNumber
	CellBool
)

func (k CellKind) String() string {
	switch k {
	case CellText:
		return "text"
	case CellNumber:
		return "number"
	case CellBool:
		return "bool"
	default:
		return "empty"
	}
}

// Cell is a single scalar value read from or written to a row.
// The zero value is an empty cell.
type Cell struct {
	kind CellKind
	text string
	num  float64
	flag bool
}

// Text returns a text cell. An empty string yields an empty cell.
func Text(s string) Cell {
	if s == "" {
		return Cell{}
	}
	return Cell{kind: CellText, text: s}
}

// Number returns a numeric cell. NaN and infinities yield an empty cell.
func Number(f float64) Cell {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Cell{}
	}
	return Cell{kind: CellNumber, num: f}
}

// Bool returns a boolean cell.
func Bool(b bool) Cell {
	return Cell{kind: CellBool, flag: b}
}

// CellOf converts a raw backend value into a Cell.
func CellOf(v interface{}) Cell {
	switch val := v.(type) {
	case nil:
		return Cell{}
	case Cell:
		return val
	case string:
		return Text(val)
	case float64:
		return Number(val)
	case float32:
		return Number(float64(val))
	case int:
		return Number(float64(val))
	case int32:
		return Number(float64(val))
	case int64:
		return Number(float64(val))
	case uint:
		return Number(float64(val))
	case uint32:
		return Number(float64(val))
	case uint64:
		return Number(float64(val))
	case bool:
		return Bool(val)
	default:
		return Text(fmt.Sprintf("%v", val))
	}
}

func (c Cell) Kind() CellKind { return c.kind }

func (c Cell) IsEmpty() bool { return c.kind == CellEmpty }

// String renders the cell as text. Empty cells render as "".
func (c Cell) String() string {
	switch c.kind {
	case CellText:
		return c.text
	case CellNumber:
		return strconv.FormatFloat(c.num, 'f', -1, 64)
	case CellBool:
		if c.flag {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}

// Float coerces the cell to a number. Text is parsed after trimming;
// anything that does not parse to a finite number reports false.
func (c Cell) Float() (float64, bool) {
	switch c.kind {
	case CellNumber:
		return c.num, true
	case CellText:
		f, err := strconv.ParseFloat(strings.TrimSpace(c.text), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Value returns the representation written to the backend. Numbers are
// written as their shortest decimal string.
func (c Cell) Value() interface{} {
	switch c.kind {
	case CellText:
		return c.text
	case CellNumber:
		return strconv.FormatFloat(c.num, 'f', -1, 64)
	case CellBool:
		if c.flag {
			return "TRUE"
		}
		return "FALSE"
	default:
		return ""
	}
}

// Row is an ordered sequence of cells.
type Row []Cell

// RowOf converts raw backend values into a Row.
func RowOf(values []interface{}) Row {
	row := make(Row, len(values))
	for i, v := range values {
		row[i] = CellOf(v)
	}
	return row
}

// At returns the cell at index i, or an empty cell when the row is shorter.
func (r Row) At(i int) Cell {
	if i < 0 || i >= len(r) {
		return Cell{}
	}
	return r[i]
}

// IsBlank reports whether every cell is empty or whitespace.
func (r Row) IsBlank() bool {
	for _, c := range r {
		if strings.TrimSpace(c.String()) != "" {
			return false
		}
	}
	return true
}

// Values returns the row in backend write form.
func (r Row) Values() []interface{} {
	values := make([]interface{}, len(r))
	for i, c := range r {
		values[i] = c.Value()
	}
	return values
}

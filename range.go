package sheetstore

import (
	"fmt"
	"strings"
)

// ColumnName converts a 1-based column number to its letter form
// (1 -> A, 26 -> Z, 27 -> AA).
func ColumnName(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}

// ColumnNumber converts column letters to a 1-based column number.
func ColumnNumber(name string) (int, error) {
	if name == "" {
		return 0, fmt.Errorf("empty column name")
	}
	n := 0
	for _, r := range strings.ToUpper(name) {
		if r < 'A' || r > 'Z' {
			return 0, fmt.Errorf("invalid column name %q", name)
		}
		n = n*26 + int(r-'A'+1)
	}
	return n, nil
}

// A1Range builds the range covering the first width columns of sheet,
// e.g. A1Range("Tools", 11) == "Tools!A:K".
func A1Range(sheet string, width int) string {
	return fmt.Sprintf("%s!A:%s", quoteSheet(sheet), ColumnName(width))
}

// ParseA1Range splits a column range like "Tools!A:K" or "'My Tools'!B:D"
// into its sheet name and 1-based first and last column numbers.
func ParseA1Range(rangeSpec string) (sheet string, first, last int, err error) {
	i := strings.LastIndex(rangeSpec, "!")
	if i <= 0 {
		return "", 0, 0, fmt.Errorf("range %q has no sheet name", rangeSpec)
	}
	sheet = unquoteSheet(rangeSpec[:i])
	cols := strings.Split(rangeSpec[i+1:], ":")
	if len(cols) != 2 {
		return "", 0, 0, fmt.Errorf("range %q is not a column span", rangeSpec)
	}
	if first, err = ColumnNumber(cols[0]); err != nil {
		return "", 0, 0, fmt.Errorf("range %q: %w", rangeSpec, err)
	}
	if last, err = ColumnNumber(cols[1]); err != nil {
		return "", 0, 0, fmt.Errorf("range %q: %w", rangeSpec, err)
	}
	if last < first {
		return "", 0, 0, fmt.Errorf("range %q ends before it starts", rangeSpec)
	}
	return sheet, first, last, nil
}

func quoteSheet(sheet string) string {
	for _, r := range sheet {
		if !(r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '_') {
			return "'" + strings.ReplaceAll(sheet, "'", "''") + "'"
		}
	}
	return sheet
}

func unquoteSheet(s string) string {
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		return strings.ReplaceAll(s[1:len(s)-1], "''", "'")
	}
	return s
}

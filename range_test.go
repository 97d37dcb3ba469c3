package sheetstore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ideamans/go-sheetstore"
)

func TestColumnName(t *testing.T) {
	tests := map[int]string{1: "A", 11: "K", 22: "V", 26: "Z", 27: "AA", 52: "AZ", 702: "ZZ", 703: "AAA"}
	for n, want := range tests {
		assert.Equal(t, want, sheetstore.ColumnName(n), "column %d", n)

		got, err := sheetstore.ColumnNumber(want)
		require.NoError(t, err)
		assert.Equal(t, n, got)
	}

	_, err := sheetstore.ColumnNumber("A1")
	assert.Error(t, err)
	_, err = sheetstore.ColumnNumber("")
	assert.Error(t, err)
}

func TestA1Range(t *testing.T) {
	assert.Equal(t, "Tools!A:K", sheetstore.A1Range("Tools", 11))
	assert.Equal(t, "Tools!A:V", sheetstore.A1Range("Tools", 22))
	assert.Equal(t, "'My Tools'!A:F", sheetstore.A1Range("My Tools", 6))
	assert.Equal(t, "'Bob''s'!A:A", sheetstore.A1Range("Bob's", 1))
}

func TestParseA1Range(t *testing.T) {
	tests := []struct {
		name      string
		rangeSpec string
		wantSheet string
		wantFirst int
		wantLast  int
		wantErr   bool
	}{
		{name: "plain", rangeSpec: "Tools!A:K", wantSheet: "Tools", wantFirst: 1, wantLast: 11},
		{name: "quoted", rangeSpec: "'My Tools'!B:D", wantSheet: "My Tools", wantFirst: 2, wantLast: 4},
		{name: "escaped quote", rangeSpec: "'Bob''s'!A:A", wantSheet: "Bob's", wantFirst: 1, wantLast: 1},
		{name: "lower case columns", rangeSpec: "Tools!a:v", wantSheet: "Tools", wantFirst: 1, wantLast: 22},
		{name: "no sheet", rangeSpec: "A:K", wantErr: true},
		{name: "cell range", rangeSpec: "Tools!A1", wantErr: true},
		{name: "reversed", rangeSpec: "Tools!K:A", wantErr: true},
		{name: "bad column", rangeSpec: "Tools!A:K1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet, first, last, err := sheetstore.ParseA1Range(tt.rangeSpec)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSheet, sheet)
			assert.Equal(t, tt.wantFirst, first)
			assert.Equal(t, tt.wantLast, last)
		})
	}
}

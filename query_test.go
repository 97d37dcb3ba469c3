package sheetstore

import (
	"errors"
	"strings"
	"testing"
)

func TestMatches(t *testing.T) {
	schema := toolSchemaV2("")
	rating := 4.0
	tool := &Tool{
		ID:            "2024-05-06T07:08:09.123Z",
		Name:          "Quizlet Live",
		UploadedBy:    "user_1",
		GeneralRating: &rating,
		Tags:          []string{"flashcards", "Game Based"},
	}

	tests := []struct {
		name  string
		conds []Condition
		want  bool
	}{
		{
			name: "no conditions",
			want: true,
		},
		{
			name:  "== match",
			conds: []Condition{Equal("uploadedBy", "user_1")},
			want:  true,
		},
		{
			name:  "== is case sensitive",
			conds: []Condition{Equal("uploadedBy", "USER_1")},
			want:  false,
		},
		{
			name:  "contains ignores case",
			conds: []Condition{Contains("name", "live")},
			want:  true,
		},
		{
			name:  "contains no match",
			conds: []Condition{Contains("name", "kahoot")},
			want:  false,
		},
		{
			name:  "list field matches any element",
			conds: []Condition{Equal("tags", "Game Based")},
			want:  true,
		},
		{
			name:  "list field contains",
			conds: []Condition{Contains("tags", "game")},
			want:  true,
		},
		{
			name:  "list field no element matches",
			conds: []Condition{Equal("tags", "quiz")},
			want:  false,
		},
		{
			name:  "contains empty value matches empty field",
			conds: []Condition{Contains("logo", "")},
			want:  true,
		},
		{
			name:  "== on empty field",
			conds: []Condition{Equal("logo", "x")},
			want:  false,
		},
		{
			name:  "multiple conditions (AND)",
			conds: []Condition{Contains("name", "quizlet"), Equal("tags", "flashcards")},
			want:  true,
		},
		{
			name:  "multiple conditions, one fails",
			conds: []Condition{Contains("name", "quizlet"), Equal("uploadedBy", "user_2")},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := validateConditions(schema, tt.conds); err != nil {
				t.Fatalf("validateConditions() error = %v", err)
			}
			if got := matches(schema, tool, tt.conds); got != tt.want {
				t.Errorf("matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatches_NumberField(t *testing.T) {
	schema := toolSchemaV1("")
	rating := 4.5
	tool := &Tool{ID: "t1", Name: "Quizlet", GeneralRating: &rating}

	if !matches(schema, tool, []Condition{Equal("generalRating", "4.5")}) {
		t.Error("rating 4.5 should equal \"4.5\"")
	}
	if matches(schema, &Tool{ID: "t2", Name: "Kahoot"}, []Condition{Equal("generalRating", "")}) {
		t.Error("missing rating should not match")
	}
}

func TestValidateConditions(t *testing.T) {
	schema := toolSchemaV1("")

	tests := []struct {
		name    string
		conds   []Condition
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid conditions",
			conds:   []Condition{Equal("name", "Quizlet"), Contains("description", "cards")},
			wantErr: false,
		},
		{
			name:    "invalid operator",
			conds:   []Condition{{Field: "name", Operator: ">=", Value: "a"}},
			wantErr: true,
			errMsg:  "invalid operator",
		},
		{
			name:    "empty field name",
			conds:   []Condition{Equal("", "a")},
			wantErr: true,
			errMsg:  "empty field",
		},
		{
			name:    "unknown field",
			conds:   []Condition{Equal("tags", "a")},
			wantErr: true,
			errMsg:  `unknown field "tags"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateConditions(schema, tt.conds)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateConditions() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if err != nil {
				if !errors.Is(err, ErrInvalidQuery) {
					t.Errorf("validateConditions() error = %v, want ErrInvalidQuery", err)
				}
				if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("validateConditions() error = %v, want error containing %v", err, tt.errMsg)
				}
			}
		})
	}
}

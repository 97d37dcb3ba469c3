package sheetstore

import (
	"fmt"
	"strings"
)

// Operator is a filter comparison.
type Operator string

const (
	OpEqual    Operator = "=="
	OpContains Operator = "contains"
)

// Condition filters records on one field. Conditions passed together are
// combined with AND.
type Condition struct {
	Field    string
	Operator Operator
	Value    string
}

// Equal matches records whose field equals value exactly. For list fields
// any element may match.
func Equal(field, value string) Condition {
	return Condition{Field: field, Operator: OpEqual, Value: value}
}

// Contains matches records whose field contains value, ignoring case. For
// list fields any element may match.
func Contains(field, value string) Condition {
	return Condition{Field: field, Operator: OpContains, Value: value}
}

// validateConditions rejects unknown fields and operators before any
// backend call is made.
func validateConditions[T any](s *Schema[T], conds []Condition) error {
	for i, cond := range conds {
		if cond.Field == "" {
			return fmt.Errorf("%w: empty field in condition %d", ErrInvalidQuery, i)
		}
		if _, ok := s.column(cond.Field); !ok {
			return fmt.Errorf("%w: unknown field %q in condition %d", ErrInvalidQuery, cond.Field, i)
		}
		switch cond.Operator {
		case OpEqual, OpContains:
		default:
			return fmt.Errorf("%w: invalid operator %q in condition %d", ErrInvalidQuery, cond.Operator, i)
		}
	}
	return nil
}

// matches evaluates conds against e. Conditions must already be validated.
func matches[T any](s *Schema[T], e *T, conds []Condition) bool {
	for _, cond := range conds {
		col, _ := s.column(cond.Field)
		if !evalCondition(col.values(e), cond) {
			return false
		}
	}
	return true
}

func evalCondition(values []string, cond Condition) bool {
	for _, v := range values {
		switch cond.Operator {
		case OpEqual:
			if v == cond.Value {
				return true
			}
		case OpContains:
			if strings.Contains(strings.ToLower(v), strings.ToLower(cond.Value)) {
				return true
			}
		}
	}
	return false
}

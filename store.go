package sheetstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Store is an append-only typed table on top of an Adapter. Every read
// fetches and decodes the whole table; nothing is cached between calls.
type Store[T any] struct {
	adapter   Adapter
	schema    *Schema[T]
	rangeSpec string
	logger    *slog.Logger
	newID     func() string
	now       func() time.Time
}

// New creates a Store for schema backed by adapter. config may be nil.
func New[T any](adapter Adapter, schema *Schema[T], config *Config) (*Store[T], error) {
	if adapter == nil {
		return nil, &ConfigurationError{Setting: "adapter"}
	}
	if schema == nil {
		return nil, &ConfigurationError{Setting: "schema"}
	}
	if err := schema.Check(); err != nil {
		return nil, err
	}

	cfg := config.withDefaults()
	return &Store[T]{
		adapter:   adapter,
		schema:    schema,
		rangeSpec: schema.Range(),
		logger:    cfg.Logger.With("table", schema.Sheet),
		newID:     cfg.NewID,
		now:       cfg.Now,
	}, nil
}

// Schema returns the layout the store reads and writes.
func (s *Store[T]) Schema() *Schema[T] {
	return s.schema
}

// List returns every valid record matching all conds, in stored order.
// Header rows, blank rows and rows that fail validation are skipped; the
// number of invalid rows is logged. Either the whole scan succeeds or the
// call fails.
func (s *Store[T]) List(ctx context.Context, conds ...Condition) ([]*T, error) {
	if err := validateConditions(s.schema, conds); err != nil {
		return nil, err
	}

	rows, err := s.adapter.ReadRange(ctx, s.rangeSpec)
	if err != nil {
		return nil, s.backendError("read", err)
	}

	records := make([]*T, 0, len(rows))
	skipped := 0
	for _, row := range rows {
		if row.IsBlank() || s.schema.IsHeader(row) {
			continue
		}
		record, ok := s.schema.Decode(row)
		if !ok {
			skipped++
			continue
		}
		if matches(s.schema, record, conds) {
			records = append(records, record)
		}
	}

	if skipped > 0 {
		s.logger.WarnContext(ctx, "skipped malformed rows", "skipped", skipped, "rows", len(rows))
	}
	return records, nil
}

// Get looks a record up by id with a full scan. It reports false, with a
// nil error, when no row matches.
func (s *Store[T]) Get(ctx context.Context, id string) (*T, bool, error) {
	if strings.TrimSpace(id) == "" {
		return nil, false, nil
	}

	records, err := s.List(ctx)
	if err != nil {
		return nil, false, err
	}
	for _, record := range records {
		if s.schema.ID(record) == id {
			return record, true, nil
		}
	}
	return nil, false, nil
}

// Append stamps a fresh identity and creation time onto a copy of record
// and writes it as a new row. Caller-supplied ids and timestamps are
// replaced. No uniqueness check is made against existing rows.
//
// The returned record is decoded back from the written row, so it is
// exactly what a later List yields, minus anything the layout cannot hold.
func (s *Store[T]) Append(ctx context.Context, record *T) (*T, error) {
	if record == nil {
		return nil, fmt.Errorf("%w: nil record", ErrInvalidRecord)
	}

	e := *record
	s.schema.Stamp(&e, s.newID(), s.now())
	if s.schema.Normalize != nil {
		s.schema.Normalize(&e)
	}

	row := s.schema.Encode(&e)
	stored, ok := s.schema.Decode(row)
	if !ok {
		return nil, fmt.Errorf("%w: required fields of %s are empty", ErrInvalidRecord, s.schema.Sheet)
	}

	if err := s.adapter.AppendRow(ctx, s.rangeSpec, row); err != nil {
		return nil, s.backendError("append", err)
	}

	s.logger.DebugContext(ctx, "appended record", "id", s.schema.ID(stored))
	return stored, nil
}

// Update is not supported: rows are never rewritten.
func (s *Store[T]) Update(_ context.Context, _ string, _ *T) (*T, error) {
	return nil, &UnsupportedOperationError{Op: "update", Table: s.schema.Sheet}
}

// Delete is not supported: rows are never removed.
func (s *Store[T]) Delete(_ context.Context, _ string) error {
	return &UnsupportedOperationError{Op: "delete", Table: s.schema.Sheet}
}

func (s *Store[T]) backendError(op string, err error) error {
	if errors.Is(err, ErrConfiguration) {
		return err
	}
	return &BackendError{Op: op, Range: s.rangeSpec, Err: err}
}

package sheetstore

import (
	"errors"
	"fmt"
)

var (
	ErrConfiguration        = errors.New("configuration error")
	ErrBackendUnavailable   = errors.New("backend unavailable")
	ErrUnsupportedOperation = errors.New("unsupported operation")
	ErrInvalidRecord        = errors.New("invalid record")
	ErrInvalidQuery         = errors.New("invalid query")
)

// ConfigurationError reports a missing or malformed setting. It is fatal
// and never retried.
type ConfigurationError struct {
	Setting string
	Err     error
}

func (e *ConfigurationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("configuration: %s is required", e.Setting)
	}
	return fmt.Sprintf("configuration: %s: %v", e.Setting, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// BackendError wraps a failure talking to the tabular backend. The cause
// is preserved, so errors.Is(err, context.Canceled) still works.
type BackendError struct {
	Op    string // "read" or "append"
	Range string
	Err   error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Range, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

func (e *BackendError) Is(target error) bool { return target == ErrBackendUnavailable }

// UnsupportedOperationError is returned for in-place mutation of an
// append-only table.
type UnsupportedOperationError struct {
	Op    string
	Table string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("%s on table %q is not supported: tables are append-only", e.Op, e.Table)
}

func (e *UnsupportedOperationError) Is(target error) bool { return target == ErrUnsupportedOperation }

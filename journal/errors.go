package journal

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is the parent of every input validation error.
	ErrValidation = errors.New("invalid trade")

	// ErrPersistence wraps failures of the storage backend.
	ErrPersistence = errors.New("persistence failed")

	// ErrCorrupt means a value exists under the journal key but does not
	// decode as a list of trades.
	ErrCorrupt = errors.New("stored journal is corrupted")
)

type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

func (e *MissingFieldError) Is(target error) bool { return target == ErrValidation }

type InvalidRiskError struct {
	Value string
}

func (e *InvalidRiskError) Error() string {
	return fmt.Sprintf("risk percentage must be greater than zero (got %q)", e.Value)
}

func (e *InvalidRiskError) Is(target error) bool { return target == ErrValidation }

type InvalidResultError struct {
	Value string
}

func (e *InvalidResultError) Error() string {
	return fmt.Sprintf("result must be a number (got %q)", e.Value)
}

func (e *InvalidResultError) Is(target error) bool { return target == ErrValidation }

type InvalidTypeError struct {
	Value string
}

func (e *InvalidTypeError) Error() string {
	return fmt.Sprintf("type must be Buy or Sell (got %q)", e.Value)
}

func (e *InvalidTypeError) Is(target error) bool { return target == ErrValidation }

type InvalidDateError struct {
	Value string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("date must be YYYY-MM-DD (got %q)", e.Value)
}

func (e *InvalidDateError) Is(target error) bool { return target == ErrValidation }

// PersistenceError reports a failed storage operation.
type PersistenceError struct {
	Op  string // get, set, remove
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

// CorruptError carries the raw stored value so callers can back it up
// before overwriting it.
type CorruptError struct {
	Raw string
	Err error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("%v: %v", ErrCorrupt, e.Err)
}

func (e *CorruptError) Unwrap() error { return e.Err }

func (e *CorruptError) Is(target error) bool { return target == ErrCorrupt }

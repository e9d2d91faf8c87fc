package budget

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no budget has the requested id.
	ErrNotFound = errors.New("budget not found")
	// ErrAmbiguous is returned when an id prefix matches more than one budget.
	ErrAmbiguous = errors.New("budget reference is ambiguous")
)

// ValidationError reports a missing required field, or a field whose value
// cannot be stored when Reason is set. The store is unchanged.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("%s is required", e.Field)
}

// IndexError reports a position outside the current sequence. The store is unchanged.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("budget index %d out of range [0,%d)", e.Index, e.Len)
}

// StorageError reports a failed write of the collection. The in-memory
// change has already been applied and will be written again by the next
// successful mutation.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: budgets not saved: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

package apperrors

import (
	"errors"
	"fmt"
)

// Error kinds. Every typed error below unwraps to exactly one of these.
var (
	ErrGeneration   = errors.New("generation failed")
	ErrConnectivity = errors.New("graph store unreachable")
	ErrConstraint   = errors.New("constraint declaration rejected")
	ErrBatchWrite   = errors.New("batch write failed")
	ErrNotFound     = errors.New("resource not found")
)

// GenerationError reports an invariant the generators could not satisfy.
// It is always raised before anything reaches the store.
type GenerationError struct {
	Entity string
	Reason string
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate %s: %s", e.Entity, e.Reason)
}

func (e *GenerationError) Unwrap() error { return ErrGeneration }

// NewGenerationError creates a GenerationError with a formatted reason.
func NewGenerationError(entity, format string, args ...any) error {
	return &GenerationError{Entity: entity, Reason: fmt.Sprintf(format, args...)}
}

// ConnectivityError wraps a failure to reach a backend.
type ConnectivityError struct {
	Target string
	Err    error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("connect %s: %v", e.Target, e.Err)
}

func (e *ConnectivityError) Unwrap() []error { return []error{ErrConnectivity, e.Err} }

// NewConnectivityError creates a ConnectivityError.
func NewConnectivityError(target string, err error) error {
	return &ConnectivityError{Target: target, Err: err}
}

// ConstraintError wraps a rejected uniqueness constraint declaration.
type ConstraintError struct {
	Label string
	Key   string
	Err   error
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("declare unique constraint on %s.%s: %v", e.Label, e.Key, e.Err)
}

func (e *ConstraintError) Unwrap() []error { return []error{ErrConstraint, e.Err} }

// NewConstraintError creates a ConstraintError.
func NewConstraintError(label, key string, err error) error {
	return &ConstraintError{Label: label, Key: key, Err: err}
}

// BatchWriteError identifies the chunk that failed. Chunks written before it
// stay in the store.
type BatchWriteError struct {
	Target string
	Chunk  int
	Rows   int
	Err    error
}

func (e *BatchWriteError) Error() string {
	return fmt.Sprintf("write %s chunk %d (%d rows): %v", e.Target, e.Chunk, e.Rows, e.Err)
}

func (e *BatchWriteError) Unwrap() []error { return []error{ErrBatchWrite, e.Err} }

// NewBatchWriteError creates a BatchWriteError.
func NewBatchWriteError(target string, chunk, rows int, err error) error {
	return &BatchWriteError{Target: target, Chunk: chunk, Rows: rows, Err: err}
}

// Is returns whether err matches target or any of the errors in errList.
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}
	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

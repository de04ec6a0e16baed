package internal

import "errors"

var (
	// ErrInvalidWrite is the sentinel for writes attempted while a
	// non-write-permitting consumer is mid-computation.
	ErrInvalidWrite = errors.New("pulse: write attempted during a read-only computation")

	// ErrCycleDetected is the sentinel for a node reading itself, directly
	// or transitively, during its own computation.
	ErrCycleDetected = errors.New("pulse: cyclic dependency detected")

	// ErrMissingContext is the sentinel for a privileged lookup performed
	// outside any injection context.
	ErrMissingContext = errors.New("pulse: missing injection context")
)

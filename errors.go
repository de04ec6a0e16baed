package pulse

import "github.com/pulsekit/pulse/internal"

// Sentinel errors carried by panics and returned errors. Match them with
// errors.Is.
var (
	// ErrInvalidWrite is the sentinel for signal writes attempted while a
	// computed or non-writable effect is mid-computation.
	ErrInvalidWrite = internal.ErrInvalidWrite

	// ErrCycleDetected is the sentinel for a node reading itself, directly
	// or transitively, during its own computation.
	ErrCycleDetected = internal.ErrCycleDetected

	// ErrMissingContext is the sentinel returned by Inject when no
	// injection context is installed.
	ErrMissingContext = internal.ErrMissingContext
)

package pulse

import "github.com/pulsekit/pulse/internal"

// Lifecycle signals emitted by the reactive core. Hook them with
// capitan.Hook to feed logging or metrics without coupling the core to
// either.
var (
	// SignalWritten fires after a signal's value is replaced and its
	// dependents have been notified.
	SignalWritten = internal.SignalWritten

	// ComputedRecomputed fires after a computed node re-evaluates.
	ComputedRecomputed = internal.ComputedRecomputed

	// ComputationFailed fires when a compute or effect function panics.
	ComputationFailed = internal.ComputationFailed

	// EffectScheduled fires when an invalidated effect is handed to its
	// scheduler.
	EffectScheduled = internal.EffectScheduled

	// EffectDisposed fires when an effect is disposed.
	EffectDisposed = internal.EffectDisposed
)

// Field keys carried by the lifecycle signals.
var (
	KeyNode    = internal.KeyNode
	KeyName    = internal.KeyName
	KeyVersion = internal.KeyVersion
	KeyError   = internal.KeyError
)

package internal

import (
	"context"
	"fmt"

	"github.com/zoobzio/capitan"
)

// Lifecycle signals. Hook them via capitan to feed metrics or logging
// without the graph core depending on either.
var (
	// SignalWritten is emitted after a signal's value is replaced and its
	// dependents have been notified.
	SignalWritten = capitan.NewSignal(
		"pulse.signal.written",
		"Signal value replaced",
	)

	// ComputedRecomputed is emitted after a computed node re-evaluates.
	ComputedRecomputed = capitan.NewSignal(
		"pulse.computed.recomputed",
		"Computed value recomputed",
	)

	// ComputationFailed is emitted when a compute or effect function panics.
	ComputationFailed = capitan.NewSignal(
		"pulse.computation.failed",
		"Compute or effect function panicked",
	)

	// EffectScheduled is emitted when an invalidated effect is handed to
	// its scheduler.
	EffectScheduled = capitan.NewSignal(
		"pulse.effect.scheduled",
		"Effect handed to its scheduler",
	)

	// EffectDisposed is emitted when an effect is disposed.
	EffectDisposed = capitan.NewSignal(
		"pulse.effect.disposed",
		"Effect disposed",
	)
)

// Field keys for lifecycle events.
var (
	// KeyNode is the node's graph identity.
	KeyNode = capitan.NewIntKey("node")

	// KeyName is the node's diagnostic label.
	KeyName = capitan.NewStringKey("name")

	// KeyVersion is the node's value version after the event.
	KeyVersion = capitan.NewIntKey("version")

	// KeyError is the panic message when a computation fails.
	KeyError = capitan.NewStringKey("error")
)

func emitSignalWritten(n *ReactiveNode) {
	capitan.Emit(context.Background(), SignalWritten,
		KeyNode.Field(int(n.id)),
		KeyName.Field(n.label()),
		KeyVersion.Field(int(n.version.Load())),
	)
}

func emitComputedRecomputed(n *ReactiveNode) {
	capitan.Emit(context.Background(), ComputedRecomputed,
		KeyNode.Field(int(n.id)),
		KeyName.Field(n.label()),
		KeyVersion.Field(int(n.version.Load())),
	)
}

func emitComputationFailed(n *ReactiveNode, p any) {
	capitan.Emit(context.Background(), ComputationFailed,
		KeyNode.Field(int(n.id)),
		KeyName.Field(n.label()),
		KeyError.Field(fmt.Sprint(p)),
	)
}

func emitEffectScheduled(n *ReactiveNode) {
	capitan.Emit(context.Background(), EffectScheduled,
		KeyNode.Field(int(n.id)),
		KeyName.Field(n.label()),
	)
}

func emitEffectDisposed(n *ReactiveNode) {
	capitan.Emit(context.Background(), EffectDisposed,
		KeyNode.Field(int(n.id)),
		KeyName.Field(n.label()),
	)
}

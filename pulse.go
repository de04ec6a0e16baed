package pulse

import "github.com/pulsekit/pulse/internal"

func as[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}

	return v.(T)
}

type Signal[T any] struct {
	signal *internal.Signal
}

// NewSignal creates a mutable value cell. Reads inside a computed or effect
// register a dependency on it; writes propagate dirtiness to dependents.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{
		internal.GetRuntime().NewSignal(initial),
	}
}

// WithEqual replaces the equality function gating writes and propagation.
// The default considers two values equal only if they are identical without
// deep inspection. The function must be pure, side-effect-free and total;
// non-conformance yields undefined propagation behavior.
func (s *Signal[T]) WithEqual(equal func(a, b T) bool) *Signal[T] {
	s.signal.SetEqual(func(a, b any) bool { return equal(as[T](a), as[T](b)) })
	return s
}

// WithName sets a diagnostic label used by instrumentation events and
// WriteDOT.
func (s *Signal[T]) WithName(name string) *Signal[T] {
	s.signal.SetName(name)
	return s
}

// Read the current value of the signal, tracking the dependency if within a
// reactive computation.
func (s *Signal[T]) Read() T {
	return as[T](s.signal.Read())
}

// Peek reads the current value without tracking a dependency.
func (s *Signal[T]) Peek() T {
	return as[T](s.signal.Peek())
}

// Write a new value to the signal, triggering updates to any dependents.
// If the new value equals the current one, nothing propagates. Panics with
// ErrInvalidWrite when called from a computation that does not permit
// writes.
func (s *Signal[T]) Write(v T) {
	s.signal.Write(v)
}

// Update writes fn(current). The read is untracked: a read-modify-write is
// a write, not a dependency.
func (s *Signal[T]) Update(fn func(T) T) {
	s.signal.Write(fn(as[T](s.signal.Peek())))
}

// Mutate changes the value in place and always propagates, bypassing the
// equality gate. The caller asserts a change occurred.
func (s *Signal[T]) Mutate(fn func(v *T)) {
	v := as[T](s.signal.Peek())
	fn(&v)
	s.signal.WriteForced(v)
}

// ReadOnly returns a read-only view of the same underlying signal. Writes
// through the original handle stay visible to the view.
func (s *Signal[T]) ReadOnly() *ReadonlySignal[T] {
	return &ReadonlySignal[T]{s.signal}
}

// ReadonlySignal is a capability-restricted view of a Signal.
type ReadonlySignal[T any] struct {
	signal *internal.Signal
}

// Read the current value, tracking the dependency if within a reactive
// computation.
func (s *ReadonlySignal[T]) Read() T {
	return as[T](s.signal.Read())
}

// Peek reads the current value without tracking a dependency.
func (s *ReadonlySignal[T]) Peek() T {
	return as[T](s.signal.Peek())
}

type Computed[T any] struct {
	computed *internal.Computed
}

// NewComputed creates a memoized derivation of other signals. The
// computation is lazy: it runs on first read, and again only when a
// dependency's version advanced. It must not write to signals.
func NewComputed[T any](compute func() T) *Computed[T] {
	return &Computed[T]{
		internal.GetRuntime().NewComputed(func() any {
			return compute()
		}),
	}
}

// WithEqual replaces the equality function used to decide whether a
// recomputation changed the value. An equal result keeps the old version
// and does not propagate to dependents.
func (c *Computed[T]) WithEqual(equal func(a, b T) bool) *Computed[T] {
	c.computed.SetEqual(func(a, b any) bool { return equal(as[T](a), as[T](b)) })
	return c
}

// WithName sets a diagnostic label used by instrumentation events and
// WriteDOT.
func (c *Computed[T]) WithName(name string) *Computed[T] {
	c.computed.SetName(name)
	return c
}

// Read the current value of the computed signal, tracking the dependency if
// within a reactive computation. Panics with ErrCycleDetected when the node
// reads itself, directly or transitively; panics from the compute function
// propagate to the reader and the node retries on the next read.
func (c *Computed[T]) Read() T {
	return as[T](c.computed.Read())
}

// Peek reads the up-to-date value without tracking a dependency.
func (c *Computed[T]) Peek() T {
	return as[T](c.computed.Peek())
}

// Dispose removes the node from the graph. Terminal and idempotent.
func (c *Computed[T]) Dispose() {
	c.computed.Dispose()
}

// Effect is a computation re-run whenever a dependency changes value.
type Effect struct {
	effect *internal.Effect
}

// Scheduler decides when an invalidated effect re-runs. The core hands the
// effect over and does not run an event loop itself; call Run whenever the
// scheduler dispatches.
type Scheduler interface {
	Schedule(e *Effect)
}

// NewEffect creates a reactive effect that runs the given function whenever
// its dependencies change. The first run happens synchronously to establish
// the dependency set; re-runs go through the scheduler (default: immediate).
func NewEffect(fn func(), opts ...EffectOption) *Effect {
	var cfg effectConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	e := &Effect{}

	var notify func(*internal.Effect)
	if cfg.scheduler != nil {
		notify = func(*internal.Effect) { cfg.scheduler.Schedule(e) }
	}

	e.effect = internal.GetRuntime().NewEffect(cfg.name, fn, cfg.allowWrites, notify)

	return e
}

// Run re-executes the effect if any dependency changed since the last run.
// Intended for schedulers; running a disposed effect is a no-op.
func (e *Effect) Run() {
	e.effect.Run()
}

// Dispose detaches the effect from its dependencies and cancels pending
// re-runs. Terminal and idempotent; later dependency changes are silently
// ignored.
func (e *Effect) Dispose() {
	e.effect.Dispose()
}

// NewBatch batches multiple signal writes into a single update cycle,
// instead of dispatching effects after each write.
func NewBatch(fn func()) {
	internal.GetRuntime().NewBatch(fn)
}

// Untrack runs the given function without tracking any reactive
// dependencies.
func Untrack[T any](fn func() T) T {
	var result T
	internal.GetRuntime().Untrack(func() { result = fn() })
	return result
}

// OnCleanup registers a function to run before the current effect's next
// re-run and on its disposal. No-op outside an effect.
func OnCleanup(fn func()) {
	internal.GetRuntime().OnCleanup(fn)
}

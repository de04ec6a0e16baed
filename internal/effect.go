package internal

import "sync/atomic"

// Effect is a push-scheduled consumer. Dependency invalidation hands it to
// its scheduler instead of waiting for a read; the run itself still verifies
// staleness by versions, so a value-stable upstream recomputation does not
// re-invoke the user function.
type Effect struct {
	n *ReactiveNode

	fn       func()
	cleanups []func()

	// writable permits signal writes during the run. Per-effect opt-in;
	// feedback loops beyond the self-cycle check are the caller's risk.
	writable bool

	// notify hands the effect to the external scheduler when a dependency
	// invalidates it. The default runs it immediately.
	notify func(*Effect)

	scheduled atomic.Bool
	running   atomic.Bool
	disposed  atomic.Bool

	initialized bool
}

// NewEffect creates the effect and runs it once synchronously to establish
// its initial dependency set. Re-runs go through notify.
func (r *Runtime) NewEffect(name string, fn func(), writable bool, notify func(*Effect)) *Effect {
	e := &Effect{
		n:        newNode(KindEffect),
		fn:       fn,
		writable: writable,
		notify:   notify,
	}
	e.n.name = name

	if e.notify == nil {
		e.notify = func(e *Effect) { e.Run() }
	}

	e.Run()

	return e
}

func (e *Effect) Node() *ReactiveNode { return e.n }

func (e *Effect) node() *ReactiveNode { return e.n }

func (e *Effect) allowsWrites() bool { return e.writable }

func (e *Effect) invalidate(r *Runtime) {
	if e.disposed.Load() {
		return
	}
	if e.scheduled.Swap(true) {
		// already queued
		return
	}

	emitEffectScheduled(e.n)

	if e.running.Load() {
		// re-invalidated mid-run; the run loop picks it up
		return
	}

	if r.batcher.IsBatching() {
		r.batcher.enqueue(e)
		return
	}

	e.dispatch()
}

func (e *Effect) dispatch() {
	e.notify(e)
}

// Run re-executes the effect if any dependency version advanced since the
// last run. Called by schedulers; a disposed effect is a no-op.
func (e *Effect) Run() {
	if e.disposed.Load() || e.running.Swap(true) {
		return
	}
	defer e.running.Store(false)

	r := GetRuntime()

	for {
		e.scheduled.Store(false)

		if !e.initialized || e.n.HasFlag(FlagErrored) || e.n.depsChanged(r) {
			e.runOnce(r)
		} else {
			e.n.markClean()
		}

		// a write during the run may have re-invalidated us; loop rather
		// than recurse
		if !e.scheduled.Load() || e.disposed.Load() {
			return
		}
	}
}

func (e *Effect) runOnce(r *Runtime) {
	e.runCleanups(r)
	e.n.clearDeps()

	defer func() {
		if p := recover(); p != nil {
			e.n.AddFlag(FlagErrored | FlagDirty)
			emitComputationFailed(e.n, p)
			panic(p)
		}
	}()

	r.tracker.RunWithConsumer(e, e.fn)

	e.initialized = true
	e.n.RemoveFlag(FlagErrored)
	e.n.markClean()
}

// runCleanups invokes the registered teardown callbacks with no active
// consumer: their reads track nothing and their writes are governed like
// top-level writes.
func (e *Effect) runCleanups(r *Runtime) {
	cleanups := e.cleanups
	e.cleanups = nil

	if len(cleanups) == 0 {
		return
	}

	r.tracker.RunWithConsumer(nil, func() {
		for _, fn := range cleanups {
			fn()
		}
	})
}

// Dispose detaches the effect from every former producer and drops pending
// re-runs. Terminal and idempotent; later dependency changes are silently
// ignored.
func (e *Effect) Dispose() {
	if e.disposed.Swap(true) {
		return
	}

	r := GetRuntime()
	e.runCleanups(r)
	e.n.clearDeps()
	e.n.AddFlag(FlagDisposed)

	emitEffectDisposed(e.n)
}

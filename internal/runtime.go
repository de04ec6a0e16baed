package internal

// Runtime holds the reactive state of one cooperative thread: the active
// consumer slot, the write batcher and the injection-context slots. Each
// goroutine gets its own runtime (see runtime_default.go), so computations
// on independent goroutines never observe each other's tracking state.
type Runtime struct {
	tracker *Tracker
	batcher *Batcher

	resolver       Resolver
	injectOverride InjectFn
}

func NewRuntime() *Runtime {
	return &Runtime{
		tracker: NewTracker(),
		batcher: NewBatcher(),
	}
}

// Untrack runs fn without registering dependencies for any reads it performs.
func (r *Runtime) Untrack(fn func()) {
	r.tracker.RunUntracked(fn)
}

// OnCleanup registers fn to run before the currently executing effect's next
// re-run and on its disposal. No-op outside an effect computation.
func (r *Runtime) OnCleanup(fn func()) {
	if e, ok := r.tracker.current.(*Effect); ok {
		e.cleanups = append(e.cleanups, fn)
	}
}

package internal

import "fmt"

// Computed is a lazily memoized derivation. It is both consumer (of the
// producers its function reads) and producer (to its own dependents).
//
// State machine: clean -> dirty -> computing -> clean, plus errored when the
// computation panicked. An errored node stays dirty, so the next read
// retries from scratch.
type Computed struct {
	n *ReactiveNode

	compute func() any
	value   any
	equal   func(a, b any) bool

	initialized bool
	disposed    bool
}

func (r *Runtime) NewComputed(compute func() any) *Computed {
	c := &Computed{
		n:       newNode(KindComputed),
		compute: compute,
		equal:   identityEqual,
	}
	c.n.refresh = c.refresh

	return c
}

func (c *Computed) Node() *ReactiveNode { return c.n }

func (c *Computed) SetEqual(equal func(a, b any) bool) {
	c.equal = equal
}

func (c *Computed) SetName(name string) {
	c.n.name = name
}

func (c *Computed) node() *ReactiveNode { return c.n }

func (c *Computed) allowsWrites() bool { return false }

// invalidate marks the node dirty and forwards the notification to its own
// dependents once. An already-dirty node has already told them, except when
// it is dirty because its last computation panicked: the panic unwound past
// the dependents, so each new upstream change must re-notify them to keep
// effects behind this node schedulable.
func (c *Computed) invalidate(r *Runtime) {
	if c.n.HasFlag(FlagDisposed) {
		return
	}
	if c.n.HasFlag(FlagDirty) && !c.n.HasFlag(FlagErrored) {
		return
	}

	c.n.AddFlag(FlagDirty)
	c.n.notifyChanged(r)
}

// Read returns the memoized value, recomputing first if any dependency
// version advanced, and registers a dependency edge when a consumer is
// computing.
func (c *Computed) Read() any {
	r := GetRuntime()

	c.refresh(r)
	if !c.disposed {
		c.n.accessed(r)
	}

	return c.value
}

// Peek returns the up-to-date value without registering a dependency.
func (c *Computed) Peek() any {
	c.refresh(GetRuntime())

	return c.value
}

// refresh brings the value and version up to date. Cheap checks first: a
// node verified clean at the current epoch is returned as is; otherwise the
// recorded dependency versions are walked, and only a real change triggers
// recomputation.
func (c *Computed) refresh(r *Runtime) {
	if c.disposed {
		return
	}

	if c.n.HasFlag(FlagComputing) {
		panic(fmt.Errorf("%w: %s read during its own computation", ErrCycleDetected, c.n.label()))
	}

	if c.initialized && !c.n.HasFlag(FlagDirty|FlagErrored) && c.n.lastCleanEpoch == Epoch() {
		return
	}

	if c.initialized && !c.n.HasFlag(FlagErrored) && !c.n.depsChanged(r) {
		c.n.markClean()
		return
	}

	c.recompute(r)
}

func (c *Computed) recompute(r *Runtime) {
	c.n.AddFlag(FlagComputing)
	c.n.clearDeps()

	var value any
	func() {
		defer func() {
			c.n.RemoveFlag(FlagComputing)
			if p := recover(); p != nil {
				// Stay dirty: the version and cache were not updated, so
				// the next read retries cleanly.
				c.n.AddFlag(FlagErrored | FlagDirty)
				emitComputationFailed(c.n, p)
				panic(p)
			}
		}()

		r.tracker.RunWithConsumer(c, func() {
			value = c.compute()
		})
	}()

	c.n.RemoveFlag(FlagErrored)

	// An equal result keeps the old version, so dependents that pull this
	// node see no change and stay memoized.
	if !c.initialized || !c.equal(c.value, value) {
		c.n.bumpVersion()
	}

	c.value = value
	c.initialized = true
	c.n.markClean()
	emitComputedRecomputed(c.n)
}

// Dispose removes the node from the graph: its producer edges are detached
// and its dependents are dropped. Reads after disposal return the last
// value without tracking or recomputing. Idempotent.
func (c *Computed) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true

	c.n.clearDeps()

	c.n.subMu.Lock()
	c.n.subs = make(map[uint64]consumer)
	c.n.subMu.Unlock()

	c.n.AddFlag(FlagDisposed)
}

package internal

import (
	"fmt"
	"sync"
	"sync/atomic"
)

type NodeKind uint8

const (
	KindSignal NodeKind = iota
	KindComputed
	KindEffect
)

func (k NodeKind) String() string {
	switch k {
	case KindSignal:
		return "signal"
	case KindComputed:
		return "computed"
	case KindEffect:
		return "effect"
	}
	return "node"
}

type NodeFlags uint8

const (
	FlagNone NodeFlags = 0

	// FlagDirty indicates a dependency may have changed since the node was
	// last verified clean.
	FlagDirty NodeFlags = 1 << iota
	// FlagComputing indicates the node is mid-computation. Reading a node
	// with this flag set is a cyclic dependency.
	FlagComputing
	// FlagErrored indicates the last computation panicked. The node stays
	// dirty and retries on the next access.
	FlagErrored
	// FlagDisposed indicates the node no longer participates in the graph.
	FlagDisposed
)

var lastID atomic.Uint64

func nextID() uint64 {
	return lastID.Add(1)
}

// globalEpoch advances on every observable signal change. A consumer verified
// clean at the current epoch is trivially clean: no write can have happened
// since. The epoch is an optimization only; the version walk in depsChanged
// is the ground truth.
var globalEpoch atomic.Uint64

func Epoch() uint64 {
	return globalEpoch.Load()
}

func advanceEpoch() {
	globalEpoch.Add(1)
}

// depEdge records one dependency of a consumer: the producer it read and the
// producer's version at read time.
type depEdge struct {
	producer *ReactiveNode
	version  uint64
}

// consumer is the half of a reactive node that depends on producers.
type consumer interface {
	node() *ReactiveNode

	// invalidate tells the consumer one of its producers may have changed.
	// It must not recompute; resolution is pull-based.
	invalidate(r *Runtime)

	// allowsWrites reports whether signal writes are permitted while this
	// consumer is mid-computation.
	allowsWrites() bool
}

// ReactiveNode is the graph participant shared by signals, computeds and
// effects. It owns versioning and the dependency edges in both directions.
type ReactiveNode struct {
	id   uint64
	kind NodeKind
	name string

	// version counts observable value changes. Strictly increasing, never
	// reset; 64 bits wide so wrapping is not a practical concern.
	version atomic.Uint64

	// lastCleanEpoch is the global epoch at which the consumer half was
	// last verified clean.
	lastCleanEpoch uint64

	flags NodeFlags

	// refresh brings the producer half up to date before its version is
	// trusted. nil for signals, which are always current.
	refresh func(r *Runtime)

	// deps are the producers read during the last computation. Owned by
	// the computation itself; rebuilt on every run, never shared.
	deps []depEdge

	// subs are the live dependents, keyed by node id. Edges are removed
	// explicitly when the dependent recomputes or is disposed.
	subMu sync.Mutex
	subs  map[uint64]consumer
}

func newNode(kind NodeKind) *ReactiveNode {
	return &ReactiveNode{
		id:   nextID(),
		kind: kind,
		subs: make(map[uint64]consumer),
	}
}

func (n *ReactiveNode) ID() uint64     { return n.id }
func (n *ReactiveNode) Kind() NodeKind { return n.kind }
func (n *ReactiveNode) Name() string   { return n.name }

func (n *ReactiveNode) HasFlag(f NodeFlags) bool {
	return n.flags&f != 0
}

func (n *ReactiveNode) AddFlag(f NodeFlags) {
	n.flags |= f
}

func (n *ReactiveNode) RemoveFlag(f NodeFlags) {
	n.flags &^= f
}

func (n *ReactiveNode) label() string {
	if n.name != "" {
		return n.name
	}
	return fmt.Sprintf("%s#%d", n.kind, n.id)
}

// accessed registers the edge current-consumer depends-on n, recording n's
// version at access time. No-op outside a tracked computation.
func (n *ReactiveNode) accessed(r *Runtime) {
	if !r.tracker.ShouldTrack() {
		return
	}

	sub := r.tracker.current
	if sub.node() == n {
		panic(fmt.Errorf("%w: %s reads itself", ErrCycleDetected, n.label()))
	}

	sub.node().recordDep(n)

	n.subMu.Lock()
	n.subs[sub.node().id] = sub
	n.subMu.Unlock()
}

func (n *ReactiveNode) recordDep(p *ReactiveNode) {
	// dont re-record if already present as the most recent dependency
	if last := len(n.deps) - 1; last >= 0 && n.deps[last].producer == p {
		return
	}

	n.deps = append(n.deps, depEdge{producer: p, version: p.version.Load()})
}

// notifyChanged fans out to the live dependents. Propagation is one hop per
// call: each dependent decides whether to forward (computed) or schedule
// (effect), and already-dirty dependents stop the walk.
func (n *ReactiveNode) notifyChanged(r *Runtime) {
	// snapshot to avoid mutation during iteration
	n.subMu.Lock()
	subs := make([]consumer, 0, len(n.subs))
	for _, sub := range n.subs {
		subs = append(subs, sub)
	}
	n.subMu.Unlock()

	for _, sub := range subs {
		sub.invalidate(r)
	}
}

// depsChanged reports whether any recorded dependency advanced past the
// version seen at last read. Computed dependencies are refreshed first so
// the comparison never trusts a stale producer.
func (n *ReactiveNode) depsChanged(r *Runtime) bool {
	for i := range n.deps {
		d := &n.deps[i]
		if d.producer.refresh != nil {
			d.producer.refresh(r)
		}
		if d.producer.version.Load() != d.version {
			return true
		}
	}

	return false
}

// clearDeps detaches the consumer half from every producer it read.
func (n *ReactiveNode) clearDeps() {
	for _, d := range n.deps {
		d.producer.subMu.Lock()
		delete(d.producer.subs, n.id)
		d.producer.subMu.Unlock()
	}

	n.deps = n.deps[:0]
}

func (n *ReactiveNode) markClean() {
	n.lastCleanEpoch = Epoch()
	n.RemoveFlag(FlagDirty)
}

func (n *ReactiveNode) bumpVersion() {
	n.version.Add(1)
}

package internal

import (
	"fmt"
	"reflect"
	"sync"
)

// Signal is a mutable value cell. It is a pure producer: it never recomputes
// and its version advances only when a write replaces the value.
type Signal struct {
	n *ReactiveNode

	mu    sync.Mutex
	value any

	equal func(a, b any) bool
}

func (r *Runtime) NewSignal(initial any) *Signal {
	return &Signal{
		n:     newNode(KindSignal),
		value: initial,
		equal: identityEqual,
	}
}

func (s *Signal) Node() *ReactiveNode { return s.n }

// SetEqual replaces the equality function used to gate writes. The function
// must be pure and total; this is the caller's responsibility.
func (s *Signal) SetEqual(equal func(a, b any) bool) {
	s.equal = equal
}

func (s *Signal) SetName(name string) {
	s.n.name = name
}

// Read returns the current value, registering a dependency edge when a
// consumer is computing. It never blocks and never recomputes.
func (s *Signal) Read() any {
	r := GetRuntime()
	s.n.accessed(r)

	return s.Peek()
}

// Peek returns the current value without registering a dependency.
func (s *Signal) Peek() any {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.value
}

// Write replaces the value if it differs under the equality function, bumps
// the version and propagates dirtiness to dependents.
func (s *Signal) Write(v any) {
	r := GetRuntime()
	assertWritable(r)

	s.mu.Lock()
	if s.equal(s.value, v) {
		s.mu.Unlock()
		return
	}
	s.value = v
	s.mu.Unlock()

	s.changed(r)
}

// WriteForced replaces the value and always propagates, bypassing the
// equality gate. Used for in-place mutation, where the caller asserts a
// change occurred.
func (s *Signal) WriteForced(v any) {
	r := GetRuntime()
	assertWritable(r)

	s.mu.Lock()
	s.value = v
	s.mu.Unlock()

	s.changed(r)
}

func (s *Signal) changed(r *Runtime) {
	s.n.bumpVersion()
	advanceEpoch()
	emitSignalWritten(s.n)
	s.n.notifyChanged(r)
}

// assertWritable fails when a consumer that did not opt into writes is
// mid-computation. Top-level writes and writes from write-permitting effects
// pass through.
func assertWritable(r *Runtime) {
	if c := r.tracker.current; c != nil && !c.allowsWrites() {
		panic(fmt.Errorf("%w: %s is mid-computation", ErrInvalidWrite, c.node().label()))
	}
}

// identityEqual is the default equality: two values are equal only if they
// are indistinguishable without deep inspection. Values of non-comparable
// dynamic type are never equal.
func identityEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == b
	}
	if !reflect.TypeOf(a).Comparable() || !reflect.TypeOf(b).Comparable() {
		return false
	}

	return a == b
}

// Package pulse is a fine-grained reactive dependency graph: signals hold
// values, computeds derive memoized values from them, and effects re-run
// when anything they read changes.
//
// Reads performed inside a computed or effect record dependency edges
// automatically. Propagation is push-dirty, pull-recompute: a write marks
// dependents dirty and hands invalidated effects to their scheduler, but a
// computed only re-evaluates when something actually reads it and a
// dependency's version advanced. Recomputations that produce an equal value
// do not propagate further, so a diamond-shaped graph settles with each
// node evaluated at most once per change.
//
// Each goroutine gets its own independent graph runtime; nodes must not be
// shared across goroutines.
package pulse

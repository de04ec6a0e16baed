//go:build !wasm

package internal

import (
	"sync"

	"github.com/petermattis/goid"
)

// Each goroutine owns an independent runtime, so tracking state on one
// cooperative thread never leaks into another. Runtimes are never evicted;
// graph work is expected to live on long-lived goroutines.
var runtimes sync.Map

// GetRuntime returns the calling goroutine's runtime, creating it on first
// use.
func GetRuntime() *Runtime {
	gid := goid.Get()

	if r, ok := runtimes.Load(gid); ok {
		return r.(*Runtime)
	}

	r, _ := runtimes.LoadOrStore(gid, NewRuntime())
	return r.(*Runtime)
}

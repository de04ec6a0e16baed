//go:build wasm

package internal

import "sync"

// wasm executes on a single thread, so one process-wide runtime serves
// every call.
var (
	runtimeOnce   sync.Once
	sharedRuntime *Runtime
)

func GetRuntime() *Runtime {
	runtimeOnce.Do(func() {
		sharedRuntime = NewRuntime()
	})

	return sharedRuntime
}

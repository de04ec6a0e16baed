package pulse

import (
	"fmt"

	"github.com/pulsekit/pulse/internal"
)

// Resolver resolves dependency tokens inside an injection context. The
// reactive core never resolves tokens itself; it only scopes which resolver
// is current.
type Resolver = internal.Resolver

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc = internal.ResolverFunc

// InjectFn short-circuits token resolution entirely when installed via
// RunWithInjectOverride, taking precedence over the current resolver.
type InjectFn = internal.InjectFn

// RunInContext installs resolver as the current injection context for the
// duration of fn. Nested calls stack; the previous context is restored on
// every exit path, including panics. Any inject override is cleared for the
// scope.
func RunInContext(resolver Resolver, fn func()) {
	internal.GetRuntime().RunInContext(resolver, fn)
}

// RunWithInjectOverride installs override as the injection shortcut for the
// duration of fn, restoring the previous override afterwards.
func RunWithInjectOverride(override InjectFn, fn func()) {
	internal.GetRuntime().RunWithInjectOverride(override, fn)
}

// CurrentResolver returns the resolver installed by the innermost
// RunInContext, or nil outside any context.
func CurrentResolver() Resolver {
	return internal.GetRuntime().CurrentResolver()
}

// CurrentInjectOverride returns the override installed by the innermost
// RunWithInjectOverride, or nil when none is active.
func CurrentInjectOverride() InjectFn {
	return internal.GetRuntime().CurrentInjectOverride()
}

// AssertInContext returns ErrMissingContext unless an injection context is
// currently installed. op names the offending call site in the error.
func AssertInContext(op string) error {
	return internal.GetRuntime().AssertInContext(op)
}

// Inject resolves token in the current injection context. The override wins
// when installed, otherwise the current resolver serves the token. Returns
// ErrMissingContext outside any context, and an error when the resolved
// value is not a T.
func Inject[T any](token any) (T, error) {
	var zero T

	v, err := internal.GetRuntime().Inject("Inject", token)
	if err != nil {
		return zero, err
	}

	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("pulse: injected value for token %v is %T, not %T", token, v, zero)
	}

	return t, nil
}

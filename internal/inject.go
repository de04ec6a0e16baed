package internal

import "fmt"

// Resolver resolves dependency tokens. The graph core never resolves tokens
// itself; it only scopes which resolver is current.
type Resolver interface {
	Resolve(token any) (any, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(token any) (any, error)

func (f ResolverFunc) Resolve(token any) (any, error) { return f(token) }

// InjectFn short-circuits resolution entirely when installed, taking
// precedence over the current resolver.
type InjectFn func(token any) (any, error)

// RunInContext installs resolver as the current resolution context for the
// duration of fn. Any inject override is cleared for the scope. Both slots
// are restored on every exit path, including panics, so no context leaks
// across the call boundary.
func (r *Runtime) RunInContext(resolver Resolver, fn func()) {
	prevResolver := r.resolver
	prevOverride := r.injectOverride

	r.resolver = resolver
	r.injectOverride = nil

	defer func() {
		r.resolver = prevResolver
		r.injectOverride = prevOverride
	}()

	fn()
}

// RunWithInjectOverride installs override for the duration of fn, restoring
// the previous override on every exit path.
func (r *Runtime) RunWithInjectOverride(override InjectFn, fn func()) {
	prev := r.injectOverride
	r.injectOverride = override
	defer func() { r.injectOverride = prev }()

	fn()
}

func (r *Runtime) CurrentResolver() Resolver { return r.resolver }

func (r *Runtime) CurrentInjectOverride() InjectFn { return r.injectOverride }

// AssertInContext fails unless a resolver or an inject override is currently
// installed. op names the offending call site in the error.
func (r *Runtime) AssertInContext(op string) error {
	if r.resolver == nil && r.injectOverride == nil {
		return fmt.Errorf("%w: %s() can only be called during construction or inside RunInContext", ErrMissingContext, op)
	}

	return nil
}

// Inject performs the privileged lookup: the override wins when installed,
// otherwise the current resolver serves the token.
func (r *Runtime) Inject(op string, token any) (any, error) {
	if err := r.AssertInContext(op); err != nil {
		return nil, err
	}

	if r.injectOverride != nil {
		return r.injectOverride(token)
	}

	return r.resolver.Resolve(token)
}

package machine

import (
	"context"
	"fmt"

	"github.com/mna/lotus/lang/types"
)

// A Callable value f may be the operand of a function call, f(x). Clients
// should use the Call function, never the CallInternal method.
type Callable interface {
	types.Value
	Name() string
	CallInternal(thread *Thread, args types.Tuple) (types.Value, error)
}

// A HasArity is a Callable that declares how many arguments it accepts, so
// that callers may validate it before calling.
type HasArity interface {
	Callable
	// Arity returns the number of parameters of the callable, and whether it
	// accepts any number of extra arguments.
	Arity() (n int, variadic bool)
}

// AcceptsArgs reports whether the callable can be called with n arguments.
// A callable that does not declare its arity is assumed to accept any
// number of arguments (it validates them itself when called).
func AcceptsArgs(c Callable, n int) bool {
	ha, ok := c.(HasArity)
	if !ok {
		return true
	}
	nparams, variadic := ha.Arity()
	if variadic {
		return n >= nparams
	}
	return n == nparams
}

// Call calls the Callable value v with the specified arguments.
func Call(th *Thread, v types.Value, args types.Tuple) (types.Value, error) {
	if v == nil {
		return nil, fmt.Errorf("invalid call of nil (not Nil) value")
	}
	cb, ok := v.(Callable)
	if !ok {
		return nil, fmt.Errorf("invalid call of non-callable (%s)", v.Type())
	}

	if !th.ready {
		th.Init(context.Background())
	}
	if th.cancelled.Load() {
		return nil, fmt.Errorf("thread cancelled: %s", context.Cause(th.ctx))
	}
	th.steps++
	if th.steps >= th.maxSteps {
		th.Cancel(ErrMaxSteps)
		return nil, fmt.Errorf("thread cancelled: %s", ErrMaxSteps)
	}

	if th.MaxCallStackDepth > 0 && len(th.callStack) >= th.MaxCallStackDepth {
		return nil, fmt.Errorf("maximum call stack depth (%d) exceeded", th.MaxCallStackDepth)
	}
	if th.DisableRecursion {
		for _, fr := range th.callStack {
			if fr.callable == cb {
				return nil, fmt.Errorf("function %s called recursively", cb.Name())
			}
		}
	}

	// Allocate and push a new frame. As an optimization, use slack portion of
	// thread.callStack slice as a freelist of empty frames.
	var fr *Frame
	if n := len(th.callStack); n < cap(th.callStack) {
		fr = th.callStack[n : n+1][0]
	}
	if fr == nil {
		fr = new(Frame)
	}
	th.callStack = append(th.callStack, fr) // push

	// Use defer to ensure that panics from built-ins pass through the
	// machine without leaving the thread in a bad state.
	defer func() {
		// clear out any references
		*fr = Frame{}
		th.callStack = th.callStack[:len(th.callStack)-1] // pop
	}()

	fr.callable = cb
	result, err := cb.CallInternal(th, args)

	// Sanity check: nil is not a valid value.
	if result == nil && err == nil {
		err = fmt.Errorf("internal error: nil (not Nil) returned from %s", cb.Name())
	}
	return result, err
}

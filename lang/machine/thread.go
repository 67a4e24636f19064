package machine

import (
	"context"
	"errors"
	"math"
	"sync/atomic"

	"github.com/mna/lotus/lang/types"
)

// ErrMaxSteps is the cancellation cause of a thread that exceeded its
// MaxSteps limit.
var ErrMaxSteps = errors.New("maximum number of steps exceeded")

// A Thread holds the execution state of a sequence of calls. A Thread must
// not be used concurrently by multiple goroutines; values such as atomic
// cells may be shared between goroutines each running its own Thread.
type Thread struct {
	// Name is an optional name that describes the thread, mostly for debugging.
	Name string

	// MaxSteps is the maximum number of "steps", a deliberately unspecified
	// measure of machine execution time (currently the number of calls), before
	// the thread is cancelled. A value <= 0 means no limit.
	MaxSteps int

	// DisableRecursion prevents recursive execution of functions when set to
	// true. If a recursive call is detected, the call fails.
	DisableRecursion bool

	// MaxCallStackDepth limits the number of nested function calls. If the limit
	// is reached, the call fails. A value <= 0 means no limit.
	MaxCallStackDepth int

	// MaxCompareDepth limits the number of nested comparison depth for compound
	// types to prevent comparing cyclic values. A value <= 0 means no limit.
	MaxCompareDepth int

	ctx       context.Context
	ctxCancel context.CancelCauseFunc
	stopWatch func() bool
	callStack []*Frame
	cancelled atomic.Bool
	ready     bool

	steps, maxSteps uint64
	maxCompareDepth uint64
}

// Init prepares the thread for execution and binds it to ctx: once ctx is
// done, any subsequent call on the thread fails. It is called with
// context.Background on the first call if it was not called explicitly, and
// must not be called more than once.
func (th *Thread) Init(ctx context.Context) {
	if th.ready {
		panic("machine: thread initialized more than once")
	}
	th.ready = true

	if th.MaxSteps <= 0 {
		th.maxSteps-- // (MaxUint64)
	} else {
		th.maxSteps = uint64(th.MaxSteps)
	}
	if th.MaxCompareDepth <= 0 {
		th.maxCompareDepth = math.MaxInt
	} else {
		th.maxCompareDepth = uint64(th.MaxCompareDepth)
	}

	th.ctx, th.ctxCancel = context.WithCancelCause(ctx)
	th.stopWatch = context.AfterFunc(th.ctx, func() {
		th.cancelled.Store(true)
	})
}

// Cancel cancels the thread with the provided cause. Calls in progress
// complete, but no new call can start. It is safe to call Cancel from any
// goroutine, but only after Init.
func (th *Thread) Cancel(cause error) {
	if th.ctxCancel != nil {
		th.cancelled.Store(true)
		th.ctxCancel(cause)
	}
}

// Release frees the resources associated with the thread's context. The
// thread cannot execute any call afterwards.
func (th *Thread) Release() {
	th.Cancel(context.Canceled)
	if th.stopWatch != nil {
		th.stopWatch()
	}
}

// CallStackDepth returns the number of calls currently in progress on the
// thread.
func (th *Thread) CallStackDepth() int { return len(th.callStack) }

// Equals reports whether x and y are equal values, bounded by the thread's
// MaxCompareDepth.
func (th *Thread) Equals(x, y types.Value) (bool, error) {
	if !th.ready {
		th.Init(context.Background())
	}
	return EqualsDepth(x, y, th.maxCompareDepth)
}

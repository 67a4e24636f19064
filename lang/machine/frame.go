package machine

// Frame records a call to a Callable value.
type Frame struct {
	callable Callable
}

// Callable returns the value being called in this frame.
func (fr *Frame) Callable() Callable { return fr.callable }

// CallFrame returns the frame at the given depth of the call stack, 0 being
// the innermost call in progress. It returns nil if depth is out of range.
func (th *Thread) CallFrame(depth int) *Frame {
	i := len(th.callStack) - 1 - depth
	if i < 0 || i >= len(th.callStack) {
		return nil
	}
	return th.callStack[i]
}

package machine

import (
	"fmt"

	"github.com/mna/lotus/lang/types"
)

// A BuiltinFunc is the Go implementation of a Builtin. The number of
// arguments has already been validated when it is called, and none of them
// is a nil interface.
type BuiltinFunc func(th *Thread, b *Builtin, args types.Tuple) (types.Value, error)

// A Builtin is a function implemented in Go.
type Builtin struct {
	name     string
	nparams  int
	variadic bool
	fn       BuiltinFunc
}

var (
	_ Callable = (*Builtin)(nil)
	_ HasArity = (*Builtin)(nil)
)

// NewBuiltin returns a built-in function that accepts exactly nparams
// arguments.
func NewBuiltin(name string, nparams int, fn BuiltinFunc) *Builtin {
	return &Builtin{name: name, nparams: nparams, fn: fn}
}

// NewVariadicBuiltin returns a built-in function that accepts at least
// nparams arguments.
func NewVariadicBuiltin(name string, nparams int, fn BuiltinFunc) *Builtin {
	return &Builtin{name: name, nparams: nparams, variadic: true, fn: fn}
}

func (b *Builtin) String() string          { return fmt.Sprintf("builtin(%s)", b.name) }
func (b *Builtin) Type() string            { return "builtin" }
func (b *Builtin) Name() string            { return b.name }
func (b *Builtin) Arity() (n int, va bool) { return b.nparams, b.variadic }

func (b *Builtin) CallInternal(th *Thread, args types.Tuple) (types.Value, error) {
	if !AcceptsArgs(b, len(args)) {
		if b.variadic {
			return nil, fmt.Errorf("function %s accepts at least %d argument%s (%d given)", b.name, b.nparams, plural(b.nparams), len(args))
		}
		return nil, &ArityError{Func: b.name, Want: b.nparams, Got: len(args)}
	}
	for i, arg := range args {
		if arg == nil {
			return nil, fmt.Errorf("%s: argument #%d: nil (not Nil) value", b.name, i+1)
		}
	}
	return b.fn(th, b, args)
}

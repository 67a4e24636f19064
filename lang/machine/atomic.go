package machine

import (
	"fmt"

	"github.com/mna/lotus/lang/atom"
	"github.com/mna/lotus/lang/types"
)

// Built-in functions operating on atomic cells. The cell argument is always
// validated first and a *TypeError is returned if it is not an atomic cell.
var (
	MakeAtomic = NewBuiltin("make_atomic", 1, func(_ *Thread, _ *Builtin, args types.Tuple) (types.Value, error) {
		return atom.Make(args[0]), nil
	})

	AtomicLoad = NewBuiltin("atomic_load", 1, func(_ *Thread, b *Builtin, args types.Tuple) (types.Value, error) {
		c, err := cellArg(b, args)
		if err != nil {
			return nil, err
		}
		return c.Load(), nil
	})

	AtomicStore = NewBuiltin("atomic_store", 2, func(_ *Thread, b *Builtin, args types.Tuple) (types.Value, error) {
		c, err := cellArg(b, args)
		if err != nil {
			return nil, err
		}
		return c.Store(args[1]), nil
	})

	AtomicExchange = NewBuiltin("atomic_exchange", 2, func(_ *Thread, b *Builtin, args types.Tuple) (types.Value, error) {
		c, err := cellArg(b, args)
		if err != nil {
			return nil, err
		}
		return c.Exchange(args[1]), nil
	})

	AtomicCompareExchange = NewBuiltin("atomic_compare_exchange", 3, func(th *Thread, b *Builtin, args types.Tuple) (types.Value, error) {
		c, err := cellArg(b, args)
		if err != nil {
			return nil, err
		}
		v, err := c.CompareExchange(args[1], args[2], th.Equals)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", b.Name(), err)
		}
		return v, nil
	})

	AtomicFetchUpdate = NewBuiltin("atomic_fetch_update", 2, func(th *Thread, b *Builtin, args types.Tuple) (types.Value, error) {
		c, err := cellArg(b, args)
		if err != nil {
			return nil, err
		}
		fn, ok := args[1].(Callable)
		if !ok || !AcceptsArgs(fn, 1) {
			return nil, &TypeError{Func: b.Name(), Arg: 2, Want: "function of 1 argument", Got: describeCallable(args[1])}
		}

		// fn is called at least once, and once more each time another thread
		// updated the cell concurrently.
		v, err := c.FetchUpdate(func(cur types.Value) (types.Value, error) {
			return Call(th, fn, types.Tuple{cur})
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", b.Name(), err)
		}
		return v, nil
	})
)

func cellArg(b *Builtin, args types.Tuple) (*atom.Cell, error) {
	c, ok := args[0].(*atom.Cell)
	if !ok {
		return nil, &TypeError{Func: b.Name(), Arg: 1, Want: "atomic", Got: args[0].Type()}
	}
	return c, nil
}

func describeCallable(v types.Value) string {
	ha, ok := v.(HasArity)
	if !ok {
		return v.Type()
	}
	n, variadic := ha.Arity()
	if variadic {
		return fmt.Sprintf("%s of %d+ arguments", v.Type(), n)
	}
	return fmt.Sprintf("%s of %d argument%s", v.Type(), n, plural(n))
}

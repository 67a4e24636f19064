package maincmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mna/lotus/lang/machine"
	"github.com/mna/lotus/lang/token"
	"github.com/mna/lotus/lang/types"
	"github.com/mna/mainer"
)

// newIncr returns a built-in that adds 1 to its argument. If count is not
// nil, it is incremented on each invocation, it must only be used by the
// goroutine that calls the built-in.
func newIncr(count *int64) *machine.Builtin {
	return machine.NewBuiltin("incr", 1, func(_ *machine.Thread, _ *machine.Builtin, args types.Tuple) (types.Value, error) {
		if count != nil {
			*count++
		}
		return machine.Binary(token.PLUS, args[0], types.Int(1))
	})
}

// cellArg is a placeholder replaced by the scenario's cell in a step's
// arguments.
type cellArg struct{}

func (cellArg) String() string { return "c" }
func (cellArg) Type() string   { return "atomic" }

type scenarioStep struct {
	fn   *machine.Builtin
	args []types.Value
}

func (c *Cmd) Scenario(ctx context.Context, stdio mainer.Stdio, args []string) error {
	var th machine.Thread
	th.Init(ctx)
	defer th.Release()

	return printError(stdio, runScenario(&th, stdio.Stdout))
}

func runScenario(th *machine.Thread, w io.Writer) error {
	incr := newIncr(nil)
	steps := []scenarioStep{
		{machine.AtomicExchange, []types.Value{cellArg{}, types.Int(5)}},
		{machine.AtomicLoad, []types.Value{cellArg{}}},
		{machine.AtomicCompareExchange, []types.Value{cellArg{}, types.Int(5), types.Int(10)}},
		{machine.AtomicLoad, []types.Value{cellArg{}}},
		{machine.AtomicCompareExchange, []types.Value{cellArg{}, types.Int(5), types.Int(20)}},
		{machine.AtomicLoad, []types.Value{cellArg{}}},
		{machine.AtomicFetchUpdate, []types.Value{cellArg{}, incr}},
		{machine.AtomicLoad, []types.Value{cellArg{}}},
	}

	initial := types.Int(0)
	cell, err := machine.Call(th, machine.MakeAtomic, types.Tuple{initial})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "c = %s(%s)\n", machine.MakeAtomic.Name(), initial)

	for _, step := range steps {
		callArgs := make(types.Tuple, len(step.args))
		for i, arg := range step.args {
			if _, ok := arg.(cellArg); ok {
				arg = cell
			}
			callArgs[i] = arg
		}

		res, err := machine.Call(th, step.fn, callArgs)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s(%s) = %s\n", step.fn.Name(), formatArgs(step.args), res)
	}
	return nil
}

func formatArgs(args []types.Value) string {
	strs := make([]string, len(args))
	for i, arg := range args {
		if cb, ok := arg.(machine.Callable); ok {
			strs[i] = cb.Name()
			continue
		}
		strs[i] = arg.String()
	}
	return strings.Join(strs, ", ")
}

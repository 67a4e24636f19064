package atom_test

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/mna/lotus/lang/atom"
	"github.com/mna/lotus/lang/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// numEqual is a minimal value-level comparator: ints and floats compare
// numerically, everything else by identity.
func numEqual(x, y types.Value) (bool, error) {
	switch x := x.(type) {
	case types.Int:
		switch y := y.(type) {
		case types.Int:
			return x == y, nil
		case types.Float:
			return types.Float(x) == y, nil
		}
	case types.Float:
		switch y := y.(type) {
		case types.Int:
			return x == types.Float(y), nil
		case types.Float:
			return x == y, nil
		}
	}
	return x == y, nil
}

func incr(v types.Value) (types.Value, error) {
	return v.(types.Int) + 1, nil
}

func identity(v types.Value) (types.Value, error) { return v, nil }

func TestMakeLoad(t *testing.T) {
	arr := types.NewArray(nil)
	cases := []types.Value{
		types.Nil,
		types.True,
		types.Int(-3),
		types.Float(1.5),
		types.String("a"),
		types.Tuple{types.Int(1), types.String("b")},
		arr,
	}
	for _, v := range cases {
		t.Run(v.Type(), func(t *testing.T) {
			c := atom.Make(v)
			assert.Equal(t, v, c.Load())
		})
	}
}

func TestMakeNil(t *testing.T) {
	assert.PanicsWithValue(t, atom.ErrNilValue, func() { atom.Make(nil) })
}

func TestCellIsValue(t *testing.T) {
	c := atom.Make(types.Int(1))
	assert.Equal(t, "atomic", c.Type())
	assert.Contains(t, c.String(), "atomic(0x")

	// a cell can hold another cell
	outer := atom.Make(c)
	assert.Same(t, c, outer.Load())
}

func TestStore(t *testing.T) {
	c := atom.Make(types.Int(1))
	got := c.Store(types.String("x"))
	assert.Equal(t, types.String("x"), got)
	assert.Equal(t, types.String("x"), c.Load())
}

func TestExchange(t *testing.T) {
	c := atom.Make(types.Int(1))
	prev := c.Exchange(types.Int(2))
	assert.Equal(t, types.Int(1), prev)
	assert.Equal(t, types.Int(2), c.Load())
}

func TestStoresHandle(t *testing.T) {
	arr := types.NewArray([]types.Value{types.Int(1)})
	c := atom.Make(arr)

	// mutating the referent is visible through the cell, which holds the same
	// handle.
	arr.Append(types.Int(2))
	got := c.Load().(*types.Array)
	assert.Same(t, arr, got)
	assert.Equal(t, 2, got.Len())
}

func TestCompareExchange(t *testing.T) {
	c := atom.Make(types.Int(5))

	got, err := c.CompareExchange(types.Int(5), types.Int(10), numEqual)
	require.NoError(t, err)
	assert.Equal(t, types.Int(5), got)
	assert.Equal(t, types.Int(10), c.Load())

	got, err = c.CompareExchange(types.Int(5), types.Int(20), numEqual)
	require.NoError(t, err)
	assert.Equal(t, types.Int(10), got)
	assert.Equal(t, types.Int(10), c.Load())
}

func TestCompareExchangeValueEquality(t *testing.T) {
	// the cell holds an int, expected is an equal float: the swap happens even
	// though the representations differ.
	c := atom.Make(types.Int(5))
	got, err := c.CompareExchange(types.Float(5), types.String("swapped"), numEqual)
	require.NoError(t, err)
	assert.Equal(t, types.Int(5), got)
	assert.Equal(t, types.String("swapped"), c.Load())
}

func TestCompareExchangeMismatchSingleCompare(t *testing.T) {
	c := atom.Make(types.Int(1))
	var calls int
	eq := func(x, y types.Value) (bool, error) {
		calls++
		return numEqual(x, y)
	}
	got, err := c.CompareExchange(types.Int(2), types.Int(3), eq)
	require.NoError(t, err)
	assert.Equal(t, types.Int(1), got)
	assert.Equal(t, 1, calls)
}

func TestCompareExchangeRetest(t *testing.T) {
	// a concurrent writer installs a distinct handle that is still value-equal
	// to expected: the comparison is run again and the swap retried.
	c := atom.Make(types.Int(7))
	var calls int
	eq := func(x, y types.Value) (bool, error) {
		calls++
		if calls == 1 {
			c.Store(types.Float(7))
		}
		return numEqual(x, y)
	}
	got, err := c.CompareExchange(types.Int(7), types.Int(8), eq)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, types.Float(7), got)
	assert.Equal(t, types.Int(8), c.Load())
}

func TestCompareExchangeRetestMismatch(t *testing.T) {
	// a concurrent writer installs a value no longer equal to expected: no
	// write happens and the new value is returned.
	c := atom.Make(types.Int(7))
	var calls int
	eq := func(x, y types.Value) (bool, error) {
		calls++
		if calls == 1 {
			c.Store(types.Int(9))
		}
		return numEqual(x, y)
	}
	got, err := c.CompareExchange(types.Int(7), types.Int(8), eq)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, types.Int(9), got)
	assert.Equal(t, types.Int(9), c.Load())
}

func TestCompareExchangeError(t *testing.T) {
	c := atom.Make(types.Int(1))
	boom := errors.New("boom")
	_, err := c.CompareExchange(types.Int(1), types.Int(2), func(x, y types.Value) (bool, error) {
		return true, boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, types.Int(1), c.Load())

	_, err = c.CompareExchange(nil, types.Int(2), numEqual)
	require.ErrorIs(t, err, atom.ErrNilValue)
}

func TestCompareExchangeConcurrentSingleWinner(t *testing.T) {
	const n = 32

	c := atom.Make(types.Int(0))
	var winners atomic.Int32

	var g errgroup.Group
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			got, err := c.CompareExchange(types.Int(0), types.Int(i+1), numEqual)
			if err != nil {
				return err
			}
			if got == types.Int(0) {
				winners.Add(1)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, int32(1), winners.Load())
	assert.NotEqual(t, types.Int(0), c.Load())
}

func TestFetchUpdateIdentity(t *testing.T) {
	c := atom.Make(types.String("same"))
	prev, err := c.FetchUpdate(identity)
	require.NoError(t, err)
	assert.Equal(t, types.String("same"), prev)
	assert.Equal(t, types.String("same"), c.Load())
}

func TestFetchUpdateError(t *testing.T) {
	c := atom.Make(types.Int(1))
	boom := errors.New("boom")
	_, err := c.FetchUpdate(func(types.Value) (types.Value, error) { return nil, boom })
	require.ErrorIs(t, err, boom)
	assert.Equal(t, types.Int(1), c.Load())

	_, err = c.FetchUpdate(func(types.Value) (types.Value, error) { return nil, nil })
	require.ErrorIs(t, err, atom.ErrNilValue)
	assert.Equal(t, types.Int(1), c.Load())
}

func TestFetchUpdateRecomputes(t *testing.T) {
	c := atom.Make(types.Int(0))
	var seen []types.Value
	prev, err := c.FetchUpdate(func(v types.Value) (types.Value, error) {
		seen = append(seen, v)
		if len(seen) == 1 {
			c.Store(types.Int(100))
		}
		return incr(v)
	})
	require.NoError(t, err)
	assert.Equal(t, []types.Value{types.Int(0), types.Int(100)}, seen)
	assert.Equal(t, types.Int(100), prev)
	assert.Equal(t, types.Int(101), c.Load())
}

func TestFetchUpdateConcurrent(t *testing.T) {
	const (
		workers = 16
		incs    = 500
	)

	c := atom.Make(types.Int(0))
	var g errgroup.Group
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			for j := 0; j < incs; j++ {
				if _, err := c.FetchUpdate(incr); err != nil {
					return err
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, types.Int(workers*incs), c.Load())
}

func TestFetchUpdatePrevUnique(t *testing.T) {
	// each successful update observes a distinct previous value: the swaps
	// are linearizable.
	const workers = 8

	c := atom.Make(types.Int(0))
	prevs := make([][]types.Int, workers)
	var g errgroup.Group
	for i := 0; i < workers; i++ {
		i := i
		g.Go(func() error {
			for j := 0; j < 200; j++ {
				prev, err := c.FetchUpdate(incr)
				if err != nil {
					return err
				}
				prevs[i] = append(prevs[i], prev.(types.Int))
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	seen := make(map[types.Int]bool)
	for _, ps := range prevs {
		for _, p := range ps {
			require.False(t, seen[p], "previous value %d observed twice", p)
			seen[p] = true
		}
	}
	assert.Len(t, seen, workers*200)
}

func TestScenario(t *testing.T) {
	c := atom.Make(types.Int(0))
	assert.Equal(t, types.Int(0), c.Exchange(types.Int(5)))
	assert.Equal(t, types.Int(5), c.Load())

	got, err := c.CompareExchange(types.Int(5), types.Int(10), numEqual)
	require.NoError(t, err)
	assert.Equal(t, types.Int(5), got)
	assert.Equal(t, types.Int(10), c.Load())

	got, err = c.CompareExchange(types.Int(5), types.Int(20), numEqual)
	require.NoError(t, err)
	assert.Equal(t, types.Int(10), got)
	assert.Equal(t, types.Int(10), c.Load())

	got, err = c.FetchUpdate(incr)
	require.NoError(t, err)
	assert.Equal(t, types.Int(10), got)
	assert.Equal(t, types.Int(11), c.Load())
}

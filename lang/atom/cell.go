// Package atom implements the atomic cell, a shared single-slot container of
// a types.Value supporting lock-free concurrent load, store, exchange,
// compare-and-swap and fetch-update. All operations are sequentially
// consistent.
//
// The cell stores value handles: it guarantees which handle currently occupies
// the slot, not anything about the data a handle refers to.
package atom

import (
	"errors"
	"fmt"

	"github.com/mna/lotus/internal/atomicslot"
	"github.com/mna/lotus/lang/types"
)

// EqualFunc reports whether x and y are equal values. It is used by
// CompareExchange to decide whether a swap should be attempted, and may
// implement a notion of equality broader than identity (e.g. numeric
// equality of an int and a float).
type EqualFunc func(x, y types.Value) (bool, error)

// UpdateFunc computes the value to install in a cell from its current value.
// It may be called more than once by a single FetchUpdate, each time with the
// value most recently observed in the cell, so it must not rely on being
// called only once.
type UpdateFunc func(cur types.Value) (types.Value, error)

// ErrNilValue is returned when a nil Go interface is used where a value is
// required. The runtime represents the absence of a value with types.Nil.
var ErrNilValue = errors.New("nil is not a valid value")

// entry boxes a value so that the slot holds a single machine word. A new
// entry is allocated on each write, so identity of entries is what the
// hardware compare-and-swap compares.
type entry struct {
	v types.Value
}

// A Cell is an atomic cell. Its identity is its address; it must not be
// copied. The zero value is not a valid cell, use Make.
type Cell struct {
	slot atomicslot.Slot[entry]
}

var _ types.Value = (*Cell)(nil)

// Make returns a new cell holding initial. It panics if initial is nil.
func Make(initial types.Value) *Cell {
	if initial == nil {
		panic(ErrNilValue)
	}
	var c Cell
	c.slot.Init(&entry{initial})
	return &c
}

func (c *Cell) String() string { return fmt.Sprintf("atomic(%p)", c) }
func (c *Cell) Type() string   { return "atomic" }

// Load returns the value currently held by the cell.
func (c *Cell) Load() types.Value {
	return c.slot.Load().v
}

// Store replaces the value held by the cell with v and returns v. It panics
// if v is nil.
func (c *Cell) Store(v types.Value) types.Value {
	if v == nil {
		panic(ErrNilValue)
	}
	c.slot.Store(&entry{v})
	return v
}

// Exchange replaces the value held by the cell with v and returns the value
// it held immediately before. It panics if v is nil.
func (c *Cell) Exchange(v types.Value) types.Value {
	if v == nil {
		panic(ErrNilValue)
	}
	return c.slot.Swap(&entry{v}).v
}

// CompareExchange installs desired if the value held by the cell is equal to
// expected according to eq, and returns the value observed: on success, the
// value held immediately before the swap, otherwise the current value (and
// nothing is written).
//
// Equality is tested at the value level with eq, while the swap itself only
// succeeds if the cell still holds the exact handle that was tested. When the
// swap fails because another writer got in between, the newly observed value
// is tested again against expected, and the swap retried as long as it is
// equal.
//
// An error returned by eq ends the operation without writing anything.
func (c *Cell) CompareExchange(expected, desired types.Value, eq EqualFunc) (types.Value, error) {
	if expected == nil || desired == nil {
		return nil, ErrNilValue
	}

	next := &entry{desired}
	prev, _, err := atomicslot.Retry(&c.slot, func(cur *entry) (*entry, bool, error) {
		ok, err := eq(cur.v, expected)
		if err != nil || !ok {
			return nil, false, err
		}
		return next, true, nil
	})
	if err != nil {
		return nil, err
	}
	return prev.v, nil
}

// FetchUpdate atomically replaces the value held by the cell with the result
// of f applied to it, and returns the value held immediately before the
// replacement. If the cell is modified concurrently between the call to f and
// the swap, f is called again with the new value, until a swap succeeds.
//
// An error returned by f ends the operation without writing anything, as
// does a nil result (which returns ErrNilValue).
func (c *Cell) FetchUpdate(f UpdateFunc) (types.Value, error) {
	prev, _, err := atomicslot.Retry(&c.slot, func(cur *entry) (*entry, bool, error) {
		v, err := f(cur.v)
		if err != nil {
			return nil, false, err
		}
		if v == nil {
			return nil, false, ErrNilValue
		}
		return &entry{v}, true, nil
	})
	if err != nil {
		return nil, err
	}
	return prev.v, nil
}

package types

import (
	"fmt"
)

// An *Array represents a mutable list of values. Arrays are reference values:
// two arrays are equal only if they are the same array.
type Array struct {
	elems []Value
}

var _ Value = (*Array)(nil)

// NewArray returns an array containing the specified elements. Callers should
// not subsequently modify elems.
func NewArray(elems []Value) *Array { return &Array{elems: elems} }

func (a *Array) String() string    { return fmt.Sprintf("array(%p)", a) }
func (a *Array) Type() string      { return "array" }
func (a *Array) Len() int          { return len(a.elems) }
func (a *Array) Index(i int) Value { return a.elems[i] }

func (a *Array) SetIndex(i int, v Value) error {
	a.elems[i] = v
	return nil
}

// Append adds v at the end of the array.
func (a *Array) Append(v Value) {
	a.elems = append(a.elems, v)
}

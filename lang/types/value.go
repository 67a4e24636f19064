// Package types defines the values of the host runtime. Scalars (Nil, Bool,
// Int, Float, String) and tuples are immutable; arrays and maps are reference
// values shared by every handle that points to them.
package types

// Value is implemented by every value of the runtime. A Value is a handle:
// copying it, or storing it in an atomic cell, never clones the data it
// refers to.
type Value interface {
	String() string

	// Type is the short name of the value's type, as used in error messages.
	Type() string
}

// Ordered is implemented by types that define a total order between their
// own values.
type Ordered interface {
	Value

	// Cmp returns a negative number if x < y, a positive one if x > y and 0 if
	// they are equal. y always has the same type as x. The depth is the
	// remaining recursion budget, a compound type must decrement it for its
	// elements and fail once it drops below 1.
	//
	// Use machine.Compare instead of calling Cmp directly.
	Cmp(y Value, depth int) (int, error)
}

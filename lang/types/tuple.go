package types

import "strings"

// A Tuple represents an immutable list of values (only the list is immutable,
// the values themselves are not). Tuples compare structurally, element by
// element, and are not valid map keys.
type Tuple []Value

var _ Value = Tuple(nil)

func (t Tuple) String() string {
	var buf strings.Builder
	buf.WriteByte('(')
	for i, v := range t {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(v.String())
	}
	if len(t) == 1 {
		buf.WriteByte(',')
	}
	buf.WriteByte(')')
	return buf.String()
}

func (t Tuple) Type() string { return "tuple" }

package types

import (
	"strconv"
	"strings"
)

// String is an immutable string value, ordered bytewise.
type String string

var (
	_ Value   = String("")
	_ Ordered = String("")
)

func (s String) String() string { return strconv.Quote(string(s)) }
func (s String) Type() string   { return "string" }

func (s String) Cmp(y Value, _ int) (int, error) {
	return strings.Compare(string(s), string(y.(String))), nil
}

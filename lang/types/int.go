package types

import "strconv"

// Int is a signed 64-bit integer. It compares numerically with Float in
// machine.Compare, but is a distinct map key.
type Int int64

var (
	_ Value   = Int(0)
	_ Ordered = Int(0)
)

func (i Int) String() string { return strconv.FormatInt(int64(i), 10) }
func (i Int) Type() string   { return "int" }

func (i Int) Cmp(y Value, _ int) (int, error) {
	switch j := y.(Int); {
	case i < j:
		return -1, nil
	case i > j:
		return +1, nil
	}
	return 0, nil
}

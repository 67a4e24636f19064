package machine

import (
	"fmt"
	"math"
	"reflect"

	"github.com/mna/lotus/lang/token"
	"github.com/mna/lotus/lang/types"
)

// Compare compares two values with no bound on the depth of recursion. See
// CompareDepth.
func Compare(op token.Token, x, y types.Value) (bool, error) {
	return CompareDepth(op, x, y, math.MaxInt)
}

// EqualsDepth reports whether x and y are equal values. Ints and floats
// compare numerically (Int(1) equals Float(1.0)), tuples compare element by
// element, other values of the same type compare with their Cmp method if
// they are ordered and by identity otherwise. Values of different types are
// never equal.
func EqualsDepth(x, y types.Value, depth uint64) (bool, error) {
	return CompareDepth(token.EQEQ, x, y, depth)
}

// CompareDepth compares two values. The comparison operation must be one of
// EQEQ, BANGEQ, LT, LE, GT, or GE. CompareDepth returns an error if an
// ordered comparison was requested for a pair of values that do not support
// it.
//
// The depth parameter limits the maximum depth of recursion in cyclic data
// structures.
func CompareDepth(op token.Token, x, y types.Value, depth uint64) (bool, error) {
	if !op.IsRelational() {
		return false, fmt.Errorf("invalid comparison operator %#v", op)
	}
	if depth < 1 {
		return false, fmt.Errorf("comparison exceeded maximum recursion depth")
	}

	if sameType(x, y) {
		switch x := x.(type) {
		case types.Ordered:
			t, err := x.Cmp(y, int(min(depth, math.MaxInt)))
			if err != nil {
				return false, err
			}
			return threeway(op, t), nil

		case types.Tuple:
			return compareTuple(op, x, y.(types.Tuple), depth)
		}

		if !reflect.TypeOf(x).Comparable() {
			return false, fmt.Errorf("%s %s %s not implemented", x.Type(), op, y.Type())
		}

		// use identity comparison
		switch op {
		case token.EQEQ:
			return x == y, nil
		case token.BANGEQ:
			return x != y, nil
		}
		return false, fmt.Errorf("%s %s %s not implemented", x.Type(), op, y.Type())
	}

	// different types

	// int/float ordered comparisons
	switch x := x.(type) {
	case types.Int:
		if y, ok := y.(types.Float); ok {
			return threeway(op, -floatIntCmp(y, x)), nil
		}
	case types.Float:
		if y, ok := y.(types.Int); ok {
			return threeway(op, floatIntCmp(x, y)), nil
		}
	}

	// All other values of different types compare unequal.
	switch op {
	case token.EQEQ:
		return false, nil
	case token.BANGEQ:
		return true, nil
	}
	return false, fmt.Errorf("%s %s %s not implemented", x.Type(), op, y.Type())
}

// floatIntCmp compares a float and an int, with NaN greater than any int and
// infinities beyond any int.
func floatIntCmp(x types.Float, y types.Int) int {
	switch {
	case x != x:
		return +1 // x is NaN
	case math.IsInf(float64(x), +1):
		return +1
	case math.IsInf(float64(x), -1):
		return -1
	}
	return types.FloatCmp(x, types.Float(y))
}

// compareTuple compares tuples lexicographically, each element with
// CompareDepth at depth-1.
func compareTuple(op token.Token, x, y types.Tuple, depth uint64) (bool, error) {
	// fast path: tuples of different lengths are never equal
	if len(x) != len(y) && (op == token.EQEQ || op == token.BANGEQ) {
		return op == token.BANGEQ, nil
	}

	for i := 0; i < len(x) && i < len(y); i++ {
		eq, err := CompareDepth(token.EQEQ, x[i], y[i], depth-1)
		if err != nil {
			return false, err
		}
		if !eq {
			switch op {
			case token.EQEQ:
				return false, nil
			case token.BANGEQ:
				return true, nil
			}
			// first differing element decides the order
			return CompareDepth(op, x[i], y[i], depth-1)
		}
	}
	return threeway(op, len(x)-len(y)), nil
}

func sameType(x, y types.Value) bool {
	return reflect.TypeOf(x) == reflect.TypeOf(y)
}

// threeway interprets a three-way comparison value cmp (negative, 0,
// positive) as a boolean comparison (e.g. x < y).
func threeway(op token.Token, cmp int) bool {
	switch op {
	case token.EQEQ:
		return cmp == 0
	case token.BANGEQ:
		return cmp != 0
	case token.LE:
		return cmp <= 0
	case token.LT:
		return cmp < 0
	case token.GE:
		return cmp >= 0
	case token.GT:
		return cmp > 0
	}
	panic(op)
}

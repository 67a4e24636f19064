package machine

import (
	"fmt"

	"github.com/mna/lotus/lang/token"
	"github.com/mna/lotus/lang/types"
)

// Binary applies a binary arithmetic operator to its operands. For equality
// tests or ordered comparisons, use Compare instead.
//
// If both operands are integers, the operation is performed over integers
// and the result is an integer. Otherwise, if both operands are numbers, they
// are converted to floats, the operation is performed following Go's rules
// for floating-point arithmetic (IEEE 754), and the result is a float. The +
// operator also concatenates strings, with no implicit conversion.
func Binary(op token.Token, l, r types.Value) (types.Value, error) {
	if !op.IsArithmetic() {
		return nil, fmt.Errorf("invalid binary operator %#v", op)
	}

	switch l := l.(type) {
	case types.String:
		if r, ok := r.(types.String); ok && op == token.PLUS {
			return l + r, nil
		}
	case types.Int:
		switch r := r.(type) {
		case types.Int:
			return intArith(op, l, r), nil
		case types.Float:
			return floatArith(op, types.Float(l), r), nil
		}
	case types.Float:
		switch r := r.(type) {
		case types.Float:
			return floatArith(op, l, r), nil
		case types.Int:
			return floatArith(op, l, types.Float(r)), nil
		}
	}
	return nil, fmt.Errorf("unsupported binary op: %s %s %s", l.Type(), op, r.Type())
}

func intArith(op token.Token, l, r types.Int) types.Int {
	switch op {
	case token.PLUS:
		return l + r
	case token.MINUS:
		return l - r
	case token.STAR:
		return l * r
	}
	panic(op)
}

func floatArith(op token.Token, l, r types.Float) types.Float {
	switch op {
	case token.PLUS:
		return l + r
	case token.MINUS:
		return l - r
	case token.STAR:
		return l * r
	}
	panic(op)
}

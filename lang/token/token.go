// Package token defines the operator tokens understood by the machine's
// comparison and arithmetic operations.
package token

// A Token represents an operator.
type Token int8

//nolint:revive
const (
	ILLEGAL Token = iota

	// arithmetic operators
	PLUS  // +
	MINUS // -
	STAR  // *

	// relational operators
	EQEQ   // ==
	BANGEQ // !=
	LT     // <
	GT     // >
	GE     // >=
	LE     // <=

	maxToken             = LE
	arithStart, arithEnd = PLUS, STAR
	relStart, relEnd     = EQEQ, LE
)

func (tok Token) String() string {
	if tok < 0 || tok > maxToken {
		return "illegal token"
	}
	return tokenNames[tok]
}

// GoString is like String but quotes the operator. Use Sprintf("%#v", tok)
// when constructing error messages.
func (tok Token) GoString() string {
	if tok.IsArithmetic() || tok.IsRelational() {
		return "'" + tokenNames[tok] + "'"
	}
	return tok.String()
}

// IsArithmetic returns true if tok is a binary arithmetic operator.
func (tok Token) IsArithmetic() bool { return tok >= arithStart && tok <= arithEnd }

// IsRelational returns true if tok is a comparison operator.
func (tok Token) IsRelational() bool { return tok >= relStart && tok <= relEnd }

var tokenNames = [...]string{
	ILLEGAL: "illegal token",

	PLUS:  "+",
	MINUS: "-",
	STAR:  "*",

	EQEQ:   "==",
	BANGEQ: "!=",
	LT:     "<",
	GT:     ">",
	GE:     ">=",
	LE:     "<=",
}

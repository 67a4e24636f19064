package machine

import (
	"errors"
	"fmt"
)

// ErrTypeMismatch is matched (via errors.Is) by every TypeError.
var ErrTypeMismatch = errors.New("type mismatch")

// A TypeError is returned when an argument of a built-in function is not of
// the expected type.
type TypeError struct {
	Func string // name of the function called
	Arg  int    // 1-based position of the argument
	Want string // description of the expected type
	Got  string // type of the actual argument
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s: argument #%d: %s expected, got %s", e.Func, e.Arg, e.Want, e.Got)
}

func (e *TypeError) Is(target error) bool { return target == ErrTypeMismatch }

// An ArityError is returned when a function is called with the wrong number
// of arguments.
type ArityError struct {
	Func string
	Want int
	Got  int
}

func (e *ArityError) Error() string {
	if e.Want == 0 {
		return fmt.Sprintf("function %s accepts no arguments (%d given)", e.Func, e.Got)
	}
	return fmt.Sprintf("function %s accepts exactly %d argument%s (%d given)", e.Func, e.Want, plural(e.Want), e.Got)
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

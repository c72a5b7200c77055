package gen

import (
	"errors"
	"fmt"

	"github.com/coregx/regen/syntax"
)

// Generation errors. A tree that parsed successfully can still contain
// constructs the generator cannot realize.
var (
	// ErrNegatedClass indicates a [^...] class.
	ErrNegatedClass = errors.New("negated character classes are not supported")

	// ErrUnexpectedNode indicates a node kind the generator cannot interpret,
	// such as a conditional backreference.
	ErrUnexpectedNode = errors.New("unexpected node")

	// ErrUnrealizedGroup indicates a backreference to a group that produced
	// no text earlier in the same invocation.
	ErrUnrealizedGroup = errors.New("backreference to an unrealized group")

	// ErrUnknownCategory indicates a category code without a character table.
	ErrUnknownCategory = errors.New("unknown category")
)

// Error wraps a generation failure with the kind of node that caused it.
type Error struct {
	Op  syntax.Op
	Err error
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("regen: cannot generate %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying sentinel
func (e *Error) Unwrap() error {
	return e.Err
}

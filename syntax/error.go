package syntax

import (
	"errors"
	"fmt"
)

// Syntax errors. Every compile failure wraps exactly one of these.
var (
	ErrBadEscape           = errors.New("bad escape")
	ErrIncompleteEscape    = errors.New("incomplete escape")
	ErrOctalRange          = errors.New("octal escape value outside of range 0-0o377")
	ErrUnterminatedClass   = errors.New("unterminated character set")
	ErrBadRange            = errors.New("bad character range")
	ErrNothingToRepeat     = errors.New("nothing to repeat")
	ErrMultipleRepeat      = errors.New("multiple repeat")
	ErrRepeatTooLarge      = errors.New("the repetition number is too large")
	ErrMinGreaterThanMax   = errors.New("min repeat greater than max repeat")
	ErrMissingParen        = errors.New("missing ), unterminated subpattern")
	ErrUnbalancedParen     = errors.New("unbalanced parenthesis")
	ErrUnterminatedName    = errors.New("missing terminator")
	ErrMissingName         = errors.New("missing")
	ErrBadGroupName        = errors.New("bad character in group name")
	ErrGroupRedefined      = errors.New("redefinition of group name")
	ErrUnknownGroupName    = errors.New("unknown group name")
	ErrInvalidGroupRef     = errors.New("invalid group reference")
	ErrBadGroupNumber      = errors.New("bad group number")
	ErrOpenGroupRef        = errors.New("cannot refer to an open group")
	ErrLookbehindGroupRef  = errors.New("cannot refer to group defined in the same lookbehind subpattern")
	ErrTooManyGroups       = errors.New("too many groups")
	ErrUnknownExtension    = errors.New("unknown extension")
	ErrUnexpectedEnd       = errors.New("unexpected end of pattern")
	ErrUnterminatedComment = errors.New("missing ), unterminated comment")
	ErrCondBranches        = errors.New("conditional backref with more than two branches")
	ErrBadFlags            = errors.New("bad inline flags")
	ErrIncompatibleFlags   = errors.New("ASCII and UNICODE flags are incompatible")
	ErrLocaleFlag          = errors.New("cannot use LOCALE flag with a str pattern")
	ErrUndefinedCharName   = errors.New("undefined character name")
	ErrTooDeep             = errors.New("pattern nests too deeply")
)

// Error describes a failure to compile a pattern.
type Error struct {
	Pattern string
	Pos     int    // rune offset of the offending unit, -1 if unknown
	Err     error  // one of the Err* sentinels
	Detail  string // offending text, may be empty
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := e.Err.Error()
	if e.Detail != "" {
		msg += " " + e.Detail
	}
	if e.Pos >= 0 {
		return fmt.Sprintf("error parsing pattern %q at position %d: %s", e.Pattern, e.Pos, msg)
	}
	return fmt.Sprintf("error parsing pattern %q: %s", e.Pattern, msg)
}

// Unwrap returns the underlying sentinel
func (e *Error) Unwrap() error {
	return e.Err
}

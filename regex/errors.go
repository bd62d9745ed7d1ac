package regex

import (
	"errors"
	"fmt"
)

// Error categories for invalid patterns. A PatternError wraps exactly one of them.
var (
	ErrWhitespace            = errors.New("pattern contains whitespace")
	ErrUnbalancedParenthesis = errors.New("unbalanced parenthesis")
	ErrDanglingRepetition    = errors.New("repetition operator with nothing to repeat")
	ErrMalformedPattern      = errors.New("malformed pattern")
)

// PatternError is returned for syntactically invalid regular expressions.
// Pos is the index of the offending rune in Pattern, or -1 if the error
// relates to the pattern as a whole.
type PatternError struct {
	Pattern string
	Pos     int
	Err     error
}

func (e *PatternError) Error() string {
	if e.Pos < 0 {
		return fmt.Sprintf("invalid pattern %q: %v", e.Pattern, e.Err)
	}
	return fmt.Sprintf("invalid pattern %q at position %d: %v", e.Pattern, e.Pos, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

func patternError(pattern []rune, pos int, err error) *PatternError {
	return &PatternError{Pattern: string(pattern), Pos: pos, Err: err}
}

package spec

import (
	"errors"
	"fmt"
)

// Error categories of specification files. A SpecificationError wraps
// exactly one of them.
var (
	ErrSyntax             = errors.New("syntax error")
	ErrUnbalanced         = errors.New("unbalanced delimiters")
	ErrForbiddenCharacter = errors.New("forbidden character")
	ErrEmptyPattern       = errors.New("empty pattern")
	ErrUndefinedToken     = errors.New("undefined token")
	ErrUndefinedSymbol    = errors.New("undefined symbol")
	ErrSymbolClash        = errors.New("token used as left hand side")
	ErrEmptyProduction    = errors.New("production without left hand side")
	ErrMissingSeparator   = errors.New("missing %% separator")
	ErrDuplicateSeparator = errors.New("duplicate %% separator")
	ErrNoProductions      = errors.New("no productions")
)

// SpecificationError is returned for invalid specification files. Line is
// the line of the offending input, or 0 if the error concerns the file as a
// whole.
type SpecificationError struct {
	Line int
	Err  error
	msg  string
}

func (e *SpecificationError) Error() string {
	var s string
	if e.Line > 0 {
		s = fmt.Sprintf("line %d: %v", e.Line, e.Err)
	} else {
		s = e.Err.Error()
	}
	if e.msg != "" {
		s += ": " + e.msg
	}
	return s
}

func (e *SpecificationError) Unwrap() error {
	return e.Err
}

func specError(line int, err error, format string, args ...interface{}) *SpecificationError {
	e := &SpecificationError{Line: line, Err: err, msg: fmt.Sprintf(format, args...)}
	tracer().Errorf("%v", e)
	return e
}

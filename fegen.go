package fegen

import "fmt"

// --- Tokens shared between scanners and parsers -----------------------------

// TokType is a category type for a Token. Parsers use it to index their tables.
// Grammars built from specification files assign token types to terminals in
// declaration order, starting at 1. Negative values are reserved for the
// categories of text/scanner (EOF = -1), 0 denotes epsilon.
type TokType int

// TokTypeStringer is a type to be provided by a scanner/parser combination to be able
// to print out token categories.
type TokTypeStringer func(TokType) string

// Token represents an input token. Tokens are produced by a tokenizer and
// reflect terminals in a grammar.
//
// An example would be a token for an identifier matched by lexer rule "ID":
//
//    TokType = 3           // token type the grammar assigned to terminal ID
//    Lexeme  = "counter"   // lexeme as it appeared in the input stream
//    Value   = "ID"        // name of the lexer rule which matched
//    Span    = 67…74       // occured from position 67 in the input stream
//
type Token interface {
	TokType() TokType
	Lexeme() string
	Value() interface{}
	Span() Span
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a length of input run. A span denotes
// a start position and the position just behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

// IsNull is true for the zero span.
func (s Span) IsNull() bool {
	return s == Span{}
}

// Extend returns the smallest span covering s and other. A null span does
// not contribute.
func (s Span) Extend(other Span) Span {
	if other.IsNull() {
		return s
	}
	if s.IsNull() {
		return other
	}
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}

/*
Package scanner defines an interface for scanners to be used with parsers of package lr.

Four scanner implementations are provided:

■ a thin wrapper over the Go std lib 'text/scanner' (GoTokenizer),

■ a tokenizer driven by an automaton of package nfa (NFATokenizer),

■ a tokenizer replaying a prepared list of tokens (SliceTokenizer),

■ an adapter for lexmachine, living in sub-package `lexmach`.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"io"
	"text/scanner"

	"github.com/npillmayer/fegen"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fegen.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("fegen.scanner")
}

// EOF is identical to text/scanner.EOF.
// Token types are replicated here for practical reasons.
const (
	EOF       = scanner.EOF
	Ident     = scanner.Ident
	Int       = scanner.Int
	Float     = scanner.Float
	Char      = scanner.Char
	String    = scanner.String
	RawString = scanner.RawString
	Comment   = scanner.Comment
)

// Tokenizer is a scanner interface. At end of input tokenizers return a
// token of type EOF, repeatedly if called again.
type Tokenizer interface {
	NextToken() fegen.Token
	SetErrorHandler(func(error))
}

// DefaultTokenizer is a default implementation, backed by scanner.Scanner.
// Create one with GoTokenizer.
type DefaultTokenizer struct {
	scanner.Scanner
	lastToken    rune        // last token this scanner has produced
	Error        func(error) // error handler
	unifyStrings bool        // convert single chars to strings
}

var _ Tokenizer = (*DefaultTokenizer)(nil)

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: %v", e)
}

// GoTokenizer creates a scanner/tokenizer accepting tokens similar to the Go language.
func GoTokenizer(sourceID string, input io.Reader, opts ...Option) *DefaultTokenizer {
	t := &DefaultTokenizer{}
	t.Error = logError
	t.Init(input)
	t.Filename = sourceID
	t.Scanner.Error = func(s *scanner.Scanner, msg string) {
		t.Error(&ScanError{Pos: uint64(s.Pos().Offset), Msg: msg})
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SetErrorHandler sets an error handler for the scanner.
func (t *DefaultTokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		t.Error = logError
		return
	}
	t.Error = h
}

// NextToken is part of the Tokenizer interface.
func (t *DefaultTokenizer) NextToken() fegen.Token {
	t.lastToken = t.Scan()
	if t.lastToken == scanner.EOF {
		tracer().Debugf("DefaultTokenizer reached end of input")
	}
	if t.unifyStrings &&
		(t.lastToken == scanner.RawString || t.lastToken == scanner.Char) {
		t.lastToken = scanner.String
	}
	return DefaultToken{
		kind:   fegen.TokType(t.lastToken),
		lexeme: t.TokenText(),
		span:   fegen.Span{uint64(t.Position.Offset), uint64(t.Pos().Offset)},
	}
}

// ScanError is an error reported by a tokenizer for malformed input.
type ScanError struct {
	Pos uint64
	Msg string
}

func (e *ScanError) Error() string {
	return e.Msg
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is a very unsophisticated token type, used as default for all
// the tokenizers of this package as well as the LexMachine scanner.
type DefaultToken struct {
	kind   fegen.TokType
	lexeme string
	Val    interface{}
	span   fegen.Span
}

// MakeDefaultToken creates a token.
func MakeDefaultToken(typ fegen.TokType, lexeme string, span fegen.Span) DefaultToken {
	return DefaultToken{
		kind:   typ,
		lexeme: lexeme,
		span:   span,
	}
}

// TokType is part of interface fegen.Token.
func (t DefaultToken) TokType() fegen.TokType {
	return t.kind
}

// Value is part of interface fegen.Token.
func (t DefaultToken) Value() interface{} {
	return t.Val
}

// Lexeme is part of interface fegen.Token.
func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

// Span is part of interface fegen.Token.
func (t DefaultToken) Span() fegen.Span {
	return t.span
}

// --- Scanner options for the default (Go) tokenizer ---------------------------

// Option configures a default tokenier.
type Option func(p *DefaultTokenizer)

// SkipComments sets or clears mode-flag SkipComments.
func SkipComments(b bool) Option {
	return func(t *DefaultTokenizer) {
		if b {
			t.Mode |= scanner.SkipComments
		} else {
			t.Mode &^= scanner.SkipComments
		}
	}
}

// UnifyStrings sets or clears option UnifyStrings:
// treat raw strings and single chars as strings.
func UnifyStrings(b bool) Option {
	return func(t *DefaultTokenizer) {
		t.unifyStrings = b
	}
}

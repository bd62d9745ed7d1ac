package scanner

import (
	"fmt"

	"github.com/npillmayer/fegen"
	"github.com/npillmayer/fegen/nfa"
)

// NFATokenizer adapts the scanner of an nfa.Automaton to the Tokenizer
// interface. Lexer rules are mapped to token types; tokens of skipped rules
// are dropped. Lexical errors are reported to the error handler and
// scanning continues after them.
type NFATokenizer struct {
	sc          *nfa.Scanner
	types       map[string]fegen.TokType
	skip        map[string]bool
	Error       func(error) // error handler
	stopOnError bool
	failed      bool
	end         uint64
}

var _ Tokenizer = (*NFATokenizer)(nil)

// NFAOption configures an NFATokenizer.
type NFAOption func(*NFATokenizer)

// Skip drops tokens of the given lexer rules.
func Skip(rules ...string) NFAOption {
	return func(t *NFATokenizer) {
		for _, r := range rules {
			t.skip[r] = true
		}
	}
}

// StopOnError makes the tokenizer report end of input after the first
// lexical error.
func StopOnError(b bool) NFAOption {
	return func(t *NFATokenizer) {
		t.stopOnError = b
	}
}

// NewNFATokenizer creates a tokenizer for text. types maps the names of
// lexer rules to the token types a parser expects.
func NewNFATokenizer(A *nfa.Automaton, text string, types map[string]fegen.TokType,
	opts ...NFAOption) *NFATokenizer {
	//
	t := &NFATokenizer{
		sc:    A.Scanner(text),
		types: types,
		skip:  make(map[string]bool),
		Error: logError,
		end:   uint64(len([]rune(text))),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SetErrorHandler sets an error handler for the scanner.
func (t *NFATokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		t.Error = logError
		return
	}
	t.Error = h
}

// NextToken is part of the Tokenizer interface. Token values are the names
// of the matching lexer rules.
func (t *NFATokenizer) NextToken() fegen.Token {
	for !t.failed {
		tok, err, eof := t.sc.Next()
		if eof {
			break
		}
		if err != nil {
			t.Error(err)
			t.failed = t.stopOnError
			continue
		}
		if t.skip[tok.Rule] {
			tracer().Debugf("skipping %v", tok)
			continue
		}
		typ, ok := t.types[tok.Rule]
		if !ok {
			t.Error(fmt.Errorf("lexer rule %s has no token type", tok.Rule))
			t.failed = t.stopOnError
			continue
		}
		token := MakeDefaultToken(typ, tok.Lexeme, tok.Span)
		token.Val = tok.Rule
		return token
	}
	return MakeDefaultToken(EOF, "", fegen.Span{t.end, t.end})
}

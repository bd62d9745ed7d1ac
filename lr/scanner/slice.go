package scanner

import (
	"github.com/npillmayer/fegen"
)

// SliceTokenizer replays a list of tokens. After the last token it returns
// EOF tokens, positioned behind the last token.
type SliceTokenizer struct {
	tokens []fegen.Token
	next   int
}

var _ Tokenizer = (*SliceTokenizer)(nil)

// NewSliceTokenizer creates a tokenizer for a list of tokens. An EOF token
// within the list ends the input.
func NewSliceTokenizer(tokens []fegen.Token) *SliceTokenizer {
	return &SliceTokenizer{tokens: tokens}
}

// SetErrorHandler is part of the Tokenizer interface. A SliceTokenizer
// never reports errors.
func (t *SliceTokenizer) SetErrorHandler(func(error)) {}

// NextToken is part of the Tokenizer interface.
func (t *SliceTokenizer) NextToken() fegen.Token {
	if t.next < len(t.tokens) {
		tok := t.tokens[t.next]
		if tok.TokType() != EOF {
			t.next++
		}
		return tok
	}
	var end uint64
	if len(t.tokens) > 0 {
		end = t.tokens[len(t.tokens)-1].Span().To()
	}
	return MakeDefaultToken(EOF, "", fegen.Span{end, end})
}

package scanner

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/npillmayer/fegen"
	"github.com/npillmayer/fegen/nfa"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var inputStrings = []string{
	"1",
	"1+12",
	"Hello #World",
	`x="mystring" // commented `,
	"1,22,333",
}

var tokenCounts = []int{1, 3, 3, 3, 5}

func TestScan1(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fegen.scanner")
	defer teardown()
	//
	for i, input := range inputStrings {
		t.Logf("------+-----------------+--------")
		reader := strings.NewReader(input)
		name := fmt.Sprintf("input #%d", i)
		scanner := GoTokenizer(name, reader, SkipComments(true))
		token := scanner.NextToken()
		count := 0
		for token.TokType() != EOF {
			t.Logf(" %4d | %15s | @%5d", token.TokType(), token.Lexeme(), token.Span().From())
			token = scanner.NextToken()
			count++
		}
		if count != tokenCounts[i] {
			t.Errorf("Expected token count for #%d to be %d, is %d", i, tokenCounts[i], count)
		}
	}
	t.Logf("------+-----------------+--------")
}

func TestGoTokenizerSpans(t *testing.T) {
	scanner := GoTokenizer("spans", strings.NewReader("ab + c"))
	token := scanner.NextToken()
	assert.Equal(t, fegen.TokType(Ident), token.TokType())
	assert.Equal(t, fegen.Span{0, 2}, token.Span())
	token = scanner.NextToken()
	assert.Equal(t, fegen.TokType('+'), token.TokType())
	assert.Equal(t, fegen.Span{3, 4}, token.Span())
}

func TestGoTokenizerUnifyStrings(t *testing.T) {
	scanner := GoTokenizer("strings", strings.NewReader("'x' `raw`"), UnifyStrings(true))
	assert.Equal(t, fegen.TokType(String), scanner.NextToken().TokType())
	assert.Equal(t, fegen.TokType(String), scanner.NextToken().TokType())
	assert.Equal(t, fegen.TokType(EOF), scanner.NextToken().TokType())
}

func testAutomaton(t *testing.T) *nfa.Automaton {
	c := nfa.NewComposer()
	for _, rule := range [][2]string{
		{"PLUS", "plus"},
		{"ID", "[a-z]+"},
		{"NUM", "[0-9]+"},
		{"X", "x"},
	} {
		f, err := nfa.Compile(rule[1])
		require.NoError(t, err)
		c.Add(rule[0], f)
	}
	return c.Automaton()
}

func TestNFATokenizer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fegen.scanner")
	defer teardown()
	//
	A := testAutomaton(t)
	types := map[string]fegen.TokType{"PLUS": 1, "ID": 2}
	var errs []error
	scan := NewNFATokenizer(A, "a plus 42 b $", types, Skip("NUM"))
	scan.SetErrorHandler(func(err error) { errs = append(errs, err) })
	var kinds []fegen.TokType
	var lexemes []string
	for token := scan.NextToken(); token.TokType() != EOF; token = scan.NextToken() {
		kinds = append(kinds, token.TokType())
		lexemes = append(lexemes, token.Lexeme())
	}
	assert.Equal(t, []fegen.TokType{2, 1, 2}, kinds)
	assert.Equal(t, []string{"a", "plus", "b"}, lexemes)
	require.Len(t, errs, 1)
	var lexerr *nfa.LexicalError
	require.True(t, errors.As(errs[0], &lexerr))
	assert.Equal(t, 12, lexerr.Pos)
	eof := scan.NextToken()
	assert.Equal(t, fegen.TokType(EOF), eof.TokType())
	assert.Equal(t, fegen.Span{13, 13}, eof.Span())
}

func TestNFATokenizerStopOnError(t *testing.T) {
	A := testAutomaton(t)
	types := map[string]fegen.TokType{"PLUS": 1, "ID": 2}
	scan := NewNFATokenizer(A, "a 7 b", types, StopOnError(true))
	var errs []error
	scan.SetErrorHandler(func(err error) { errs = append(errs, err) })
	token := scan.NextToken()
	assert.Equal(t, "a", token.Lexeme())
	assert.Equal(t, "ID", token.Value())
	assert.Equal(t, fegen.TokType(EOF), scan.NextToken().TokType()) // rule NUM has no type
	assert.Len(t, errs, 1)
}

func TestSliceTokenizer(t *testing.T) {
	scan := NewSliceTokenizer([]fegen.Token{
		MakeDefaultToken(Ident, "a", fegen.Span{0, 1}),
		MakeDefaultToken('+', "+", fegen.Span{2, 3}),
	})
	assert.Equal(t, "a", scan.NextToken().Lexeme())
	assert.Equal(t, "+", scan.NextToken().Lexeme())
	eof := scan.NextToken()
	assert.Equal(t, fegen.TokType(EOF), eof.TokType())
	assert.Equal(t, fegen.Span{3, 3}, eof.Span())
	assert.Equal(t, fegen.TokType(EOF), scan.NextToken().TokType())
}

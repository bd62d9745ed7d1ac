package spec

import (
	"fmt"
	"io"
	"sync"

	"github.com/npillmayer/fegen"
	"github.com/npillmayer/fegen/lr/scanner"
	"github.com/npillmayer/fegen/lr/scanner/lexmach"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// Token types of specification files.
const (
	tokLet = iota + 1
	tokRule
	tokIdent
	tokEquals
	tokBar
	tokPattern
	tokAction
	tokToken
	tokIgnore
	tokSeparator
	tokColon
	tokSemicolon
)

var tokenNames = map[int]string{
	tokLet:       "let",
	tokRule:      "rule",
	tokIdent:     "identifier",
	tokEquals:    "'='",
	tokBar:       "'|'",
	tokPattern:   "pattern",
	tokAction:    "action",
	tokToken:     "%token",
	tokIgnore:    "IGNORE",
	tokSeparator: "%%",
	tokColon:     "':'",
	tokSemicolon: "';'",
	scanner.EOF:  "end of input",
}

const identifier = `[a-zA-Z_][a-zA-Z0-9_]*`

type lexerOnce struct {
	once    sync.Once
	adapter *lexmach.LMAdapter
	err     error
}

var lexerSpecLM, grammarSpecLM lexerOnce

// lexerSpecLexer is the lexmachine lexer for lexer specifications.
func lexerSpecLexer() (*lexmach.LMAdapter, error) {
	lexerSpecLM.once.Do(func() {
		init := func(lexer *lexmachine.Lexer) {
			lexer.Add([]byte(`\(\*([^\*]|\*+[^\*\)])*\*+\)`), lexmach.Skip)
			lexer.Add([]byte(identifier), lexmach.MakeToken("ID", tokIdent))
			lexer.Add([]byte(`\"[^\n]*\"`), lexmach.MakeToken("PATTERN", tokPattern))
			lexer.Add([]byte(`\{[^\}]*\}`), lexmach.MakeToken("ACTION", tokAction))
			lexer.Add([]byte(`( |\t|\n|\r)+`), lexmach.Skip)
		}
		ids := map[string]int{"=": tokEquals, "|": tokBar, "let": tokLet, "rule": tokRule}
		lexerSpecLM.adapter, lexerSpecLM.err = lexmach.NewLMAdapter(init,
			[]string{"=", "|"}, []string{"let", "rule"}, ids)
	})
	return lexerSpecLM.adapter, lexerSpecLM.err
}

// grammarSpecLexer is the lexmachine lexer for grammar specifications.
func grammarSpecLexer() (*lexmach.LMAdapter, error) {
	grammarSpecLM.once.Do(func() {
		init := func(lexer *lexmachine.Lexer) {
			lexer.Add([]byte(`/\*([^\*]|\*+[^\*/])*\*+/`), lexmach.Skip)
			lexer.Add([]byte(`IGNORE`), lexmach.MakeToken("IGNORE", tokIgnore))
			lexer.Add([]byte(identifier), lexmach.MakeToken("ID", tokIdent))
			lexer.Add([]byte(`( |\t|\n|\r)+`), lexmach.Skip)
		}
		ids := map[string]int{":": tokColon, "|": tokBar, ";": tokSemicolon,
			"%token": tokToken, "%%": tokSeparator}
		grammarSpecLM.adapter, grammarSpecLM.err = lexmach.NewLMAdapter(init,
			[]string{":", "|", ";"}, []string{"%token", "%%"}, ids)
	})
	return grammarSpecLM.adapter, grammarSpecLM.err
}

// tokenStream reads the tokens of a specification file, with one token of
// look-ahead. The first lexical error ends the stream.
type tokenStream struct {
	sc     *lexmach.LMScanner
	err    error
	peeked fegen.Token
}

func newTokenStream(lexer func() (*lexmach.LMAdapter, error), r io.Reader) (*tokenStream, error) {
	adapter, err := lexer()
	if err != nil {
		return nil, fmt.Errorf("cannot create specification lexer: %w", err)
	}
	input, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	sc, err := adapter.Scanner(string(input))
	if err != nil {
		return nil, err
	}
	ts := &tokenStream{sc: sc}
	sc.SetErrorHandler(func(e error) {
		if ts.err != nil {
			return
		}
		line := 0
		if ui, ok := e.(*machines.UnconsumedInput); ok {
			line = ui.StartLine
		}
		ts.err = specError(line, ErrSyntax, "%v", e)
	})
	return ts, nil
}

// next returns the next token. After a lexical error it returns the error.
func (ts *tokenStream) next() (fegen.Token, error) {
	tok := ts.peek()
	ts.peeked = nil
	if ts.err != nil {
		return tok, ts.err
	}
	return tok, nil
}

func (ts *tokenStream) peek() fegen.Token {
	if ts.peeked == nil {
		ts.peeked = ts.sc.NextToken()
	}
	return ts.peeked
}

// expect reads the next token and checks its type.
func (ts *tokenStream) expect(typ int) (fegen.Token, error) {
	tok, err := ts.next()
	if err != nil {
		return tok, err
	}
	if int(tok.TokType()) != typ {
		return tok, unexpected(tok, tokenNames[typ])
	}
	return tok, nil
}

func unexpected(tok fegen.Token, expected string) *SpecificationError {
	if tok.TokType() == scanner.EOF {
		return specError(lineOf(tok), ErrSyntax, "unexpected end of input, expected %s", expected)
	}
	return specError(lineOf(tok), ErrSyntax, "unexpected %q, expected %s", tok.Lexeme(), expected)
}

// lineOf returns the line a token starts on. EOF tokens carry no line.
func lineOf(tok fegen.Token) int {
	if line, ok := tok.Value().(int); ok {
		return line
	}
	return 0
}

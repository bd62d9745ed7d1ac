/*
Package frontend glues lexer and parser generation together.

A Frontend is created from a lexer specification and a grammar
specification (see package spec). Creating it compiles every lexer rule to
an NFA, composes the rules into a single automaton, analyses the grammar and
builds SLR(1) tables. Grammars with conflicts are rejected with an
*lr.ConflictError.

    fe, err := frontend.Load("Expr", lexerFile, grammarFile)
    ...
    accept, tree, err := fe.Parse("a plus b")

Tokens of lexer rules with empty actions and tokens of terminals the grammar
ignores are dropped before parsing. A Frontend is immutable after creation
and may be used by concurrent goroutines.

Configuration

Key "lexer-stop-on-error" (global configuration, package gconf) makes Parse
stop reading input at the first lexical error.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package frontend

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/fegen"
	"github.com/npillmayer/fegen/lr"
	"github.com/npillmayer/fegen/lr/scanner"
	"github.com/npillmayer/fegen/lr/slr"
	"github.com/npillmayer/fegen/nfa"
	"github.com/npillmayer/fegen/spec"
	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/exp/slices"
)

// tracer traces with key 'fegen.frontend'.
func tracer() tracing.Trace {
	return tracing.Select("fegen.frontend")
}

// ErrMissingTerminal is returned if no lexer rule reports a terminal the
// grammar uses.
var ErrMissingTerminal = errors.New("terminal not produced by any lexer rule")

// Frontend is a generated lexer and parser pair.
type Frontend struct {
	Lexer     *spec.LexerSpec
	Grammar   *spec.GrammarSpec
	automaton *nfa.Automaton
	analysis  *lr.LRAnalysis
	tables    *lr.TableGenerator
	types     map[string]fegen.TokType // lexer rule -> token type
	skip      []string                 // lexer rules whose tokens are dropped
}

// Load reads a lexer and a grammar specification and creates a front end
// from them.
func Load(name string, lexer io.Reader, grammar io.Reader) (*Frontend, error) {
	ls, err := spec.ReadLexer(lexer)
	if err != nil {
		return nil, fmt.Errorf("lexer specification: %w", err)
	}
	gs, err := spec.ReadGrammar(name, grammar)
	if err != nil {
		return nil, fmt.Errorf("grammar specification: %w", err)
	}
	return New(ls, gs)
}

// New creates a front end.
func New(ls *spec.LexerSpec, gs *spec.GrammarSpec) (*Frontend, error) {
	fe := &Frontend{Lexer: ls, Grammar: gs, types: make(map[string]fegen.TokType)}
	if err := fe.compileLexer(); err != nil {
		return nil, err
	}
	if err := fe.checkTerminals(); err != nil {
		return nil, err
	}
	fe.analysis = lr.Analysis(gs.Grammar)
	fe.tables = lr.NewTableGenerator(fe.analysis)
	if err := fe.tables.CreateTables(); err != nil {
		return nil, err
	}
	tracer().Infof("front end for %s: %d NFA states, %d LR(0) states",
		gs.Grammar.Name, fe.automaton.Size(), fe.tables.CFSM().Size())
	return fe, nil
}

// compileLexer composes the lexer rules into an automaton and maps the rules
// to token types.
func (fe *Frontend) compileLexer() error {
	c := nfa.NewComposer()
	for _, rule := range fe.Lexer.Rules {
		f, err := nfa.Compile(rule.Pattern)
		if err != nil {
			return fmt.Errorf("lexer rule %s in line %d: %w", rule.Name, rule.Line, err)
		}
		c.Add(rule.Name, f)
		switch typ, ok := fe.Grammar.Types[rule.Terminal]; {
		case rule.Skip || fe.Grammar.IsIgnored(rule.Terminal):
			fe.skip = append(fe.skip, rule.Name)
		case ok:
			fe.types[rule.Name] = typ
		default:
			tracer().Infof("lexer rule %s reports %s, which the grammar does not declare",
				rule.Name, rule.Terminal)
		}
	}
	fe.automaton = c.Automaton()
	return nil
}

// checkTerminals verifies that every terminal of the grammar is reported by
// some lexer rule.
func (fe *Frontend) checkTerminals() error {
	produced := make(map[fegen.TokType]bool)
	for _, typ := range fe.types {
		produced[typ] = true
	}
	var missing []string
	for _, T := range fe.Grammar.Grammar.Terminals() {
		if T != fe.Grammar.Grammar.EOF && !produced[T.TokenType()] {
			missing = append(missing, T.Name)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		err := fmt.Errorf("%w: %s", ErrMissingTerminal, strings.Join(missing, ", "))
		tracer().Errorf("%v", err)
		return err
	}
	return nil
}

// Automaton returns the composed lexer automaton.
func (fe *Frontend) Automaton() *nfa.Automaton {
	return fe.automaton
}

// Analysis returns the grammar analysis.
func (fe *Frontend) Analysis() *lr.LRAnalysis {
	return fe.analysis
}

// Tables returns the table generator holding the LR(0) automaton and the
// parser tables.
func (fe *Frontend) Tables() *lr.TableGenerator {
	return fe.tables
}

// Tokenizer creates a tokenizer for a text, dropping tokens of skipped and
// ignored rules.
func (fe *Frontend) Tokenizer(text string, opts ...scanner.NFAOption) *scanner.NFATokenizer {
	opts = append([]scanner.NFAOption{scanner.Skip(fe.skip...)}, opts...)
	return scanner.NewNFATokenizer(fe.automaton, text, fe.types, opts...)
}

// Tokenize splits a text into tokens, as the parser will see them. Lexical
// errors do not stop tokenization.
func (fe *Frontend) Tokenize(text string) ([]fegen.Token, []error) {
	var tokens []fegen.Token
	var errs []error
	tok := fe.Tokenizer(text)
	tok.SetErrorHandler(func(err error) { errs = append(errs, err) })
	for t := tok.NextToken(); t.TokType() != scanner.EOF; t = tok.NextToken() {
		tokens = append(tokens, t)
	}
	return tokens, errs
}

// Parse parses a text and returns its parse tree. Lexical errors and the
// syntax error, if any, are joined into err. A text with lexical errors may
// still be accepted, if the remaining tokens form a sentence.
func (fe *Frontend) Parse(text string) (accept bool, tree *slr.Node, err error) {
	var errs []error
	tok := fe.Tokenizer(text, scanner.StopOnError(configFlag("lexer-stop-on-error")))
	tok.SetErrorHandler(func(e error) { errs = append(errs, e) })
	g := fe.Grammar.Grammar
	parser := slr.NewParser(g, fe.tables.GotoTable(), fe.tables.ActionTable(), slr.WithTree(true))
	accept, err = parser.Parse(fe.tables.CFSM().S0, tok)
	if err != nil {
		errs = append(errs, err)
	}
	if accept {
		tree = parser.Tree()
	}
	tracer().Debugf("parse of %q: accept=%v, %d errors", text, accept, len(errs))
	return accept, tree, errors.Join(errs...)
}

// configFlag reads a boolean from the global configuration. Applications
// which did not initialize a configuration get false.
func configFlag(key string) (b bool) {
	defer func() {
		if recover() != nil {
			b = false
		}
	}()
	return gconf.GetBool(key)
}

/*
Package slr provides an SLR(1)-parser. Clients have to use the tools
of package lr to prepare the necessary parse tables. The SLR parser
utilizes these tables to create a right derivation for a given input,
provided through a scanner interface.

This parser is intended for small to moderate grammars, e.g. for configuration
input or small domain-specific languages. It is *not* intended for full-fledged
programming languages.

The main focus for this implementation is adaptability and on-the-fly usage.
Clients are able to construct the parse tables from a grammar and use the
parser directly, without a code-generation or compile step. If you want, you
can create a grammar from user input and use a parser for it in a couple of
lines of code.

Package slr can only handle SLR(1) grammars. All SLR-grammars are deterministic
(but not vice versa).

Usage

Clients construct a grammar, usually by using a grammar builder:

	b := lr.NewGrammarBuilder("Signed Variables Grammar")
	b.LHS("Var").N("Sign").T("a", scanner.Ident).End()  // Var  --> Sign Id
	b.LHS("Sign").T("+", '+').End()                     // Sign --> +
	b.LHS("Sign").T("-", '-').End()                     // Sign --> -
	b.LHS("Sign").Epsilon()                             // Sign -->
	g, err := b.Grammar()

This grammar is subjected to grammar analysis and table generation.

	ga := lr.Analysis(g)
	lrgen := lr.NewTableGenerator(ga)
	if err := lrgen.CreateTables(); err != nil { ... }  // cannot use an SLR parser

Finally parse some input:

	p := slr.NewParser(g, lrgen.GotoTable(), lrgen.ActionTable(), slr.WithTree(true))
	scan := scanner.GoTokenizer("input", strings.NewReader("+a"))
	accepted, err := p.Parse(lrgen.CFSM().S0, scan)
	tree := p.Tree()

A parse stops at the first syntax error, which is reported as a *ParseError.
There is no error recovery.

Configuration

If the global configuration flag `panic-on-parser-stuck` is set, the parser
panics instead of returning an error when its tables are inconsistent.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package slr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/fegen"
	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/fegen/lr"
	"github.com/npillmayer/fegen/lr/scanner"
)

// tracer traces with key 'fegen.lr'.
func tracer() tracing.Trace {
	return tracing.Select("fegen.lr")
}

// Errors reported by the parser.
var (
	ErrUnexpectedToken = errors.New("unexpected token")
	ErrParserStuck     = errors.New("parser stuck")
	ErrNotInitialized  = errors.New("SLR(1)-parser not initialized")
)

// ParseError is a syntax error: there is no action for the lookahead token
// in the current state.
type ParseError struct {
	Token    fegen.Token // offending token
	Pos      uint64      // start position of the offending token
	State    uint        // CFSM state the parser was in
	Expected []string    // terminals with an action in State
	name     string      // grammar symbol of Token, if any
}

func (e *ParseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "syntax error at position %d: unexpected %s", e.Pos, e.name)
	if e.Token != nil && e.Token.Lexeme() != "" && e.Token.Lexeme() != e.name {
		fmt.Fprintf(&b, " %q", e.Token.Lexeme())
	}
	fmt.Fprintf(&b, " in state %d", e.State)
	if len(e.Expected) > 0 {
		fmt.Fprintf(&b, ", expected one of [%s]", strings.Join(e.Expected, " "))
	}
	return b.String()
}

func (e *ParseError) Unwrap() error {
	return ErrUnexpectedToken
}

// Parser is an SLR(1)-parser type. Create and initialize one with slr.NewParser(...)
type Parser struct {
	G         *lr.Grammar
	stack     []stackitem // parser stack
	gotoT     *lr.Table   // GOTO table
	actionT   *lr.Table   // ACTION table
	buildTree bool        // create a parse tree while parsing
	tree      *Node       // parse tree of last successful parse
}

// We store pairs of state-IDs and symbol-IDs on the parse stack.
type stackitem struct {
	stateID uint       // ID of a CFSM state
	symID   int        // ID of a grammar symbol (terminal or non-terminal)
	span    fegen.Span // input span over which this symbol reaches
	node    *Node      // parse tree node, if trees are built
}

// Option configures a parser.
type Option func(*Parser)

// WithTree lets the parser build a parse tree, retrievable with Tree().
func WithTree(b bool) Option {
	return func(p *Parser) {
		p.buildTree = b
	}
}

// NewParser creates an SLR(1) parser.
func NewParser(g *lr.Grammar, gotoTable *lr.Table, actionTable *lr.Table, opts ...Option) *Parser {
	parser := &Parser{
		G:       g,
		stack:   make([]stackitem, 0, 512),
		gotoT:   gotoTable,
		actionT: actionTable,
	}
	for _, opt := range opts {
		opt(parser)
	}
	return parser
}

// Tree returns the parse tree of the last accepted input, if the parser has
// been configured to build trees. Otherwise it returns nil.
func (p *Parser) Tree() *Node {
	return p.tree
}

// Parse starts a new parse, given a start state and a scanner tokenizing the input.
// The parser must have been initialized.
//
// The parser returns true if the input string has been accepted. A syntax
// error is reported as a *ParseError.
func (p *Parser) Parse(S *lr.CFSMState, scan scanner.Tokenizer) (bool, error) {
	tracer().Debugf("~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~")
	if p.G == nil || p.gotoT == nil || p.actionT == nil || S == nil {
		tracer().Errorf("SLR(1)-parser not initialized")
		return false, ErrNotInitialized
	}
	p.tree = nil
	p.stack = append(p.stack[:0], stackitem{stateID: S.ID}) // push S
	// http://www.cse.unt.edu/~sweany/CSCE3650/HANDOUTS/LRParseAlg.pdf
	token := scan.NextToken()
	tokval := token.TokType()
	for {
		tracer().Debugf("got token %q/%d from scanner", token.Lexeme(), tokval)
		state := p.stack[len(p.stack)-1] // TOS
		action := p.actionT.Value(state.stateID, tokval)
		tracer().Debugf("action(%d,%d)=%s", state.stateID, tokval, valstring(action, p.actionT))
		switch {
		case action == p.actionT.NullValue():
			err := p.syntaxError(state.stateID, token)
			tracer().Infof("%v", err)
			return false, err
		case action == lr.AcceptAction:
			if p.buildTree {
				p.tree = state.node
			}
			tracer().Infof("input accepted")
			return true, nil
		case action == lr.ShiftAction:
			nextstate := p.gotoT.Value(state.stateID, tokval)
			if nextstate == p.gotoT.NullValue() {
				return false, p.stuck(fmt.Sprintf("no GOTO entry for shift in state %d on %d", state.stateID, tokval))
			}
			tracer().Debugf("shifting, next state = %d", nextstate)
			item := stackitem{uint(nextstate), int(tokval), token.Span(), nil}
			if p.buildTree {
				item.node = &Node{Symbol: p.G.SymbolByValue(int(tokval)), Token: token, Span: token.Span()}
			}
			p.stack = append(p.stack, item) // push a terminal state onto stack
			token = scan.NextToken()
			tokval = token.TokType()
		case action > 0: // reduce action
			rule := p.G.Rule(int(action))
			if rule == nil || len(p.stack) <= rule.Len() {
				return false, p.stuck(fmt.Sprintf("cannot reduce rule %d in state %d", action, state.stateID))
			}
			item, err := p.reduce(rule, token)
			if err != nil {
				return false, err
			}
			tracer().Debugf("reduced to next state = %d", item.stateID)
			p.stack = append(p.stack, item) // push a non-terminal state onto stack
		default: // no valid action found
			return false, p.stuck(fmt.Sprintf("invalid action %d in state %d", action, state.stateID))
		}
	}
}

// reduce performs a reduce action for a rule
//
//    LHS --> X1 ... Xn   (with X being terminals or non-terminals)
//
// Symbols X1 to Xn should be represented on the stack as states
//
//    [TOS]  Sn(Xn, span_n) ... S1(X1, span1)  ...
//
func (p *Parser) reduce(rule *lr.Rule, lookahead fegen.Token) (stackitem, error) {
	tracer().Debugf("reduce %v", rule)
	n := rule.Len()
	handle := p.stack[len(p.stack)-n:]
	var handlespan fegen.Span
	for k, sym := range rule.RHS() {
		if handle[k].symID != sym.Value {
			return stackitem{}, p.stuck(fmt.Sprintf("expected %v on stack, got %d", sym, handle[k].symID))
		}
		handlespan = handlespan.Extend(handle[k].span)
	}
	if n == 0 { // epsilon was just before lookahead
		pos := lookahead.Span().From()
		handlespan = fegen.Span{pos, pos}
	}
	var node *Node
	if p.buildTree {
		node = &Node{Symbol: rule.LHS, Rule: rule, Span: handlespan}
		for _, x := range handle {
			node.Children = append(node.Children, x.node)
		}
	}
	p.stack = p.stack[:len(p.stack)-n] // pop handle
	state := p.stack[len(p.stack)-1]   // TOS
	nextstate := p.gotoT.Value(state.stateID, rule.LHS.TokenType())
	if nextstate == p.gotoT.NullValue() {
		return stackitem{}, p.stuck(fmt.Sprintf("no GOTO entry in state %d for %v", state.stateID, rule.LHS))
	}
	return stackitem{uint(nextstate), rule.LHS.Value, handlespan, node}, nil
}

func (p *Parser) syntaxError(stateID uint, token fegen.Token) *ParseError {
	err := &ParseError{
		Token: token,
		Pos:   token.Span().From(),
		State: stateID,
		name:  token.Lexeme(),
	}
	if A := p.G.SymbolByValue(int(token.TokType())); A != nil {
		err.name = A.Name
	}
	for _, T := range p.G.Terminals() {
		if p.actionT.Value(stateID, T.TokenType()) != p.actionT.NullValue() {
			err.Expected = append(err.Expected, T.Name)
		}
	}
	return err
}

// stuck reports inconsistent tables. If configuration flag panic-on-parser-stuck
// is set, it panics.
func (p *Parser) stuck(msg string) error {
	tracer().Errorf("%s", msg)
	if configFlag("panic-on-parser-stuck") {
		panic(`SLR(1)-parser is stuck.

Configuration flag panic-on-parser-stuck is set to true. It is aimed at helping
to debug a parser and do a post-mortem of why it got stuck. However, if this is
a production environment and you did not expect this to panic, please unset
panic-on-parser-stuck to its default (false).

` + msg)
	}
	return fmt.Errorf("%w: %s", ErrParserStuck, msg)
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

// --- Helpers ----------------------------------------------------------

// valstring is a short helper to stringify an action table entry.
func valstring(v int32, m *lr.Table) string {
	if v == m.NullValue() {
		return "<none>"
	} else if v == lr.AcceptAction {
		return "<accept>"
	} else if v == lr.ShiftAction {
		return "<shift>"
	}
	return fmt.Sprintf("%d", v)
}

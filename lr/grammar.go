package lr

import (
	"errors"
	"fmt"
	"strings"
	"text/scanner"

	"github.com/npillmayer/fegen"
)

// Reserved token values.
const (
	EpsilonType = 0           // token value of epsilon
	EOFType     = scanner.EOF // token value of end of input (#eof)
	nonTermBase = 1 << 21     // non-terminals are numbered from here, past any rune
)

// Errors reported by the grammar builder.
var (
	ErrNoRules              = errors.New("grammar has no rules")
	ErrUndefinedNonTerminal = errors.New("non-terminal without rules")
	ErrSymbolClash          = errors.New("symbol declared inconsistently")
	ErrReservedTokenValue   = errors.New("reserved token value")
)

// --- Symbols ---------------------------------------------------------------

// Symbol is a grammar symbol, either a terminal or a non-terminal. Terminals
// carry the token value a scanner reports for them. Non-terminals are
// numbered by the grammar.
type Symbol struct {
	Name  string
	Value int
}

// IsTerminal is true for terminal symbols, including #eof.
func (A *Symbol) IsTerminal() bool {
	return A.Value < nonTermBase
}

// TokenType returns the value of a symbol as a token type. Parser tables are
// indexed by it.
func (A *Symbol) TokenType() fegen.TokType {
	return fegen.TokType(A.Value)
}

func (A *Symbol) String() string {
	return A.Name
}

// --- Rules -----------------------------------------------------------------

// Rule is a grammar production  LHS ::= RHS. Rules are numbered by their
// position within the grammar; rule 0 is the augmented start rule.
type Rule struct {
	Serial int
	LHS    *Symbol
	rhs    []*Symbol
}

// RHS returns a copy of the right hand side of a rule.
func (r *Rule) RHS() []*Symbol {
	return append([]*Symbol(nil), r.rhs...)
}

// Len returns the number of symbols on the right hand side.
func (r *Rule) Len() int {
	return len(r.rhs)
}

// IsEps is true for epsilon-productions.
func (r *Rule) IsEps() bool {
	return len(r.rhs) == 0
}

func (r *Rule) String() string {
	return fmt.Sprintf("[%s] ::= [%s]", r.LHS, symbolsString(r.rhs))
}

func symbolsString(syms []*Symbol) string {
	var b strings.Builder
	for i, A := range syms {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(A.Name)
	}
	return b.String()
}

// --- Grammar ---------------------------------------------------------------

// Grammar is a context-free grammar, augmented by a start rule. Grammars are
// created by a GrammarBuilder and are read-only thereafter.
type Grammar struct {
	Name    string
	rules   []*Rule
	symbols []*Symbol          // in order of declaration
	byName  map[string]*Symbol // all symbols by name
	byValue map[int]*Symbol    // all symbols by value
	lhs     map[*Symbol][]*Rule
	EOF     *Symbol // end of input
}

// Size returns the number of rules, including rule 0.
func (g *Grammar) Size() int {
	return len(g.rules)
}

// Rule returns rule no. i.
func (g *Grammar) Rule(i int) *Rule {
	if i < 0 || i >= len(g.rules) {
		return nil
	}
	return g.rules[i]
}

// Start returns the start symbol S, i.e. the LHS of the first rule a client
// added to the grammar builder.
func (g *Grammar) Start() *Symbol {
	return g.rules[0].rhs[0]
}

// SymbolByName finds a symbol. It returns nil for unknown names.
func (g *Grammar) SymbolByName(name string) *Symbol {
	return g.byName[name]
}

// SymbolByValue finds a symbol by its value. For terminals this is the token
// value.
func (g *Grammar) SymbolByValue(v int) *Symbol {
	return g.byValue[v]
}

// RulesFor returns all rules with LHS A, in order of their serial numbers.
func (g *Grammar) RulesFor(A *Symbol) []*Rule {
	return g.lhs[A]
}

// EachSymbol iterates over all symbols of the grammar in order of
// declaration, calling mapper for each of them. Non-nil results are
// collected and returned.
func (g *Grammar) EachSymbol(mapper func(A *Symbol) interface{}) []interface{} {
	return g.each(mapper, func(*Symbol) bool { return true })
}

// EachTerminal iterates over the terminals of the grammar in order of
// declaration, including #eof.
func (g *Grammar) EachTerminal(mapper func(A *Symbol) interface{}) []interface{} {
	return g.each(mapper, (*Symbol).IsTerminal)
}

// EachNonTerminal iterates over the non-terminals of the grammar in order of
// declaration.
func (g *Grammar) EachNonTerminal(mapper func(A *Symbol) interface{}) []interface{} {
	return g.each(mapper, func(A *Symbol) bool { return !A.IsTerminal() })
}

func (g *Grammar) each(mapper func(*Symbol) interface{}, filter func(*Symbol) bool) []interface{} {
	var r []interface{}
	for _, A := range g.symbols {
		if filter(A) {
			if x := mapper(A); x != nil {
				r = append(r, x)
			}
		}
	}
	return r
}

// Terminals returns the terminals in order of declaration, including #eof.
func (g *Grammar) Terminals() []*Symbol {
	var T []*Symbol
	for _, A := range g.symbols {
		if A.IsTerminal() {
			T = append(T, A)
		}
	}
	return T
}

// NonTerminals returns the non-terminals in order of declaration.
func (g *Grammar) NonTerminals() []*Symbol {
	var N []*Symbol
	for _, A := range g.symbols {
		if !A.IsTerminal() {
			N = append(N, A)
		}
	}
	return N
}

// Dump is a debugging helper, tracing all rules of a grammar.
func (g *Grammar) Dump() {
	tracer().Debugf("--- grammar %s ---------------------------", g.Name)
	for _, r := range g.rules {
		tracer().Debugf("%3d: %s", r.Serial, r)
	}
	tracer().Debugf("-------------------------------------------")
}

func (g *Grammar) String() string {
	var b strings.Builder
	for _, r := range g.rules {
		fmt.Fprintf(&b, "%3d: %s\n", r.Serial, r)
	}
	return b.String()
}

// --- Grammar builder -------------------------------------------------------

// GrammarBuilder is a builder type for grammars. Start a rule with LHS(…),
// append symbols with N(…) and T(…), and close it with End() or Epsilon().
type GrammarBuilder struct {
	name  string
	rules []*RuleBuilder
}

// NewGrammarBuilder creates a builder for a grammar with a given name.
func NewGrammarBuilder(name string) *GrammarBuilder {
	return &GrammarBuilder{name: name}
}

// LHS starts a new rule for non-terminal name.
func (gb *GrammarBuilder) LHS(name string) *RuleBuilder {
	return &RuleBuilder{gb: gb, lhs: name}
}

// RuleBuilder collects the symbols of a single rule.
type RuleBuilder struct {
	gb  *GrammarBuilder
	lhs string
	rhs []symref
}

type symref struct {
	name     string
	terminal bool
	value    int
}

// N appends a non-terminal.
func (rb *RuleBuilder) N(name string) *RuleBuilder {
	rb.rhs = append(rb.rhs, symref{name: name})
	return rb
}

// T appends a terminal with token value tokval.
func (rb *RuleBuilder) T(name string, tokval int) *RuleBuilder {
	rb.rhs = append(rb.rhs, symref{name: name, terminal: true, value: tokval})
	return rb
}

// End closes a rule.
func (rb *RuleBuilder) End() {
	rb.gb.rules = append(rb.gb.rules, rb)
}

// Epsilon closes a rule with an empty RHS. Symbols appended before are discarded.
func (rb *RuleBuilder) Epsilon() {
	rb.rhs = nil
	rb.End()
}

// Grammar creates the grammar. The first rule added determines the start
// symbol S; rule 0 is generated as  S' ::= S #eof.
func (gb *GrammarBuilder) Grammar() (*Grammar, error) {
	if len(gb.rules) == 0 {
		return nil, fmt.Errorf("grammar %s: %w", gb.name, ErrNoRules)
	}
	g := &Grammar{
		Name:    gb.name,
		byName:  make(map[string]*Symbol),
		byValue: make(map[int]*Symbol),
		lhs:     make(map[*Symbol][]*Rule),
	}
	start := gb.rules[0].lhs
	augmented := start + "'"
	for gb.declared(augmented) {
		augmented += "'"
	}
	S0, _ := g.nonterminal(augmented)
	S, _ := g.nonterminal(start)
	g.EOF, _ = g.terminal("#eof", EOFType)
	g.addRule(S0, []*Symbol{S, g.EOF})
	for _, rb := range gb.rules {
		A, err := g.nonterminal(rb.lhs)
		if err != nil {
			return nil, fmt.Errorf("grammar %s: %w", gb.name, err)
		}
		rhs := make([]*Symbol, 0, len(rb.rhs))
		for _, ref := range rb.rhs {
			var X *Symbol
			if ref.terminal {
				X, err = g.terminal(ref.name, ref.value)
			} else {
				X, err = g.nonterminal(ref.name)
			}
			if err != nil {
				return nil, fmt.Errorf("grammar %s: %w", gb.name, err)
			}
			rhs = append(rhs, X)
		}
		g.addRule(A, rhs)
	}
	for _, A := range g.symbols {
		if !A.IsTerminal() && len(g.lhs[A]) == 0 {
			return nil, fmt.Errorf("grammar %s: %w: %s", gb.name, ErrUndefinedNonTerminal, A)
		}
	}
	tracer().Infof("grammar %s has %d rules and %d symbols", g.Name, len(g.rules), len(g.symbols))
	return g, nil
}

func (gb *GrammarBuilder) declared(name string) bool {
	for _, rb := range gb.rules {
		if rb.lhs == name {
			return true
		}
		for _, ref := range rb.rhs {
			if ref.name == name {
				return true
			}
		}
	}
	return false
}

func (g *Grammar) addRule(A *Symbol, rhs []*Symbol) {
	r := &Rule{Serial: len(g.rules), LHS: A, rhs: rhs}
	g.rules = append(g.rules, r)
	g.lhs[A] = append(g.lhs[A], r)
}

func (g *Grammar) nonterminal(name string) (*Symbol, error) {
	if A, ok := g.byName[name]; ok {
		if A.IsTerminal() {
			return nil, fmt.Errorf("%w: %s used as terminal and non-terminal", ErrSymbolClash, name)
		}
		return A, nil
	}
	A := &Symbol{Name: name, Value: nonTermBase + len(g.symbols)}
	g.declare(A)
	return A, nil
}

func (g *Grammar) terminal(name string, value int) (*Symbol, error) {
	if A, ok := g.byName[name]; ok {
		if !A.IsTerminal() {
			return nil, fmt.Errorf("%w: %s used as terminal and non-terminal", ErrSymbolClash, name)
		}
		if A.Value != value {
			return nil, fmt.Errorf("%w: terminal %s with token values %d and %d",
				ErrSymbolClash, name, A.Value, value)
		}
		return A, nil
	}
	if value == EpsilonType || value >= nonTermBase {
		return nil, fmt.Errorf("%w: %d for terminal %s", ErrReservedTokenValue, value, name)
	}
	if B, ok := g.byValue[value]; ok {
		return nil, fmt.Errorf("%w: terminals %s and %s share token value %d",
			ErrSymbolClash, B, name, value)
	}
	A := &Symbol{Name: name, Value: value}
	g.declare(A)
	return A, nil
}

func (g *Grammar) declare(A *Symbol) {
	g.symbols = append(g.symbols, A)
	g.byName[A.Name] = A
	g.byValue[A.Value] = A
}

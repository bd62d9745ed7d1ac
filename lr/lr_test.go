package lr

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"text/scanner"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// E ::= E + T | T ;  T ::= id
func exprGrammar(t *testing.T) *Grammar {
	b := NewGrammarBuilder("Expr")
	b.LHS("E").N("E").T("+", '+').N("T").End()
	b.LHS("E").N("T").End()
	b.LHS("T").T("id", scanner.Ident).End()
	g, err := b.Grammar()
	require.NoError(t, err)
	return g
}

// S ::= A a ;  A ::= B D ;  B ::= b | ε ;  D ::= d | ε
func nullableGrammar(t *testing.T) *Grammar {
	b := NewGrammarBuilder("G")
	b.LHS("S").N("A").T("a", 1).End()
	b.LHS("A").N("B").N("D").End()
	b.LHS("B").T("b", 2).End()
	b.LHS("B").Epsilon()
	b.LHS("D").T("d", 3).End()
	b.LHS("D").Epsilon()
	g, err := b.Grammar()
	require.NoError(t, err)
	return g
}

func TestGrammarBuilder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fegen.lr")
	defer teardown()
	//
	g := exprGrammar(t)
	g.Dump()
	assert.Equal(t, 4, g.Size())
	assert.Equal(t, "[E'] ::= [E #eof]", g.Rule(0).String())
	assert.Equal(t, "[E] ::= [E + T]", g.Rule(1).String())
	assert.Equal(t, "E", g.Start().Name)
	assert.Equal(t, g.EOF, g.SymbolByValue(scanner.EOF))
	assert.True(t, g.SymbolByName("id").IsTerminal())
	assert.False(t, g.SymbolByName("T").IsTerminal())
	assert.Len(t, g.RulesFor(g.SymbolByName("E")), 2)
	names := g.EachNonTerminal(func(A *Symbol) interface{} { return A.Name })
	assert.Equal(t, []interface{}{"E'", "E", "T"}, names)
	assert.Len(t, g.Terminals(), 3)
	assert.Nil(t, g.Rule(17))
}

func TestGrammarBuilderErrors(t *testing.T) {
	_, err := NewGrammarBuilder("empty").Grammar()
	assert.True(t, errors.Is(err, ErrNoRules))
	//
	b := NewGrammarBuilder("undefined")
	b.LHS("S").N("X").End()
	_, err = b.Grammar()
	assert.True(t, errors.Is(err, ErrUndefinedNonTerminal))
	//
	b = NewGrammarBuilder("clash")
	b.LHS("S").T("a", 1).End()
	b.LHS("a").T("b", 2).End()
	_, err = b.Grammar()
	assert.True(t, errors.Is(err, ErrSymbolClash))
	//
	b = NewGrammarBuilder("values")
	b.LHS("S").T("a", 1).T("b", 1).End()
	_, err = b.Grammar()
	assert.True(t, errors.Is(err, ErrSymbolClash))
	//
	b = NewGrammarBuilder("reserved")
	b.LHS("S").T("a", EpsilonType).End()
	_, err = b.Grammar()
	assert.True(t, errors.Is(err, ErrReservedTokenValue))
}

func TestAugmentedStartSymbolIsFresh(t *testing.T) {
	b := NewGrammarBuilder("primes")
	b.LHS("S").N("S'").End()
	b.LHS("S'").T("x", 1).End()
	g, err := b.Grammar()
	require.NoError(t, err)
	assert.Equal(t, "S''", g.Rule(0).LHS.Name)
}

func TestNullable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fegen.lr")
	defer teardown()
	//
	g := nullableGrammar(t)
	ga := Analysis(g)
	for name, nullable := range map[string]bool{
		"S'": false, "S": false, "A": true, "B": true, "D": true, "a": false,
	} {
		assert.Equal(t, nullable, ga.Nullable(g.SymbolByName(name)), "nullable(%s)", name)
	}
}

func TestFirstSets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fegen.lr")
	defer teardown()
	//
	g := nullableGrammar(t)
	ga := Analysis(g)
	assert.Equal(t, []int{1, 2, 3}, ga.First(g.SymbolByName("S")).AppendTo(nil))
	assert.Equal(t, []int{0, 2, 3}, ga.First(g.SymbolByName("A")).AppendTo(nil))
	assert.Equal(t, []int{0, 2}, ga.First(g.SymbolByName("B")).AppendTo(nil))
	assert.Equal(t, []int{2}, ga.First(g.SymbolByName("b")).AppendTo(nil))
	assert.Equal(t, []int{EpsilonType}, ga.FirstStar(nil).AppendTo(nil))
	seq := []*Symbol{g.SymbolByName("B"), g.SymbolByName("a")}
	assert.Equal(t, []int{1, 2}, ga.FirstStar(seq).AppendTo(nil))
}

func TestFollowSets(t *testing.T) {
	g := nullableGrammar(t)
	ga := Analysis(g)
	assert.Equal(t, []int{scanner.EOF}, ga.Follow(g.SymbolByName("S")).AppendTo(nil))
	assert.Equal(t, []int{1}, ga.Follow(g.SymbolByName("A")).AppendTo(nil))
	assert.Equal(t, []int{1, 3}, ga.Follow(g.SymbolByName("B")).AppendTo(nil))
	assert.Equal(t, []int{1}, ga.Follow(g.SymbolByName("D")).AppendTo(nil))
	assert.True(t, ga.Follow(g.Rule(0).LHS).IsEmpty())
}

func TestExpressionGrammarAnalysis(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fegen.lr")
	defer teardown()
	//
	g := exprGrammar(t)
	ga := Analysis(g)
	E, T := g.SymbolByName("E"), g.SymbolByName("T")
	plus := g.SymbolByName("+")
	assert.Equal(t, []int{scanner.Ident}, ga.First(E).AppendTo(nil))
	assert.True(t, ga.First(E).Equals(ga.First(T)))
	assert.Equal(t, []int{'+'}, ga.First(plus).AppendTo(nil))
	follow := ga.Follow(E)
	assert.True(t, follow.Has('+'))
	assert.True(t, follow.Has(scanner.EOF))
}

func TestItems(t *testing.T) {
	g := exprGrammar(t)
	i := StartItem(g.Rule(1))
	assert.Equal(t, "[E ::= • E + T]", i.String())
	assert.Equal(t, "E", i.PeekSymbol().Name)
	i = i.Advance().Advance().Advance()
	assert.True(t, i.IsComplete())
	assert.Nil(t, i.PeekSymbol())
	assert.Equal(t, "[E ::= E + T •]", i.String())
	assert.Equal(t, i, i.Advance())
	assert.Len(t, i.Prefix(), 3)
}

func TestClosureIsIdempotent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fegen.lr")
	defer teardown()
	//
	ga := Analysis(exprGrammar(t))
	lrgen := NewTableGenerator(ga)
	for _, s := range lrgen.CFSM().States() {
		C := ga.Closure(s.items)
		assert.True(t, itemSetsEqual(C, s.items), "closure of state %d not idempotent", s.ID)
	}
	C0 := ga.Closure(newItemSet(StartItem(ga.Grammar().Rule(0))))
	assert.Equal(t, 4, C0.Size())
}

func TestCFSM(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fegen.lr")
	defer teardown()
	//
	g := exprGrammar(t)
	lrgen := NewTableGenerator(Analysis(g))
	cfsm := lrgen.CFSM()
	assert.Equal(t, 7, cfsm.Size())
	assert.Equal(t, uint(0), cfsm.S0.ID)
	s1 := cfsm.Goto(cfsm.S0, g.SymbolByName("E"))
	require.NotNil(t, s1)
	assert.Equal(t, uint(1), s1.ID)
	s4 := cfsm.Goto(s1, g.EOF)
	require.NotNil(t, s4)
	assert.True(t, s4.Accept)
	assert.Nil(t, cfsm.Goto(cfsm.S0, g.SymbolByName("+")))
	// states are unique by content
	for _, s := range cfsm.States() {
		for _, r := range cfsm.States() {
			if s != r {
				assert.False(t, itemSetsEqual(s.items, r.items), "states %d and %d are equal", s.ID, r.ID)
			}
		}
	}
}

func TestSLRTables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fegen.lr")
	defer teardown()
	//
	g := exprGrammar(t)
	lrgen := NewTableGenerator(Analysis(g))
	require.NoError(t, lrgen.CreateTables())
	assert.False(t, lrgen.HasConflicts)
	action, gotoT := lrgen.ActionTable(), lrgen.GotoTable()
	require.NotNil(t, action)
	assert.Equal(t, int32(ShiftAction), action.Value(0, scanner.Ident))
	assert.Equal(t, int32(AcceptAction), action.Value(1, scanner.EOF))
	assert.Equal(t, int32(ShiftAction), action.Value(1, '+'))
	assert.Equal(t, int32(2), action.Value(2, '+'))       // E ::= T
	assert.Equal(t, int32(2), action.Value(2, scanner.EOF)) // E ::= T
	assert.Equal(t, action.NullValue(), action.Value(2, scanner.Ident))
	assert.Equal(t, action.NullValue(), action.Value(0, 4711))
	assert.Equal(t, int32(1), gotoT.Value(0, g.SymbolByName("E").TokenType()))
	assert.Equal(t, []uint{1}, lrgen.AcceptingStates())
}

func TestReduceReduceConflict(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fegen.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("RR")
	b.LHS("S").N("A").End()
	b.LHS("S").N("B").End()
	b.LHS("A").T("x", 1).End()
	b.LHS("B").T("x", 1).End()
	g, err := b.Grammar()
	require.NoError(t, err)
	lrgen := NewTableGenerator(Analysis(g))
	err = lrgen.CreateTables()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConflicts))
	var cerr *ConflictError
	require.True(t, errors.As(err, &cerr))
	require.Len(t, cerr.Conflicts, 1)
	c := cerr.Conflicts[0]
	assert.Equal(t, ReduceReduce, c.Kind)
	assert.Equal(t, "#eof", c.Symbol.Name)
	assert.Equal(t, []int32{3, 4}, c.Actions)
	assert.True(t, lrgen.HasConflicts)
	assert.Nil(t, lrgen.ActionTable())
}

func TestShiftReduceConflict(t *testing.T) {
	b := NewGrammarBuilder("SR")
	b.LHS("E").N("E").T("+", '+').N("E").End()
	b.LHS("E").T("id", scanner.Ident).End()
	g, err := b.Grammar()
	require.NoError(t, err)
	lrgen := NewTableGenerator(Analysis(g))
	err = lrgen.CreateTables()
	var cerr *ConflictError
	require.True(t, errors.As(err, &cerr))
	require.Len(t, cerr.Conflicts, 1)
	c := cerr.Conflicts[0]
	assert.Equal(t, ShiftReduce, c.Kind)
	assert.Equal(t, "+", c.Symbol.Name)
	assert.Equal(t, []int32{ShiftAction, 1}, c.Actions)
	assert.Contains(t, err.Error(), "shift/reduce conflict")
}

func TestLR0ActionTable(t *testing.T) {
	g := exprGrammar(t)
	lrgen := NewTableGenerator(Analysis(g))
	_, conflicts := lrgen.BuildLR0ActionTable()
	assert.Empty(t, conflicts) // E ::= E + T | T is LR(0)
	//
	g = nullableGrammar(t)
	lrgen = NewTableGenerator(Analysis(g))
	_, conflicts = lrgen.BuildLR0ActionTable()
	assert.NotEmpty(t, conflicts)
	_, conflicts = lrgen.BuildSLR1ActionTable()
	assert.Empty(t, conflicts)
}

func TestExports(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fegen.lr")
	defer teardown()
	//
	g := exprGrammar(t)
	lrgen := NewTableGenerator(Analysis(g))
	require.NoError(t, lrgen.CreateTables())
	var buf bytes.Buffer
	require.NoError(t, lrgen.CFSM().CFSM2GraphViz(&buf))
	assert.True(t, strings.HasPrefix(buf.String(), "digraph {"))
	assert.Contains(t, buf.String(), "s000 -> s001 [label=\"E\"]")
	buf.Reset()
	require.NoError(t, ActionTableAsHTML(lrgen, &buf))
	assert.Contains(t, buf.String(), "<td>state 6</td>")
	buf.Reset()
	require.NoError(t, GotoTableAsHTML(lrgen, &buf))
	assert.Contains(t, buf.String(), "GOTO table")
	buf.Reset()
	require.NoError(t, TablesAsText(lrgen, &buf))
	text := buf.String()
	assert.Contains(t, text, "acc")
	assert.Contains(t, text, "s5")
	assert.Contains(t, text, "r2")
}

func TestAnalysisAsText(t *testing.T) {
	ga := Analysis(nullableGrammar(t))
	assert.Equal(t, "{ϵ, b, d}", ga.SymbolSetString(ga.First(ga.g.SymbolByName("A"))))
	assert.Equal(t, "{a, d}", ga.SymbolSetString(ga.Follow(ga.g.SymbolByName("B"))))
	var buf bytes.Buffer
	require.NoError(t, AnalysisAsText(ga, &buf))
	assert.Contains(t, buf.String(), "FOLLOW")
	assert.Contains(t, buf.String(), "{#eof}")
}

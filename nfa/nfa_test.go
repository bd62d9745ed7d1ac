package nfa

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/fegen"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/container/intsets"
)

func compile(t *testing.T, pattern string) Fragment {
	f, err := Compile(pattern)
	require.NoError(t, err, pattern)
	return f
}

func automaton(t *testing.T, rules ...string) *Automaton {
	c := NewComposer()
	for i := 0; i < len(rules); i += 2 {
		c.Add(rules[i], compile(t, rules[i+1]))
	}
	return c.Automaton()
}

func TestThompsonSizes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fegen.nfa")
	defer teardown()
	//
	for _, test := range []struct {
		postfix string
		states  int
		edges   int
	}{
		{"a", 2, 1},
		{"ab.", 4, 3},
		{"ab|", 6, 6},
		{"a*", 4, 5},
		{"a+", 6, 7},
		{"a?", 6, 7},
		{"ϵ", 2, 1},
	} {
		f := Build(test.postfix)
		assert.Equal(t, test.states, f.N, "states of %q", test.postfix)
		assert.Equal(t, test.edges, len(f.Edges), "edges of %q", test.postfix)
	}
}

func TestFinalStateHasNoOutgoingEdges(t *testing.T) {
	for _, pattern := range []string{"a", "ab", "a|b", "a*", "a+", "a?", "(a|b)*c?d+"} {
		f := compile(t, pattern)
		for _, e := range f.Edges {
			assert.NotEqual(t, f.Final, e.From, "final state of %q has outgoing edge %v", pattern, e)
		}
	}
}

func TestAllStatesReachable(t *testing.T) {
	f := compile(t, "(a|b)*c?d+")
	reached := map[int]bool{f.Start: true}
	work := []int{f.Start}
	for len(work) > 0 {
		s := work[0]
		work = work[1:]
		for _, e := range f.Edges {
			if e.From == s && !reached[e.To] {
				reached[e.To] = true
				work = append(work, e.To)
			}
		}
	}
	assert.Equal(t, f.N, len(reached))
}

func TestRenumberDoesNotTouchOperand(t *testing.T) {
	f := compile(t, "ab")
	g := f.Renumber(10)
	assert.Equal(t, 0, f.Start)
	assert.Equal(t, 10, g.Start)
	assert.Equal(t, f.Final+10, g.Final)
	assert.Equal(t, 0, f.Edges[0].From)
	assert.Equal(t, 10, g.Edges[0].From)
}

func TestBuildPanicsOnMalformedPostfix(t *testing.T) {
	assert.Panics(t, func() { Build("a.") })
	assert.Panics(t, func() { Build("ab") })
	assert.Panics(t, func() { Build("") })
}

func TestClosureIsIdempotent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fegen.nfa")
	defer teardown()
	//
	A := automaton(t, "A", "(a|b)*c?", "B", "a+b?")
	for s := 0; s < A.Size(); s++ {
		S := &intsets.Sparse{}
		S.Insert(s)
		C := A.Closure(S)
		CC := A.Closure(C)
		assert.True(t, C.Equals(CC), "closure of {%d} not idempotent: %v vs %v", s, C, CC)
		assert.True(t, C.Has(s))
	}
}

func TestMatchABStar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fegen.nfa")
	defer teardown()
	//
	A := automaton(t, "r", "ab*")
	for _, word := range []string{"a", "ab", "abbb"} {
		tag, ok := A.Match(word)
		assert.True(t, ok, "expected %q to be accepted", word)
		assert.Equal(t, "r", tag.Rule)
	}
	for _, word := range []string{"", "ba", "b", "aba"} {
		_, ok := A.Match(word)
		assert.False(t, ok, "expected %q to be rejected", word)
	}
}

func TestPriorityOfRules(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fegen.nfa")
	defer teardown()
	//
	A := automaton(t, "KEYWORD", "if", "ID", "[a-z]+")
	tag, ok := A.Match("if")
	require.True(t, ok)
	assert.Equal(t, AcceptTag{Rule: "KEYWORD", Priority: 0}, tag)
	tag, ok = A.Match("ifx")
	require.True(t, ok)
	assert.Equal(t, "ID", tag.Rule)
}

func TestComposer(t *testing.T) {
	f1, f2 := compile(t, "a"), compile(t, "b*")
	A := NewComposer().Add("X", f1).Add("Y", f2).Automaton()
	assert.Equal(t, 1+f1.N+f2.N, A.Size())
	assert.Equal(t, []string{"X", "Y"}, A.Rules())
	dispatch := A.Transitions(A.Start())
	require.Len(t, dispatch, 2)
	for _, e := range dispatch {
		assert.True(t, e.Label.IsEpsilon())
	}
	acc := A.AcceptingStates()
	require.Len(t, acc, 2)
	tag, _ := A.Tag(acc[0])
	assert.Equal(t, AcceptTag{"X", 0}, tag)
	tag, _ = A.Tag(acc[1])
	assert.Equal(t, AcceptTag{"Y", 1}, tag)
	assert.Equal(t, f1.Final+1, acc[0])
}

func TestComposerKeepsPriorityOfKnownRule(t *testing.T) {
	A := NewComposer().
		Add("A", compile(t, "a")).
		Add("B", compile(t, "b")).
		Add("A", compile(t, "c")).Automaton()
	assert.Equal(t, []string{"A", "B"}, A.Rules())
	tag, ok := A.Match("c")
	require.True(t, ok)
	assert.Equal(t, AcceptTag{"A", 0}, tag)
}

func TestLongest(t *testing.T) {
	A := automaton(t, "KEYWORD", "if", "ID", "[a-z]+", "NUM", "[0-9]+")
	input := []rune("ifx42")
	end, tag, ok := A.Longest(input, 0)
	require.True(t, ok)
	assert.Equal(t, 3, end)
	assert.Equal(t, "ID", tag.Rule)
	end, tag, ok = A.Longest(input, 3)
	require.True(t, ok)
	assert.Equal(t, 5, end)
	assert.Equal(t, "NUM", tag.Rule)
	_, _, ok = A.Longest([]rune("$"), 0)
	assert.False(t, ok)
}

func TestTokenize(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fegen.nfa")
	defer teardown()
	//
	A := automaton(t, "KEYWORD", "if", "ID", "[a-z]+", "NUM", "[0-9]+")
	tokens, errs := Tokenize(A, `if x1 ifx 42 "if" a$b`)
	expected := []Token{
		{"if", "KEYWORD", fegen.Span{0, 2}},
		{"x", "ID", fegen.Span{3, 4}},
		{"1", "NUM", fegen.Span{4, 5}},
		{"ifx", "ID", fegen.Span{6, 9}},
		{"42", "NUM", fegen.Span{10, 12}},
		{"if", "KEYWORD", fegen.Span{14, 16}},
		{"a", "ID", fegen.Span{18, 19}},
	}
	assert.Equal(t, expected, tokens)
	require.Len(t, errs, 1)
	assert.Equal(t, 19, errs[0].Pos)
	assert.Equal(t, "$b", errs[0].Word)
	assert.True(t, errors.Is(errs[0], ErrNoRuleMatches))
}

func TestTokenizeQuotedLiterals(t *testing.T) {
	A := automaton(t, "ID", "[a-z]+")
	tokens, errs := Tokenize(A, `"" "ab" "a1"`)
	require.Len(t, tokens, 1)
	assert.Equal(t, "ab", tokens[0].Lexeme)
	require.Len(t, errs, 2)
	assert.Equal(t, 0, errs[0].Pos)
	assert.Equal(t, 8, errs[1].Pos)
	//
	A = automaton(t, "EMPTY", "ϵ", "ID", "[a-z]+")
	tokens, errs = Tokenize(A, `""`)
	assert.Empty(t, errs)
	require.Len(t, tokens, 1)
	assert.Equal(t, "EMPTY", tokens[0].Rule)
}

func TestGraphViz(t *testing.T) {
	A := automaton(t, "r", "ab*")
	var buf bytes.Buffer
	require.NoError(t, A.ToGraphViz(&buf))
	dot := buf.String()
	assert.True(t, strings.HasPrefix(dot, "digraph {"))
	assert.Contains(t, dot, "xlabel=\"r\"")
	assert.Contains(t, dot, "label=\"a\"")
	buf.Reset()
	require.NoError(t, compile(t, "a|b").ToGraphViz(&buf))
	assert.Contains(t, buf.String(), "label=\"ε\"")
}

package slr

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/fegen"
	"github.com/npillmayer/fegen/lr"
	"github.com/npillmayer/fegen/lr/scanner"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tables(t *testing.T, b *lr.GrammarBuilder) (*lr.Grammar, *lr.TableGenerator) {
	g, err := b.Grammar()
	require.NoError(t, err)
	lrgen := lr.NewTableGenerator(lr.Analysis(g))
	require.NoError(t, lrgen.CreateTables())
	return g, lrgen
}

// E ::= E + T | T ;  T ::= id
func exprTables(t *testing.T) (*lr.Grammar, *lr.TableGenerator) {
	b := lr.NewGrammarBuilder("Expr")
	b.LHS("E").N("E").T("+", '+').N("T").End()
	b.LHS("E").N("T").End()
	b.LHS("T").T("id", scanner.Ident).End()
	return tables(t, b)
}

func parse(t *testing.T, g *lr.Grammar, lrgen *lr.TableGenerator, input string, opts ...Option) (*Parser, bool, error) {
	p := NewParser(g, lrgen.GotoTable(), lrgen.ActionTable(), opts...)
	scan := scanner.GoTokenizer(t.Name(), strings.NewReader(input))
	accept, err := p.Parse(lrgen.CFSM().S0, scan)
	return p, accept, err
}

func TestParseAccepts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fegen.lr")
	defer teardown()
	//
	g, lrgen := exprTables(t)
	for _, input := range []string{"a", "a + b", "a+b+c+d"} {
		_, accept, err := parse(t, g, lrgen, input)
		assert.NoError(t, err, input)
		assert.True(t, accept, input)
	}
}

func TestParseFailsAtEOF(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fegen.lr")
	defer teardown()
	//
	g, lrgen := exprTables(t)
	_, accept, err := parse(t, g, lrgen, "a +")
	assert.False(t, accept)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnexpectedToken))
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, fegen.TokType(scanner.EOF), perr.Token.TokType())
	assert.Equal(t, []string{"id"}, perr.Expected)
	assert.Contains(t, err.Error(), "unexpected #eof")
}

func TestParseFailsOnUnexpectedToken(t *testing.T) {
	g, lrgen := exprTables(t)
	_, accept, err := parse(t, g, lrgen, "a b")
	assert.False(t, accept)
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, uint64(2), perr.Pos)
	assert.Equal(t, "b", perr.Token.Lexeme())
	assert.Equal(t, []string{"#eof", "+"}, perr.Expected)
	//
	_, accept, err = parse(t, g, lrgen, "a * b") // '*' is unknown to the grammar
	assert.False(t, accept)
	assert.True(t, errors.As(err, &perr))
	assert.Equal(t, "*", perr.Token.Lexeme())
}

func TestParserIsReusable(t *testing.T) {
	g, lrgen := exprTables(t)
	p := NewParser(g, lrgen.GotoTable(), lrgen.ActionTable())
	accept, _ := p.Parse(lrgen.CFSM().S0, scanner.GoTokenizer("1", strings.NewReader("a +")))
	assert.False(t, accept)
	accept, err := p.Parse(lrgen.CFSM().S0, scanner.GoTokenizer("2", strings.NewReader("a + b")))
	assert.NoError(t, err)
	assert.True(t, accept)
}

func TestParseTree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fegen.lr")
	defer teardown()
	//
	g, lrgen := exprTables(t)
	p, accept, err := parse(t, g, lrgen, "a + b", WithTree(true))
	require.NoError(t, err)
	require.True(t, accept)
	tree := p.Tree()
	require.NotNil(t, tree)
	assert.Equal(t, "E", tree.Symbol.Name)
	assert.Equal(t, fegen.Span{0, 5}, tree.Span)
	assert.Len(t, tree.Children, 3)
	assert.Equal(t, []string{"a", "+", "b"}, tree.Leafs())
	assert.Equal(t, 1, tree.Rule.Serial)
	t.Logf("\n%s", tree.Indented())
	//
	p, _, _ = parse(t, g, lrgen, "a")
	assert.Nil(t, p.Tree())
}

func TestParseEpsilon(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fegen.lr")
	defer teardown()
	//
	b := lr.NewGrammarBuilder("Signed Variables Grammar")
	b.LHS("Var").N("Sign").T("a", scanner.Ident).End() // Var  --> Sign Id
	b.LHS("Sign").T("+", '+').End()                    // Sign --> +
	b.LHS("Sign").T("-", '-').End()                    // Sign --> -
	b.LHS("Sign").Epsilon()                            // Sign -->
	g, lrgen := tables(t, b)
	for _, input := range []string{"+a", "-a", "a"} {
		p, accept, err := parse(t, g, lrgen, input, WithTree(true))
		assert.NoError(t, err, input)
		assert.True(t, accept, input)
		assert.Equal(t, "Sign", p.Tree().Children[0].Symbol.Name)
	}
	_, accept, _ := parse(t, g, lrgen, "+")
	assert.False(t, accept)
}

func TestParserNotInitialized(t *testing.T) {
	g, lrgen := exprTables(t)
	p := NewParser(g, lrgen.GotoTable(), nil)
	_, err := p.Parse(lrgen.CFSM().S0, scanner.NewSliceTokenizer(nil))
	assert.True(t, errors.Is(err, ErrNotInitialized))
}

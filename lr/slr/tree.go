package slr

import (
	"fmt"
	"strings"

	"github.com/npillmayer/fegen"
	"github.com/npillmayer/fegen/lr"
)

// Node is a node of a concrete parse tree. Leafs carry the token of a
// terminal, inner nodes the rule which has been reduced.
type Node struct {
	Symbol   *lr.Symbol
	Rule     *lr.Rule    // nil for terminals
	Token    fegen.Token // nil for non-terminals
	Span     fegen.Span
	Children []*Node
}

// IsLeaf is true for nodes of terminals.
func (n *Node) IsLeaf() bool {
	return n.Rule == nil
}

func (n *Node) String() string {
	if n.IsLeaf() {
		if n.Token != nil && n.Token.Lexeme() != n.Symbol.Name {
			return fmt.Sprintf("%s %q", n.Symbol, n.Token.Lexeme())
		}
		return n.Symbol.Name
	}
	return fmt.Sprintf("%s %v", n.Symbol, n.Span)
}

// Walk visits the nodes of a tree in pre-order.
func (n *Node) Walk(f func(node *Node, depth int)) {
	n.walk(f, 0)
}

func (n *Node) walk(f func(*Node, int), depth int) {
	f(n, depth)
	for _, ch := range n.Children {
		ch.walk(f, depth+1)
	}
}

// Leafs returns the lexemes of the leafs of a tree, left to right.
func (n *Node) Leafs() []string {
	var leafs []string
	n.Walk(func(node *Node, _ int) {
		if node.IsLeaf() && node.Token != nil {
			leafs = append(leafs, node.Token.Lexeme())
		}
	})
	return leafs
}

// Indented renders a tree as indented text, one node per line.
func (n *Node) Indented() string {
	var b strings.Builder
	n.Walk(func(node *Node, depth int) {
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(node.String())
		b.WriteByte('\n')
	})
	return b.String()
}

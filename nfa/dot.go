package nfa

import (
	"fmt"
	"io"
)

const dotHeader = `digraph {
graph [rankdir=LR, splines=true, fontname=Helvetica, fontsize=10];
node [shape=circle, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];
start [shape=point];

`

// ToGraphViz exports a fragment to the Graphviz Dot format.
func (f Fragment) ToGraphViz(w io.Writer) error {
	b := &dotWriter{w: w}
	b.printf(dotHeader)
	b.printf("s%d [shape=doublecircle]\n", f.Final)
	b.printf("start -> s%d\n", f.Start)
	for _, t := range f.Edges {
		b.edge(t)
	}
	b.printf("}\n")
	return b.err
}

// ToGraphViz exports an automaton to the Graphviz Dot format. Accepting
// states are labeled with their rule.
func (A *Automaton) ToGraphViz(w io.Writer) error {
	b := &dotWriter{w: w}
	b.printf(dotHeader)
	for _, s := range A.AcceptingStates() {
		b.printf("s%d [shape=doublecircle, xlabel=\"%s\"]\n", s, A.accept[s].Rule)
	}
	b.printf("start -> s%d\n", A.start)
	for s := 0; s < A.size; s++ {
		for _, t := range A.out[s] {
			b.edge(t)
		}
	}
	b.printf("}\n")
	return b.err
}

// dotWriter remembers the first write error.
type dotWriter struct {
	w   io.Writer
	err error
}

func (b *dotWriter) printf(format string, args ...interface{}) {
	if b.err == nil {
		_, b.err = fmt.Fprintf(b.w, format, args...)
	}
}

func (b *dotWriter) edge(t Transition) {
	if t.Label.IsEpsilon() {
		b.printf("s%d -> s%d [label=\"ε\", style=dashed]\n", t.From, t.To)
		return
	}
	b.printf("s%d -> s%d [label=\"%c\"]\n", t.From, t.To, t.Label.r)
}

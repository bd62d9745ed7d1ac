package nfa

import (
	"fmt"
	"strconv"
)

// Label is the label of a transition: either a literal rune or epsilon.
type Label struct {
	r   rune
	eps bool
}

// Epsilon is the label of transitions which do not consume input.
var Epsilon = Label{eps: true}

// Literal creates a label for rune r.
func Literal(r rune) Label {
	return Label{r: r}
}

// IsEpsilon is true for epsilon labels.
func (l Label) IsEpsilon() bool {
	return l.eps
}

// Rune returns the rune of a literal label, or 0 for epsilon.
func (l Label) Rune() rune {
	if l.eps {
		return 0
	}
	return l.r
}

func (l Label) String() string {
	if l.eps {
		return "ε"
	}
	return strconv.QuoteRune(l.r)
}

// Transition is a labeled edge between two states.
type Transition struct {
	From  int
	Label Label
	To    int
}

func (t Transition) String() string {
	return fmt.Sprintf("%d --%s--> %d", t.From, t.Label, t.To)
}

// Fragment is an NFA with states 0…N-1, a start state and a single final
// state. Clients should treat fragments as immutable.
type Fragment struct {
	N     int          // number of states
	Start int          // start state
	Final int          // final (accepting) state
	Edges []Transition // all transitions
}

// States returns the state IDs of f.
func (f Fragment) States() []int {
	states := make([]int, f.N)
	for i := range states {
		states[i] = i
	}
	return states
}

// Renumber returns a copy of f with every state ID shifted by offset.
func (f Fragment) Renumber(offset int) Fragment {
	g := Fragment{
		N:     f.N,
		Start: f.Start + offset,
		Final: f.Final + offset,
		Edges: make([]Transition, len(f.Edges)),
	}
	for i, t := range f.Edges {
		g.Edges[i] = Transition{From: t.From + offset, Label: t.Label, To: t.To + offset}
	}
	return g
}

// Alphabet returns the distinct literal runes occuring in f, in order of appearance.
func (f Fragment) Alphabet() []rune {
	seen := map[rune]bool{}
	var runes []rune
	for _, t := range f.Edges {
		if !t.Label.IsEpsilon() && !seen[t.Label.r] {
			seen[t.Label.r] = true
			runes = append(runes, t.Label.r)
		}
	}
	return runes
}

func (f Fragment) String() string {
	return fmt.Sprintf("(nfa |%d| %d→%d, %d edges)", f.N, f.Start, f.Final, len(f.Edges))
}

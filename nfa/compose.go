package nfa

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// AcceptTag marks an accepting state of an automaton with the lexer rule it
// belongs to. Priority is the declaration index of the rule; lower values win.
type AcceptTag struct {
	Rule     string
	Priority int
}

func (tag AcceptTag) String() string {
	return fmt.Sprintf("<%s:%d>", tag.Rule, tag.Priority)
}

// Composer merges fragments for lexer rules into a single automaton. State 0
// of the automaton is the dispatch start state. Clients add fragments in
// order of rule declaration.
type Composer struct {
	next     int               // next free state ID
	edges    []Transition      // accumulated transitions
	accept   map[int]AcceptTag // accepting states
	priority map[string]int    // rule name -> declaration index
	rules    []string          // rule names in order of declaration
}

// NewComposer creates a composer, holding just the dispatch start state.
func NewComposer() *Composer {
	return &Composer{
		next:     1,
		accept:   make(map[int]AcceptTag),
		priority: make(map[string]int),
	}
}

// Add appends the fragment for a rule. The fragment is renumbered past all
// states added so far and linked from the start state by an epsilon edge.
// Adding a second fragment for an already known rule keeps that rule's priority.
func (c *Composer) Add(rule string, f Fragment) *Composer {
	prio, known := c.priority[rule]
	if !known {
		prio = len(c.rules)
		c.priority[rule] = prio
		c.rules = append(c.rules, rule)
	}
	g := f.Renumber(c.next)
	c.edges = append(c.edges, Transition{From: 0, Label: Epsilon, To: g.Start})
	c.edges = append(c.edges, g.Edges...)
	c.accept[g.Final] = AcceptTag{Rule: rule, Priority: prio}
	c.next += f.N
	tracer().Debugf("rule %s occupies states %d…%d, accepting %d", rule, g.Start, c.next-1, g.Final)
	return c
}

// Automaton creates the combined automaton of all fragments added so far.
// The composer may be used further; the automaton does not share state with it.
func (c *Composer) Automaton() *Automaton {
	A := &Automaton{
		size:   c.next,
		start:  0,
		out:    make([][]Transition, c.next),
		accept: make(map[int]AcceptTag, len(c.accept)),
		rules:  slices.Clone(c.rules),
	}
	for _, t := range c.edges {
		A.out[t.From] = append(A.out[t.From], t)
	}
	for s, tag := range c.accept {
		A.accept[s] = tag
	}
	tracer().Infof("automaton for %d rules has %d states", len(A.rules), A.size)
	return A
}

// Automaton is a combined NFA for a set of lexer rules. Transitions are
// grouped by source state. Automata are read-only after construction and may
// be shared between goroutines.
type Automaton struct {
	size   int
	start  int
	out    [][]Transition
	accept map[int]AcceptTag
	rules  []string
}

// Size returns the number of states.
func (A *Automaton) Size() int {
	return A.size
}

// Start returns the start state.
func (A *Automaton) Start() int {
	return A.start
}

// Rules returns the rule names in order of priority.
func (A *Automaton) Rules() []string {
	return slices.Clone(A.rules)
}

// Transitions returns the outgoing transitions of state s.
func (A *Automaton) Transitions(s int) []Transition {
	if s < 0 || s >= A.size {
		return nil
	}
	return A.out[s]
}

// Tag returns the accept tag of state s, if s is accepting.
func (A *Automaton) Tag(s int) (AcceptTag, bool) {
	tag, ok := A.accept[s]
	return tag, ok
}

// AcceptingStates returns all accepting states in increasing order.
func (A *Automaton) AcceptingStates() []int {
	states := maps.Keys(A.accept)
	slices.Sort(states)
	return states
}

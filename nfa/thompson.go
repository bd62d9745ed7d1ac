package nfa

import (
	"fmt"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/fegen/regex"
)

// === Thompson construction ==================================================

// Refer to "Compilers: Principles, Techniques, and Tools" by Aho, Lam, Sethi
// and Ullman, Section 3.7.4.

// literal builds  0 --r--> 1.
func literal(r rune) Fragment {
	label := Literal(r)
	if r == regex.Epsilon {
		label = Epsilon
	}
	return Fragment{
		N:     2,
		Start: 0,
		Final: 1,
		Edges: []Transition{{From: 0, Label: label, To: 1}},
	}
}

// concat builds AB. B is renumbered behind A and A's final state is linked to
// B's start state.
func concat(a, b Fragment) Fragment {
	b = b.Renumber(a.N)
	edges := make([]Transition, 0, len(a.Edges)+len(b.Edges)+1)
	edges = append(edges, a.Edges...)
	edges = append(edges, Transition{From: a.Final, Label: Epsilon, To: b.Start})
	edges = append(edges, b.Edges...)
	return Fragment{
		N:     a.N + b.N,
		Start: a.Start,
		Final: b.Final,
		Edges: edges,
	}
}

// union builds A|B with a fresh start state 0 and a fresh final state.
func union(a, b Fragment) Fragment {
	a = a.Renumber(1)
	b = b.Renumber(1 + a.N)
	final := 1 + a.N + b.N
	edges := make([]Transition, 0, len(a.Edges)+len(b.Edges)+4)
	edges = append(edges,
		Transition{From: 0, Label: Epsilon, To: a.Start},
		Transition{From: 0, Label: Epsilon, To: b.Start})
	edges = append(edges, a.Edges...)
	edges = append(edges, b.Edges...)
	edges = append(edges,
		Transition{From: a.Final, Label: Epsilon, To: final},
		Transition{From: b.Final, Label: Epsilon, To: final})
	return Fragment{
		N:     final + 1,
		Start: 0,
		Final: final,
		Edges: edges,
	}
}

// kleene builds A* with a fresh start state 0 and a fresh final state.
func kleene(a Fragment) Fragment {
	a = a.Renumber(1)
	final := 1 + a.N
	edges := make([]Transition, 0, len(a.Edges)+4)
	edges = append(edges,
		Transition{From: 0, Label: Epsilon, To: a.Start},
		Transition{From: 0, Label: Epsilon, To: final})
	edges = append(edges, a.Edges...)
	edges = append(edges,
		Transition{From: a.Final, Label: Epsilon, To: a.Start},
		Transition{From: a.Final, Label: Epsilon, To: final})
	return Fragment{
		N:     final + 1,
		Start: 0,
		Final: final,
		Edges: edges,
	}
}

// plus builds A+ = A A*.
func plus(a Fragment) Fragment {
	return concat(a, kleene(a))
}

// optional builds A? = A|ϵ, plus a direct edge from start to final.
func optional(a Fragment) Fragment {
	u := union(a, literal(regex.Epsilon))
	u.Edges = append(u.Edges, Transition{From: u.Start, Label: Epsilon, To: u.Final})
	return u
}

// Build constructs a fragment from a postfix pattern (see regex.ToPostfix).
//
// Build panics if the postfix pattern is malformed, i.e. if an operator
// lacks operands or operands remain without operator. Patterns produced by
// package regex never trigger this.
func Build(postfix string) Fragment {
	operands := arraystack.New()
	pop := func(op rune) Fragment {
		f, ok := operands.Pop()
		if !ok {
			panic(fmt.Sprintf("nfa: operand stack underflow at operator %q in %q", op, postfix))
		}
		return f.(Fragment)
	}
	for _, r := range postfix {
		switch r {
		case regex.Concat:
			b, a := pop(r), pop(r)
			operands.Push(concat(a, b))
		case regex.Alternation:
			b, a := pop(r), pop(r)
			operands.Push(union(a, b))
		case regex.Star:
			operands.Push(kleene(pop(r)))
		case regex.Plus:
			operands.Push(plus(pop(r)))
		case regex.Optional:
			operands.Push(optional(pop(r)))
		default:
			operands.Push(literal(r))
		}
	}
	if operands.Size() != 1 {
		panic(fmt.Sprintf("nfa: malformed postfix pattern %q leaves %d operands", postfix, operands.Size()))
	}
	f, _ := operands.Pop()
	tracer().Debugf("built %v for %q", f, postfix)
	return f.(Fragment)
}

// Compile translates a raw pattern (see regex.Normalize) into a fragment.
func Compile(pattern string) (Fragment, error) {
	postfix, err := regex.Translate(pattern)
	if err != nil {
		return Fragment{}, err
	}
	return Build(postfix), nil
}

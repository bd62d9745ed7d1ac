package nfa

import (
	"golang.org/x/tools/container/intsets"
)

// === Simulation =============================================================

// Closure returns the epsilon-closure of a set of states, i.e. the smallest
// superset of S which is closed under epsilon transitions. S is not modified.
func (A *Automaton) Closure(S *intsets.Sparse) *intsets.Sparse {
	C := &intsets.Sparse{}
	C.Copy(S)
	work := S.AppendTo(nil)
	for len(work) > 0 {
		s := work[len(work)-1]
		work = work[:len(work)-1]
		for _, t := range A.Transitions(s) {
			if t.Label.IsEpsilon() && C.Insert(t.To) {
				work = append(work, t.To)
			}
		}
	}
	return C
}

// Move returns the set of states reachable from S by a transition labeled r.
func (A *Automaton) Move(S *intsets.Sparse, r rune) *intsets.Sparse {
	M := &intsets.Sparse{}
	for _, s := range S.AppendTo(nil) {
		for _, t := range A.Transitions(s) {
			if !t.Label.IsEpsilon() && t.Label.r == r {
				M.Insert(t.To)
			}
		}
	}
	return M
}

// Step consumes one rune: the epsilon-closure of Move(S, r).
func (A *Automaton) Step(S *intsets.Sparse, r rune) *intsets.Sparse {
	return A.Closure(A.Move(S, r))
}

// Initial returns the epsilon-closure of the start state.
func (A *Automaton) Initial() *intsets.Sparse {
	S := &intsets.Sparse{}
	S.Insert(A.start)
	return A.Closure(S)
}

// Accepting checks if S contains accepting states. If it does, the tag with the
// lowest priority value is returned. States are inspected in increasing order.
func (A *Automaton) Accepting(S *intsets.Sparse) (AcceptTag, bool) {
	var best AcceptTag
	found := false
	for _, s := range S.AppendTo(nil) {
		if tag, ok := A.accept[s]; ok && (!found || tag.Priority < best.Priority) {
			best, found = tag, true
		}
	}
	return best, found
}

// Match runs the automaton on a complete word. It returns the tag of the
// winning rule if the automaton accepts the word as a whole.
func (A *Automaton) Match(word string) (AcceptTag, bool) {
	S := A.Initial()
	for _, r := range word {
		S = A.Step(S, r)
		if S.IsEmpty() {
			return AcceptTag{}, false
		}
	}
	return A.Accepting(S)
}

// Longest finds the longest non-empty prefix of input[from:] accepted by the
// automaton. It returns the end position of the prefix (exclusive) and the
// tag of the winning rule.
func (A *Automaton) Longest(input []rune, from int) (end int, tag AcceptTag, ok bool) {
	S := A.Initial()
	for i := from; i < len(input); i++ {
		S = A.Step(S, input[i])
		if S.IsEmpty() {
			break
		}
		if t, accepting := A.Accepting(S); accepting {
			end, tag, ok = i+1, t, true
		}
	}
	return
}

package lr

import (
	"golang.org/x/tools/container/intsets"
)

// LRAnalysis is an object for static analysis of a grammar. It determines
// the nullable non-terminals and computes FIRST and FOLLOW sets. Sets hold
// token values of terminals; EpsilonType stands for the empty word.
type LRAnalysis struct {
	g        *Grammar
	nullable *intsets.Sparse             // values of nullable non-terminals
	first    map[*Symbol]*intsets.Sparse // FIRST sets of non-terminals, without epsilon
	follow   map[*Symbol]*intsets.Sparse // FOLLOW sets of non-terminals
}

// Analysis creates an analysis for grammar g and runs it.
func Analysis(g *Grammar) *LRAnalysis {
	ga := &LRAnalysis{
		g:        g,
		nullable: &intsets.Sparse{},
		first:    make(map[*Symbol]*intsets.Sparse),
		follow:   make(map[*Symbol]*intsets.Sparse),
	}
	for _, A := range g.NonTerminals() {
		ga.first[A] = &intsets.Sparse{}
		ga.follow[A] = &intsets.Sparse{}
	}
	ga.markNullable()
	ga.computeFirst()
	ga.computeFollow()
	return ga
}

// Grammar returns the grammar this analysis is for.
func (ga *LRAnalysis) Grammar() *Grammar {
	return ga.g
}

// Nullable is true if A derives the empty word. Terminals are never nullable.
func (ga *LRAnalysis) Nullable(A *Symbol) bool {
	return !A.IsTerminal() && ga.nullable.Has(A.Value)
}

// First returns FIRST(A). For terminals this is {A}. For nullable
// non-terminals the set contains EpsilonType. The set is a copy.
func (ga *LRAnalysis) First(A *Symbol) *intsets.Sparse {
	F := &intsets.Sparse{}
	if A.IsTerminal() {
		F.Insert(A.Value)
		return F
	}
	F.Copy(ga.first[A])
	if ga.Nullable(A) {
		F.Insert(EpsilonType)
	}
	return F
}

// FirstStar returns FIRST of a sequence of symbols. The set contains
// EpsilonType if every symbol of the sequence is nullable, in particular
// for the empty sequence.
func (ga *LRAnalysis) FirstStar(seq []*Symbol) *intsets.Sparse {
	F := &intsets.Sparse{}
	for _, X := range seq {
		if X.IsTerminal() {
			F.Insert(X.Value)
			return F
		}
		F.UnionWith(ga.first[X])
		if !ga.Nullable(X) {
			return F
		}
	}
	F.Insert(EpsilonType)
	return F
}

// Follow returns FOLLOW(A) for a non-terminal A. The set is a copy.
func (ga *LRAnalysis) Follow(A *Symbol) *intsets.Sparse {
	F := &intsets.Sparse{}
	if f, ok := ga.follow[A]; ok {
		F.Copy(f)
	}
	return F
}

// --- Fixed point iterations --------------------------------------------------

func (ga *LRAnalysis) markNullable() {
	for changed := true; changed; {
		changed = false
		for _, r := range ga.g.rules {
			if ga.nullable.Has(r.LHS.Value) {
				continue
			}
			all := true
			for _, X := range r.rhs {
				if !ga.Nullable(X) {
					all = false
					break
				}
			}
			if all {
				ga.nullable.Insert(r.LHS.Value)
				changed = true
			}
		}
	}
	tracer().Debugf("nullable non-terminals: %v", ga.nullable)
}

func (ga *LRAnalysis) computeFirst() {
	for changed := true; changed; {
		changed = false
		for _, r := range ga.g.rules {
			F := ga.first[r.LHS]
			for _, X := range r.rhs {
				if X.IsTerminal() {
					changed = F.Insert(X.Value) || changed
					break
				}
				changed = F.UnionWith(ga.first[X]) || changed
				if !ga.Nullable(X) {
					break
				}
			}
		}
	}
}

func (ga *LRAnalysis) computeFollow() {
	eps := &intsets.Sparse{}
	eps.Insert(EpsilonType)
	for changed := true; changed; {
		changed = false
		for _, r := range ga.g.rules {
			for i, X := range r.rhs {
				if X.IsTerminal() {
					continue
				}
				rest := ga.FirstStar(r.rhs[i+1:])
				restNullable := rest.Has(EpsilonType)
				rest.DifferenceWith(eps)
				changed = ga.follow[X].UnionWith(rest) || changed
				if restNullable {
					changed = ga.follow[X].UnionWith(ga.follow[r.LHS]) || changed
				}
			}
		}
	}
	for _, A := range ga.g.NonTerminals() {
		tracer().Debugf("FOLLOW(%s) = %v", A, ga.follow[A])
	}
}

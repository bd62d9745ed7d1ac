package lr

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// Item is an LR(0) item, i.e. a rule with a dot position within its RHS.
//
//    [A ::= α • β]
//
type Item struct {
	rule *Rule
	dot  int
}

// StartItem returns the item with the dot at the start of rule r.
func StartItem(r *Rule) Item {
	return Item{rule: r}
}

// Rule returns the rule of an item.
func (i Item) Rule() *Rule {
	return i.rule
}

// Dot returns the position of the dot.
func (i Item) Dot() int {
	return i.dot
}

// PeekSymbol returns the symbol after the dot, or nil if the item is complete.
func (i Item) PeekSymbol() *Symbol {
	if i.dot >= len(i.rule.rhs) {
		return nil
	}
	return i.rule.rhs[i.dot]
}

// Advance moves the dot over the next symbol. Advancing a complete item
// returns the item itself.
func (i Item) Advance() Item {
	if i.dot >= len(i.rule.rhs) {
		return i
	}
	return Item{rule: i.rule, dot: i.dot + 1}
}

// Prefix returns the symbols before the dot.
func (i Item) Prefix() []*Symbol {
	return i.rule.rhs[:i.dot]
}

// IsComplete is true if the dot is behind the last symbol of the RHS.
func (i Item) IsComplete() bool {
	return i.dot >= len(i.rule.rhs)
}

func (i Item) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s ::= ", i.rule.LHS)
	for k, A := range i.rule.rhs {
		if k == i.dot {
			b.WriteString("• ")
		}
		b.WriteString(A.Name)
		b.WriteByte(' ')
	}
	if i.IsComplete() {
		b.WriteString("•")
	}
	return strings.TrimSpace(b.String()) + "]"
}

// --- Item sets -------------------------------------------------------------

// Item sets are ordered by rule serial, then by dot position.
func itemComparator(a, b interface{}) int {
	i1, i2 := a.(Item), b.(Item)
	if c := utils.IntComparator(i1.rule.Serial, i2.rule.Serial); c != 0 {
		return c
	}
	return utils.IntComparator(i1.dot, i2.dot)
}

func newItemSet(items ...Item) *treeset.Set {
	S := treeset.NewWith(itemComparator)
	for _, i := range items {
		S.Add(i)
	}
	return S
}

func asItem(x interface{}) Item {
	return x.(Item)
}

func itemSetsEqual(S1, S2 *treeset.Set) bool {
	return S1.Size() == S2.Size() && S1.Contains(S2.Values()...)
}

func itemSetString(S *treeset.Set) string {
	var b strings.Builder
	b.WriteString("{")
	for k, x := range S.Values() {
		if k > 0 {
			b.WriteString(",")
		}
		b.WriteString(" ")
		b.WriteString(asItem(x).String())
	}
	b.WriteString(" }")
	return b.String()
}

// === Closure and Goto-Set Operations =======================================

// Refer to "Crafting A Compiler" by Charles N. Fisher & Richard J. LeBlanc, Jr.
// Section 6.2.1 LR(0) Parsing

// Closure computes the LR(0) closure of an item set: for every item with a
// non-terminal A after the dot, all start items of rules for A are added.
// S is not modified.
func (ga *LRAnalysis) Closure(S *treeset.Set) *treeset.Set {
	C := newItemSet()
	work := make([]Item, 0, S.Size())
	for _, x := range S.Values() {
		C.Add(x)
		work = append(work, asItem(x))
	}
	for len(work) > 0 {
		item := work[len(work)-1]
		work = work[:len(work)-1]
		A := item.PeekSymbol()
		if A == nil || A.IsTerminal() {
			continue
		}
		for _, r := range ga.g.RulesFor(A) {
			if i := StartItem(r); !C.Contains(i) {
				C.Add(i)
				work = append(work, i)
			}
		}
	}
	return C
}

// Goto computes the closure of the items of S which may be advanced over A.
// The result is empty if no item of S expects A.
func (ga *LRAnalysis) Goto(S *treeset.Set, A *Symbol) *treeset.Set {
	gotoset := newItemSet()
	for _, x := range S.Values() {
		i := asItem(x)
		if i.PeekSymbol() == A {
			gotoset.Add(i.Advance())
		}
	}
	if gotoset.Empty() {
		return gotoset
	}
	C := ga.Closure(gotoset)
	tracer().Debugf("goto(%s) --%s--> %s", itemSetString(S), A, itemSetString(C))
	return C
}

package lr

import (
	"fmt"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/fegen"
	"github.com/npillmayer/fegen/lr/sparse"
	"golang.org/x/exp/slices"
)

// https://stackoverflow.com/questions/12968048/what-is-the-closure-of-a-left-recursive-lr0-item-with-epsilon-transitions
// https://www.cs.bgu.ac.il/~comp151/wiki.files/ps6.html#sec-2-7-3

// Actions for parser action tables. Reduce actions are encoded as the
// serial number of the rule to reduce.
const (
	ShiftAction  = -1
	AcceptAction = -2
)

// === CFSM Construction =====================================================

// CFSMState is a state within the CFSM for a grammar.
type CFSMState struct {
	ID     uint         // serial ID of this state
	items  *treeset.Set // configuration items within this state
	Accept bool         // is this an accepting state?
}

// CFSM edge between 2 states, directed and labeled with a grammar symbol
type cfsmEdge struct {
	from  *CFSMState
	to    *CFSMState
	label *Symbol
}

// Dump is a debugging helper
func (s *CFSMState) Dump() {
	tracer().Debugf("--- state %03d -----------", s.ID)
	for _, x := range s.items.Values() {
		tracer().Debugf("    %v", x)
	}
	tracer().Debugf("-------------------------")
}

// Items returns the items of a state, ordered by rule and dot position.
func (s *CFSMState) Items() []Item {
	items := make([]Item, 0, s.items.Size())
	for _, x := range s.items.Values() {
		items = append(items, asItem(x))
	}
	return items
}

func (s *CFSMState) String() string {
	return fmt.Sprintf("(state %d | [%d])", s.ID, s.items.Size())
}

func (s *CFSMState) containsCompletedStartRule() bool {
	for _, x := range s.items.Values() {
		i := asItem(x)
		if i.rule.Serial == 0 && i.IsComplete() {
			return true
		}
	}
	return false
}

// We need this for the set of states. It sorts states by serial ID.
func stateComparator(s1, s2 interface{}) int {
	c1 := s1.(*CFSMState)
	c2 := s2.(*CFSMState)
	return utils.IntComparator(int(c1.ID), int(c2.ID))
}

// CFSM is the characteristic finite state machine for a LR grammar, i.e. the
// LR(0) state diagram. Will be constructed by a TableGenerator.
// Clients normally do not use it directly. Nevertheless, there are some methods
// defined on it, e.g, for debugging purposes, or even to
// compute your own tables from it.
type CFSM struct {
	g       *Grammar                // this CFSM is for Grammar g
	states  *treeset.Set            // all the states
	edges   *arraylist.List         // all the edges between states
	buckets map[string][]*CFSMState // states by fingerprint of their item sets
	S0      *CFSMState              // start state
	cfsmIds uint                    // serial IDs for CFSM states
}

// create an empty (initial) CFSM automata.
func emptyCFSM(g *Grammar) *CFSM {
	return &CFSM{
		g:       g,
		states:  treeset.NewWith(stateComparator),
		edges:   arraylist.New(),
		buckets: make(map[string][]*CFSMState),
	}
}

// itemKey is the hashable form of an item.
type itemKey struct {
	Rule int
	Dot  int
}

type itemSetKey struct {
	Items []itemKey
}

// fingerprint hashes the content of an item set. Equal sets have equal
// fingerprints; states are compared item by item within a bucket.
func fingerprint(iset *treeset.Set) string {
	key := itemSetKey{Items: make([]itemKey, 0, iset.Size())}
	for _, x := range iset.Values() {
		i := asItem(x)
		key.Items = append(key.Items, itemKey{Rule: i.rule.Serial, Dot: i.dot})
	}
	h, err := structhash.Hash(key, 1)
	if err != nil {
		panic(fmt.Sprintf("lr: cannot hash item set: %v", err))
	}
	return h
}

// Add a state to the CFSM. Checks first if state is present.
func (c *CFSM) addState(iset *treeset.Set) (*CFSMState, bool) {
	fp := fingerprint(iset)
	for _, s := range c.buckets[fp] {
		if itemSetsEqual(s.items, iset) {
			return s, false
		}
	}
	s := &CFSMState{ID: c.cfsmIds, items: iset}
	c.cfsmIds++
	c.states.Add(s)
	c.buckets[fp] = append(c.buckets[fp], s)
	return s, true
}

func (c *CFSM) addEdge(s0, s1 *CFSMState, sym *Symbol) {
	c.edges.Add(&cfsmEdge{from: s0, to: s1, label: sym})
}

func (c *CFSM) allEdges(s *CFSMState) []*cfsmEdge {
	it := c.edges.Iterator()
	r := make([]*cfsmEdge, 0, 2)
	for it.Next() {
		e := it.Value().(*cfsmEdge)
		if e.from == s {
			r = append(r, e)
		}
	}
	return r
}

// Size returns the number of states.
func (c *CFSM) Size() int {
	return c.states.Size()
}

// States returns all states, ordered by ID.
func (c *CFSM) States() []*CFSMState {
	states := make([]*CFSMState, 0, c.states.Size())
	for _, x := range c.states.Values() {
		states = append(states, x.(*CFSMState))
	}
	return states
}

// State returns the state with a given ID, or nil.
func (c *CFSM) State(id uint) *CFSMState {
	for _, x := range c.states.Values() {
		if s := x.(*CFSMState); s.ID == id {
			return s
		}
	}
	return nil
}

// Goto returns the successor of s for symbol A, or nil.
func (c *CFSM) Goto(s *CFSMState, A *Symbol) *CFSMState {
	for _, e := range c.allEdges(s) {
		if e.label == A {
			return e.to
		}
	}
	return nil
}

// Construct the characteristic finite state machine CFSM for a grammar.
// States are explored breadth first, symbols in order of declaration.
func (lrgen *TableGenerator) buildCFSM() *CFSM {
	tracer().Debugf("=== build CFSM ==================================================")
	G := lrgen.g
	cfsm := emptyCFSM(G)
	closure0 := lrgen.ga.Closure(newItemSet(StartItem(G.rules[0])))
	cfsm.S0, _ = cfsm.addState(closure0)
	cfsm.S0.Dump()
	S := treeset.NewWith(stateComparator)
	S.Add(cfsm.S0)
	for S.Size() > 0 {
		s := S.Values()[0].(*CFSMState)
		S.Remove(s)
		for _, A := range G.symbols {
			gotoset := lrgen.ga.Goto(s.items, A)
			if gotoset.Empty() {
				continue
			}
			snew, isNew := cfsm.addState(gotoset)
			if isNew {
				S.Add(snew)
				snew.Accept = snew.containsCompletedStartRule()
				snew.Dump()
			}
			cfsm.addEdge(s, snew, A)
		}
	}
	tracer().Infof("CFSM for grammar %s has %d states", G.Name, cfsm.Size())
	return cfsm
}

// ===========================================================================

// TableGenerator is a generator object to construct LR parser tables.
// Clients usually create a Grammar G, then a LRAnalysis-object for G,
// and then a table generator. TableGenerator.CreateTables() constructs
// the CFSM and parser tables for an LR-parser recognizing grammar G.
type TableGenerator struct {
	g            *Grammar
	ga           *LRAnalysis
	dfa          *CFSM
	gototable    *Table
	actiontable  *Table
	conflicts    []Conflict
	HasConflicts bool
}

// NewTableGenerator creates a new TableGenerator for a (previously analysed) grammar.
func NewTableGenerator(ga *LRAnalysis) *TableGenerator {
	lrgen := &TableGenerator{}
	lrgen.g = ga.Grammar()
	lrgen.ga = ga
	return lrgen
}

// CFSM returns the characteristic finite state machine (CFSM) for a grammar.
// Usually clients call lrgen.CreateTables() beforehand, but it is possible
// to call lrgen.CFSM() directly. The CFSM will be created, if it has not
// been constructed previously.
func (lrgen *TableGenerator) CFSM() *CFSM {
	if lrgen.dfa == nil {
		lrgen.dfa = lrgen.buildCFSM()
	}
	return lrgen.dfa
}

// GotoTable returns the GOTO table for LR-parsing a grammar. The tables have to be
// built by calling CreateTables() previously.
func (lrgen *TableGenerator) GotoTable() *Table {
	if lrgen.gototable == nil {
		tracer().Errorf("tables not yet initialized")
	}
	return lrgen.gototable
}

// ActionTable returns the ACTION table for LR-parsing a grammar. The tables have to be
// built by calling CreateTables() previously. If the grammar has conflicts,
// no ACTION table is available and ActionTable returns nil.
func (lrgen *TableGenerator) ActionTable() *Table {
	if lrgen.actiontable == nil {
		tracer().Errorf("tables not yet initialized")
		return nil
	}
	if lrgen.HasConflicts {
		tracer().Errorf("grammar %s has conflicts, no ACTION table available", lrgen.g.Name)
		return nil
	}
	return lrgen.actiontable
}

// Conflicts returns the conflicts found by CreateTables().
func (lrgen *TableGenerator) Conflicts() []Conflict {
	return lrgen.conflicts
}

// CreateTables creates the necessary data structures for an SLR parser.
// If the grammar is not SLR(1), a *ConflictError listing every conflict is
// returned.
func (lrgen *TableGenerator) CreateTables() error {
	lrgen.dfa = lrgen.buildCFSM()
	lrgen.gototable = lrgen.BuildGotoTable()
	lrgen.actiontable, lrgen.conflicts = lrgen.BuildSLR1ActionTable()
	lrgen.HasConflicts = len(lrgen.conflicts) > 0
	if lrgen.HasConflicts {
		err := &ConflictError{Grammar: lrgen.g.Name, Conflicts: lrgen.conflicts}
		tracer().Errorf("%v", err)
		return err
	}
	return nil
}

// AcceptingStates returns all states of the CFSM which have an accept action,
// i.e. which shift #eof after a complete start symbol.
// Clients have to call CreateTables() first.
func (lrgen *TableGenerator) AcceptingStates() []uint {
	if lrgen.dfa == nil {
		tracer().Errorf("tables not yet generated; call CreateTables() first")
		return nil
	}
	var acc []uint
	it := lrgen.dfa.edges.Iterator()
	for it.Next() {
		e := it.Value().(*cfsmEdge)
		if e.to.Accept {
			acc = append(acc, e.from.ID)
		}
	}
	slices.Sort(acc)
	return slices.Compact(acc)
}

// symbolRange returns the lowest and highest symbol value of the grammar.
func (lrgen *TableGenerator) symbolRange() (mintok, maxtok fegen.TokType) {
	for _, A := range lrgen.g.symbols {
		if A.TokenType() > maxtok {
			maxtok = A.TokenType()
		} else if A.TokenType() < mintok {
			mintok = A.TokenType()
		}
	}
	return
}

func (lrgen *TableGenerator) newTable(name string) *Table {
	statescnt := lrgen.CFSM().Size()
	mintok, maxtok := lrgen.symbolRange()
	extent := int(maxtok - mintok + 1)
	tracer().Infof("%s table of size %d x (%d-%d=%d)", name, statescnt, maxtok, mintok, extent)
	return &Table{
		matrix: sparse.NewIntMatrix(statescnt, extent, sparse.DefaultNullValue),
		mincol: mintok,
	}
}

// BuildGotoTable builds the GOTO table. This is normally not called directly, but rather
// via CreateTables(). The table holds the successor state for every edge of
// the CFSM, i.e. for terminals the target state of a shift.
func (lrgen *TableGenerator) BuildGotoTable() *Table {
	gototable := lrgen.newTable("GOTO")
	for _, state := range lrgen.CFSM().States() {
		for _, e := range lrgen.dfa.allEdges(state) {
			gototable.set(state.ID, e.label.TokenType(), int32(e.to.ID))
		}
	}
	return gototable
}

// BuildLR0ActionTable contructs an LR(0) action table. This method is not called by
// CreateTables(), as we normally use an SLR(1) parser and therefore an action table with
// lookahead included. Reduce entries of an LR(0) table do not depend on
// lookahead, so every terminal gets the reduce entry. A grammar without
// conflicts in this table is LR(0).
func (lrgen *TableGenerator) BuildLR0ActionTable() (*Table, []Conflict) {
	return lrgen.buildActionTable(lrgen.newTable("ACTION.0"), false)
}

// BuildSLR1ActionTable constructs the SLR(1) Action table. This method is normally not called
// by clients, but rather via CreateTables(). It builds an action table including
// lookahead (using the FOLLOW-set created by the grammar analyzer).
func (lrgen *TableGenerator) BuildSLR1ActionTable() (*Table, []Conflict) {
	return lrgen.buildActionTable(lrgen.newTable("ACTION.1"), true)
}

// For building an ACTION table we iterate over all the states of the CFSM.
// An inner loop iterates over all the items within a CFSM-state.
// If an item has a terminal immediately after the dot, we produce a shift
// entry (an accept entry for #eof). If an item's dot is behind the complete
// RHS of a rule, then
// - for the LR(0) case: we produce a reduce-entry for the rule and every terminal
// - for the SLR case: we produce a reduce-entry for the rule for each
//   terminal from FOLLOW(LHS).
//
// The table is returned as a sparse matrix, where every entry may consist of
// more than one action. Every such entry is reported as a conflict.
func (lrgen *TableGenerator) buildActionTable(actions *Table, slr1 bool) (*Table, []Conflict) {
	CFSM := lrgen.CFSM()
	terminals := lrgen.g.Terminals()
	for _, state := range CFSM.States() {
		tracer().Debugf("--- state %d --------------------------------", state.ID)
		for _, i := range state.Items() {
			A := i.PeekSymbol()
			if A != nil && A.IsTerminal() { // create a shift entry
				actions.add(state.ID, A.TokenType(), shiftOrAccept(A))
				tracer().Debugf("    %v: %s", i, actionEntry(state.ID, A.TokenType(), actions))
				continue
			}
			if A != nil || i.rule.Serial == 0 { // rule 0 is handled by accept
				continue
			}
			var lookaheads []int
			if slr1 {
				lookaheads = lrgen.ga.Follow(i.rule.LHS).AppendTo(nil)
			} else {
				for _, T := range terminals {
					lookaheads = append(lookaheads, T.Value)
				}
			}
			tracer().Debugf("    %v: reduce on %v", i, lookaheads)
			for _, la := range lookaheads {
				actions.add(state.ID, fegen.TokType(la), int32(i.rule.Serial))
			}
		}
	}
	conflicts := lrgen.collectConflicts(actions)
	return actions, conflicts
}

func shiftOrAccept(terminal *Symbol) int32 {
	if terminal.Value == EOFType {
		return AcceptAction
	}
	return ShiftAction
}

// --- Tables ----------------------------------------------------------------

// Table is a parser table. Rows are indexed by CFSM state IDs, columns by
// symbol values.
type Table struct {
	matrix *sparse.IntMatrix
	mincol fegen.TokType // lowest value for index j => offset for access
}

func (t *Table) add(i uint, tt fegen.TokType, val int32) {
	j := tt - t.mincol
	if j < 0 {
		panic(fmt.Sprintf("lr.Table.add() with index < 0: %d", j))
	}
	t.matrix.Add(int(i), int(j), val)
}

func (t *Table) set(i uint, tt fegen.TokType, val int32) {
	j := tt - t.mincol
	if j < 0 {
		panic(fmt.Sprintf("lr.Table.set() with index < 0: %d", j))
	}
	t.matrix.Set(int(i), int(j), val)
}

// NullValue is the value of empty table entries.
func (t *Table) NullValue() int32 {
	return t.matrix.NullValue()
}

// Value returns the primary entry at (state i, symbol tt), or NullValue for
// an empty entry. Symbols unknown to the table yield NullValue.
func (t *Table) Value(i uint, tt fegen.TokType) int32 {
	j := tt - t.mincol
	if j < 0 || int(j) >= t.matrix.N() {
		return t.NullValue()
	}
	return t.matrix.Value(int(i), int(j))
}

// Values returns all entries at (state i, symbol tt).
func (t *Table) Values(i uint, tt fegen.TokType) []int32 {
	j := tt - t.mincol
	if j < 0 || int(j) >= t.matrix.N() {
		return nil
	}
	return t.matrix.Values(int(i), int(j))
}

// ValueCount returns the number of non-empty entries.
func (t *Table) ValueCount() int {
	return t.matrix.ValueCount()
}

// ----------------------------------------------------------------------

func actionEntry(stateID uint, la fegen.TokType, aT *Table) string {
	var s string
	for k, v := range aT.Values(stateID, la) {
		if k > 0 {
			s += ","
		}
		s += valstring(v, aT)
	}
	return fmt.Sprintf("Action(%s)", s)
}

// valstring is a short helper to stringify an action table entry.
func valstring(v int32, m *Table) string {
	if v == m.NullValue() {
		return "<none>"
	} else if v == AcceptAction {
		return "<accept>"
	} else if v == ShiftAction {
		return "<shift>"
	}
	return fmt.Sprintf("<reduce %d>", v)
}

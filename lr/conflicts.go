package lr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/fegen"
)

// ErrConflicts is wrapped by ConflictError.
var ErrConflicts = errors.New("grammar is not SLR(1)")

// ConflictKind classifies a conflict in an ACTION table.
type ConflictKind int

// Kinds of conflicts.
const (
	ShiftReduce ConflictKind = iota
	ReduceReduce
)

func (k ConflictKind) String() string {
	if k == ShiftReduce {
		return "shift/reduce"
	}
	return "reduce/reduce"
}

// Conflict is an ACTION table entry with more than one action.
type Conflict struct {
	State   uint    // CFSM state
	Symbol  *Symbol // lookahead terminal
	Kind    ConflictKind
	Actions []int32 // competing actions: ShiftAction, AcceptAction, or a rule serial
}

func (c Conflict) String() string {
	acts := make([]string, len(c.Actions))
	for i, a := range c.Actions {
		acts[i] = actionString(a)
	}
	return fmt.Sprintf("%v conflict in state %d on %s: %s", c.Kind, c.State, c.Symbol,
		strings.Join(acts, ", "))
}

func actionString(a int32) string {
	switch a {
	case ShiftAction:
		return "shift"
	case AcceptAction:
		return "accept"
	}
	return fmt.Sprintf("reduce %d", a)
}

// ConflictError reports every conflict of a grammar which is not SLR(1).
type ConflictError struct {
	Grammar   string
	Conflicts []Conflict
}

func (e *ConflictError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "grammar %s has %d conflict(s)", e.Grammar, len(e.Conflicts))
	for _, c := range e.Conflicts {
		b.WriteString("\n    ")
		b.WriteString(c.String())
	}
	return b.String()
}

func (e *ConflictError) Unwrap() error {
	return ErrConflicts
}

// collectConflicts reports every table entry with more than one action,
// ordered by state and symbol value.
func (lrgen *TableGenerator) collectConflicts(actions *Table) []Conflict {
	var conflicts []Conflict
	actions.matrix.Each(func(i, j int, values []int32) {
		if len(values) < 2 {
			return
		}
		c := Conflict{
			State:   uint(i),
			Symbol:  lrgen.g.SymbolByValue(int(fegen.TokType(j) + actions.mincol)),
			Kind:    ReduceReduce,
			Actions: values,
		}
		for _, v := range values {
			if v == ShiftAction || v == AcceptAction {
				c.Kind = ShiftReduce
			}
		}
		tracer().Debugf("%v", c)
		conflicts = append(conflicts, c)
	})
	return conflicts
}

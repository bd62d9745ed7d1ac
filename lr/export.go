package lr

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/tools/container/intsets"
)

// --- Graphviz --------------------------------------------------------------

type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err == nil {
		_, ew.err = fmt.Fprintf(ew.w, format, args...)
	}
}

// CFSM2GraphViz exports a CFSM to the Graphviz Dot format.
func (c *CFSM) CFSM2GraphViz(w io.Writer) error {
	ew := &errWriter{w: w}
	ew.printf(`digraph {
graph [splines=true, fontname=Helvetica, fontsize=10];
node [shape=Mrecord, style=filled, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`)
	for _, s := range c.States() {
		ew.printf("s%03d [fillcolor=%s label=\"{%03d | %s}\"]\n",
			s.ID, nodecolor(s), s.ID, forGraphviz(s))
	}
	it := c.edges.Iterator()
	for it.Next() {
		edge := it.Value().(*cfsmEdge)
		ew.printf("s%03d -> s%03d [label=\"%s\"]\n", edge.from.ID, edge.to.ID, dotEscape(edge.label.Name))
	}
	ew.printf("}\n")
	return ew.err
}

func nodecolor(state *CFSMState) string {
	if state.Accept {
		return "lightgray"
	}
	return "white"
}

func forGraphviz(s *CFSMState) string {
	var b strings.Builder
	for _, i := range s.Items() {
		b.WriteString(dotEscape(i.String()))
		b.WriteString("\\l")
	}
	return b.String()
}

var dotEscaper = strings.NewReplacer(
	`\`, `\\`, `"`, `\"`, `{`, `\{`, `}`, `\}`, `|`, `\|`, `<`, `\<`, `>`, `\>`)

func dotEscape(s string) string {
	return dotEscaper.Replace(s)
}

// --- HTML ------------------------------------------------------------------

// GotoTableAsHTML exports a GOTO-table in HTML-format.
func GotoTableAsHTML(lrgen *TableGenerator, w io.Writer) error {
	if lrgen.gototable == nil {
		tracer().Errorf("GOTO table not yet created, cannot export to HTML")
		return fmt.Errorf("GOTO table not yet created")
	}
	return parserTableAsHTML(lrgen, "GOTO", lrgen.gototable, w)
}

// ActionTableAsHTML exports the SLR(1) ACTION-table in HTML-format.
// Tables with conflicts are exported as well, showing every competing action.
func ActionTableAsHTML(lrgen *TableGenerator, w io.Writer) error {
	if lrgen.actiontable == nil {
		tracer().Errorf("ACTION table not yet created, cannot export to HTML")
		return fmt.Errorf("ACTION table not yet created")
	}
	return parserTableAsHTML(lrgen, "ACTION", lrgen.actiontable, w)
}

func parserTableAsHTML(lrgen *TableGenerator, tname string, table *Table, w io.Writer) error {
	ew := &errWriter{w: w}
	ew.printf("<html><body>\n")
	ew.printf("<img src=\"cfsm.png\"/><p>")
	ew.printf("%s table of size = %d<p>", tname, table.ValueCount())
	ew.printf("<table border=1 cellspacing=0 cellpadding=5>\n")
	ew.printf("<tr bgcolor=#cccccc><td></td>\n")
	for _, A := range lrgen.g.symbols {
		ew.printf("<td>%s</td>", htmlEscape(A.Name))
	}
	ew.printf("</tr>\n")
	for _, state := range lrgen.CFSM().States() {
		ew.printf("<tr><td>state %d</td>\n", state.ID)
		for _, A := range lrgen.g.symbols {
			td := "&nbsp;"
			if vals := table.Values(state.ID, A.TokenType()); len(vals) > 0 {
				strs := make([]string, len(vals))
				for k, v := range vals {
					strs[k] = fmt.Sprintf("%d", v)
				}
				td = strings.Join(strs, "/")
			}
			ew.printf("<td>%s</td>\n", td)
		}
		ew.printf("</tr>\n")
	}
	ew.printf("</table></body></html>\n")
	return ew.err
}

var htmlEscaper = strings.NewReplacer(`&`, "&amp;", `<`, "&lt;", `>`, "&gt;", `"`, "&quot;")

func htmlEscape(s string) string {
	return htmlEscaper.Replace(s)
}

// --- Text ------------------------------------------------------------------

// TablesAsText renders ACTION and GOTO table as a single text table. Columns
// for terminals show actions: sN shifts and enters state N, rN reduces rule N,
// acc accepts. Columns for non-terminals show GOTO entries. Conflicting
// actions are separated by a slash.
func TablesAsText(lrgen *TableGenerator, w io.Writer) error {
	if lrgen.gototable == nil || lrgen.actiontable == nil {
		return fmt.Errorf("tables not yet created")
	}
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	header := []string{"state"}
	for _, A := range lrgen.g.symbols {
		header = append(header, A.Name)
	}
	table.SetHeader(header)
	for _, state := range lrgen.CFSM().States() {
		row := []string{fmt.Sprintf("%d", state.ID)}
		for _, A := range lrgen.g.symbols {
			row = append(row, lrgen.cellText(state, A))
		}
		table.Append(row)
	}
	table.Render()
	return nil
}

func (lrgen *TableGenerator) cellText(state *CFSMState, A *Symbol) string {
	tt := A.TokenType()
	if !A.IsTerminal() {
		if g := lrgen.gototable.Value(state.ID, tt); g != lrgen.gototable.NullValue() {
			return fmt.Sprintf("%d", g)
		}
		return ""
	}
	var cells []string
	for _, a := range lrgen.actiontable.Values(state.ID, tt) {
		switch a {
		case ShiftAction:
			cells = append(cells, fmt.Sprintf("s%d", lrgen.gototable.Value(state.ID, tt)))
		case AcceptAction:
			cells = append(cells, "acc")
		default:
			cells = append(cells, fmt.Sprintf("r%d", a))
		}
	}
	return strings.Join(cells, "/")
}

// AnalysisAsText renders nullability, FIRST and FOLLOW sets of the
// non-terminals as a text table.
func AnalysisAsText(ga *LRAnalysis, w io.Writer) error {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"symbol", "nullable", "FIRST", "FOLLOW"})
	for _, A := range ga.g.NonTerminals() {
		nullable := ""
		if ga.Nullable(A) {
			nullable = "yes"
		}
		table.Append([]string{A.Name, nullable,
			ga.SymbolSetString(ga.First(A)), ga.SymbolSetString(ga.Follow(A))})
	}
	table.Render()
	return nil
}

// SymbolSetString lists the names of the terminals of a set, as returned by
// First, FirstStar and Follow. Epsilon is written as ϵ.
func (ga *LRAnalysis) SymbolSetString(set *intsets.Sparse) string {
	var names []string
	for _, v := range set.AppendTo(nil) {
		if v == EpsilonType {
			names = append(names, "ϵ")
		} else if A := ga.g.SymbolByValue(v); A != nil {
			names = append(names, A.Name)
		} else {
			names = append(names, fmt.Sprintf("%d", v))
		}
	}
	return "{" + strings.Join(names, ", ") + "}"
}

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/fegen/frontend"
	"github.com/npillmayer/fegen/lr"
	"github.com/npillmayer/fegen/lr/slr"
	"github.com/pterm/pterm"
	"golang.org/x/tools/container/intsets"
)

// Intp is our interpreter object
type Intp struct {
	fe   *frontend.Frontend
	repl *readline.Instance
	tree *slr.Node // tree of last accepted input
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	defer intp.repl.Close()
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			if quit := intp.Execute(line); quit {
				break
			}
			continue
		}
		intp.Parse(line)
	}
	println("Good bye!")
}

// Execute performs a command, given on a line by itself. It returns true if
// the user asked to quit.
func (intp *Intp) Execute(line string) bool {
	cmd, arg, _ := strings.Cut(line, " ")
	switch cmd {
	case ":quit", ":q":
		return true
	case ":tokens":
		intp.showTokens(strings.TrimSpace(arg))
	case ":first":
		intp.showSets("FIRST", intp.fe.Analysis().First)
	case ":follow":
		intp.showSets("FOLLOW", intp.fe.Analysis().Follow)
	case ":states":
		intp.showStates()
	case ":table":
		if err := lr.TablesAsText(intp.fe.Tables(), os.Stdout); err != nil {
			pterm.Error.Println(err.Error())
		}
	case ":tree":
		if intp.tree == nil {
			pterm.Error.Println("no input accepted yet")
			break
		}
		showTree(intp.tree)
	default:
		pterm.Error.Printf("unknown command %s\n", cmd)
	}
	return false
}

// Parse parses a line of input and reports the result.
func (intp *Intp) Parse(input string) bool {
	accept, tree, err := intp.fe.Parse(input)
	if err != nil {
		for _, line := range strings.Split(err.Error(), "\n") {
			pterm.Error.Println(line)
		}
	}
	if !accept {
		pterm.Error.Println("input rejected")
		return false
	}
	intp.tree = tree
	pterm.Success.Println("input accepted")
	return true
}

func (intp *Intp) showGrammar() {
	g := intp.fe.Grammar.Grammar
	pterm.Info.Printf("Grammar %s\n", g.Name)
	pterm.Println(g.String())
	if err := lr.AnalysisAsText(intp.fe.Analysis(), os.Stdout); err != nil {
		pterm.Error.Println(err.Error())
	}
	intp.showStates()
	if err := lr.TablesAsText(intp.fe.Tables(), os.Stdout); err != nil {
		pterm.Error.Println(err.Error())
	}
}

func (intp *Intp) showTokens(text string) {
	tokens, errs := intp.fe.Tokenize(text)
	g := intp.fe.Grammar.Grammar
	for _, tok := range tokens {
		name := fmt.Sprintf("%d", tok.TokType())
		if A := g.SymbolByValue(int(tok.TokType())); A != nil {
			name = A.Name
		}
		pterm.Printf("%-10s %-12q %v\n", name, tok.Lexeme(), tok.Span())
	}
	for _, err := range errs {
		pterm.Error.Println(err.Error())
	}
}

func (intp *Intp) showSets(title string, set func(*lr.Symbol) *intsets.Sparse) {
	ga := intp.fe.Analysis()
	pterm.Info.Println(title)
	for _, A := range ga.Grammar().NonTerminals() {
		pterm.Printf("%10s  %s\n", A.Name, ga.SymbolSetString(set(A)))
	}
}

func (intp *Intp) showStates() {
	cfsm := intp.fe.Tables().CFSM()
	for _, state := range cfsm.States() {
		title := fmt.Sprintf("state %d", state.ID)
		if state.Accept {
			title += " (accepting)"
		}
		pterm.Info.Println(title)
		for _, item := range state.Items() {
			pterm.Printf("    %v\n", item)
		}
	}
}

// showTree renders a parse tree on the terminal.
func showTree(tree *slr.Node) {
	var ll pterm.LeveledList
	tree.Walk(func(node *slr.Node, depth int) {
		ll = append(ll, pterm.LeveledListItem{
			Level: depth,
			Text:  node.String(),
		})
	})
	root := pterm.NewTreeFromLeveledList(ll)
	pterm.DefaultTree.WithRoot(root).Render()
}

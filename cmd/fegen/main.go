package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/fegen/frontend"
	"github.com/npillmayer/fegen/lr"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"
)

// We provide a small expression language as a default. Operators are words,
// as patterns have no escapes for operator characters.
const defaultLexer = `
(* expression tokens *)
let digit  = "[0-9]"
let letter = "[a-z]"
let number = "digit+"
let ident  = "letter(letter|digit)*"
let plus   = "plus"
let times  = "times"
let open   = "open"
let close  = "close"

rule tokens =
    plus    { return PLUS }
  | times   { return TIMES }
  | open    { return OPEN }
  | close   { return CLOSE }
  | number  { return NUMBER }
  | ident   { return ID }
`

const defaultGrammar = `
/* expressions */
%token NUMBER ID PLUS TIMES OPEN CLOSE
%%
expr   : expr PLUS term
       | term
       ;
term   : term TIMES factor
       | factor
       ;
factor : NUMBER
       | ID
       | OPEN expr CLOSE
       ;
`

var traceKeys = []string{"fegen.regex", "fegen.nfa", "fegen.lr", "fegen.scanner",
	"fegen.spec", "fegen.frontend"}

// main() reads the specification files, prints the generated tables and
// starts an interactive prompt.
func main() {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	lexf := flag.String("lex", "", "Lexer specification file")
	grammarf := flag.String("grammar", "", "Grammar specification file")
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	dotf := flag.String("dot", "", "Write LR(0) automaton as Graphviz file")
	nfaf := flag.String("nfa", "", "Write lexer NFA as Graphviz file")
	htmlp := flag.String("html", "", "Write parser tables as HTML files with prefix")
	flag.Parse()
	setTraceLevel(tracing.TraceLevelFromString(*tlevel))
	pterm.Info.Println("Welcome to fegen")
	//
	fe, err := loadFrontend(*lexf, *grammarf)
	if err != nil {
		reportError(err)
		os.Exit(2)
	}
	if err = writeExports(fe, *dotf, *nfaf, *htmlp); err != nil {
		reportError(err)
		os.Exit(2)
	}
	intp := &Intp{fe: fe}
	if input := strings.TrimSpace(strings.Join(flag.Args(), " ")); input != "" {
		if !intp.Parse(input) {
			os.Exit(1)
		}
		return
	}
	intp.showGrammar()
	repl, err := readline.New("fegen> ")
	if err != nil {
		tracer().Errorf("%v", err)
		os.Exit(3)
	}
	intp.repl = repl
	tracer().Infof("Quit with <ctrl>D") // inform user how to stop the CLI
	intp.REPL()
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func setTraceLevel(level tracing.TraceLevel) {
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(level)
	}
}

// loadFrontend reads the specification files, falling back to the default
// language for each file not given.
func loadFrontend(lexf, grammarf string) (*frontend.Frontend, error) {
	name := "Expressions"
	var lexer io.Reader = strings.NewReader(defaultLexer)
	var grammar io.Reader = strings.NewReader(defaultGrammar)
	if lexf != "" {
		f, err := os.Open(lexf)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		lexer = f
	}
	if grammarf != "" {
		f, err := os.Open(grammarf)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		grammar = f
		name = strings.TrimSuffix(filepath.Base(grammarf), filepath.Ext(grammarf))
	}
	return frontend.Load(name, lexer, grammar)
}

// reportError prints an error. Conflicts are listed one by one.
func reportError(err error) {
	var cerr *lr.ConflictError
	if errors.As(err, &cerr) {
		for _, c := range cerr.Conflicts {
			pterm.Error.Println(c.String())
		}
	}
	pterm.Error.Println(err.Error())
}

func writeExports(fe *frontend.Frontend, dotf, nfaf, htmlp string) error {
	if dotf != "" {
		if err := writeFile(dotf, fe.Tables().CFSM().CFSM2GraphViz); err != nil {
			return err
		}
	}
	if nfaf != "" {
		if err := writeFile(nfaf, fe.Automaton().ToGraphViz); err != nil {
			return err
		}
	}
	if htmlp != "" {
		lrgen := fe.Tables()
		err := writeFile(htmlp+"_goto.html", func(w io.Writer) error {
			return lr.GotoTableAsHTML(lrgen, w)
		})
		if err != nil {
			return err
		}
		return writeFile(htmlp+"_action.html", func(w io.Writer) error {
			return lr.ActionTableAsHTML(lrgen, w)
		})
	}
	return nil
}

func writeFile(name string, export func(io.Writer) error) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err = export(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", name, err)
	}
	tracer().Infof("wrote %s", name)
	return f.Close()
}

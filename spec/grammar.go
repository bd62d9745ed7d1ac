package spec

import (
	"errors"
	"io"

	"github.com/npillmayer/fegen"
	"github.com/npillmayer/fegen/lr"
	"github.com/npillmayer/fegen/lr/scanner"
)

// GrammarSpec is the result of reading a grammar specification.
type GrammarSpec struct {
	Tokens  []string                 // declared terminals, in order of declaration
	Ignored []string                 // terminals dropped before parsing
	Types   map[string]fegen.TokType // token types of declared terminals
	Grammar *lr.Grammar
}

// IsIgnored is true for terminals listed by IGNORE.
func (gs *GrammarSpec) IsIgnored(name string) bool {
	for _, ign := range gs.Ignored {
		if ign == name {
			return true
		}
	}
	return false
}

// production is a left hand side with its alternatives, as read.
type production struct {
	lhs  string
	alts [][]string
	line int
}

// ReadGrammar reads a grammar specification and builds an lr.Grammar named
// name from it.
func ReadGrammar(name string, r io.Reader) (*GrammarSpec, error) {
	ts, err := newTokenStream(grammarSpecLexer, r)
	if err != nil {
		return nil, err
	}
	gs := &GrammarSpec{Types: make(map[string]fegen.TokType)}
	ignoredAt := make(map[string]int)
	if err = gs.readDeclarations(ts, ignoredAt); err != nil {
		return nil, err
	}
	for _, ign := range gs.Ignored {
		if _, ok := gs.Types[ign]; !ok {
			return nil, specError(ignoredAt[ign], ErrUndefinedToken, "IGNORE %s", ign)
		}
	}
	prods, last, err := readProductions(ts)
	if err != nil {
		return nil, err
	}
	if gs.Grammar, err = gs.build(name, prods, last); err != nil {
		return nil, err
	}
	tracer().Infof("grammar %s has %d terminals and %d rules", name,
		len(gs.Grammar.Terminals()), gs.Grammar.Size())
	return gs, nil
}

// readDeclarations reads %token and IGNORE lines up to the separator.
func (gs *GrammarSpec) readDeclarations(ts *tokenStream, ignoredAt map[string]int) error {
	mode := 0
	for {
		tok, err := ts.next()
		if err != nil {
			return err
		}
		switch int(tok.TokType()) {
		case scanner.EOF:
			return specError(0, ErrMissingSeparator, "")
		case tokSeparator:
			return nil
		case tokToken, tokIgnore:
			mode = int(tok.TokType())
		case tokColon:
			return specError(lineOf(tok), ErrMissingSeparator, "production before %%%%")
		case tokIdent:
			name := tok.Lexeme()
			if int(ts.peek().TokType()) == tokColon {
				return specError(lineOf(tok), ErrMissingSeparator, "production %s before %%%%", name)
			}
			switch mode {
			case tokToken:
				if _, ok := gs.Types[name]; !ok {
					gs.Tokens = append(gs.Tokens, name)
					gs.Types[name] = fegen.TokType(len(gs.Tokens))
				}
			case tokIgnore:
				if _, ok := ignoredAt[name]; !ok {
					ignoredAt[name] = lineOf(tok)
					gs.Ignored = append(gs.Ignored, name)
				}
			default:
				return unexpected(tok, "%token or IGNORE")
			}
		default:
			return unexpected(tok, "declaration")
		}
	}
}

// readProductions reads productions up to the end of input. It returns the
// last line read.
func readProductions(ts *tokenStream) ([]production, int, error) {
	var prods []production
	line := 0
	for {
		tok, err := ts.next()
		if err != nil {
			return nil, 0, err
		}
		switch int(tok.TokType()) {
		case scanner.EOF:
			return prods, line, nil
		case tokSeparator:
			return nil, 0, specError(lineOf(tok), ErrDuplicateSeparator, "")
		case tokColon:
			return nil, 0, specError(lineOf(tok), ErrEmptyProduction, "")
		case tokIdent:
			p := production{lhs: tok.Lexeme(), line: lineOf(tok)}
			if _, err = ts.expect(tokColon); err != nil {
				return nil, 0, err
			}
			if p.alts, line, err = readAlternatives(ts); err != nil {
				return nil, 0, err
			}
			prods = append(prods, p)
		default:
			return nil, 0, unexpected(tok, "production")
		}
	}
}

// readAlternatives reads  a b | c | ;  after a colon.
func readAlternatives(ts *tokenStream) ([][]string, int, error) {
	alts := [][]string{nil}
	for {
		tok, err := ts.next()
		if err != nil {
			return nil, 0, err
		}
		switch int(tok.TokType()) {
		case tokIdent:
			alts[len(alts)-1] = append(alts[len(alts)-1], tok.Lexeme())
		case tokBar:
			alts = append(alts, nil)
		case tokSemicolon:
			return alts, lineOf(tok), nil
		default:
			return nil, 0, unexpected(tok, "symbol, '|' or ';'")
		}
	}
}

// build checks the symbols of the productions and builds the grammar. The
// left hand side of the first production is the start symbol.
func (gs *GrammarSpec) build(name string, prods []production, last int) (*lr.Grammar, error) {
	if len(prods) == 0 {
		return nil, specError(last, ErrNoProductions, "")
	}
	nonterms := make(map[string]bool)
	for _, p := range prods {
		if _, ok := gs.Types[p.lhs]; ok {
			return nil, specError(p.line, ErrSymbolClash, "%s", p.lhs)
		}
		nonterms[p.lhs] = true
	}
	b := lr.NewGrammarBuilder(name)
	for _, p := range prods {
		for _, alt := range p.alts {
			rb := b.LHS(p.lhs)
			if len(alt) == 0 {
				rb.Epsilon()
				continue
			}
			for _, sym := range alt {
				switch typ, ok := gs.Types[sym]; {
				case nonterms[sym]:
					rb.N(sym)
				case ok && !gs.IsIgnored(sym):
					rb.T(sym, int(typ))
				case ok:
					return nil, specError(p.line, ErrUndefinedSymbol, "ignored token %s in production for %s", sym, p.lhs)
				default:
					return nil, specError(p.line, ErrUndefinedSymbol, "%s in production for %s", sym, p.lhs)
				}
			}
			rb.End()
		}
	}
	g, err := b.Grammar()
	if err != nil {
		if errors.Is(err, lr.ErrSymbolClash) {
			return nil, specError(0, ErrSymbolClash, "%v", err)
		}
		return nil, specError(0, ErrSyntax, "%v", err)
	}
	return g, nil
}

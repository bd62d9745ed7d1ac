package spec

import (
	"io"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/fegen/lr/scanner"
	"golang.org/x/exp/slices"
)

// Definition is a named pattern of a lexer specification. Pattern has all
// references to earlier definitions expanded.
type Definition struct {
	Name    string
	Pattern string
	Line    int
}

// Rule is a lexer rule. Tokens of rules with Skip set are dropped, all other
// rules report terminal Terminal.
type Rule struct {
	Name     string
	Pattern  string
	Terminal string
	Skip     bool
	Line     int
}

// LexerSpec is the result of reading a lexer specification. Rules are in
// priority order.
type LexerSpec struct {
	Definitions []Definition
	Rules       []Rule
	defs        map[string]int
}

// Definition returns the definition for a name.
func (ls *LexerSpec) Definition(name string) (Definition, bool) {
	if i, ok := ls.defs[name]; ok {
		return ls.Definitions[i], true
	}
	return Definition{}, false
}

// Terminals returns the terminals reported by the rules, in order of their
// first appearance.
func (ls *LexerSpec) Terminals() []string {
	var terminals []string
	seen := make(map[string]bool)
	for _, r := range ls.Rules {
		if !r.Skip && !seen[r.Terminal] {
			seen[r.Terminal] = true
			terminals = append(terminals, r.Terminal)
		}
	}
	return terminals
}

// SkipRules returns the names of the rules with empty actions.
func (ls *LexerSpec) SkipRules() []string {
	var skip []string
	for _, r := range ls.Rules {
		if r.Skip {
			skip = append(skip, r.Name)
		}
	}
	return skip
}

// ReadLexer reads a lexer specification.
func ReadLexer(r io.Reader) (*LexerSpec, error) {
	ts, err := newTokenStream(lexerSpecLexer, r)
	if err != nil {
		return nil, err
	}
	ls := &LexerSpec{defs: make(map[string]int)}
	for {
		tok, err := ts.next()
		if err != nil {
			return nil, err
		}
		switch tok.TokType() {
		case scanner.EOF:
			tracer().Infof("lexer specification has %d definitions and %d rules",
				len(ls.Definitions), len(ls.Rules))
			return ls, nil
		case tokLet:
			if err = ls.readDefinition(ts); err != nil {
				return nil, err
			}
		case tokRule:
			if err = ls.readRules(ts); err != nil {
				return nil, err
			}
		default:
			return nil, unexpected(tok, "let or rule")
		}
	}
}

// readDefinition reads  name = "pattern"  after a let.
func (ls *LexerSpec) readDefinition(ts *tokenStream) error {
	name, err := ts.expect(tokIdent)
	if err != nil {
		return err
	}
	if _, err = ts.expect(tokEquals); err != nil {
		return err
	}
	pattern, err := ts.expect(tokPattern)
	if err != nil {
		return err
	}
	line := lineOf(name)
	value := pattern.Lexeme()
	value = value[1 : len(value)-1]
	if err = checkPattern(name.Lexeme(), value, line); err != nil {
		return err
	}
	def := Definition{Name: name.Lexeme(), Pattern: ls.expand(value), Line: line}
	tracer().Debugf("let %s = %s", def.Name, def.Pattern)
	if i, ok := ls.defs[def.Name]; ok {
		ls.Definitions[i] = def
		return nil
	}
	ls.defs[def.Name] = len(ls.Definitions)
	ls.Definitions = append(ls.Definitions, def)
	return nil
}

// checkPattern checks the raw text of a definition.
func checkPattern(name, value string, line int) error {
	if value == "" {
		return specError(line, ErrEmptyPattern, "definition of %s", name)
	}
	for _, pair := range []string{"()", "{}", "[]"} {
		if strings.Count(value, pair[:1]) != strings.Count(value, pair[1:]) {
			return specError(line, ErrUnbalanced, "%q in definition of %s", pair, name)
		}
	}
	if strings.Count(value, `"`)%2 != 0 {
		return specError(line, ErrUnbalanced, "odd number of quotes in definition of %s", name)
	}
	if i := strings.IndexAny(value, "@#$%"); i >= 0 {
		return specError(line, ErrForbiddenCharacter, "%q in definition of %s", value[i], name)
	}
	return nil
}

// expand replaces every occurrence of a defined name within a pattern by
// the definition in parentheses, trying longer names first. Replacements are
// not rescanned and character classes are copied unchanged.
func (ls *LexerSpec) expand(pattern string) string {
	names := make([]string, 0, len(ls.Definitions))
	for _, def := range ls.Definitions {
		names = append(names, def.Name)
	}
	slices.SortStableFunc(names, func(a, b string) int {
		return len(b) - len(a)
	})
	var b strings.Builder
	rest := pattern
	for rest != "" {
		if rest[0] == '[' {
			end := strings.IndexByte(rest, ']') + 1
			if end == 0 {
				end = len(rest)
			}
			b.WriteString(rest[:end])
			rest = rest[end:]
			continue
		}
		name := ""
		for _, n := range names {
			if strings.HasPrefix(rest, n) {
				name = n
				break
			}
		}
		if name == "" {
			_, size := utf8.DecodeRuneInString(rest)
			b.WriteString(rest[:size])
			rest = rest[size:]
			continue
		}
		def, _ := ls.Definition(name)
		b.WriteString("(" + def.Pattern + ")")
		rest = rest[len(name):]
	}
	return b.String()
}

// readRules reads  name = clause { | clause }  after a rule, where a clause
// is a defined name followed by an optional action.
func (ls *LexerSpec) readRules(ts *tokenStream) error {
	if _, err := ts.expect(tokIdent); err != nil {
		return err
	}
	if _, err := ts.expect(tokEquals); err != nil {
		return err
	}
	for first := true; ; first = false {
		switch ts.peek().TokType() {
		case tokBar:
			ts.next()
		case tokIdent:
		default:
			if first {
				_, err := ts.expect(tokIdent)
				return err
			}
			return nil
		}
		name, err := ts.expect(tokIdent)
		if err != nil {
			return err
		}
		def, ok := ls.Definition(name.Lexeme())
		if !ok {
			return specError(lineOf(name), ErrUndefinedToken, "%s", name.Lexeme())
		}
		rule := Rule{Name: def.Name, Pattern: def.Pattern, Terminal: def.Name, Line: lineOf(name)}
		if ts.peek().TokType() == tokAction {
			action, err := ts.next()
			if err != nil {
				return err
			}
			rule.Terminal, rule.Skip = actionOf(action.Lexeme(), def.Name)
		}
		tracer().Debugf("rule %s -> %s, skip=%v", rule.Name, rule.Terminal, rule.Skip)
		ls.Rules = append(ls.Rules, rule)
	}
}

// actionOf interprets the text of an action, including its braces.
func actionOf(action string, rule string) (terminal string, skip bool) {
	fields := strings.Fields(strings.TrimSuffix(strings.TrimPrefix(action, "{"), "}"))
	switch {
	case len(fields) == 0:
		return "", true
	case len(fields) == 2 && fields[0] == "return":
		return fields[1], false
	}
	return rule, false
}

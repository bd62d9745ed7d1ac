package nfa

import (
	"errors"
	"fmt"
	"unicode"

	"github.com/npillmayer/fegen"
)

// ErrNoRuleMatches is wrapped by lexical errors for input no rule accepts.
var ErrNoRuleMatches = errors.New("no rule matches")

// LexicalError reports input which could not be tokenized. Pos is the rune
// offset of the offending input, Word is the rest of the word starting there.
type LexicalError struct {
	Pos  int
	Word string
	Err  error
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("lexical error at %d, %q: %v", e.Pos, e.Word, e.Err)
}

func (e *LexicalError) Unwrap() error {
	return e.Err
}

// Token is a lexeme together with the rule which matched it. Span is given in
// rune offsets.
type Token struct {
	Lexeme string
	Rule   string
	Span   fegen.Span
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)%v", t.Rule, t.Lexeme, t.Span)
}

// Scanner tokenizes text with an automaton. Input is split into words at
// whitespace; a double-quoted literal forms a single word. Within a word the
// scanner repeatedly takes the longest prefix any rule accepts. Quoted
// literals have to be accepted as a whole.
//
// If no rule accepts a prefix of the remaining word, the scanner reports a
// lexical error and resumes at the next word.
type Scanner struct {
	A       *Automaton
	input   []rune
	pos     int  // start of next word
	cursor  int  // current position within word
	wend    int  // end of current word
	quoted  bool // current word is a quoted literal
	pending bool // current word has unconsumed input
}

// Scanner creates a scanner for an input text.
func (A *Automaton) Scanner(text string) *Scanner {
	return &Scanner{A: A, input: []rune(text)}
}

// Next returns the next token, a lexical error, or eof == true at end of input.
func (sc *Scanner) Next() (tok Token, err error, eof bool) {
	if !sc.pending && !sc.nextWord() {
		return Token{}, nil, true
	}
	if sc.quoted {
		start, end := sc.cursor, sc.wend
		sc.cursor, sc.pending = sc.wend, false
		word := string(sc.input[start:end])
		tag, ok := sc.A.Match(word)
		if !ok {
			tracer().Debugf("quoted word %q not accepted", word)
			return Token{}, &LexicalError{Pos: start - 1, Word: word, Err: ErrNoRuleMatches}, false
		}
		return Token{
			Lexeme: word,
			Rule:   tag.Rule,
			Span:   fegen.Span{uint64(start), uint64(end)},
		}, nil, false
	}
	start := sc.cursor
	end, tag, ok := sc.A.Longest(sc.input[:sc.wend], start)
	if !ok {
		sc.cursor, sc.pending = sc.wend, false // resume at next word boundary
		word := string(sc.input[start:sc.wend])
		tracer().Debugf("no rule matches %q at %d", word, start)
		return Token{}, &LexicalError{Pos: start, Word: word, Err: ErrNoRuleMatches}, false
	}
	sc.cursor = end
	sc.pending = sc.cursor < sc.wend
	return Token{
		Lexeme: string(sc.input[start:end]),
		Rule:   tag.Rule,
		Span:   fegen.Span{uint64(start), uint64(end)},
	}, nil, false
}

// nextWord positions the scanner on the next word. It returns false at end of input.
func (sc *Scanner) nextWord() bool {
	for sc.pos < len(sc.input) && unicode.IsSpace(sc.input[sc.pos]) {
		sc.pos++
	}
	if sc.pos >= len(sc.input) {
		return false
	}
	if sc.input[sc.pos] == '"' {
		for q := sc.pos + 1; q < len(sc.input); q++ {
			if sc.input[q] == '"' {
				sc.cursor, sc.wend, sc.quoted, sc.pending = sc.pos+1, q, true, true
				sc.pos = q + 1
				return true
			}
		}
	}
	sc.quoted = false
	sc.cursor = sc.pos
	for sc.pos < len(sc.input) && !unicode.IsSpace(sc.input[sc.pos]) {
		sc.pos++
	}
	sc.wend = sc.pos
	sc.pending = true
	return true
}

// Tokenize scans a complete text. Lexical errors do not stop tokenization;
// they are collected and returned together with the tokens found.
func Tokenize(A *Automaton, text string) ([]Token, []*LexicalError) {
	var tokens []Token
	var errs []*LexicalError
	sc := A.Scanner(text)
	for {
		tok, err, eof := sc.Next()
		if eof {
			break
		}
		if err != nil {
			errs = append(errs, err.(*LexicalError))
			continue
		}
		tokens = append(tokens, tok)
	}
	tracer().Infof("tokenized %d tokens, %d errors", len(tokens), len(errs))
	return tokens, errs
}

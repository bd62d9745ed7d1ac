package regex

import (
	"unicode"
)

// Epsilon is the reserved literal denoting the empty word.
const Epsilon rune = 'ϵ'

// Operators of canonical patterns.
const (
	Concat      rune = '.'
	Alternation rune = '|'
	Star        rune = '*'
	Plus        rune = '+'
	Optional    rune = '?'
	LParen      rune = '('
	RParen      rune = ')'
)

// IsOperator is true for operators and parentheses.
func IsOperator(r rune) bool {
	switch r {
	case Concat, Alternation, Star, Plus, Optional, LParen, RParen:
		return true
	}
	return false
}

// IsLiteral is true for runes which may appear as literals in canonical patterns.
func IsLiteral(r rune) bool {
	return r == Epsilon || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'
}

func isRepetition(r rune) bool {
	return r == Star || r == Plus || r == Optional
}

// Normalize rewrites a raw pattern into canonical form: character classes
// are expanded, unsupported characters are stripped and every concatenation
// is made explicit with '.'. Concatenation operators present in the input are
// dropped and re-inserted, so a stray '.' never survives. The result is validated.
//
//    Normalize("ab*(c|d)")  // => "a.b*.(c|d)"
//    Normalize("[a-c]x")    // => "(a|b|c).x"
//
// Normalizing a pattern which already is in canonical form returns it unchanged.
func Normalize(pattern string) (string, error) {
	raw := []rune(pattern)
	for i, r := range raw {
		if unicode.IsSpace(r) {
			return "", patternError(raw, i, ErrWhitespace)
		}
	}
	expanded, err := expandClasses(raw)
	if err != nil {
		return "", err
	}
	var stripped []rune
	for _, r := range expanded {
		if r == 'ε' {
			r = Epsilon
		}
		if r != Concat && (IsLiteral(r) || IsOperator(r)) {
			stripped = append(stripped, r)
		}
	}
	if len(stripped) == 0 {
		return "", patternError(raw, -1, ErrMalformedPattern)
	}
	canon := make([]rune, 0, 2*len(stripped))
	canon = append(canon, stripped[0])
	for i := 1; i < len(stripped); i++ {
		r, prev := stripped[i], stripped[i-1]
		if (IsLiteral(r) || r == LParen) && prev != Alternation && prev != LParen {
			canon = append(canon, Concat)
		}
		canon = append(canon, r)
	}
	if err := validate(canon); err != nil {
		return "", err
	}
	tracer().Debugf("normalized %q => %q", pattern, string(canon))
	return string(canon), nil
}

// expandClasses replaces [...] by a parenthesized alternation of its members.
// Members have to be literals or ranges of literals; negated classes are
// not supported.
func expandClasses(raw []rune) ([]rune, error) {
	var out []rune
	for i := 0; i < len(raw); i++ {
		if raw[i] != '[' {
			out = append(out, raw[i])
			continue
		}
		start := i
		var members []rune
		i++
		for ; i < len(raw) && raw[i] != ']'; i++ {
			if i+2 < len(raw) && raw[i+1] == '-' && raw[i+2] != ']' {
				from, to := raw[i], raw[i+2]
				if !IsLiteral(from) || !IsLiteral(to) || from > to {
					return nil, patternError(raw, i, ErrMalformedPattern)
				}
				for r := from; r <= to; r++ {
					if IsLiteral(r) {
						members = append(members, r)
					}
				}
				i += 2
				continue
			}
			if !IsLiteral(raw[i]) {
				return nil, patternError(raw, i, ErrMalformedPattern)
			}
			members = append(members, raw[i])
		}
		if i >= len(raw) || len(members) == 0 {
			return nil, patternError(raw, start, ErrMalformedPattern)
		}
		out = append(out, LParen)
		for k, m := range dedup(members) {
			if k > 0 {
				out = append(out, Alternation)
			}
			out = append(out, m)
		}
		out = append(out, RParen)
	}
	return out, nil
}

func dedup(members []rune) []rune {
	seen := make(map[rune]bool, len(members))
	var out []rune
	for _, m := range members {
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	return out
}

// validate checks a canonical pattern for balanced parentheses first and for
// missing operands afterwards.
func validate(canon []rune) error {
	var open []int // positions of unmatched '('
	for i, r := range canon {
		switch r {
		case LParen:
			open = append(open, i)
		case RParen:
			if len(open) == 0 {
				return patternError(canon, i, ErrUnbalancedParenthesis)
			}
			open = open[:len(open)-1]
		}
	}
	if len(open) > 0 {
		return patternError(canon, open[len(open)-1], ErrUnbalancedParenthesis)
	}
	needOperand := true
	for i, r := range canon {
		switch {
		case IsLiteral(r):
			needOperand = false
		case r == LParen:
			needOperand = true
		case r == RParen:
			if needOperand {
				return patternError(canon, i, ErrMalformedPattern)
			}
		case isRepetition(r):
			if needOperand {
				return patternError(canon, i, ErrDanglingRepetition)
			}
		case r == Alternation || r == Concat:
			if needOperand {
				return patternError(canon, i, ErrMalformedPattern)
			}
			needOperand = true
		}
	}
	if needOperand {
		return patternError(canon, len(canon)-1, ErrMalformedPattern)
	}
	return nil
}

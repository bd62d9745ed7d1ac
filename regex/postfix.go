package regex

import (
	"strings"

	"github.com/emirpasic/gods/stacks/arraystack"
)

// precedence of operators; '(' is lowest, acting as a barrier on the operator stack.
var precedence = map[rune]int{
	Star:        4,
	Plus:        4,
	Optional:    4,
	Alternation: 3,
	Concat:      2,
	LParen:      1,
}

// ToPostfix converts a canonical pattern (see Normalize) to postfix notation,
// using the shunting-yard algorithm.
//
//    ToPostfix("a.b*")      // => "ab*."
//    ToPostfix("(a|b).c")   // => "ab|c."
//
// A ')' without matching '(' results in an ErrUnbalancedParenthesis error.
func ToPostfix(canon string) (string, error) {
	pattern := []rune(canon)
	var out strings.Builder
	ops := arraystack.New()
	for i, r := range pattern {
		switch {
		case r == LParen:
			ops.Push(r)
		case r == RParen:
			for {
				top, ok := ops.Pop()
				if !ok {
					return "", patternError(pattern, i, ErrUnbalancedParenthesis)
				}
				if top.(rune) == LParen {
					break
				}
				out.WriteRune(top.(rune))
			}
		case IsOperator(r):
			for !ops.Empty() {
				top, _ := ops.Peek()
				if precedence[top.(rune)] < precedence[r] {
					break
				}
				ops.Pop()
				out.WriteRune(top.(rune))
			}
			ops.Push(r)
		default:
			out.WriteRune(r)
		}
	}
	for !ops.Empty() {
		top, _ := ops.Pop()
		if top.(rune) == LParen {
			return "", patternError(pattern, -1, ErrUnbalancedParenthesis)
		}
		out.WriteRune(top.(rune))
	}
	tracer().Debugf("postfix of %q is %q", canon, out.String())
	return out.String(), nil
}

// Translate normalizes a raw pattern and converts it to postfix.
func Translate(pattern string) (string, error) {
	canon, err := Normalize(pattern)
	if err != nil {
		return "", err
	}
	return ToPostfix(canon)
}

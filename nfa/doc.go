/*
Package nfa builds and simulates non-deterministic finite automata for
lexical analysis.

Automata are constructed bottom-up from postfix patterns (see package regex)
by Thompson's construction. Every pattern results in a Fragment, an arena of
densely numbered states with a single start and a single final state.
Fragments are values: combining two fragments always renumbers copies, never
the operands themselves.

A Composer merges one fragment per lexer rule into a single Automaton, which
dispatches from a fresh start state to every rule's fragment by epsilon
transitions. The final state of every fragment is tagged with its rule and
the rule's priority, i.e. its declaration index.

    c := nfa.NewComposer()
    for _, rule := range rules {          // in order of declaration
        f, err := nfa.Compile(rule.Pattern)
        ...
        c.Add(rule.Name, f)
    }
    A := c.Automaton()
    tag, ok := A.Match("abbb")            // tag.Rule is the winning rule

The automaton is never determinized. Simulation tracks sets of states,
using epsilon-closures. Tokenizing text uses longest match first; among rules
accepting the same lexeme the rule declared first wins.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package nfa

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fegen.nfa'.
func tracer() tracing.Trace {
	return tracing.Select("fegen.nfa")
}

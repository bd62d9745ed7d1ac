/*
Package fegen is a toolbox for generating compiler front ends.

Given a set of named regular expressions and a context-free grammar, fegen
builds a multi-pattern lexical analyzer from non-deterministic finite automata
and an SLR(1) parser from the LR(0) automaton of the grammar. Package
structure is as follows:

■ regex: Package regex normalizes regular expressions and translates them
to postfix.

■ nfa: Package nfa builds Thompson automata, combines them into a single
automaton for a set of lexer rules and simulates it on input text.

■ lr: Package lr implements grammars, grammar analysis (FIRST and FOLLOW sets),
the LR(0) automaton and SLR(1) parser tables. Sub-package slr contains the
table-driven parser, sub-package scanner the tokenizer contract.

■ spec: Package spec reads lexer and grammar specification files.

■ frontend: Package frontend glues the two pipelines together.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package fegen

/*
Command fegen generates a lexer and an SLR(1) parser from specification
files and offers an interactive prompt to try them out.

    fegen -lex expr.lex -grammar expr.y [-trace Info] [-dot cfsm.dot] [-nfa nfa.dot] [-html tables]

Without specification files fegen uses a small built-in expression
language. fegen prints the grammar, its FIRST and FOLLOW sets, the LR(0)
states and the parser tables, then reads lines of input and parses them.
Lines starting with a colon are commands:

    :tokens <text>   show the tokens of a text
    :first           show FIRST sets
    :follow          show FOLLOW sets
    :states          show the LR(0) states
    :table           show the parser tables
    :tree            show the parse tree of the last accepted input
    :quit            leave fegen

Further arguments are parsed as a single input, without entering the
prompt. The exit code tells if the input has been accepted.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fegen.frontend'
func tracer() tracing.Trace {
	return tracing.Select("fegen.frontend")
}

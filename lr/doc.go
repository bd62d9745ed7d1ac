/*
Package lr implements prerequisites for LR parsing: grammars, grammar
analysis, the LR(0) automaton and SLR(1) parser tables.

Building a Grammar

Grammars are specified using a grammar builder object. Clients add
rules, consisting of non-terminal symbols and terminals. Terminals
carry a token value of type int. Grammars may contain epsilon-productions.

Example:

    b := lr.NewGrammarBuilder("G")
    b.LHS("S").N("A").T("a", 1).End()  // S  ->  A a
    b.LHS("A").N("B").N("D").End()     // A  ->  B D
    b.LHS("B").T("b", 2).End()         // B  ->  b
    b.LHS("B").Epsilon()               // B  ->
    b.LHS("D").T("d", 3).End()         // D  ->  d
    b.LHS("D").Epsilon()               // D  ->
    g, err := b.Grammar()

The LHS of the first rule is the start symbol. The builder augments the
grammar with a rule 0 for a new start symbol, which expects end of input
after a complete S. This results in the following trivial grammar:

   g.Dump()

   0: [S'] ::= [S #eof]
   1: [S] ::= [A a]
   2: [A] ::= [B D]
   3: [B] ::= [b]
   4: [B] ::= []
   5: [D] ::= [d]
   6: [D] ::= []

Static Grammar Analysis

After the grammar is complete, it has to be analysed. For this end, the
grammar is subjected to an LRAnalysis object, which computes FIRST and
FOLLOW sets for the grammar and determines all nullable non-terminals.

Although FIRST and FOLLOW-sets are mainly intended to be used for internal
purposes of constructing the parser tables, methods for getting FIRST(N)
and FOLLOW(N) of non-terminals are defined to be public.

    ga := lr.Analysis(g)  // analyser for grammar above
    ga.Grammar().EachNonTerminal(
        func(N *Symbol) interface{} {                        // ad-hoc mapper function
            fmt.Printf("FIRST(%s) = %v", N, ga.First(N))     // get FIRST-set for N
            return nil
        })

    // Output:
    FIRST(S') = {1 2 3}        // terminal token values as int, 1 = 'a'
    FIRST(S) = {1 2 3}
    FIRST(A) = {0 2 3}         // 0 = epsilon
    FIRST(B) = {0 2}           // 2 = 'b'
    FIRST(D) = {0 3}           // 3 = 'd'

Parser Construction

Using grammar analysis as input, a bottom-up parser can be constructed.
First a characteristic finite state machine (CFSM) is built from the
grammar. The CFSM will then be transformed into a GOTO table (LR(0)-table)
and an ACTION table for a SLR(1) parser. The CFSM will not be thrown away,
but is made available to the client.  This is intended
for debugging purposes, but may be useful for error recovery, too.
It can be exported to Graphviz's Dot-format.

Example:

    lrgen := lr.NewTableGenerator(ga)  // ga is a grammar analysis, see above
    if err := lrgen.CreateTables(); err != nil {
        var cerr *lr.ConflictError     // grammar is not SLR(1)
        ...
    }

Conflicts are never resolved. If the grammar is not SLR(1), every conflicting
(state, symbol) pair is reported and no ACTION table is published.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fegen.lr'.
func tracer() tracing.Trace {
	return tracing.Select("fegen.lr")
}

/*
Package spec reads lexer and grammar specification files.

A lexer specification names patterns and lists the rules of a lexer in
priority order:

    (* numbers and identifiers *)
    let digit  = "[0-9]"
    let number = "digit+"
    let letter = "[a-zA-Z]"
    let ident  = "letter(letter|digit)*"
    let plus   = "plus"
    let nop    = "nop"

    rule tokens =
        number   { return NUMBER }
      | plus     { return PLUS }
      | nop      { }
      | ident    { return ID }

Within a pattern, a name defined earlier stands for its definition in
parentheses. Longer names are replaced first, so "digits" is not read as
"digit" followed by "s". Characters inside of character classes are never
replaced. An action of the form { return X } makes a rule report terminal
X, an empty action marks a rule whose tokens are dropped, and any other
action reports the rule's name.

A grammar specification declares terminals, terminals to ignore, and the
productions of the grammar, separated by %%:

    %token ID PLUS WS
    IGNORE WS
    %%
    expr : expr PLUS term
         | term
         ;
    term : ID ;

Grammar files may contain C-style block comments. Lexer files use comments
in round parentheses with asterisks, as shown in the lexer example. The left
hand side of the first production is the start symbol. Terminals receive
token types in order of declaration, starting at 1.

Both readers tokenize their input with lexmachine. Errors are reported as
*SpecificationError, carrying the line of the offending input.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package spec

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fegen.spec'.
func tracer() tracing.Trace {
	return tracing.Select("fegen.spec")
}

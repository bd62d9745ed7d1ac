/*
Package regex prepares regular expressions for automaton construction.

Patterns are written over single characters with the operators

    |    alternation
    *    zero or more
    +    one or more
    ?    optional
    ( )  grouping
    .    explicit concatenation (inserted by Normalize where omitted)

plus character classes like [a-z0-9], which Normalize expands to
alternations. The empty word is written as ϵ (or ε).

Normalize converts a raw pattern into canonical infix form, with every
concatenation made explicit. ToPostfix translates canonical infix into
postfix, using a shunting-yard algorithm with precedence

    * + ?  >  |  >  .

Note that alternation binds tighter than concatenation: "ab|c" is read as
"a(b|c)". Clients wanting the conventional reading have to use parentheses.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package regex

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fegen.regex'.
func tracer() tracing.Trace {
	return tracing.Select("fegen.regex")
}

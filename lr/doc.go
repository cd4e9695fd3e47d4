/*
Package lr implements the construction side of canonical LR(1) parsing:
grammars, static grammar analysis, LR(1) item sets, the characteristic
finite state machine and the ACTION/GOTO tables derived from it.

Building a Grammar

Grammars are specified either from a list of rule specifications or by
using a grammar builder object. Clients add rules, consisting of
non-terminal symbols and terminals. Grammars may contain epsilon-productions.

Example:

    b := lr.NewGrammarBuilder("G")
    b.LHS("S").N("A").T("a").End()  // S  ->  A a
    b.LHS("A").N("B").N("D").End()  // A  ->  B D
    b.LHS("B").T("b").End()         // B  ->  b
    b.LHS("B").Epsilon()            // B  ->
    b.LHS("D").T("d").End()         // D  ->  d
    b.LHS("D").Epsilon()            // D  ->
    g, err := b.Grammar()

The grammar is augmented with a fresh start rule S' -> S, which will
always be rule number 0:

   0: S' → S
   1: S → A a
   2: A → B D
   3: B → b
   4: B → ε
   5: D → d
   6: D → ε

Static Grammar Analysis

After the grammar is complete, it has to be analysed. For this end, the
grammar is subjected to an LRAnalysis object, which computes FIRST and
FOLLOW sets for the grammar and determines all nullable non-terminals.

    ga, err := lr.Analysis(g)
    ga.Grammar().EachNonTerminal(func(N *lr.Symbol) {
        fmt.Printf("FIRST(%s) = %v\n", N, ga.First(N))
    })

    // Output:
    FIRST(S') = {a, b, d}
    FIRST(S) = {a, b, d}
    FIRST(A) = {b, d, ε}
    FIRST(B) = {b, ε}
    FIRST(D) = {d, ε}

Parser Construction

Using grammar analysis as input, a canonical LR(1) parser can be constructed.
First a characteristic finite state machine (CFSM) is built from the
grammar, with states being closed sets of LR(1) items. States are numbered
in order of discovery, starting with 0 for the closure of [S' → •S, $].
The CFSM is then transformed into a GOTO table and an ACTION table. The CFSM
is made available to the client, mainly for debugging purposes.
It can be exported to Graphviz's Dot-format.

    lrgen := lr.NewTableGenerator(ga)
    lrgen.CreateTables()
    for _, c := range lrgen.Conflicts() {
        fmt.Println(c)
    }

Table conflicts are not fatal. The first action installed for a cell wins,
and every rejected proposal is recorded as a Conflict.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrgen.lr'.
func tracer() tracing.Trace {
	return tracing.Select("lrgen.lr")
}

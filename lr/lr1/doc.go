/*
Package lr1 provides a canonical LR(1) shift-reduce parser. Clients have to
use the tools of package lr to prepare the necessary parse tables. The parser
utilizes these tables to create a parse tree and a rightmost derivation
(in reverse) for a given sequence of terminals.

This parser is intended for small to moderate grammars, e.g. for configuration
input or small domain-specific languages, and for teaching. It is *not*
intended for full-fledged programming languages, as canonical LR(1) tables
tend to grow large.

The main focus for this implementation is adaptability and on-the-fly usage.
Clients are able to construct the parse tables from a grammar and use the
parser directly, without a code-generation or compile step.

Usage

Clients construct a grammar, usually by using a grammar builder:

	b := lr.NewGrammarBuilder("Signed Variables Grammar")
	b.LHS("Var").N("Sign").T("a").End()  // Var  --> Sign a
	b.LHS("Sign").T("+").End()           // Sign --> +
	b.LHS("Sign").T("-").End()           // Sign --> -
	b.LHS("Sign").Epsilon()              // Sign -->
	g, err := b.Grammar()

This grammar is subjected to grammar analysis and table generation.

	ga, err := lr.Analysis(g)
	lrgen := lr.NewTableGenerator(ga)
	lrgen.CreateTables()
	if lrgen.HasConflicts { ... }  // first action per table cell wins

Finally parse some input:

	p := lr1.NewParser(g, lrgen.GotoTable(), lrgen.ActionTable())
	result, err := p.Parse([]string{"+", "a"})
	fmt.Println(result.Tree)        // Var(Sign(+) a)

Parsers hold no mutable state and may be used concurrently. ParseAll parses
a batch of inputs in parallel.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lr1

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrgen.parser'.
func tracer() tracing.Trace {
	return tracing.Select("lrgen.parser")
}

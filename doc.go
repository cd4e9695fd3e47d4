/*
Package lrgen is a canonical LR(1) parser generator.

It takes a context-free grammar through a pipeline of stages, every stage
consuming the output of the one before:

■ lr: Package lr holds the grammar model, FIRST/FOLLOW analysis, the
characteristic finite state machine (CFSM) of LR(1) item sets and the
construction of ACTION and GOTO tables, including conflict detection.

■ lr/lr1: Package lr1 is a table-driven shift-reduce parser producing parse
trees and derivations.

■ lr/scanner: Tokenizers mapping input text to terminal names.

■ lr/grammarfile: Reading grammars from rule lists, TOML and EBNF.

■ lr/report: Textual diagnostics for every stage.

The base package wires the stages into a Pipeline:

    g, _ := lr.NewGrammar("Parens", "S", []lr.RuleSpec{
        {LHS: "S", RHS: []string{"(", "S", ")", "S"}},
        {LHS: "S"},
    })
    p, _ := lrgen.Build(g)
    res := p.Parse([]string{"(", ")"})

Pipelines are immutable and may be shared between goroutines. A Snapshot
allows replacing the pipeline in use while parses are running.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lrgen

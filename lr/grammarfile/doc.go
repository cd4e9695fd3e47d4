/*
Package grammarfile reads grammars from text. Three notations are supported:

■ Rule lists, one rule per line, with alternatives separated by '|':

    # expressions
    E -> E + T | T
    T -> T * F | F
    F -> ( E ) | id

Symbols are separated by whitespace. "ε", "epsilon" or an empty alternative
denote an empty production. The LHS of the first rule is the start symbol.
Symbols never appearing as a LHS are terminals.

■ TOML documents, which may in addition declare terminals explicitly and
define token classes for the tokenizer of package scanner:

    name  = "expressions"
    start = "E"

    [[rule]]
    lhs = "E"
    rhs = ["E + T", "T"]

    [[class]]
    terminal = "id"
    pattern  = "[a-z]+"

■ EBNF, as understood by golang.org/x/exp/ebnf. Groups, options and
repetitions are rewritten into helper non-terminals. Names of productions
are non-terminals, all other names and all tokens are terminals.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package grammarfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/lrgen/lr"
	"github.com/npillmayer/lrgen/lr/scanner"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrgen.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("lrgen.grammar")
}

// Load reads a grammar file, choosing the notation by file extension:
// ".toml" for TOML, ".ebnf" for EBNF, rule lists otherwise. A non-empty
// start overrides the start symbol of the file. Token classes are only
// available for TOML files.
func Load(filename string, start string) (*lr.Grammar, []scanner.Class, error) {
	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".toml":
		f, err := LoadTOML(filename)
		if err != nil {
			return nil, nil, err
		}
		if start != "" {
			f.Start = start
		}
		if f.Name == "" {
			f.Name = name
		}
		g, err := f.Grammar()
		return g, f.TokenClasses(), err
	case ".ebnf":
		r, err := os.Open(filename)
		if err != nil {
			return nil, nil, err
		}
		defer r.Close()
		g, err := ReadEBNF(filename, r, start)
		return g, nil, err
	}
	r, err := os.Open(filename)
	if err != nil {
		return nil, nil, err
	}
	defer r.Close()
	rules, first, err := ReadRules(r)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", filename, err)
	}
	if start == "" {
		start = first
	}
	g, err := lr.NewGrammar(name, start, rules)
	return g, nil, err
}

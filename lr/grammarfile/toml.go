package grammarfile

import (
	"io"

	"github.com/BurntSushi/toml"
	"github.com/npillmayer/lrgen/lr"
	"github.com/npillmayer/lrgen/lr/scanner"
)

// File is the TOML form of a grammar.
type File struct {
	Name      string       `toml:"name"`
	Start     string       `toml:"start"`
	Terminals []string     `toml:"terminals"`
	Rules     []Rule       `toml:"rule"`
	Classes   []TokenClass `toml:"class"`
}

// Rule is a TOML rule. Every entry of RHS is an alternative, with symbols
// separated by whitespace.
type Rule struct {
	LHS string   `toml:"lhs"`
	RHS []string `toml:"rhs"`
}

// TokenClass is a TOML token class.
type TokenClass struct {
	Terminal string `toml:"terminal"`
	Pattern  string `toml:"pattern"`
}

// LoadTOML reads a TOML grammar file.
func LoadTOML(filename string) (*File, error) {
	var f File
	if _, err := toml.DecodeFile(filename, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// DecodeTOML reads a TOML grammar.
func DecodeTOML(r io.Reader) (*File, error) {
	var f File
	if _, err := toml.NewDecoder(r).Decode(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

// RuleSpecs expands the rules into one rule specification per alternative.
// A rule without alternatives is an ε-production.
func (f *File) RuleSpecs() []lr.RuleSpec {
	var rules []lr.RuleSpec
	for _, r := range f.Rules {
		if len(r.RHS) == 0 {
			rules = append(rules, lr.RuleSpec{LHS: r.LHS})
		}
		for _, alt := range r.RHS {
			rules = append(rules, lr.RuleSpec{LHS: r.LHS, RHS: alternative(alt)})
		}
	}
	return rules
}

// Grammar creates a grammar from the file. Without a start symbol, the LHS
// of the first rule is used. If terminals are declared, every symbol of the
// grammar has to be either declared or occur as a LHS.
func (f *File) Grammar() (*lr.Grammar, error) {
	start := f.Start
	if start == "" && len(f.Rules) > 0 {
		start = f.Rules[0].LHS
	}
	var opts []lr.GrammarOption
	if len(f.Terminals) > 0 {
		opts = append(opts, lr.DeclareTerminals(f.Terminals...))
	}
	return lr.NewGrammar(f.Name, start, f.RuleSpecs(), opts...)
}

// TokenClasses returns the token classes for a tokenizer.
func (f *File) TokenClasses() []scanner.Class {
	classes := make([]scanner.Class, len(f.Classes))
	for i, c := range f.Classes {
		classes[i] = scanner.Class{Terminal: c.Terminal, Pattern: c.Pattern}
	}
	return classes
}

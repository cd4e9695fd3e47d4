package grammarfile

import (
	"fmt"
	"io"
	"sort"

	"github.com/npillmayer/lrgen/lr"
	"golang.org/x/exp/ebnf"
)

// ReadEBNF reads a grammar in EBNF notation. If start is empty, the first
// production of the source is the start production.
//
// EBNF constructs are rewritten into plain productions:
//
//     A = x ( y | z ) .    →   A → x A_grp1      A_grp1 → y | z
//     A = x [ y ] .        →   A → x A_opt1      A_opt1 → y | ε
//     A = x { y } .        →   A → x A_rep1      A_rep1 → A_rep1 y | ε
//
// Character ranges are not supported.
func ReadEBNF(filename string, r io.Reader, start string) (*lr.Grammar, error) {
	grammar, err := ebnf.Parse(filename, r)
	if err != nil {
		return nil, err
	}
	if len(grammar) == 0 {
		return nil, fmt.Errorf("%s: no productions", filename)
	}
	prods := make([]*ebnf.Production, 0, len(grammar))
	for _, p := range grammar {
		prods = append(prods, p)
	}
	sort.Slice(prods, func(i, j int) bool {
		return prods[i].Pos().Offset < prods[j].Pos().Offset
	})
	if start == "" {
		start = prods[0].Name.String
	}
	c := &ebnfConverter{grammar: grammar, counters: make(map[string]int)}
	for _, p := range prods {
		c.production(p.Name.String, p.Expr)
	}
	if c.err != nil {
		return nil, c.err
	}
	tracer().Debugf("EBNF grammar %s: %d productions rewritten to %d rules", filename, len(prods), len(c.rules))
	return lr.NewGrammar(filename, start, c.rules)
}

type ebnfConverter struct {
	grammar  ebnf.Grammar
	rules    []lr.RuleSpec
	counters map[string]int // helper serials per production
	lhs      string         // production currently converted
	err      error
}

func (c *ebnfConverter) production(name string, expr ebnf.Expression) {
	outer := c.lhs
	if outer == "" {
		c.lhs = name
		defer func() { c.lhs = "" }()
	}
	for _, alt := range alternatives(expr) {
		rhs := c.sequence(alt) // may add helper rules
		c.rules = append(c.rules, lr.RuleSpec{LHS: name, RHS: rhs})
	}
}

func alternatives(expr ebnf.Expression) []ebnf.Expression {
	if alt, ok := expr.(ebnf.Alternative); ok {
		return alt
	}
	return []ebnf.Expression{expr}
}

func (c *ebnfConverter) sequence(expr ebnf.Expression) []string {
	switch x := expr.(type) {
	case nil:
		return nil
	case ebnf.Sequence:
		var syms []string
		for _, e := range x {
			syms = append(syms, c.sequence(e)...)
		}
		return syms
	case *ebnf.Name:
		return []string{x.String}
	case *ebnf.Token:
		if x.String == "" {
			return nil
		}
		return []string{x.String}
	case ebnf.Alternative:
		h := c.helper("grp")
		c.production(h, x)
		return []string{h}
	case *ebnf.Group:
		if _, ok := x.Body.(ebnf.Alternative); !ok {
			return c.sequence(x.Body)
		}
		h := c.helper("grp")
		c.production(h, x.Body)
		return []string{h}
	case *ebnf.Option:
		h := c.helper("opt")
		c.production(h, x.Body)
		c.rules = append(c.rules, lr.RuleSpec{LHS: h})
		return []string{h}
	case *ebnf.Repetition:
		h := c.helper("rep")
		for _, alt := range alternatives(x.Body) {
			body := c.sequence(alt)
			rhs := append([]string{h}, body...)
			c.rules = append(c.rules, lr.RuleSpec{LHS: h, RHS: rhs})
		}
		c.rules = append(c.rules, lr.RuleSpec{LHS: h})
		return []string{h}
	case *ebnf.Range:
		c.fail(fmt.Errorf("%v: character ranges are not supported", x.Pos()))
	case *ebnf.Bad:
		c.fail(fmt.Errorf("%v: %s", x.Pos(), x.Error))
	default:
		c.fail(fmt.Errorf("unsupported EBNF expression %T", expr))
	}
	return nil
}

// helper creates a fresh non-terminal name for a sub-expression of the
// current production.
func (c *ebnfConverter) helper(kind string) string {
	for {
		c.counters[c.lhs]++
		h := fmt.Sprintf("%s_%s%d", c.lhs, kind, c.counters[c.lhs])
		if _, clash := c.grammar[h]; !clash {
			return h
		}
	}
}

func (c *ebnfConverter) fail(err error) {
	if c.err == nil {
		c.err = err
	}
}

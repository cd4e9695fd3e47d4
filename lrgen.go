package lrgen

import (
	"context"

	"github.com/npillmayer/lrgen/lr"
	"github.com/npillmayer/lrgen/lr/lr1"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrgen.lr'.
func tracer() tracing.Trace {
	return tracing.Select("lrgen.lr")
}

// Pipeline holds the output of all stages of the generator for a grammar.
// It is read-only after Build.
type Pipeline struct {
	Grammar   *lr.Grammar
	Analysis  *lr.LRAnalysis
	Generator *lr.TableGenerator
	Parser    *lr1.Parser
}

// Build runs the generator stages for a grammar: FIRST/FOLLOW analysis,
// construction of the CFSM and of the parser tables. Table conflicts do
// not make Build fail; they are available from Pipeline.Conflicts.
func Build(g *lr.Grammar, opts ...lr.Option) (*Pipeline, error) {
	ga, err := lr.Analysis(g, opts...)
	if err != nil {
		return nil, err
	}
	gen := lr.NewTableGenerator(ga)
	gen.CreateTables()
	if gen.HasConflicts {
		tracer().Infof("grammar %s is not LR(1): %d conflicts", g.Name, len(gen.Conflicts()))
	}
	return &Pipeline{
		Grammar:   g,
		Analysis:  ga,
		Generator: gen,
		Parser:    lr1.NewParser(g, gen.GotoTable(), gen.ActionTable()),
	}, nil
}

// BuildFromRules creates a grammar from rule specifications and builds
// a pipeline for it.
func BuildFromRules(name, start string, rules []lr.RuleSpec, opts ...lr.Option) (*Pipeline, error) {
	g, err := lr.NewGrammar(name, start, rules)
	if err != nil {
		return nil, err
	}
	return Build(g, opts...)
}

// Conflicts returns the table conflicts of the grammar, in order of
// detection.
func (p *Pipeline) Conflicts() []lr.Conflict {
	return p.Generator.Conflicts()
}

// IsLR1 is true if the tables are free of conflicts.
func (p *Pipeline) IsLR1() bool {
	return !p.Generator.HasConflicts
}

// Result is the outcome of parsing one input. Exactly one of Tree and Err is
// set. Derivation lists the reductions done, also for rejected input.
type Result struct {
	Tree       *lr1.Node
	Derivation []string
	Err        error
}

// Accepted is true if the input has been recognized.
func (r Result) Accepted() bool {
	return r.Err == nil
}

func resultOf(res *lr1.Result, err error) Result {
	r := Result{Err: err}
	if res != nil {
		r.Derivation = res.DerivationSteps()
		if err == nil {
			r.Tree = res.Tree
		}
	}
	return r
}

// Parse parses a sequence of terminal names.
func (p *Pipeline) Parse(tokens []string) Result {
	return resultOf(p.Parser.Parse(tokens))
}

// ParseAll parses inputs concurrently, using at most limit goroutines.
// Results are returned in input order.
func (p *Pipeline) ParseAll(ctx context.Context, inputs [][]string, limit int) ([]Result, error) {
	outcomes, err := lr1.ParseAll(ctx, p.Parser, inputs, limit)
	results := make([]Result, len(outcomes))
	for i, o := range outcomes {
		if o.Result == nil && o.Err == nil { // not run, batch cancelled
			results[i] = Result{Err: context.Canceled}
			if err != nil {
				results[i].Err = err
			}
			continue
		}
		results[i] = resultOf(o.Result, o.Err)
	}
	return results, err
}

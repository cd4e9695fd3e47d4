package lr

import (
	"fmt"
)

// LRAnalysis is an object for static analysis of a grammar: FIRST sets,
// FOLLOW sets and nullability. It is the input for LR(1) item set
// construction. An LRAnalysis is read-only after creation.
type LRAnalysis struct {
	g      *Grammar
	first  map[*Symbol]*SymbolSet
	follow map[*Symbol]*SymbolSet
	conf   *config
}

// Analysis computes FIRST and FOLLOW sets for grammar g. Both are computed
// as fixed points, iterating over all productions until no set changes.
// If this does not happen within the configured number of passes, an error
// wrapping ErrNoConvergence is returned.
func Analysis(g *Grammar, opts ...Option) (*LRAnalysis, error) {
	ga := &LRAnalysis{
		g:      g,
		first:  make(map[*Symbol]*SymbolSet, g.NumberOfSymbols()+1),
		follow: make(map[*Symbol]*SymbolSet),
		conf:   newConfig(opts),
	}
	if err := ga.computeFirstSets(); err != nil {
		return nil, err
	}
	if err := ga.computeFollowSets(); err != nil {
		return nil, err
	}
	return ga, nil
}

// Grammar returns the grammar this analysis is for.
func (ga *LRAnalysis) Grammar() *Grammar {
	return ga.g
}

func (ga *LRAnalysis) computeFirstSets() error {
	g := ga.g
	g.EachSymbol(func(A *Symbol) {
		if A.IsTerminal() {
			ga.first[A] = NewSymbolSet(A)
		} else {
			ga.first[A] = NewSymbolSet()
		}
	})
	ga.first[g.epsilon] = NewSymbolSet(g.epsilon)
	for pass := 1; ; pass++ {
		if pass > ga.conf.maxIterations {
			return fmt.Errorf("%w: FIRST sets unstable after %d passes",
				ErrNoConvergence, ga.conf.maxIterations)
		}
		changed := false
		for _, r := range g.rules {
			if ga.first[r.LHS].Union(ga.firstOfSequence(r.rhs)) {
				changed = true
			}
		}
		if !changed {
			tracer().Debugf("FIRST sets stable after %d passes", pass)
			return nil
		}
	}
}

func (ga *LRAnalysis) computeFollowSets() error {
	g := ga.g
	g.EachNonTerminal(func(A *Symbol) {
		ga.follow[A] = NewSymbolSet()
	})
	ga.follow[g.augStart].Add(g.eof)
	for pass := 1; ; pass++ {
		if pass > ga.conf.maxIterations {
			return fmt.Errorf("%w: FOLLOW sets unstable after %d passes",
				ErrNoConvergence, ga.conf.maxIterations)
		}
		changed := false
		for _, r := range g.rules {
			for i, B := range r.rhs {
				if B.IsTerminal() {
					continue
				}
				F := ga.firstOfSequence(r.rhs[i+1:])
				if ga.follow[B].union(F, true) {
					changed = true
				}
				if F.Contains(g.epsilon) && ga.follow[B].Union(ga.follow[r.LHS]) {
					changed = true
				}
			}
		}
		if !changed {
			tracer().Debugf("FOLLOW sets stable after %d passes", pass)
			return nil
		}
	}
}

// firstOfSequence returns FIRST(X1 … Xn) without copying. FIRST of the
// empty sequence is {ε}. Symbols unknown to the analysis have an empty
// FIRST set and are not nullable, i.e. the scan stops there.
func (ga *LRAnalysis) firstOfSequence(seq []*Symbol) *SymbolSet {
	F := NewSymbolSet()
	for _, X := range seq {
		FX, ok := ga.first[X]
		if !ok {
			return F
		}
		F.union(FX, true)
		if !FX.Contains(ga.g.epsilon) {
			return F
		}
	}
	F.Add(ga.g.epsilon)
	return F
}

// First returns FIRST(A) for a grammar symbol A. For terminals this is {A}.
// The set contains ε if A is nullable.
func (ga *LRAnalysis) First(A *Symbol) *SymbolSet {
	if F, ok := ga.first[A]; ok {
		return F.Copy()
	}
	return NewSymbolSet()
}

// FirstOfSequence returns FIRST(X1 … Xn). It contains ε if and only if every
// Xi is nullable, in particular for the empty sequence.
func (ga *LRAnalysis) FirstOfSequence(seq []*Symbol) *SymbolSet {
	return ga.firstOfSequence(seq)
}

// Follow returns FOLLOW(A) for a non-terminal A. It never contains ε.
// FOLLOW(S') and FOLLOW(S) contain '$'.
func (ga *LRAnalysis) Follow(A *Symbol) *SymbolSet {
	if F, ok := ga.follow[A]; ok {
		return F.Copy()
	}
	return NewSymbolSet()
}

// Nullable is true if ε ∈ FIRST(A).
func (ga *LRAnalysis) Nullable(A *Symbol) bool {
	F, ok := ga.first[A]
	return ok && F.Contains(ga.g.epsilon)
}

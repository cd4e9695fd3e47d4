package lr

import (
	"fmt"
	"strings"
)

// Reserved symbol names. They may not be used in rule specifications.
const (
	EndMarker = "$" // end-of-input terminal
	Epsilon   = "ε" // the empty string, used in FIRST sets only
)

// --- Symbols ---------------------------------------------------------------

type symbolKind uint8

const (
	nonTerminalSymbol symbolKind = iota
	terminalSymbol
	endMarkerSymbol
	epsilonSymbol
)

// Symbol is a grammar symbol, i.e. a terminal or a non-terminal.
// Symbols are interned per grammar: two symbols of a grammar are equal
// if and only if they are the same pointer.
//
// Value is a serial number, unique within a grammar. Symbols are numbered
// in order of first appearance within the rules, starting with the augmented
// start symbol. The end marker follows all other grammar symbols.
type Symbol struct {
	Name  string
	Value int
	kind  symbolKind
}

// IsTerminal returns true for terminals, including the end marker.
func (A *Symbol) IsTerminal() bool {
	return A.kind == terminalSymbol || A.kind == endMarkerSymbol
}

// IsEpsilon returns true for the pseudo-symbol ε.
func (A *Symbol) IsEpsilon() bool {
	return A.kind == epsilonSymbol
}

// IsEndMarker returns true for the end-of-input terminal '$'.
func (A *Symbol) IsEndMarker() bool {
	return A.kind == endMarkerSymbol
}

func (A *Symbol) String() string {
	return A.Name
}

// --- Productions -----------------------------------------------------------

// Production is a grammar rule LHS → RHS. Productions are immutable once
// the grammar has been built. Serial is the index of the production within
// its grammar, with 0 denoting the augmented start rule S' → S.
type Production struct {
	Serial int
	LHS    *Symbol
	rhs    []*Symbol
}

// RHS returns a copy of the right-hand side of the production.
func (r *Production) RHS() []*Symbol {
	return append([]*Symbol(nil), r.rhs...)
}

// Len returns the number of symbols on the right-hand side.
func (r *Production) Len() int {
	return len(r.rhs)
}

// IsEpsilon is true for productions with an empty right-hand side.
func (r *Production) IsEpsilon() bool {
	return len(r.rhs) == 0
}

// Equal compares productions structurally, i.e. by LHS and RHS names.
func (r *Production) Equal(other *Production) bool {
	if r == other {
		return true
	}
	if r == nil || other == nil {
		return false
	}
	if r.LHS.Name != other.LHS.Name || len(r.rhs) != len(other.rhs) {
		return false
	}
	for i, A := range r.rhs {
		if A.Name != other.rhs[i].Name {
			return false
		}
	}
	return true
}

// Key returns a string unique for the structure (LHS, RHS) of a production.
func (r *Production) Key() string {
	names := make([]string, len(r.rhs))
	for i, A := range r.rhs {
		names[i] = A.Name
	}
	return r.LHS.Name + "\x00" + strings.Join(names, "\x00")
}

// String returns the production as "A → X Y", or "A → ε" for empty productions.
func (r *Production) String() string {
	if len(r.rhs) == 0 {
		return r.LHS.Name + " → " + Epsilon
	}
	var b strings.Builder
	b.WriteString(r.LHS.Name)
	b.WriteString(" →")
	for _, A := range r.rhs {
		b.WriteByte(' ')
		b.WriteString(A.Name)
	}
	return b.String()
}

// --- Grammar ---------------------------------------------------------------

// RuleSpec is a rule specification as handed to NewGrammar. An empty RHS
// denotes an ε-production.
type RuleSpec struct {
	LHS string
	RHS []string
}

// GrammarOption configures grammar construction.
type GrammarOption func(*grammarConfig)

type grammarConfig struct {
	terminals map[string]bool
}

// DeclareTerminals declares the terminals of a grammar explicitly. Without
// this option, every RHS symbol which never occurs as a LHS is taken to be a
// terminal. With it, such symbols have to be declared, otherwise grammar
// construction fails with an UndefinedSymbol error.
func DeclareTerminals(names ...string) GrammarOption {
	return func(c *grammarConfig) {
		if c.terminals == nil {
			c.terminals = make(map[string]bool, len(names))
		}
		for _, name := range names {
			c.terminals[name] = true
		}
	}
}

// Grammar is an augmented context-free grammar. Grammars are created by
// NewGrammar or by a GrammarBuilder and are read-only afterwards, thus
// safe to share between goroutines.
type Grammar struct {
	Name     string
	rules    []*Production      // rules[0] is S' → S
	symbols  []*Symbol          // by Value
	byName   map[string]*Symbol // all symbols except ε
	nonterms map[*Symbol][]*Production
	start    *Symbol
	augStart *Symbol
	eof      *Symbol
	epsilon  *Symbol
}

// NewGrammar creates a grammar from a list of rule specifications. The start
// symbol has to occur as the LHS of at least one rule. The grammar will be
// augmented by a fresh start symbol (start symbol name plus one or more
// apostrophes) and rule 0 S' → S.
//
// Productions which are structurally equal to a previous one are dropped.
func NewGrammar(name, start string, rules []RuleSpec, opts ...GrammarOption) (*Grammar, error) {
	conf := &grammarConfig{}
	for _, opt := range opts {
		opt(conf)
	}
	if start == "" {
		return nil, grammarError(EmptyStart, "", -1)
	}
	if len(rules) == 0 {
		return nil, grammarError(NoProductions, "", -1)
	}
	lhs := make(map[string]bool)
	for i, r := range rules {
		if r.LHS == "" {
			return nil, grammarError(EmptyLHS, "", i)
		}
		if isReserved(r.LHS) {
			return nil, grammarError(ReservedSymbol, r.LHS, i)
		}
		for _, name := range r.RHS {
			if name == "" {
				return nil, grammarError(EmptySymbolName, "", i)
			}
			if isReserved(name) {
				return nil, grammarError(ReservedSymbol, name, i)
			}
		}
		lhs[r.LHS] = true
	}
	if !lhs[start] {
		return nil, grammarError(StartNotNonterminal, start, -1)
	}
	for i, r := range rules {
		if conf.terminals[r.LHS] {
			return nil, grammarError(TerminalAsLHS, r.LHS, i)
		}
		if conf.terminals == nil {
			continue
		}
		for _, name := range r.RHS {
			if !lhs[name] && !conf.terminals[name] {
				return nil, grammarError(UndefinedSymbol, name, i)
			}
		}
	}
	g := &Grammar{
		Name:     name,
		byName:   make(map[string]*Symbol),
		nonterms: make(map[*Symbol][]*Production),
	}
	g.augStart = g.intern(augmentedName(start, rules), false)
	g.start = g.intern(start, false)
	g.addRule(g.augStart, []*Symbol{g.start})
	seen := make(map[string]bool)
	for _, r := range rules {
		A := g.intern(r.LHS, false)
		rhs := make([]*Symbol, len(r.RHS))
		for i, name := range r.RHS {
			rhs[i] = g.intern(name, !lhs[name])
		}
		p := &Production{LHS: A, rhs: rhs}
		if seen[p.Key()] {
			tracer().Infof("grammar %s: dropping duplicate rule %v", name, p)
			continue
		}
		seen[p.Key()] = true
		g.addRule(A, rhs)
	}
	g.eof = &Symbol{Name: EndMarker, Value: len(g.symbols), kind: endMarkerSymbol}
	g.symbols = append(g.symbols, g.eof)
	g.byName[EndMarker] = g.eof
	g.epsilon = &Symbol{Name: Epsilon, Value: len(g.symbols), kind: epsilonSymbol}
	return g, nil
}

func isReserved(name string) bool {
	return name == EndMarker || name == Epsilon
}

// augmentedName finds a name for S' which does not clash with any symbol.
func augmentedName(start string, rules []RuleSpec) string {
	used := make(map[string]bool)
	for _, r := range rules {
		used[r.LHS] = true
		for _, name := range r.RHS {
			used[name] = true
		}
	}
	aug := start + "'"
	for used[aug] {
		aug += "'"
	}
	return aug
}

func (g *Grammar) intern(name string, terminal bool) *Symbol {
	if A, ok := g.byName[name]; ok {
		return A
	}
	A := &Symbol{Name: name, Value: len(g.symbols), kind: nonTerminalSymbol}
	if terminal {
		A.kind = terminalSymbol
	}
	g.symbols = append(g.symbols, A)
	g.byName[name] = A
	return A
}

func (g *Grammar) addRule(A *Symbol, rhs []*Symbol) {
	r := &Production{Serial: len(g.rules), LHS: A, rhs: rhs}
	g.rules = append(g.rules, r)
	g.nonterms[A] = append(g.nonterms[A], r)
}

// Start returns the start symbol S of the (un-augmented) grammar.
func (g *Grammar) Start() *Symbol {
	return g.start
}

// AugmentedStart returns the fresh start symbol S'.
func (g *Grammar) AugmentedStart() *Symbol {
	return g.augStart
}

// EndMarker returns the end-of-input terminal '$'.
func (g *Grammar) EndMarker() *Symbol {
	return g.eof
}

// Epsilon returns the pseudo-symbol ε of this grammar.
func (g *Grammar) Epsilon() *Symbol {
	return g.epsilon
}

// Size returns the number of productions, including the augmented start rule.
func (g *Grammar) Size() int {
	return len(g.rules)
}

// Rule returns production number n. Rule 0 is the augmented start rule.
func (g *Grammar) Rule(n int) *Production {
	if n < 0 || n >= len(g.rules) {
		return nil
	}
	return g.rules[n]
}

// Rules returns all productions, ordered by serial number.
func (g *Grammar) Rules() []*Production {
	return append([]*Production(nil), g.rules...)
}

// NumberOfSymbols returns the number of grammar symbols, including S' and '$'.
func (g *Grammar) NumberOfSymbols() int {
	return len(g.symbols)
}

// SymbolByName finds a grammar symbol. ε is not a grammar symbol and will
// not be found.
func (g *Grammar) SymbolByName(name string) *Symbol {
	return g.byName[name]
}

// SymbolByValue returns the symbol with serial number v, or nil.
func (g *Grammar) SymbolByValue(v int) *Symbol {
	if v < 0 || v >= len(g.symbols) {
		return nil
	}
	return g.symbols[v]
}

// FindNonTermRules returns all productions with LHS A, in grammar order.
func (g *Grammar) FindNonTermRules(A *Symbol) []*Production {
	return g.nonterms[A]
}

// EachSymbol calls f for every grammar symbol, in order of symbol values.
func (g *Grammar) EachSymbol(f func(A *Symbol)) {
	for _, A := range g.symbols {
		f(A)
	}
}

// EachTerminal calls f for every terminal, including '$'.
func (g *Grammar) EachTerminal(f func(A *Symbol)) {
	for _, A := range g.symbols {
		if A.IsTerminal() {
			f(A)
		}
	}
}

// EachNonTerminal calls f for every non-terminal, including S'.
func (g *Grammar) EachNonTerminal(f func(A *Symbol)) {
	for _, A := range g.symbols {
		if !A.IsTerminal() {
			f(A)
		}
	}
}

// Terminals returns all terminals, including '$', in order of symbol values.
func (g *Grammar) Terminals() []*Symbol {
	var T []*Symbol
	g.EachTerminal(func(A *Symbol) { T = append(T, A) })
	return T
}

// NonTerminals returns all non-terminals, including S', in order of symbol values.
func (g *Grammar) NonTerminals() []*Symbol {
	var N []*Symbol
	g.EachNonTerminal(func(A *Symbol) { N = append(N, A) })
	return N
}

// Dump is a debugging helper, tracing all productions.
func (g *Grammar) Dump() {
	tracer().Debugf("--- grammar %s ---------------------------", g.Name)
	for _, r := range g.rules {
		tracer().Debugf("%3d: %v", r.Serial, r)
	}
	tracer().Debugf("-------------------------------------------")
}

func (g *Grammar) String() string {
	return fmt.Sprintf("(grammar %s | %d rules)", g.Name, len(g.rules))
}

// --- Grammar Builder -------------------------------------------------------

// GrammarBuilder is a helper for constructing grammars step by step.
//
//     b := lr.NewGrammarBuilder("G")
//     b.LHS("S").N("A").T("a").End()
//     b.LHS("A").Epsilon()
//     g, err := b.Grammar()
//
// The LHS of the first rule is the start symbol, unless set otherwise by
// calling Start.
type GrammarBuilder struct {
	name      string
	start     string
	rules     []RuleSpec
	terminals []string
}

// RuleBuilder collects the RHS of a single rule. It is created by
// GrammarBuilder.LHS.
type RuleBuilder struct {
	gb  *GrammarBuilder
	lhs string
	rhs []string
}

// NewGrammarBuilder creates a builder for a grammar with a given name.
func NewGrammarBuilder(name string) *GrammarBuilder {
	return &GrammarBuilder{name: name}
}

// Start sets the start symbol of the grammar.
func (gb *GrammarBuilder) Start(name string) *GrammarBuilder {
	gb.start = name
	return gb
}

// LHS starts a new rule with left-hand side name.
func (gb *GrammarBuilder) LHS(name string) *RuleBuilder {
	if gb.start == "" && len(gb.rules) == 0 {
		gb.start = name
	}
	return &RuleBuilder{gb: gb, lhs: name}
}

// N appends a non-terminal to the RHS.
func (rb *RuleBuilder) N(name string) *RuleBuilder {
	rb.rhs = append(rb.rhs, name)
	return rb
}

// T appends a terminal to the RHS.
func (rb *RuleBuilder) T(name string) *RuleBuilder {
	rb.gb.terminals = append(rb.gb.terminals, name)
	rb.rhs = append(rb.rhs, name)
	return rb
}

// End completes a rule.
func (rb *RuleBuilder) End() *GrammarBuilder {
	rb.gb.rules = append(rb.gb.rules, RuleSpec{LHS: rb.lhs, RHS: rb.rhs})
	return rb.gb
}

// Epsilon completes a rule as an ε-production. Symbols appended before
// are discarded.
func (rb *RuleBuilder) Epsilon() *GrammarBuilder {
	rb.rhs = nil
	return rb.End()
}

// Grammar returns the grammar under construction. Symbols introduced with N
// have to occur as a LHS, symbols introduced with T must not.
func (gb *GrammarBuilder) Grammar() (*Grammar, error) {
	return NewGrammar(gb.name, gb.start, gb.rules, DeclareTerminals(gb.terminals...))
}

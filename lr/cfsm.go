package lr

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// === CFSM Construction =====================================================

// CFSMState is a state within the CFSM for a grammar, i.e. a closed set
// of LR(1) items.
type CFSMState struct {
	ID     int      // serial ID of this state, in order of discovery
	items  *ItemSet // configuration items within this state
	Accept bool     // does this state contain [S' → S •, $]?
}

// Items returns the items of the state, in canonical order.
func (s *CFSMState) Items() []Item {
	return s.items.Items()
}

// ItemSet returns the item set of the state. It must not be modified.
func (s *CFSMState) ItemSet() *ItemSet {
	return s.items
}

// Dump is a debugging helper
func (s *CFSMState) Dump() {
	tracer().Debugf("--- state %03d -----------", s.ID)
	s.items.Dump()
	tracer().Debugf("-------------------------")
}

func (s *CFSMState) String() string {
	return fmt.Sprintf("(state %d | [%d])", s.ID, s.items.Size())
}

func (s *CFSMState) containsCompletedStartRule() bool {
	for _, i := range s.items.items {
		if i.rule.Serial == 0 && i.IsComplete() && i.la.IsEndMarker() {
			return true
		}
	}
	return false
}

// Transition is a labeled edge of the CFSM.
type Transition struct {
	From   int
	Symbol *Symbol
	To     int
}

func (t Transition) String() string {
	return fmt.Sprintf("%d --%s--> %d", t.From, t.Symbol, t.To)
}

type edgeKey struct {
	from int
	sym  int
}

// We need this for the set of states. It sorts states by serial ID.
func stateComparator(s1, s2 interface{}) int {
	c1 := s1.(*CFSMState)
	c2 := s2.(*CFSMState)
	return utils.IntComparator(c1.ID, c2.ID)
}

// CFSM is the characteristic finite state machine for an LR(1) grammar, i.e. the
// canonical collection of LR(1) item sets together with the goto transitions
// between them. Will be constructed by a TableGenerator.
// Clients normally do not use it directly. Nevertheless, there are some methods
// defined on it, e.g, for debugging purposes, or even to
// compute your own tables from it.
type CFSM struct {
	g      *Grammar                // this CFSM is for Grammar g
	states *treeset.Set            // all the states
	byID   []*CFSMState            // states indexed by ID
	edges  *arraylist.List         // all the edges between states, in order of creation
	gotos  map[edgeKey]int         // transition function
	bySig  map[string][]*CFSMState // states by item set signature
	S0     *CFSMState              // start state
}

// create an empty (initial) CFSM automata.
func emptyCFSM(g *Grammar) *CFSM {
	return &CFSM{
		g:      g,
		states: treeset.NewWith(stateComparator),
		edges:  arraylist.New(),
		gotos:  make(map[edgeKey]int),
		bySig:  make(map[string][]*CFSMState),
	}
}

// addState adds a state for an item set, if not already present. It returns
// the state and a flag indicating if it has been created.
func (c *CFSM) addState(iset *ItemSet) (*CFSMState, bool) {
	sig := iset.signature()
	for _, s := range c.bySig[sig] {
		if s.items.Equals(iset) {
			return s, false
		}
	}
	s := &CFSMState{ID: len(c.byID), items: iset}
	s.Accept = s.containsCompletedStartRule()
	c.states.Add(s)
	c.byID = append(c.byID, s)
	c.bySig[sig] = append(c.bySig[sig], s)
	return s, true
}

func (c *CFSM) addEdge(from, to *CFSMState, A *Symbol) {
	c.edges.Add(Transition{From: from.ID, Symbol: A, To: to.ID})
	c.gotos[edgeKey{from: from.ID, sym: A.Value}] = to.ID
}

// BuildCFSM constructs the canonical collection of LR(1) item sets for the
// grammar. State 0 is the closure of [S' → • S, $]. States are discovered
// breadth-first and numbered in order of discovery. For every state, the
// symbols after a dot are visited in order of symbol values, making the
// numbering deterministic.
func (ga *LRAnalysis) BuildCFSM() *CFSM {
	tracer().Debugf("=== build CFSM ==================================================")
	G := ga.g
	cfsm := emptyCFSM(G)
	start := StartItem(G.rules[0], G.eof)
	tracer().Debugf("Start item = %v", start)
	cfsm.S0, _ = cfsm.addState(ga.Closure(NewItemSet(start)))
	cfsm.S0.Dump()
	for k := 0; k < len(cfsm.byID); k++ { // states list acts as BFS queue
		s := cfsm.byID[k]
		for _, A := range symbolsAfterDot(s.items) {
			gotoset := ga.GotoSet(s.items, A)
			snew, isnew := cfsm.addState(gotoset)
			if isnew {
				tracer().Debugf("new state %d from state %d via %s", snew.ID, s.ID, A)
				snew.Dump()
			}
			cfsm.addEdge(s, snew, A)
		}
	}
	tracer().Infof("CFSM for grammar %s has %d states", G.Name, len(cfsm.byID))
	return cfsm
}

// symbolsAfterDot returns all symbols X with an item [A → α • X β, a] in S,
// ordered by symbol value.
func symbolsAfterDot(S *ItemSet) []*Symbol {
	X := NewSymbolSet()
	for _, i := range S.items {
		if A := i.PeekSymbol(); A != nil {
			X.Add(A)
		}
	}
	return X.Values()
}

// Grammar returns the grammar of the CFSM.
func (c *CFSM) Grammar() *Grammar {
	return c.g
}

// Size returns the number of states.
func (c *CFSM) Size() int {
	return len(c.byID)
}

// State returns the state with the given ID, or nil.
func (c *CFSM) State(id int) *CFSMState {
	if id < 0 || id >= len(c.byID) {
		return nil
	}
	return c.byID[id]
}

// States returns all states, ordered by ID.
func (c *CFSM) States() []*CFSMState {
	vals := c.states.Values()
	S := make([]*CFSMState, len(vals))
	for i, x := range vals {
		S[i] = x.(*CFSMState)
	}
	return S
}

// Goto returns the target of the transition from state from under symbol A.
func (c *CFSM) Goto(from int, A *Symbol) (int, bool) {
	to, ok := c.gotos[edgeKey{from: from, sym: A.Value}]
	return to, ok
}

// Transitions returns all transitions, ordered by source state and symbol value.
func (c *CFSM) Transitions() []Transition {
	T := make([]Transition, 0, c.edges.Size())
	it := c.edges.Iterator()
	for it.Next() {
		T = append(T, it.Value().(Transition))
	}
	sort.SliceStable(T, func(i, j int) bool {
		if T[i].From != T[j].From {
			return T[i].From < T[j].From
		}
		return T[i].Symbol.Value < T[j].Symbol.Value
	})
	return T
}

// AcceptingStates returns the IDs of all states containing [S' → S •, $].
func (c *CFSM) AcceptingStates() []int {
	acc := make([]int, 0, 1)
	for _, s := range c.byID {
		if s.Accept {
			acc = append(acc, s.ID)
		}
	}
	return acc
}

// CFSM2GraphViz exports a CFSM to the Graphviz Dot format, given a filename.
func (c *CFSM) CFSM2GraphViz(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("cannot export CFSM: %w", err)
	}
	defer f.Close()
	return c.WriteDot(f)
}

// WriteDot writes the CFSM in Graphviz Dot format.
func (c *CFSM) WriteDot(w io.Writer) error {
	var b strings.Builder
	b.WriteString(`digraph {
graph [splines=true, fontname=Helvetica, fontsize=10];
node [shape=Mrecord, style=filled, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`)
	for _, s := range c.byID {
		b.WriteString(fmt.Sprintf("s%03d [fillcolor=%s label=\"{%03d | %s}\"]\n",
			s.ID, nodecolor(s), s.ID, forGraphviz(s.items)))
	}
	for _, t := range c.Transitions() {
		b.WriteString(fmt.Sprintf("s%03d -> s%03d [label=\"%s\"]\n", t.From, t.To, dotEscape(t.Symbol.Name)))
	}
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func nodecolor(state *CFSMState) string {
	if state.Accept {
		return "lightgray"
	}
	return "white"
}

func forGraphviz(S *ItemSet) string {
	items := S.Items()
	s := make([]string, len(items))
	for n, i := range items {
		s[n] = dotEscape(i.String())
	}
	return strings.Join(s, "\\l") + "\\l"
}

var dotReplacer = strings.NewReplacer(`"`, `\"`, `{`, `\{`, `}`, `\}`,
	`|`, `\|`, `<`, `\<`, `>`, `\>`)

func dotEscape(s string) string {
	return dotReplacer.Replace(s)
}

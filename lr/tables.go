package lr

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/npillmayer/lrgen/lr/sparse"
)

// === Actions ===============================================================

// ActionKind is the kind of a parser action.
type ActionKind uint8

// Kinds of parser actions. The zero value denotes "no action", i.e. an error.
const (
	NoAction ActionKind = iota
	ShiftAction
	ReduceAction
	AcceptAction
)

// Action is an entry of the ACTION table. For shift actions, State is the
// target state. For reduce actions, Rule is the production to reduce by.
type Action struct {
	Kind  ActionKind
	State int
	Rule  *Production
}

// Shift creates a shift action to state n.
func Shift(n int) Action {
	return Action{Kind: ShiftAction, State: n}
}

// Reduce creates a reduce action for production r.
func Reduce(r *Production) Action {
	return Action{Kind: ReduceAction, Rule: r}
}

// Accept creates an accept action.
func Accept() Action {
	return Action{Kind: AcceptAction}
}

// IsNull is true for the empty action.
func (a Action) IsNull() bool {
	return a.Kind == NoAction
}

// Equal compares two actions.
func (a Action) Equal(b Action) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case ShiftAction:
		return a.State == b.State
	case ReduceAction:
		return a.Rule == b.Rule
	}
	return true
}

func (a Action) String() string {
	switch a.Kind {
	case ShiftAction:
		return fmt.Sprintf("s%d", a.State)
	case ReduceAction:
		return fmt.Sprintf("r%d", a.Rule.Serial)
	case AcceptAction:
		return "acc"
	}
	return "<none>"
}

// Describe returns a verbose form of the action, e.g. "reduce E → E + T".
func (a Action) Describe() string {
	switch a.Kind {
	case ShiftAction:
		return fmt.Sprintf("shift %d", a.State)
	case ReduceAction:
		return fmt.Sprintf("reduce %v", a.Rule)
	case AcceptAction:
		return "accept"
	}
	return "<none>"
}

// Actions are stored in sparse matrices as (n << 2 | kind), with n being
// the target state for shifts and the rule serial for reduces.
func (a Action) encode() int32 {
	switch a.Kind {
	case ShiftAction:
		return int32(a.State)<<2 | int32(ShiftAction)
	case ReduceAction:
		return int32(a.Rule.Serial)<<2 | int32(ReduceAction)
	case AcceptAction:
		return int32(AcceptAction)
	}
	return sparse.DefaultNullValue
}

func decodeAction(g *Grammar, v int32) Action {
	if v == sparse.DefaultNullValue {
		return Action{}
	}
	switch ActionKind(v & 3) {
	case ShiftAction:
		return Shift(int(v >> 2))
	case ReduceAction:
		return Reduce(g.Rule(int(v >> 2)))
	case AcceptAction:
		return Accept()
	}
	return Action{}
}

// === Conflicts =============================================================

// ConflictKind classifies table conflicts.
type ConflictKind uint8

// Kinds of conflicts.
const (
	ShiftReduce ConflictKind = iota + 1
	ReduceReduce
	ShiftShift
	AcceptOther
)

func (k ConflictKind) String() string {
	switch k {
	case ShiftReduce:
		return "shift-reduce"
	case ReduceReduce:
		return "reduce-reduce"
	case ShiftShift:
		return "shift-shift"
	case AcceptOther:
		return "accept-other"
	}
	return "unknown"
}

// Conflict records a rejected ACTION table proposal. Installed is the action
// which occupied cell (State, Symbol) first and therefore stays in the table.
// Every rejected proposal is recorded: if several items of a state propose
// the same action for a cell, the conflict list holds identical entries.
type Conflict struct {
	State     int
	Symbol    *Symbol
	Kind      ConflictKind
	Installed Action
	Rejected  Action
}

func (c Conflict) String() string {
	return fmt.Sprintf("%s conflict in state %d on %s: keeping %s, rejecting %s",
		c.Kind, c.State, c.Symbol, c.Installed.Describe(), c.Rejected.Describe())
}

func classifyConflict(installed, proposed Action) ConflictKind {
	switch {
	case installed.Kind == AcceptAction || proposed.Kind == AcceptAction:
		return AcceptOther
	case installed.Kind == ShiftAction && proposed.Kind == ShiftAction:
		return ShiftShift
	case installed.Kind == ReduceAction && proposed.Kind == ReduceAction:
		return ReduceReduce
	}
	return ShiftReduce
}

// === Tables ================================================================

// ActionTable is the ACTION table of an LR(1) parser, mapping
// (state, terminal) to at most one action. It is read-only once built.
type ActionTable struct {
	g      *Grammar
	matrix *sparse.IntMatrix
}

// ActionEntry is a non-empty cell of the ACTION table.
type ActionEntry struct {
	State  int
	Symbol *Symbol
	Action Action
}

// Action returns the action for state and terminal A, if any.
func (t *ActionTable) Action(state int, A *Symbol) (Action, bool) {
	if A == nil || state < 0 || state >= t.matrix.M() {
		return Action{}, false
	}
	a := decodeAction(t.g, t.matrix.Value(state, A.Value))
	return a, !a.IsNull()
}

// Expected returns the terminals which have an action in the given state,
// ordered by name.
func (t *ActionTable) Expected(state int) []*Symbol {
	if state < 0 || state >= t.matrix.M() {
		return nil
	}
	row := t.matrix.Row(state)
	T := make([]*Symbol, 0, len(row))
	for _, e := range row {
		T = append(T, t.g.SymbolByValue(e.Col))
	}
	sortSymbolsByName(T)
	return T
}

// Entries returns all non-empty cells, ordered by state and symbol value.
func (t *ActionTable) Entries() []ActionEntry {
	E := make([]ActionEntry, 0, t.matrix.ValueCount())
	t.matrix.Each(func(i, j int, v int32) {
		E = append(E, ActionEntry{State: i, Symbol: t.g.SymbolByValue(j), Action: decodeAction(t.g, v)})
	})
	return E
}

// States returns the number of rows of the table.
func (t *ActionTable) States() int {
	return t.matrix.M()
}

// Size returns the number of non-empty cells.
func (t *ActionTable) Size() int {
	return t.matrix.ValueCount()
}

func (t *ActionTable) set(state int, A *Symbol, a Action) {
	t.matrix.Set(state, A.Value, a.encode())
}

// GotoTable is the GOTO table of an LR(1) parser, mapping
// (state, non-terminal) to a state. It is read-only once built.
type GotoTable struct {
	g      *Grammar
	matrix *sparse.IntMatrix
}

// Goto returns the target state for state and non-terminal A, if any.
func (t *GotoTable) Goto(state int, A *Symbol) (int, bool) {
	if A == nil || state < 0 || state >= t.matrix.M() {
		return 0, false
	}
	v := t.matrix.Value(state, A.Value)
	if v == t.matrix.NullValue() {
		return 0, false
	}
	return int(v), true
}

// Entries returns all non-empty cells, ordered by state and symbol value.
func (t *GotoTable) Entries() []Transition {
	E := make([]Transition, 0, t.matrix.ValueCount())
	t.matrix.Each(func(i, j int, v int32) {
		E = append(E, Transition{From: i, Symbol: t.g.SymbolByValue(j), To: int(v)})
	})
	return E
}

// States returns the number of rows of the table.
func (t *GotoTable) States() int {
	return t.matrix.M()
}

// Size returns the number of non-empty cells.
func (t *GotoTable) Size() int {
	return t.matrix.ValueCount()
}

// === Table Generator =======================================================

// TableGenerator is a generator object to construct LR(1) parser tables.
// Clients usually create a Grammar G, then a LRAnalysis-object for G,
// and then a table generator. TableGenerator.CreateTables() constructs
// the CFSM and parser tables for an LR-parser recognizing grammar G.
type TableGenerator struct {
	g            *Grammar
	ga           *LRAnalysis
	dfa          *CFSM
	gototable    *GotoTable
	actiontable  *ActionTable
	conflicts    []Conflict
	HasConflicts bool
}

// NewTableGenerator creates a new TableGenerator for a (previously analysed) grammar.
func NewTableGenerator(ga *LRAnalysis) *TableGenerator {
	lrgen := &TableGenerator{}
	lrgen.g = ga.Grammar()
	lrgen.ga = ga
	return lrgen
}

// Grammar returns the grammar the tables are generated for.
func (lrgen *TableGenerator) Grammar() *Grammar {
	return lrgen.g
}

// CFSM returns the characteristic finite state machine (CFSM) for a grammar.
// Usually clients call lrgen.CreateTables() beforehand, but it is possible
// to call lrgen.CFSM() directly. The CFSM will be created, if it has not
// been constructed previously.
func (lrgen *TableGenerator) CFSM() *CFSM {
	if lrgen.dfa == nil {
		lrgen.dfa = lrgen.ga.BuildCFSM()
	}
	return lrgen.dfa
}

// GotoTable returns the GOTO table for LR-parsing a grammar. The tables have to be
// built by calling CreateTables() previously (or a separate call to
// BuildGotoTable().)
func (lrgen *TableGenerator) GotoTable() *GotoTable {
	if lrgen.gototable == nil {
		tracer().P("lr", "gen").Errorf("tables not yet initialized")
	}
	return lrgen.gototable
}

// ActionTable returns the ACTION table for LR-parsing a grammar. The tables have to be
// built by calling CreateTables() previously (or a separate call to
// BuildActionTable().)
func (lrgen *TableGenerator) ActionTable() *ActionTable {
	if lrgen.actiontable == nil {
		tracer().P("lr", "gen").Errorf("tables not yet initialized")
	}
	return lrgen.actiontable
}

// Conflicts returns the conflicts found during construction of the ACTION table.
func (lrgen *TableGenerator) Conflicts() []Conflict {
	return append([]Conflict(nil), lrgen.conflicts...)
}

// CreateTables creates the necessary data structures for an LR(1) parser.
func (lrgen *TableGenerator) CreateTables() {
	lrgen.dfa = lrgen.CFSM()
	lrgen.gototable = lrgen.BuildGotoTable()
	lrgen.actiontable, lrgen.conflicts = lrgen.BuildActionTable()
	lrgen.HasConflicts = len(lrgen.conflicts) > 0
	if lrgen.HasConflicts {
		tracer().Infof("grammar %s: %d table conflicts", lrgen.g.Name, len(lrgen.conflicts))
	}
}

// BuildGotoTable builds the GOTO table from the non-terminal transitions of
// the CFSM. This is normally not called directly, but rather via CreateTables().
func (lrgen *TableGenerator) BuildGotoTable() *GotoTable {
	dfa := lrgen.CFSM()
	tracer().Infof("GOTO table of size %d x %d", dfa.Size(), lrgen.g.NumberOfSymbols())
	gototable := &GotoTable{
		g:      lrgen.g,
		matrix: sparse.NewIntMatrix(dfa.Size(), lrgen.g.NumberOfSymbols(), sparse.DefaultNullValue),
	}
	for _, t := range dfa.Transitions() {
		if !t.Symbol.IsTerminal() {
			gototable.matrix.Set(t.From, t.Symbol.Value, int32(t.To))
		}
	}
	return gototable
}

// BuildActionTable constructs the LR(1) ACTION table. This method is normally not called
// by clients, but rather via CreateTables().
//
// For building an ACTION table we iterate over all the states of the CFSM.
// An inner loop iterates over all the LR(1) items within a CFSM-state, in
// canonical order:
//
// - [A → α • a β, b] with a terminal a proposes shift goto(s, a) on a
//
// - [S' → S •, $] proposes accept on $
//
// - [A → α •, a] with A ≠ S' proposes reduce A → α on a
//
// The first action proposed for a cell is installed. Every later, different
// proposal for the same cell is rejected and recorded as a Conflict.
func (lrgen *TableGenerator) BuildActionTable() (*ActionTable, []Conflict) {
	dfa := lrgen.CFSM()
	tracer().Infof("ACTION table of size %d x %d", dfa.Size(), lrgen.g.NumberOfSymbols())
	actions := &ActionTable{
		g:      lrgen.g,
		matrix: sparse.NewIntMatrix(dfa.Size(), lrgen.g.NumberOfSymbols(), sparse.DefaultNullValue),
	}
	var conflicts []Conflict
	propose := func(state int, A *Symbol, a Action) {
		installed, ok := actions.Action(state, A)
		if !ok {
			actions.set(state, A, a)
			return
		}
		if installed.Equal(a) {
			return
		}
		c := Conflict{
			State:     state,
			Symbol:    A,
			Kind:      classifyConflict(installed, a),
			Installed: installed,
			Rejected:  a,
		}
		tracer().Infof("%v", c)
		conflicts = append(conflicts, c)
	}
	for _, state := range dfa.byID {
		tracer().Debugf("--- state %d --------------------------------", state.ID)
		for _, i := range state.items.items { // items are sorted
			A := i.PeekSymbol()
			switch {
			case A != nil && A.IsTerminal():
				if to, ok := dfa.Goto(state.ID, A); ok {
					propose(state.ID, A, Shift(to))
				}
			case A != nil: // non-terminal after dot
			case i.rule.Serial == 0:
				if i.la.IsEndMarker() {
					propose(state.ID, i.la, Accept())
				}
			default:
				propose(state.ID, i.la, Reduce(i.rule))
			}
		}
	}
	return actions, conflicts
}

// === Export ================================================================

// GotoTableAsHTML exports a GOTO-table in HTML-format.
func GotoTableAsHTML(lrgen *TableGenerator, w io.Writer) error {
	if lrgen.gototable == nil {
		return fmt.Errorf("GOTO table not yet created, cannot export to HTML")
	}
	return parserTableAsHTML(lrgen, "GOTO", lrgen.g.NonTerminals(), func(s int, A *Symbol) string {
		if to, ok := lrgen.gototable.Goto(s, A); ok {
			return fmt.Sprintf("%d", to)
		}
		return ""
	}, w)
}

// ActionTableAsHTML exports the ACTION-table in HTML-format.
func ActionTableAsHTML(lrgen *TableGenerator, w io.Writer) error {
	if lrgen.actiontable == nil {
		return fmt.Errorf("ACTION table not yet created, cannot export to HTML")
	}
	return parserTableAsHTML(lrgen, "ACTION", lrgen.g.Terminals(), func(s int, A *Symbol) string {
		if a, ok := lrgen.actiontable.Action(s, A); ok {
			return a.String()
		}
		return ""
	}, w)
}

func parserTableAsHTML(lrgen *TableGenerator, tname string, symvec []*Symbol,
	cell func(int, *Symbol) string, w io.Writer) error {
	//
	var b strings.Builder
	b.WriteString("<html><body>\n")
	b.WriteString(fmt.Sprintf("%s table for grammar %s<p>", tname, html.EscapeString(lrgen.g.Name)))
	b.WriteString("<table border=1 cellspacing=0 cellpadding=5>\n")
	b.WriteString("<tr bgcolor=#cccccc><td></td>\n")
	for _, A := range symvec {
		b.WriteString(fmt.Sprintf("<td>%s</td>", html.EscapeString(A.Name)))
	}
	b.WriteString("</tr>\n")
	for _, state := range lrgen.dfa.byID {
		b.WriteString(fmt.Sprintf("<tr><td>state %d</td>\n", state.ID))
		for _, A := range symvec {
			td := cell(state.ID, A)
			if td == "" {
				td = "&nbsp;"
			}
			b.WriteString("<td>")
			b.WriteString(td)
			b.WriteString("</td>\n")
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</table></body></html>\n")
	_, err := io.WriteString(w, b.String())
	return err
}

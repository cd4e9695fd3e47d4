package lr

import (
	"bytes"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tablesFor(t *testing.T, g *Grammar) *TableGenerator {
	lrgen := NewTableGenerator(analyse(t, g))
	lrgen.CreateTables()
	return lrgen
}

func names(syms []*Symbol) []string {
	n := make([]string, len(syms))
	for i, A := range syms {
		n[i] = A.Name
	}
	return n
}

func TestExpressionTables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.lr")
	defer teardown()
	//
	g := exprGrammar(t)
	lrgen := tablesFor(t, g)
	assert := assert.New(t)
	assert.False(lrgen.HasConflicts)
	assert.Empty(lrgen.Conflicts())
	A, G := lrgen.ActionTable(), lrgen.GotoTable()
	a, ok := A.Action(0, g.SymbolByName("id"))
	assert.True(ok)
	assert.Equal(Shift(5), a)
	a, _ = A.Action(0, g.SymbolByName("("))
	assert.Equal(Shift(4), a)
	a, _ = A.Action(1, g.EndMarker())
	assert.Equal(AcceptAction, a.Kind)
	a, _ = A.Action(1, g.SymbolByName("+"))
	assert.Equal("s6", a.String())
	a, _ = A.Action(5, g.SymbolByName("*"))
	assert.Equal(ReduceAction, a.Kind)
	assert.Equal("F → id", a.Rule.String())
	_, ok = A.Action(0, g.SymbolByName(")"))
	assert.False(ok)
	for i, name := range []string{"E", "T", "F"} {
		to, ok := G.Goto(0, g.SymbolByName(name))
		assert.True(ok)
		assert.Equal(i+1, to)
	}
	_, ok = G.Goto(1, g.SymbolByName("E"))
	assert.False(ok)
	assert.Equal([]string{"(", "id"}, names(A.Expected(0)))
	assert.Equal([]string{"$", "+"}, names(A.Expected(1)))
	assert.Equal([]string{"$", "*", "+"}, names(A.Expected(5)))
	assert.Equal(lrgen.CFSM().Size(), A.States())
}

func TestGotoTableHoldsNonTerminalsOnly(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.lr")
	defer teardown()
	//
	lrgen := tablesFor(t, exprGrammar(t))
	n := 0
	for _, tr := range lrgen.CFSM().Transitions() {
		if !tr.Symbol.IsTerminal() {
			n++
		}
	}
	for _, e := range lrgen.GotoTable().Entries() {
		assert.False(t, e.Symbol.IsTerminal())
	}
	assert.Equal(t, n, lrgen.GotoTable().Size())
}

func TestActionTableNeverHoldsEpsilon(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.lr")
	defer teardown()
	//
	lrgen := tablesFor(t, parensGrammar(t))
	for _, e := range lrgen.ActionTable().Entries() {
		assert.True(t, e.Symbol.IsTerminal(), "ACTION[%d,%s]", e.State, e.Symbol)
	}
	g := lrgen.Grammar()
	a, ok := lrgen.ActionTable().Action(0, g.EndMarker())
	require.True(t, ok)
	assert.Equal(t, "S → ε", a.Rule.String())
}

func TestTableBuildIsIdempotent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.lr")
	defer teardown()
	//
	lrgen := tablesFor(t, exprGrammar(t))
	a1, c1 := lrgen.BuildActionTable()
	a2, c2 := lrgen.BuildActionTable()
	assert.Equal(t, a1.Entries(), a2.Entries())
	assert.Equal(t, c1, c2)
	assert.Equal(t, lrgen.BuildGotoTable().Entries(), lrgen.GotoTable().Entries())
}

func TestReduceReduceConflict(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("RR")
	b.LHS("S").N("A").End()
	b.LHS("S").N("B").End()
	b.LHS("A").T("x").End()
	b.LHS("B").T("x").End()
	g, err := b.Grammar()
	require.NoError(t, err)
	lrgen := tablesFor(t, g)
	require.True(t, lrgen.HasConflicts)
	C := lrgen.Conflicts()
	require.Len(t, C, 1)
	assert.Equal(t, ReduceReduce, C[0].Kind)
	assert.Equal(t, "$", C[0].Symbol.Name)
	assert.Equal(t, "A → x", C[0].Installed.Rule.String())
	assert.Equal(t, "B → x", C[0].Rejected.Rule.String())
	a, ok := lrgen.ActionTable().Action(C[0].State, g.EndMarker())
	require.True(t, ok)
	assert.True(t, a.Equal(C[0].Installed), "first proposal has to win")
	assert.Contains(t, C[0].String(), "reduce-reduce conflict")
}

func TestShiftReduceConflict(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("Ambiguous")
	b.LHS("E").N("E").T("+").N("E").End()
	b.LHS("E").T("id").End()
	g, err := b.Grammar()
	require.NoError(t, err)
	lrgen := tablesFor(t, g)
	require.True(t, lrgen.HasConflicts)
	for _, c := range lrgen.Conflicts() {
		assert.Equal(t, ShiftReduce, c.Kind)
		assert.Equal(t, "+", c.Symbol.Name)
		assert.Equal(t, ShiftAction, c.Installed.Kind)
		assert.Equal(t, ReduceAction, c.Rejected.Kind)
	}
}

func TestConflictClassification(t *testing.T) {
	g := exprGrammar(t)
	r1, r2 := Reduce(g.Rule(1)), Reduce(g.Rule(2))
	assert.Equal(t, ShiftShift, classifyConflict(Shift(1), Shift(2)))
	assert.Equal(t, ShiftReduce, classifyConflict(Shift(1), r1))
	assert.Equal(t, ShiftReduce, classifyConflict(r1, Shift(1)))
	assert.Equal(t, ReduceReduce, classifyConflict(r1, r2))
	assert.Equal(t, AcceptOther, classifyConflict(Accept(), r1))
	assert.Equal(t, AcceptOther, classifyConflict(Shift(3), Accept()))
}

func TestActionEncoding(t *testing.T) {
	g := exprGrammar(t)
	for _, a := range []Action{Shift(0), Shift(17), Reduce(g.Rule(0)), Reduce(g.Rule(6)), Accept()} {
		assert.Equal(t, a, decodeAction(g, a.encode()))
	}
	assert.True(t, decodeAction(g, Action{}.encode()).IsNull())
}

func TestTablesAsHTML(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.lr")
	defer teardown()
	//
	lrgen := tablesFor(t, exprGrammar(t))
	var buf bytes.Buffer
	require.NoError(t, ActionTableAsHTML(lrgen, &buf))
	assert.Contains(t, buf.String(), "<td>acc</td>")
	buf.Reset()
	require.NoError(t, GotoTableAsHTML(lrgen, &buf))
	assert.Contains(t, buf.String(), "GOTO table")
	assert.Error(t, ActionTableAsHTML(NewTableGenerator(analyse(t, exprGrammar(t))), &buf))
}

func TestRepeatedProposalsAreRecorded(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.lr")
	defer teardown()
	//
	g, err := NewGrammar("DanglingElse", "S", []RuleSpec{
		{LHS: "S", RHS: []string{"if", "S"}},
		{LHS: "S", RHS: []string{"if", "S", "else", "S"}},
		{LHS: "S", RHS: []string{"x"}},
	})
	require.NoError(t, err)
	lrgen := tablesFor(t, g)
	repeated := make(map[Conflict]int)
	for _, c := range lrgen.Conflicts() {
		assert.Equal(t, "else", c.Symbol.Name)
		assert.Equal(t, ShiftReduce, c.Kind)
		assert.Equal(t, ReduceAction, c.Installed.Kind)
		repeated[c]++
	}
	found := false
	for _, n := range repeated {
		found = found || n > 1
	}
	assert.True(t, found, "expected identical conflict entries, got %v", lrgen.Conflicts())
}

package lr1

import (
	"context"
	"errors"
	"testing"

	"github.com/npillmayer/lrgen/lr"
	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeParser(t *testing.T, b *lr.GrammarBuilder) (*Parser, *lr.TableGenerator) {
	g, err := b.Grammar()
	require.NoError(t, err)
	ga, err := lr.Analysis(g)
	require.NoError(t, err)
	lrgen := lr.NewTableGenerator(ga)
	lrgen.CreateTables()
	return NewParser(g, lrgen.GotoTable(), lrgen.ActionTable()), lrgen
}

func exprParser(t *testing.T) *Parser {
	b := lr.NewGrammarBuilder("Expr")
	b.LHS("E").N("E").T("+").N("T").End()
	b.LHS("E").N("T").End()
	b.LHS("T").N("T").T("*").N("F").End()
	b.LHS("T").N("F").End()
	b.LHS("F").T("(").N("E").T(")").End()
	b.LHS("F").T("id").End()
	p, lrgen := makeParser(t, b)
	require.False(t, lrgen.HasConflicts)
	return p
}

func parensParser(t *testing.T) *Parser {
	b := lr.NewGrammarBuilder("Parens")
	b.LHS("S").T("(").N("S").T(")").N("S").End()
	b.LHS("S").Epsilon()
	p, lrgen := makeParser(t, b)
	require.False(t, lrgen.HasConflicts)
	return p
}

func TestParseSingleId(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.parser")
	defer teardown()
	//
	p := exprParser(t)
	res, err := p.Parse([]string{"id"})
	require.NoError(t, err)
	assert.Equal(t, "E(T(F(id)))", res.Tree.String())
	assert.Equal(t, []string{"F → id", "T → F", "E → T"}, res.DerivationSteps())
}

func TestParseExpression(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.parser")
	defer teardown()
	//
	p := exprParser(t)
	input := []string{"id", "+", "id", "*", "id"}
	res, err := p.Parse(input)
	require.NoError(t, err)
	assert.Equal(t, "E(E(T(F(id))) + T(T(F(id)) * F(id)))", res.Tree.String())
	assert.Equal(t, []string{
		"F → id", "T → F", "E → T",
		"F → id", "T → F",
		"F → id", "T → T * F",
		"E → E + T",
	}, res.DerivationSteps())
	assert.Equal(t, input, res.Tree.Leaves())
	assert.Equal(t, uint64(0), res.Tree.Span.From())
	assert.Equal(t, uint64(5), res.Tree.Span.To())
	mul := res.Tree.Children[2]
	assert.Equal(t, "T", mul.Symbol.Name)
	assert.Equal(t, uint64(2), mul.Span.From())
}

func TestParseNested(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.parser")
	defer teardown()
	//
	p := exprParser(t)
	res, err := p.Parse([]string{"(", "id", "+", "id", ")", "*", "id"})
	require.NoError(t, err)
	assert.Equal(t, "E(T(T(F(( E(E(T(F(id))) + T(F(id))) ))) * F(id)))", res.Tree.String())
}

func TestParseUnexpectedEndOfInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.parser")
	defer teardown()
	//
	p := exprParser(t)
	res, err := p.Parse([]string{"id", "+"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnexpectedToken))
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, UnexpectedToken, perr.Kind)
	assert.Equal(t, "$", perr.Token)
	assert.Equal(t, 2, perr.Position)
	assert.Equal(t, []string{"(", "id"}, perr.Expected)
	assert.False(t, perr.IsInternal())
	assert.Nil(t, res.Tree)
	assert.Equal(t, []string{"F → id", "T → F", "E → T"}, res.DerivationSteps())
}

func TestParseUnclosedParen(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.parser")
	defer teardown()
	//
	p := exprParser(t)
	_, err := p.Parse([]string{"(", "id"})
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, UnexpectedToken, perr.Kind)
	assert.Equal(t, "$", perr.Token)
	assert.ElementsMatch(t, []string{")", "*", "+"}, perr.Expected)
}

func TestParseInvalidInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.parser")
	defer teardown()
	//
	p := exprParser(t)
	for _, tc := range []struct {
		input   []string
		problem InputProblem
		pos     int
	}{
		{nil, EmptyInput, 0},
		{[]string{"id", ""}, EmptyToken, 1},
		{[]string{"id", "$"}, EndMarkerToken, 1},
		{[]string{"id", "-", "id"}, UnknownToken, 1},
		{[]string{"E"}, UnknownToken, 0},
	} {
		res, err := p.Parse(tc.input)
		require.Error(t, err, "input %v", tc.input)
		assert.True(t, errors.Is(err, ErrInvalidInput))
		var perr *ParseError
		require.True(t, errors.As(err, &perr))
		assert.Equal(t, InvalidInputToken, perr.Kind)
		assert.Equal(t, tc.problem, perr.Problem, "input %v", tc.input)
		assert.Equal(t, tc.pos, perr.Position, "input %v", tc.input)
		assert.Empty(t, res.Derivation)
	}
}

func TestBalancedParens(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.parser")
	defer teardown()
	//
	p := parensParser(t)
	for _, tc := range []struct {
		input  []string
		accept bool
	}{
		{[]string{}, true},
		{[]string{"(", ")"}, true},
		{[]string{"(", ")", "(", ")"}, true},
		{[]string{"(", "(", ")", ")"}, true},
		{[]string{"(", "(", ")"}, false},
		{[]string{"(", ")", ")", "("}, false},
	} {
		res, err := p.Parse(tc.input)
		if tc.accept {
			assert.NoError(t, err, "input %v", tc.input)
			if assert.NotNil(t, res.Tree) {
				assert.Equal(t, "S", res.Tree.Symbol.Name)
			}
		} else {
			assert.True(t, errors.Is(err, ErrUnexpectedToken), "input %v", tc.input)
		}
	}
}

func TestEpsilonDerivation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.parser")
	defer teardown()
	//
	p := parensParser(t)
	res, err := p.Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, "S(ε)", res.Tree.String())
	assert.Equal(t, []string{"S → ε"}, res.DerivationSteps())
	assert.False(t, res.Tree.IsLeaf())
	res, err = p.Parse([]string{"(", ")"})
	require.NoError(t, err)
	assert.Equal(t, "S(( S(ε) ) S(ε))", res.Tree.String())
	assert.Equal(t, []string{"S → ε", "S → ε", "S → ( S ) S"}, res.DerivationSteps())
	_, err = p.Parse([]string{"(", ")", ")", "("})
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, ")", perr.Token)
	assert.Equal(t, 2, perr.Position)
}

func TestReduceReduceFirstWins(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.parser")
	defer teardown()
	//
	b := lr.NewGrammarBuilder("RR")
	b.LHS("S").N("A").End()
	b.LHS("S").N("B").End()
	b.LHS("A").T("x").End()
	b.LHS("B").T("x").End()
	p, lrgen := makeParser(t, b)
	require.True(t, lrgen.HasConflicts)
	res, err := p.Parse([]string{"x"})
	require.NoError(t, err)
	assert.Equal(t, []string{"A → x", "S → A"}, res.DerivationSteps())
}

func TestReplayReproducesTree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.parser")
	defer teardown()
	//
	p := exprParser(t)
	for _, input := range [][]string{
		{"id"},
		{"id", "+", "id", "*", "id"},
		{"(", "(", "id", ")", ")", "*", "(", "id", "+", "id", ")"},
	} {
		res, err := p.Parse(input)
		require.NoError(t, err)
		tree, err := Replay(res.Moves)
		require.NoError(t, err)
		assert.True(t, tree.Equal(res.Tree), "replayed tree differs for %v", input)
		assert.Equal(t, input, tree.Leaves())
		assert.Equal(t, res.Tree.Span, tree.Span)
	}
	_, err := Replay(nil)
	assert.Error(t, err)
}

func TestMissingGotoIsInternal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.parser")
	defer teardown()
	//
	p := exprParser(t)
	b := lr.NewGrammarBuilder("Tiny")
	b.LHS("S").T("x").End()
	tiny, _ := makeParser(t, b)
	broken := NewParser(p.G, tiny.gotoT, p.actionT)
	_, err := broken.Parse([]string{"id"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInternal))
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, MissingGoto, perr.Kind)
	assert.Equal(t, "F", perr.Symbol)
	assert.True(t, perr.IsInternal())
}

func TestPanicOnMissingGoto(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.parser")
	defer teardown()
	//
	p := exprParser(t)
	b := lr.NewGrammarBuilder("Tiny")
	b.LHS("S").T("x").End()
	tiny, _ := makeParser(t, b)
	broken := NewParser(p.G, tiny.gotoT, p.actionT)
	gconf.Initialize(testconfig.Conf{"panic-on-missing-goto": true})
	defer gconf.Initialize(testconfig.Conf{})
	assert.Panics(t, func() { broken.Parse([]string{"id"}) })
}

func TestUninitializedParser(t *testing.T) {
	p := &Parser{}
	_, err := p.Parse([]string{"id"})
	assert.Equal(t, ErrNotInitialized, err)
}

func TestParseAll(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.parser")
	defer teardown()
	//
	p := exprParser(t)
	inputs := [][]string{
		{"id"},
		{"id", "+"},
		{"id", "*", "id"},
		{"(", "id"},
		{"id", "+", "id"},
	}
	outcomes, err := ParseAll(context.Background(), p, inputs, 2)
	require.NoError(t, err)
	require.Len(t, outcomes, len(inputs))
	for i, ok := range []bool{true, false, true, false, true} {
		if ok {
			assert.NoError(t, outcomes[i].Err, "input #%d", i)
			assert.Equal(t, inputs[i], outcomes[i].Result.Tree.Leaves())
		} else {
			assert.True(t, errors.Is(outcomes[i].Err, ErrUnexpectedToken), "input #%d", i)
		}
	}
}

func TestParseAllCancelled(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.parser")
	defer teardown()
	//
	p := exprParser(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ParseAll(ctx, p, [][]string{{"id"}, {"id"}}, 0)
	assert.True(t, errors.Is(err, context.Canceled))
}

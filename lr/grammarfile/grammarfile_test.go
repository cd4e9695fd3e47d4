package grammarfile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/lrgen/lr"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exprRules = `
# expressions
E -> E + T | T
T -> T * F | F
F -> ( E ) | id
`

func ruleStrings(g *lr.Grammar) []string {
	var s []string
	for _, r := range g.Rules() {
		s = append(s, r.String())
	}
	return s
}

func TestReadRules(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.grammar")
	defer teardown()
	//
	g, err := ParseRules("Expr", strings.NewReader(exprRules))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"E' → E",
		"E → E + T", "E → T",
		"T → T * F", "T → F",
		"F → ( E )", "F → id",
	}, ruleStrings(g))
	assert.Equal(t, "E", g.Start().Name)
}

func TestReadRulesEpsilon(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.grammar")
	defer teardown()
	//
	for _, src := range []string{
		"S -> ( S ) S | ε",
		"S → ( S ) S | epsilon",
		"S ::= ( S ) S |",
	} {
		g, err := ParseRules("Parens", strings.NewReader(src))
		require.NoError(t, err, src)
		assert.Equal(t, []string{"S' → S", "S → ( S ) S", "S → ε"}, ruleStrings(g), src)
	}
}

func TestReadRulesSyntaxError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.grammar")
	defer teardown()
	//
	_, _, err := ReadRules(strings.NewReader("S -> a\n\nS a b\n"))
	var serr *SyntaxError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, 3, serr.Line)
	_, _, err = ReadRules(strings.NewReader("A B -> a\n"))
	assert.True(t, errors.As(err, &serr))
}

const exprTOML = `
name  = "expressions"
start = "E"
terminals = ["+", "*", "(", ")", "id"]

[[rule]]
lhs = "E"
rhs = ["E + T", "T"]

[[rule]]
lhs = "T"
rhs = ["T * F", "F"]

[[rule]]
lhs = "F"
rhs = ["( E )", "id"]

[[class]]
terminal = "id"
pattern  = "[a-z]+"
`

func TestDecodeTOML(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.grammar")
	defer teardown()
	//
	f, err := DecodeTOML(strings.NewReader(exprTOML))
	require.NoError(t, err)
	assert.Equal(t, "expressions", f.Name)
	g, err := f.Grammar()
	require.NoError(t, err)
	assert.Equal(t, 7, g.Size())
	classes := f.TokenClasses()
	require.Len(t, classes, 1)
	assert.Equal(t, "id", classes[0].Terminal)
}

func TestTOMLUndeclaredTerminal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.grammar")
	defer teardown()
	//
	f, err := DecodeTOML(strings.NewReader(`
terminals = ["a"]
[[rule]]
lhs = "S"
rhs = ["a b"]
`))
	require.NoError(t, err)
	_, err = f.Grammar()
	var gerr *lr.GrammarError
	require.True(t, errors.As(err, &gerr))
	assert.Equal(t, lr.UndefinedSymbol, gerr.Kind)
	assert.Equal(t, "b", gerr.Symbol)
}

func TestReadEBNF(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.grammar")
	defer teardown()
	//
	src := `
List  = "[" [ Items ] "]" .
Items = Item { "," Item } .
Item  = "x" | List .
`
	g, err := ReadEBNF("list.ebnf", strings.NewReader(src), "")
	require.NoError(t, err)
	assert.Equal(t, "List", g.Start().Name)
	assert.Equal(t, []string{
		"List' → List",
		"List_opt1 → Items", "List_opt1 → ε",
		"List → [ List_opt1 ]",
		"Items_rep1 → Items_rep1 , Item", "Items_rep1 → ε",
		"Items → Item Items_rep1",
		"Item → x", "Item → List",
	}, ruleStrings(g))
}

func TestReadEBNFGroups(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.grammar")
	defer teardown()
	//
	src := `Sum = "n" ( "+" | "-" ) "n" .`
	g, err := ReadEBNF("sum.ebnf", strings.NewReader(src), "Sum")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Sum' → Sum",
		"Sum_grp1 → +", "Sum_grp1 → -",
		"Sum → n Sum_grp1 n",
	}, ruleStrings(g))
}

func TestReadEBNFRejectsRanges(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.grammar")
	defer teardown()
	//
	_, err := ReadEBNF("digit.ebnf", strings.NewReader(`Digit = "0" … "9" .`), "")
	assert.Error(t, err)
}

func TestLoadByExtension(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.grammar")
	defer teardown()
	//
	dir := t.TempDir()
	files := map[string]string{
		"expr.txt":  exprRules,
		"expr.toml": exprTOML,
		"expr.ebnf": `E = T { "+" T } . T = "id" .`,
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		g, classes, err := Load(path, "")
		require.NoError(t, err, name)
		assert.Equal(t, "E", g.Start().Name, name)
		if name == "expr.toml" {
			assert.Len(t, classes, 1)
		} else {
			assert.Empty(t, classes)
		}
	}
	_, _, err := Load(filepath.Join(dir, "missing.txt"), "")
	assert.Error(t, err)
}

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exprTOML = `
name  = "expressions"
start = "E"

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

func setupGrammar(t *testing.T, name, content string) {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	*rootFlags.grammar = path
	*rootFlags.start = ""
	color.NoColor = true
}

func TestTables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.lr", "lrgen.grammar")
	defer teardown()
	//
	setupGrammar(t, "expr.toml", exprTOML)
	p, _, err := loadPipeline()
	require.NoError(t, err)
	var out bytes.Buffer
	require.NoError(t, printTables(&out, p, tableOptions{items: true}))
	assert.Contains(t, out.String(), "Grammar expressions")
	assert.Contains(t, out.String(), "State 0:")
	assert.Contains(t, out.String(), "grammar is LR(1)")
}

func TestTablesWithConflicts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.lr", "lrgen.grammar")
	defer teardown()
	//
	setupGrammar(t, "ambiguous.txt", "E -> E + E | id\n")
	p, _, err := loadPipeline()
	require.NoError(t, err)
	var out bytes.Buffer
	require.NoError(t, printTables(&out, p, tableOptions{}))
	assert.Contains(t, out.String(), "shift-reduce conflict")
}

func TestParseAndPrint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.lr", "lrgen.parser", "lrgen.scanner")
	defer teardown()
	//
	setupGrammar(t, "expr.toml", exprTOML)
	p, tok, err := loadPipeline()
	require.NoError(t, err)
	terminals, err := tokenize(tok, "a + b*c")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "+", "id", "*", "id"}, terminals)
	var out bytes.Buffer
	assert.True(t, parseAndPrint(&out, p, terminals, true))
	assert.Contains(t, out.String(), "accepted")
	assert.Contains(t, out.String(), "E → E + T")
	//
	out.Reset()
	assert.False(t, parseAndPrint(&out, p, []string{"id", "+"}, false))
	assert.Contains(t, out.String(), "rejected")
}

func TestREPLEval(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.lr", "lrgen.parser", "lrgen.scanner")
	defer teardown()
	//
	setupGrammar(t, "parens.txt", "S -> ( S ) S | ε\n")
	p, tok, err := loadPipeline()
	require.NoError(t, err)
	var out bytes.Buffer
	intp := &Intp{pipeline: p, tokenizer: tok, out: &out}
	assert.False(t, intp.Eval("(())"))
	assert.Contains(t, out.String(), "accepted")
	out.Reset()
	assert.False(t, intp.Eval(":grammar"))
	assert.Contains(t, out.String(), "S → ( S ) S")
	assert.True(t, intp.Eval(":quit"))
}

func TestMissingGrammarFlag(t *testing.T) {
	*rootFlags.grammar = ""
	_, _, err := loadPipeline()
	assert.Error(t, err)
}

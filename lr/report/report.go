/*
Package report formats the artifacts of LR(1) parser construction and
parsing for humans: item sets, transitions, ACTION/GOTO tables, conflicts,
FIRST/FOLLOW sets, parse trees and derivations.

All functions are pure formatting functions; none of them changes the
objects handed in. Table-like output is rendered with pterm.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/lrgen/lr"
	"github.com/npillmayer/lrgen/lr/lr1"
	"github.com/pterm/pterm"
)

// ItemSets lists the item sets of all CFSM states.
func ItemSets(cfsm *lr.CFSM) string {
	var b strings.Builder
	for _, s := range cfsm.States() {
		if s.Accept {
			fmt.Fprintf(&b, "State %d (accepting):\n", s.ID)
		} else {
			fmt.Fprintf(&b, "State %d:\n", s.ID)
		}
		for _, i := range s.Items() {
			fmt.Fprintf(&b, "  %v\n", i)
		}
	}
	return b.String()
}

// Transitions lists all CFSM transitions as "from --X--> to".
func Transitions(cfsm *lr.CFSM) string {
	var b strings.Builder
	for _, t := range cfsm.Transitions() {
		b.WriteString(t.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// Tables renders the ACTION and GOTO tables side by side: one row per state,
// one column per terminal, followed by one column per non-terminal (S' excluded).
func Tables(lrgen *lr.TableGenerator) (string, error) {
	A, G := lrgen.ActionTable(), lrgen.GotoTable()
	if A == nil || G == nil {
		return "", fmt.Errorf("tables not yet created")
	}
	g := lrgen.Grammar()
	terms := g.Terminals()
	var nonterms []*lr.Symbol
	for _, N := range g.NonTerminals() {
		if N != g.AugmentedStart() {
			nonterms = append(nonterms, N)
		}
	}
	header := []string{"state"}
	for _, T := range terms {
		header = append(header, T.Name)
	}
	for _, N := range nonterms {
		header = append(header, N.Name)
	}
	data := [][]string{header}
	for s := 0; s < A.States(); s++ {
		row := []string{fmt.Sprintf("%d", s)}
		for _, T := range terms {
			cell := ""
			if a, ok := A.Action(s, T); ok {
				cell = a.String()
			}
			row = append(row, cell)
		}
		for _, N := range nonterms {
			cell := ""
			if to, ok := G.Goto(s, N); ok {
				cell = fmt.Sprintf("%d", to)
			}
			row = append(row, cell)
		}
		data = append(data, row)
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}

// Conflicts lists table conflicts, one per line.
func Conflicts(conflicts []lr.Conflict) string {
	if len(conflicts) == 0 {
		return "no conflicts\n"
	}
	var b strings.Builder
	for _, c := range conflicts {
		b.WriteString(c.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// FirstFollow renders FIRST and FOLLOW sets of all non-terminals.
func FirstFollow(ga *lr.LRAnalysis) (string, error) {
	data := [][]string{{"non-terminal", "nullable", "FIRST", "FOLLOW"}}
	ga.Grammar().EachNonTerminal(func(N *lr.Symbol) {
		nullable := ""
		if ga.Nullable(N) {
			nullable = "yes"
		}
		data = append(data, []string{N.Name, nullable, ga.First(N).String(), ga.Follow(N).String()})
	})
	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}

// Grammar lists the productions of a grammar, numbered by serial.
func Grammar(g *lr.Grammar) string {
	var b strings.Builder
	for _, r := range g.Rules() {
		fmt.Fprintf(&b, "%3d: %v\n", r.Serial, r)
	}
	return b.String()
}

// Derivation lists the steps of a derivation, numbered from 1.
func Derivation(res *lr1.Result) string {
	var b strings.Builder
	for i, step := range res.DerivationSteps() {
		fmt.Fprintf(&b, "%3d. %s\n", i+1, step)
	}
	return b.String()
}

// --- Trees -----------------------------------------------------------------

// Tree renders a parse tree with box-drawing characters.
func Tree(node *lr1.Node) string {
	var b strings.Builder
	PrintTree(&b, node)
	return b.String()
}

// PrintTree writes a parse tree with box-drawing characters to w.
func PrintTree(w io.Writer, node *lr1.Node) {
	printTree(w, node, "", "")
}

func printTree(w io.Writer, node *lr1.Node, ruledLine string, childRuledLinePrefix string) {
	if node == nil {
		return
	}
	fmt.Fprintf(w, "%v%v\n", ruledLine, nodeLabel(node))
	num := len(node.Children)
	for i, child := range node.Children {
		var line string
		if num > 1 && i < num-1 {
			line = "├─ "
		} else {
			line = "└─ "
		}
		var prefix string
		if i >= num-1 {
			prefix = "   "
		} else {
			prefix = "│  "
		}
		printTree(w, child, childRuledLinePrefix+line, childRuledLinePrefix+prefix)
	}
}

func nodeLabel(node *lr1.Node) string {
	if node.Rule != nil && len(node.Children) == 0 {
		return node.Symbol.Name + " " + lr.Epsilon
	}
	return node.Symbol.Name
}

// PTermTree renders a parse tree with pterm's tree printer.
func PTermTree(node *lr1.Node) (string, error) {
	if node == nil {
		return "", nil
	}
	root := pterm.TreeNode{Children: []pterm.TreeNode{treeNode(node)}}
	return pterm.DefaultTree.WithRoot(root).Srender()
}

func treeNode(node *lr1.Node) pterm.TreeNode {
	tn := pterm.TreeNode{Text: nodeLabel(node)}
	for _, ch := range node.Children {
		tn.Children = append(tn.Children, treeNode(ch))
	}
	return tn
}

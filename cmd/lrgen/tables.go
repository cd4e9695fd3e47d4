package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/npillmayer/lrgen"
	"github.com/npillmayer/lrgen/lr"
	"github.com/npillmayer/lrgen/lr/report"
	"github.com/spf13/cobra"
)

var tablesFlags = struct {
	items       *bool
	firstFollow *bool
	dot         *string
	html        *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "tables",
		Short:   "Print the parser tables of a grammar",
		Example: `  lrgen tables -g expr.txt --items --dot expr.dot`,
		Args:    cobra.NoArgs,
		RunE:    runTables,
	}
	tablesFlags.items = cmd.Flags().Bool("items", false, "print the LR(1) item sets and transitions")
	tablesFlags.firstFollow = cmd.Flags().Bool("first-follow", false, "print FIRST and FOLLOW sets")
	tablesFlags.dot = cmd.Flags().String("dot", "", "write the CFSM in Graphviz format to a file")
	tablesFlags.html = cmd.Flags().String("html", "", "write ACTION and GOTO tables in HTML format to a file")
	rootCmd.AddCommand(cmd)
}

func runTables(cmd *cobra.Command, args []string) error {
	p, _, err := loadPipeline()
	if err != nil {
		return err
	}
	opts := tableOptions{
		items:       *tablesFlags.items,
		firstFollow: *tablesFlags.firstFollow,
	}
	if err := printTables(cmd.OutOrStdout(), p, opts); err != nil {
		return err
	}
	if *tablesFlags.dot != "" {
		if err := p.Generator.CFSM().CFSM2GraphViz(*tablesFlags.dot); err != nil {
			return err
		}
	}
	if *tablesFlags.html != "" {
		if err := writeHTML(*tablesFlags.html, p.Generator); err != nil {
			return err
		}
	}
	return nil
}

type tableOptions struct {
	items       bool
	firstFollow bool
}

// printTables writes the grammar, the parser tables and the conflicts.
func printTables(w io.Writer, p *lrgen.Pipeline, opts tableOptions) error {
	fmt.Fprintf(w, "Grammar %s\n%s\n", p.Grammar.Name, report.Grammar(p.Grammar))
	if opts.firstFollow {
		ff, err := report.FirstFollow(p.Analysis)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, ff)
	}
	if opts.items {
		cfsm := p.Generator.CFSM()
		fmt.Fprint(w, report.ItemSets(cfsm))
		fmt.Fprintln(w, report.Transitions(cfsm))
	}
	tables, err := report.Tables(p.Generator)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, tables)
	printConflicts(w, p.Conflicts())
	return nil
}

func printConflicts(w io.Writer, conflicts []lr.Conflict) {
	if len(conflicts) == 0 {
		color.New(color.FgGreen).Fprintln(w, "grammar is LR(1)")
		return
	}
	color.New(color.FgYellow, color.Bold).Fprintf(w, "%d conflicts\n", len(conflicts))
	fmt.Fprint(w, report.Conflicts(conflicts))
}

func writeHTML(filename string, gen *lr.TableGenerator) (err error) {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err = lr.ActionTableAsHTML(gen, f); err != nil {
		return err
	}
	return lr.GotoTableAsHTML(gen, f)
}

package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/npillmayer/lrgen"
	"github.com/npillmayer/lrgen/lr/lr1"
	"github.com/npillmayer/lrgen/lr/report"
	"github.com/npillmayer/lrgen/lr/scanner"
	"github.com/spf13/cobra"
)

var parseFlags = struct {
	terminals  *bool
	derivation *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "parse <input>...",
		Short: "Parse input with the generated parser",
		Example: `  lrgen parse -g expr.toml "a + b * c"
  lrgen parse -g expr.txt --terminals id + id`,
		Args: cobra.ArbitraryArgs,
		RunE: runParse,
	}
	parseFlags.terminals = cmd.Flags().BoolP("terminals", "t", false, "arguments are terminal names, no tokenizing")
	parseFlags.derivation = cmd.Flags().BoolP("derivation", "d", false, "print the derivation")
	rootCmd.AddCommand(cmd)
}

// errRejected signals rejected input to the shell.
var errRejected = errors.New("input rejected")

func runParse(cmd *cobra.Command, args []string) error {
	p, tok, err := loadPipeline()
	if err != nil {
		return err
	}
	if !*parseFlags.terminals {
		args, err = tokenize(tok, strings.Join(args, " "))
		if err != nil {
			return err
		}
	}
	if !parseAndPrint(cmd.OutOrStdout(), p, args, *parseFlags.derivation) {
		return errRejected
	}
	return nil
}

func tokenize(tok scanner.Tokenizer, input string) ([]string, error) {
	tokens, err := tok.Tokenize(input)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("tokens: %v", tokens)
	return scanner.Terminals(tokens), nil
}

// parseAndPrint parses a sequence of terminals and writes the parse tree or
// the error. It returns true if the input has been accepted.
func parseAndPrint(w io.Writer, p *lrgen.Pipeline, terminals []string, derivation bool) bool {
	res, err := p.Parser.Parse(terminals)
	if derivation && res != nil {
		fmt.Fprint(w, report.Derivation(res))
	}
	if err != nil {
		color.New(color.FgRed).Fprintf(w, "rejected: %v\n", err)
		var perr *lr1.ParseError
		if errors.As(err, &perr) && perr.IsInternal() {
			fmt.Fprintln(w, "parser tables are inconsistent")
		}
		return false
	}
	color.New(color.FgGreen).Fprintln(w, "accepted")
	report.PrintTree(w, res.Tree)
	return true
}

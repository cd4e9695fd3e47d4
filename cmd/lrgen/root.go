package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/lrgen"
	"github.com/npillmayer/lrgen/lr"
	"github.com/npillmayer/lrgen/lr/grammarfile"
	"github.com/npillmayer/lrgen/lr/scanner"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// tracer traces with key 'lrgen.lr'.
func tracer() tracing.Trace {
	return tracing.Select("lrgen.lr")
}

var rootFlags = struct {
	grammar       *string
	start         *string
	trace         *string
	maxIterations *int
}{}

var rootCmd = &cobra.Command{
	Use:   "lrgen",
	Short: "Generate canonical LR(1) parser tables and parse with them",
	Long: `lrgen constructs the canonical collection of LR(1) item sets for a
context-free grammar, derives ACTION and GOTO tables from it and reports
conflicts. The generated parser may be run on input from the command line
or interactively.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initTracing(*rootFlags.trace)
		initDisplay()
	},
}

func init() {
	rootFlags.grammar = rootCmd.PersistentFlags().StringP("grammar", "g", "", "grammar file (.toml, .ebnf or rule list)")
	rootFlags.start = rootCmd.PersistentFlags().StringP("start", "s", "", "start symbol (default: from grammar file)")
	rootFlags.trace = rootCmd.PersistentFlags().String("trace", "Error", "trace level [Debug|Info|Error]")
	rootFlags.maxIterations = rootCmd.PersistentFlags().Int("max-iterations", lr.DefaultMaxIterations,
		"maximum number of FIRST/FOLLOW passes")
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}

func initTracing(level string) {
	tracing.SetTraceSelector(tracing.SelectorForAdapter(gologadapter.GetAdapter()))
	tracer().SetTraceLevel(tracing.TraceLevelFromString(level))
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// loadPipeline reads the grammar given by the flags and builds a pipeline
// and a tokenizer for it.
func loadPipeline() (*lrgen.Pipeline, scanner.Tokenizer, error) {
	if *rootFlags.grammar == "" {
		return nil, nil, fmt.Errorf("no grammar file given, use --grammar")
	}
	g, classes, err := grammarfile.Load(*rootFlags.grammar, *rootFlags.start)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot read grammar %s: %w", *rootFlags.grammar, err)
	}
	p, err := lrgen.Build(g, lr.MaxIterations(*rootFlags.maxIterations))
	if err != nil {
		return nil, nil, fmt.Errorf("cannot build tables for grammar %s: %w", g.Name, err)
	}
	tok, err := scanner.NewGrammarTokenizer(g, classes...)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot create tokenizer: %w", err)
	}
	return p, tok, nil
}

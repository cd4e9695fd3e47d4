package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/lrgen"
	"github.com/npillmayer/lrgen/lr/report"
	"github.com/npillmayer/lrgen/lr/scanner"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Parse input interactively",
		Long: `repl reads input line by line and parses it. Lines starting with ':'
are commands:

  :tables      print ACTION and GOTO tables
  :conflicts   print table conflicts
  :grammar     print the rules of the grammar
  :derivation  toggle printing of derivations
  :quit        leave`,
		Args: cobra.NoArgs,
		RunE: runREPL,
	}
	rootCmd.AddCommand(cmd)
}

func runREPL(cmd *cobra.Command, args []string) error {
	p, tok, err := loadPipeline()
	if err != nil {
		return err
	}
	rl, err := readline.New("lrgen> ")
	if err != nil {
		return err
	}
	defer rl.Close()
	pterm.Info.Printf("Grammar %s, %d states\n", p.Grammar.Name, p.Generator.CFSM().Size())
	pterm.Info.Println("Quit with <ctrl>D")
	intp := &Intp{pipeline: p, tokenizer: tok, out: rl.Stdout()}
	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if quit := intp.Eval(line); quit {
			break
		}
	}
	return nil
}

// Intp is our interpreter object.
type Intp struct {
	pipeline   *lrgen.Pipeline
	tokenizer  scanner.Tokenizer
	out        io.Writer
	derivation bool
}

// Eval executes a command or parses a line of input. It returns true if the
// user wants to quit.
func (intp *Intp) Eval(line string) bool {
	if strings.HasPrefix(line, ":") {
		return intp.execute(strings.TrimPrefix(line, ":"))
	}
	terminals, err := tokenize(intp.tokenizer, line)
	if err != nil {
		pterm.Error.Println(err.Error())
		return false
	}
	parseAndPrint(intp.out, intp.pipeline, terminals, intp.derivation)
	return false
}

func (intp *Intp) execute(cmd string) bool {
	switch cmd {
	case "quit", "q":
		return true
	case "tables":
		tables, err := report.Tables(intp.pipeline.Generator)
		if err != nil {
			pterm.Error.Println(err.Error())
			break
		}
		fmt.Fprintln(intp.out, tables)
	case "conflicts":
		printConflicts(intp.out, intp.pipeline.Conflicts())
	case "grammar":
		fmt.Fprint(intp.out, report.Grammar(intp.pipeline.Grammar))
	case "derivation":
		intp.derivation = !intp.derivation
		pterm.Info.Printf("printing derivations: %v\n", intp.derivation)
	default:
		pterm.Error.Printf("unknown command :%s\n", cmd)
	}
	return false
}

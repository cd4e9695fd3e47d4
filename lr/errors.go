package lr

import (
	"errors"
	"fmt"
)

// ErrInvalidGrammar is the common cause of all grammar construction errors.
// Clients may test for it using errors.Is.
var ErrInvalidGrammar = errors.New("invalid grammar")

// ErrNoConvergence is returned if a fixed-point computation does not settle
// within the configured number of passes.
var ErrNoConvergence = errors.New("grammar analysis did not converge")

// GrammarErrorKind classifies grammar construction errors.
type GrammarErrorKind int

// Kinds of grammar construction errors.
const (
	NoProductions       GrammarErrorKind = iota + 1 // grammar has no productions
	EmptyStart                                      // start symbol name is empty
	StartNotNonterminal                             // start symbol never appears as a LHS
	UndefinedSymbol                                 // RHS symbol is neither terminal nor non-terminal
	ReservedSymbol                                  // production uses '$' or 'ε' as a symbol
	EmptyLHS                                        // production has an empty left-hand side
	EmptySymbolName                                 // RHS contains an empty symbol name
	TerminalAsLHS                                   // declared terminal appears as a LHS
)

func (k GrammarErrorKind) String() string {
	switch k {
	case NoProductions:
		return "no productions"
	case EmptyStart:
		return "empty start symbol"
	case StartNotNonterminal:
		return "start symbol is not a non-terminal"
	case UndefinedSymbol:
		return "undefined symbol"
	case ReservedSymbol:
		return "reserved symbol"
	case EmptyLHS:
		return "empty left-hand side"
	case EmptySymbolName:
		return "empty symbol name"
	case TerminalAsLHS:
		return "terminal used as left-hand side"
	}
	return fmt.Sprintf("grammar error %d", int(k))
}

// GrammarError is returned by grammar construction if the rules do not
// form a well-formed context-free grammar.
type GrammarError struct {
	Kind   GrammarErrorKind
	Symbol string // offending symbol, if any
	Rule   int    // index of the offending rule specification, -1 if n/a
}

func grammarError(kind GrammarErrorKind, sym string, rule int) *GrammarError {
	return &GrammarError{Kind: kind, Symbol: sym, Rule: rule}
}

func (e *GrammarError) Error() string {
	msg := e.Kind.String()
	if e.Symbol != "" {
		msg = fmt.Sprintf("%s %q", msg, e.Symbol)
	}
	if e.Rule >= 0 {
		msg = fmt.Sprintf("%s in rule #%d", msg, e.Rule)
	}
	return "grammar: " + msg
}

// Unwrap makes every GrammarError match ErrInvalidGrammar.
func (e *GrammarError) Unwrap() error {
	return ErrInvalidGrammar
}

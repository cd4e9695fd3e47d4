package lr1

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Every *ParseError unwraps to one of them.
var (
	ErrUnexpectedToken = errors.New("unexpected token")
	ErrInvalidInput    = errors.New("invalid input token")
	ErrInternal        = errors.New("internal parser error")
)

// ErrNotInitialized is returned by parsers without tables.
var ErrNotInitialized = errors.New("parser not initialized")

// ErrorKind classifies parse errors.
type ErrorKind int

// Kinds of parse errors. MissingGoto and TreeStackSize signal broken tables
// and cannot occur for tables built by package lr.
const (
	UnexpectedToken   ErrorKind = iota + 1 // no action for (state, token)
	InvalidInputToken                      // input failed validation
	MissingGoto                            // no GOTO entry after a reduce
	TreeStackSize                          // tree stack does not hold exactly one tree on accept
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedToken:
		return "unexpected token"
	case InvalidInputToken:
		return "invalid input token"
	case MissingGoto:
		return "missing goto"
	case TreeStackSize:
		return "tree stack size"
	}
	return fmt.Sprintf("parse error %d", int(k))
}

// InputProblem tells why input validation failed.
type InputProblem int

// Problems found during input validation.
const (
	NoProblem      InputProblem = iota
	EmptyInput                  // no tokens, and the grammar does not derive ε
	EmptyToken                  // token is the empty string
	EndMarkerToken              // token is '$'
	UnknownToken                // token is not a terminal of the grammar
)

func (p InputProblem) String() string {
	switch p {
	case EmptyInput:
		return "empty input"
	case EmptyToken:
		return "empty token"
	case EndMarkerToken:
		return "end marker in input"
	case UnknownToken:
		return "unknown token"
	}
	return "ok"
}

// ParseError is returned for inputs which are not accepted.
type ParseError struct {
	Kind     ErrorKind
	State    int      // state on top of stack
	Token    string   // offending token, '$' at end of input
	Position int      // index of the offending token in the input
	Expected []string // terminals with an action in State, sorted
	Problem  InputProblem
	Symbol   string // non-terminal without GOTO entry
	Trees    int    // number of trees on the tree stack
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case UnexpectedToken:
		return fmt.Sprintf("syntax error: unexpected %q at position %d in state %d, expected one of [%s]",
			e.Token, e.Position, e.State, strings.Join(e.Expected, " "))
	case InvalidInputToken:
		if e.Problem == EmptyInput {
			return "invalid input: empty input"
		}
		return fmt.Sprintf("invalid input: %s %q at position %d", e.Problem, e.Token, e.Position)
	case MissingGoto:
		return fmt.Sprintf("internal error: no GOTO entry for state %d and %s", e.State, e.Symbol)
	case TreeStackSize:
		return fmt.Sprintf("internal error: %d trees on tree stack in state %d", e.Trees, e.State)
	}
	return e.Kind.String()
}

// Unwrap returns the sentinel error for the kind of e.
func (e *ParseError) Unwrap() error {
	switch e.Kind {
	case UnexpectedToken:
		return ErrUnexpectedToken
	case InvalidInputToken:
		return ErrInvalidInput
	}
	return ErrInternal
}

// IsInternal is true for errors signalling inconsistent parser tables.
func (e *ParseError) IsInternal() bool {
	return e.Kind == MissingGoto || e.Kind == TreeStackSize
}

func invalidInput(problem InputProblem, token string, pos int) *ParseError {
	return &ParseError{Kind: InvalidInputToken, Problem: problem, Token: token, Position: pos}
}

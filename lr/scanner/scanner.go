/*
Package scanner turns input text into sequences of terminal names, as
expected by the LR(1) parser of package lr1.

Two implementations are provided: (1) a longest-match tokenizer derived
from the terminals of a grammar, backed by lexmachine, and (2) a thin
wrapper over the Go std lib 'text/scanner'.

For the grammar-driven tokenizer every terminal name of a grammar is a
literal pattern. Clients may add token classes, i.e. regular expressions
standing for a terminal, e.g.

    tok, err := scanner.NewGrammarTokenizer(g,
        scanner.Class{Terminal: "id", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`})
    tokens, err := tok.Tokenize("x + y*z")
    input := scanner.Terminals(tokens)   // ["id", "+", "id", "*", "id"]

Whitespace between tokens is skipped.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"fmt"
	"io"
	"strings"
	"text/scanner"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrgen.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("lrgen.scanner")
}

// Token is an input token: the terminal it stands for, the lexeme as it
// appeared in the input, and its span of byte offsets.
type Token struct {
	Terminal string
	Lexeme   string
	Span     Span
}

func (t Token) String() string {
	if t.Terminal == t.Lexeme {
		return fmt.Sprintf("%q%v", t.Terminal, t.Span)
	}
	return fmt.Sprintf("%s(%q)%v", t.Terminal, t.Lexeme, t.Span)
}

// Tokenizer is a scanner interface.
type Tokenizer interface {
	Tokenize(input string) ([]Token, error)
}

// Terminals extracts the terminal names from a token sequence.
func Terminals(tokens []Token) []string {
	names := make([]string, len(tokens))
	for i, t := range tokens {
		names[i] = t.Terminal
	}
	return names
}

// Error is returned for input which cannot be tokenized.
type Error struct {
	Offset int    // byte offset of the offending input
	Text   string // remainder of the input line, for diagnostics
}

func (e *Error) Error() string {
	return fmt.Sprintf("scanner: cannot tokenize input at offset %d: %q", e.Offset, e.Text)
}

func scanError(input string, offset int) *Error {
	if offset > len(input) {
		offset = len(input)
	}
	rest := input[offset:]
	if n := strings.IndexByte(rest, '\n'); n >= 0 {
		rest = rest[:n]
	}
	if len(rest) > 20 {
		rest = rest[:20]
	}
	return &Error{Offset: offset, Text: rest}
}

// --- Go tokenizer ----------------------------------------------------------

// Token classes of the Go tokenizer, replicated from text/scanner.
const (
	Ident     = scanner.Ident
	Int       = scanner.Int
	Float     = scanner.Float
	Char      = scanner.Char
	String    = scanner.String
	RawString = scanner.RawString
	Comment   = scanner.Comment
)

// DefaultTokenizer is a tokenizer accepting tokens similar to the Go language,
// backed by scanner.Scanner. Operators and punctuation are passed as
// terminals of their own. Identifiers, numbers and strings are passed
// as their lexeme, unless a terminal name has been set for their class
// with option ClassTerminal. Create one with GoTokenizer.
type DefaultTokenizer struct {
	classes      map[rune]string
	skipComments bool
	unifyStrings bool // convert single chars and raw strings to strings
}

var _ Tokenizer = (*DefaultTokenizer)(nil)

// GoTokenizer creates a tokenizer accepting tokens similar to the Go language.
func GoTokenizer(opts ...Option) *DefaultTokenizer {
	t := &DefaultTokenizer{classes: make(map[rune]string), skipComments: true}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Tokenize is part of the Tokenizer interface.
func (t *DefaultTokenizer) Tokenize(input string) ([]Token, error) {
	var s scanner.Scanner
	s.Init(strings.NewReader(input))
	s.Mode = scanner.GoTokens
	if !t.skipComments {
		s.Mode &^= scanner.SkipComments
	}
	var err error
	s.Error = func(s *scanner.Scanner, msg string) {
		if err == nil {
			err = fmt.Errorf("scanner: %s at offset %d", msg, s.Pos().Offset)
		}
	}
	var tokens []Token
	for tok := s.Scan(); tok != scanner.EOF; tok = s.Scan() {
		if t.unifyStrings && (tok == scanner.RawString || tok == scanner.Char) {
			tok = scanner.String
		}
		lexeme := s.TokenText()
		terminal := lexeme
		if name, ok := t.classes[tok]; ok {
			terminal = name
		}
		tokens = append(tokens, Token{
			Terminal: terminal,
			Lexeme:   lexeme,
			Span:     Span{uint64(s.Position.Offset), uint64(s.Pos().Offset)},
		})
	}
	tracer().Debugf("DefaultTokenizer produced %d tokens", len(tokens))
	return tokens, err
}

// TokenizeReader is a convenience function for tokenizing all of a reader's input.
func TokenizeReader(t Tokenizer, r io.Reader) ([]Token, error) {
	input, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return t.Tokenize(string(input))
}

// --- Scanner options for the default (Go) tokenizer ---------------------------

// Option configures a default tokenizer.
type Option func(p *DefaultTokenizer)

// SkipComments sets or clears mode-flag SkipComments (default is true).
func SkipComments(b bool) Option {
	return func(t *DefaultTokenizer) {
		t.skipComments = b
	}
}

// UnifyStrings sets or clears option UnifyStrings:
// treat raw strings and single chars as strings.
func UnifyStrings(b bool) Option {
	return func(t *DefaultTokenizer) {
		t.unifyStrings = b
	}
}

// ClassTerminal maps a token class (Ident, Int, Float, String, …) to a
// terminal name.
func ClassTerminal(class rune, terminal string) Option {
	return func(t *DefaultTokenizer) {
		t.classes[class] = terminal
	}
}

package scanner

import (
	"sort"
	"strings"

	"github.com/npillmayer/lrgen/lr"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// lexmachine adapter

// Class is a token class: a regular expression (in lexmachine syntax)
// matching lexemes which stand for a terminal.
type Class struct {
	Terminal string
	Pattern  string
}

// LMTokenizer is a longest-match tokenizer backed by lexmachine. Create
// one with NewLMTokenizer or NewGrammarTokenizer. An LMTokenizer may be
// used concurrently.
type LMTokenizer struct {
	lexer     *lexmachine.Lexer
	terminals []string // token type → terminal name
}

var _ Tokenizer = (*LMTokenizer)(nil)

// NewGrammarTokenizer creates a tokenizer for the terminals of grammar g.
// Every terminal without a token class is matched literally.
func NewGrammarTokenizer(g *lr.Grammar, classes ...Class) (*LMTokenizer, error) {
	var literals []string
	g.EachTerminal(func(A *lr.Symbol) {
		if !A.IsEndMarker() {
			literals = append(literals, A.Name)
		}
	})
	return NewLMTokenizer(literals, classes)
}

// NewLMTokenizer creates a tokenizer from a list of literals ('[', ';', "if", …)
// and a list of token classes. A literal which is also the terminal of a
// token class is not matched literally.
//
// If two patterns match a lexeme of equal length, literals take precedence
// over classes, and earlier classes over later ones.
//
// NewLMTokenizer will return an error if compiling the DFA failed.
func NewLMTokenizer(literals []string, classes []Class) (*LMTokenizer, error) {
	lm := &LMTokenizer{lexer: lexmachine.NewLexer()}
	classTerminals := make(map[string]bool, len(classes))
	for _, c := range classes {
		classTerminals[c.Terminal] = true
	}
	lits := append([]string(nil), literals...)
	sort.SliceStable(lits, func(i, j int) bool { return len(lits[i]) > len(lits[j]) })
	for _, lit := range lits {
		if lit == "" || classTerminals[lit] {
			continue
		}
		lm.add(literalPattern(lit), lit)
	}
	for _, c := range classes {
		lm.add(c.Pattern, c.Terminal)
	}
	lm.lexer.Add([]byte(`( |\t|\n|\r)+`), Skip)
	if err := lm.lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return lm, nil
}

func (lm *LMTokenizer) add(pattern string, terminal string) {
	id := len(lm.terminals)
	lm.terminals = append(lm.terminals, terminal)
	lm.lexer.Add([]byte(pattern), MakeToken(terminal, id))
}

// literalPattern escapes every ASCII character which is not a letter,
// digit or underscore.
func literalPattern(lit string) string {
	var b strings.Builder
	for _, r := range lit {
		if r < 0x80 && !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Tokenize is part of the Tokenizer interface. It fails with an *Error for
// input which is not matched by any pattern.
func (lm *LMTokenizer) Tokenize(input string) ([]Token, error) {
	s, err := lm.lexer.Scanner([]byte(input))
	if err != nil {
		return nil, err
	}
	var tokens []Token
	for tok, err, eos := s.Next(); !eos; tok, err, eos = s.Next() {
		if err != nil {
			if ui, is := err.(*machines.UnconsumedInput); is {
				tracer().Errorf("scanner error: %v", err)
				return tokens, scanError(input, ui.FailTC)
			}
			return tokens, err
		}
		token := tok.(*lexmachine.Token)
		tokens = append(tokens, Token{
			Terminal: lm.terminals[token.Type],
			Lexeme:   string(token.Lexeme),
			Span:     Span{uint64(token.TC), uint64(token.TC + len(token.Lexeme))},
		})
	}
	tracer().Debugf("tokenized %d tokens", len(tokens))
	return tokens, nil
}

// ---------------------------------------------------------------------------

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is a pre-defined action which wraps a scanned match into a token.
func MakeToken(name string, id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, name, m), nil
	}
}

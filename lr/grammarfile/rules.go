package grammarfile

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/lrgen/lr"
)

// SyntaxError is returned for malformed rule lines.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// ReadRules reads a rule list. It returns the rule specifications and the
// LHS of the first rule.
func ReadRules(r io.Reader) ([]lr.RuleSpec, string, error) {
	var rules []lr.RuleSpec
	var start string
	lines := bufio.NewScanner(r)
	for n := 1; lines.Scan(); n++ {
		line := strings.TrimSpace(lines.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lhs, rhs, ok := splitRule(line)
		if !ok {
			return nil, "", &SyntaxError{Line: n, Msg: fmt.Sprintf("missing '->' in %q", line)}
		}
		if lhs == "" || len(strings.Fields(lhs)) != 1 {
			return nil, "", &SyntaxError{Line: n, Msg: fmt.Sprintf("invalid left-hand side %q", lhs)}
		}
		if start == "" {
			start = lhs
		}
		for _, alt := range strings.Split(rhs, "|") {
			rules = append(rules, lr.RuleSpec{LHS: lhs, RHS: alternative(alt)})
		}
	}
	if err := lines.Err(); err != nil {
		return nil, "", err
	}
	tracer().Debugf("read %d rules", len(rules))
	return rules, start, nil
}

// ParseRules reads a rule list and creates a grammar from it.
func ParseRules(name string, r io.Reader) (*lr.Grammar, error) {
	rules, start, err := ReadRules(r)
	if err != nil {
		return nil, err
	}
	return lr.NewGrammar(name, start, rules)
}

func splitRule(line string) (string, string, bool) {
	for _, arrow := range []string{"->", "→", "::="} {
		if i := strings.Index(line, arrow); i >= 0 {
			return strings.TrimSpace(line[:i]), line[i+len(arrow):], true
		}
	}
	return "", "", false
}

// alternative splits a RHS into symbols. Empty alternatives and ε denote
// an empty RHS.
func alternative(alt string) []string {
	syms := strings.Fields(alt)
	if len(syms) == 1 && isEpsilon(syms[0]) {
		return nil
	}
	return syms
}

func isEpsilon(s string) bool {
	return s == lr.Epsilon || s == "epsilon"
}

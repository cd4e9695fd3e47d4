package lr1

import (
	"github.com/npillmayer/lrgen/lr"
	"github.com/npillmayer/lrgen/lr/scanner"
	"github.com/npillmayer/schuko/gconf"
)

// Parser is a canonical LR(1)-parser type. Create and initialize one with lr1.NewParser(...)
type Parser struct {
	G       *lr.Grammar
	gotoT   *lr.GotoTable   // GOTO table
	actionT *lr.ActionTable // ACTION table
}

// We store pairs of state-IDs and symbols on the parse stack.
type stackitem struct {
	stateID int        // ID of a CFSM state
	sym     *lr.Symbol // grammar symbol (terminal or non-terminal)
}

// NewParser creates an LR(1) parser.
func NewParser(g *lr.Grammar, gotoTable *lr.GotoTable, actionTable *lr.ActionTable) *Parser {
	return &Parser{
		G:       g,
		gotoT:   gotoTable,
		actionT: actionTable,
	}
}

// Result is the outcome of a parse. Derivation lists the productions in
// the order they have been reduced by, i.e. a rightmost derivation in
// reverse. Moves lists all shifts and reduces. For rejected input, Tree is
// nil and Derivation and Moves hold the steps done before the error.
type Result struct {
	Tree       *Node
	Derivation []*lr.Production
	Moves      []Move
}

// DerivationSteps returns the derivation as strings "A → X Y", with "A → ε"
// for empty productions.
func (r *Result) DerivationSteps() []string {
	steps := make([]string, len(r.Derivation))
	for i, p := range r.Derivation {
		steps[i] = p.String()
	}
	return steps
}

// Parse runs the shift-reduce automaton over a sequence of terminal names.
// The end marker is appended by the parser.
//
// If the input is accepted, the result carries the parse tree. Otherwise
// a *ParseError is returned, together with a result holding the partial
// derivation.
func (p *Parser) Parse(tokens []string) (*Result, error) {
	tracer().Debugf("~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~")
	res := &Result{}
	if p.G == nil || p.gotoT == nil || p.actionT == nil {
		tracer().Errorf("LR(1)-parser not initialized")
		return res, ErrNotInitialized
	}
	input, err := p.validate(tokens)
	if err != nil {
		return res, err
	}
	stack := make([]stackitem, 1, 64) // state 0 is the start state
	trees := make([]*Node, 0, 64)
	pos := 0
	for {
		state := stack[len(stack)-1] // TOS
		la := input[pos]
		action, ok := p.actionT.Action(state.stateID, la)
		tracer().Debugf("action(%d,%s) = %v", state.stateID, la, action)
		if !ok {
			return res, p.unexpected(state.stateID, la, pos)
		}
		switch action.Kind {
		case lr.ShiftAction:
			tracer().Debugf("shifting %s, next state = %d", la, action.State)
			stack = append(stack, stackitem{stateID: action.State, sym: la})
			trees = append(trees, &Node{Symbol: la, Span: scanner.Span{uint64(pos), uint64(pos + 1)}})
			res.Moves = append(res.Moves, Move{Kind: ShiftMove, Symbol: la})
			pos++
		case lr.ReduceAction:
			rule := action.Rule
			n := rule.Len()
			if len(stack)-1 < n || len(trees) < n {
				return res, p.stuck(&ParseError{Kind: TreeStackSize, State: state.stateID, Trees: len(trees)})
			}
			node := reduceTrees(rule, trees[len(trees)-n:], uint64(pos))
			trees = trees[:len(trees)-n]
			stack = stack[:len(stack)-n]
			tos := stack[len(stack)-1]
			next, ok := p.gotoT.Goto(tos.stateID, rule.LHS)
			if !ok {
				return res, p.stuck(&ParseError{Kind: MissingGoto, State: tos.stateID, Symbol: rule.LHS.Name})
			}
			tracer().Infof("reduce %v", rule)
			stack = append(stack, stackitem{stateID: next, sym: rule.LHS})
			trees = append(trees, node)
			res.Derivation = append(res.Derivation, rule)
			res.Moves = append(res.Moves, Move{Kind: ReduceMove, Rule: rule})
		case lr.AcceptAction:
			if len(trees) != 1 {
				return res, p.stuck(&ParseError{Kind: TreeStackSize, State: state.stateID, Trees: len(trees)})
			}
			tracer().Infof("accept")
			res.Tree = trees[0]
			return res, nil
		}
	}
}

// validate checks the input tokens and maps them to terminals, appending '$'.
// Empty input is valid only if the start state has an action on '$',
// i.e. if the grammar derives ε.
func (p *Parser) validate(tokens []string) ([]*lr.Symbol, error) {
	eof := p.G.EndMarker()
	if len(tokens) == 0 {
		if _, ok := p.actionT.Action(0, eof); !ok {
			return nil, invalidInput(EmptyInput, "", 0)
		}
	}
	input := make([]*lr.Symbol, 0, len(tokens)+1)
	for i, tok := range tokens {
		switch tok {
		case "":
			return nil, invalidInput(EmptyToken, tok, i)
		case lr.EndMarker:
			return nil, invalidInput(EndMarkerToken, tok, i)
		}
		A := p.G.SymbolByName(tok)
		if A == nil || !A.IsTerminal() {
			return nil, invalidInput(UnknownToken, tok, i)
		}
		input = append(input, A)
	}
	return append(input, eof), nil
}

func (p *Parser) unexpected(state int, la *lr.Symbol, pos int) *ParseError {
	exp := p.actionT.Expected(state)
	names := make([]string, len(exp))
	for i, A := range exp {
		names[i] = A.Name
	}
	err := &ParseError{
		Kind:     UnexpectedToken,
		State:    state,
		Token:    la.Name,
		Position: pos,
		Expected: names,
	}
	tracer().Infof("%v", err)
	return err
}

// stuck reports an internal error. Setting configuration flag
// panic-on-missing-goto makes it panic instead.
func (p *Parser) stuck(err *ParseError) *ParseError {
	tracer().Errorf("%v", err)
	if gconf.GetBool("panic-on-missing-goto") {
		panic(`LR(1)-parser is stuck.

Configuration flag panic-on-missing-goto is set to true. It is aimed at helping
to debug parser tables and do a post-mortem of why the parser got stuck. However,
if this is a production environment and you did not expect this to panic, please
unset panic-on-missing-goto to its default (false).

` + err.Error())
	}
	return err
}

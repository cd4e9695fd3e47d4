package lr1

import (
	"fmt"
	"strings"

	"github.com/npillmayer/lrgen/lr"
	"github.com/npillmayer/lrgen/lr/scanner"
)

// Node is a node of a parse tree. Leaves carry a terminal and have neither
// a rule nor children. Inner nodes carry the rule they have been reduced by;
// nodes for ε-productions are inner nodes without children.
type Node struct {
	Symbol   *lr.Symbol
	Rule     *lr.Production
	Children []*Node
	Span     scanner.Span // range of input token positions covered
}

// IsLeaf is true for terminal nodes.
func (n *Node) IsLeaf() bool {
	return n.Rule == nil && len(n.Children) == 0
}

// Leaves returns the terminals of the tree, left to right.
func (n *Node) Leaves() []string {
	var leaves []string
	n.Walk(func(node *Node, depth int) {
		if node.IsLeaf() {
			leaves = append(leaves, node.Symbol.Name)
		}
	})
	return leaves
}

// Walk visits the tree in pre-order.
func (n *Node) Walk(f func(node *Node, depth int)) {
	n.walk(f, 0)
}

func (n *Node) walk(f func(*Node, int), depth int) {
	f(n, depth)
	for _, ch := range n.Children {
		ch.walk(f, depth+1)
	}
}

// Equal compares trees structurally, i.e. by symbol names and rules.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.Symbol.Name != other.Symbol.Name || len(n.Children) != len(other.Children) {
		return false
	}
	if (n.Rule == nil) != (other.Rule == nil) || n.Rule != nil && !n.Rule.Equal(other.Rule) {
		return false
	}
	for i, ch := range n.Children {
		if !ch.Equal(other.Children[i]) {
			return false
		}
	}
	return true
}

// String returns a compact form of the tree, e.g. "E(T(F(id)))".
func (n *Node) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n *Node) write(b *strings.Builder) {
	b.WriteString(n.Symbol.Name)
	if n.IsLeaf() {
		return
	}
	b.WriteByte('(')
	if len(n.Children) == 0 {
		b.WriteString(lr.Epsilon)
	}
	for i, ch := range n.Children {
		if i > 0 {
			b.WriteByte(' ')
		}
		ch.write(b)
	}
	b.WriteByte(')')
}

// --- Moves -----------------------------------------------------------------

// MoveKind is the kind of a parser move.
type MoveKind uint8

// Parser moves.
const (
	ShiftMove MoveKind = iota + 1
	ReduceMove
)

// Move is a shift or reduce step of a parse, as recorded in a Result.
type Move struct {
	Kind   MoveKind
	Symbol *lr.Symbol     // shifted terminal
	Rule   *lr.Production // reduced production
}

func (m Move) String() string {
	if m.Kind == ShiftMove {
		return "shift " + m.Symbol.Name
	}
	return "reduce " + m.Rule.String()
}

// Replay rebuilds a parse tree from a sequence of moves, without consulting
// any parser tables. It fails if the moves do not describe a complete
// bottom-up derivation.
func Replay(moves []Move) (*Node, error) {
	var trees []*Node
	pos := uint64(0)
	for i, m := range moves {
		switch m.Kind {
		case ShiftMove:
			trees = append(trees, &Node{Symbol: m.Symbol, Span: scanner.Span{pos, pos + 1}})
			pos++
		case ReduceMove:
			n := m.Rule.Len()
			if len(trees) < n {
				return nil, fmt.Errorf("replay: move %d reduces %v with %d trees on stack", i, m.Rule, len(trees))
			}
			node := reduceTrees(m.Rule, trees[len(trees)-n:], pos)
			for j, A := range m.Rule.RHS() {
				if node.Children[j].Symbol.Name != A.Name {
					return nil, fmt.Errorf("replay: move %d reduces %v over %s", i, m.Rule, node.Children[j].Symbol)
				}
			}
			trees = append(trees[:len(trees)-n], node)
		default:
			return nil, fmt.Errorf("replay: invalid move %d", i)
		}
	}
	if len(trees) != 1 {
		return nil, fmt.Errorf("replay: %d trees left", len(trees))
	}
	return trees[0], nil
}

// reduceTrees creates an inner node for rule r over handle. ε-nodes get an
// empty span at position pos.
func reduceTrees(r *lr.Production, handle []*Node, pos uint64) *Node {
	node := &Node{
		Symbol:   r.LHS,
		Rule:     r,
		Children: append([]*Node(nil), handle...),
		Span:     scanner.Span{pos, pos},
	}
	for _, ch := range handle {
		node.Span = node.Span.Extend(ch.Span)
	}
	return node
}

package lr

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cnf/structhash"
)

// Item is an LR(1) item [A → α • β, a]. Items are values and comparable;
// two items are equal if they share rule, dot position and lookahead.
type Item struct {
	rule *Production
	dot  int
	la   *Symbol
}

// StartItem returns the item with the dot before the RHS of r.
func StartItem(r *Production, lookahead *Symbol) Item {
	return Item{rule: r, dot: 0, la: lookahead}
}

// Rule returns the production of the item.
func (i Item) Rule() *Production {
	return i.rule
}

// Dot returns the position of the dot, 0 ≤ dot ≤ |RHS|.
func (i Item) Dot() int {
	return i.dot
}

// Lookahead returns the lookahead terminal of the item.
func (i Item) Lookahead() *Symbol {
	return i.la
}

// PeekSymbol returns the symbol after the dot, or nil for complete items.
func (i Item) PeekSymbol() *Symbol {
	if i.dot >= len(i.rule.rhs) {
		return nil
	}
	return i.rule.rhs[i.dot]
}

// IsComplete is true if the dot is at the end of the RHS.
func (i Item) IsComplete() bool {
	return i.dot >= len(i.rule.rhs)
}

// Advance moves the dot one position to the right. Complete items are
// returned unchanged.
func (i Item) Advance() Item {
	if i.IsComplete() {
		return i
	}
	return Item{rule: i.rule, dot: i.dot + 1, la: i.la}
}

// Prefix returns the symbols before the dot.
func (i Item) Prefix() []*Symbol {
	return append([]*Symbol(nil), i.rule.rhs[:i.dot]...)
}

func (i Item) String() string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(i.rule.LHS.Name)
	b.WriteString(" →")
	for n, A := range i.rule.rhs {
		if n == i.dot {
			b.WriteString(" •")
		}
		b.WriteByte(' ')
		b.WriteString(A.Name)
	}
	if i.IsComplete() {
		b.WriteString(" •")
	}
	b.WriteString(", ")
	b.WriteString(i.la.Name)
	b.WriteString("]")
	return b.String()
}

// itemLess orders items by rule serial, dot position and lookahead value.
func itemLess(i1, i2 Item) bool {
	if i1.rule.Serial != i2.rule.Serial {
		return i1.rule.Serial < i2.rule.Serial
	}
	if i1.dot != i2.dot {
		return i1.dot < i2.dot
	}
	return i1.la.Value < i2.la.Value
}

// --- Item sets -------------------------------------------------------------

// ItemSet is a set of LR(1) items. Item sets returned by the closure and
// goto operations are sorted and must be treated as read-only.
type ItemSet struct {
	items []Item
	index map[Item]struct{}
}

// NewItemSet creates an item set from a list of items.
func NewItemSet(items ...Item) *ItemSet {
	S := &ItemSet{index: make(map[Item]struct{}, len(items))}
	for _, i := range items {
		S.Add(i)
	}
	return S
}

// Add inserts item i and reports whether the set changed.
func (S *ItemSet) Add(i Item) bool {
	if _, ok := S.index[i]; ok {
		return false
	}
	S.index[i] = struct{}{}
	S.items = append(S.items, i)
	return true
}

// Contains checks for membership of item i.
func (S *ItemSet) Contains(i Item) bool {
	_, ok := S.index[i]
	return ok
}

// Size returns the number of items.
func (S *ItemSet) Size() int {
	return len(S.items)
}

// Empty is true for item sets without items.
func (S *ItemSet) Empty() bool {
	return len(S.items) == 0
}

// Items returns a copy of the items, in canonical order.
func (S *ItemSet) Items() []Item {
	items := append([]Item(nil), S.items...)
	sort.Slice(items, func(a, b int) bool { return itemLess(items[a], items[b]) })
	return items
}

// Equals compares two item sets by content.
func (S *ItemSet) Equals(other *ItemSet) bool {
	if S.Size() != other.Size() {
		return false
	}
	for _, i := range S.items {
		if !other.Contains(i) {
			return false
		}
	}
	return true
}

func (S *ItemSet) copy() *ItemSet {
	return NewItemSet(S.items...)
}

func (S *ItemSet) sort() {
	sort.Slice(S.items, func(a, b int) bool { return itemLess(S.items[a], S.items[b]) })
}

// itemKey is the hashable form of an item.
type itemKey struct {
	Rule int
	Dot  int
	LA   int
}

// signature returns a hash over the canonical form of the item set. Equal
// sets have equal signatures.
func (S *ItemSet) signature() string {
	items := S.Items()
	keys := make([]itemKey, len(items))
	for n, i := range items {
		keys[n] = itemKey{Rule: i.rule.Serial, Dot: i.dot, LA: i.la.Value}
	}
	h, err := structhash.Hash(keys, 1)
	if err != nil { // cannot happen for slices of int structs
		panic(fmt.Sprintf("cannot hash item set: %v", err))
	}
	return h
}

func (S *ItemSet) String() string {
	items := S.Items()
	s := make([]string, len(items))
	for n, i := range items {
		s[n] = i.String()
	}
	return "{" + strings.Join(s, " ") + "}"
}

// Dump is a debugging helper.
func (S *ItemSet) Dump() {
	for _, i := range S.Items() {
		tracer().Debugf("    %v", i)
	}
}

// --- Closure and Goto-Set Operations ---------------------------------------

// Closure computes the LR(1) closure of a set of items: for every item
// [A → α • B β, a] in the set, for every production B → γ and every terminal
// b ∈ FIRST(β a), item [B → • γ, b] is added, until no more items can be added.
//
// Closure is idempotent. The result is sorted.
func (ga *LRAnalysis) Closure(S *ItemSet) *ItemSet {
	C := S.copy()
	for k := 0; k < len(C.items); k++ { // C.items grows while iterating
		item := C.items[k]
		B := item.PeekSymbol()
		if B == nil || B.IsTerminal() {
			continue
		}
		beta := item.rule.rhs[item.dot+1:]
		seq := make([]*Symbol, 0, len(beta)+1)
		seq = append(append(seq, beta...), item.la)
		L := ga.firstOfSequence(seq).Values()
		for _, r := range ga.g.FindNonTermRules(B) {
			for _, b := range L {
				if !b.IsEpsilon() {
					C.Add(StartItem(r, b))
				}
			}
		}
	}
	C.sort()
	return C
}

// GotoSet computes goto(S, X): the closure of all items of S with X after
// the dot, with the dot advanced over X. The result is empty if no item of
// S has X after the dot.
func (ga *LRAnalysis) GotoSet(S *ItemSet, X *Symbol) *ItemSet {
	kernel := NewItemSet()
	for _, i := range S.items {
		if i.PeekSymbol() == X {
			kernel.Add(i.Advance())
		}
	}
	if kernel.Empty() {
		return kernel
	}
	G := ga.Closure(kernel)
	tracer().Debugf("goto(%d items, %s) = %d items", S.Size(), X, G.Size())
	return G
}

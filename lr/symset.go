package lr

import (
	"sort"
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// SymbolSet is an ordered set of grammar symbols. Symbols are ordered by
// their serial values, i.e. by order of appearance in the grammar.
type SymbolSet struct {
	set *treeset.Set
}

func symbolComparator(s1, s2 interface{}) int {
	return utils.IntComparator(s1.(*Symbol).Value, s2.(*Symbol).Value)
}

// NewSymbolSet creates a set of symbols.
func NewSymbolSet(syms ...*Symbol) *SymbolSet {
	S := &SymbolSet{set: treeset.NewWith(symbolComparator)}
	for _, A := range syms {
		S.set.Add(A)
	}
	return S
}

// Add inserts a symbol and reports whether the set changed.
func (S *SymbolSet) Add(A *Symbol) bool {
	if S.set.Contains(A) {
		return false
	}
	S.set.Add(A)
	return true
}

// Union adds all symbols of T, except ε if noEpsilon is set. It reports
// whether the set changed.
func (S *SymbolSet) union(T *SymbolSet, noEpsilon bool) bool {
	changed := false
	for _, x := range T.set.Values() {
		A := x.(*Symbol)
		if noEpsilon && A.IsEpsilon() {
			continue
		}
		if S.Add(A) {
			changed = true
		}
	}
	return changed
}

// Union adds all symbols of T to S and reports whether S changed.
func (S *SymbolSet) Union(T *SymbolSet) bool {
	return S.union(T, false)
}

// Contains checks for membership of A.
func (S *SymbolSet) Contains(A *Symbol) bool {
	return S.set.Contains(A)
}

// Size returns the number of symbols in S.
func (S *SymbolSet) Size() int {
	return S.set.Size()
}

// Empty is true for the empty set.
func (S *SymbolSet) Empty() bool {
	return S.set.Empty()
}

// Values returns the symbols of S, ordered by value.
func (S *SymbolSet) Values() []*Symbol {
	vals := S.set.Values()
	syms := make([]*Symbol, len(vals))
	for i, x := range vals {
		syms[i] = x.(*Symbol)
	}
	return syms
}

// Names returns the symbol names of S, ordered by symbol value.
func (S *SymbolSet) Names() []string {
	vals := S.set.Values()
	names := make([]string, len(vals))
	for i, x := range vals {
		names[i] = x.(*Symbol).Name
	}
	return names
}

// Copy returns a shallow copy of S.
func (S *SymbolSet) Copy() *SymbolSet {
	C := NewSymbolSet()
	for _, x := range S.set.Values() {
		C.set.Add(x)
	}
	return C
}

func (S *SymbolSet) String() string {
	return "{" + strings.Join(S.Names(), ", ") + "}"
}

func sortSymbolsByName(T []*Symbol) {
	sort.Slice(T, func(i, j int) bool { return T[i].Name < T[j].Name })
}

package lr

import (
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// === Terminal Sets =========================================================

// TerminalSet is a sorted set of terminals. FIRST sets may contain Epsilon.
type TerminalSet struct {
	set *treeset.Set
}

func symbolComparator(a, b interface{}) int {
	return utils.StringComparator(string(a.(Symbol)), string(b.(Symbol)))
}

func newTerminalSet(syms ...Symbol) *TerminalSet {
	ts := &TerminalSet{set: treeset.NewWith(symbolComparator)}
	for _, A := range syms {
		ts.set.Add(A)
	}
	return ts
}

// Add inserts a symbol and returns true if the set changed.
func (ts *TerminalSet) Add(A Symbol) bool {
	if ts.set.Contains(A) {
		return false
	}
	ts.set.Add(A)
	return true
}

// Union adds all symbols of other, except Epsilon if withoutEpsilon is set.
// It returns true if the set changed.
func (ts *TerminalSet) Union(other *TerminalSet, withoutEpsilon bool) bool {
	changed := false
	for _, x := range other.set.Values() {
		A := x.(Symbol)
		if withoutEpsilon && A == Epsilon {
			continue
		}
		changed = ts.Add(A) || changed
	}
	return changed
}

// Contains is true if A is a member of the set.
func (ts *TerminalSet) Contains(A Symbol) bool {
	return ts.set.Contains(A)
}

// Size returns the number of members, Epsilon included.
func (ts *TerminalSet) Size() int {
	return ts.set.Size()
}

// Symbols returns the members in sorted order.
func (ts *TerminalSet) Symbols() []Symbol {
	syms := make([]Symbol, 0, ts.set.Size())
	for _, x := range ts.set.Values() {
		syms = append(syms, x.(Symbol))
	}
	return syms
}

// Copy returns an independent copy of the set.
func (ts *TerminalSet) Copy() *TerminalSet {
	return newTerminalSet(ts.Symbols()...)
}

// Equals is true if both sets have the same members.
func (ts *TerminalSet) Equals(other *TerminalSet) bool {
	if ts.Size() != other.Size() {
		return false
	}
	for _, x := range ts.set.Values() {
		if !other.set.Contains(x) {
			return false
		}
	}
	return true
}

// IsSubsetOf is true if every member of ts is a member of other.
func (ts *TerminalSet) IsSubsetOf(other *TerminalSet) bool {
	for _, x := range ts.set.Values() {
		if !other.set.Contains(x) {
			return false
		}
	}
	return true
}

func (ts *TerminalSet) String() string {
	syms := ts.Symbols()
	s := make([]string, len(syms))
	for i, A := range syms {
		s[i] = string(A)
	}
	return "{" + strings.Join(s, ", ") + "}"
}

// === FIRST Sets ============================================================

// LRAnalysis holds the results of analysing a grammar: the FIRST sets of all
// non-terminals and the interning cache for item-sets. Every grammar has
// exactly one analysis, created on first request by Analysis(g).
type LRAnalysis struct {
	g      *Grammar
	first  map[Symbol]*TerminalSet
	passes int // number of iterations until FIRST sets were stable
	items  *itemSetCache
}

// Analysis returns the analysis of grammar g, computing FIRST sets on the
// first call for g.
func Analysis(g *Grammar) *LRAnalysis {
	g.analysisOnce.Do(func() {
		ga := &LRAnalysis{
			g:     g,
			items: newItemSetCache(),
		}
		ga.first, ga.passes = computeFirstSets(g, nil)
		tracer().Infof("FIRST sets of %s stable after %d passes", g.Name, ga.passes)
		g.analysis = ga
	})
	return g.analysis
}

// Grammar returns the grammar this analysis is for.
func (ga *LRAnalysis) Grammar() *Grammar {
	return ga.g
}

// First returns FIRST(A). For a terminal A this is {A}, for a non-terminal
// the set of terminals which may start a derivation of A, including Epsilon
// if A derives the empty string. The returned set must not be modified.
func (ga *LRAnalysis) First(A Symbol) *TerminalSet {
	if f, ok := ga.first[A]; ok {
		return f
	}
	return newTerminalSet(A)
}

// FirstOfSequence returns FIRST(X1 … Xn). It contains Epsilon if every Xi
// derives the empty string, in particular for the empty sequence.
func (ga *LRAnalysis) FirstOfSequence(syms []Symbol) *TerminalSet {
	result := newTerminalSet()
	for _, X := range syms {
		fx := ga.First(X)
		result.Union(fx, true)
		if !fx.Contains(Epsilon) {
			return result
		}
	}
	result.Add(Epsilon)
	return result
}

// computeFirstSets iterates over all rules until no FIRST set changes in a
// complete pass. observe, if not nil, is called after every pass.
func computeFirstSets(g *Grammar, observe func(pass int, first map[Symbol]*TerminalSet)) (map[Symbol]*TerminalSet, int) {
	first := make(map[Symbol]*TerminalSet, len(g.lhs))
	for N := range g.lhs {
		first[N] = newTerminalSet()
	}
	pass := 0
	for changed := true; changed; {
		changed = false
		pass++
		for _, r := range g.rules {
			F := first[r.LHS]
			allEpsilon := true
			for _, X := range r.rhs {
				fx, isNonTerm := first[X]
				if !isNonTerm {
					changed = F.Add(X) || changed
					allEpsilon = false
					break
				}
				changed = F.Union(fx, true) || changed
				if !fx.Contains(Epsilon) {
					allEpsilon = false
					break
				}
			}
			if allEpsilon {
				changed = F.Add(Epsilon) || changed
			}
		}
		if observe != nil {
			observe(pass, first)
		}
	}
	return first, pass
}

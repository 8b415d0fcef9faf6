package lr

import (
	"bytes"
	"sort"
	"sync"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"
)

// === Item Sets =============================================================

// ItemSet is a closed set of LR(1) items, i.e. a state of an LR(1)
// automaton. Item sets are immutable and interned per grammar: two item sets
// with the same items are the same object, and may be compared with ==.
type ItemSet struct {
	items []Item // sorted canonically
	hash  string // content hash, key into the interning cache
}

// Items returns a copy of the items in canonical order.
func (S *ItemSet) Items() []Item {
	items := make([]Item, len(S.items))
	copy(items, S.items)
	return items
}

// Size returns the number of items.
func (S *ItemSet) Size() int {
	return len(S.items)
}

// Contains is true if item i is a member of S.
func (S *ItemSet) Contains(i Item) bool {
	k := sort.Search(len(S.items), func(k int) bool {
		return itemComparator(S.items[k], i) >= 0
	})
	return k < len(S.items) && S.items[k] == i
}

// Hash returns the content hash of S.
func (S *ItemSet) Hash() string {
	return S.hash
}

func (S *ItemSet) String() string {
	var b bytes.Buffer
	b.WriteString("{")
	for k, item := range S.items {
		if k == 0 {
			b.WriteString(" ")
		} else {
			b.WriteString(", ")
		}
		b.WriteString(item.String())
	}
	b.WriteString(" }")
	return b.String()
}

// Dump is a debugging helper.
func (S *ItemSet) Dump() {
	for _, item := range S.items {
		tracer().Debugf("    %v", item)
	}
}

func (S *ItemSet) hasItems(items []Item) bool {
	if len(S.items) != len(items) {
		return false
	}
	for k := range items {
		if S.items[k] != items[k] {
			return false
		}
	}
	return true
}

// --- Interning -------------------------------------------------------------

// itemSetCache maps item-set content hashes to item sets. Hash collisions are
// resolved by comparing items.
type itemSetCache struct {
	sync.Mutex
	buckets map[string][]*ItemSet
	count   int
}

func newItemSetCache() *itemSetCache {
	return &itemSetCache{buckets: make(map[string][]*ItemSet)}
}

// Signature of an item set for hashing with structhash.
type itemSetSignature struct {
	Items []itemSignature
}

type itemSignature struct {
	Rule      int
	Dot       int
	Lookahead string
}

func hashItems(items []Item) string {
	sig := itemSetSignature{Items: make([]itemSignature, len(items))}
	for k, item := range items {
		sig.Items[k] = itemSignature{Rule: item.rule.Serial, Dot: item.dot, Lookahead: string(item.la)}
	}
	h, _ := structhash.Hash(sig, 1)
	return h
}

// intern returns the canonical item set for a sorted list of items,
// creating it if it is not yet known.
func (c *itemSetCache) intern(items []Item) *ItemSet {
	h := hashItems(items)
	c.Lock()
	defer c.Unlock()
	for _, S := range c.buckets[h] {
		if S.hasItems(items) {
			return S
		}
	}
	S := &ItemSet{items: items, hash: h}
	c.buckets[h] = append(c.buckets[h], S)
	c.count++
	return S
}

// size returns the number of distinct item sets created.
func (c *itemSetCache) size() int {
	c.Lock()
	defer c.Unlock()
	return c.count
}

// === Closure and Goto-Set Operations =======================================

// Closure computes the LR(1) closure of a set of items: for every item
// [A -> α • N β, a] and every rule N -> γ, the items [N -> • γ, b] are added
// for every terminal b in FIRST(β a), until nothing changes.
//
// The result does not depend on the order of the arguments. It is interned,
// i.e. closures with identical items are the same object.
func (ga *LRAnalysis) Closure(kernel ...Item) *ItemSet {
	C := treeset.NewWith(itemComparator)
	work := arraylist.New()
	for _, i := range kernel {
		if !C.Contains(i) {
			C.Add(i)
			work.Add(i)
		}
	}
	for !work.Empty() {
		x, _ := work.Get(work.Size() - 1)
		work.Remove(work.Size() - 1)
		item := x.(Item)
		N, ok := item.PeekSymbol()
		if !ok || !ga.g.IsNonTerminal(N) {
			continue
		}
		lookaheads := ga.FirstOfSequence(append(item.Rest(), item.la))
		for _, r := range ga.g.RulesFor(N) {
			for _, b := range lookaheads.Symbols() {
				if b == Epsilon {
					continue
				}
				if n := r.Start(b); !C.Contains(n) {
					C.Add(n)
					work.Add(n)
				}
			}
		}
	}
	items := make([]Item, 0, C.Size())
	for _, x := range C.Values() {
		items = append(items, x.(Item))
	}
	return ga.items.intern(items)
}

// Goto computes the closure of all items of S with the dot advanced over A.
// It returns nil if no item of S has A after the dot.
func (ga *LRAnalysis) Goto(S *ItemSet, A Symbol) *ItemSet {
	var kernel []Item
	for _, i := range S.items {
		if X, ok := i.PeekSymbol(); ok && X == A {
			kernel = append(kernel, i.Advance())
		}
	}
	if len(kernel) == 0 {
		return nil
	}
	G := ga.Closure(kernel...)
	tracer().Debugf("goto(%s) --%s--> %s", S, A, G)
	return G
}

package lr

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/utils"
)

// Item is an LR(1) item [A -> α • β, a]: a rule, a dot position within the
// rule's right hand side and exactly one lookahead terminal. Items are values
// and may be compared with ==.
type Item struct {
	rule *Rule
	dot  int
	la   Symbol
}

// Start returns the item [A -> • α, la] for rule r.
func (r *Rule) Start(la Symbol) Item {
	return Item{rule: r, dot: 0, la: la}
}

// Rule returns the rule of an item.
func (i Item) Rule() *Rule {
	return i.rule
}

// Dot returns the dot position, 0 ≤ dot ≤ |RHS|.
func (i Item) Dot() int {
	return i.dot
}

// Lookahead returns the lookahead terminal of an item.
func (i Item) Lookahead() Symbol {
	return i.la
}

// PeekSymbol returns the symbol after the dot. It returns false for a
// complete item.
func (i Item) PeekSymbol() (Symbol, bool) {
	if i.dot >= len(i.rule.rhs) {
		return "", false
	}
	return i.rule.rhs[i.dot], true
}

// IsComplete is true if the dot is behind the right hand side.
func (i Item) IsComplete() bool {
	return i.dot >= len(i.rule.rhs)
}

// Advance returns a new item with the dot moved over the next symbol.
// Advancing a complete item is a programming error and panics.
func (i Item) Advance() Item {
	if i.IsComplete() {
		panic(fmt.Sprintf("cannot advance complete item %v", i))
	}
	return Item{rule: i.rule, dot: i.dot + 1, la: i.la}
}

// Prefix returns the symbols in front of the dot.
func (i Item) Prefix() []Symbol {
	return i.rule.rhs[:i.dot]
}

// Rest returns the symbols following the symbol after the dot, i.e. β for an
// item [A -> α • X β, a]. The result is a fresh slice.
func (i Item) Rest() []Symbol {
	if i.dot+1 >= len(i.rule.rhs) {
		return []Symbol{}
	}
	rest := make([]Symbol, len(i.rule.rhs)-i.dot-1, len(i.rule.rhs)-i.dot)
	copy(rest, i.rule.rhs[i.dot+1:])
	return rest
}

func (i Item) String() string {
	var b strings.Builder
	b.WriteString(string(i.rule.LHS))
	b.WriteString(" ->")
	for k, A := range i.rule.rhs {
		if k == i.dot {
			b.WriteString(" •")
		}
		b.WriteString(" ")
		b.WriteString(string(A))
	}
	if i.IsComplete() {
		b.WriteString(" •")
	}
	b.WriteString(", ")
	b.WriteString(string(i.la))
	return b.String()
}

// We need this for sorting items canonically: by rule, then by dot, then by
// lookahead.
func itemComparator(a, b interface{}) int {
	i1 := a.(Item)
	i2 := b.(Item)
	if c := utils.IntComparator(i1.rule.Serial, i2.rule.Serial); c != 0 {
		return c
	}
	if c := utils.IntComparator(i1.dot, i2.dot); c != 0 {
		return c
	}
	return utils.StringComparator(string(i1.la), string(i2.la))
}

package lr

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

const exprGrammar = `
E -> E + T | T
T -> T * F | F
F -> ( E ) | id
`

func TestTableForSmallGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lr1.lr")
	defer teardown()
	//
	assert := assert.New(t)
	g, _ := ParseGrammar("G", "S", "S -> A B | A")
	table, err := BuildTable(g)
	if !assert.NoError(err) {
		return
	}
	table.Dump()
	assert.Equal(4, table.Size())
	S0 := table.Start()
	assert.Equal(0, table.StateID(S0))
	row := table.Row(S0)
	assert.Len(row.Shift, 1)
	assert.Len(row.Goto, 1)
	assert.Empty(row.Reduce)
	// shift targets are numbered before goto targets
	assert.Equal(1, table.StateID(row.Shift["A"]))
	assert.Equal(2, table.StateID(row.Goto["S"]))
	assert.True(table.Accepting(table.State(2)))
	row1 := table.Row(table.State(1))
	assert.Equal(g.Rule(2), row1.Reduce[EOF])
	assert.Equal(3, table.StateID(row1.Shift["B"]))
	assert.Nil(table.State(4))
	assert.Equal(-1, table.StateID(nil))
}

func TestTableDragonBook(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lr1.lr")
	defer teardown()
	//
	assert := assert.New(t)
	g, _ := ParseGrammar("G", "S", "S -> C C\nC -> c C | d")
	table, err := BuildTable(g)
	if !assert.NoError(err) {
		return
	}
	// canonical LR(1) has 10 states for this grammar, LALR(1) would have 7
	assert.Equal(10, table.Size())
	for _, S := range table.States() {
		row := table.Row(S)
		for A := range row.Shift {
			_, clash := row.Reduce[A]
			assert.False(clash, "shift and reduce keys overlap on %s", A)
		}
	}
}

func TestTableExpressionGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lr1.lr")
	defer teardown()
	//
	assert := assert.New(t)
	g, _ := ParseGrammar("Expr", "E", exprGrammar)
	table, err := BuildTable(g)
	if !assert.NoError(err) {
		return
	}
	s := table.String()
	t.Logf("\n%s", s)
	assert.True(strings.Contains(s, "acc"))
	assert.True(strings.Contains(s, "s1"))
	var dot strings.Builder
	assert.NoError(table.ToGraphViz(&dot))
	assert.True(strings.HasPrefix(dot.String(), "digraph {"))
	assert.Contains(dot.String(), "s000 [fillcolor=white")
	assert.Contains(dot.String(), "lightgray")
	assert.Contains(dot.String(), `E' -\> • E, #eof`)
}

func TestReduceReduceConflict(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lr1.lr")
	defer teardown()
	//
	assert := assert.New(t)
	g, _ := ParseGrammar("G", "S", "S -> A | B\nA -> x\nB -> x")
	_, err := BuildTable(g)
	var gerr *GrammarError
	if !assert.True(errors.As(err, &gerr)) {
		return
	}
	t.Log(err)
	assert.True(IsConflict(err))
	assert.Equal(ReduceReduceConflict, gerr.Kind)
	assert.Equal(EOF, gerr.Symbol)
	if assert.Len(gerr.Rules, 2) {
		lhs := []Symbol{gerr.Rules[0].LHS, gerr.Rules[1].LHS}
		assert.ElementsMatch([]Symbol{"A", "B"}, lhs)
	}
	assert.ElementsMatch([]string{"A -> x •, #eof", "B -> x •, #eof"}, gerr.Items)
}

func TestShiftReduceConflict(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lr1.lr")
	defer teardown()
	//
	assert := assert.New(t)
	g, _ := ParseGrammar("G", "E", "E -> E + E | n")
	_, err := BuildTable(g)
	var gerr *GrammarError
	if !assert.True(errors.As(err, &gerr)) {
		return
	}
	t.Log(err)
	assert.Equal(ShiftReduceConflict, gerr.Kind)
	assert.Equal(Symbol("+"), gerr.Symbol)
	if assert.Len(gerr.Rules, 1) {
		assert.Equal("E -> E + E", gerr.Rules[0].String())
	}
	assert.Contains(gerr.Items, "E -> E + E •, +")
	assert.Contains(err.Error(), "items of state:")
}

func TestNonAugmentedStart(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lr1.lr")
	defer teardown()
	//
	assert := assert.New(t)
	g, err := ParseGrammar("G", "S", "S -> a | b", AugmentStart(false))
	if !assert.NoError(err) {
		return
	}
	_, err = BuildTable(g)
	var gerr *GrammarError
	if assert.True(errors.As(err, &gerr)) {
		assert.Equal(StartError, gerr.Kind)
	}
	g, _ = ParseGrammar("G", "S", "S -> A\nA -> a | b", AugmentStart(false))
	table, err := BuildTable(g)
	assert.NoError(err)
	assert.Equal(Symbol("S"), g.StartSymbol())
	if assert.Equal(4, table.Size()) {
		assert.True(table.Accepting(table.State(3)))
	}
}

func TestTableIsMemoized(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lr1.lr")
	defer teardown()
	//
	assert := assert.New(t)
	g, _ := ParseGrammar("Expr", "E", exprGrammar)
	var wg sync.WaitGroup
	tables := make([]*Table, 8)
	for k := range tables {
		wg.Add(1)
		go func(k int) {
			defer wg.Done()
			tables[k], _ = BuildTable(g)
		}(k)
	}
	wg.Wait()
	for _, table := range tables[1:] {
		assert.Same(tables[0], table)
	}
	// a fresh build consists of the identical (interned) states
	table, err := NewTableGenerator(Analysis(g)).CreateTable()
	if !assert.NoError(err) {
		return
	}
	assert.NotSame(tables[0], table)
	assert.Equal(tables[0].States(), table.States())
	for _, S := range table.States() {
		assert.Equal(tables[0].Row(S), table.Row(S))
	}
}

func TestConcurrentClosures(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lr1.lr")
	defer teardown()
	//
	assert := assert.New(t)
	g, _ := ParseGrammar("Expr", "E", exprGrammar)
	ga := Analysis(g)
	var wg sync.WaitGroup
	results := make([]*ItemSet, 16)
	for k := range results {
		wg.Add(1)
		go func(k int) {
			defer wg.Done()
			results[k] = ga.Closure(g.Rule(0).Start(EOF))
		}(k)
	}
	wg.Wait()
	for _, S := range results[1:] {
		assert.Same(results[0], S)
	}
}

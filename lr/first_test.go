package lr

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

const epsGrammar = `
S -> A a
A -> B D
B -> b |
D -> d |
`

func TestFirstSets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lr1.lr")
	defer teardown()
	//
	g, err := ParseGrammar("G", "S", epsGrammar)
	if err != nil {
		t.Fatal(err)
	}
	ga := Analysis(g)
	testCases := []struct {
		name     string
		symbols  []Symbol
		expected []Symbol
	}{
		{name: "FIRST(S)", symbols: []Symbol{"S"}, expected: []Symbol{"a", "b", "d"}},
		{name: "FIRST(A)", symbols: []Symbol{"A"}, expected: []Symbol{Epsilon, "b", "d"}},
		{name: "FIRST(B)", symbols: []Symbol{"B"}, expected: []Symbol{Epsilon, "b"}},
		{name: "FIRST(terminal)", symbols: []Symbol{"a"}, expected: []Symbol{"a"}},
		{name: "FIRST(B D)", symbols: []Symbol{"B", "D"}, expected: []Symbol{Epsilon, "b", "d"}},
		{name: "FIRST(B a)", symbols: []Symbol{"B", "a"}, expected: []Symbol{"a", "b"}},
		{name: "FIRST(D #eof)", symbols: []Symbol{"D", EOF}, expected: []Symbol{EOF, "d"}},
		{name: "FIRST()", symbols: []Symbol{}, expected: []Symbol{Epsilon}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			actual := ga.FirstOfSequence(tc.symbols)
			assert.Equal(tc.expected, actual.Symbols(), "%s = %v", tc.name, actual)
		})
	}
}

func TestFirstSetsAreComputedOnce(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lr1.lr")
	defer teardown()
	//
	assert := assert.New(t)
	g, _ := ParseGrammar("G", "S", epsGrammar)
	ga := Analysis(g)
	assert.Same(ga, Analysis(g))
	assert.Same(ga.First("A"), Analysis(g).First("A"))
}

func TestFirstSetsGrowMonotonically(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lr1.lr")
	defer teardown()
	//
	assert := assert.New(t)
	// left recursion and a chain of nullable non-terminals
	g, err := ParseGrammar("G", "E", `
		E -> E + T | T
		T -> X Y F
		X -> x |
		Y -> X |
		F -> ( E ) | id
	`)
	if !assert.NoError(err) {
		return
	}
	var snapshots []map[Symbol]*TerminalSet
	first, passes := computeFirstSets(g, func(pass int, first map[Symbol]*TerminalSet) {
		snapshot := make(map[Symbol]*TerminalSet, len(first))
		for N, f := range first {
			snapshot[N] = f.Copy()
		}
		snapshots = append(snapshots, snapshot)
	})
	assert.Equal(passes, len(snapshots))
	assert.GreaterOrEqual(passes, 2)
	for k := 1; k < len(snapshots); k++ {
		for N, f := range snapshots[k-1] {
			assert.True(f.IsSubsetOf(snapshots[k][N]), "FIRST(%s) shrinks in pass %d", N, k+1)
		}
	}
	last, prev := snapshots[len(snapshots)-1], snapshots[len(snapshots)-2]
	for N, f := range last {
		assert.True(f.Equals(prev[N]), "last pass changed FIRST(%s)", N)
	}
	assert.Equal([]Symbol{"(", "id", "x"}, first["E"].Symbols())
	assert.Equal([]Symbol{Epsilon, "x"}, first["Y"].Symbols())
}

package lr

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestClosureOfStartItem(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lr1.lr")
	defer teardown()
	//
	assert := assert.New(t)
	g, err := ParseGrammar("G", "S", "S -> A B | A")
	if !assert.NoError(err) {
		return
	}
	ga := Analysis(g)
	S0 := ga.Closure(g.Rule(0).Start(EOF))
	S0.Dump()
	assert.Equal(3, S0.Size())
	assert.Equal("{ S' -> • S, #eof, S -> • A B, #eof, S -> • A, #eof }", S0.String())
	assert.True(S0.Contains(g.Rule(2).Start(EOF)))
	assert.False(S0.Contains(g.Rule(2).Start("B")))
	assert.NotEmpty(S0.Hash())
}

func TestClosureLookaheads(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lr1.lr")
	defer teardown()
	//
	assert := assert.New(t)
	// Dragon book, example 4.54
	g, err := ParseGrammar("G", "S", `
		S -> C C
		C -> c C | d
	`)
	if !assert.NoError(err) {
		return
	}
	ga := Analysis(g)
	S0 := ga.Closure(g.Rule(0).Start(EOF))
	// S' -> •S, S -> •C C with #eof, plus C -> •c C and C -> •d with c and d
	assert.Equal(6, S0.Size())
	for _, la := range []Symbol{"c", "d"} {
		assert.True(S0.Contains(g.Rule(2).Start(la)), "C -> • c C, %s", la)
		assert.True(S0.Contains(g.Rule(3).Start(la)), "C -> • d, %s", la)
	}
	assert.False(S0.Contains(g.Rule(2).Start(EOF)))
	S := ga.Goto(S0, "C")
	// S -> C • C, #eof and C-items with lookahead #eof only
	assert.Equal(3, S.Size())
	assert.True(S.Contains(g.Rule(3).Start(EOF)))
	assert.Nil(ga.Goto(S0, "x"))
}

func TestClosuresAreInterned(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lr1.lr")
	defer teardown()
	//
	assert := assert.New(t)
	g, _ := ParseGrammar("G", "S", "S -> C C\nC -> c C | d")
	ga := Analysis(g)
	S0 := ga.Closure(g.Rule(0).Start(EOF))
	// closing a closed set is the identity
	assert.Same(S0, ga.Closure(S0.Items()...))
	// order of kernel items does not matter
	i1, i2 := g.Rule(2).Start("c"), g.Rule(3).Start("d")
	assert.Same(ga.Closure(i1, i2), ga.Closure(i2, i1))
	assert.Same(ga.Closure(i1, i2), ga.Closure(i2, i1, i2))
	assert.NotSame(ga.Closure(i1), ga.Closure(i2))
	// goto-sets reached on different paths are identical
	I3 := ga.Goto(S0, "c")
	assert.Same(I3, ga.Goto(I3, "c"))
	n := ga.items.size()
	ga.Closure(g.Rule(0).Start(EOF))
	assert.Equal(n, ga.items.size(), "cache grew for a known closure")
}

package lr

import (
	"fmt"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

// parse is a minimal shift/reduce driver for compiled tables. It returns the
// sequence of rules reduced.
func parse(pt *ParseTable, input string) ([]int, error) {
	tokens := append(strings.Fields(input), string(EOF))
	stack := []int{0}
	var reductions []int
	pos := 0
	for {
		state := stack[len(stack)-1]
		a := Symbol(tokens[pos])
		kind, v := pt.Action(state, a)
		switch kind {
		case ShiftAction:
			stack = append(stack, v)
			pos++
		case ReduceAction:
			r := pt.Rule(v)
			stack = stack[:len(stack)-r.Len()]
			next, ok := pt.Goto(stack[len(stack)-1], r.LHS)
			if !ok {
				return reductions, fmt.Errorf("no goto for %s in state %d", r.LHS, stack[len(stack)-1])
			}
			stack = append(stack, next)
			reductions = append(reductions, v)
		case AcceptAction:
			return reductions, nil
		default:
			return reductions, fmt.Errorf("syntax error at token %d (%s) in state %d", pos, a, state)
		}
	}
}

func compiledExpressionTable(t *testing.T) *ParseTable {
	g, err := ParseGrammar("Expr", "E", exprGrammar)
	if err != nil {
		t.Fatal(err)
	}
	table, err := BuildTable(g)
	if err != nil {
		t.Fatal(err)
	}
	return table.Compile()
}

func TestCompiledTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lr1.lr")
	defer teardown()
	//
	assert := assert.New(t)
	pt := compiledExpressionTable(t)
	assert.Equal(Symbol("E'"), pt.Start)
	assert.Equal(EOF, pt.Terminals[len(pt.Terminals)-1])
	assert.Equal(7, pt.Rules())
	kind, _ := pt.Action(0, "id")
	assert.Equal(ShiftAction, kind)
	kind, _ = pt.Action(0, "+")
	assert.Equal(NoAction, kind)
	kind, _ = pt.Action(0, "unknown")
	assert.Equal(NoAction, kind)
	kind, _ = pt.Action(pt.States, "id")
	assert.Equal(NoAction, kind)
	_, ok := pt.Goto(0, "E")
	assert.True(ok)
	_, ok = pt.Goto(0, "id")
	assert.False(ok)
	assert.Nil(pt.Rule(7))
	assert.Equal("shift", ShiftAction.String())
}

func TestCompiledTableParses(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lr1.lr")
	defer teardown()
	//
	assert := assert.New(t)
	pt := compiledExpressionTable(t)
	reductions, err := parse(pt, "id + id * id")
	if !assert.NoError(err) {
		return
	}
	// F->id T->F E->T F->id T->F F->id T->T*F E->E+T
	assert.Equal([]int{6, 4, 2, 6, 4, 6, 3, 1}, reductions)
	_, err = parse(pt, "( id + id ) * id")
	assert.NoError(err)
	_, err = parse(pt, "id +")
	assert.Error(err)
	_, err = parse(pt, "id id")
	assert.Error(err)
}

func TestParseTableBinaryFormat(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lr1.lr")
	defer teardown()
	//
	assert := assert.New(t)
	pt := compiledExpressionTable(t)
	data, err := pt.MarshalBinary()
	if !assert.NoError(err) {
		return
	}
	restored := &ParseTable{}
	if !assert.NoError(restored.UnmarshalBinary(data)) {
		return
	}
	assert.Equal(pt.GrammarID, restored.GrammarID)
	assert.Equal(pt.Name, restored.Name)
	assert.Equal(pt.Start, restored.Start)
	assert.Equal(pt.Terminals, restored.Terminals)
	assert.Equal(pt.NonTerminals, restored.NonTerminals)
	assert.Equal(pt.States, restored.States)
	assert.Equal(pt.action.ValueCount(), restored.action.ValueCount())
	assert.Equal("T -> T * F", restored.Rule(3).String())
	r1, err1 := parse(pt, "id * ( id + id )")
	r2, err2 := parse(restored, "id * ( id + id )")
	assert.NoError(err1)
	assert.NoError(err2)
	assert.Equal(r1, r2)
	// corrupt input
	assert.Error(restored.UnmarshalBinary(data[:len(data)/2]))
	assert.Error((&ParseTable{}).UnmarshalBinary([]byte("garbage")))
}

package lr

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dekarrin/rosed"
	"github.com/emirpasic/gods/lists/arraylist"
)

// Refer to "Compilers: Principles, Techniques, and Tools" by Aho, Lam, Sethi
// and Ullman, section 4.7.2 Constructing LR(1) Sets of Items.

// === Table Rows ============================================================

// TableRow holds the actions of one state of an LR(1) automaton. Shift and
// Reduce keys are terminals and are disjoint, Goto keys are non-terminals.
type TableRow struct {
	Shift  map[Symbol]*ItemSet
	Goto   map[Symbol]*ItemSet
	Reduce map[Symbol]*Rule
}

func newTableRow() *TableRow {
	return &TableRow{
		Shift:  make(map[Symbol]*ItemSet),
		Goto:   make(map[Symbol]*ItemSet),
		Reduce: make(map[Symbol]*Rule),
	}
}

// === LR(1) Table ===========================================================

// Table is the canonical LR(1) automaton for a grammar: its states, numbered
// in order of discovery, and one row of actions per state.
type Table struct {
	g      *Grammar
	S0     *ItemSet         // start state
	states []*ItemSet       // states in BFS order
	ids    map[*ItemSet]int // state numbers
	rows   map[*ItemSet]*TableRow
}

func newTable(g *Grammar) *Table {
	return &Table{
		g:    g,
		ids:  make(map[*ItemSet]int),
		rows: make(map[*ItemSet]*TableRow),
	}
}

// addState adds a state if it is not yet known. It returns true for new states.
func (t *Table) addState(S *ItemSet) bool {
	if _, ok := t.ids[S]; ok {
		return false
	}
	t.ids[S] = len(t.states)
	t.states = append(t.states, S)
	return true
}

// Grammar returns the grammar the table has been built for.
func (t *Table) Grammar() *Grammar {
	return t.g
}

// Start returns the start state.
func (t *Table) Start() *ItemSet {
	return t.S0
}

// Size returns the number of states.
func (t *Table) Size() int {
	return len(t.states)
}

// States returns all states, ordered by state number.
func (t *Table) States() []*ItemSet {
	states := make([]*ItemSet, len(t.states))
	copy(states, t.states)
	return states
}

// State returns the state with number id, or nil.
func (t *Table) State(id int) *ItemSet {
	if id < 0 || id >= len(t.states) {
		return nil
	}
	return t.states[id]
}

// StateID returns the number of state S, or -1 if S is not a state of t.
func (t *Table) StateID(S *ItemSet) int {
	if id, ok := t.ids[S]; ok {
		return id
	}
	return -1
}

// Row returns the actions for state S, or nil if S is not a state of t.
func (t *Table) Row(S *ItemSet) *TableRow {
	return t.rows[S]
}

// Accepting is true if S reduces by the start rule on EOF.
func (t *Table) Accepting(S *ItemSet) bool {
	row := t.rows[S]
	if row == nil {
		return false
	}
	r, ok := row.Reduce[EOF]
	return ok && r.LHS == t.g.StartSymbol()
}

// Dump is a debugging helper.
func (t *Table) Dump() {
	for id, S := range t.states {
		tracer().Debugf("--- state %03d -----------", id)
		S.Dump()
		row := t.rows[S]
		for _, A := range sortedKeys(row.Shift) {
			tracer().Debugf("    %s: shift %d", A, t.ids[row.Shift[A]])
		}
		for _, A := range sortedKeys(row.Goto) {
			tracer().Debugf("    %s: goto %d", A, t.ids[row.Goto[A]])
		}
		for _, A := range sortedKeys(row.Reduce) {
			tracer().Debugf("    %s: reduce [%s]", A, row.Reduce[A])
		}
	}
	tracer().Debugf("-------------------------")
}

// === Table Construction ====================================================

// BuildTable returns the LR(1) table for grammar g. The table is built on the
// first call for g; subsequent calls return the identical table (or error).
func BuildTable(g *Grammar) (*Table, error) {
	return g.LR1Table()
}

// LR1Table returns the LR(1) table for the grammar. See BuildTable.
func (g *Grammar) LR1Table() (*Table, error) {
	g.tableOnce.Do(func() {
		g.table, g.tableErr = NewTableGenerator(Analysis(g)).CreateTable()
	})
	return g.table, g.tableErr
}

// TableGenerator is a generator object to construct LR(1) tables.
// Clients usually call BuildTable, which memoizes its result per grammar.
// A TableGenerator builds a new table on every call to CreateTable; as
// item-sets are interned, tables built for the same grammar consist of
// identical states.
type TableGenerator struct {
	g  *Grammar
	ga *LRAnalysis
}

// NewTableGenerator creates a new TableGenerator for an analysed grammar.
func NewTableGenerator(ga *LRAnalysis) *TableGenerator {
	return &TableGenerator{
		g:  ga.Grammar(),
		ga: ga,
	}
}

// CreateTable constructs the canonical LR(1) automaton by a breadth-first
// exploration of the states reachable from the start state
// closure({[S' -> • S, #eof]}). It fails with a GrammarError if the start
// symbol does not have exactly one rule, or on the first conflict found.
func (lrgen *TableGenerator) CreateTable() (*Table, error) {
	tracer().Debugf("=== build LR(1) table ===========================================")
	startRule, err := lrgen.g.startRule()
	if err != nil {
		tracer().Errorf("%v", err)
		return nil, err
	}
	t := newTable(lrgen.g)
	t.S0 = lrgen.ga.Closure(startRule.Start(EOF))
	t.addState(t.S0)
	queue := arraylist.New(t.S0)
	for !queue.Empty() {
		x, _ := queue.Get(0)
		queue.Remove(0)
		S := x.(*ItemSet)
		row, err := lrgen.buildRow(S)
		if err != nil {
			tracer().Errorf("%v", err)
			return nil, err
		}
		t.rows[S] = row
		for _, A := range sortedKeys(row.Shift) {
			if t.addState(row.Shift[A]) {
				queue.Add(row.Shift[A])
			}
		}
		for _, A := range sortedKeys(row.Goto) {
			if t.addState(row.Goto[A]) {
				queue.Add(row.Goto[A])
			}
		}
	}
	tracer().Infof("LR(1) table for %s has %d states", lrgen.g.Name, t.Size())
	return t, nil
}

// buildRow computes the actions of state S. Complete items produce reduce
// entries for their lookahead, all other items are partitioned by the symbol
// after the dot, producing goto entries for non-terminals and shift entries
// for terminals.
func (lrgen *TableGenerator) buildRow(S *ItemSet) (*TableRow, error) {
	row := newTableRow()
	partition := make(map[Symbol]bool)
	for _, i := range S.items {
		A, ok := i.PeekSymbol()
		if ok {
			partition[A] = true
			continue
		}
		if r, exists := row.Reduce[i.la]; exists && r != i.rule {
			return nil, conflictError(ReduceReduceConflict, S, i.la, r, i.rule)
		}
		row.Reduce[i.la] = i.rule
	}
	for _, A := range sortedKeys(partition) {
		next := lrgen.ga.Goto(S, A)
		if lrgen.g.IsNonTerminal(A) {
			row.Goto[A] = next
			continue
		}
		if r, exists := row.Reduce[A]; exists {
			return nil, conflictError(ShiftReduceConflict, S, A, r)
		}
		row.Shift[A] = next
	}
	return row, nil
}

func sortedKeys[V any](m map[Symbol]V) []Symbol {
	keys := make([]Symbol, 0, len(m))
	for A := range m {
		keys = append(keys, A)
	}
	sortSymbols(keys)
	return keys
}

// === Output ================================================================

// String renders the table with one line per state: ACTION columns for every
// terminal (including #eof), then GOTO columns for every non-terminal.
// Shift actions are printed as sN, reductions as rN (rule number), accept as acc.
func (t *Table) String() string {
	terms := append(t.g.Terminals(), EOF)
	nonterms := t.g.NonTerminals()
	header := []string{"S", "|"}
	for _, A := range terms {
		header = append(header, string(A))
	}
	header = append(header, "|")
	for _, N := range nonterms {
		if N == t.g.StartSymbol() && t.g.IsAugmented() {
			continue
		}
		header = append(header, string(N))
	}
	data := [][]string{header}
	for id, S := range t.states {
		row := t.rows[S]
		line := []string{strconv.Itoa(id), "|"}
		for _, A := range terms {
			line = append(line, t.actionCell(row, A))
		}
		line = append(line, "|")
		for _, N := range nonterms {
			if N == t.g.StartSymbol() && t.g.IsAugmented() {
				continue
			}
			cell := ""
			if G, ok := row.Goto[N]; ok {
				cell = strconv.Itoa(t.ids[G])
			}
			line = append(line, cell)
		}
		data = append(data, line)
	}
	return rosed.
		Edit("").
		InsertTableOpts(0, data, 10, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}

func (t *Table) actionCell(row *TableRow, A Symbol) string {
	if S, ok := row.Shift[A]; ok {
		return fmt.Sprintf("s%d", t.ids[S])
	}
	if r, ok := row.Reduce[A]; ok {
		if A == EOF && r.LHS == t.g.StartSymbol() {
			return "acc"
		}
		return fmt.Sprintf("r%d", r.Serial)
	}
	return ""
}

// ToGraphViz exports the automaton to the Graphviz Dot format.
func (t *Table) ToGraphViz(w io.Writer) error {
	var b strings.Builder
	b.WriteString(`digraph {
graph [splines=true, fontname=Helvetica, fontsize=10];
node [shape=Mrecord, style=filled, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`)
	for id, S := range t.states {
		fmt.Fprintf(&b, "s%03d [fillcolor=%s label=\"{%03d | %s}\"]\n",
			id, t.nodecolor(S), id, forGraphviz(S))
	}
	for id, S := range t.states {
		row := t.rows[S]
		for _, A := range sortedKeys(row.Shift) {
			fmt.Fprintf(&b, "s%03d -> s%03d [label=\"%s\"]\n", id, t.ids[row.Shift[A]], escapeDot(string(A)))
		}
		for _, A := range sortedKeys(row.Goto) {
			fmt.Fprintf(&b, "s%03d -> s%03d [label=\"%s\" style=dashed]\n", id, t.ids[row.Goto[A]], escapeDot(string(A)))
		}
	}
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func (t *Table) nodecolor(S *ItemSet) string {
	if t.Accepting(S) {
		return "lightgray"
	}
	return "white"
}

func forGraphviz(S *ItemSet) string {
	lines := make([]string, len(S.items))
	for k, item := range S.items {
		lines[k] = escapeDot(item.String())
	}
	return strings.Join(lines, "\\l") + "\\l"
}

var dotEscaper = strings.NewReplacer(
	`\`, `\\`, `"`, `\"`, `{`, `\{`, `}`, `\}`, `|`, `\|`, `<`, `\<`, `>`, `\>`,
)

func escapeDot(s string) string {
	return dotEscaper.Replace(s)
}

package lr

import (
	"fmt"

	"github.com/dekarrin/rezi"
	"github.com/google/uuid"
	"github.com/newtoncy/LR1/lr/sparse"
)

// ActionKind is the kind of an entry of a compiled ACTION table.
type ActionKind int

// Actions for parser action tables.
const (
	NoAction ActionKind = iota
	ShiftAction
	ReduceAction
	AcceptAction
)

func (k ActionKind) String() string {
	switch k {
	case ShiftAction:
		return "shift"
	case ReduceAction:
		return "reduce"
	case AcceptAction:
		return "accept"
	}
	return "error"
}

// Entries of the ACTION matrix are encoded as
//
//    v ≥ 0    shift and go to state v
//    v = -1   accept
//    v ≤ -2   reduce by rule -v-2
//
const acceptValue = -1

func encodeReduce(serial int) int32 {
	return int32(-serial - 2)
}

// ParseTable is a compiled LR(1) table: states are numbered, terminals and
// non-terminals are mapped to columns, and ACTION and GOTO entries are held
// in sparse integer matrices. A ParseTable no longer references the item
// sets of the automaton and may be stored with MarshalBinary.
type ParseTable struct {
	GrammarID    uuid.UUID // fingerprint of the grammar the table was compiled from
	Name         string
	Start        Symbol   // start symbol of the automaton
	Terminals    []Symbol // ACTION columns, #eof last
	NonTerminals []Symbol // GOTO columns
	States       int
	rules        []*Rule
	action       *sparse.IntMatrix
	gotos        *sparse.IntMatrix
	tcol         map[Symbol]int
	ncol         map[Symbol]int
}

// Compile creates a compiled parse table from an LR(1) table. State numbers
// are identical to t.StateID.
func (t *Table) Compile() *ParseTable {
	pt := &ParseTable{
		GrammarID:    t.g.Fingerprint(),
		Name:         t.g.Name,
		Start:        t.g.StartSymbol(),
		Terminals:    append(t.g.Terminals(), EOF),
		NonTerminals: t.g.NonTerminals(),
		States:       t.Size(),
		rules:        t.g.Rules(),
	}
	pt.init()
	for id, S := range t.states {
		row := t.rows[S]
		for A, next := range row.Shift {
			pt.action.Set(id, pt.tcol[A], int32(t.ids[next]))
		}
		for A, r := range row.Reduce {
			if A == EOF && r.LHS == pt.Start {
				pt.action.Set(id, pt.tcol[A], acceptValue)
			} else {
				pt.action.Set(id, pt.tcol[A], encodeReduce(r.Serial))
			}
		}
		for N, next := range row.Goto {
			pt.gotos.Set(id, pt.ncol[N], int32(t.ids[next]))
		}
	}
	tracer().Infof("compiled table %s: %d states, %d actions, %d gotos", pt.Name,
		pt.States, pt.action.ValueCount(), pt.gotos.ValueCount())
	return pt
}

func (pt *ParseTable) init() {
	pt.tcol = make(map[Symbol]int, len(pt.Terminals))
	for j, A := range pt.Terminals {
		pt.tcol[A] = j
	}
	pt.ncol = make(map[Symbol]int, len(pt.NonTerminals))
	for j, N := range pt.NonTerminals {
		pt.ncol[N] = j
	}
	pt.action = sparse.NewIntMatrix(pt.States, len(pt.Terminals), sparse.DefaultNullValue)
	pt.gotos = sparse.NewIntMatrix(pt.States, len(pt.NonTerminals), sparse.DefaultNullValue)
}

// Action returns the action for a state and a lookahead terminal. The int
// result is the target state for shift actions and the rule number for
// reduce actions.
func (pt *ParseTable) Action(state int, a Symbol) (ActionKind, int) {
	j, ok := pt.tcol[a]
	if !ok || state < 0 || state >= pt.States {
		return NoAction, 0
	}
	v := pt.action.Value(state, j)
	switch {
	case v == pt.action.NullValue():
		return NoAction, 0
	case v == acceptValue:
		return AcceptAction, 0
	case v >= 0:
		return ShiftAction, int(v)
	}
	return ReduceAction, int(-v - 2)
}

// Goto returns the state to go to after reducing to non-terminal N.
func (pt *ParseTable) Goto(state int, N Symbol) (int, bool) {
	j, ok := pt.ncol[N]
	if !ok || state < 0 || state >= pt.States {
		return 0, false
	}
	v := pt.gotos.Value(state, j)
	if v == pt.gotos.NullValue() {
		return 0, false
	}
	return int(v), true
}

// Rule returns rule no. i of the grammar the table was compiled from.
func (pt *ParseTable) Rule(i int) *Rule {
	if i < 0 || i >= len(pt.rules) {
		return nil
	}
	return pt.rules[i]
}

// Rules returns the number of rules.
func (pt *ParseTable) Rules() int {
	return len(pt.rules)
}

// --- Binary format ---------------------------------------------------------

const parseTableMagic = "lr1/table/v1"

// MarshalBinary encodes a parse table with its rules and matrices.
func (pt *ParseTable) MarshalBinary() ([]byte, error) {
	var data []byte

	data = append(data, rezi.EncString(parseTableMagic)...)
	data = append(data, rezi.EncString(pt.GrammarID.String())...)
	data = append(data, rezi.EncString(pt.Name)...)
	data = append(data, rezi.EncString(string(pt.Start))...)
	data = append(data, rezi.EncInt(pt.States)...)
	data = append(data, encSymbols(pt.Terminals)...)
	data = append(data, encSymbols(pt.NonTerminals)...)
	data = append(data, rezi.EncInt(len(pt.rules))...)
	for _, r := range pt.rules {
		data = append(data, rezi.EncString(string(r.LHS))...)
		data = append(data, encSymbols(r.rhs)...)
	}
	data = append(data, encMatrix(pt.action)...)
	data = append(data, encMatrix(pt.gotos)...)

	return data, nil
}

// UnmarshalBinary decodes a parse table encoded with MarshalBinary.
func (pt *ParseTable) UnmarshalBinary(data []byte) error {
	var n int
	var err error
	var magic, id, start string

	if magic, n, err = rezi.DecString(data); err != nil {
		return fmt.Errorf("decoding table header: %w", err)
	}
	if magic != parseTableMagic {
		return fmt.Errorf("not a compiled parse table: %q", magic)
	}
	data = data[n:]
	if id, n, err = rezi.DecString(data); err != nil {
		return fmt.Errorf("decoding grammar ID: %w", err)
	}
	if pt.GrammarID, err = uuid.Parse(id); err != nil {
		return fmt.Errorf("decoding grammar ID: %w", err)
	}
	data = data[n:]
	if pt.Name, n, err = rezi.DecString(data); err != nil {
		return fmt.Errorf("decoding grammar name: %w", err)
	}
	data = data[n:]
	if start, n, err = rezi.DecString(data); err != nil {
		return fmt.Errorf("decoding start symbol: %w", err)
	}
	pt.Start = Symbol(start)
	data = data[n:]
	if pt.States, n, err = rezi.DecInt(data); err != nil {
		return fmt.Errorf("decoding state count: %w", err)
	}
	data = data[n:]
	if pt.Terminals, n, err = decSymbols(data); err != nil {
		return fmt.Errorf("decoding terminals: %w", err)
	}
	data = data[n:]
	if pt.NonTerminals, n, err = decSymbols(data); err != nil {
		return fmt.Errorf("decoding non-terminals: %w", err)
	}
	data = data[n:]
	var rulecnt int
	if rulecnt, n, err = rezi.DecInt(data); err != nil {
		return fmt.Errorf("decoding rule count: %w", err)
	}
	data = data[n:]
	pt.rules = make([]*Rule, rulecnt)
	for i := 0; i < rulecnt; i++ {
		var lhs string
		r := &Rule{Serial: i}
		if lhs, n, err = rezi.DecString(data); err != nil {
			return fmt.Errorf("decoding rule %d: %w", i, err)
		}
		r.LHS = Symbol(lhs)
		data = data[n:]
		if r.rhs, n, err = decSymbols(data); err != nil {
			return fmt.Errorf("decoding rule %d: %w", i, err)
		}
		data = data[n:]
		pt.rules[i] = r
	}
	pt.init()
	if n, err = decMatrix(data, pt.action); err != nil {
		return fmt.Errorf("decoding ACTION table: %w", err)
	}
	data = data[n:]
	if _, err = decMatrix(data, pt.gotos); err != nil {
		return fmt.Errorf("decoding GOTO table: %w", err)
	}
	return nil
}

func encSymbols(syms []Symbol) []byte {
	data := rezi.EncInt(len(syms))
	for _, A := range syms {
		data = append(data, rezi.EncString(string(A))...)
	}
	return data
}

func decSymbols(data []byte) ([]Symbol, int, error) {
	cnt, read, err := rezi.DecInt(data)
	if err != nil {
		return nil, 0, err
	}
	if cnt < 0 {
		return nil, 0, fmt.Errorf("symbol count < 0")
	}
	data = data[read:]
	syms := make([]Symbol, cnt)
	for i := range syms {
		s, n, err := rezi.DecString(data)
		if err != nil {
			return nil, 0, err
		}
		syms[i] = Symbol(s)
		data = data[n:]
		read += n
	}
	return syms, read, nil
}

func encMatrix(m *sparse.IntMatrix) []byte {
	data := rezi.EncInt(m.ValueCount())
	m.Each(func(i, j int, v int32) {
		data = append(data, rezi.EncInt(i)...)
		data = append(data, rezi.EncInt(j)...)
		data = append(data, rezi.EncInt(int(v))...)
	})
	return data
}

func decMatrix(data []byte, m *sparse.IntMatrix) (int, error) {
	cnt, read, err := rezi.DecInt(data)
	if err != nil {
		return 0, err
	}
	data = data[read:]
	for k := 0; k < cnt; k++ {
		var triplet [3]int
		for x := range triplet {
			v, n, err := rezi.DecInt(data)
			if err != nil {
				return 0, err
			}
			triplet[x] = v
			data = data[n:]
			read += n
		}
		i, j := triplet[0], triplet[1]
		if i < 0 || i >= m.M() || j < 0 || j >= m.N() {
			return 0, fmt.Errorf("entry (%d,%d) out of range", i, j)
		}
		m.Set(i, j, int32(triplet[2]))
	}
	return read, nil
}

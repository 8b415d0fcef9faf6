package lr

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/google/uuid"
)

// --- Symbols ---------------------------------------------------------------

// Symbol is a grammar symbol. A symbol is a non-terminal if and only if it
// is the left hand side of at least one rule; every other symbol is a terminal.
type Symbol string

// Reserved symbols. They live outside the space of loadable symbols, as every
// symbol starting with '#' is rejected by the grammar builder.
const (
	EOF     Symbol = "#eof" // end of input
	Epsilon Symbol = "#ε"   // the empty string, member of FIRST sets only
)

// IsReserved is true for the end-of-input and epsilon markers (and every other
// symbol starting with '#').
func (A Symbol) IsReserved() bool {
	return strings.HasPrefix(string(A), "#")
}

func (A Symbol) String() string {
	return string(A)
}

// --- Rules -----------------------------------------------------------------

// Rule is a raw production A -> X1 … Xn. Rules are created once by a grammar
// builder and are never modified afterwards. Rules do not carry a dot
// position or a lookahead; see type Item for this.
type Rule struct {
	Serial int    // ordinal number within its grammar
	LHS    Symbol // left hand side non-terminal
	rhs    []Symbol
}

// RHS returns a copy of the right hand side of a rule.
func (r *Rule) RHS() []Symbol {
	rhs := make([]Symbol, len(r.rhs))
	copy(rhs, r.rhs)
	return rhs
}

// Len returns the number of symbols on the right hand side.
func (r *Rule) Len() int {
	return len(r.rhs)
}

// IsEpsilon is true for a rule A -> ε.
func (r *Rule) IsEpsilon() bool {
	return len(r.rhs) == 0
}

func (r *Rule) String() string {
	if r.IsEpsilon() {
		return fmt.Sprintf("%s ->", r.LHS)
	}
	return fmt.Sprintf("%s -> %s", r.LHS, symbolsString(r.rhs))
}

func symbolsString(syms []Symbol) string {
	s := make([]string, len(syms))
	for i, A := range syms {
		s[i] = string(A)
	}
	return strings.Join(s, " ")
}

// --- Grammar ---------------------------------------------------------------

// Grammar is a context-free grammar. Create one with a GrammarBuilder or load
// it from text with LoadGrammar.
//
// A grammar owns the results of its analysis: FIRST sets, the item-set
// interning cache and the LR(1) table are computed on first request and kept
// with the grammar instance. Grammars may be shared between goroutines.
type Grammar struct {
	Name         string
	start        Symbol              // designated start symbol
	augmented    bool                // rule 0 is S' -> S
	rules        []*Rule             // all rules in load order
	lhs          map[Symbol][]*Rule  // rules grouped by left hand side
	lhsOrder     []Symbol            // non-terminals in order of first appearance
	terminals    map[Symbol]struct{} // symbols which are not LHS of a rule
	analysis     *LRAnalysis
	analysisOnce sync.Once
	table        *Table
	tableErr     error
	tableOnce    sync.Once
}

// Start returns the designated start symbol.
func (g *Grammar) Start() Symbol {
	return g.start
}

// StartSymbol returns the symbol the start state of an LR automaton is built
// from. For augmented grammars this is S', otherwise the designated start symbol.
func (g *Grammar) StartSymbol() Symbol {
	if g.augmented {
		return augmentedSymbol(g.start)
	}
	return g.start
}

// IsAugmented is true if rule 0 has been synthesized as S' -> S.
func (g *Grammar) IsAugmented() bool {
	return g.augmented
}

// Size returns the number of rules.
func (g *Grammar) Size() int {
	return len(g.rules)
}

// Rule returns rule no. i.
func (g *Grammar) Rule(i int) *Rule {
	if i < 0 || i >= len(g.rules) {
		return nil
	}
	return g.rules[i]
}

// Rules returns all rules of a grammar, ordered by serial number.
func (g *Grammar) Rules() []*Rule {
	rules := make([]*Rule, len(g.rules))
	copy(rules, g.rules)
	return rules
}

// RulesFor returns all rules with left hand side N, in load order.
func (g *Grammar) RulesFor(N Symbol) []*Rule {
	return g.lhs[N]
}

// IsNonTerminal is true if A is the left hand side of a rule.
func (g *Grammar) IsNonTerminal(A Symbol) bool {
	_, ok := g.lhs[A]
	return ok
}

// IsTerminal is true if A is used in a right hand side, but is not the left
// hand side of any rule. EOF is a terminal.
func (g *Grammar) IsTerminal(A Symbol) bool {
	if A == EOF {
		return true
	}
	_, ok := g.terminals[A]
	return ok
}

// Terminals returns the sorted list of terminals, not including EOF.
func (g *Grammar) Terminals() []Symbol {
	T := make([]Symbol, 0, len(g.terminals))
	for A := range g.terminals {
		T = append(T, A)
	}
	sortSymbols(T)
	return T
}

// NonTerminals returns the sorted list of non-terminals.
func (g *Grammar) NonTerminals() []Symbol {
	N := make([]Symbol, 0, len(g.lhs))
	for A := range g.lhs {
		N = append(N, A)
	}
	sortSymbols(N)
	return N
}

// startRule returns the single rule for the start symbol of the automaton.
func (g *Grammar) startRule() (*Rule, error) {
	S := g.StartSymbol()
	R := g.lhs[S]
	if len(R) != 1 {
		return nil, &GrammarError{
			Kind:   StartError,
			Symbol: S,
			Rules:  R,
			Msg:    fmt.Sprintf("start symbol %s must have exactly one rule, has %d", S, len(R)),
		}
	}
	return R[0], nil
}

// String returns the grammar in loadable text form. A synthesized start rule
// is not included.
func (g *Grammar) String() string {
	var b strings.Builder
	for _, N := range g.lhsOrder {
		if g.augmented && N == augmentedSymbol(g.start) {
			continue
		}
		alts := make([]string, 0, len(g.lhs[N]))
		for _, r := range g.lhs[N] {
			alts = append(alts, symbolsString(r.rhs))
		}
		b.WriteString(strings.TrimSpace(fmt.Sprintf("%s -> %s", N, strings.Join(alts, " | "))))
		b.WriteString("\n")
	}
	return b.String()
}

// Fingerprint returns a name-based UUID for the grammar's rules, start symbol
// and augmentation mode. Equal grammars have equal fingerprints.
func (g *Grammar) Fingerprint() uuid.UUID {
	text := fmt.Sprintf("start=%s augmented=%v\n%s", g.start, g.augmented, g.String())
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(text))
}

// Dump is a debugging helper, tracing all rules.
func (g *Grammar) Dump() {
	tracer().Debugf("--- %s --------------------------------------------", g.Name)
	tracer().Debugf("start symbol = %s", g.StartSymbol())
	for _, r := range g.rules {
		tracer().Debugf("%3d: %s", r.Serial, r)
	}
	tracer().Debugf("-------------------------------------------------------")
}

func augmentedSymbol(start Symbol) Symbol {
	return start + "'"
}

func sortSymbols(syms []Symbol) {
	sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })
}

// --- Grammar builder -------------------------------------------------------

// GrammarBuilder is a helper object to construct a grammar rule by rule.
//
//    b := lr.NewGrammarBuilder("G")
//    b.LHS("S").N("A").T("b").End()   // S  ->  A b
//    b.LHS("A").T("a").End()          // A  ->  a
//    b.LHS("A").Epsilon()             // A  ->
//    g, err := b.Grammar("S")
//
// Whether a symbol is a terminal or a non-terminal is decided by the rules
// alone; N and T are synonyms and exist for readability.
type GrammarBuilder struct {
	name  string
	rules []*Rule
	seen  map[string]bool
	err   error
}

// RuleBuilder collects the right hand side of a single rule.
type RuleBuilder struct {
	b   *GrammarBuilder
	lhs Symbol
	rhs []Symbol
}

// NewGrammarBuilder creates a builder for a grammar with a given name.
func NewGrammarBuilder(name string) *GrammarBuilder {
	return &GrammarBuilder{
		name: name,
		seen: make(map[string]bool),
	}
}

// LHS starts a new rule.
func (b *GrammarBuilder) LHS(name string) *RuleBuilder {
	b.checkSymbol(name)
	return &RuleBuilder{b: b, lhs: Symbol(name)}
}

// N appends non-terminal symbols to the right hand side.
func (rb *RuleBuilder) N(names ...string) *RuleBuilder {
	return rb.Sym(names...)
}

// T appends terminal symbols to the right hand side.
func (rb *RuleBuilder) T(names ...string) *RuleBuilder {
	return rb.Sym(names...)
}

// Sym appends symbols to the right hand side.
func (rb *RuleBuilder) Sym(names ...string) *RuleBuilder {
	for _, name := range names {
		rb.b.checkSymbol(name)
		rb.rhs = append(rb.rhs, Symbol(name))
	}
	return rb
}

// End completes a rule. If an identical rule has been added before, the
// existing rule is returned.
func (rb *RuleBuilder) End() *Rule {
	key := string(rb.lhs) + " -> " + symbolsString(rb.rhs)
	if rb.b.seen[key] {
		tracer().Debugf("dropping duplicate rule %s", key)
		for _, r := range rb.b.rules {
			if r.LHS == rb.lhs && symbolsString(r.rhs) == symbolsString(rb.rhs) {
				return r
			}
		}
	}
	rb.b.seen[key] = true
	r := &Rule{LHS: rb.lhs, rhs: rb.rhs}
	rb.b.rules = append(rb.b.rules, r)
	return r
}

// Epsilon completes a rule A -> ε.
func (rb *RuleBuilder) Epsilon() *Rule {
	rb.rhs = nil
	return rb.End()
}

func (b *GrammarBuilder) checkSymbol(name string) {
	if b.err != nil {
		return
	}
	b.err = checkSymbolName(name, 0)
}

func checkSymbolName(name string, line int) error {
	if name == "" {
		return &GrammarError{Kind: FormatError, Line: line, Msg: "empty symbol"}
	}
	if strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return &GrammarError{Kind: FormatError, Line: line, Symbol: Symbol(name),
			Msg: fmt.Sprintf("symbol %q contains whitespace", name)}
	}
	if Symbol(name).IsReserved() {
		return &GrammarError{Kind: FormatError, Line: line, Symbol: Symbol(name),
			Msg: fmt.Sprintf("symbol %q is reserved", name)}
	}
	return nil
}

// Option configures a grammar when it is created.
type Option func(g *Grammar)

// AugmentStart sets or clears augmentation of the start symbol. With
// augmentation (default) a rule S' -> S is synthesized as rule 0 and the
// designated start symbol S may have any number of rules. Without
// augmentation S itself is required to have exactly one rule.
func AugmentStart(b bool) Option {
	return func(g *Grammar) {
		g.augmented = b
	}
}

// Grammar returns the grammar built so far, with start symbol start.
func (b *GrammarBuilder) Grammar(start string, opts ...Option) (*Grammar, error) {
	if b.err != nil {
		return nil, b.err
	}
	g := &Grammar{
		Name:      b.name,
		start:     Symbol(start),
		augmented: true,
		lhs:       make(map[Symbol][]*Rule),
		terminals: make(map[Symbol]struct{}),
	}
	for _, opt := range opts {
		opt(g)
	}
	if len(b.rules) == 0 {
		return nil, &GrammarError{Kind: StartError, Symbol: g.start, Msg: "grammar has no rules"}
	}
	rules := make([]*Rule, 0, len(b.rules)+1)
	if g.augmented {
		S := augmentedSymbol(g.start)
		for _, r := range b.rules {
			if r.LHS == S {
				return nil, &GrammarError{Kind: StartError, Symbol: S, Rules: []*Rule{r},
					Msg: fmt.Sprintf("symbol %s is reserved for the augmented start rule", S)}
			}
		}
		rules = append(rules, &Rule{LHS: S, rhs: []Symbol{g.start}})
	}
	for _, r := range b.rules {
		rules = append(rules, &Rule{LHS: r.LHS, rhs: r.rhs})
	}
	for i, r := range rules {
		r.Serial = i
		if _, ok := g.lhs[r.LHS]; !ok {
			g.lhsOrder = append(g.lhsOrder, r.LHS)
		}
		g.lhs[r.LHS] = append(g.lhs[r.LHS], r)
	}
	g.rules = rules
	if !g.IsNonTerminal(g.start) {
		return nil, &GrammarError{Kind: StartError, Symbol: g.start,
			Msg: fmt.Sprintf("start symbol %s has no rules", g.start)}
	}
	for _, r := range rules {
		for _, A := range r.rhs {
			if !g.IsNonTerminal(A) {
				g.terminals[A] = struct{}{}
			}
		}
	}
	tracer().Infof("grammar %s has %d rules, %d terminals, %d non-terminals",
		g.Name, len(g.rules), len(g.terminals), len(g.lhs))
	return g, nil
}

/*
Package lr implements the construction of canonical LR(1) parser tables.

Building a Grammar

Grammars are either loaded from text or specified using a grammar builder
object. In text form, every line holds the rules for one non-terminal;
alternatives are separated by '|' and an empty alternative denotes an
epsilon-production. Lines starting with '#' are comments.

    g, err := lr.ParseGrammar("G", "S", `
        S -> A a
        A -> B D
        B -> b |
        D -> d |
    `)

The same grammar using a builder:

    b := lr.NewGrammarBuilder("G")
    b.LHS("S").N("A").T("a").End()     // S  ->  A a
    b.LHS("A").N("B").N("D").End()     // A  ->  B D
    b.LHS("B").T("b").End()            // B  ->  b
    b.LHS("B").Epsilon()               // B  ->
    b.LHS("D").T("d").End()            // D  ->  d
    b.LHS("D").Epsilon()               // D  ->
    g, err := b.Grammar("S")

A symbol is a non-terminal if it is the left hand side of a rule, otherwise
it is a terminal. By default the start symbol is augmented, i.e. a rule
S' -> S is added as rule 0:

   g.Dump()

   0: S' -> S
   1: S -> A a
   2: A -> B D
   3: B -> b
   4: B ->
   5: D -> d
   6: D ->

Static Grammar Analysis

Every grammar has an LRAnalysis object, which computes FIRST sets for the
grammar once and keeps them for the lifetime of the grammar. The analysis
also owns the cache of item-sets: closures with identical items are
represented by one and the same *ItemSet.

    ga := lr.Analysis(g)
    for _, N := range g.NonTerminals() {
        fmt.Printf("FIRST(%s) = %v\n", N, ga.First(N))
    }

    // Output:
    FIRST(A) = {#ε, b, d}
    FIRST(B) = {#ε, b}
    FIRST(D) = {#ε, d}
    FIRST(S) = {a, b, d}
    FIRST(S') = {a, b, d}

Parser Construction

From the analysis the canonical LR(1) automaton is built. Items carry exactly
one lookahead terminal each; states are never merged by their cores (as an
LALR generator would do). A grammar which is not LR(1) is rejected with a
GrammarError describing the conflict and listing the items of the state it
was found in.

    table, err := lr.BuildTable(g)   // memoized per grammar
    if err != nil {
        // lr.IsConflict(err) tells shift/reduce and reduce/reduce conflicts
    }
    row := table.Row(table.Start())  // row.Shift, row.Goto, row.Reduce

The table can be exported to Graphviz's Dot-format and compiled into a
numbered, sparse ACTION/GOTO representation, which may be stored in binary form.

    pt := table.Compile()
    data, err := pt.MarshalBinary()

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lr1.lr'.
func tracer() tracing.Trace {
	return tracing.Select("lr1.lr")
}

package lr

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies grammar errors.
type ErrorKind int

// Kinds of grammar errors.
const (
	FormatError          ErrorKind = iota // malformed grammar text
	StartError                            // start symbol undefined or with wrong number of rules
	ShiftReduceConflict                   // a lookahead both shifts and reduces
	ReduceReduceConflict                  // a lookahead reduces by two different rules
)

func (k ErrorKind) String() string {
	switch k {
	case FormatError:
		return "format error"
	case StartError:
		return "start symbol error"
	case ShiftReduceConflict:
		return "shift/reduce conflict"
	case ReduceReduceConflict:
		return "reduce/reduce conflict"
	}
	return "<unknown>"
}

// GrammarError is returned for grammars which cannot be loaded, or which are
// not LR(1). For conflicts, Items holds the textual form of every item of the
// offending state and Rules the rules involved (both rules for a
// reduce/reduce conflict, the reducing rule for a shift/reduce conflict).
type GrammarError struct {
	Kind   ErrorKind
	Msg    string
	Line   int    // 1-based line in grammar text, 0 if not applicable
	Symbol Symbol // offending symbol or lookahead
	Rules  []*Rule
	Items  []string
}

func (e *GrammarError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Line > 0 {
		fmt.Fprintf(&b, " in line %d", e.Line)
	}
	b.WriteString(": ")
	b.WriteString(e.Msg)
	if len(e.Items) > 0 {
		b.WriteString("\nitems of state:")
		for _, item := range e.Items {
			b.WriteString("\n    ")
			b.WriteString(item)
		}
	}
	return b.String()
}

// IsConflict is true if err is a GrammarError for a shift/reduce or
// reduce/reduce conflict.
func IsConflict(err error) bool {
	var gerr *GrammarError
	if errors.As(err, &gerr) {
		return gerr.Kind == ShiftReduceConflict || gerr.Kind == ReduceReduceConflict
	}
	return false
}

func conflictError(kind ErrorKind, S *ItemSet, la Symbol, rules ...*Rule) *GrammarError {
	var msg string
	switch kind {
	case ReduceReduceConflict:
		msg = fmt.Sprintf("on %s reduce by [%s] or by [%s]", la, rules[0], rules[1])
	default:
		msg = fmt.Sprintf("on %s shift or reduce by [%s]", la, rules[0])
	}
	items := make([]string, S.Size())
	for i, item := range S.items {
		items[i] = item.String()
	}
	return &GrammarError{
		Kind:   kind,
		Msg:    msg,
		Symbol: la,
		Rules:  rules,
		Items:  items,
	}
}

package lr

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// LoadGrammar reads a grammar in text form. Every non-blank line not starting
// with '#' holds the rules for one left hand side:
//
//    # comment
//    Expr   -> Expr + Term | Term
//    Term   -> ( Expr ) | id
//    Opt    -> x |
//
// Alternatives are separated by '|', symbols by whitespace. An empty
// alternative denotes an epsilon rule. There is no escaping: '|', '->' and a
// leading '#' cannot be used as symbols.
//
// A line without exactly one '->' is a fatal error of kind FormatError,
// carrying the (1-based) line number.
func LoadGrammar(name, start string, input io.Reader, opts ...Option) (*Grammar, error) {
	b := NewGrammarBuilder(name)
	scanner := bufio.NewScanner(input)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := parseRuleLine(b, line, lineno); err != nil {
			tracer().Errorf("grammar %s: %v", name, err)
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading grammar %s: %w", name, err)
	}
	return b.Grammar(start, opts...)
}

// ParseGrammar is a shortcut for loading a grammar from a string.
func ParseGrammar(name, start, text string, opts ...Option) (*Grammar, error) {
	return LoadGrammar(name, start, strings.NewReader(text), opts...)
}

func parseRuleLine(b *GrammarBuilder, line string, lineno int) error {
	parts := strings.Split(line, "->")
	if len(parts) != 2 {
		msg := "missing '->'"
		if len(parts) > 2 {
			msg = "more than one '->'"
		}
		return &GrammarError{Kind: FormatError, Line: lineno, Msg: fmt.Sprintf("%s in %q", msg, line)}
	}
	lhs := strings.TrimSpace(parts[0])
	if lhs == "" {
		return &GrammarError{Kind: FormatError, Line: lineno, Msg: fmt.Sprintf("missing left hand side in %q", line)}
	}
	if err := checkSymbolName(lhs, lineno); err != nil {
		return err
	}
	for _, alt := range strings.Split(parts[1], "|") {
		rhs := strings.Fields(alt)
		for _, A := range rhs {
			if err := checkSymbolName(A, lineno); err != nil {
				return err
			}
		}
		b.LHS(lhs).Sym(rhs...).End()
	}
	return nil
}
